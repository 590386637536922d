package debugui

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
)

// Inspector shows every exported field of the value returned by source,
// read-only. Multi-line values such as grids are shown in a tree node.
type Inspector struct {
	title  string
	source func() any
}

// NewInspector creates an inspector window titled title.
func NewInspector(title string, source func() any) *Inspector {
	return &Inspector{title: title, source: source}
}

func (in *Inspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(280, 420), imgui.CondOnce)

	if !imgui.BeginV(in.title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	val := reflect.ValueOf(in.source())
	if val.Kind() == reflect.Pointer {
		if val.IsNil() {
			imgui.Text("nothing to inspect")
			imgui.End()
			return
		}
		val = val.Elem()
	}
	in.renderStruct(val)

	imgui.End()
}

func (in *Inspector) renderStruct(val reflect.Value) {
	for _, field := range globalFieldCache.Get(val.Type()) {
		in.renderField(field.Name, val.Field(field.Index))
	}
}

func (in *Inspector) renderField(name string, val reflect.Value) {
	text := describe(val)
	if strings.Contains(text, "\n") {
		if imgui.TreeNodeStr(name) {
			for line := range strings.Lines(text) {
				imgui.Text(strings.TrimRight(line, "\n"))
			}
			imgui.TreePop()
		}
		return
	}

	elem := val
	if elem.Kind() == reflect.Pointer && !elem.IsNil() {
		elem = elem.Elem()
	}
	if elem.Kind() == reflect.Struct && !elem.Type().Implements(stringerType) {
		if imgui.TreeNodeStr(name) {
			in.renderStruct(elem)
			imgui.TreePop()
		}
		return
	}

	imgui.Text(fmt.Sprintf("%s: %s", name, text))
}
