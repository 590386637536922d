package debugui

import (
	"fmt"
	"reflect"
	"sync"
)

type fieldInfo struct {
	Name      string
	Index     int
	IsPointer bool
}

type fieldCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]fieldInfo
}

func newFieldCache() *fieldCache {
	return &fieldCache{fields: make(map[reflect.Type][]fieldInfo)}
}

// Get returns the exported fields of struct type t.
func (c *fieldCache) Get(t reflect.Type) []fieldInfo {
	c.mu.RLock()
	cached, ok := c.fields[t]
	c.mu.RUnlock()
	if ok {
		return cached
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if cached, ok := c.fields[t]; ok {
		return cached
	}

	var fields []fieldInfo
	if t.Kind() == reflect.Struct {
		for i := range t.NumField() {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fields = append(fields, fieldInfo{
				Name:      field.Name,
				Index:     i,
				IsPointer: field.Type.Kind() == reflect.Pointer,
			})
		}
	}

	c.fields[t] = fields
	return fields
}

var globalFieldCache = newFieldCache()

var stringerType = reflect.TypeFor[fmt.Stringer]()

// describe formats a leaf value for a single line of text. Structs are
// expanded by the caller instead.
func describe(val reflect.Value) string {
	if !val.IsValid() {
		return "<invalid>"
	}
	if val.Kind() == reflect.Pointer && val.IsNil() {
		return "nil"
	}
	if val.Type().Implements(stringerType) && val.CanInterface() {
		return val.Interface().(fmt.Stringer).String()
	}

	switch val.Kind() {
	case reflect.Slice:
		if val.IsNil() || val.Len() == 0 {
			return "[]"
		}
		return fmt.Sprintf("%v", val.Interface())
	case reflect.Map:
		return fmt.Sprintf("map[%d items]", val.Len())
	default:
		return fmt.Sprintf("%v", val.Interface())
	}
}
