package tetris_test

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// boardFixture is a txtar archive whose comment holds "key: value" lines and
// whose files hold grids in Grid.String form.
type boardFixture struct {
	name   string
	fields map[string]string
	grids  map[string]*tetris.Grid
}

func (f *boardFixture) intField(t *testing.T, key string) int {
	t.Helper()
	raw, ok := f.fields[key]
	require.Truef(t, ok, "fixture %s has no %q field", f.name, key)
	n, err := strconv.Atoi(raw)
	require.NoError(t, err)
	return n
}

func (f *boardFixture) grid(t *testing.T, name string) *tetris.Grid {
	t.Helper()
	g, ok := f.grids[name]
	require.Truef(t, ok, "fixture %s has no %q file", f.name, name)
	return g
}

func loadFixtures(t *testing.T, dir string) []*boardFixture {
	t.Helper()

	paths, err := filepath.Glob(filepath.Join("testdata", dir, "*.txtar"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	fixtures := make([]*boardFixture, 0, len(paths))
	for _, path := range paths {
		archive, err := txtar.ParseFile(path)
		require.NoError(t, err, path)

		f := &boardFixture{
			name:   strings.TrimSuffix(filepath.Base(path), ".txtar"),
			fields: make(map[string]string),
			grids:  make(map[string]*tetris.Grid),
		}
		for line := range strings.Lines(string(archive.Comment)) {
			key, value, ok := strings.Cut(line, ":")
			if ok && !strings.Contains(key, " ") {
				f.fields[key] = strings.TrimSpace(value)
			}
		}
		for _, file := range archive.Files {
			g, err := tetris.ParseGrid(string(file.Data))
			require.NoError(t, err, "%s: %s", path, file.Name)
			f.grids[file.Name] = g
		}
		fixtures = append(fixtures, f)
	}
	return fixtures
}
