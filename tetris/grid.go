// Package tetris holds the pure board model of the game: the settled grid,
// the piece catalog, collision, rotation, merging and line clearing.
// Nothing in this package keeps time or emits events; see package game.
package tetris

import (
	"errors"
	"fmt"
	"strings"
)

// Cell is a single grid value. Zero is empty, anything else is occupied and
// identifies the kind of piece that left it there.
type Cell int

// Empty is the value of an unoccupied cell.
const Empty Cell = 0

// ErrRaggedGrid is returned by ParseGrid when rows differ in length.
var ErrRaggedGrid = errors.New("tetris: rows have different widths")

// Grid is the settled playfield, stored row-major with row 0 at the top.
// Its dimensions are fixed at creation.
type Grid struct {
	width  int
	height int
	rows   [][]Cell
}

// NewGrid creates an empty grid. It panics if either dimension is not positive.
func NewGrid(width, height int) *Grid {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("tetris: invalid grid size %dx%d", width, height))
	}

	g := &Grid{
		width:  width,
		height: height,
		rows:   make([][]Cell, height),
	}
	for y := range g.rows {
		g.rows[y] = make([]Cell, width)
	}
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Clear resets every cell to Empty in place.
func (g *Grid) Clear() {
	for _, row := range g.rows {
		clear(row)
	}
}

// At returns the cell at (x, y) and whether the coordinate is inside the grid.
func (g *Grid) At(x, y int) (Cell, bool) {
	if !g.Contains(x, y) {
		return Empty, false
	}
	return g.rows[y][x], true
}

// Contains reports whether (x, y) lies inside the grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Set writes v at (x, y). The caller guarantees the coordinate is in range.
func (g *Grid) Set(x, y int, v Cell) {
	g.rows[y][x] = v
}

// Row returns a copy of row y.
func (g *Grid) Row(y int) []Cell {
	row := make([]Cell, g.width)
	copy(row, g.rows[y])
	return row
}

// RowFull reports whether every cell of row y is occupied.
func (g *Grid) RowFull(y int) bool {
	for _, v := range g.rows[y] {
		if v == Empty {
			return false
		}
	}
	return true
}

// IsEmpty reports whether no cell is occupied.
func (g *Grid) IsEmpty() bool {
	for _, row := range g.rows {
		for _, v := range row {
			if v != Empty {
				return false
			}
		}
	}
	return true
}

// removeRow deletes row y and pushes a fresh empty row on top, so every row
// above y moves down by one.
func (g *Grid) removeRow(y int) {
	removed := g.rows[y]
	copy(g.rows[1:y+1], g.rows[:y])
	clear(removed)
	g.rows[0] = removed
}

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.width, g.height)
	for y, row := range g.rows {
		copy(c.rows[y], row)
	}
	return c
}

// Equal reports whether both grids have the same size and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for y := range g.rows {
		for x := range g.rows[y] {
			if g.rows[y][x] != other.rows[y][x] {
				return false
			}
		}
	}
	return true
}

// String renders one line per row: '.' for empty cells and a base-36 digit
// for occupied ones.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for _, row := range g.rows {
		for _, v := range row {
			sb.WriteRune(cellRune(v))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ParseGrid is the inverse of Grid.String. Blank lines and surrounding
// whitespace are ignored.
func ParseGrid(text string) (*Grid, error) {
	var lines []string
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return nil, errors.New("tetris: empty grid text")
	}

	width := len(lines[0])
	g := NewGrid(width, len(lines))
	for y, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("row %d has width %d, want %d: %w", y, len(line), width, ErrRaggedGrid)
		}
		for x, r := range line {
			v, err := runeCell(r)
			if err != nil {
				return nil, fmt.Errorf("row %d col %d: %w", y, x, err)
			}
			g.rows[y][x] = v
		}
	}
	return g, nil
}

const cellDigits = "0123456789abcdefghijklmnopqrstuvwxyz"

func cellRune(v Cell) rune {
	if v == Empty {
		return '.'
	}
	if v > 0 && int(v) < len(cellDigits) {
		return rune(cellDigits[v])
	}
	return '#'
}

func runeCell(r rune) (Cell, error) {
	if r == '.' {
		return Empty, nil
	}
	if r == '#' {
		return 1, nil
	}
	if i := strings.IndexRune(cellDigits, r); i > 0 {
		return Cell(i), nil
	}
	return Empty, fmt.Errorf("tetris: unknown cell rune %q", r)
}
