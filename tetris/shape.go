package tetris

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrUnknownKind is returned by ParseKind for letters outside the catalog.
var ErrUnknownKind = errors.New("tetris: unknown piece kind")

// Shape is a square matrix of cells relative to the piece's top-left corner.
type Shape [][]Cell

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	c := make(Shape, len(s))
	for i, row := range s {
		c[i] = make([]Cell, len(row))
		copy(c[i], row)
	}
	return c
}

// Equal reports whether both shapes hold the same cells.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if len(s[i]) != len(other[i]) {
			return false
		}
		for j := range s[i] {
			if s[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// Kind identifies one of the seven canonical pieces.
type Kind int

// Catalog order matches the letter sequence "ILJOTSZ".
const (
	I Kind = iota
	L
	J
	O
	T
	S
	Z
)

const kindLetters = "ILJOTSZ"

// Kinds returns every kind in catalog order.
func Kinds() []Kind {
	return []Kind{I, L, J, O, T, S, Z}
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindLetters) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindLetters[k : k+1]
}

// Value is the cell value a piece of this kind writes into the grid.
func (k Kind) Value() Cell {
	return Cell(k + 1)
}

// ParseKind maps a catalog letter to its kind.
func ParseKind(r rune) (Kind, error) {
	for i, l := range kindLetters {
		if l == r {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("%q: %w", r, ErrUnknownKind)
}

// templates are never handed out directly; ShapeFor copies them.
var templates = [...][][]int{
	I: {
		{0, 1, 0, 0},
		{0, 1, 0, 0},
		{0, 1, 0, 0},
		{0, 1, 0, 0},
	},
	L: {
		{0, 0, 1},
		{1, 1, 1},
		{0, 0, 0},
	},
	J: {
		{1, 0, 0},
		{1, 1, 1},
		{0, 0, 0},
	},
	O: {
		{1, 1},
		{1, 1},
	},
	T: {
		{0, 1, 0},
		{1, 1, 1},
		{0, 0, 0},
	},
	S: {
		{0, 1, 1},
		{1, 1, 0},
		{0, 0, 0},
	},
	Z: {
		{1, 1, 0},
		{0, 1, 1},
		{0, 0, 0},
	},
}

// ShapeFor returns a fresh copy of the canonical shape for kind, with every
// occupied cell set to kind.Value(). It panics on an unknown kind.
func ShapeFor(kind Kind) Shape {
	if kind < 0 || int(kind) >= len(templates) {
		panic(fmt.Sprintf("tetris: no shape for %v", kind))
	}

	tmpl := templates[kind]
	shape := make(Shape, len(tmpl))
	for y, row := range tmpl {
		shape[y] = make([]Cell, len(row))
		for x, v := range row {
			if v != 0 {
				shape[y][x] = kind.Value()
			}
		}
	}
	return shape
}

// Rotate returns a new matrix turned 90 degrees: clockwise when dir > 0,
// counter-clockwise otherwise. Both directions transpose first; clockwise
// then reverses each row, counter-clockwise reverses the row order.
// It panics if the shape is not square.
func Rotate(shape Shape, dir int) Shape {
	size := len(shape)
	rotated := make(Shape, size)
	for i := range rotated {
		if len(shape[i]) != size {
			panic("tetris: rotate requires a square shape")
		}
		rotated[i] = make([]Cell, size)
	}

	for y := range size {
		for x := range size {
			rotated[x][y] = shape[y][x]
		}
	}

	if dir > 0 {
		for _, row := range rotated {
			for l, r := 0, len(row)-1; l < r; l, r = l+1, r-1 {
				row[l], row[r] = row[r], row[l]
			}
		}
	} else {
		for l, r := 0, size-1; l < r; l, r = l+1, r-1 {
			rotated[l], rotated[r] = rotated[r], rotated[l]
		}
	}

	return rotated
}

// Randomizer picks the kind of the next piece to spawn.
type Randomizer interface {
	Next() Kind
}

// RandomKind picks a kind uniformly at random.
func RandomKind(r *rand.Rand) Kind {
	return Kind(r.IntN(len(kindLetters)))
}

// UniformRandomizer picks every kind independently with equal probability.
// Repeats and droughts are possible.
type UniformRandomizer struct {
	rng *rand.Rand
}

// NewUniformRandomizer returns a uniform picker seeded with seed.
func NewUniformRandomizer(seed uint64) *UniformRandomizer {
	return &UniformRandomizer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (u *UniformRandomizer) Next() Kind {
	return RandomKind(u.rng)
}

// BagRandomizer deals shuffled bags of all seven kinds, so every kind
// appears exactly once in each consecutive group of seven.
type BagRandomizer struct {
	rng *rand.Rand
	bag []Kind
}

// NewBagRandomizer returns a 7-bag picker seeded with seed.
func NewBagRandomizer(seed uint64) *BagRandomizer {
	return &BagRandomizer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (b *BagRandomizer) Next() Kind {
	if len(b.bag) == 0 {
		b.bag = Kinds()
		b.rng.Shuffle(len(b.bag), func(i, j int) {
			b.bag[i], b.bag[j] = b.bag[j], b.bag[i]
		})
	}

	kind := b.bag[0]
	b.bag = b.bag[1:]
	return kind
}

// FixedRandomizer replays a scripted sequence of kinds, cycling when it runs
// out. It is meant for tests and replays.
type FixedRandomizer struct {
	kinds []Kind
	next  int
}

// NewFixedRandomizer returns a picker that yields kinds in order. It panics
// when kinds is empty.
func NewFixedRandomizer(kinds ...Kind) *FixedRandomizer {
	if len(kinds) == 0 {
		panic("tetris: fixed randomizer needs at least one kind")
	}
	return &FixedRandomizer{kinds: kinds}
}

func (f *FixedRandomizer) Next() Kind {
	kind := f.kinds[f.next%len(f.kinds)]
	f.next++
	return kind
}
