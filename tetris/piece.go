package tetris

// Point is an offset into the grid.
type Point struct {
	X, Y int
}

// Piece is the falling, player-controlled shape. Its Shape is owned by the
// piece and never shared with the catalog.
type Piece struct {
	Kind  Kind
	Shape Shape
	Pos   Point
}

// Spawn creates a piece of the given kind centred horizontally on a grid of
// gridWidth columns, on the top row.
func Spawn(kind Kind, gridWidth int) *Piece {
	shape := ShapeFor(kind)
	return &Piece{
		Kind:  kind,
		Shape: shape,
		Pos:   Point{X: gridWidth/2 - len(shape[0])/2, Y: 0},
	}
}

// Clone returns a deep copy of the piece.
func (p *Piece) Clone() *Piece {
	if p == nil {
		return nil
	}
	return &Piece{
		Kind:  p.Kind,
		Shape: p.Shape.Clone(),
		Pos:   p.Pos,
	}
}

// Cells calls fn with the grid coordinate and value of every occupied cell
// of the piece at its current position.
func (p *Piece) Cells(fn func(x, y int, v Cell)) {
	for y, row := range p.Shape {
		for x, v := range row {
			if v != Empty {
				fn(p.Pos.X+x, p.Pos.Y+y, v)
			}
		}
	}
}

// Collides reports whether any occupied cell of piece lies outside grid or
// on top of a settled cell. Rows above the top edge count as outside.
func Collides(grid *Grid, piece *Piece) bool {
	for y, row := range piece.Shape {
		for x, v := range row {
			if v == Empty {
				continue
			}
			if cell, ok := grid.At(piece.Pos.X+x, piece.Pos.Y+y); !ok || cell != Empty {
				return true
			}
		}
	}
	return false
}

// Move shifts the piece horizontally by dx. The move is undone and false
// returned if the new position collides.
func Move(piece *Piece, grid *Grid, dx int) bool {
	piece.Pos.X += dx
	if Collides(grid, piece) {
		piece.Pos.X -= dx
		return false
	}
	return true
}

// Drop moves the piece down one row. When that collides the piece is put
// back and Drop returns false: the piece has landed.
func Drop(piece *Piece, grid *Grid) bool {
	piece.Pos.Y++
	if Collides(grid, piece) {
		piece.Pos.Y--
		return false
	}
	return true
}

// RotatePlayer turns the piece in place. There are no wall kicks: if the
// rotated shape collides at the current position the old shape is kept and
// false returned.
func RotatePlayer(piece *Piece, grid *Grid, dir int) bool {
	previous := piece.Shape
	piece.Shape = Rotate(previous, dir)
	if Collides(grid, piece) {
		piece.Shape = previous
		return false
	}
	return true
}

// Merge writes the piece's occupied cells into the grid. The caller must
// ensure the piece does not collide.
func Merge(grid *Grid, piece *Piece) {
	piece.Cells(grid.Set)
}
