package tetris

// Sweep removes every full row, scanning from the bottom up, and returns how
// many rows went and the points they earned. The first row is worth
// unitScore and each further row in the same call is worth twice the
// previous one.
func Sweep(grid *Grid, unitScore int) (cleared, delta int) {
	multiplier := 1
	for y := grid.Height() - 1; y >= 0; {
		if !grid.RowFull(y) {
			y--
			continue
		}

		// The rows above moved down; look at the same index again.
		grid.removeRow(y)
		delta += multiplier * unitScore
		multiplier *= 2
		cleared++
	}
	return cleared, delta
}

// PendingClear records full rows that were blanked by MarkFull and still
// have to be removed. The zero value has nothing pending.
type PendingClear struct {
	rows []int
}

// MarkFull blanks every full row in place and remembers it, bottom row
// first. The grid keeps its shape until Finalize removes the blank rows.
func MarkFull(grid *Grid) PendingClear {
	var pc PendingClear
	for y := grid.Height() - 1; y >= 0; y-- {
		if grid.RowFull(y) {
			clear(grid.rows[y])
			pc.rows = append(pc.rows, y)
		}
	}
	return pc
}

// Empty reports whether there is nothing to finalize.
func (pc PendingClear) Empty() bool {
	return len(pc.rows) == 0
}

// Rows returns the marked row indices, bottom row first.
func (pc PendingClear) Rows() []int {
	rows := make([]int, len(pc.rows))
	copy(rows, pc.rows)
	return rows
}

// Finalize removes the marked rows from grid and scores them the same way
// Sweep does. Rows are removed top-most first so the recorded indices stay
// valid while the rows below them are still in place.
func (pc PendingClear) Finalize(grid *Grid, unitScore int) (cleared, delta int) {
	multiplier := 1
	for range pc.rows {
		delta += multiplier * unitScore
		multiplier *= 2
	}

	for i := len(pc.rows) - 1; i >= 0; i-- {
		grid.removeRow(pc.rows[i])
	}
	return len(pc.rows), delta
}
