package blocks

import "fmt"

// Grid is a fixed-size boolean occupancy matrix. It carries no lock of its
// own; the Engine serializes all access to it.
type Grid struct {
	width  int
	height int
	cells  [][]bool
}

func NewGrid(width, height int) *Grid {
	cells := make([][]bool, height)
	for i := range cells {
		cells[i] = make([]bool, width)
	}
	return &Grid{width: width, height: height, cells: cells}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Available reports whether every coordinate is inside the grid and free.
// Out-of-range coordinates on any side are unavailable, never a fault.
func (g *Grid) Available(coords []Coord) bool {
	for _, c := range coords {
		if !g.inRange(c) {
			return false
		}
		if g.cells[c.Y][c.X] {
			return false
		}
	}
	return true
}

// Apply marks every add cell occupied and every remove cell free. Callers
// must have checked Available on the add set and hold the engine lock.
// Setting a set cell or clearing a clear cell is a contract breach and
// reports ErrInvariantViolation without further mutation.
func (g *Grid) Apply(add, remove []Coord) error {
	for _, c := range add {
		if !g.inRange(c) {
			return fmt.Errorf("%w: set outside grid (%d, %d)", ErrInvariantViolation, c.X, c.Y)
		}
		if g.cells[c.Y][c.X] {
			return fmt.Errorf("%w: set of occupied cell (%d, %d)", ErrInvariantViolation, c.X, c.Y)
		}
		g.cells[c.Y][c.X] = true
	}
	for _, c := range remove {
		if !g.inRange(c) {
			return fmt.Errorf("%w: clear outside grid (%d, %d)", ErrInvariantViolation, c.X, c.Y)
		}
		if !g.cells[c.Y][c.X] {
			return fmt.Errorf("%w: clear of free cell (%d, %d)", ErrInvariantViolation, c.X, c.Y)
		}
		g.cells[c.Y][c.X] = false
	}
	return nil
}

func (g *Grid) inRange(c Coord) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.width && c.Y < g.height
}

// Compact removes every fully occupied row and inserts a fresh row at the
// top for each, preserving the order of the remaining rows. Rows are
// scanned top to bottom by their pre-compaction index exactly once; a row
// is never re-scanned within one call. Returns the number of rows removed.
func (g *Grid) Compact() int {
	cleared := 0
	for y := 0; y < g.height; y++ {
		full := true
		for x := 0; x < g.width; x++ {
			if !g.cells[y][x] {
				full = false
				break
			}
		}
		if !full {
			continue
		}
		for pull := y; pull > 0; pull-- {
			copy(g.cells[pull], g.cells[pull-1])
		}
		for x := 0; x < g.width; x++ {
			g.cells[0][x] = false
		}
		cleared++
	}
	return cleared
}

// Snapshot returns a deep copy of the cell matrix, row-major, top row first.
func (g *Grid) Snapshot() [][]bool {
	cells := make([][]bool, g.height)
	for y := range g.cells {
		cells[y] = make([]bool, g.width)
		copy(cells[y], g.cells[y])
	}
	return cells
}
