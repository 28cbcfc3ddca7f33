// Package blocks implements the falling-block game engine: the quad piece,
// the occupancy grid, and the engine that coordinates gravity ticks against
// player actions over one shared state.
package blocks

import (
	"fmt"
	"math"
)

// Coord is a single cell position. X grows rightward, Y grows downward;
// row 0 is the spawn region at the top of the grid.
type Coord struct {
	X int
	Y int
}

// Shape is the closed set of quad shapes.
type Shape int

const (
	ShapeLine Shape = iota
	ShapeSquare
	ShapeL
	ShapeJ
	ShapeS
	ShapeZ
	ShapeT
	shapeCount
)

var shapeNames = [shapeCount]string{"LINE", "SQUARE", "L", "J", "S", "Z", "T"}

func (s Shape) String() string {
	if s < 0 || s >= shapeCount {
		return fmt.Sprintf("Shape(%d)", int(s))
	}
	return shapeNames[s]
}

// Action is the closed set of inputs the engine accepts. The first four are
// piece moves; Quit latches the game over.
type Action int

const (
	TranslateDown Action = iota
	TranslateLeft
	TranslateRight
	RotateRight
	Quit
)

var actionNames = []string{"TRANSLATE_DOWN", "TRANSLATE_LEFT", "TRANSLATE_RIGHT", "ROTATE_RIGHT", "QUIT"}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// moves are the actions that produce a candidate coordinate set.
var moves = [4]Action{TranslateDown, TranslateLeft, TranslateRight, RotateRight}

var spawns = [shapeCount][4]Coord{
	ShapeLine:   {{3, 0}, {4, 0}, {5, 0}, {6, 0}},
	ShapeSquare: {{4, 0}, {5, 0}, {4, 1}, {5, 1}},
	ShapeL:      {{3, 1}, {4, 1}, {5, 1}, {5, 0}},
	ShapeJ:      {{3, 1}, {4, 1}, {5, 1}, {3, 0}},
	ShapeS:      {{3, 1}, {4, 1}, {4, 0}, {5, 0}},
	ShapeZ:      {{3, 0}, {4, 0}, {4, 1}, {5, 1}},
	ShapeT:      {{3, 1}, {4, 0}, {4, 1}, {5, 1}},
}

// SpawnCoords returns the canonical 4-cell spawn coordinate set for a shape.
func SpawnCoords(s Shape) ([]Coord, error) {
	if s < 0 || s >= shapeCount {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShape, int(s))
	}
	coords := make([]Coord, len(spawns[s]))
	copy(coords, spawns[s][:])
	return coords, nil
}

// Quad is a falling piece made of 4 blocks. Its coordinate set is only ever
// one of the finitely many positions reachable from the spawn set through
// Candidate; Update enforces that.
type Quad struct {
	shape  Shape
	coords []Coord
}

func NewQuad(s Shape) (*Quad, error) {
	coords, err := SpawnCoords(s)
	if err != nil {
		return nil, err
	}
	return &Quad{shape: s, coords: coords}, nil
}

func (q *Quad) Shape() Shape {
	return q.shape
}

// Coords returns a copy of the quad's current coordinate set.
func (q *Quad) Coords() []Coord {
	coords := make([]Coord, len(q.coords))
	copy(coords, q.coords)
	return coords
}

// Candidate returns the coordinate set the quad would occupy after the given
// move, without mutating the quad. Legality against the grid is the caller's
// concern. Quit has no candidate and reports ErrUnrecognizedAction, as does
// any value outside the action set.
func (q *Quad) Candidate(a Action) ([]Coord, error) {
	switch a {
	case TranslateDown:
		return q.translated(0, 1), nil
	case TranslateLeft:
		return q.translated(-1, 0), nil
	case TranslateRight:
		return q.translated(1, 0), nil
	case RotateRight:
		return q.rotated(), nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnrecognizedAction, a)
	}
}

func (q *Quad) translated(dx, dy int) []Coord {
	coords := make([]Coord, len(q.coords))
	for i, c := range q.coords {
		coords[i] = Coord{X: c.X + dx, Y: c.Y + dy}
	}
	return coords
}

// rotated turns the quad 90 degrees clockwise about the centroid of its
// cells. Each centroid axis is the arithmetic mean rounded half away from
// zero. The result may leave the grid near a boundary; the grid check
// rejects it there.
func (q *Quad) rotated() []Coord {
	var sumX, sumY int
	for _, c := range q.coords {
		sumX += c.X
		sumY += c.Y
	}
	cx := int(math.Round(float64(sumX) / float64(len(q.coords))))
	cy := int(math.Round(float64(sumY) / float64(len(q.coords))))
	coords := make([]Coord, len(q.coords))
	for i, c := range q.coords {
		coords[i] = Coord{X: cx - (c.Y - cy), Y: cy + (c.X - cx)}
	}
	return coords
}

// Update moves the quad to coords, which must equal one of the four current
// candidate sets. Anything else reports ErrIllegalMove.
func (q *Quad) Update(coords []Coord) error {
	for _, a := range moves {
		candidate, err := q.Candidate(a)
		if err != nil {
			return err
		}
		if coordsEqual(coords, candidate) {
			q.coords = append(q.coords[:0], coords...)
			return nil
		}
	}
	return fmt.Errorf("%w: from %v to %v", ErrIllegalMove, q.coords, coords)
}

func coordsEqual(a, b []Coord) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
