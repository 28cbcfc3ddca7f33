package blocks

import (
	"math/rand"
	"sync"
	"time"
)

// Result is the observable outcome of one engine entry-point call.
type Result struct {
	Applied  bool // the move landed on the grid
	Spawned  bool // a fresh quad entered the spawn region
	Locked   bool // the active quad became fixed blocks
	Cleared  int  // rows compacted by this call
	GameOver bool
}

// Engine owns the grid, the active quad, the score and the game-over latch
// under a single lock. Exactly two callers drive it concurrently: a gravity
// loop invoking Tick and an input path invoking HandleAction. Every
// check-then-mutate sequence runs atomically under the lock; the gravity
// cadence itself lives in the caller, never under the lock.
type Engine struct {
	mu     sync.Mutex
	grid   *Grid
	active *Quad
	score  int
	over   bool
	pick   func() Shape
}

func NewEngine(width, height int) *Engine {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Engine{
		grid: NewGrid(width, height),
		pick: func() Shape { return Shape(rng.Intn(int(shapeCount))) },
	}
}

// Tick drives gravity once: when the game is live it spawns a quad if none
// is active, then attempts a downward translation. A quad that cannot move
// down locks into the grid and filled rows are compacted.
func (e *Engine) Tick() (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var res Result
	if e.over {
		res.GameOver = true
		return res, nil
	}
	if e.active == nil {
		if err := e.spawnLocked(); err != nil {
			return res, err
		}
		if e.over {
			res.GameOver = true
			return res, nil
		}
		res.Spawned = true
	}
	return e.moveLocked(TranslateDown, res)
}

// HandleAction applies one player action. Quit latches game over
// unconditionally. Movement with no active quad, or after game over, is a
// no-op. A move rejected by the grid is silent, except a rejected downward
// move, which locks the quad down.
func (e *Engine) HandleAction(a Action) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	var res Result
	if a == Quit {
		e.over = true
		res.GameOver = true
		return res, nil
	}
	if e.over {
		res.GameOver = true
		return res, nil
	}
	if e.active == nil {
		return res, nil
	}
	return e.moveLocked(a, res)
}

// moveLocked computes the candidate set for a move, diffs it against the
// quad's current cells and applies the change when the entered cells are
// available. Callers hold e.mu.
func (e *Engine) moveLocked(a Action, res Result) (Result, error) {
	target, err := e.active.Candidate(a)
	if err != nil {
		return res, err
	}
	current := e.active.Coords()
	enter := coordDiff(target, current)
	vacate := coordDiff(current, target)
	if e.grid.Available(enter) {
		if err := e.grid.Apply(enter, vacate); err != nil {
			return res, err
		}
		if err := e.active.Update(target); err != nil {
			return res, err
		}
		res.Applied = true
		return res, nil
	}
	if a != TranslateDown {
		// Blocked lateral moves and rotations are simply ignored.
		return res, nil
	}
	// Could not move down: the quad's cells become permanent board state.
	e.active = nil
	cleared := e.grid.Compact()
	e.score += cleared
	res.Locked = true
	res.Cleared = cleared
	return res, nil
}

// spawnLocked places a uniformly random quad at its canonical spawn
// coordinates. A blocked spawn region latches game over with the score
// untouched. Callers hold e.mu.
func (e *Engine) spawnLocked() error {
	if e.active != nil {
		return ErrDoubleSpawn
	}
	quad, err := NewQuad(e.pick())
	if err != nil {
		return err
	}
	coords := quad.Coords()
	if !e.grid.Available(coords) {
		e.over = true
		return nil
	}
	if err := e.grid.Apply(coords, nil); err != nil {
		return err
	}
	e.active = quad
	return nil
}

// Snapshot returns a deep copy of the occupancy matrix and the current
// score. The lock is held only for the copy.
func (e *Engine) Snapshot() ([][]bool, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.grid.Snapshot(), e.score
}

func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

// Over reports the one-way game-over latch.
func (e *Engine) Over() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.over
}

// coordDiff returns the coordinates present in a but not in b.
func coordDiff(a, b []Coord) []Coord {
	diff := make([]Coord, 0, len(a))
	for _, c := range a {
		found := false
		for _, o := range b {
			if c == o {
				found = true
				break
			}
		}
		if !found {
			diff = append(diff, c)
		}
	}
	return diff
}
