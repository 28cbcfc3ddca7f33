package blocks

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, shapes ...Shape) *Engine {
	t.Helper()
	e := NewEngine(10, 19)
	if len(shapes) > 0 {
		next := 0
		e.pick = func() Shape {
			s := shapes[next%len(shapes)]
			next++
			return s
		}
	}
	return e
}

func occupiedCount(e *Engine) int {
	cells, _ := e.Snapshot()
	count := 0
	for _, row := range cells {
		for _, set := range row {
			if set {
				count++
			}
		}
	}
	return count
}

func TestTickSpawnsAndDescends(t *testing.T) {
	e := newTestEngine(t, ShapeLine)

	res, err := e.Tick()
	require.NoError(t, err)
	assert.True(t, res.Spawned)
	assert.True(t, res.Applied)
	assert.False(t, res.GameOver)

	cells, score := e.Snapshot()
	assert.Equal(t, 0, score)
	for x := 3; x <= 6; x++ {
		assert.False(t, cells[0][x], "spawn row should be vacated after the first descent")
		assert.True(t, cells[1][x], "line should sit at y=1 after one tick")
	}
	assert.Equal(t, 4, occupiedCount(e))
}

// A line dropped on an empty 10x19 board locks on the 19th tick and the next
// tick spawns a fresh quad without ending the game.
func TestGravityDropAndRespawn(t *testing.T) {
	e := newTestEngine(t, ShapeLine)

	var res Result
	var err error
	for i := 0; i < 19; i++ {
		res, err = e.Tick()
		require.NoError(t, err)
	}
	assert.True(t, res.Locked)
	assert.Equal(t, 0, res.Cleared)
	assert.False(t, e.Over())

	cells, _ := e.Snapshot()
	for x := 3; x <= 6; x++ {
		assert.True(t, cells[18][x], "line should rest on the bottom row")
	}

	res, err = e.Tick()
	require.NoError(t, err)
	assert.True(t, res.Spawned)
	assert.Equal(t, 8, occupiedCount(e))
}

// Completing the bottom row scores one point and replaces the row with a
// fresh free row at the top.
func TestLineClearScoresOnePoint(t *testing.T) {
	e := newTestEngine(t, ShapeSquare)
	row := make([]Coord, 0, 8)
	for x := 0; x < 10; x++ {
		if x == 4 || x == 5 {
			continue
		}
		row = append(row, Coord{X: x, Y: 18})
	}
	require.NoError(t, e.grid.Apply(row, nil))

	var res Result
	var err error
	for !res.Locked {
		res, err = e.Tick()
		require.NoError(t, err)
	}
	assert.Equal(t, 1, res.Cleared)
	assert.Equal(t, 1, e.Score())

	cells, _ := e.Snapshot()
	// The square's upper half slid down into the bottom row.
	assert.True(t, cells[18][4])
	assert.True(t, cells[18][5])
	for x := 0; x < 10; x++ {
		if x == 4 || x == 5 {
			continue
		}
		assert.False(t, cells[18][x], "pre-filled cells should have been cleared at x=%d", x)
		assert.False(t, cells[0][x])
	}
}

func TestQuitLatchesGameOver(t *testing.T) {
	e := newTestEngine(t, ShapeT)
	_, err := e.Tick()
	require.NoError(t, err)

	res, err := e.HandleAction(Quit)
	require.NoError(t, err)
	assert.True(t, res.GameOver)
	assert.True(t, e.Over())

	before, scoreBefore := e.Snapshot()
	for _, a := range []Action{TranslateLeft, TranslateRight, TranslateDown, RotateRight} {
		res, err = e.HandleAction(a)
		require.NoError(t, err)
		assert.True(t, res.GameOver)
		assert.False(t, res.Applied)
	}
	res, err = e.Tick()
	require.NoError(t, err)
	assert.True(t, res.GameOver)

	after, scoreAfter := e.Snapshot()
	assert.Equal(t, before, after, "no mutation may happen after game over")
	assert.Equal(t, scoreBefore, scoreAfter)
}

// A blocked spawn region ends the game with the score unchanged.
func TestSpawnBlockedEndsGame(t *testing.T) {
	e := newTestEngine(t, ShapeSquare)
	require.NoError(t, e.grid.Apply([]Coord{{X: 4, Y: 0}}, nil))

	res, err := e.Tick()
	require.NoError(t, err)
	assert.True(t, res.GameOver)
	assert.False(t, res.Spawned)
	assert.True(t, e.Over())
	assert.Equal(t, 0, e.Score())
}

func TestDoubleSpawn(t *testing.T) {
	e := newTestEngine(t, ShapeT)
	_, err := e.Tick()
	require.NoError(t, err)

	e.mu.Lock()
	err = e.spawnLocked()
	e.mu.Unlock()
	assert.ErrorIs(t, err, ErrDoubleSpawn)
}

func TestUnrecognizedAction(t *testing.T) {
	e := newTestEngine(t, ShapeT)
	_, err := e.Tick()
	require.NoError(t, err)

	_, err = e.HandleAction(Action(17))
	assert.ErrorIs(t, err, ErrUnrecognizedAction)
	assert.False(t, e.Over(), "a caller bug must not end the game")
}

func TestMovementWithoutActiveQuadIsNoOp(t *testing.T) {
	e := newTestEngine(t, ShapeT)
	res, err := e.HandleAction(TranslateLeft)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, 0, occupiedCount(e))
}

func TestWallContactRejectsSilently(t *testing.T) {
	e := newTestEngine(t, ShapeLine)
	_, err := e.Tick()
	require.NoError(t, err)

	// Line spans x=3..6; three moves reach the wall, the fourth is refused.
	for i := 0; i < 3; i++ {
		res, err := e.HandleAction(TranslateLeft)
		require.NoError(t, err)
		assert.True(t, res.Applied)
	}
	res, err := e.HandleAction(TranslateLeft)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.False(t, res.Locked)
	assert.False(t, e.Over())

	cells, _ := e.Snapshot()
	for x := 0; x <= 3; x++ {
		assert.True(t, cells[1][x])
	}
}

// Gravity ticks raced against player actions must never desynchronize the
// active quad from the grid: every active cell is set, and the total of set
// cells matches the locked history plus the active quad.
func TestConcurrentTickAndActions(t *testing.T) {
	e := newTestEngine(t)
	spawned := 0
	e.pick = func() Shape {
		spawned++ // guarded by e.mu via spawnLocked
		return Shape(spawned % int(shapeCount))
	}
	done := make(chan struct{})
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		actions := []Action{TranslateLeft, TranslateRight, RotateRight, TranslateDown}
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			if _, err := e.HandleAction(actions[i%len(actions)]); err != nil {
				t.Errorf("action error: %v", err)
				return
			}
		}
	}()

	for i := 0; i < 400 && !e.Over(); i++ {
		if _, err := e.Tick(); err != nil {
			t.Errorf("tick error: %v", err)
			break
		}
	}
	close(done)
	wg.Wait()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.active != nil {
		for _, c := range e.active.coords {
			assert.True(t, e.grid.cells[c.Y][c.X], "active cell (%d, %d) missing from grid", c.X, c.Y)
		}
	}
	set := 0
	for _, row := range e.grid.cells {
		for _, cell := range row {
			if cell {
				set++
			}
		}
	}
	placed := spawned
	if e.over {
		// The final pick was refused at a blocked spawn region.
		placed--
	}
	assert.Equal(t, 4*placed-e.grid.width*e.score, set,
		"grid cells must account exactly for every placed quad minus compacted rows")
}
