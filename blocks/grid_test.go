package blocks_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zaydosman/pyblocks/blocks"
)

func TestAvailableBounds(t *testing.T) {
	grid := blocks.NewGrid(10, 19)

	assert.True(t, grid.Available([]blocks.Coord{{X: 0, Y: 0}, {X: 9, Y: 18}}))
	assert.True(t, grid.Available(nil))

	assert.False(t, grid.Available([]blocks.Coord{{X: -1, Y: 0}}))
	assert.False(t, grid.Available([]blocks.Coord{{X: 0, Y: -1}}))
	assert.False(t, grid.Available([]blocks.Coord{{X: 10, Y: 0}}))
	assert.False(t, grid.Available([]blocks.Coord{{X: 0, Y: 19}}))

	// One bad coordinate poisons the whole set.
	assert.False(t, grid.Available([]blocks.Coord{{X: 4, Y: 4}, {X: 4, Y: 19}}))
}

func TestAvailableOccupied(t *testing.T) {
	grid := blocks.NewGrid(10, 19)
	require.NoError(t, grid.Apply([]blocks.Coord{{X: 4, Y: 10}}, nil))

	assert.False(t, grid.Available([]blocks.Coord{{X: 4, Y: 10}}))
	assert.False(t, grid.Available([]blocks.Coord{{X: 3, Y: 10}, {X: 4, Y: 10}}))
	assert.True(t, grid.Available([]blocks.Coord{{X: 3, Y: 10}, {X: 5, Y: 10}}))
}

func TestApplySetAndUnset(t *testing.T) {
	grid := blocks.NewGrid(10, 19)
	coords := []blocks.Coord{{X: 1, Y: 2}, {X: 2, Y: 2}}

	require.NoError(t, grid.Apply(coords, nil))
	cells := grid.Snapshot()
	assert.True(t, cells[2][1])
	assert.True(t, cells[2][2])

	require.NoError(t, grid.Apply(nil, coords))
	cells = grid.Snapshot()
	assert.False(t, cells[2][1])
	assert.False(t, cells[2][2])
}

func TestApplyInvariantViolations(t *testing.T) {
	grid := blocks.NewGrid(10, 19)
	require.NoError(t, grid.Apply([]blocks.Coord{{X: 5, Y: 5}}, nil))

	err := grid.Apply([]blocks.Coord{{X: 5, Y: 5}}, nil)
	assert.ErrorIs(t, err, blocks.ErrInvariantViolation)

	err = grid.Apply(nil, []blocks.Coord{{X: 6, Y: 5}})
	assert.ErrorIs(t, err, blocks.ErrInvariantViolation)

	err = grid.Apply([]blocks.Coord{{X: 0, Y: 19}}, nil)
	assert.ErrorIs(t, err, blocks.ErrInvariantViolation)
}

func TestCompactSingleRow(t *testing.T) {
	grid := blocks.NewGrid(10, 19)
	fillRow(t, grid, 18)
	// Marker cell above the full row must shift down with its row.
	require.NoError(t, grid.Apply([]blocks.Coord{{X: 0, Y: 17}}, nil))

	assert.Equal(t, 1, grid.Compact())

	cells := grid.Snapshot()
	assert.Len(t, cells, 19)
	for x := 0; x < 10; x++ {
		assert.False(t, cells[0][x], "fresh top row should be free at x=%d", x)
	}
	assert.True(t, cells[18][0], "marker row should have moved to the bottom")
	for x := 1; x < 10; x++ {
		assert.False(t, cells[18][x])
	}
}

func TestCompactMultipleRows(t *testing.T) {
	grid := blocks.NewGrid(10, 19)
	fillRow(t, grid, 16)
	fillRow(t, grid, 18)
	require.NoError(t, grid.Apply([]blocks.Coord{{X: 3, Y: 17}}, nil))

	assert.Equal(t, 2, grid.Compact())

	cells := grid.Snapshot()
	// Only the marker survives, pushed to the bottom row.
	for y := 0; y < 18; y++ {
		for x := 0; x < 10; x++ {
			assert.False(t, cells[y][x], "unexpected cell at (%d, %d)", x, y)
		}
	}
	assert.True(t, cells[18][3])
}

func TestCompactNoFullRows(t *testing.T) {
	grid := blocks.NewGrid(10, 19)
	require.NoError(t, grid.Apply([]blocks.Coord{{X: 0, Y: 18}, {X: 9, Y: 18}}, nil))
	assert.Equal(t, 0, grid.Compact())
	cells := grid.Snapshot()
	assert.True(t, cells[18][0])
	assert.True(t, cells[18][9])
}

func TestSnapshotIsACopy(t *testing.T) {
	grid := blocks.NewGrid(10, 19)
	cells := grid.Snapshot()
	cells[0][0] = true
	assert.False(t, grid.Snapshot()[0][0])
}

func fillRow(t *testing.T, grid *blocks.Grid, y int) {
	t.Helper()
	coords := make([]blocks.Coord, grid.Width())
	for x := range coords {
		coords[x] = blocks.Coord{X: x, Y: y}
	}
	require.NoError(t, grid.Apply(coords, nil))
}
