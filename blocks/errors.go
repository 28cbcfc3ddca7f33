package blocks

import "errors"

// The engine distinguishes programmer-invariant violations from normal game
// outcomes (rejected moves, lock-down, game over). These errors should never
// surface when the engine is driven only through Tick and HandleAction.
var (
	ErrUnknownShape       = errors.New("unknown shape type")
	ErrUnrecognizedAction = errors.New("unrecognized action")
	ErrIllegalMove        = errors.New("illegal move")
	ErrInvariantViolation = errors.New("grid invariant violation")
	ErrDoubleSpawn        = errors.New("double spawn")
)
