package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zaydosman/pyblocks/blocks"
)

// frameMsg and gameOverMsg carry the engine that produced them so the model
// can discard stragglers from a finished game's gravity loop.
type frameMsg struct {
	engine *blocks.Engine
	result blocks.Result
}

type gameOverMsg struct {
	engine *blocks.Engine
	score  int
}

// runGravity is the game's second thread of control, alongside the input
// path running through the bubbletea event loop. It drives the engine's
// downward translation at the configured cadence, never sleeping while the
// engine lock is held, and stops as soon as it observes the game-over latch.
func runGravity(program *tea.Program, engine *blocks.Engine, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		result, err := engine.Tick()
		if err != nil {
			// Invariant violations abort the tick, not the game; the
			// latch is still observed below.
			DebugLogf("tick error: %v", err)
		}
		program.Send(frameMsg{engine: engine, result: result})
		if engine.Over() {
			program.Send(gameOverMsg{engine: engine, score: engine.Score()})
			return
		}
	}
}

// superviseGravity runs one gravity loop per engine sent on starts, one game
// at a time. A new game cannot begin before the previous loop has seen its
// game-over latch and returned.
func superviseGravity(program *tea.Program, starts <-chan *blocks.Engine, interval time.Duration) {
	for engine := range starts {
		runGravity(program, engine, interval)
	}
}
