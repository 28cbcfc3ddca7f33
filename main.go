package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zaydosman/pyblocks/blocks"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()
	EnableDebugLogging(*debug)

	cfg, err := LoadRuntimeConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	DebugLogf("pyblocks start board=%dx%d tick=%v sync=%v", cfg.Width, cfg.Height, cfg.TickInterval, cfg.ScoreSync)

	starts := make(chan *blocks.Engine, 1)
	program := tea.NewProgram(NewModel(cfg, starts), tea.WithAltScreen())
	go superviseGravity(program, starts, cfg.TickInterval)

	finalModel, err := program.Run()
	if err != nil {
		DebugLogf("program error: %v", err)
		os.Exit(1)
	}
	if m, ok := finalModel.(Model); ok && m.played {
		fmt.Printf("Game Over! Your score was %d\n", m.finalScore)
	}
}
