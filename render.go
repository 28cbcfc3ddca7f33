package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Name        string
	BorderColor lipgloss.Color
	TextColor   lipgloss.Color
	AccentColor lipgloss.Color
	BlockColor  lipgloss.Color
}

var themes = []Theme{
	{
		Name:        "Classic Terminal",
		BorderColor: lipgloss.Color("15"),
		TextColor:   lipgloss.Color("250"),
		AccentColor: lipgloss.Color("226"),
		BlockColor:  lipgloss.Color("51"),
	},
	{
		Name:        "Amber CRT",
		BorderColor: lipgloss.Color("214"),
		TextColor:   lipgloss.Color("223"),
		AccentColor: lipgloss.Color("208"),
		BlockColor:  lipgloss.Color("220"),
	},
	{
		Name:        "Ocean Neon",
		BorderColor: lipgloss.Color("33"),
		TextColor:   lipgloss.Color("159"),
		AccentColor: lipgloss.Color("39"),
		BlockColor:  lipgloss.Color("45"),
	},
	{
		Name:        "Mono Matrix",
		BorderColor: lipgloss.Color("250"),
		TextColor:   lipgloss.Color("245"),
		AccentColor: lipgloss.Color("82"),
		BlockColor:  lipgloss.Color("248"),
	},
}

const scoresPageSize = 10

func themeIndexByName(name string) int {
	for i, theme := range themes {
		if theme.Name == name {
			return i
		}
	}
	return -1
}

func titleStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(theme.AccentColor)
}

func helpStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().Faint(true).Foreground(theme.TextColor)
}

func boardStyle(theme Theme) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(0, 1)
}

func viewMenu(m Model) string {
	theme := themes[m.themeIndex]
	items := make([]string, len(menuItems))
	copy(items, menuItems)
	if m.config.Sound {
		items[menuSound] = "Sound: On"
	} else {
		items[menuSound] = "Sound: Off"
	}
	content := renderMenu("PYBLOCKS", items, m.menuIndex, "Enter to select, Q to quit", theme)
	return center(m.width, m.height, content)
}

func renderMenu(title string, items []string, selected int, help string, theme Theme) string {
	var b strings.Builder
	b.WriteString(titleStyle(theme).Render(title))
	b.WriteString("\n\n")
	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.AccentColor)
	normalStyle := lipgloss.NewStyle().Foreground(theme.TextColor)
	for i, item := range items {
		if i == selected {
			b.WriteString(selectedStyle.Render("> " + item))
		} else {
			b.WriteString(normalStyle.Render("  " + item))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle(theme).Render(help))
	return boardStyle(theme).Render(b.String())
}

func viewGame(m Model) string {
	theme := themes[m.themeIndex]
	cells, score := m.engine.Snapshot()

	block := lipgloss.NewStyle().Foreground(theme.BlockColor).Render("██")
	var board strings.Builder
	for y, row := range cells {
		for _, set := range row {
			if set {
				board.WriteString(block)
			} else {
				board.WriteString("  ")
			}
		}
		if y < len(cells)-1 {
			board.WriteString("\n")
		}
	}

	scoreLine := titleStyle(theme).Render(fmt.Sprintf("SCORE: %d", score))
	help := helpStyle(theme).Render("←↓→ move, ↑ rotate, Esc quit")
	content := lipgloss.JoinVertical(
		lipgloss.Left,
		scoreLine,
		boardStyle(theme).Render(board.String()),
		help,
	)
	return center(m.width, m.height, content)
}

func viewThemes(m Model) string {
	theme := themes[m.themeIndex]
	items := make([]string, 0, len(themes))
	for _, t := range themes {
		items = append(items, t.Name)
	}
	swatch := lipgloss.NewStyle().Foreground(theme.BlockColor).Render("██ ██ ██")
	preview := lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle(theme).Render("Theme Preview"),
		swatch,
	)
	menu := renderMenu("Themes", items, m.themeIndex, "Enter to apply, Esc to back", theme)
	content := lipgloss.JoinVertical(lipgloss.Left, preview, "", menu)
	return center(m.width, m.height, content)
}

func viewScores(m Model) string {
	theme := themes[m.themeIndex]
	var b strings.Builder
	b.WriteString(titleStyle(theme).Render("Scores"))
	b.WriteString("\n\n")
	switch {
	case m.syncLoading:
		b.WriteString("Loading...\n")
	case len(m.scores) == 0:
		b.WriteString("No scores yet.\n")
	default:
		start := m.scoresOffset
		end := start + scoresPageSize
		if end > len(m.scores) {
			end = len(m.scores)
		}
		for i, score := range m.scores[start:end] {
			line := fmt.Sprintf("%2d. %-12s %7d  %s", start+i+1, score.Name, score.Score, score.When)
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	if m.syncWarning != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle(theme).Render(m.syncWarning))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle(theme).Render("Enter or Esc to back"))
	return center(m.width, m.height, boardStyle(theme).Render(b.String()))
}

func viewNameEntry(m Model) string {
	theme := themes[m.themeIndex]
	var b strings.Builder
	b.WriteString(titleStyle(theme).Render("Game Over!"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Your score was %d\n\n", m.finalScore))
	b.WriteString("Enter your name:\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.AccentColor).Render(m.nameInput + "_"))
	b.WriteString("\n\n")
	b.WriteString(helpStyle(theme).Render("Enter to save, Esc to skip"))
	return center(m.width, m.height, boardStyle(theme).Render(b.String()))
}

func center(width, height int, content string) string {
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
