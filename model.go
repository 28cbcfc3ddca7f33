package main

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zaydosman/pyblocks/blocks"
)

type Screen int

const (
	screenMenu Screen = iota
	screenGame
	screenThemes
	screenScores
	screenNameEntry
)

type soundMsg struct{}

type scoresLoadedMsg struct {
	scores []ScoreEntry
	err    error
}

type scoreUploadedMsg struct {
	err error
}

type Model struct {
	screen       Screen
	width        int
	height       int
	menuIndex    int
	themeIndex   int
	scoresOffset int
	config       Config
	runtime      RuntimeConfig
	scores       []ScoreEntry
	engine       *blocks.Engine
	starts       chan<- *blocks.Engine
	finalScore   int
	played       bool
	nameInput    string
	sound        *SoundEngine
	sync         *ScoreSync
	syncWarning  string
	syncLoading  bool
}

func NewModel(runtime RuntimeConfig, starts chan<- *blocks.Engine) Model {
	config, _ := loadConfig()
	index := themeIndexByName(config.Theme)
	if index < 0 {
		index = 0
		config.Theme = themes[index].Name
	}
	sync := NewScoreSync(runtime)
	scores := []ScoreEntry{}
	if !sync.Enabled() {
		scores, _ = loadScores()
	}
	return Model{
		screen:     screenMenu,
		config:     config,
		runtime:    runtime,
		scores:     scores,
		themeIndex: index,
		starts:     starts,
		sound:      NewSoundEngine(config.Sound),
		sync:       sync,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case frameMsg:
		if m.screen != screenGame || msg.engine != m.engine {
			return m, nil
		}
		// Re-rendering happens on any message; only sounds need routing.
		return m, m.soundForTick(msg.result)
	case gameOverMsg:
		if m.screen != screenGame || msg.engine != m.engine {
			// Stale report from a finished game, or the input path
			// already moved us to name entry.
			return m, nil
		}
		return m, m.finishGame(msg.score)
	case soundMsg:
		return m, nil
	case scoresLoadedMsg:
		if msg.err != nil {
			DebugLogf("scores fetch error: %v", msg.err)
			m.syncWarning = "Offline: scores not synced."
			m.syncLoading = false
			return m, nil
		}
		m.syncWarning = ""
		m.scores = msg.scores
		m.syncLoading = false
		return m, nil
	case scoreUploadedMsg:
		if msg.err != nil {
			DebugLogf("score upload error: %v", msg.err)
			m.syncWarning = "Offline: scores not synced."
		}
		m.syncLoading = false
		return m, nil
	case tea.KeyMsg:
		switch m.screen {
		case screenMenu:
			return m, m.updateMenu(msg)
		case screenGame:
			return m, m.updateGame(msg)
		case screenThemes:
			return m, m.updateThemes(msg)
		case screenScores:
			return m, m.updateScores(msg)
		case screenNameEntry:
			return m, m.updateNameEntry(msg)
		}
	}
	return m, nil
}

func (m Model) View() string {
	switch m.screen {
	case screenMenu:
		return viewMenu(m)
	case screenGame:
		return viewGame(m)
	case screenThemes:
		return viewThemes(m)
	case screenScores:
		return viewScores(m)
	case screenNameEntry:
		return viewNameEntry(m)
	default:
		return ""
	}
}

func playSound(engine *SoundEngine, event SoundEvent) tea.Cmd {
	return func() tea.Msg {
		if engine != nil {
			engine.Play(event)
		}
		return soundMsg{}
	}
}

var menuItems = []string{
	"Start Game",
	"Themes",
	"Scores",
	"Sound",
	"Quit",
}

const (
	menuStart = iota
	menuThemes
	menuScores
	menuSound
	menuQuit
)

func (m *Model) updateMenu(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch msg.String() {
	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
			if m.config.Sound {
				cmd = playSound(m.sound, SoundMenuMove)
			}
		}
	case "down", "j":
		if m.menuIndex < len(menuItems)-1 {
			m.menuIndex++
			if m.config.Sound {
				cmd = playSound(m.sound, SoundMenuMove)
			}
		}
	case "enter":
		if m.config.Sound {
			cmd = playSound(m.sound, SoundMenuSelect)
		}
		switch m.menuIndex {
		case menuStart:
			return tea.Batch(cmd, m.startGame())
		case menuThemes:
			m.screen = screenThemes
		case menuScores:
			m.scoresOffset = 0
			m.screen = screenScores
			if m.sync.Enabled() {
				m.syncLoading = true
				return tea.Batch(cmd, m.sync.FetchScoresCmd())
			}
		case menuSound:
			m.config.Sound = !m.config.Sound
			m.sound.SetEnabled(m.config.Sound)
			_ = saveConfig(m.config)
		case menuQuit:
			return tea.Quit
		}
	case "q", "esc":
		return tea.Quit
	}
	return cmd
}

// startGame builds a fresh engine and hands it to the gravity supervisor.
// The channel buffers one pending game: a previous game's loop may still be
// waiting out its final tick when the next game is started from the menu.
func (m *Model) startGame() tea.Cmd {
	m.engine = blocks.NewEngine(m.runtime.Width, m.runtime.Height)
	m.screen = screenGame
	m.starts <- m.engine
	return nil
}

func (m *Model) updateGame(msg tea.KeyMsg) tea.Cmd {
	// The key-to-action boundary: every other key is dropped here and
	// never reaches the engine.
	switch msg.String() {
	case "left", "h":
		return m.act(blocks.TranslateLeft)
	case "right", "l":
		return m.act(blocks.TranslateRight)
	case "down", "j":
		return m.act(blocks.TranslateDown)
	case "up", "x":
		return m.act(blocks.RotateRight)
	case "q", "esc":
		return m.act(blocks.Quit)
	}
	return nil
}

// act delivers one action to the engine and routes the outcome to sounds and
// screen transitions. Engine errors are caller bugs; they are logged and
// abort only this keystroke.
func (m *Model) act(a blocks.Action) tea.Cmd {
	result, err := m.engine.HandleAction(a)
	if err != nil {
		DebugLogf("action %v error: %v", a, err)
		return nil
	}
	if result.GameOver {
		return m.finishGame(m.engine.Score())
	}
	if cmd := m.soundForTick(result); cmd != nil {
		return cmd
	}
	if result.Applied && m.config.Sound {
		if a == blocks.RotateRight {
			return playSound(m.sound, SoundRotate)
		}
		return playSound(m.sound, SoundMove)
	}
	return nil
}

// soundForTick covers the outcomes gravity and player moves share; per-key
// move and rotate blips are layered on by act.
func (m *Model) soundForTick(result blocks.Result) tea.Cmd {
	if !m.config.Sound {
		return nil
	}
	switch {
	case result.Cleared > 0:
		return playSound(m.sound, SoundLine)
	case result.Locked:
		return playSound(m.sound, SoundLock)
	}
	return nil
}

func (m *Model) finishGame(score int) tea.Cmd {
	m.finalScore = score
	m.played = true
	m.nameInput = ""
	m.screen = screenNameEntry
	DebugLogf("game over, score=%d", score)
	if m.config.Sound {
		return playSound(m.sound, SoundGameOver)
	}
	return nil
}

func (m *Model) updateThemes(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		if m.themeIndex > 0 {
			m.themeIndex--
			if m.config.Sound {
				return playSound(m.sound, SoundMenuMove)
			}
		}
	case "down", "j":
		if m.themeIndex < len(themes)-1 {
			m.themeIndex++
			if m.config.Sound {
				return playSound(m.sound, SoundMenuMove)
			}
		}
	case "enter":
		m.config.Theme = themes[m.themeIndex].Name
		_ = saveConfig(m.config)
		m.screen = screenMenu
		if m.config.Sound {
			return playSound(m.sound, SoundMenuSelect)
		}
	case "q", "esc":
		m.themeIndex = themeIndexByName(m.config.Theme)
		if m.themeIndex < 0 {
			m.themeIndex = 0
		}
		m.screen = screenMenu
	}
	return nil
}

func (m *Model) updateScores(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc", "enter":
		m.screen = screenMenu
		if m.config.Sound {
			return playSound(m.sound, SoundMenuSelect)
		}
	case "up", "k":
		if m.scoresOffset > 0 {
			m.scoresOffset--
		}
	case "down", "j":
		max := len(m.scores) - scoresPageSize
		if max < 0 {
			max = 0
		}
		if m.scoresOffset < max {
			m.scoresOffset++
		}
	}
	return nil
}

func (m *Model) updateNameEntry(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		name := strings.TrimSpace(m.nameInput)
		if name == "" {
			name = "AAA"
		}
		entry := ScoreEntry{
			Name:  name,
			Score: m.finalScore,
			When:  time.Now().Format("2006-01-02 15:04"),
		}
		m.scoresOffset = 0
		m.screen = screenScores
		if m.sync.Enabled() {
			m.syncLoading = true
			return tea.Batch(m.sync.UploadScoreCmd(entry), m.sync.FetchScoresCmd())
		}
		m.scores = insertScore(m.scores, entry)
		_ = saveScores(m.scores)
	case tea.KeyBackspace, tea.KeyDelete:
		if len(m.nameInput) > 0 {
			m.nameInput = m.nameInput[:len(m.nameInput)-1]
		}
	case tea.KeyRunes:
		if len(m.nameInput) < 12 {
			m.nameInput += string(msg.Runes)
		}
	case tea.KeyEsc:
		m.screen = screenMenu
	}
	return nil
}
