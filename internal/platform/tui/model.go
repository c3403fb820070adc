package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/handflap/internal/core"
	"github.com/vovakirdan/handflap/internal/game"
	"github.com/vovakirdan/handflap/internal/registry"
)

// Options configures an interactive session.
type Options struct {
	Runtime    core.RuntimeConfig // Terminal size and tick rate
	SourceName string             // Shown in the status line
	Logger     *log.Logger
}

// Model is the Bubble Tea model for an interactive session.
// It owns the game and polls the landmark source once per tick.
type Model struct {
	game       *game.Game
	source     registry.Source
	steer      registry.Steerable // nil unless the source is keyboard driven
	sourceName string
	screen     *core.Screen
	keys       KeyMap
	help       help.Model
	logger     *log.Logger
	tickRate   int
	budget     time.Duration
	due        time.Time // when the next frame is due
	inputFrame core.InputFrame
	gameState  core.GameState
	paused     bool
	quitting   bool
	err        error
}

// NewModel creates a new Bubble Tea model driving g from src.
func NewModel(g *game.Game, src registry.Source, opts Options) Model {
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	keys := DefaultKeyMap()
	steer, ok := src.(registry.Steerable)
	if !ok {
		keys.Up.SetEnabled(false)
		keys.Down.SetEnabled(false)
		keys.Hide.SetEnabled(false)
	}

	return Model{
		game:       g,
		source:     src,
		steer:      steer,
		sourceName: opts.SourceName,
		screen:     core.NewScreen(cfg.ScreenW, gameRows(cfg.ScreenH)),
		keys:       keys,
		help:       help.New(),
		logger:     logger,
		tickRate:   cfg.TickRate,
		budget:     time.Second / time.Duration(cfg.TickRate),
		inputFrame: core.NewInputFrame(),
		gameState:  g.State(),
	}
}

// gameRows leaves the last terminal row for the status line.
func gameRows(h int) int {
	return max(h-1, 1)
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		m.logger.Info("quit", "score", m.gameState.Score)
		return m, tea.Quit

	case core.ActionPause:
		m.paused = !m.paused
		m.logger.Debug("pause toggled", "paused", m.paused)

	case core.ActionRestart:
		m.inputFrame.Set(action)

	case core.ActionUp, core.ActionDown, core.ActionHide:
		if !m.paused {
			m.steer.Steer(action)
		}
	}

	return m, nil
}

// handleResize processes window resize events. The playfield is scaled
// into whatever the terminal offers, so the game itself is untouched.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.screen.Resize(msg.Width, gameRows(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick polls the source and advances the game by one step. The poll
// may wait until the frame is due, never longer.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.paused {
		m.due = time.Time{}
		return m, tickCmd(m.tickRate)
	}

	// Frames are paced against a deadline so the time spent polling is
	// part of the frame, not added to it
	now := time.Now()
	if drift := now.Sub(m.due); m.due.IsZero() || drift > m.budget || drift < -m.budget {
		m.due = now
	}
	m.due = m.due.Add(m.budget)

	// Restart is ignored while the round is still running
	if m.inputFrame.Has(core.ActionRestart) && m.game.Restart() {
		m.logger.Info("restarted")
	}

	ctx, cancel := context.WithDeadline(context.Background(), m.due)
	sample, err := m.source.Sample(ctx)
	cancel()
	if err != nil {
		m.err = err
		m.quitting = true
		m.logger.Error("input lost", "error", err, "score", m.gameState.Score)
		return m, tea.Quit
	}

	m.inputFrame.Tracking = sample
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Clear input for next frame
	m.inputFrame.Clear()

	if result.Scored > 0 {
		m.logger.Debug("obstacle passed", "score", result.State.Score)
	}
	if result.Ended {
		m.logger.Info("game over", "score", result.State.Score)
	}

	return m, tickAt(m.due)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	var s string
	if m.paused {
		s += pausedStyle.Render("PAUSED")
	}
	if m.sourceName != "" {
		s += sourceStyle.Render(m.sourceName)
	}
	return s + m.help.View(m.keys)
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program and blocks until the session ends.
// The caller owns src and closes it after Run returns.
func Run(g *game.Game, src registry.Source, opts Options) error {
	p := tea.NewProgram(
		NewModel(g, src, opts),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return fmt.Errorf("tui: %w", m.err)
	}
	return nil
}
