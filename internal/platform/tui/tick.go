// Package tui runs an interactive handflap session in the terminal: the
// Bubble Tea loop paces the game, maps keys to commands and draws frames.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent once per frame.
type TickMsg time.Time

// tickCmd schedules the next frame one interval from now.
func tickCmd(tickRate int) tea.Cmd {
	return tickAfter(time.Second / time.Duration(tickRate))
}

// tickAt schedules the next frame at a deadline. A deadline already in the
// past fires immediately.
func tickAt(due time.Time) tea.Cmd {
	return tickAfter(time.Until(due))
}

func tickAfter(d time.Duration) tea.Cmd {
	return tea.Tick(max(d, 0), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
