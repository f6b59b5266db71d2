// Package tui provides the Bubble Tea front end: cursor-driven play on the
// board, name entry for new highscores and the final score table.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusTimeout is how long a status line stays visible.
const statusTimeout = 3 * time.Second

// clearStatusMsg asks the model to clear the status line it set at seq.
type clearStatusMsg struct {
	seq int
}

// clearStatusCmd returns a command that expires status message seq.
func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
