package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/espipes/internal/highscore"
)

// newScoreTable creates the highscore table with one row per filled slot.
// The new entry, if any, is selected.
func newScoreTable(entries []highscore.Entry, highlight int) table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Name", Width: 6},
		{Title: "Moves", Width: 7},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(scoreRows(entries)),
		table.WithFocused(true),
		table.WithHeight(max(len(entries), 1)+1),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	if highlight >= 0 {
		t.SetCursor(highlight)
	}
	return t
}

// scoreRows formats the filled slots.
func scoreRows(entries []highscore.Entry) []table.Row {
	var rows []table.Row
	for i, e := range entries {
		if e.Empty() {
			continue
		}
		rows = append(rows, table.Row{
			fmt.Sprintf("#%d", i+1),
			e.NameString(),
			fmt.Sprintf("%d", e.Score),
		})
	}
	return rows
}
