package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/espipes/internal/core"
	"github.com/vovakirdan/espipes/internal/games/pipes"
	"github.com/vovakirdan/espipes/internal/highscore"
	"github.com/vovakirdan/espipes/internal/platform/style"
	"github.com/vovakirdan/espipes/internal/session"
)

// boardTop is the screen row the board starts on, below the title and a
// blank line.
const boardTop = 2

type phase int

const (
	phasePlay phase = iota
	phaseName
	phaseScores
)

// Options configures the TUI.
type Options struct {
	Render  pipes.RenderOptions
	Runtime core.RuntimeConfig
	// ScreenshotDir receives ctrl+s board captures. Empty means
	// ~/.espipes/screenshots.
	ScreenshotDir string
}

// Model is the Bubble Tea model for one session.
type Model struct {
	session   *session.Session
	opts      Options
	keys      KeyMap
	nameKeys  NameKeyMap
	scoreKeys ScoresKeyMap
	help      help.Model
	input     textinput.Model
	scores    table.Model

	phase     phase
	cursor    pipes.Coord
	status    string
	statusErr bool
	statusSeq int
	quitting  bool
}

// NewModel creates a model playing s.
func NewModel(s *session.Session, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "AAA"
	ti.CharLimit = highscore.NameLength
	ti.Width = highscore.NameLength + 1
	ti.Prompt = "Name: "

	m := Model{
		session:   s,
		opts:      opts,
		keys:      DefaultKeyMap(),
		nameKeys:  DefaultNameKeyMap(),
		scoreKeys: DefaultScoresKeyMap(),
		help:      help.New(),
		input:     ti,
		cursor:    s.Grid().Start(),
	}
	m.help.Width = opts.Runtime.ScreenW
	if s.Game().Solved() {
		m.enterScores(-1)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil

	case tea.MouseMsg:
		if m.phase == phasePlay {
			return m.handleMouse(msg)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.phase {
		case phaseName:
			return m.handleNameKey(msg)
		case phaseScores:
			return m.handleScoresKey(msg)
		default:
			return m.handlePlayKey(msg)
		}
	}
	return m, nil
}

// handlePlayKey processes keyboard input on the board.
func (m Model) handlePlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		return m.saveScreenshot()
	}

	action := m.keys.Action(msg)
	switch {
	case action == core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case action.IsMove():
		drow, dcol := action.Delta()
		g := m.session.Grid()
		m.cursor = pipes.At(
			core.Clamp(m.cursor.Row+drow, 1, g.Height()),
			core.Clamp(m.cursor.Col+dcol, 1, g.Width()),
		)
	case action == core.ActionRotateCW:
		return m.rotate(m.cursor, true)
	case action == core.ActionRotateCCW:
		return m.rotate(m.cursor, false)
	case action == core.ActionRestart:
		m.session.Restart()
		return m.setStatus("Board restored", false)
	case action == core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// handleMouse rotates the clicked pipe: left button clockwise, right
// button counter-clockwise.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	c, ok := pipes.CellAt(m.session.Grid(), msg.X, msg.Y, 0, boardTop)
	if !ok {
		return m, nil
	}
	m.cursor = c

	switch msg.Button {
	case tea.MouseButtonLeft:
		return m.rotate(c, true)
	case tea.MouseButtonRight:
		return m.rotate(c, false)
	}
	return m, nil
}

// rotate applies one move and advances to name entry once solved.
func (m Model) rotate(c pipes.Coord, clockwise bool) (tea.Model, tea.Cmd) {
	if err := m.session.Rotate(c.Row, c.Col, clockwise); err != nil {
		return m.setStatus(statusText(err), true)
	}
	if !m.session.Game().Solved() {
		return m, nil
	}

	if m.session.Qualifies() {
		m.phase = phaseName
		m.input.Reset()
		focus := m.input.Focus()
		next, cmd := m.setStatus("Beat highscore!", false)
		return next, tea.Batch(cmd, focus)
	}
	m.enterScores(-1)
	if _, ok := m.session.Score(); !ok {
		return m.setStatus(fmt.Sprintf("Solved in %d moves, too many to record", m.session.Game().Moves()), false)
	}
	return m, nil
}

// handleNameKey processes input while the highscore name is typed.
func (m Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.nameKeys.Skip):
		m.input.Blur()
		m.enterScores(-1)
		return m, nil

	case key.Matches(msg, m.nameKeys.Submit):
		rank, err := m.session.Submit(m.input.Value())
		if errors.Is(err, highscore.ErrInvalidName) {
			m.input.Reset()
			return m.setStatus("Please enter 3 letters", true)
		}
		m.input.Blur()
		m.enterScores(rank)
		if err != nil {
			return m.setStatus(statusText(err), true)
		}
		return m.setStatus(fmt.Sprintf("Saved as #%d", rank+1), false)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handleScoresKey processes input on the final table.
func (m Model) handleScoresKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.scoreKeys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.scoreKeys.Restart):
		m.session.Restart()
		m.cursor = m.session.Grid().Start()
		if m.session.Game().Solved() {
			// The original layout is already connected
			m.enterScores(-1)
			return m.setStatus("Puzzle is solved as loaded", false)
		}
		m.phase = phasePlay
		return m, nil
	}

	var cmd tea.Cmd
	m.scores, cmd = m.scores.Update(msg)
	return m, cmd
}

// enterScores switches to the table view with row highlight selected.
func (m *Model) enterScores(highlight int) {
	m.phase = phaseScores
	m.scores = newScoreTable(m.session.Entries(), highlight)
}

// setStatus shows text on the status line until it times out.
func (m Model) setStatus(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	return m, clearStatusCmd(m.statusSeq)
}

// statusText strips the package prefix from err for display.
func statusText(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 && !strings.Contains(msg[:i], " ") {
		msg = msg[i+2:]
	}
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

// saveScreenshot writes the plain-text board to a timestamped file.
func (m Model) saveScreenshot() (tea.Model, tea.Cmd) {
	dir := m.opts.ScreenshotDir
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".espipes", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return m.setStatus(statusText(err), true)
	}

	base := strings.TrimSuffix(filepath.Base(m.session.Path()), filepath.Ext(m.session.Path()))
	name := fmt.Sprintf("%s_%s.txt", base, time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)

	plain := m.opts.Render
	plain.Cursor = nil
	if err := os.WriteFile(path, []byte(pipes.RenderText(m.session.Grid(), plain)+"\n"), 0o600); err != nil {
		return m.setStatus(statusText(err), true)
	}
	return m.setStatus("Saved "+path, false)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	color := m.opts.Runtime.Color

	title := fmt.Sprintf("%s   moves: %d", filepath.Base(m.session.Path()), m.session.Game().Moves())
	if m.session.Game().Solved() {
		title += "   solved!"
	}

	opts := m.opts.Render
	if m.phase == phasePlay {
		cursor := m.cursor
		opts.Cursor = &cursor
	}
	board := style.RenderScreen(pipes.RenderScreen(m.session.Grid(), opts), color)

	sections := []string{style.Render(style.Title, color, title), "", board, ""}

	if w, h := pipes.BoardSize(m.session.Grid(), opts.Legend); m.opts.Runtime.ScreenW > 0 &&
		(w > m.opts.Runtime.ScreenW || h+boardTop > m.opts.Runtime.ScreenH) {
		sections = append(sections, style.Render(style.Error, color, "Terminal too small for the whole board"))
	}

	switch m.phase {
	case phaseName:
		sections = append(sections, m.input.View(), "", m.help.View(m.nameKeys))
	case phaseScores:
		if len(m.scores.Rows()) > 0 {
			sections = append(sections, style.Render(style.Title, color, "Highscores"), m.scores.View())
		} else {
			sections = append(sections, style.Render(style.Dim, color, "No highscores yet"))
		}
		sections = append(sections, "", m.help.View(m.scoreKeys))
	default:
		sections = append(sections, m.help.View(m.keys))
	}

	if m.status != "" {
		st := style.Success
		if m.statusErr {
			st = style.Error
		}
		sections = append(sections, "", style.Render(st, color, m.status))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Run starts the Bubble Tea program on s.
func Run(s *session.Session, opts Options) error {
	defer s.Close()

	p := tea.NewProgram(
		NewModel(s, opts),
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Click to rotate
	)

	_, err := p.Run()
	return err
}
