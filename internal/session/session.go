// Package session ties one save file to a game in progress: it loads the
// file, builds the game, keeps the highscore table and writes accepted
// entries back to disk.
package session

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/espipes/internal/games/pipes"
	"github.com/vovakirdan/espipes/internal/highscore"
	"github.com/vovakirdan/espipes/internal/savefile"
	"github.com/vovakirdan/espipes/internal/storage"
)

// Session errors.
var (
	ErrNotSolved     = errors.New("session: puzzle is not solved")
	ErrUnrecordable  = errors.New("session: too many moves to record")
	ErrAlreadySubmit = errors.New("session: run already submitted")
)

// HistoryStore records finished runs. *storage.Store implements it.
type HistoryStore interface {
	SaveRun(r storage.Run) (string, error)
}

// Options configures a session. Zero values are valid.
type Options struct {
	Logger *log.Logger
	Store  HistoryStore
}

// Session is one play session on a save file.
type Session struct {
	path      string
	file      *savefile.File
	game      *pipes.Game
	table     *highscore.Table
	logger    *log.Logger
	store     HistoryStore
	submitted bool // current attempt already offered to the table
	recorded  bool // current attempt already written to history
}

// Open loads the save file at path and starts a game on it.
func Open(path string, opts Options) (*Session, error) {
	f, err := savefile.Load(path)
	if err != nil {
		return nil, err
	}
	return New(f, opts)
}

// New starts a session on an already parsed file.
func New(f *savefile.File, opts Options) (*Session, error) {
	h := f.Header
	game, err := pipes.NewGame(int(h.Width), int(h.Height), f.Payload,
		fileCoord(h.Start), fileCoord(h.End))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", savefile.ErrInvalidFormat, err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		path:   f.Path,
		file:   f,
		game:   game,
		table:  highscore.NewTable(f.Entries),
		logger: logger,
		store:  opts.Store,
	}
	s.logger.Debug("save file loaded",
		"path", f.Path,
		"size", fmt.Sprintf("%dx%d", h.Width, h.Height),
		"start", game.Grid().Start(),
		"end", game.Grid().End(),
		"submissions", h.Submissions,
	)
	return s, nil
}

// fileCoord converts an on-disk 0-based position to a grid coordinate.
func fileCoord(p [2]uint8) pipes.Coord {
	return pipes.At(int(p[0])+1, int(p[1])+1)
}

// Path returns the save file path.
func (s *Session) Path() string {
	return s.path
}

// Game returns the game in progress.
func (s *Session) Game() *pipes.Game {
	return s.game
}

// Grid returns the live grid.
func (s *Session) Grid() *pipes.Grid {
	return s.game.Grid()
}

// Entries returns the current highscore table.
func (s *Session) Entries() []highscore.Entry {
	return s.table.Entries()
}

// Rotate turns one pipe and logs the result.
func (s *Session) Rotate(row, col int, clockwise bool) error {
	if err := s.game.Rotate(row, col, clockwise); err != nil {
		s.logger.Debug("rotate rejected", "row", row, "col", col, "error", err)
		return err
	}
	s.logger.Debug("rotate", "row", row, "col", col, "clockwise", clockwise,
		"moves", s.game.Moves(), "solved", s.game.Solved())
	if s.game.Solved() {
		s.logger.Info("puzzle solved", "path", s.path, "moves", s.game.Moves())
	}
	return nil
}

// Execute applies a rotate or restart command. Other kinds are ignored.
func (s *Session) Execute(cmd pipes.Command) error {
	switch cmd.Kind {
	case pipes.CmdRotate:
		return s.Rotate(cmd.Row, cmd.Col, cmd.Clockwise)
	case pipes.CmdRestart:
		s.Restart()
	}
	return nil
}

// Restart abandons the current attempt and reloads the original layout.
func (s *Session) Restart() {
	s.recordAttempt("", -1)
	s.game.Restart()
	s.submitted = false
	s.recorded = false
	s.logger.Debug("restart", "path", s.path)
}

// Score returns the current move count as a table score.
func (s *Session) Score() (uint8, bool) {
	return highscore.ScoreFromMoves(s.game.Moves())
}

// Qualifies reports whether the solved run would enter the highscore table.
func (s *Session) Qualifies() bool {
	if !s.game.Solved() || s.submitted {
		return false
	}
	score, ok := s.Score()
	return ok && s.table.Qualifies(score)
}

// Submit validates name, inserts the solved run into the table and writes
// the table back to the save file. The in-memory table only changes after
// the file write succeeded. The returned rank is -1 when the run did not
// qualify; nothing is written in that case.
func (s *Session) Submit(name string) (int, error) {
	if !s.game.Solved() {
		return -1, ErrNotSolved
	}
	if s.submitted {
		return -1, ErrAlreadySubmit
	}
	letters, err := highscore.ValidateName(name)
	if err != nil {
		return -1, err
	}
	score, ok := s.Score()
	if !ok {
		return -1, fmt.Errorf("%w: %d", ErrUnrecordable, s.game.Moves())
	}

	next, rank := highscore.Insert(s.table.Entries(), highscore.NewEntry(score, letters))
	if rank < 0 {
		s.submitted = true
		return -1, nil
	}
	if err := savefile.WriteScores(s.path, s.file.Header, next); err != nil {
		s.logger.Error("writing highscores failed", "path", s.path, "error", err)
		return -1, err
	}

	s.table = highscore.NewTable(next)
	s.file.Entries = next
	s.submitted = true
	s.logger.Debug("highscore saved", "name", string(letters[:]), "score", score, "rank", rank)
	s.recordAttempt(string(letters[:]), rank)
	return rank, nil
}

// Close records the current attempt in the run history if it has not
// been recorded yet.
func (s *Session) Close() {
	s.recordAttempt("", -1)
}

// recordAttempt writes the current attempt to history once. Attempts
// without a single move are not recorded.
func (s *Session) recordAttempt(name string, rank int) {
	if s.store == nil || s.recorded || s.game.Moves() == 0 {
		return
	}
	s.recorded = true

	key, err := filepath.Abs(s.path)
	if err != nil {
		key = s.path
	}
	id, err := s.store.SaveRun(storage.Run{
		SaveFile: key,
		Moves:    s.game.Moves(),
		Solved:   s.game.Solved(),
		Name:     name,
		Rank:     rank,
	})
	if err != nil {
		s.logger.Warn("could not record run", "error", err)
		return
	}
	s.logger.Debug("run recorded", "id", id)
}
