package session

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/espipes/internal/games/pipes"
	"github.com/vovakirdan/espipes/internal/highscore"
	"github.com/vovakirdan/espipes/internal/savefile"
	"github.com/vovakirdan/espipes/internal/storage"
)

// memStore records runs in memory.
type memStore struct {
	runs []storage.Run
	err  error
}

func (m *memStore) SaveRun(r storage.Run) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.runs = append(m.runs, r)
	return "run", nil
}

// cornerHeader is a 3x2 board solved by turning (1,2) clockwise once.
var cornerHeader = savefile.Header{
	Width: 3, Height: 2,
	Start:       [2]uint8{0, 0},
	End:         [2]uint8{1, 2},
	Submissions: 2,
}

var cornerPayload = []byte{0x02, 0x0A, 0x00, 0x00, 0x82, 0x20}

func writeSave(t *testing.T, entries []highscore.Entry) string {
	t.Helper()
	data, err := savefile.Encode(cornerHeader, entries, cornerPayload)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "corner.esp")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func defaultEntries() []highscore.Entry {
	return []highscore.Entry{
		highscore.NewEntry(3, highscore.MustName("AAA")),
		highscore.NewEntry(8, highscore.MustName("BBB")),
	}
}

func TestOpen(t *testing.T) {
	s, err := Open(writeSave(t, defaultEntries()), Options{})
	require.NoError(t, err)

	assert.Equal(t, pipes.At(1, 1), s.Grid().Start())
	assert.Equal(t, pipes.At(2, 3), s.Grid().End())
	assert.False(t, s.Game().Solved())
	assert.Equal(t, defaultEntries(), s.Entries())
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.esp"), Options{})
	assert.ErrorIs(t, err, savefile.ErrIO)

	path := filepath.Join(t.TempDir(), "bad.esp")
	require.NoError(t, os.WriteFile(path, []byte("ESpipes\x01\x01\x00\x00\x00\x00\x00\x00"), 0o644))
	_, err = Open(path, Options{})
	assert.ErrorIs(t, err, savefile.ErrInvalidFormat)
}

func TestSolveAndSubmit(t *testing.T) {
	path := writeSave(t, defaultEntries())
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	store := &memStore{}
	s, err := Open(path, Options{Store: store})
	require.NoError(t, err)

	require.NoError(t, s.Rotate(1, 2, true))
	require.True(t, s.Game().Solved())
	require.True(t, s.Qualifies())

	rank, err := s.Submit("new")
	require.NoError(t, err)
	assert.Equal(t, 0, rank)

	want := []highscore.Entry{
		highscore.NewEntry(1, highscore.MustName("NEW")),
		highscore.NewEntry(3, highscore.MustName("AAA")),
	}
	assert.Equal(t, want, s.Entries())

	f, err := savefile.Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, f.Entries)
	assert.Equal(t, cornerPayload, f.Payload, "map payload must never be written")

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(before[:savefile.HeaderSize], after[:savefile.HeaderSize]))

	require.Len(t, store.runs, 1)
	run := store.runs[0]
	assert.Equal(t, "NEW", run.Name)
	assert.Equal(t, 0, run.Rank)
	assert.True(t, run.Solved)
	assert.Equal(t, 1, run.Moves)
	assert.True(t, filepath.IsAbs(run.SaveFile))

	assert.False(t, s.Qualifies())
	_, err = s.Submit("TWO")
	assert.ErrorIs(t, err, ErrAlreadySubmit)

	s.Close()
	assert.Len(t, store.runs, 1, "Close must not record a run twice")
}

func TestSubmitInvalidName(t *testing.T) {
	path := writeSave(t, defaultEntries())
	s, err := Open(path, Options{})
	require.NoError(t, err)
	require.NoError(t, s.Rotate(1, 2, false))
	require.NoError(t, s.Rotate(1, 2, false))
	require.NoError(t, s.Rotate(1, 2, false))
	require.True(t, s.Game().Solved())

	for _, name := range []string{"", "AB", "A1C", "ABCD"} {
		_, err := s.Submit(name)
		assert.ErrorIs(t, err, highscore.ErrInvalidName, "name %q", name)
	}
	assert.Equal(t, defaultEntries(), s.Entries())

	rank, err := s.Submit("cat")
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
}

func TestSubmitBeforeSolve(t *testing.T) {
	s, err := Open(writeSave(t, defaultEntries()), Options{})
	require.NoError(t, err)

	_, err = s.Submit("ABC")
	assert.ErrorIs(t, err, ErrNotSolved)
	assert.False(t, s.Qualifies())
}

func TestSubmitNotQualifying(t *testing.T) {
	entries := []highscore.Entry{
		highscore.NewEntry(0, highscore.MustName("AAA")),
		highscore.NewEntry(1, highscore.MustName("BBB")),
	}
	path := writeSave(t, entries)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	s, err := Open(path, Options{})
	require.NoError(t, err)
	require.NoError(t, s.Rotate(1, 2, true))
	assert.False(t, s.Qualifies())

	rank, err := s.Submit("ZZZ")
	require.NoError(t, err)
	assert.Equal(t, -1, rank)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSubmitWriteFailureKeepsTable(t *testing.T) {
	path := writeSave(t, defaultEntries())
	s, err := Open(path, Options{})
	require.NoError(t, err)
	require.NoError(t, s.Rotate(1, 2, true))

	require.NoError(t, os.Remove(path))

	_, err = s.Submit("ABC")
	assert.ErrorIs(t, err, savefile.ErrIO)
	assert.Equal(t, defaultEntries(), s.Entries())
	assert.True(t, s.Qualifies(), "a failed write leaves the run submittable")
}

func TestRestartRecordsAbandonedAttempt(t *testing.T) {
	store := &memStore{}
	s, err := Open(writeSave(t, defaultEntries()), Options{Store: store})
	require.NoError(t, err)

	s.Restart()
	assert.Empty(t, store.runs, "attempts without moves are not recorded")

	require.NoError(t, s.Rotate(2, 2, true))
	require.NoError(t, s.Rotate(2, 2, true))
	s.Restart()
	require.Len(t, store.runs, 1)
	assert.Equal(t, 2, store.runs[0].Moves)
	assert.False(t, store.runs[0].Solved)
	assert.Equal(t, -1, store.runs[0].Rank)
	assert.Equal(t, 0, s.Game().Moves())

	require.NoError(t, s.Execute(pipes.Rotate(1, 2, true)))
	s.Close()
	require.Len(t, store.runs, 2)
	assert.True(t, store.runs[1].Solved)
}

func TestHistoryFailureIsNotFatal(t *testing.T) {
	store := &memStore{err: errors.New("disk full")}
	s, err := Open(writeSave(t, defaultEntries()), Options{Store: store})
	require.NoError(t, err)
	require.NoError(t, s.Rotate(1, 2, true))

	rank, err := s.Submit("ABC")
	require.NoError(t, err)
	assert.Equal(t, 0, rank)
}

func TestExecute(t *testing.T) {
	s, err := Open(writeSave(t, defaultEntries()), Options{})
	require.NoError(t, err)

	assert.ErrorIs(t, s.Execute(pipes.Rotate(1, 1, true)), pipes.ErrFixedPipe)
	assert.ErrorIs(t, s.Execute(pipes.Rotate(9, 9, true)), pipes.ErrOutOfRange)
	assert.NoError(t, s.Execute(pipes.Command{Kind: pipes.CmdHelp}))

	require.NoError(t, s.Execute(pipes.Rotate(2, 1, true)))
	assert.Equal(t, 1, s.Game().Moves())
	require.NoError(t, s.Execute(pipes.Command{Kind: pipes.CmdRestart}))
	assert.Equal(t, 0, s.Game().Moves())
}
