package savefile

import (
	"errors"
	"fmt"
	"os"

	"github.com/vovakirdan/espipes/internal/highscore"
)

// File is a fully parsed save file.
type File struct {
	Path    string
	Header  Header
	Entries []highscore.Entry
	Payload []byte
}

// Decode parses a complete save file image.
func Decode(data []byte) (*File, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if err := h.Validate(); err != nil {
		return nil, err
	}
	entries, err := ParseHighscoreBlock(data, h)
	if err != nil {
		return nil, err
	}
	payload, err := ParseMapPayload(data, h)
	if err != nil {
		return nil, err
	}
	return &File{Header: h, Entries: entries, Payload: payload}, nil
}

// Load reads and parses the save file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	f, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// WriteScores rewrites the highscore block of the file at path in place.
// The file is synced before it is closed; a close error is returned.
func WriteScores(path string, h Header, entries []highscore.Entry) (err error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: close: %v", ErrIO, cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}
	if info.Size() < int64(h.MapOffset()) {
		return fmt.Errorf("%w: %s is shorter than its highscore block", ErrTruncatedFile, path)
	}

	if err := WriteHighscoreBlock(f, h, entries); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("%w: sync: %v", ErrIO, err)
	}
	return nil
}

// IsInvalid reports whether err means the file itself is malformed,
// as opposed to an I/O failure.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalidFormat) || errors.Is(err, ErrTruncatedFile)
}
