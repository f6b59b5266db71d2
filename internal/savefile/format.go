// Package savefile reads and writes the binary save file format.
//
// A save file is a 14-byte header, a block of S highscore entries of four
// bytes each, and a row-major map payload of width*height cell bytes:
//
//	offset 0   magic "ESPipes"
//	offset 7   width, height
//	offset 9   start row, start col (0-based)
//	offset 11  end row, end col (0-based)
//	offset 13  submission capacity S
//	offset 14  S x (score, name[3])
//
// Only the highscore block is ever written back; the map payload is never
// modified on disk.
package savefile

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vovakirdan/espipes/internal/highscore"
)

const (
	// Magic is the token every save file starts with.
	Magic = "ESPipes"
	// HeaderSize is the number of bytes before the highscore block.
	HeaderSize = 14
	// EntrySize is the size of one highscore entry.
	EntrySize = 1 + highscore.NameLength
)

// Header holds the fixed fields at the start of a save file.
// Start and end are stored as on disk: 0-based (row, col).
type Header struct {
	Width       uint8
	Height      uint8
	Start       [2]uint8
	End         [2]uint8
	Submissions uint8
}

// MapOffset returns the offset of the first map byte.
func (h Header) MapOffset() int {
	return HeaderSize + EntrySize*int(h.Submissions)
}

// MapSize returns the number of map bytes.
func (h Header) MapSize() int {
	return int(h.Width) * int(h.Height)
}

// Size returns the minimum length of a file with this header.
func (h Header) Size() int {
	return h.MapOffset() + h.MapSize()
}

// Validate checks that the grid is non-empty and start/end lie inside it.
func (h Header) Validate() error {
	if h.Width == 0 || h.Height == 0 {
		return fmt.Errorf("%w: empty %dx%d grid", ErrInvalidFormat, h.Width, h.Height)
	}
	for _, p := range [][2]uint8{h.Start, h.End} {
		if p[0] >= h.Height || p[1] >= h.Width {
			return fmt.Errorf("%w: pipe (%d,%d) outside %dx%d grid", ErrInvalidFormat, p[0], p[1], h.Height, h.Width)
		}
	}
	return nil
}

// ParseHeader reads the first HeaderSize bytes of data.
// A wrong magic word is reported even when data is also too short.
func ParseHeader(data []byte) (Header, error) {
	prefix := data[:min(len(data), len(Magic))]
	if !bytes.Equal(prefix, []byte(Magic)[:len(prefix)]) {
		return Header{}, fmt.Errorf("%w: bad magic %q", ErrInvalidFormat, prefix)
	}
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: header needs %d bytes, got %d", ErrTruncatedFile, HeaderSize, len(data))
	}

	return Header{
		Width:       data[7],
		Height:      data[8],
		Start:       [2]uint8{data[9], data[10]},
		End:         [2]uint8{data[11], data[12]},
		Submissions: data[13],
	}, nil
}

// ParseHighscoreBlock reads the S entries that follow the header.
func ParseHighscoreBlock(data []byte, h Header) ([]highscore.Entry, error) {
	if len(data) < h.MapOffset() {
		return nil, fmt.Errorf("%w: highscore block needs %d bytes, got %d", ErrTruncatedFile, h.MapOffset(), len(data))
	}

	entries := make([]highscore.Entry, h.Submissions)
	for i := range entries {
		off := HeaderSize + i*EntrySize
		entries[i].Score = data[off]
		copy(entries[i].Name[:], data[off+1:off+EntrySize])
	}
	return entries, nil
}

// ParseMapPayload returns a copy of the width*height map bytes.
func ParseMapPayload(data []byte, h Header) ([]byte, error) {
	if len(data) < h.Size() {
		return nil, fmt.Errorf("%w: map needs %d bytes, got %d", ErrTruncatedFile, h.Size(), len(data))
	}
	payload := make([]byte, h.MapSize())
	copy(payload, data[h.MapOffset():h.Size()])
	return payload, nil
}

// encodeHeader returns the HeaderSize header bytes.
func encodeHeader(h Header) []byte {
	buf := make([]byte, HeaderSize)
	copy(buf, Magic)
	buf[7] = h.Width
	buf[8] = h.Height
	buf[9], buf[10] = h.Start[0], h.Start[1]
	buf[11], buf[12] = h.End[0], h.End[1]
	buf[13] = h.Submissions
	return buf
}

// encodeEntries returns the 4*S highscore block.
func encodeEntries(h Header, entries []highscore.Entry) ([]byte, error) {
	if len(entries) != int(h.Submissions) {
		return nil, fmt.Errorf("%w: got %d entries, want %d", ErrEntryCount, len(entries), h.Submissions)
	}
	buf := make([]byte, 0, EntrySize*len(entries))
	for _, e := range entries {
		buf = append(buf, e.Score)
		buf = append(buf, e.Name[:]...)
	}
	return buf, nil
}

// WriteHighscoreBlock overwrites exactly the highscore block of w.
// Nothing outside [HeaderSize, MapOffset) is written.
func WriteHighscoreBlock(w io.WriterAt, h Header, entries []highscore.Entry) error {
	block, err := encodeEntries(h, entries)
	if err != nil {
		return err
	}
	if len(block) == 0 {
		return nil
	}
	if _, err := w.WriteAt(block, HeaderSize); err != nil {
		return fmt.Errorf("%w: write highscores: %v", ErrIO, err)
	}
	return nil
}

// Encode builds a complete save file.
func Encode(h Header, entries []highscore.Entry, payload []byte) ([]byte, error) {
	if len(payload) != h.MapSize() {
		return nil, fmt.Errorf("%w: payload has %d bytes, want %d", ErrInvalidFormat, len(payload), h.MapSize())
	}
	block, err := encodeEntries(h, entries)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, h.Size())
	out = append(out, encodeHeader(h)...)
	out = append(out, block...)
	out = append(out, payload...)
	return out, nil
}

// EmptyEntries returns S never-used slots.
func EmptyEntries(submissions uint8) []highscore.Entry {
	entries := make([]highscore.Entry, submissions)
	for i := range entries {
		entries[i].Score = highscore.EmptyScore
	}
	return entries
}
