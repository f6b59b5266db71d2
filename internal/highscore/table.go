// Package highscore implements the ranked table of best results stored in
// each save file. Lower scores are better; a score is the number of moves
// a run took.
package highscore

import (
	"bytes"
	"fmt"
)

const (
	// EmptyScore marks a slot that has never been filled.
	EmptyScore uint8 = 0xFF
	// MaxScore is the largest move count that can be recorded.
	MaxScore = int(EmptyScore) - 1
	// NameLength is the fixed number of letters in a name.
	NameLength = 3
)

// Entry is one table slot.
type Entry struct {
	Score uint8
	Name  [NameLength]byte
}

// NewEntry builds an entry from a score and a validated name.
func NewEntry(score uint8, name [NameLength]byte) Entry {
	return Entry{Score: score, Name: name}
}

// Empty reports whether the slot has never been filled.
func (e Entry) Empty() bool {
	return e.Score == EmptyScore
}

// NameString returns the name with any trailing NUL bytes removed.
func (e Entry) NameString() string {
	return string(bytes.TrimRight(e.Name[:], "\x00"))
}

// String returns "SCORE NAME", or "---" for an empty slot.
func (e Entry) String() string {
	if e.Empty() {
		return "---"
	}
	return fmt.Sprintf("%3d %s", e.Score, e.NameString())
}

// ScoreFromMoves converts a move count to a storable score.
// The second result is false when the count cannot be recorded.
func ScoreFromMoves(moves int) (uint8, bool) {
	if moves < 0 || moves > MaxScore {
		return 0, false
	}
	return uint8(moves), true
}

// Insert places candidate into a copy of entries in one pass.
//
// A carried entry starts as the candidate. Walking the slots in order, the
// first slot whose score is strictly greater than the carried entry takes
// it and hands its old entry on; from then on every slot takes the carried
// entry the same way, so the last entry falls off. Ties keep the earlier
// entry ahead. The returned rank is the 0-based slot index, or -1 when the
// candidate does not beat any slot, in which case the copy equals the input.
func Insert(entries []Entry, candidate Entry) ([]Entry, int) {
	out := make([]Entry, len(entries))
	rank := -1
	carry := candidate
	for i, e := range entries {
		if rank < 0 && e.Score > carry.Score {
			rank = i
		}
		if rank < 0 {
			out[i] = e
			continue
		}
		out[i], carry = carry, e
	}
	return out, rank
}

// Table is an in-memory highscore table of fixed capacity.
type Table struct {
	entries []Entry
}

// NewTable creates a table holding a copy of entries.
func NewTable(entries []Entry) *Table {
	t := &Table{entries: make([]Entry, len(entries))}
	copy(t.entries, entries)
	return t
}

// Entries returns a copy of the current slots.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Capacity returns the number of slots.
func (t *Table) Capacity() int {
	return len(t.entries)
}

// Filled returns the non-empty slots in rank order.
func (t *Table) Filled() []Entry {
	var out []Entry
	for _, e := range t.entries {
		if !e.Empty() {
			out = append(out, e)
		}
	}
	return out
}

// Qualifies reports whether a run with the given score would enter the table.
func (t *Table) Qualifies(score uint8) bool {
	for _, e := range t.entries {
		if e.Score > score {
			return true
		}
	}
	return false
}

// Insert adds candidate to the table and returns its rank, or -1.
func (t *Table) Insert(candidate Entry) int {
	next, rank := Insert(t.entries, candidate)
	t.entries = next
	return rank
}
