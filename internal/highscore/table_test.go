package highscore

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(score uint8, name string) Entry {
	return NewEntry(score, MustName(name))
}

func empty() Entry {
	return Entry{Score: EmptyScore}
}

func TestInsert(t *testing.T) {
	tests := []struct {
		name      string
		entries   []Entry
		candidate Entry
		want      []Entry
		wantRank  int
	}{
		{
			name:      "middle slot ripples the rest",
			entries:   []Entry{entry(3, "AAA"), entry(8, "BBB")},
			candidate: entry(5, "BBB"),
			want:      []Entry{entry(3, "AAA"), entry(5, "BBB")},
			wantRank:  1,
		},
		{
			name:      "new best",
			entries:   []Entry{entry(3, "AAA"), entry(8, "BBB"), entry(9, "CCC")},
			candidate: entry(1, "ZED"),
			want:      []Entry{entry(1, "ZED"), entry(3, "AAA"), entry(8, "BBB")},
			wantRank:  0,
		},
		{
			name:      "tie stays behind",
			entries:   []Entry{entry(3, "AAA"), entry(5, "BBB"), entry(9, "CCC")},
			candidate: entry(5, "NEW"),
			want:      []Entry{entry(3, "AAA"), entry(5, "BBB"), entry(5, "NEW")},
			wantRank:  2,
		},
		{
			name:      "fills empty slot",
			entries:   []Entry{entry(4, "AAA"), empty(), empty()},
			candidate: entry(7, "BOB"),
			want:      []Entry{entry(4, "AAA"), entry(7, "BOB"), empty()},
			wantRank:  1,
		},
		{
			name:      "last slot only",
			entries:   []Entry{entry(1, "AAA"), entry(2, "BBB"), entry(9, "CCC")},
			candidate: entry(4, "DOG"),
			want:      []Entry{entry(1, "AAA"), entry(2, "BBB"), entry(4, "DOG")},
			wantRank:  2,
		},
		{
			name:      "full ripple of four",
			entries:   []Entry{entry(5, "AAA"), entry(6, "BBB"), entry(7, "CCC"), entry(8, "DDD")},
			candidate: entry(4, "NEW"),
			want:      []Entry{entry(4, "NEW"), entry(5, "AAA"), entry(6, "BBB"), entry(7, "CCC")},
			wantRank:  0,
		},
		{
			name:      "does not qualify",
			entries:   []Entry{entry(1, "AAA"), entry(2, "BBB")},
			candidate: entry(2, "CCC"),
			want:      []Entry{entry(1, "AAA"), entry(2, "BBB")},
			wantRank:  -1,
		},
		{
			name:      "zero capacity",
			entries:   []Entry{},
			candidate: entry(0, "AAA"),
			want:      []Entry{},
			wantRank:  -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := make([]Entry, len(tt.entries))
			copy(before, tt.entries)

			got, rank := Insert(tt.entries, tt.candidate)
			assert.Equal(t, tt.wantRank, rank)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Insert() mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, before, tt.entries, "input slice was modified")
		})
	}
}

func TestInsertKeepsOrder(t *testing.T) {
	entries := []Entry{empty(), empty(), empty(), empty(), empty()}
	for _, s := range []uint8{9, 2, 7, 2, 30, 1, 5} {
		entries, _ = Insert(entries, entry(s, "ABC"))
	}

	for i := 1; i < len(entries); i++ {
		require.LessOrEqual(t, entries[i-1].Score, entries[i].Score, "table out of order: %v", entries)
	}
	assert.Equal(t, []uint8{1, 2, 2, 5, 7}, scores(entries))
}

func TestInsertUnusedSlotBytesSurvive(t *testing.T) {
	odd := Entry{Score: EmptyScore, Name: [3]byte{0x01, 0x02, 0x03}}
	entries := []Entry{entry(2, "AAA"), odd}

	got, rank := Insert(entries, entry(2, "BBB"))
	require.Equal(t, -1, rank)
	assert.Equal(t, odd, got[1])
}

func TestTable(t *testing.T) {
	tbl := NewTable([]Entry{entry(3, "AAA"), empty(), empty()})

	assert.Equal(t, 3, tbl.Capacity())
	assert.True(t, tbl.Qualifies(200))
	assert.Len(t, tbl.Filled(), 1)

	assert.Equal(t, 0, tbl.Insert(entry(2, "BOB")))
	assert.Equal(t, 2, tbl.Insert(entry(4, "CAT")))
	assert.Equal(t, []uint8{2, 3, 4}, scores(tbl.Entries()))

	assert.False(t, tbl.Qualifies(4))
	assert.True(t, tbl.Qualifies(3))
	assert.Equal(t, -1, tbl.Insert(entry(9, "DOG")))

	got := tbl.Entries()
	got[0] = empty()
	assert.Equal(t, uint8(2), tbl.Entries()[0].Score, "Entries() aliases the table")
}

func TestScoreFromMoves(t *testing.T) {
	tests := []struct {
		moves int
		want  uint8
		ok    bool
	}{
		{0, 0, true},
		{17, 17, true},
		{254, 254, true},
		{255, 0, false},
		{1000, 0, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		got, ok := ScoreFromMoves(tt.moves)
		assert.Equal(t, tt.ok, ok, "ScoreFromMoves(%d)", tt.moves)
		assert.Equal(t, tt.want, got, "ScoreFromMoves(%d)", tt.moves)
	}
}

func TestEntryString(t *testing.T) {
	assert.Equal(t, "  7 BOB", entry(7, "bob").String())
	assert.Equal(t, "---", empty().String())
}

func scores(entries []Entry) []uint8 {
	out := make([]uint8, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}
