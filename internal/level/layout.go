// Package level turns human-editable YAML layouts into save files.
package level

import (
	"fmt"
	"math"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/espipes/internal/games/pipes"
	"github.com/vovakirdan/espipes/internal/highscore"
	"github.com/vovakirdan/espipes/internal/savefile"
)

// DefaultSubmissions is the table capacity used when a layout omits it.
const DefaultSubmissions = 5

// YAMLLayout is the on-disk structure of a layout file.
type YAMLLayout struct {
	ID          string      `yaml:"id"`
	Name        string      `yaml:"name"`
	Size        YAMLSize    `yaml:"size"`
	Start       YAMLCoord   `yaml:"start"`
	End         YAMLCoord   `yaml:"end"`
	Submissions *int        `yaml:"submissions,omitempty"`
	Rows        []string    `yaml:"rows"`
	Scores      []YAMLScore `yaml:"scores,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLCoord is a 1-indexed position.
type YAMLCoord struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// YAMLScore is a pre-filled highscore entry.
type YAMLScore struct {
	Score int    `yaml:"score"`
	Name  string `yaml:"name"`
}

// ValidationError describes why a layout was rejected.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func invalid(code, format string, args ...any) error {
	return ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Layout is a parsed and validated level.
type Layout struct {
	ID          string
	Name        string
	Width       int
	Height      int
	Start       pipes.Coord
	End         pipes.Coord
	Submissions int
	Cells       []pipes.Cell
	Scores      []highscore.Entry
	FilePath    string
}

// ParseYAML parses and validates a layout document.
func ParseYAML(data []byte) (Layout, error) {
	var yl YAMLLayout
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Layout{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	l := Layout{
		ID:          yl.ID,
		Name:        yl.Name,
		Width:       yl.Size.W,
		Height:      yl.Size.H,
		Start:       pipes.At(yl.Start.Row, yl.Start.Col),
		End:         pipes.At(yl.End.Row, yl.End.Col),
		Submissions: DefaultSubmissions,
	}
	if yl.Submissions != nil {
		l.Submissions = *yl.Submissions
	}

	if err := l.checkDimensions(); err != nil {
		return Layout{}, err
	}
	cells, err := parseRows(yl.Rows, l.Width, l.Height)
	if err != nil {
		return Layout{}, err
	}
	l.Cells = cells
	if err := l.checkEndpoints(); err != nil {
		return Layout{}, err
	}
	scores, err := parseScores(yl.Scores, l.Submissions)
	if err != nil {
		return Layout{}, err
	}
	l.Scores = scores
	return l, nil
}

func (l *Layout) checkDimensions() error {
	if l.Width <= 0 || l.Height <= 0 {
		return invalid("BAD_SIZE", "size %dx%d must be positive", l.Width, l.Height)
	}
	if l.Width > math.MaxUint8 || l.Height > math.MaxUint8 {
		return invalid("BAD_SIZE", "size %dx%d exceeds %d", l.Width, l.Height, math.MaxUint8)
	}
	if l.Submissions < 0 || l.Submissions > math.MaxUint8 {
		return invalid("BAD_SUBMISSIONS", "submissions %d outside 0..%d", l.Submissions, math.MaxUint8)
	}
	return nil
}

// parseRows reads one glyph per cell.
func parseRows(rows []string, width, height int) ([]pipes.Cell, error) {
	if len(rows) != height {
		return nil, invalid("ROW_COUNT", "got %d rows, want %d", len(rows), height)
	}

	cells := make([]pipes.Cell, 0, width*height)
	for i, row := range rows {
		if n := utf8.RuneCountInString(row); n != width {
			return nil, invalid("ROW_WIDTH", "row %d has %d cells, want %d", i+1, n, width)
		}
		col := 0
		for _, r := range row {
			col++
			c, ok := pipes.ParseGlyph(r)
			if !ok {
				return nil, invalid("BAD_GLYPH", "row %d col %d: unknown glyph %q", i+1, col, r)
			}
			cells = append(cells, c)
		}
	}
	return cells, nil
}

func (l *Layout) checkEndpoints() error {
	for _, p := range []struct {
		name string
		at   pipes.Coord
	}{{"start", l.Start}, {"end", l.End}} {
		if p.at.Row < 1 || p.at.Row > l.Height || p.at.Col < 1 || p.at.Col > l.Width {
			return invalid("BAD_ENDPOINT", "%s %v outside %dx%d grid", p.name, p.at, l.Height, l.Width)
		}
		if l.cell(p.at).IsEmpty() {
			return invalid("EMPTY_ENDPOINT", "%s %v has no opening", p.name, p.at)
		}
	}
	if l.Start == l.End {
		return invalid("BAD_ENDPOINT", "start and end are both %v", l.Start)
	}
	return nil
}

func (l *Layout) cell(c pipes.Coord) pipes.Cell {
	return l.Cells[(c.Row-1)*l.Width+(c.Col-1)]
}

// parseScores fills a table of the given capacity, unused slots empty.
func parseScores(in []YAMLScore, capacity int) ([]highscore.Entry, error) {
	if len(in) > capacity {
		return nil, invalid("TOO_MANY_SCORES", "%d scores for %d slots", len(in), capacity)
	}

	table := highscore.NewTable(savefile.EmptyEntries(uint8(capacity)))
	for i, s := range in {
		score, ok := highscore.ScoreFromMoves(s.Score)
		if !ok {
			return nil, invalid("BAD_SCORE", "score %d: %d outside 0..%d", i+1, s.Score, highscore.MaxScore)
		}
		name, err := highscore.ValidateName(s.Name)
		if err != nil {
			return nil, invalid("BAD_SCORE", "score %d: %v", i+1, err)
		}
		table.Insert(highscore.NewEntry(score, name))
	}
	return table.Entries(), nil
}

// Header returns the save file header for the layout.
func (l *Layout) Header() savefile.Header {
	return savefile.Header{
		Width:       uint8(l.Width),
		Height:      uint8(l.Height),
		Start:       [2]uint8{uint8(l.Start.Row - 1), uint8(l.Start.Col - 1)},
		End:         [2]uint8{uint8(l.End.Row - 1), uint8(l.End.Col - 1)},
		Submissions: uint8(l.Submissions),
	}
}

// Payload returns the map bytes.
func (l *Layout) Payload() []byte {
	out := make([]byte, len(l.Cells))
	for i, c := range l.Cells {
		out[i] = byte(c)
	}
	return out
}

// Encode builds the save file image.
func (l *Layout) Encode() ([]byte, error) {
	return savefile.Encode(l.Header(), l.Scores, l.Payload())
}

// NewGame starts a game on the layout.
func (l *Layout) NewGame() (*pipes.Game, error) {
	return pipes.NewGame(l.Width, l.Height, l.Payload(), l.Start, l.End)
}
