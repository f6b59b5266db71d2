// Package console is the line-based front end: it prints the board, reads
// one command per line and asks for a name when a solved run enters the
// highscore table.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/vovakirdan/espipes/internal/games/pipes"
	"github.com/vovakirdan/espipes/internal/highscore"
	"github.com/vovakirdan/espipes/internal/platform/style"
	"github.com/vovakirdan/espipes/internal/session"
)

// Messages printed by the console.
const (
	msgSolved        = "Puzzle solved!"
	msgBeatHighscore = "Beat highscore!"
	msgNamePrompt    = "Please enter 3 letter name: "
	msgHighscores    = "Highscore:"
	msgUnrecordable  = "Too many moves for the highscore table."
)

// Options configures the console.
type Options struct {
	Render pipes.RenderOptions
	Color  bool
}

// Console runs one session over a reader and a writer.
type Console struct {
	session *session.Session
	in      *bufio.Scanner
	out     io.Writer
	opts    Options
}

// New creates a console for s.
func New(s *session.Session, in io.Reader, out io.Writer, opts Options) *Console {
	return &Console{
		session: s,
		in:      bufio.NewScanner(in),
		out:     out,
		opts:    opts,
	}
}

// Run plays until the puzzle is solved, the player quits or input ends.
// End of input is treated like quit.
func (c *Console) Run() error {
	defer c.session.Close()

	for {
		c.printBoard()
		if c.session.Game().Solved() {
			return c.finish()
		}

		quit, err := c.turn()
		if err != nil || quit {
			return err
		}
	}
}

// turn prompts until one command changed the board or the player quit.
func (c *Console) turn() (quit bool, err error) {
	for {
		line, ok, err := c.readLine(fmt.Sprintf("%d > ", c.session.Game().Moves()+1))
		if err != nil || !ok {
			return true, err
		}

		cmd, err := pipes.ParseCommand(line)
		if err != nil {
			c.printError(err)
			continue
		}

		switch cmd.Kind {
		case pipes.CmdNone:
			continue
		case pipes.CmdHelp:
			fmt.Fprint(c.out, pipes.HelpText)
			continue
		case pipes.CmdQuit:
			return true, nil
		}

		if err := c.session.Execute(cmd); err != nil {
			c.printError(err)
			continue
		}
		return false, nil
	}
}

// finish reports the score, asks for a name when the run qualifies and
// prints the table.
func (c *Console) finish() error {
	fmt.Fprintln(c.out, style.Render(style.Success, c.opts.Color, msgSolved))
	fmt.Fprintf(c.out, "Score: %d\n", c.session.Game().Moves())

	if _, ok := c.session.Score(); !ok {
		fmt.Fprintln(c.out, msgUnrecordable)
	} else if c.session.Qualifies() {
		fmt.Fprintln(c.out, msgBeatHighscore)
		if err := c.askName(); err != nil {
			return err
		}
	}

	c.printTable()
	return nil
}

// askName prompts until a valid name was submitted or input ends.
func (c *Console) askName() error {
	for {
		line, ok, err := c.readLine(msgNamePrompt)
		if err != nil || !ok {
			return err
		}

		_, err = c.session.Submit(line)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, highscore.ErrInvalidName):
			c.printError(err)
		default:
			return err
		}
	}
}

// readLine prompts and returns the next input line with surrounding
// whitespace removed. ok is false at end of input.
func (c *Console) readLine(prompt string) (line string, ok bool, err error) {
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		fmt.Fprintln(c.out)
		return "", false, c.in.Err()
	}
	return strings.TrimSpace(c.in.Text()), true, nil
}

func (c *Console) printBoard() {
	screen := pipes.RenderScreen(c.session.Grid(), c.opts.Render)
	fmt.Fprintln(c.out, style.RenderScreen(screen, c.opts.Color))
}

func (c *Console) printTable() {
	fmt.Fprintln(c.out, style.Render(style.Title, c.opts.Color, msgHighscores))
	fmt.Fprint(c.out, FormatTable(c.session.Entries()))
}

func (c *Console) printError(err error) {
	fmt.Fprintln(c.out, style.Render(style.Error, c.opts.Color, "Error: "+userMessage(err)))
}

// userMessage strips the package prefix from err.
func userMessage(err error) string {
	msg := err.Error()
	if i := strings.Index(msg, ": "); i >= 0 && !strings.Contains(msg[:i], " ") {
		return msg[i+2:]
	}
	return msg
}

// FormatTable lists the filled slots, one "   NAME SCORE" line each.
func FormatTable(entries []highscore.Entry) string {
	var sb strings.Builder
	for _, e := range entries {
		if e.Empty() {
			continue
		}
		fmt.Fprintf(&sb, "   %s %d\n", e.NameString(), e.Score)
	}
	return sb.String()
}
