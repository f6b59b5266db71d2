package pipes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Command errors.
var (
	ErrUnknownCommand = errors.New("pipes: unknown command")
	ErrRotateUsage    = errors.New("pipes: usage: rotate <left|right> <row> <col>")
	ErrFixedPipe      = errors.New("pipes: start and end pipes cannot be rotated")
)

// CommandKind identifies a player command.
type CommandKind int

const (
	CmdNone CommandKind = iota
	CmdRotate
	CmdHelp
	CmdQuit
	CmdRestart
)

// String returns a human-readable name for the command kind.
func (k CommandKind) String() string {
	switch k {
	case CmdNone:
		return "none"
	case CmdRotate:
		return "rotate"
	case CmdHelp:
		return "help"
	case CmdQuit:
		return "quit"
	case CmdRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Command is a parsed player command.
type Command struct {
	Kind      CommandKind
	Clockwise bool
	Row       int
	Col       int
}

// Rotate builds a rotate command.
func Rotate(row, col int, clockwise bool) Command {
	return Command{Kind: CmdRotate, Row: row, Col: col, Clockwise: clockwise}
}

// HelpText lists the commands understood by ParseCommand.
const HelpText = `Commands:
 - rotate <left|right> <row> <col>
    rotate the pipe at the given position (right = clockwise)
 - help
    print this help text
 - restart
    reset the map and the move counter
 - quit
    exit the game
`

// ParseCommand parses one input line. Keywords are case-insensitive and
// may be abbreviated: "r" for rotate, "l"/"ccw" for left, "r"/"cw" for right.
// An empty line yields CmdNone.
func ParseCommand(line string) (Command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Command{Kind: CmdNone}, nil
	}

	switch fields[0] {
	case "rotate", "r":
		return parseRotate(fields[1:])
	case "help", "h", "?":
		return Command{Kind: CmdHelp}, noArgs(fields)
	case "quit", "q", "exit":
		return Command{Kind: CmdQuit}, noArgs(fields)
	case "restart":
		return Command{Kind: CmdRestart}, noArgs(fields)
	}
	return Command{}, fmt.Errorf("%w: %s", ErrUnknownCommand, strings.TrimSpace(line))
}

func noArgs(fields []string) error {
	if len(fields) > 1 {
		return fmt.Errorf("%w: %s takes no arguments", ErrUnknownCommand, fields[0])
	}
	return nil
}

func parseRotate(args []string) (Command, error) {
	if len(args) != 3 {
		return Command{}, ErrRotateUsage
	}

	var clockwise bool
	switch args[0] {
	case "right", "r", "cw":
		clockwise = true
	case "left", "l", "ccw":
		clockwise = false
	default:
		return Command{}, ErrRotateUsage
	}

	row, err := strconv.Atoi(args[1])
	if err != nil {
		return Command{}, ErrRotateUsage
	}
	col, err := strconv.Atoi(args[2])
	if err != nil {
		return Command{}, ErrRotateUsage
	}
	return Rotate(row, col, clockwise), nil
}
