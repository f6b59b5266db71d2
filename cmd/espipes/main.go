// espipes is a terminal pipe puzzle played on binary save files.
//
// Usage:
//
//	espipes <savefile>               - Play a puzzle at the line prompt
//	espipes <savefile> --tui         - Play with the full-screen interface
//	espipes scores <savefile>        - Show the highscore table of a file
//	espipes history <savefile>       - Show recorded runs for a file
//	espipes build <layout> <out>     - Build save files from YAML layouts
//
// Global flags:
//
//	--config <path>  - Custom config YAML
//	--db <path>      - Run history database (default from config)
//	--no-history     - Do not record runs
//	--verbose        - Debug logging on stderr
//
// Exit codes: 0 success, 1 usage error, 2 I/O error, 3 invalid file.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/espipes/internal/config"
	"github.com/vovakirdan/espipes/internal/savefile"
	"github.com/vovakirdan/espipes/internal/storage"
)

// Exit codes.
const (
	exitOK      = 0
	exitUsage   = 1
	exitIO      = 2
	exitInvalid = 3
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagNoHistory bool
	flagVerbose   bool
)

func main() {
	err := rootCmd.Execute()
	code := exitCode(err)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if code == exitUsage {
			fmt.Fprintln(os.Stderr, "Run 'espipes --help' for usage.")
		}
	}
	os.Exit(code)
}

var rootCmd = &cobra.Command{
	Use:   "espipes <savefile>",
	Short: "ESPipes - connect the pipes in your terminal",
	Long: `ESPipes is a pipe puzzle. Rotate pipe segments until a connected
path joins the start pipe to the end pipe, in as few moves as possible.
The best results are kept in the save file itself.

Available commands:
  scores   - Show the highscore table of a save file
  history  - Show recorded runs for a save file
  build    - Build save files from YAML layouts

Examples:
  espipes puzzles/corner.esp
  espipes puzzles/corner.esp --tui
  espipes scores puzzles/corner.esp
  espipes build levels/corner.yaml puzzles/corner.esp`,
	Args:          cobra.ExactArgs(1),
	RunE:          runPlay,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoHistory, "no-history", false, "Do not record runs")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(buildCmd)
}

// exitError carries the process exit code for err.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// withCode attaches an exit code to err.
func withCode(code int, err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: code, err: err}
}

// fileError classifies a save file error as invalid file or I/O failure.
func fileError(err error) error {
	if savefile.IsInvalid(err) {
		return withCode(exitInvalid, err)
	}
	return withCode(exitIO, err)
}

// exitCode maps err to a process exit code. Errors without a code come
// from cobra argument and flag parsing.
func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUsage
}

// newLogger creates the stderr logger shared by all commands.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "espipes",
		Level:  log.WarnLevel,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
		logger.SetReportTimestamp(true)
	}
	return logger
}

// loadConfig loads the configuration selected by --config.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, withCode(exitUsage, err)
	}
	return cfg, nil
}

// historyPath returns the database path from --db or the config.
func historyPath(cfg config.Config) string {
	if flagDBPath != "" {
		return flagDBPath
	}
	return cfg.History.DBPath
}

// openHistory opens the run history store for recording. Failures are
// logged and play continues without history.
func openHistory(cfg config.Config, logger *log.Logger) *storage.Store {
	if flagNoHistory || (!cfg.History.Enabled && flagDBPath == "") {
		logger.Debug("run history disabled")
		return nil
	}
	path := historyPath(cfg)
	store, err := storage.Open(path)
	if err != nil {
		logger.Warn("could not open history database", "path", path, "error", err)
		return nil
	}
	logger.Debug("run history enabled", "path", path)
	return store
}
