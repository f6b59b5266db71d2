package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/espipes/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagRunID  string
	flagClear  bool
)

var historyCmd = &cobra.Command{
	Use:   "history <savefile>",
	Short: "Show recorded runs for a save file",
	Long: `Display runs recorded in the history database for a save file.
By default the best solved runs are listed, fewest moves first.

Examples:
  espipes history puzzles/corner.esp
  espipes history puzzles/corner.esp --recent --limit 5
  espipes history puzzles/corner.esp --run 3f1c...
  espipes history puzzles/corner.esp --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Maximum number of runs to show")
	historyCmd.Flags().BoolVar(&flagRecent, "recent", false, "List the latest runs, solved or not")
	historyCmd.Flags().StringVar(&flagRunID, "run", "", "Show a single run by ID")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs for the file")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Runs are keyed by absolute path, as recorded by the session
	key, err := filepath.Abs(args[0])
	if err != nil {
		return withCode(exitIO, err)
	}

	store, err := storage.Open(historyPath(cfg))
	if err != nil {
		return withCode(exitIO, err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	switch {
	case flagClear:
		if err := store.ClearRuns(key); err != nil {
			return withCode(exitIO, err)
		}
		fmt.Fprintf(out, "Cleared history for %s\n", filepath.Base(key))
		return nil
	case flagRunID != "":
		return showRun(out, store, flagRunID)
	}

	var runs []storage.Run
	if flagRecent {
		runs, err = store.RecentRuns(key, flagLimit)
	} else {
		runs, err = store.BestRuns(key, flagLimit)
	}
	if err != nil {
		return withCode(exitIO, err)
	}

	fmt.Fprintf(out, "History - %s\n", filepath.Base(key))
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}
	printRuns(out, runs)

	stats, err := store.Stats(key)
	if err != nil {
		return withCode(exitIO, err)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Runs: %d  Solved: %d", stats.Runs, stats.Solved)
	if stats.Solved > 0 {
		fmt.Fprintf(out, "  Best: %d", stats.BestMoves)
	}
	fmt.Fprintln(out)
	return nil
}

func printRuns(out io.Writer, runs []storage.Run) {
	// Print header
	fmt.Fprintf(out, "  %-4s  %-6s  %-6s  %-4s  %s\n", "#", "Moves", "Solved", "Name", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %-6s  %-4s  %s\n", "-", "-----", "------", "----", "----")

	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-6d  %-6s  %-4s  %s\n",
			i+1, r.Moves, yesNo(r.Solved), nameOrDash(r.Name), r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func showRun(out io.Writer, store *storage.Store, id string) error {
	r, err := store.RunByID(id)
	if err != nil {
		return withCode(exitIO, err)
	}
	if r == nil {
		return withCode(exitUsage, fmt.Errorf("run not found: %s", id))
	}

	fmt.Fprintf(out, "Run:    %s\n", r.ID)
	fmt.Fprintf(out, "File:   %s\n", r.SaveFile)
	fmt.Fprintf(out, "Moves:  %d\n", r.Moves)
	fmt.Fprintf(out, "Solved: %s\n", yesNo(r.Solved))
	if r.Rank >= 0 {
		fmt.Fprintf(out, "Table:  #%d as %s\n", r.Rank+1, r.Name)
	}
	fmt.Fprintf(out, "Date:   %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func nameOrDash(name string) string {
	if name == "" {
		return "-"
	}
	return name
}
