package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/espipes/internal/console"
	"github.com/vovakirdan/espipes/internal/highscore"
	"github.com/vovakirdan/espipes/internal/savefile"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <savefile>",
	Short: "Show the highscore table of a save file",
	Long: `Display the highscore table stored inside a save file.
Lower scores are better: a score is the number of moves a solve took.

Examples:
  espipes scores puzzles/corner.esp`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func runScores(cmd *cobra.Command, args []string) error {
	f, err := savefile.Load(args[0])
	if err != nil {
		return fileError(err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "High Scores - %s (%dx%d)\n", filepath.Base(f.Path), f.Header.Width, f.Header.Height)
	fmt.Fprintln(out)

	table := console.FormatTable(f.Entries)
	if table == "" {
		fmt.Fprintln(out, "No highscores yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'espipes %s' to set the first one!\n", args[0])
		return nil
	}
	fmt.Fprint(out, table)
	t := highscore.NewTable(f.Entries)
	fmt.Fprintf(out, "\n%d of %d slots used\n", len(t.Filled()), t.Capacity())
	return nil
}
