package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/espipes/internal/level"
)

var buildCmd = &cobra.Command{
	Use:   "build <layout> <out>",
	Short: "Build save files from YAML layouts",
	Long: `Build a binary save file from a YAML layout.

If <layout> is a directory, every .yaml/.yml layout below it is built
into <out>/<id>.esp, where <out> is created if needed.

Examples:
  espipes build levels/corner.yaml puzzles/corner.esp
  espipes build levels/ puzzles/`,
	Args: cobra.ExactArgs(2),
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	src, dst := args[0], args[1]
	logger := newLogger()

	info, err := os.Stat(src)
	if err != nil {
		return withCode(exitIO, err)
	}

	if !info.IsDir() {
		layout, err := level.LoadFile(src)
		if err != nil {
			return layoutError(err)
		}
		if err := level.WriteFile(layout, dst); err != nil {
			return withCode(exitIO, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", src, dst)
		return nil
	}

	layouts, loadErr := level.NewLoader(src).LoadAll()
	if loadErr != nil && len(layouts) == 0 {
		return layoutError(loadErr)
	}
	if err := os.MkdirAll(dst, 0o755); err != nil {
		return withCode(exitIO, err)
	}
	for _, l := range layouts {
		out := filepath.Join(dst, l.ID+".esp")
		if err := level.WriteFile(l, out); err != nil {
			return withCode(exitIO, err)
		}
		logger.Debug("layout built", "id", l.ID, "out", out)
		fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", l.FilePath, out)
	}
	if loadErr != nil {
		return withCode(exitInvalid, loadErr)
	}
	return nil
}

// layoutError reports rejected layouts as invalid files.
func layoutError(err error) error {
	var ve level.ValidationError
	if errors.As(err, &ve) {
		return withCode(exitInvalid, err)
	}
	return withCode(exitIO, err)
}
