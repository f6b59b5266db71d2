package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/espipes/internal/console"
	"github.com/vovakirdan/espipes/internal/core"
	"github.com/vovakirdan/espipes/internal/platform/tui"
	"github.com/vovakirdan/espipes/internal/session"
)

var flagTUI bool

func init() {
	rootCmd.Flags().BoolVar(&flagTUI, "tui", false, "Use the full-screen interface instead of the line prompt")
}

func runPlay(cmd *cobra.Command, args []string) error {
	path := args[0]
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	render, err := cfg.RenderOptions()
	if err != nil {
		return withCode(exitUsage, err)
	}
	color := cfg.Display.Color.Enabled(term.IsTerminal(int(os.Stdout.Fd())))

	opts := session.Options{Logger: logger}
	if store := openHistory(cfg, logger); store != nil {
		defer store.Close()
		opts.Store = store
	}

	s, err := session.Open(path, opts)
	if err != nil {
		return fileError(err)
	}

	if flagTUI {
		// Get terminal size
		rc := core.DefaultConfig()
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			rc.ScreenW = w
			rc.ScreenH = h
		}
		rc.Color = color
		return withCode(exitIO, tui.Run(s, tui.Options{Render: render, Runtime: rc}))
	}

	c := console.New(s, os.Stdin, os.Stdout, console.Options{Render: render, Color: color})
	return withCode(exitIO, c.Run())
}
