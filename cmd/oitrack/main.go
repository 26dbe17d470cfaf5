package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/oitrack/internal/cli"
	"github.com/alexanderramin/oitrack/internal/domain"
	"github.com/alexanderramin/oitrack/internal/timeparse"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Note granularity: env var default, overridable with --notes.
	noteMode := domain.NotesByPair
	if v := os.Getenv("OITRACK_NOTES"); v != "" {
		switch domain.NoteMode(v) {
		case domain.NotesByPair, domain.NotesByEntry:
			noteMode = domain.NoteMode(v)
		default:
			return fmt.Errorf("OITRACK_NOTES must be %q or %q, got %q",
				domain.NotesByPair, domain.NotesByEntry, v)
		}
	}

	app := &cli.App{
		Timezone: timeparse.ZoneName(),
	}

	// Detect interactive terminal; the shell is the only entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app, &noteMode)
	return rootCmd.Execute()
}
