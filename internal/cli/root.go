package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/oitrack/internal/domain"
	"github.com/alexanderramin/oitrack/internal/engine"
	tea "github.com/charmbracelet/bubbletea"
)

// App holds everything the shell needs: the session engine plus environment
// probes injected from main.
type App struct {
	Engine   *engine.Engine
	Timezone string

	// IsInteractive reports whether stdin is a terminal. The shell refuses
	// to start without one.
	IsInteractive func() bool
}

// noteModeValue adapts domain.NoteMode to pflag.Value so --notes validates
// at parse time.
type noteModeValue struct {
	mode *domain.NoteMode
}

func (v noteModeValue) String() string { return string(*v.mode) }
func (v noteModeValue) Type() string   { return "mode" }

func (v noteModeValue) Set(s string) error {
	switch domain.NoteMode(s) {
	case domain.NotesByPair, domain.NotesByEntry:
		*v.mode = domain.NoteMode(s)
		return nil
	}
	return fmt.Errorf("must be %q or %q", domain.NotesByPair, domain.NotesByEntry)
}

var _ pflag.Value = noteModeValue{}

// NewRootCmd creates the top-level "oitrack" command. Running it starts the
// interactive session shell; all state lives for the life of that process.
func NewRootCmd(app *App, noteMode *domain.NoteMode) *cobra.Command {
	root := &cobra.Command{
		Use:           "oitrack",
		Short:         "Session time tracker with OIT reporting",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("oitrack is an interactive session tool; run it from a terminal")
			}
			app.Engine = engine.New(engine.WithNoteMode(*noteMode))
			p := tea.NewProgram(newAppModel(app), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}

	root.Flags().Var(noteModeValue{mode: noteMode}, "notes",
		fmt.Sprintf("note granularity: %q (per engagement/category) or %q (per entry)",
			domain.NotesByPair, domain.NotesByEntry))

	return root
}
