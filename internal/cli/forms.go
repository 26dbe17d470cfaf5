package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/oitrack/internal/cli/formatter"
	"github.com/alexanderramin/oitrack/internal/domain"
	"github.com/alexanderramin/oitrack/internal/timeparse"
)

// oitrackHuhTheme returns a custom huh theme using the existing Gruvbox palette.
func oitrackHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// validateLabel returns a huh validator for an engagement/category field.
func validateLabel(field string) func(string) error {
	return func(s string) error {
		_, err := domain.ValidateLabel(field, s)
		return err
	}
}

// validateTimeInput accepts "HH:MM" or a full local date-time.
func validateTimeInput(s string) error {
	if s == "" {
		return fmt.Errorf("enter a time (HH:MM) or date-time")
	}
	_, err := timeparse.Parse(s, time.Local)
	return err
}

// newEntryForm builds the add/edit wizard over a shared EntryInput. The
// engine re-validates everything on submit; form validation only catches
// the obvious cases early.
func newEntryForm(input *domain.EntryInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Engagement").
				Placeholder("Client or project").
				Value(&input.Engagement).
				Validate(validateLabel("engagement")),
			huh.NewInput().
				Title("Category").
				Placeholder("Activity type").
				Value(&input.Category).
				Validate(validateLabel("category")),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start").
				Placeholder("09:00").
				Description("HH:MM for today, or 2006-01-02T15:04").
				Value(&input.Start).
				Validate(validateTimeInput),
			huh.NewInput().
				Title("End").
				Placeholder("17:30").
				Description("An end before the start rolls past midnight").
				Value(&input.End).
				Validate(validateTimeInput),
		),
	).WithTheme(oitrackHuhTheme()).WithShowHelp(false)
}

// newSelectEntryForm builds a picker over the session's entries.
func newSelectEntryForm(title string, entries []domain.Entry, result *int) *huh.Form {
	options := make([]huh.Option[int], 0, len(entries))
	for _, e := range entries {
		label := fmt.Sprintf("#%d — %s / %s (%s–%s)",
			e.ID, e.Engagement, e.Category,
			formatter.WallClock(e.StartISO), formatter.WallClock(e.EndISO))
		options = append(options, huh.NewOption(label, e.ID))
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(title).
				Options(options...).
				Value(result),
		),
	).WithTheme(oitrackHuhTheme()).WithShowHelp(false)
}

// newPairNoteForm builds the note wizard for (engagement, category) notes.
func newPairNoteForm(engagement, category, text *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Engagement").
				Value(engagement).
				Validate(validateLabel("engagement")),
			huh.NewInput().
				Title("Category").
				Value(category).
				Validate(validateLabel("category")),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Note").
				Description("Leave empty to remove the note").
				CharLimit(domain.MaxNoteLen).
				Value(text),
		),
	).WithTheme(oitrackHuhTheme()).WithShowHelp(false)
}

// newEntryNoteForm builds the note wizard for a single already-picked entry.
func newEntryNoteForm(text *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Note").
				Description("Leave empty to remove the note").
				CharLimit(domain.MaxNoteLen).
				Value(text),
		),
	).WithTheme(oitrackHuhTheme()).WithShowHelp(false)
}

// newClearConfirmForm asks before wiping the session.
func newClearConfirmForm(confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Clear the session?").
				Description("Removes every entry and note; ids restart at 1.").
				Affirmative("Clear").
				Negative("Keep").
				Value(confirmed),
		),
	).WithTheme(oitrackHuhTheme()).WithShowHelp(false)
}
