package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/oitrack/internal/cli/formatter"
	"github.com/alexanderramin/oitrack/internal/domain"
	"github.com/alexanderramin/oitrack/internal/engine"
	"github.com/alexanderramin/oitrack/internal/report"
)

// appModel is the root bubbletea Model for the session shell. It either
// browses the entries/report content or runs one wizard form at a time;
// every committed form re-renders the content from a fresh engine snapshot.
type appModel struct {
	app  *App
	keys keyMap

	content viewport.Model

	// Active wizard form, nil while browsing. submit runs when the form
	// completes; it applies the result through the engine and returns the
	// flash message, or a follow-up form for chained wizards.
	form   *huh.Form
	submit func() (string, *formStep)

	flash  string
	width  int
	height int
}

// formStep is a follow-up stage of a chained wizard (pick entry, then edit).
type formStep struct {
	form   *huh.Form
	submit func() (string, *formStep)
}

func newAppModel(app *App) appModel {
	m := appModel{
		app:     app,
		keys:    defaultKeyMap(),
		content: viewport.New(0, 0),
	}
	m.refresh()
	return m
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.content.Width = msg.Width
		m.content.Height = m.contentHeight()
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.form == nil {
			return m.handleBrowseKey(msg)
		}
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	var cmd tea.Cmd
	m.content, cmd = m.content.Update(msg)
	return m, cmd
}

func (m appModel) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Dismiss):
		m.app.Engine.DismissError()
		m.flash = ""
		return m, nil

	case key.Matches(msg, m.keys.Add):
		return m.startAdd()

	case key.Matches(msg, m.keys.Edit):
		return m.startEdit()

	case key.Matches(msg, m.keys.Note):
		return m.startNote()

	case key.Matches(msg, m.keys.Clear):
		return m.startClear()
	}

	var cmd tea.Cmd
	m.content, cmd = m.content.Update(msg)
	return m, cmd
}

func (m appModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.form.Update(msg)
	if f, ok := updated.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		flash, next := m.submit()
		if next != nil {
			m.form = next.form
			m.submit = next.submit
			return m, m.form.Init()
		}
		m.form = nil
		m.submit = nil
		m.flash = flash
		m.refresh()
		return m, nil

	case huh.StateAborted:
		m.form = nil
		m.submit = nil
		m.refresh()
		return m, nil
	}

	return m, cmd
}

// ── wizard entry points ─────────────────────────────────────────────────────

func (m appModel) startAdd() (tea.Model, tea.Cmd) {
	input := &domain.EntryInput{}
	m.form = newEntryForm(input)
	m.submit = func() (string, *formStep) {
		entry, err := m.app.Engine.Add(*input)
		if err != nil {
			return "", nil
		}
		return fmt.Sprintf("Entry #%d added (%s OIT)", entry.ID, formatter.FormatOIT(entry.OIT)), nil
	}
	return m, m.form.Init()
}

func (m appModel) startEdit() (tea.Model, tea.Cmd) {
	entries := m.app.Engine.Entries()
	if len(entries) == 0 {
		m.flash = "Nothing to edit yet."
		return m, nil
	}

	id := entries[0].ID
	m.form = newSelectEntryForm("Edit which entry?", entries, &id)
	m.submit = func() (string, *formStep) {
		input := &domain.EntryInput{}
		for _, e := range entries {
			if e.ID == id {
				input.Engagement = e.Engagement
				input.Category = e.Category
				input.Start = formatter.WallClock(e.StartISO)
				input.End = formatter.WallClock(e.EndISO)
			}
		}
		return "", &formStep{
			form: newEntryForm(input),
			submit: func() (string, *formStep) {
				entry, err := m.app.Engine.Edit(id, *input)
				if err != nil {
					return "", nil
				}
				return fmt.Sprintf("Entry #%d updated (%s OIT)", entry.ID, formatter.FormatOIT(entry.OIT)), nil
			},
		}
	}
	return m, m.form.Init()
}

func (m appModel) startNote() (tea.Model, tea.Cmd) {
	if m.app.Engine.NoteMode() == domain.NotesByEntry {
		return m.startEntryNote()
	}

	var engagement, category, text string
	m.form = newPairNoteForm(&engagement, &category, &text)
	m.submit = func() (string, *formStep) {
		target := engine.NoteTarget{Engagement: engagement, Category: category}
		if err := m.app.Engine.SetNote(target, text); err != nil {
			return "", nil
		}
		if strings.TrimSpace(text) == "" {
			return "Note removed.", nil
		}
		return "Note saved.", nil
	}
	return m, m.form.Init()
}

func (m appModel) startEntryNote() (tea.Model, tea.Cmd) {
	entries := m.app.Engine.Entries()
	if len(entries) == 0 {
		m.flash = "Nothing to annotate yet."
		return m, nil
	}

	id := entries[0].ID
	m.form = newSelectEntryForm("Annotate which entry?", entries, &id)
	m.submit = func() (string, *formStep) {
		text := m.app.Engine.Notes()[domain.EntryNoteKey(id)]
		return "", &formStep{
			form: newEntryNoteForm(&text),
			submit: func() (string, *formStep) {
				if err := m.app.Engine.SetNote(engine.NoteTarget{EntryID: id}, text); err != nil {
					return "", nil
				}
				if strings.TrimSpace(text) == "" {
					return "Note removed.", nil
				}
				return "Note saved.", nil
			},
		}
	}
	return m, m.form.Init()
}

func (m appModel) startClear() (tea.Model, tea.Cmd) {
	confirmed := false
	m.form = newClearConfirmForm(&confirmed)
	m.submit = func() (string, *formStep) {
		if !confirmed {
			return "", nil
		}
		m.app.Engine.Clear()
		return "Session cleared.", nil
	}
	return m, m.form.Init()
}

// ── rendering ───────────────────────────────────────────────────────────────

// refresh recomputes the report from a fresh snapshot and re-renders the
// scrollable content. Cheap enough to run on every committed change.
func (m *appModel) refresh() {
	eng := m.app.Engine
	entries := eng.Entries()
	r := report.Build(entries, m.app.Timezone, eng.Notes(), eng.NoteKey)

	var b strings.Builder
	b.WriteString(formatter.FormatEntries(entries, eng.Notes(), eng.NoteMode()))
	b.WriteString("\n")
	b.WriteString(formatter.FormatReport(r))
	m.content.SetContent(b.String())
}

func (m appModel) contentHeight() int {
	// Title, banner line, and help line surround the viewport.
	h := m.height - 3
	if h < 1 {
		h = 1
	}
	return h
}

func (m appModel) View() string {
	if m.form != nil {
		return m.titleBar() + "\n\n" + m.form.View()
	}

	var b strings.Builder
	b.WriteString(m.titleBar() + "\n")

	if errMsg := m.app.Engine.Err(); errMsg != "" {
		b.WriteString(formatter.ErrorBanner(errMsg) + "\n")
	} else if m.flash != "" {
		b.WriteString(formatter.SuccessFlash(m.flash) + "\n")
	} else {
		b.WriteString("\n")
	}

	b.WriteString(m.content.View() + "\n")
	b.WriteString(m.helpLine())
	return b.String()
}

func (m appModel) titleBar() string {
	session := m.app.Engine.SessionID()
	if len(session) > 8 {
		session = session[:8]
	}
	title := formatter.StyleHeader.Render("OITRACK")
	meta := formatter.Dim(fmt.Sprintf("session %s · %s", session, m.app.Timezone))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", meta)
}

func (m appModel) helpLine() string {
	bindings := []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Note, m.keys.Clear, m.keys.Dismiss, m.keys.Quit}
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, fmt.Sprintf("%s %s", b.Help().Key, b.Help().Desc))
	}
	return formatter.Dim(strings.Join(parts, " · "))
}
