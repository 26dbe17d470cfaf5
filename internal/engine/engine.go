// Package engine owns the session state: the entry collection, the id
// counter, the notes map, and the single visible error. Every mutation
// funnels through the operations here; validation failures leave prior
// state completely untouched.
package engine

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/alexanderramin/oitrack/internal/domain"
	"github.com/alexanderramin/oitrack/internal/oit"
	"github.com/alexanderramin/oitrack/internal/timeparse"
)

// NoteTarget addresses a note. Pair mode reads Engagement and Category;
// entry mode reads EntryID.
type NoteTarget struct {
	Engagement string
	Category   string
	EntryID    int
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithNoteMode selects the note granularity for the session.
func WithNoteMode(mode domain.NoteMode) Option {
	return func(e *Engine) { e.noteMode = mode }
}

// WithClock overrides the time source, for tests that anchor "today".
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine is the single-owner, synchronous state authority for one session.
// It is not safe for concurrent use and is not meant to be.
type Engine struct {
	entries   []domain.Entry
	nextID    int
	notes     domain.NotesMap
	lastErr   string
	noteMode  domain.NoteMode
	sessionID string
	now       func() time.Time
}

// New returns an empty session with ids starting at 1.
func New(opts ...Option) *Engine {
	e := &Engine{
		nextID:    1,
		notes:     domain.NotesMap{},
		noteMode:  domain.NotesByPair,
		sessionID: uuid.New().String(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Add validates raw input and appends a new entry. This is the only
// operation that grows the collection.
func (e *Engine) Add(input domain.EntryInput) (*domain.Entry, error) {
	entry, err := e.buildEntry(input)
	if err != nil {
		e.lastErr = err.Error()
		return nil, err
	}
	entry.ID = e.nextID
	e.nextID++
	e.entries = append(e.entries, *entry)
	return entry, nil
}

// Edit re-runs the full validation pipeline and replaces the identified
// entry in place. The id is preserved and every derived field recomputed.
func (e *Engine) Edit(id int, input domain.EntryInput) (*domain.Entry, error) {
	idx := -1
	for i := range e.entries {
		if e.entries[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		err := fmt.Errorf("entry %d: %w", id, domain.ErrNotFound)
		e.lastErr = err.Error()
		return nil, err
	}
	entry, err := e.buildEntry(input)
	if err != nil {
		e.lastErr = err.Error()
		return nil, err
	}
	entry.ID = id
	e.entries[idx] = *entry
	return entry, nil
}

// SetNote stores, overwrites, or removes the note for a target. Empty text
// after trimming removes the key entirely.
func (e *Engine) SetNote(target NoteTarget, text string) error {
	key, err := e.noteKeyFor(target)
	if err != nil {
		e.lastErr = err.Error()
		return err
	}
	trimmed, err := validateNoteText(text)
	if err != nil {
		e.lastErr = err.Error()
		return err
	}
	if trimmed == "" {
		delete(e.notes, key)
		return nil
	}
	e.notes[key] = trimmed
	return nil
}

// Clear resets the whole session: entries, id counter, notes, and session
// identity. The visible error survives until dismissed.
func (e *Engine) Clear() {
	e.entries = nil
	e.nextID = 1
	e.notes = domain.NotesMap{}
	e.sessionID = uuid.New().String()
}

// Err returns the currently visible error message, empty when none. A new
// validation failure overwrites the previous message; successes leave it
// alone until DismissError.
func (e *Engine) Err() string {
	return e.lastErr
}

// DismissError clears the visible error without touching anything else.
func (e *Engine) DismissError() {
	e.lastErr = ""
}

// Entries returns a copy of the entry collection, oldest first.
func (e *Engine) Entries() []domain.Entry {
	out := make([]domain.Entry, len(e.entries))
	copy(out, e.entries)
	return out
}

// Notes returns a copy of the notes map.
func (e *Engine) Notes() domain.NotesMap {
	return e.notes.Clone()
}

// NoteMode reports the active note granularity.
func (e *Engine) NoteMode() domain.NoteMode {
	return e.noteMode
}

// SessionID identifies the current session; Clear issues a fresh one.
func (e *Engine) SessionID() string {
	return e.sessionID
}

// NoteKey exposes the active key scheme so the report builder can look up
// category notes without hardcoding it. In entry mode category groups have
// no key and ok is false.
func (e *Engine) NoteKey(engagement, category string) (string, bool) {
	if e.noteMode != domain.NotesByPair {
		return "", false
	}
	return domain.PairNoteKey(engagement, category), true
}

// buildEntry runs the shared Add/Edit pipeline: label validation, two-shape
// time resolution, cross-midnight rollover, and metric derivation. It never
// touches engine state.
func (e *Engine) buildEntry(input domain.EntryInput) (*domain.Entry, error) {
	engagement, err := domain.ValidateLabel("engagement", input.Engagement)
	if err != nil {
		return nil, err
	}
	category, err := domain.ValidateLabel("category", input.Category)
	if err != nil {
		return nil, err
	}

	now := e.now()
	start, err := timeparse.Resolve(input.Start, now)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := timeparse.Resolve(input.End, now)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}
	end = timeparse.RollForward(start, end)

	minutes := int(end.Sub(start) / time.Minute)
	if minutes <= 0 {
		return nil, fmt.Errorf("end time must be after start time: %w", domain.ErrDurationNonPositive)
	}

	return &domain.Entry{
		Engagement: engagement,
		Category:   category,
		StartISO:   start.UTC().Format(time.RFC3339),
		EndISO:     end.UTC().Format(time.RFC3339),
		Minutes:    minutes,
		OIT:        oit.FromMinutes(minutes),
	}, nil
}

func (e *Engine) noteKeyFor(target NoteTarget) (string, error) {
	switch e.noteMode {
	case domain.NotesByEntry:
		for i := range e.entries {
			if e.entries[i].ID == target.EntryID {
				return domain.EntryNoteKey(target.EntryID), nil
			}
		}
		return "", fmt.Errorf("entry %d: %w", target.EntryID, domain.ErrNotFound)
	default:
		engagement, err := domain.ValidateLabel("engagement", target.Engagement)
		if err != nil {
			return "", err
		}
		category, err := domain.ValidateLabel("category", target.Category)
		if err != nil {
			return "", err
		}
		return domain.PairNoteKey(engagement, category), nil
	}
}

func validateNoteText(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) > domain.MaxNoteLen {
		return "", fmt.Errorf("note must be at most %d characters: %w", domain.MaxNoteLen, domain.ErrNoteTooLong)
	}
	return trimmed, nil
}
