package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// MaxLabelLen is the maximum length, in runes, of an engagement or
	// category label after trimming.
	MaxLabelLen = 100

	// MaxNoteLen is the maximum length, in runes, of note text after trimming.
	MaxNoteLen = 1000
)

// EntryInput is the raw user-submitted tuple before validation. Start and
// End accept either "HH:MM" (anchored to today, local time) or a full local
// date-time such as "2006-01-02T15:04".
type EntryInput struct {
	Engagement string
	Category   string
	Start      string
	End        string
}

// Entry is the canonical validated record for one logged interval.
// StartISO and EndISO are RFC 3339 UTC instants. Minutes and OIT are
// derived at creation and on every edit, never set directly.
type Entry struct {
	ID         int
	Engagement string
	Category   string
	StartISO   string
	EndISO     string
	Minutes    int
	OIT        float64
}

// ValidateLabel trims a label and checks the length bounds. It returns the
// trimmed value; the error names the field so it reads well in the shell.
func ValidateLabel(field, raw string) (string, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return "", fmt.Errorf("%s is required: %w", field, ErrInvalidField)
	}
	if utf8.RuneCountInString(v) > MaxLabelLen {
		return "", fmt.Errorf("%s must be at most %d characters: %w", field, MaxLabelLen, ErrInvalidField)
	}
	return v, nil
}
