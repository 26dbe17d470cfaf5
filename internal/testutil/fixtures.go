package testutil

import (
	"time"

	"github.com/alexanderramin/oitrack/internal/domain"
)

// FixedNow is the reference instant tests anchor "today" to. UTC so results
// do not depend on the host timezone.
var FixedNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

// Clock returns a time source frozen at FixedNow.
func Clock() func() time.Time {
	return func() time.Time { return FixedNow }
}

// EntryInputOption mutates a default EntryInput.
type EntryInputOption func(*domain.EntryInput)

// WithLabels overrides the engagement and category labels.
func WithLabels(engagement, category string) EntryInputOption {
	return func(in *domain.EntryInput) {
		in.Engagement = engagement
		in.Category = category
	}
}

// WithTimes overrides the raw start and end strings.
func WithTimes(start, end string) EntryInputOption {
	return func(in *domain.EntryInput) {
		in.Start = start
		in.End = end
	}
}

// NewEntryInput builds a valid one-hour input with overridable fields.
func NewEntryInput(opts ...EntryInputOption) domain.EntryInput {
	in := domain.EntryInput{
		Engagement: "Acme",
		Category:   "Development",
		Start:      "09:00",
		End:        "10:00",
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}

// NewEntry builds a canonical entry directly, for report-builder tests that
// bypass the engine. Minutes and OIT are taken as given.
func NewEntry(id int, engagement, category string, minutes int, oitValue float64) domain.Entry {
	start := FixedNow
	end := start.Add(time.Duration(minutes) * time.Minute)
	return domain.Entry{
		ID:         id,
		Engagement: engagement,
		Category:   category,
		StartISO:   start.Format(time.RFC3339),
		EndISO:     end.Format(time.RFC3339),
		Minutes:    minutes,
		OIT:        oitValue,
	}
}
