// Package timeparse resolves the two accepted wall-clock input shapes into
// absolute instants: a bare "HH:MM" anchored to today, or a full local
// date-time string.
package timeparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/oitrack/internal/domain"
)

// fullLayouts are the accepted full date-time shapes, tried in order. These
// match what an HTML datetime-local field produces, plus common variants.
var fullLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02 15:04:05",
}

// Parsed is the tagged result of structural dispatch, before anchoring.
type Parsed struct {
	TimeOnly bool

	// Set when TimeOnly.
	Hour, Minute int

	// Set otherwise.
	Instant time.Time
}

// Parse classifies and parses an input string without anchoring it to a
// date. A string containing a colon with total length at most five is the
// time-only shape; everything else must parse as a full local date-time.
func Parse(s string, loc *time.Location) (Parsed, error) {
	if strings.Contains(s, ":") && len(s) <= 5 {
		hh, mm, err := parseHM(s)
		if err != nil {
			return Parsed{}, err
		}
		return Parsed{TimeOnly: true, Hour: hh, Minute: mm}, nil
	}
	for _, layout := range fullLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return Parsed{Instant: t}, nil
		}
	}
	return Parsed{}, fmt.Errorf("unparseable date-time %q: %w", s, domain.ErrInvalidField)
}

// Resolve parses s and converts it to an absolute instant. Time-only input
// is anchored to now's calendar date in now's location, with second and
// sub-second set to zero.
func Resolve(s string, now time.Time) (time.Time, error) {
	p, err := Parse(s, now.Location())
	if err != nil {
		return time.Time{}, err
	}
	if p.TimeOnly {
		return time.Date(now.Year(), now.Month(), now.Day(), p.Hour, p.Minute, 0, 0, now.Location()), nil
	}
	return p.Instant, nil
}

// RollForward applies the cross-midnight rule: an end strictly before its
// start means the interval passed midnight, so the end advances by exactly
// one calendar day. Equal instants are left alone and rejected downstream.
func RollForward(start, end time.Time) time.Time {
	if end.Before(start) {
		return end.AddDate(0, 0, 1)
	}
	return end
}

// ZoneName reports the local zone name for display. When the location has
// no loadable name (TZ unset), fall back to the current zone abbreviation.
func ZoneName() string {
	if name := time.Local.String(); name != "" && name != "Local" {
		return name
	}
	abbr, _ := time.Now().Zone()
	return abbr
}

func parseHM(s string) (int, int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed time %q: %w", s, domain.ErrInvalidField)
	}
	hh, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed time %q: %w", s, domain.ErrInvalidField)
	}
	mm, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("malformed time %q: %w", s, domain.ErrInvalidField)
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return 0, 0, fmt.Errorf("time %q out of range: %w", s, domain.ErrInvalidField)
	}
	return hh, mm, nil
}
