// Package report turns an entry snapshot into the two-level engagement ->
// category summary. Build is pure: no state, no mutation of its inputs,
// identical output for identical input.
package report

import (
	"github.com/alexanderramin/oitrack/internal/domain"
	"github.com/alexanderramin/oitrack/internal/oit"
)

// NoteKeyFunc maps a category group to its notes-map key. ok is false when
// the active note scheme has no category-level keys (entry-granular notes).
type NoteKeyFunc func(engagement, category string) (key string, ok bool)

// Build produces the report for a snapshot of entries. Engagements and
// categories appear in first-seen order of the entry collection, never
// sorted. Aggregate OIT at every level is the rounded sum of the raw
// per-entry OIT values (two-stage rounding), which is intentionally not
// always equal to the OIT of the summed minutes.
func Build(entries []domain.Entry, timezone string, notes domain.NotesMap, noteKey NoteKeyFunc) domain.Report {
	byEng := map[string][]domain.Entry{}
	var engOrder []string
	for _, e := range entries {
		if _, seen := byEng[e.Engagement]; !seen {
			engOrder = append(engOrder, e.Engagement)
		}
		byEng[e.Engagement] = append(byEng[e.Engagement], e)
	}

	engagements := make([]domain.EngagementSummary, 0, len(engOrder))
	for _, name := range engOrder {
		engagements = append(engagements, summarizeEngagement(name, byEng[name], notes, noteKey))
	}

	return domain.Report{
		Timezone:    timezone,
		Engagements: engagements,
		Overall:     totalsOf(entries),
	}
}

func summarizeEngagement(name string, entries []domain.Entry, notes domain.NotesMap, noteKey NoteKeyFunc) domain.EngagementSummary {
	byCat := map[string][]domain.Entry{}
	var catOrder []string
	for _, e := range entries {
		if _, seen := byCat[e.Category]; !seen {
			catOrder = append(catOrder, e.Category)
		}
		byCat[e.Category] = append(byCat[e.Category], e)
	}

	categories := make([]domain.CategorySummary, 0, len(catOrder))
	for _, cat := range catOrder {
		group := byCat[cat]
		summary := domain.CategorySummary{
			Name:         cat,
			EntryCount:   len(group),
			TotalMinutes: sumMinutes(group),
			TotalOIT:     oit.SumEntryOIT(oitValues(group)),
		}
		if noteKey != nil {
			if key, ok := noteKey(name, cat); ok {
				summary.Note = notes[key]
			}
		}
		categories = append(categories, summary)
	}

	return domain.EngagementSummary{
		Name:       name,
		Categories: categories,
		Totals:     totalsOf(entries),
	}
}

// totalsOf sums one level. OIT sums raw per-entry values and rounds once;
// it must not be rebuilt from the already-rounded category totals.
func totalsOf(entries []domain.Entry) domain.Totals {
	return domain.Totals{
		Entries: len(entries),
		Minutes: sumMinutes(entries),
		OIT:     oit.SumEntryOIT(oitValues(entries)),
	}
}

func sumMinutes(entries []domain.Entry) int {
	var total int
	for _, e := range entries {
		total += e.Minutes
	}
	return total
}

func oitValues(entries []domain.Entry) []float64 {
	vals := make([]float64, len(entries))
	for i, e := range entries {
		vals[i] = e.OIT
	}
	return vals
}
