package domain

// Totals aggregates a set of entries at one report level.
type Totals struct {
	Entries int
	Minutes int
	OIT     float64
}

// CategorySummary is one category group within an engagement. OIT here is
// the rounded sum of the already-rounded per-entry OIT values, not a
// recomputation from TotalMinutes.
type CategorySummary struct {
	Name         string
	EntryCount   int
	TotalMinutes int
	TotalOIT     float64
	Note         string
}

// EngagementSummary is one engagement group with its category breakdown.
type EngagementSummary struct {
	Name       string
	Categories []CategorySummary
	Totals     Totals
}

// Report is the derived two-level summary of a session. It is recomputed
// from the entry collection on every read and never stored. Timezone is the
// local zone name, carried for display only.
type Report struct {
	Timezone    string
	Engagements []EngagementSummary
	Overall     Totals
}
