package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/oitrack/internal/domain"
	"github.com/alexanderramin/oitrack/internal/oit"
)

// FormatOIT renders an OIT value with its fixed one-decimal precision.
func FormatOIT(v float64) string {
	return fmt.Sprintf("%.1f", v)
}

// FormatReport renders the full hierarchical report: one section per
// engagement with its category table and totals line, then the overall
// footer. Order matches the report, which is first-seen order.
func FormatReport(r domain.Report) string {
	var b strings.Builder

	if len(r.Engagements) == 0 {
		b.WriteString(Dim("No entries yet. Press 'a' to log your first interval.") + "\n")
		return RenderBox("Report", b.String())
	}

	for i, eng := range r.Engagements {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Header(eng.Name) + "\n")

		headers := []string{"CATEGORY", "ENTRIES", "TIME", "OIT", "NOTE"}
		rows := make([][]string, 0, len(eng.Categories))
		for _, cat := range eng.Categories {
			note := Dim("--")
			if cat.Note != "" {
				note = StyleFg.Render(cat.Note)
			}
			rows = append(rows, []string{
				Bold(cat.Name),
				fmt.Sprintf("%d", cat.EntryCount),
				oit.FormatHM(cat.TotalMinutes),
				StyleBlue.Render(FormatOIT(cat.TotalOIT)),
				note,
			})
		}
		b.WriteString(RenderTable(headers, rows))

		b.WriteString(fmt.Sprintf("%s %d entries, %s, %s OIT\n",
			Dim("Subtotal:"),
			eng.Totals.Entries,
			oit.FormatHM(eng.Totals.Minutes),
			StyleBlue.Render(FormatOIT(eng.Totals.OIT)),
		))
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %d entries, %s, %s OIT\n",
		Bold("Overall:"),
		r.Overall.Entries,
		oit.FormatHM(r.Overall.Minutes),
		StylePurple.Render(FormatOIT(r.Overall.OIT)),
	))
	b.WriteString(Dim("Timezone: "+r.Timezone) + "\n")

	return RenderBox("Report", b.String())
}
