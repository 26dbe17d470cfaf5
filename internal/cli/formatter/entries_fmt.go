package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/oitrack/internal/domain"
	"github.com/alexanderramin/oitrack/internal/oit"
)

// WallClock converts a stored RFC 3339 UTC instant back to local "HH:MM"
// for display. Unparseable input renders as-is rather than hiding the row.
func WallClock(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return iso
	}
	return t.Local().Format("15:04")
}

// FormatEntries renders the session's entry table, oldest first. In
// entry-granular note mode each row carries its own note column.
func FormatEntries(entries []domain.Entry, notes domain.NotesMap, mode domain.NoteMode) string {
	if len(entries) == 0 {
		return RenderBox("Entries", Dim("Nothing logged in this session.")+"\n")
	}

	headers := []string{"ID", "ENGAGEMENT", "CATEGORY", "START", "END", "TIME", "OIT"}
	withNotes := mode == domain.NotesByEntry
	if withNotes {
		headers = append(headers, "NOTE")
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		row := []string{
			Dim(fmt.Sprintf("%d", e.ID)),
			Bold(e.Engagement),
			StyleFg.Render(e.Category),
			WallClock(e.StartISO),
			WallClock(e.EndISO),
			oit.FormatHM(e.Minutes),
			StyleBlue.Render(FormatOIT(e.OIT)),
		}
		if withNotes {
			note := Dim("--")
			if text := notes[domain.EntryNoteKey(e.ID)]; text != "" {
				note = StyleFg.Render(text)
			}
			row = append(row, note)
		}
		rows = append(rows, row)
	}

	return RenderBox("Entries", RenderTable(headers, rows))
}
