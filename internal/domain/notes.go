package domain

import "strconv"

// NotesMap holds free-text notes keyed by the active note key scheme.
// Text is always stored trimmed and non-empty; removing a note deletes
// the key rather than storing an empty string.
type NotesMap map[string]string

// NoteMode selects which granularity notes attach to. Exactly one mode is
// active for a session.
type NoteMode string

const (
	// NotesByPair keys notes by (engagement, category).
	NotesByPair NoteMode = "pair"

	// NotesByEntry keys notes by entry id.
	NotesByEntry NoteMode = "entry"
)

// pairKeySep joins engagement and category in pair-mode note keys. Three
// pipes so ordinary label text cannot collide with a composed key.
const pairKeySep = "|||"

// PairNoteKey returns the notes-map key for an (engagement, category) pair.
func PairNoteKey(engagement, category string) string {
	return engagement + pairKeySep + category
}

// EntryNoteKey returns the notes-map key for a single entry.
func EntryNoteKey(id int) string {
	return strconv.Itoa(id)
}

// Clone returns an independent copy, so report building can hold a snapshot
// while the session keeps mutating.
func (n NotesMap) Clone() NotesMap {
	out := make(NotesMap, len(n))
	for k, v := range n {
		out[k] = v
	}
	return out
}
