package engine

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/oitrack/internal/domain"
	"github.com/alexanderramin/oitrack/internal/testutil"
)

func newTestEngine(opts ...Option) *Engine {
	return New(append([]Option{WithClock(testutil.Clock())}, opts...)...)
}

func TestAdd_CreatesValidatedEntry(t *testing.T) {
	e := newTestEngine()

	entry, err := e.Add(testutil.NewEntryInput(withRaw("  Acme  ", "  Development ", "09:00", "10:30")))
	require.NoError(t, err)

	assert.Equal(t, 1, entry.ID)
	assert.Equal(t, "Acme", entry.Engagement, "labels are stored trimmed")
	assert.Equal(t, "Development", entry.Category)
	assert.Equal(t, "2026-03-10T09:00:00Z", entry.StartISO)
	assert.Equal(t, "2026-03-10T10:30:00Z", entry.EndISO)
	assert.Equal(t, 90, entry.Minutes)
	assert.InDelta(t, 1.5, entry.OIT, 1e-9)

	entries := e.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, *entry, entries[0])
	assert.Empty(t, e.Err(), "success does not set an error")
}

func TestAdd_AcceptsFullDateTimes(t *testing.T) {
	e := newTestEngine()

	entry, err := e.Add(testutil.NewEntryInput(
		testutil.WithTimes("2026-03-09T22:00", "2026-03-09T23:30")))
	require.NoError(t, err)
	assert.Equal(t, 90, entry.Minutes)
	assert.Equal(t, "2026-03-09T22:00:00Z", entry.StartISO)
}

func TestAdd_CrossMidnightRollsEndForward(t *testing.T) {
	e := newTestEngine()

	entry, err := e.Add(testutil.NewEntryInput(testutil.WithTimes("23:30", "00:15")))
	require.NoError(t, err)

	assert.Equal(t, 45, entry.Minutes)
	start, _ := time.Parse(time.RFC3339, entry.StartISO)
	end, _ := time.Parse(time.RFC3339, entry.EndISO)
	assert.Equal(t, start.Day()+1, end.Day(), "end lands on the next calendar day")
}

func TestAdd_RejectsZeroDuration(t *testing.T) {
	e := newTestEngine()

	_, err := e.Add(testutil.NewEntryInput(testutil.WithTimes("09:00", "09:00")))
	assert.ErrorIs(t, err, domain.ErrDurationNonPositive)
	assert.Empty(t, e.Entries(), "no partial entry is appended")

	// The id counter must not have advanced.
	entry, err := e.Add(testutil.NewEntryInput())
	require.NoError(t, err)
	assert.Equal(t, 1, entry.ID)
}

func TestAdd_RejectsBadLabels(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		name  string
		input domain.EntryInput
	}{
		{"empty engagement", testutil.NewEntryInput(testutil.WithLabels("   ", "Dev"))},
		{"empty category", testutil.NewEntryInput(testutil.WithLabels("Acme", ""))},
		{"engagement too long", testutil.NewEntryInput(testutil.WithLabels(strings.Repeat("x", 101), "Dev"))},
		{"category too long", testutil.NewEntryInput(testutil.WithLabels("Acme", strings.Repeat("x", 101)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Add(tt.input)
			assert.ErrorIs(t, err, domain.ErrInvalidField)
		})
	}
	assert.Empty(t, e.Entries())
}

func TestAdd_BoundaryLabelLengthAccepted(t *testing.T) {
	e := newTestEngine()

	_, err := e.Add(testutil.NewEntryInput(testutil.WithLabels(strings.Repeat("x", 100), "Dev")))
	assert.NoError(t, err)
}

func TestAdd_OneMinuteEntryHasZeroOIT(t *testing.T) {
	e := newTestEngine()

	entry, err := e.Add(testutil.NewEntryInput(testutil.WithTimes("09:00", "09:01")))
	require.NoError(t, err, "rejection is based on minutes, not OIT")
	assert.Equal(t, 1, entry.Minutes)
	assert.InDelta(t, 0.0, entry.OIT, 1e-9)
}

func TestAdd_ErrorOverwritesPreviousError(t *testing.T) {
	e := newTestEngine()

	_, err := e.Add(testutil.NewEntryInput(testutil.WithLabels("", "Dev")))
	require.Error(t, err)
	first := e.Err()
	require.NotEmpty(t, first)

	_, err = e.Add(testutil.NewEntryInput(testutil.WithTimes("09:00", "09:00")))
	require.Error(t, err)
	second := e.Err()
	assert.NotEqual(t, first, second, "a newer failure replaces the old message")

	// Success leaves the held error in place until dismissed.
	_, err = e.Add(testutil.NewEntryInput())
	require.NoError(t, err)
	assert.Equal(t, second, e.Err())

	e.DismissError()
	assert.Empty(t, e.Err())
}

func TestEdit_ReplacesInPlaceAndRecomputes(t *testing.T) {
	e := newTestEngine()

	entry, err := e.Add(testutil.NewEntryInput())
	require.NoError(t, err)
	require.Equal(t, 60, entry.Minutes)

	updated, err := e.Edit(entry.ID, testutil.NewEntryInput(
		testutil.WithLabels("Globex", "Review"),
		testutil.WithTimes("13:00", "13:20")))
	require.NoError(t, err)

	assert.Equal(t, entry.ID, updated.ID, "id is preserved")
	assert.Equal(t, "Globex", updated.Engagement)
	assert.Equal(t, 20, updated.Minutes)
	assert.InDelta(t, 0.3, updated.OIT, 1e-9)

	entries := e.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, *updated, entries[0])
}

func TestEdit_NotFound(t *testing.T) {
	e := newTestEngine()

	_, err := e.Edit(42, testutil.NewEntryInput())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEdit_InvalidInputLeavesEntryUntouched(t *testing.T) {
	e := newTestEngine()

	entry, err := e.Add(testutil.NewEntryInput())
	require.NoError(t, err)

	_, err = e.Edit(entry.ID, testutil.NewEntryInput(testutil.WithTimes("10:00", "10:00")))
	require.ErrorIs(t, err, domain.ErrDurationNonPositive)

	entries := e.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, *entry, entries[0], "failed edit must not mutate")
}

func TestEdit_DoesNotReuseIDs(t *testing.T) {
	e := newTestEngine()

	first, err := e.Add(testutil.NewEntryInput())
	require.NoError(t, err)
	_, err = e.Add(testutil.NewEntryInput(testutil.WithTimes("11:00", "12:00")))
	require.NoError(t, err)

	_, err = e.Edit(first.ID, testutil.NewEntryInput(testutil.WithTimes("08:00", "08:30")))
	require.NoError(t, err)

	third, err := e.Add(testutil.NewEntryInput(testutil.WithTimes("14:00", "15:00")))
	require.NoError(t, err)
	assert.Equal(t, 3, third.ID, "edits never recycle the counter")
}

func TestSetNote_PairLifecycle(t *testing.T) {
	e := newTestEngine()

	target := NoteTarget{Engagement: "Acme", Category: "Development"}
	require.NoError(t, e.SetNote(target, "  first draft  "))
	assert.Equal(t, "first draft", e.Notes()[domain.PairNoteKey("Acme", "Development")], "stored trimmed")

	require.NoError(t, e.SetNote(target, "final"))
	assert.Equal(t, "final", e.Notes()[domain.PairNoteKey("Acme", "Development")])

	// Empty text removes the key entirely.
	require.NoError(t, e.SetNote(target, "   "))
	_, ok := e.Notes()[domain.PairNoteKey("Acme", "Development")]
	assert.False(t, ok)
}

func TestSetNote_TooLong(t *testing.T) {
	e := newTestEngine()

	target := NoteTarget{Engagement: "Acme", Category: "Development"}
	err := e.SetNote(target, strings.Repeat("x", 1001))
	assert.ErrorIs(t, err, domain.ErrNoteTooLong)
	assert.Empty(t, e.Notes(), "no partial note is stored")

	assert.NoError(t, e.SetNote(target, strings.Repeat("x", 1000)))
}

func TestSetNote_PairRequiresLabels(t *testing.T) {
	e := newTestEngine()

	err := e.SetNote(NoteTarget{Engagement: "", Category: "Dev"}, "text")
	assert.ErrorIs(t, err, domain.ErrInvalidField)
	assert.Empty(t, e.Notes())
}

func TestSetNote_EntryMode(t *testing.T) {
	e := newTestEngine(WithNoteMode(domain.NotesByEntry))

	entry, err := e.Add(testutil.NewEntryInput())
	require.NoError(t, err)

	require.NoError(t, e.SetNote(NoteTarget{EntryID: entry.ID}, "tricky merge"))
	assert.Equal(t, "tricky merge", e.Notes()[domain.EntryNoteKey(entry.ID)])

	err = e.SetNote(NoteTarget{EntryID: 99}, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNoteKey_OnlyPairModeExposesCategoryKeys(t *testing.T) {
	pair := newTestEngine()
	key, ok := pair.NoteKey("Acme", "Dev")
	assert.True(t, ok)
	assert.Equal(t, domain.PairNoteKey("Acme", "Dev"), key)

	perEntry := newTestEngine(WithNoteMode(domain.NotesByEntry))
	_, ok = perEntry.NoteKey("Acme", "Dev")
	assert.False(t, ok)
}

func TestClear_ResetsSession(t *testing.T) {
	e := newTestEngine()

	_, err := e.Add(testutil.NewEntryInput())
	require.NoError(t, err)
	require.NoError(t, e.SetNote(NoteTarget{Engagement: "Acme", Category: "Development"}, "note"))
	oldSession := e.SessionID()

	e.Clear()

	assert.Empty(t, e.Entries())
	assert.Empty(t, e.Notes())
	assert.NotEqual(t, oldSession, e.SessionID(), "clear starts a fresh session identity")

	entry, err := e.Add(testutil.NewEntryInput())
	require.NoError(t, err)
	assert.Equal(t, 1, entry.ID, "ids restart at 1 after clear")
}

func TestEntries_ReturnsCopy(t *testing.T) {
	e := newTestEngine()

	_, err := e.Add(testutil.NewEntryInput())
	require.NoError(t, err)

	snapshot := e.Entries()
	snapshot[0].Engagement = "mutated"

	assert.Equal(t, "Acme", e.Entries()[0].Engagement)
}

// withRaw sets every input field at once; only used here, so it lives next
// to the tests rather than in testutil.
func withRaw(engagement, category, start, end string) testutil.EntryInputOption {
	return func(in *domain.EntryInput) {
		in.Engagement = engagement
		in.Category = category
		in.Start = start
		in.End = end
	}
}
