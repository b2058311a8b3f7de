package ics

import (
	"bytes"
	"testing"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compass/internal/catalog"
	"compass/internal/model"
)

func TestExport_FallbackCatalog(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC)
	body := Export(catalog.Fallback().All(), now, ExportOptions{Name: "Program deadlines"})

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	require.NoError(t, err)

	events := cal.Events()
	// MLH Fellowship (year-round) and Social Winter of Code (completed) are skipped.
	require.Len(t, events, 4)

	byUID := make(map[string]*ical.VEvent, len(events))
	for _, ev := range events {
		byUID[ev.Id()] = ev
	}

	hacktoberfest, _ := catalog.Fallback().Find(3)
	ev, ok := byUID[EventUID(hacktoberfest)]
	require.True(t, ok)

	start := ev.GetProperty(ical.ComponentPropertyDtStart)
	require.NotNil(t, start)
	assert.Equal(t, "20251001", start.Value)
	assert.Equal(t, []string{"DATE"}, start.ICalParameters["VALUE"])

	end := ev.GetProperty(ical.ComponentPropertyDtEnd)
	require.NotNil(t, end)
	assert.Equal(t, "20251002", end.Value)

	assert.Equal(t, "⏰ Deadline: Hacktoberfest", ev.GetProperty(ical.ComponentPropertySummary).Value)
	assert.Equal(t, "Online", ev.GetProperty(ical.ComponentPropertyLocation).Value)
	assert.Equal(t, "FREQ=YEARLY", ev.GetProperty(ical.ComponentPropertyRrule).Value)
}

func TestExport_Deterministic(t *testing.T) {
	now := time.Date(2025, time.March, 10, 15, 0, 0, 0, time.UTC)
	programs := catalog.Fallback().All()
	assert.Equal(t, Export(programs, now, ExportOptions{}), Export(programs, now, ExportOptions{}))
}

func TestEventUID_Stable(t *testing.T) {
	p := model.Program{ID: 1, Name: "Google Summer of Code"}
	assert.Equal(t, EventUID(p), EventUID(p))
	assert.NotEqual(t, EventUID(p), EventUID(model.Program{ID: 2, Name: "Google Summer of Code"}))
}

func TestUpcoming(t *testing.T) {
	now := time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
	programs := []model.Program{
		{ID: 1, Name: "Past this year", Status: "Active", Timeline: "March - May"},
		{ID: 2, Name: "Later this year", Status: "Upcoming", Timeline: "October 1-31"},
		{ID: 3, Name: "Completed", Status: "Completed", Timeline: "July 1"},
		{ID: 4, Name: "Year round", Status: "Active", Timeline: "Year-round"},
		{ID: 5, Name: "Unknown", Status: "Active", Timeline: "TBD"},
	}

	got := Upcoming(programs, now, 365)
	require.Len(t, got, 3)

	assert.Equal(t, "Unknown", got[0].Program.Name)
	assert.WithinDuration(t, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC), got[0].Date, 0)

	assert.Equal(t, "Later this year", got[1].Program.Name)
	assert.WithinDuration(t, time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC), got[1].Date, 0)

	assert.Equal(t, "Past this year", got[2].Program.Name)
	assert.WithinDuration(t, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), got[2].Date, 0)
}

func TestUpcoming_TodayIsIncluded(t *testing.T) {
	now := time.Date(2025, time.October, 1, 18, 0, 0, 0, time.UTC)
	got := Upcoming([]model.Program{{Name: "H", Timeline: "October 1-31"}}, now, 7)
	require.Len(t, got, 1)
	assert.WithinDuration(t, time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC), got[0].Date, 0)
}

func TestUpcoming_SameDaySortedByName(t *testing.T) {
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	got := Upcoming([]model.Program{
		{Name: "Zeta", Timeline: "May 5"},
		{Name: "Alpha", Timeline: "May 5"},
	}, now, 200)
	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].Program.Name)
	assert.Equal(t, "Zeta", got[1].Program.Name)
}

func TestUpcoming_ShortHorizon(t *testing.T) {
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Empty(t, Upcoming([]model.Program{{Name: "Later", Timeline: "December 24"}}, now, 30))
}
