package gcal

import (
	"net/url"
	"strings"
	"time"

	"compass/internal/deadline"
	"compass/internal/model"
)

// RenderURL is the Google Calendar "create event" endpoint.
const RenderURL = "https://calendar.google.com/calendar/render"

// Event window suffixes for an all-day placeholder event.
const (
	dayStart = "T000000"
	dayEnd   = "T235959"
)

// EventWindow returns the start/end timestamps (YYYYMMDDTHHMMSS) of a
// single-day event on d.
func EventWindow(d deadline.Date) (start, end string) {
	day := d.Compact()
	return day + dayStart, day + dayEnd
}

// Title is the event title used for a program's deadline reminder.
func Title(p model.Program) string {
	return "⏰ Deadline: " + p.Name
}

// Details is the multi-line event body used for a program's deadline reminder.
func Details(p model.Program) string {
	var b strings.Builder
	b.WriteString("Application deadline for " + p.Name + ".\n\n")
	b.WriteString(p.Description + "\n\n")
	b.WriteString("Timeline: " + p.Timeline + "\n")
	b.WriteString("Stipend: " + p.Stipend + "\n")
	b.WriteString("Difficulty: " + p.Difficulty + "\n\n")
	b.WriteString("Set reminder via OpenSource Compass")
	return b.String()
}

// BuildLink returns a Google Calendar render URL that pre-fills an all-day
// deadline event for p. The date is inferred from p.Timeline relative to now.
//
// Query keys are always emitted in the same order, so identical inputs give
// byte-identical URLs.
func BuildLink(p model.Program, now time.Time) string {
	return BuildLinkFor(p, deadline.Extract(p.Timeline, now))
}

// BuildLinkFor is BuildLink with the deadline date already decided, e.g.
// for a projected occurrence in a later year.
func BuildLinkFor(p model.Program, d deadline.Date) string {
	start, end := EventWindow(d)

	params := []struct{ key, value string }{
		{"action", "TEMPLATE"},
		{"text", Title(p)},
		{"dates", start + "/" + end},
		{"details", Details(p)},
		{"location", "Online"},
		{"sf", "true"},
		{"output", "xml"},
	}

	var b strings.Builder
	b.WriteString(RenderURL)
	b.WriteByte('?')
	for i, kv := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(kv.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(kv.value))
	}
	return b.String()
}
