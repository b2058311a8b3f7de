package ics

import (
	"strconv"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"compass/internal/deadline"
	"compass/internal/gcal"
	appLog "compass/internal/log"
	"compass/internal/model"
)

// ProductID identifies feeds produced by compass.
const ProductID = "-//OpenSource Compass//Program Deadlines//EN"

// uidNamespace scopes the name-based UUIDs used as VEVENT UIDs, so a
// program keeps the same UID across exports and calendar apps update the
// event instead of duplicating it.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://opensource-compass/programs"))

// ExportOptions controls feed generation.
type ExportOptions struct {
	// Name is the calendar display name (X-WR-CALNAME).
	Name string
	// Location is used to decide "today"; defaults to now's location.
	Location *time.Location
}

// EventUID returns the stable VEVENT UID for a program.
func EventUID(p model.Program) string {
	return uuid.NewSHA1(uidNamespace, []byte(strconv.Itoa(p.ID)+"/"+p.Name)).String() + "@compass"
}

// Export renders an iCalendar feed with one all-day, yearly-repeating
// deadline event per program that passes gcal.ShouldOfferCalendar. Event
// text matches the Google Calendar link for the same program.
func Export(programs []model.Program, now time.Time, opts ExportOptions) []byte {
	loc := opts.Location
	if loc == nil {
		loc = now.Location()
	}
	now = now.In(loc)

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(ProductID)
	if opts.Name != "" {
		cal.SetName(opts.Name)
		cal.SetXWRCalName(opts.Name)
	}

	exported := 0
	for _, p := range programs {
		if !gcal.ShouldOfferCalendar(p) {
			continue
		}

		d := deadline.Extract(p.Timeline, now)
		start := d.Time(loc)

		ev := cal.AddEvent(EventUID(p))
		ev.SetDtStampTime(now.UTC())
		ev.SetAllDayStartAt(start)
		ev.SetAllDayEndAt(start.AddDate(0, 0, 1))
		ev.SetSummary(gcal.Title(p))
		ev.SetDescription(gcal.Details(p))
		ev.SetLocation("Online")
		ev.SetURL(gcal.BuildLink(p, now))

		if r, err := yearlyRule(d, loc); err == nil {
			ev.AddProperty(ical.ComponentPropertyRrule, r.OrigOptions.RRuleString())
		} else {
			appLog.Error("deadline rule failed; exporting single event", err, "program", p.Name)
		}
		exported++
	}

	appLog.Debug("ics export completed", "programs", len(programs), "events", exported)
	return []byte(cal.Serialize())
}
