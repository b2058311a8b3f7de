package ics

import (
	"sort"
	"time"

	"github.com/teambition/rrule-go"

	"compass/internal/deadline"
	"compass/internal/gcal"
	appLog "compass/internal/log"
	"compass/internal/model"
)

// yearlyRule builds the recurrence used for a program's deadline: the
// extracted date, repeating every year. Seasonal programs (GSoC,
// Hacktoberfest, ...) reopen on roughly the same date each year.
func yearlyRule(d deadline.Date, loc *time.Location) (*rrule.RRule, error) {
	return rrule.NewRRule(rrule.ROption{
		Freq:    rrule.YEARLY,
		Dtstart: d.Time(loc),
	})
}

// Upcoming projects the deadlines of all calendar-eligible programs into
// the window [today, today+horizonDays] (in now's location), sorted by
// date and then program name.
//
// Programs hidden by gcal.ShouldOfferCalendar are skipped.
func Upcoming(programs []model.Program, now time.Time, horizonDays int) []model.Deadline {
	loc := now.Location()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	until := today.AddDate(0, 0, horizonDays)

	out := make([]model.Deadline, 0, len(programs))
	for _, p := range programs {
		if !gcal.ShouldOfferCalendar(p) {
			continue
		}

		r, err := yearlyRule(deadline.Extract(p.Timeline, now), loc)
		if err != nil {
			appLog.Error("deadline rule failed", err, "program", p.Name, "timeline", p.Timeline)
			continue
		}

		for _, t := range r.Between(today, until, true) {
			out = append(out, model.Deadline{Program: p, Date: t})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Program.Name < out[j].Program.Name
	})
	return out
}
