package gcal

import (
	"strings"

	"compass/internal/deadline"
	"compass/internal/model"
)

// HasDateInfo reports whether a timeline names a month (full or
// abbreviated, any case).
func HasDateInfo(timeline string) bool {
	return deadline.HasMonthToken(timeline)
}

// ShouldOfferCalendar decides whether a program card gets an
// "Add to Calendar" action.
//
// Completed programs never do. Year-round programs without any month
// token don't either. Anything else does, including timelines with no
// date at all ("TBD"), which fall back to Extract's next-month guess.
func ShouldOfferCalendar(p model.Program) bool {
	if p.Completed() {
		return false
	}
	if !HasDateInfo(p.Timeline) && strings.Contains(strings.ToLower(p.Timeline), "year-round") {
		return false
	}
	return true
}

// ShouldOfferInDetail is the stricter check used by the program detail
// view: the timeline must actually name a month.
func ShouldOfferInDetail(p model.Program) bool {
	return !p.Completed() && HasDateInfo(p.Timeline)
}
