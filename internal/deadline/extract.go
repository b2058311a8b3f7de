package deadline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// monthNames are matched case-sensitively, in calendar order.
var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// dayPattern captures the first 1-2 digit run, optionally followed by a
// range such as "1-31" or "1–31". Only the first number is used.
var dayPattern = regexp.MustCompile(`(\d{1,2})(?:\s*[-–]\s*\d{1,2})?`)

// monthToken matches a full or three-letter month name as a whole word.
var monthToken = regexp.MustCompile(`(?i)\b(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec|January|February|March|April|May|June|July|August|September|October|November|December)\b`)

// Date is a best-guess calendar date inferred from timeline text.
//
// Day is not validated against the month length; "February 30" yields
// Day 30.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Compact renders the date as YYYYMMDD.
func (d Date) Compact() string {
	return fmt.Sprintf("%04d%02d%02d", d.Year, d.Month, d.Day)
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Time returns midnight of d in loc. Out-of-range days are normalized by
// time.Date (e.g. February 30 becomes early March).
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

// FromTime returns the calendar date of t in t's location.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// Extract infers a deadline date from free-form timeline text.
//
//   - The first month name found (checked January..December, not by
//     position in the text) sets the month. The day is then the first
//     1-2 digit number anywhere in the text, or 1 if there is none.
//   - With no month name, the deadline is the first of the month after
//     ref's month, rolling December over into January of the next year.
//   - The year is always ref's year except for that rollover.
//
// Extract never fails; any string, including "", produces a valid month.
func Extract(timeline string, ref time.Time) Date {
	d := Date{Year: ref.Year(), Day: 1}

	for i, name := range monthNames {
		if !strings.Contains(timeline, name) {
			continue
		}
		d.Month = i + 1
		if m := dayPattern.FindStringSubmatch(timeline); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				d.Day = n
			}
		}
		return d
	}

	d.Month = int(ref.Month()) + 1
	if d.Month > 12 {
		d.Month = 1
		d.Year++
	}
	return d
}

// HasMonthToken reports whether timeline mentions a month by full name or
// three-letter abbreviation, case-insensitively, as a whole word.
func HasMonthToken(timeline string) bool {
	return monthToken.MatchString(timeline)
}
