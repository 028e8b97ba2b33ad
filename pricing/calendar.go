package pricing

import "time"

// holidays is a fixed month-day set. Movable holidays are approximated by one
// date (Thanksgiving is always 11-28).
var holidays = map[string]struct{}{
	"12-25": {},
	"01-01": {},
	"07-04": {},
	"11-28": {},
}

// IsWeekend reports whether t falls on Saturday or Sunday in t's own location.
func IsWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}

// IsHoliday reports whether t's month and day, in t's own location, is in the
// holiday calendar. The year is ignored.
func IsHoliday(t time.Time) bool {
	_, ok := holidays[t.Format("01-02")]
	return ok
}

// Calendar holds the day flags shared by every room type priced in one pass.
type Calendar struct {
	Weekend bool
	Holiday bool
}

func CalendarFor(t time.Time) Calendar {
	return Calendar{Weekend: IsWeekend(t), Holiday: IsHoliday(t)}
}
