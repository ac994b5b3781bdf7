package calendar

import (
	"time"
)

// DateLayout is the wire format for calendar dates throughout the API
const DateLayout = "2006-01-02"

// FirstDoseDefaultTime is the wall-clock time assumed for the first dose of an
// interval medication that has a start date but no logged doses yet.
const FirstDoseDefaultTime = "08:00"

// CombineDate returns the instant of the given HH:MM wall clock time on the
// same calendar day as date, in loc. Assumes a validated HH:MM value; an
// unparsable one degrades to midnight rather than failing, since schedule
// validation happens at the API boundary.
func CombineDate(date time.Time, timeOfDay string, loc *time.Location) time.Time {
	tod, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		tod = time.Time{}
	}
	d := date.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), tod.Hour(), tod.Minute(), 0, 0, loc)
}

// NextIntervalDose computes the next due instant for an interval schedule from
// the most recent logged dose. The reminder scheduler and the day resolver
// both derive interval due times through this function so the two can never
// disagree.
func NextIntervalDose(lastTaken time.Time, intervalHours int) time.Time {
	return lastTaken.Add(time.Duration(intervalHours) * time.Hour)
}

// SameDay reports whether a and b fall on the same calendar day in loc
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// DayBounds returns the half-open [start, end) instants of the calendar day
// containing t in loc
func DayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	d := t.In(loc)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// WeekStart returns midnight of the Monday of the week containing t in loc.
// Weeks are always Monday through Sunday regardless of locale.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	start, _ := DayBounds(t, loc)
	offset := (int(start.Weekday()) + 6) % 7
	return start.AddDate(0, 0, -offset)
}
