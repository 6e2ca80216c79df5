package bizday

import "time"

// WeekendSkipper is the default Oracle: every day that is not a Saturday or
// Sunday is a business day. It carries no state and is safe for concurrent
// use.
type WeekendSkipper struct{}

// NewWeekendSkipper returns a WeekendSkipper oracle.
func NewWeekendSkipper() WeekendSkipper {
	return WeekendSkipper{}
}

// IsBizDay reports whether dtm falls on a weekday.
func (WeekendSkipper) IsBizDay(dtm time.Time) (bool, error) {
	wd := dtm.Weekday()
	return wd != time.Saturday && wd != time.Sunday, nil
}

// Add steps forward one day at a time until num business days have been
// crossed.
func (w WeekendSkipper) Add(dtm time.Time, num uint) (time.Time, error) {
	current := dtm
	var added uint
	for added < num {
		current = current.AddDate(0, 0, 1)
		if ok, _ := w.IsBizDay(current); ok {
			added++
		}
	}
	return current, nil
}

// Sub steps backward one day at a time until num business days have been
// crossed.
func (w WeekendSkipper) Sub(dtm time.Time, num uint) (time.Time, error) {
	current := dtm
	var subtracted uint
	for subtracted < num {
		current = current.AddDate(0, 0, -1)
		if ok, _ := w.IsBizDay(current); ok {
			subtracted++
		}
	}
	return current, nil
}

// Find resolves dtm to a business day in the requested Direction. If dtm is
// already a business day it is returned unchanged regardless of direction.
func (w WeekendSkipper) Find(dtm time.Time, direction Direction) (time.Time, error) {
	switch direction {
	case Prev:
		if ok, _ := w.IsBizDay(dtm); ok {
			return dtm, nil
		}
		return w.Sub(dtm, 1)
	case Next:
		if ok, _ := w.IsBizDay(dtm); ok {
			return dtm, nil
		}
		return w.Add(dtm, 1)
	default:
		return w.nearestBizDay(dtm)
	}
}

// nearestBizDay implements the tie-break rule: on the 1st of the month,
// search forward; on the last day of the month, search backward; otherwise
// a Saturday moves back one day and any other non-business day moves
// forward one day.
func (w WeekendSkipper) nearestBizDay(dtm time.Time) (time.Time, error) {
	if ok, _ := w.IsBizDay(dtm); ok {
		return dtm, nil
	}

	current := dtm
	day := 24 * time.Hour

	if dtm.Day() == 1 {
		for {
			wd := current.Weekday()
			if wd != time.Saturday && wd != time.Sunday {
				break
			}
			current = current.Add(day)
		}
		return current, nil
	}

	if dtm.Day() == lastDayOfMonth(dtm).Day() {
		for {
			wd := current.Weekday()
			if wd != time.Saturday && wd != time.Sunday {
				break
			}
			current = current.Add(-day)
		}
		return current, nil
	}

	if dtm.Weekday() == time.Saturday {
		return current.Add(-day), nil
	}
	return current.Add(day), nil
}

// lastDayOfMonth returns the final calendar day of t's month, in t's
// location, with t's time-of-day preserved.
func lastDayOfMonth(t time.Time) time.Time {
	firstOfNextMonth := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()).AddDate(0, 1, 0)
	return firstOfNextMonth.AddDate(0, 0, -1)
}
