package recur

import "time"

// advance runs the time axis forward from cursor, applying hours, then
// minutes, then seconds in turn. At(v) sets the field outright (no carry);
// Every(v) adds v units, carrying into the higher fields and, for hours,
// across midnight into the next day. ok is false when every field is NA or
// the net result doesn't move past cursor — the caller then leaves the
// date engine to drive the advance on its own.
func (ts TimeSpec) advance(cursor time.Time) (time.Time, bool) {
	next := applyHourCycle(cursor, ts.Hours)
	next = applyMinuteCycle(next, ts.Minutes)
	next = applySecondCycle(next, ts.Seconds)
	if !next.After(cursor) {
		return cursor, false
	}
	return next, true
}

func applyHourCycle(t time.Time, c TimeCycle) time.Time {
	switch c.Kind {
	case TimeAt:
		return time.Date(t.Year(), t.Month(), t.Day(), c.Val, t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	case TimeEvery:
		return t.Add(time.Duration(c.Val) * time.Hour)
	default:
		return t
	}
}

func applyMinuteCycle(t time.Time, c TimeCycle) time.Time {
	switch c.Kind {
	case TimeAt:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), c.Val, t.Second(), t.Nanosecond(), t.Location())
	case TimeEvery:
		return t.Add(time.Duration(c.Val) * time.Minute)
	default:
		return t
	}
}

func applySecondCycle(t time.Time, c TimeCycle) time.Time {
	switch c.Kind {
	case TimeAt:
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), c.Val, t.Nanosecond(), t.Location())
	case TimeEvery:
		return t.Add(time.Duration(c.Val) * time.Second)
	default:
		return t
	}
}
