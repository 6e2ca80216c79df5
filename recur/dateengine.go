package recur

import (
	"sort"
	"time"

	"github.com/jpfluger/recurschedule/bizday"
)

// overflowTag records why a date-axis candidate was tagged Adjusted*: never
// a business-day adjustment (that is the Adjuster's job), only a day
// On(_, overflow) rule pushing a target into the following month.
type overflowTag int

const (
	tagNone overflowTag = iota
	tagLater
)

// dateEngine advances the date axis of a Spec. It holds the Oracle used for
// EveryDayBizDay day-cycles; EveryDayWeekday always uses the built-in
// weekend skipper regardless of what Oracle the caller configured, since
// "weekday" and "business day" are deliberately distinct axes in the
// grammar (see bizday.Oracle).
type dateEngine struct {
	oracle bizday.Oracle
}

func newDateEngine(oracle bizday.Oracle) *dateEngine {
	if oracle == nil {
		oracle = bizday.NewWeekendSkipper()
	}
	return &dateEngine{oracle: oracle}
}

// advance computes the next date-axis candidate strictly after cursor,
// preserving cursor's time-of-day. It never touches the time axis; the
// composite iterator runs the time engine separately. It returns both the
// actual (calendar-true) target and the observed (overflow-resolved)
// target; the two differ only for DayCycleOn with a day that overflows its
// month (see applyOverflowDay) — every other day-cycle kind returns the
// same value for both.
func (e *dateEngine) advance(spec Spec, cursor time.Time) (actual, observed time.Time, tag overflowTag, err error) {
	switch spec.Days.Kind {
	case DayCycleNA:
		if spec.Years.Kind == CycleNA && spec.Months.Kind == CycleNA {
			return cursor, cursor, tagNone, nil
		}
		t, tg, stepErr := dateStepPlain(spec, cursor)
		return t, t, tg, stepErr
	case DayCycleOn:
		return dateStepOn(spec, cursor)
	case DayCycleOnLastDay:
		t, tg, stepErr := dateStepOnLastDay(spec, cursor)
		return t, t, tg, stepErr
	case DayCycleEvery:
		t, tg, stepErr := e.dateStepEvery(spec, cursor)
		return t, t, tg, stepErr
	case DayCycleOnDays:
		t, tg, stepErr := dateStepOnDays(spec, cursor)
		return t, t, tg, stepErr
	case DayCycleOnWeekDay:
		t, tg, stepErr := dateStepOnWeekDay(spec, cursor)
		return t, t, tg, stepErr
	case DayCycleOnWeekDays:
		t, tg, stepErr := dateStepOnWeekDays(spec, cursor)
		return t, t, tg, stepErr
	}
	return time.Time{}, time.Time{}, tagNone, NewInvalidSpecError("unrecognized day cycle kind")
}

// withDate rebuilds t at (y, m, d) keeping the clock and location.
func withDate(t time.Time, y, m, d int) time.Time {
	h, mi, s := t.Clock()
	return time.Date(y, time.Month(m), d, h, mi, s, t.Nanosecond(), t.Location())
}

func daysInMonth(y, m int) int {
	return time.Date(y, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// advanceAxis returns the next admissible value for a single Cycle axis
// (year or month) strictly after cur, or carry=false if the axis has no
// further value within its own outer cycle (In is a one-shot literal,
// Values may be exhausted) and the caller must roll the outer axis.
func advanceAxis(c Cycle, cur int) (int, bool) {
	switch c.Kind {
	case CycleNA:
		return cur + 1, true
	case CycleIn:
		if c.Lit > cur {
			return c.Lit, true
		}
		return 0, false
	case CycleEvery:
		return cur + c.Step, true
	case CycleValues:
		if v, ok := c.NextAbove(cur); ok {
			return v, true
		}
		return 0, false
	}
	return cur + 1, true
}

// resetAxis returns the value an axis takes on immediately after its outer
// axis has rolled: In resets to its literal, Values resets to its minimum,
// NA/Every reset to defaultVal (the caller passes 1 for months).
func resetAxis(c Cycle, defaultVal int) int {
	switch c.Kind {
	case CycleIn:
		return c.Lit
	case CycleValues:
		return c.Min()
	default:
		return defaultVal
	}
}

// monthAfter returns the next (year, month) pair admissible under years and
// months. If sameOK is true, (y, m) itself is considered (the day axis
// alone decides whether to roll); otherwise the pair is advanced at least
// once. ok is false once years has no further admissible value at all.
func monthAfter(years, months Cycle, y, m int, sameOK bool) (int, int, bool) {
	if sameOK && years.Contains(y) && months.Contains(m) {
		return y, m, true
	}
	if nm, ok := advanceAxis(months, m); ok {
		ny := y
		if nm > 12 {
			ny += (nm - 1) / 12
			nm = (nm-1)%12 + 1
		}
		if years.Contains(ny) {
			return ny, nm, true
		}
	}
	ny, ok := advanceAxis(years, y)
	if !ok {
		return 0, 0, false
	}
	return ny, resetAxis(months, 1), true
}

// applyOverflowDay resolves an On(day, overflow) target within (y, m).
// clamp is the days-in-month-clamped calendar date — the true target the
// spec's day axis names within (y, m), and what the cursor must advance
// from. resolved is where overflow maps that target when day exceeds the
// month's length: NextValid/Shift roll it into the following month, Clamp
// leaves resolved equal to clamp. tag is tagLater whenever resolved and
// clamp differ.
func applyOverflowDay(day, y, m int, overflow DayOverflow) (clampY, clampM, clampD, resolvedY, resolvedM, resolvedD int, tag overflowTag) {
	dim := daysInMonth(y, m)
	if day <= dim {
		return y, m, day, y, m, day, tagNone
	}
	clampY, clampM, clampD = y, m, dim
	ny, nm := y, m+1
	if nm > 12 {
		nm = 1
		ny++
	}
	switch overflow {
	case OverflowNextValid:
		return clampY, clampM, clampD, ny, nm, 1, tagLater
	case OverflowShift:
		return clampY, clampM, clampD, ny, nm, day - dim, tagLater
	default: // OverflowClamp
		return clampY, clampM, clampD, y, m, dim, tagNone
	}
}

const maxDateScan = 4000

func dateStepPlain(spec Spec, cursor time.Time) (time.Time, overflowTag, error) {
	y, m, d := cursor.Year(), int(cursor.Month()), cursor.Day()
	ny, nm, ok := monthAfter(spec.Years, spec.Months, y, m, false)
	if !ok {
		return time.Time{}, tagNone, NewNextDateCalcError("no further year/month satisfies the spec")
	}
	dim := daysInMonth(ny, nm)
	nd := d
	if nd > dim {
		nd = dim
	}
	return withDate(cursor, ny, nm, nd), tagNone, nil
}

// dateStepOn returns the actual (clamped) and observed (overflow-resolved)
// calendar targets separately, since On(day, NextValid|Shift) can resolve
// to a different month than the day axis itself names (see
// applyOverflowDay).
func dateStepOn(spec Spec, cursor time.Time) (actual, observed time.Time, tag overflowTag, err error) {
	y, m := cursor.Year(), int(cursor.Month())
	sameOK := true
	for i := 0; i < maxDateScan; i++ {
		ny, nm, ok := monthAfter(spec.Years, spec.Months, y, m, sameOK)
		if !ok {
			return time.Time{}, time.Time{}, tagNone, NewNextDateCalcError("no further year/month satisfies the spec")
		}
		cy, cm, cd, ry, rm, rd, t := applyOverflowDay(spec.Days.Day, ny, nm, spec.Days.Overflow)
		clamp := withDate(cursor, cy, cm, cd)
		resolved := withDate(cursor, ry, rm, rd)
		if clamp.After(cursor) {
			return clamp, resolved, t, nil
		}
		y, m = ny, nm
		sameOK = false
	}
	return time.Time{}, time.Time{}, tagNone, NewNextDateCalcError("date search did not converge")
}

func dateStepOnLastDay(spec Spec, cursor time.Time) (time.Time, overflowTag, error) {
	y, m := cursor.Year(), int(cursor.Month())
	sameOK := true
	for i := 0; i < maxDateScan; i++ {
		ny, nm, ok := monthAfter(spec.Years, spec.Months, y, m, sameOK)
		if !ok {
			return time.Time{}, tagNone, NewNextDateCalcError("no further year/month satisfies the spec")
		}
		cand := withDate(cursor, ny, nm, daysInMonth(ny, nm))
		if cand.After(cursor) {
			return cand, tagNone, nil
		}
		y, m = ny, nm
		sameOK = false
	}
	return time.Time{}, tagNone, NewNextDateCalcError("date search did not converge")
}

func (e *dateEngine) stepDays(cursor time.Time, n int, kind EveryDayKind) (time.Time, error) {
	switch kind {
	case EveryDayRegular:
		return cursor.AddDate(0, 0, n), nil
	case EveryDayWeekday:
		return bizday.NewWeekendSkipper().Add(cursor, uint(n))
	case EveryDayBizDay:
		return e.oracle.Add(cursor, uint(n))
	}
	return time.Time{}, NewInvalidSpecError("unrecognized every-day kind")
}

// dateStepEvery steps the day axis by a fixed count from cursor. An
// Every(n) year or month axis is stepped too: n is added to that axis of
// the day-stepped date, its day clamped to the target month's length
// (Dec 1 under "YY-1M-7D" goes to Jan 8). When months/years constrain the
// result and the step lands outside the admissible (year, month), the
// day-of-month from the step is carried over into the next admissible
// month (clamped).
func (e *dateEngine) dateStepEvery(spec Spec, cursor time.Time) (time.Time, overflowTag, error) {
	raw, err := e.stepDays(cursor, spec.Days.EveryN, spec.Days.EveryKind)
	if err != nil {
		return time.Time{}, tagNone, NewNextDateCalcError("every-day step failed").wrap(err)
	}
	if spec.Years.Kind == CycleNA && spec.Months.Kind == CycleNA {
		return raw, tagNone, nil
	}
	if spec.Years.Kind == CycleEvery || spec.Months.Kind == CycleEvery {
		y, m := raw.Year(), int(raw.Month())
		if spec.Years.Kind == CycleEvery {
			y += spec.Years.Step
		}
		if spec.Months.Kind == CycleEvery {
			m += spec.Months.Step
			y += (m - 1) / 12
			m = (m-1)%12 + 1
		}
		raw = withDate(raw, y, m, min(raw.Day(), daysInMonth(y, m)))
	}
	if spec.Years.Contains(raw.Year()) && spec.Months.Contains(int(raw.Month())) {
		return raw, tagNone, nil
	}
	ny, nm, ok := monthAfter(spec.Years, spec.Months, cursor.Year(), int(cursor.Month()), false)
	if !ok {
		return time.Time{}, tagNone, NewNextDateCalcError("no further year/month satisfies the spec")
	}
	dim := daysInMonth(ny, nm)
	nd := raw.Day()
	if nd > dim {
		nd = dim
	}
	return withDate(raw, ny, nm, nd), tagNone, nil
}

// yearAt returns the index-th (0-based) admissible year at or after
// minYear, used by the OnDays odometer search where years may be NA, a
// literal In, or a Values set (Every is rejected for this day-cycle kind
// at parse time).
func yearAt(years Cycle, minYear, index int) (int, bool) {
	switch years.Kind {
	case CycleIn:
		if index > 0 || years.Lit < minYear {
			return 0, false
		}
		return years.Lit, true
	case CycleValues:
		start := sort.SearchInts(years.Values, minYear)
		idx := start + index
		if idx >= len(years.Values) {
			return 0, false
		}
		return years.Values[idx], true
	default: // NA
		return minYear + index, true
	}
}

// monthsForYear returns the ordered set of months to try within one
// candidate year, per the same axis rules as yearAt.
func monthsForYear(months Cycle) []int {
	switch months.Kind {
	case CycleIn:
		return []int{months.Lit}
	case CycleValues:
		return months.Values
	default: // NA
		return []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	}
}

// dateStepOnDays performs the sorted-set "odometer" search for OnDays: walk
// candidate years, then admissible months within each year, then the
// sorted day-of-month set, returning the first candidate strictly after
// cursor.
func dateStepOnDays(spec Spec, cursor time.Time) (time.Time, overflowTag, error) {
	days := spec.Days.Days
	cursorYear, cursorMonth := cursor.Year(), int(cursor.Month())
	for yi := 0; yi < maxDateScan; yi++ {
		y, ok := yearAt(spec.Years, cursorYear, yi)
		if !ok {
			break
		}
		for _, m := range monthsForYear(spec.Months) {
			if y == cursorYear && m < cursorMonth {
				continue
			}
			dim := daysInMonth(y, m)
			for _, d := range days {
				if d > dim {
					continue
				}
				cand := withDate(cursor, y, m, d)
				if cand.After(cursor) {
					return cand, tagNone, nil
				}
			}
		}
	}
	return time.Time{}, tagNone, NewNextDateCalcError("no further date satisfies the spec")
}

// nthWeekday returns the day-of-month of the n-th (1-based) occurrence of
// wd within (y, m), or ok=false if the month has fewer than n occurrences.
func nthWeekday(y, m int, wd time.Weekday, n int) (int, bool) {
	first := time.Date(y, time.Month(m), 1, 0, 0, 0, 0, time.UTC)
	offset := (int(wd) - int(first.Weekday()) + 7) % 7
	day := 1 + offset + (n-1)*7
	if day > daysInMonth(y, m) {
		return 0, false
	}
	return day, true
}

// lastNthWeekday returns the day-of-month of the n-th occurrence of wd
// counting backward from the end of (y, m).
func lastNthWeekday(y, m int, wd time.Weekday, n int) (int, bool) {
	dim := daysInMonth(y, m)
	last := time.Date(y, time.Month(m), dim, 0, 0, 0, 0, time.UTC)
	offset := (int(last.Weekday()) - int(wd) + 7) % 7
	day := dim - offset - (n-1)*7
	if day < 1 {
		return 0, false
	}
	return day, true
}

func dateStepOnWeekDay(spec Spec, cursor time.Time) (time.Time, overflowTag, error) {
	dc := spec.Days
	y, m := cursor.Year(), int(cursor.Month())
	sameOK := true
	for i := 0; i < maxDateScan; i++ {
		ny, nm, ok := monthAfter(spec.Years, spec.Months, y, m, sameOK)
		if !ok {
			return time.Time{}, tagNone, NewNextDateCalcError("no further year/month satisfies the spec")
		}
		var day int
		var found bool
		if dc.PosKind == WeekdayLastNth {
			day, found = lastNthWeekday(ny, nm, dc.Weekday, dc.Pos)
		} else {
			day, found = nthWeekday(ny, nm, dc.Weekday, dc.Pos)
		}
		if found {
			cand := withDate(cursor, ny, nm, day)
			if cand.After(cursor) {
				return cand, tagNone, nil
			}
		}
		y, m = ny, nm
		sameOK = false
	}
	return time.Time{}, tagNone, NewNextDateCalcError("date search did not converge")
}

// dateStepOnWeekDays scans day by day, the only approach that composes
// cleanly with an arbitrary weekday set plus a month/year filter: a
// candidate day is accepted the moment its weekday is in the set and its
// (year, month) is admissible.
func dateStepOnWeekDays(spec Spec, cursor time.Time) (time.Time, overflowTag, error) {
	set := spec.Days.Weekdays
	cand := cursor
	for i := 0; i < maxDateScan*8; i++ {
		cand = cand.AddDate(0, 0, 1)
		if !spec.Years.Contains(cand.Year()) || !spec.Months.Contains(int(cand.Month())) {
			continue
		}
		if containsWeekday(set, cand.Weekday()) {
			return cand, tagNone, nil
		}
	}
	return time.Time{}, tagNone, NewNextDateCalcError("date search did not converge")
}
