package recur

import (
	"sort"
	"time"
)

// CycleKind discriminates the Cycle tagged union. Cycle never uses a
// null-sentinel integer to mean "unset" — NA is its own explicit variant.
type CycleKind int

const (
	CycleNA CycleKind = iota
	CycleIn
	CycleEvery
	CycleValues
)

// Cycle describes how the year or month axis selects a value: free (NA), a
// literal (In), a step from the cursor (Every), or a non-empty ordered set
// of literals (Values).
type Cycle struct {
	Kind   CycleKind
	Lit    int
	Step   int
	Values []int // always kept sorted ascending, de-duplicated
}

// NACycle leaves the axis unconstrained.
func NACycle() Cycle { return Cycle{Kind: CycleNA} }

// InCycle pins the axis to a literal value.
func InCycle(v int) Cycle { return Cycle{Kind: CycleIn, Lit: v} }

// EveryCycle advances the axis by n from the cursor's current value.
func EveryCycle(n int) Cycle { return Cycle{Kind: CycleEvery, Step: n} }

// ValuesCycle pins the axis to any element of vals.
func ValuesCycle(vals ...int) Cycle {
	return Cycle{Kind: CycleValues, Values: sortedUniqueInts(vals)}
}

// NextAbove returns the least element of a Values cycle strictly greater
// than x, and whether one was found.
func (c Cycle) NextAbove(x int) (int, bool) {
	i := sort.SearchInts(c.Values, x+1)
	if i >= len(c.Values) {
		return 0, false
	}
	return c.Values[i], true
}

// Min returns the smallest element of a Values cycle.
func (c Cycle) Min() int { return c.Values[0] }

// Contains reports whether x is an admissible value under the cycle,
// irrespective of cursor position (used to test whether a candidate month
// or year already satisfies a fixed or set constraint).
func (c Cycle) Contains(x int) bool {
	switch c.Kind {
	case CycleNA, CycleEvery:
		return true
	case CycleIn:
		return x == c.Lit
	case CycleValues:
		i := sort.SearchInts(c.Values, x)
		return i < len(c.Values) && c.Values[i] == x
	}
	return false
}

func sortedUniqueInts(vals []int) []int {
	cp := append([]int(nil), vals...)
	sort.Ints(cp)
	out := cp[:0]
	for i, v := range cp {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// DayOverflow controls what happens when an On(day, _) target exceeds the
// number of days in the candidate month.
type DayOverflow int

const (
	// OverflowClamp uses the last valid day of the month ("L" token).
	OverflowClamp DayOverflow = iota
	// OverflowNextValid rolls to the 1st of the following month ("N").
	OverflowNextValid
	// OverflowShift rolls the excess days into the following month ("O").
	OverflowShift
)

// EveryDayKind distinguishes the unit an Every(n) day-cycle counts in.
type EveryDayKind int

const (
	EveryDayRegular EveryDayKind = iota // n calendar days
	EveryDayBizDay                      // n business days, via the configured Oracle
	EveryDayWeekday                     // n weekdays, via the built-in weekend skipper
)

// WeekdayPosKind selects which occurrence of a weekday within a month an
// OnWeekDay cycle targets.
type WeekdayPosKind int

const (
	WeekdayNth     WeekdayPosKind = iota // Nth occurrence from the start of the month
	WeekdayLastNth                       // Nth occurrence counting back from the end of the month
)

// DayCycleKind discriminates the DayCycle tagged union.
type DayCycleKind int

const (
	DayCycleNA DayCycleKind = iota
	DayCycleOn
	DayCycleEvery
	DayCycleOnLastDay
	DayCycleOnDays
	DayCycleOnWeekDay
	DayCycleOnWeekDays
)

// DayCycle describes the day-of-month axis. It is richer than Cycle because
// the day axis additionally supports overflow policy, business/weekday
// stepping, and weekday-position selection.
type DayCycle struct {
	Kind DayCycleKind

	Day      int         // On
	Overflow DayOverflow // On

	EveryN    int          // Every
	EveryKind EveryDayKind // Every

	Days []int // OnDays, sorted ascending

	Weekday  time.Weekday   // OnWeekDay
	Pos      int            // OnWeekDay: k in Nth(k)/LastNth(k)
	PosKind  WeekdayPosKind // OnWeekDay
	Weekdays []time.Weekday // OnWeekDays, sorted by canonical Mon..Sun order
}

func NADayCycle() DayCycle { return DayCycle{Kind: DayCycleNA} }

func OnDayCycle(day int, overflow DayOverflow) DayCycle {
	return DayCycle{Kind: DayCycleOn, Day: day, Overflow: overflow}
}

func EveryDayCycle(n int, kind EveryDayKind) DayCycle {
	return DayCycle{Kind: DayCycleEvery, EveryN: n, EveryKind: kind}
}

func OnLastDayCycle() DayCycle { return DayCycle{Kind: DayCycleOnLastDay} }

func OnDaysCycle(days ...int) DayCycle {
	return DayCycle{Kind: DayCycleOnDays, Days: sortedUniqueInts(days)}
}

func OnWeekDayCycle(wd time.Weekday, posKind WeekdayPosKind, pos int) DayCycle {
	return DayCycle{Kind: DayCycleOnWeekDay, Weekday: wd, Pos: pos, PosKind: posKind}
}

func OnWeekDaysCycle(wds ...time.Weekday) DayCycle {
	return DayCycle{Kind: DayCycleOnWeekDays, Weekdays: sortedUniqueWeekdays(wds)}
}

// weekdayRank orders weekdays Monday-first, matching the grammar's MON..SUN
// listing order rather than time.Weekday's Sunday-first zero value.
func weekdayRank(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func sortedUniqueWeekdays(wds []time.Weekday) []time.Weekday {
	cp := append([]time.Weekday(nil), wds...)
	sort.Slice(cp, func(i, j int) bool { return weekdayRank(cp[i]) < weekdayRank(cp[j]) })
	out := cp[:0]
	for i, v := range cp {
		if i == 0 || v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// containsWeekday reports whether wd is a member of an OnWeekDays set.
func containsWeekday(set []time.Weekday, wd time.Weekday) bool {
	for _, w := range set {
		if w == wd {
			return true
		}
	}
	return false
}

// nextWeekdayAbove returns the least weekday in set strictly after wd in
// Monday-first rank order, wrapping to the set's first element (and
// reporting wrap=true) if wd is its last member.
func nextWeekdayAbove(set []time.Weekday, wd time.Weekday) (next time.Weekday, wrap bool) {
	r := weekdayRank(wd)
	for _, w := range set {
		if weekdayRank(w) > r {
			return w, false
		}
	}
	return set[0], true
}
