package recur

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jpfluger/recurschedule/bizday"
)

// AdjustKind discriminates the business-day adjustment a Spec carries.
type AdjustKind int

const (
	AdjustNA AdjustKind = iota
	AdjustPrevN
	AdjustNextN
	AdjustWeekday
	AdjustBizDay
)

// BizDayAdjustment is the parsed form of a spec's trailing `:<biz_adj>`
// field. A nil *BizDayAdjustment on a Spec and one with Kind AdjustNA are
// observably identical — both leave candidates unadjusted — the parser
// only ever produces the explicit AdjustNA form when the caller wrote
// `:NA`, never as a stand-in for "absent".
type BizDayAdjustment struct {
	Kind      AdjustKind
	N         int
	Direction bizday.Direction
}

// TimeCycleKind discriminates an hour/minute/second axis: free, pinned to a
// literal, or stepped from the cursor.
type TimeCycleKind int

const (
	TimeNA TimeCycleKind = iota
	TimeAt
	TimeEvery
)

// TimeCycle is the time-axis analogue of Cycle; it has no Values variant
// since the grammar doesn't offer set literals for hour/minute/second.
type TimeCycle struct {
	Kind TimeCycleKind
	Val  int
}

// TimeSpec holds the three independent time axes.
type TimeSpec struct {
	Hours   TimeCycle
	Minutes TimeCycle
	Seconds TimeCycle
}

// Spec is the immutable, parsed form of a recurrence-spec string. It is
// created once by Parse and never mutated afterward; callers may share one
// Spec across many iterators.
type Spec struct {
	Years      Cycle
	Months     Cycle
	Days       DayCycle
	Adjustment *BizDayAdjustment
	Time       TimeSpec

	raw string
}

// String returns the spec string Parse produced this Spec from.
func (s Spec) String() string { return s.raw }

var weekdayNames = map[string]time.Weekday{
	"MON": time.Monday,
	"TUE": time.Tuesday,
	"WED": time.Wednesday,
	"THU": time.Thursday,
	"FRI": time.Friday,
	"SAT": time.Saturday,
	"SUN": time.Sunday,
}

// Parse decodes a recurrence-spec string into a Spec: year, month and day
// fields separated by '-' or ':', an optional business-day adjustment
// field, and an optional "T" followed by an HH:MM:SS time part. Parse is
// total on the accepted grammar and rejects everything else with an
// ErrParse-kind *Error.
func Parse(spec string) (Spec, error) {
	raw := spec
	// The time part starts at the last "T" whose remainder parses as a time
	// spec, so day tokens that contain a "T" (TUE, THU, SAT) stay in the
	// date part.
	datePart, timePart, hasTime := spec, "", false
	for i := strings.LastIndex(spec, "T"); i >= 0; i = strings.LastIndex(spec[:i], "T") {
		if _, err := parseTimeFields(spec[i+1:]); err == nil {
			datePart, timePart, hasTime = spec[:i], spec[i+1:], true
			break
		}
	}

	years, months, days, adj, err := parseDateFields(datePart)
	if err != nil {
		return Spec{}, err
	}

	var ts TimeSpec
	if hasTime {
		ts, err = parseTimeFields(timePart)
		if err != nil {
			return Spec{}, err
		}
	} else {
		ts = TimeSpec{Hours: TimeCycle{Kind: TimeNA}, Minutes: TimeCycle{Kind: TimeNA}, Seconds: TimeCycle{Kind: TimeNA}}
	}

	s := Spec{Years: years, Months: months, Days: days, Adjustment: adj, Time: ts, raw: raw}
	if err := validateCombination(s); err != nil {
		return Spec{}, err
	}
	return s, nil
}

// MustParse is a test/demo convenience that panics on a malformed spec.
func MustParse(spec string) Spec {
	s, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return s
}

func parseDateFields(datePart string) (Cycle, Cycle, DayCycle, *BizDayAdjustment, error) {
	fields := splitOutsideBrackets(datePart, "-:")
	if len(fields) != 3 && len(fields) != 4 {
		return Cycle{}, Cycle{}, DayCycle{}, nil, NewParseError(fmt.Sprintf("date spec %q must have 3 or 4 fields, got %d", datePart, len(fields)))
	}

	years, err := parseYearField(fields[0])
	if err != nil {
		return Cycle{}, Cycle{}, DayCycle{}, nil, err
	}
	months, err := parseMonthField(fields[1])
	if err != nil {
		return Cycle{}, Cycle{}, DayCycle{}, nil, err
	}
	days, err := parseDayField(fields[2])
	if err != nil {
		return Cycle{}, Cycle{}, DayCycle{}, nil, err
	}

	var adj *BizDayAdjustment
	if len(fields) == 4 {
		adj, err = parseAdjustmentField(fields[3])
		if err != nil {
			return Cycle{}, Cycle{}, DayCycle{}, nil, err
		}
	}

	return years, months, days, adj, nil
}

func parseYearField(f string) (Cycle, error) {
	switch {
	case f == "YY":
		return NACycle(), nil
	case strings.HasPrefix(f, "[") && strings.HasSuffix(f, "]"):
		vals, err := parseIntSet(f)
		if err != nil {
			return Cycle{}, NewParseError(fmt.Sprintf("year set %q: %v", f, err))
		}
		return ValuesCycle(vals...), nil
	case strings.HasSuffix(f, "Y") && len(f) > 1:
		n, err := strconv.Atoi(f[:len(f)-1])
		if err != nil || n <= 0 {
			return Cycle{}, NewParseError(fmt.Sprintf("invalid every-year token %q", f))
		}
		return EveryCycle(n), nil
	default:
		v, err := strconv.Atoi(f)
		if err != nil || len(f) != 4 {
			return Cycle{}, NewParseError(fmt.Sprintf("invalid year literal %q", f))
		}
		return InCycle(v), nil
	}
}

func parseMonthField(f string) (Cycle, error) {
	switch {
	case f == "MM":
		return NACycle(), nil
	case strings.HasPrefix(f, "[") && strings.HasSuffix(f, "]"):
		vals, err := parseIntSet(f)
		if err != nil {
			return Cycle{}, NewParseError(fmt.Sprintf("month set %q: %v", f, err))
		}
		for _, v := range vals {
			if v < 1 || v > 12 {
				return Cycle{}, NewParseError(fmt.Sprintf("month %d out of range in %q", v, f))
			}
		}
		return ValuesCycle(vals...), nil
	case strings.HasSuffix(f, "M") && len(f) > 1:
		n, err := strconv.Atoi(f[:len(f)-1])
		if err != nil || n <= 0 {
			return Cycle{}, NewParseError(fmt.Sprintf("invalid every-month token %q", f))
		}
		return EveryCycle(n), nil
	default:
		v, err := strconv.Atoi(f)
		if err != nil || v < 1 || v > 12 {
			return Cycle{}, NewParseError(fmt.Sprintf("invalid month literal %q", f))
		}
		return InCycle(v), nil
	}
}

func parseDayField(f string) (DayCycle, error) {
	switch {
	case f == "DD":
		return NADayCycle(), nil
	case f == "L":
		return OnLastDayCycle(), nil
	case strings.HasPrefix(f, "[") && strings.HasSuffix(f, "]"):
		return parseDaySet(f)
	case strings.HasSuffix(f, "D") && len(f) > 1 && isDigits(f[:len(f)-1]):
		n, _ := strconv.Atoi(f[:len(f)-1])
		return EveryDayCycle(n, EveryDayRegular), nil
	case strings.HasSuffix(f, "B") && len(f) > 1 && isDigits(f[:len(f)-1]):
		n, _ := strconv.Atoi(f[:len(f)-1])
		return EveryDayCycle(n, EveryDayBizDay), nil
	case strings.HasSuffix(f, "W") && len(f) > 1 && isDigits(f[:len(f)-1]):
		n, _ := strconv.Atoi(f[:len(f)-1])
		return EveryDayCycle(n, EveryDayWeekday), nil
	}

	if wd, rest, ok := splitWeekdayPrefix(f); ok {
		if rest == "" {
			return OnWeekDaysCycle(wd), nil
		}
		if !strings.HasPrefix(rest, "#") {
			return DayCycle{}, NewParseError(fmt.Sprintf("invalid weekday token %q", f))
		}
		return parseWeekdayPosition(wd, rest[1:])
	}

	if isDigits(f) {
		day, _ := strconv.Atoi(f)
		return OnDayCycle(day, OverflowClamp), nil
	}
	if len(f) >= 2 && isDigits(f[:len(f)-1]) {
		day, _ := strconv.Atoi(f[:len(f)-1])
		switch f[len(f)-1] {
		case 'L':
			return OnDayCycle(day, OverflowClamp), nil
		case 'N':
			return OnDayCycle(day, OverflowNextValid), nil
		case 'O':
			return OnDayCycle(day, OverflowShift), nil
		}
	}

	return DayCycle{}, NewParseError(fmt.Sprintf("invalid day token %q", f))
}

func parseWeekdayPosition(wd time.Weekday, suffix string) (DayCycle, error) {
	if suffix == "L" {
		return OnWeekDayCycle(wd, WeekdayLastNth, 1), nil
	}
	if strings.HasSuffix(suffix, "L") {
		n, err := strconv.Atoi(suffix[:len(suffix)-1])
		if err != nil || n <= 0 {
			return DayCycle{}, NewParseError(fmt.Sprintf("invalid weekday position %q", suffix))
		}
		return OnWeekDayCycle(wd, WeekdayLastNth, n), nil
	}
	n, err := strconv.Atoi(suffix)
	if err != nil || n <= 0 {
		return DayCycle{}, NewParseError(fmt.Sprintf("invalid weekday position %q", suffix))
	}
	return OnWeekDayCycle(wd, WeekdayNth, n), nil
}

func parseDaySet(f string) (DayCycle, error) {
	inner := f[1 : len(f)-1]
	items := strings.Split(inner, ",")
	if len(items) == 0 || (len(items) == 1 && items[0] == "") {
		return DayCycle{}, NewParseError(fmt.Sprintf("empty set %q", f))
	}

	if wd, _, ok := splitWeekdayPrefix(strings.TrimSpace(items[0])); ok {
		_ = wd
		wds := make([]time.Weekday, 0, len(items))
		for _, it := range items {
			w, rest, ok := splitWeekdayPrefix(strings.TrimSpace(it))
			if !ok || rest != "" {
				return DayCycle{}, NewParseError(fmt.Sprintf("invalid weekday in set %q", f))
			}
			wds = append(wds, w)
		}
		return OnWeekDaysCycle(wds...), nil
	}

	vals, err := parseIntSet(f)
	if err != nil {
		return DayCycle{}, NewParseError(fmt.Sprintf("day set %q: %v", f, err))
	}
	for _, v := range vals {
		if v < 1 || v > 31 {
			return DayCycle{}, NewParseError(fmt.Sprintf("day %d out of range in %q", v, f))
		}
	}
	return OnDaysCycle(vals...), nil
}

func parseAdjustmentField(f string) (*BizDayAdjustment, error) {
	switch f {
	case "NA":
		return &BizDayAdjustment{Kind: AdjustNA}, nil
	case "WP":
		return &BizDayAdjustment{Kind: AdjustWeekday, Direction: bizday.Prev}, nil
	case "WN":
		return &BizDayAdjustment{Kind: AdjustWeekday, Direction: bizday.Next}, nil
	case "WR":
		return &BizDayAdjustment{Kind: AdjustWeekday, Direction: bizday.Nearest}, nil
	case "BP":
		return &BizDayAdjustment{Kind: AdjustBizDay, Direction: bizday.Prev}, nil
	case "BN":
		return &BizDayAdjustment{Kind: AdjustBizDay, Direction: bizday.Next}, nil
	case "BR":
		return &BizDayAdjustment{Kind: AdjustBizDay, Direction: bizday.Nearest}, nil
	}
	if strings.HasSuffix(f, "P") && len(f) > 1 && isDigits(f[:len(f)-1]) {
		n, _ := strconv.Atoi(f[:len(f)-1])
		return &BizDayAdjustment{Kind: AdjustPrevN, N: n}, nil
	}
	if strings.HasSuffix(f, "N") && len(f) > 1 && isDigits(f[:len(f)-1]) {
		n, _ := strconv.Atoi(f[:len(f)-1])
		return &BizDayAdjustment{Kind: AdjustNextN, N: n}, nil
	}
	return nil, NewParseError(fmt.Sprintf("invalid business-day adjustment %q", f))
}

func parseTimeFields(timePart string) (TimeSpec, error) {
	fields := splitOutsideBrackets(timePart, ":")
	if len(fields) != 3 {
		return TimeSpec{}, NewParseError(fmt.Sprintf("time spec %q must have 3 fields (HH:MM:SS), got %d", timePart, len(fields)))
	}
	hours, err := parseTimeField(fields[0], "HH", "H")
	if err != nil {
		return TimeSpec{}, err
	}
	minutes, err := parseTimeField(fields[1], "MM", "M")
	if err != nil {
		return TimeSpec{}, err
	}
	seconds, err := parseTimeField(fields[2], "SS", "S")
	if err != nil {
		return TimeSpec{}, err
	}
	return TimeSpec{Hours: hours, Minutes: minutes, Seconds: seconds}, nil
}

func parseTimeField(f, anyToken, everySuffix string) (TimeCycle, error) {
	if f == anyToken {
		return TimeCycle{Kind: TimeNA}, nil
	}
	if strings.HasSuffix(f, everySuffix) && len(f) > 1 && isDigits(f[:len(f)-1]) {
		n, _ := strconv.Atoi(f[:len(f)-1])
		return TimeCycle{Kind: TimeEvery, Val: n}, nil
	}
	if isDigits(f) {
		v, _ := strconv.Atoi(f)
		return TimeCycle{Kind: TimeAt, Val: v}, nil
	}
	return TimeCycle{}, NewParseError(fmt.Sprintf("invalid time field %q", f))
}

// validateCombination rejects axis combinations spec.md §4.3 calls out as
// semantically unsupported even though the grammar accepts them.
func validateCombination(s Spec) error {
	yearsOrMonthsEvery := s.Years.Kind == CycleEvery || s.Months.Kind == CycleEvery
	if yearsOrMonthsEvery && (s.Days.Kind == DayCycleOnDays || s.Days.Kind == DayCycleOnWeekDays) {
		return NewInvalidSpecError("Every(_) on years or months cannot combine with OnDays/OnWeekDays")
	}
	if s.Years.Kind == CycleEvery && s.Months.Kind == CycleValues {
		return NewInvalidSpecError("Every(_) on years cannot combine with Values(months)")
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func splitWeekdayPrefix(s string) (time.Weekday, string, bool) {
	if len(s) < 3 {
		return 0, "", false
	}
	if wd, ok := weekdayNames[s[:3]]; ok {
		return wd, s[3:], true
	}
	return 0, "", false
}

func parseIntSet(f string) ([]int, error) {
	inner := f[1 : len(f)-1]
	items := strings.Split(inner, ",")
	vals := make([]int, 0, len(items))
	for _, it := range items {
		it = strings.TrimSpace(it)
		v, err := strconv.Atoi(it)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", it)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// splitOutsideBrackets splits s on any rune in seps, ignoring separators
// that occur inside a bracketed `[...]` set (which itself only contains
// comma-separated literals, never the date/time separators).
func splitOutsideBrackets(s string, seps string) []string {
	var fields []string
	depth := 0
	start := 0
	for i, r := range s {
		switch {
		case r == '[':
			depth++
		case r == ']':
			depth--
		case depth == 0 && strings.ContainsRune(seps, r):
			fields = append(fields, s[start:i])
			start = i + 1
		}
	}
	fields = append(fields, s[start:])
	return fields
}
