package recur

import (
	"time"

	"github.com/jpfluger/recurschedule/bizday"
)

// Iterator lazily yields NextResult occurrences for a Spec. Construct one
// with NewAfter or NewWithStart, optionally narrow it with WithEnd or
// WithEndSpec, then repeatedly call Next. An Iterator is not safe for
// concurrent use by multiple goroutines.
type Iterator struct {
	spec   Spec
	oracle bizday.Oracle
	dates  *dateEngine

	cursor    time.Time
	startPend bool // true until the start-anchored first emission has fired
	end       *time.Time
	index     int
}

// NewAfter builds an iterator whose first emission is the first occurrence
// strictly after anchor.
func NewAfter(spec Spec, anchor time.Time, oracle bizday.Oracle) *Iterator {
	return &Iterator{
		spec:   spec,
		oracle: oracle,
		dates:  newDateEngine(oracle),
		cursor: anchor,
	}
}

// NewWithStart builds an iterator whose first emission is Single(start)
// itself, unconditionally; subsequent emissions advance normally.
func NewWithStart(spec Spec, start time.Time, oracle bizday.Oracle) *Iterator {
	return &Iterator{
		spec:      spec,
		oracle:    oracle,
		dates:     newDateEngine(oracle),
		cursor:    start,
		startPend: true,
	}
}

// WithEnd bounds the iterator at a literal end instant: the sequence stops
// once the next candidate would exceed end, emitting end itself once as a
// terminal Single(end).
func (it *Iterator) WithEnd(end time.Time) *Iterator {
	it.end = &end
	return it
}

// WithEndSpec bounds the iterator at the first occurrence of endSpec
// evaluated strictly after the iterator's current cursor (its start, if
// start-anchored). It returns a *Custom error if that resolves to an
// instant that is not after the cursor.
func (it *Iterator) WithEndSpec(endSpec Spec) (*Iterator, error) {
	probe := NewAfter(endSpec, it.cursor, it.oracle)
	result, err := probe.Next()
	if err != nil {
		return nil, err
	}
	if result == nil || !result.Observed.After(it.cursor) {
		return nil, NewCustomError("end-spec does not resolve to an instant after start")
	}
	end := result.Observed
	it.end = &end
	return it, nil
}

// Reset rewinds the iterator to treat t as a fresh anchor, clearing any
// pending start-emission state and step index.
func (it *Iterator) Reset(t time.Time) {
	it.cursor = t
	it.startPend = false
	it.index = 0
}

// Next computes the following occurrence. It returns (nil, nil) once a
// bound has been reached or the next candidate does not move past the
// cursor; when the date engine finds no further admissible year/month (an
// exhausted In or Values year axis, for example) it returns an
// ErrNextDateCalc error instead. A non-nil error always carries a *Error.
func (it *Iterator) Next() (*NextResult, error) {
	if it.end != nil && !it.cursor.Before(*it.end) {
		return nil, nil
	}

	if it.startPend {
		it.startPend = false
		result := NewSingleResult(it.cursor)
		it.index++
		return &result, nil
	}

	timeAdvanced, ok := it.spec.Time.advance(it.cursor)
	if !ok {
		timeAdvanced = it.cursor
	}

	var actual, observed time.Time
	var overflow overflowTag
	if it.spec.Years.Kind == CycleNA && it.spec.Months.Kind == CycleNA && it.spec.Days.Kind == DayCycleNA {
		if !ok {
			// Every day is admissible: with the time axis unmoved, the next
			// occurrence is the following day with the time spec applied.
			ts := it.spec.Time
			timeAdvanced = applySecondCycle(applyMinuteCycle(applyHourCycle(it.cursor.AddDate(0, 0, 1), ts.Hours), ts.Minutes), ts.Seconds)
		}
		actual, observed = timeAdvanced, timeAdvanced
	} else {
		a, o, tag, err := it.dates.advance(it.spec, timeAdvanced)
		if err != nil {
			return nil, err
		}
		actual, observed, overflow = a, o, tag
	}

	if !actual.After(it.cursor) {
		return nil, nil
	}

	// Day-overflow (On(d, NextValid|Overflow) spilling into the following
	// month) tags the result AdjustedLater on its own, independent of any
	// configured business-day adjustment — Actual is the calendar-true
	// (days-in-month-clamped) target, Observed is where overflow resolved it.
	result := NewSingleResult(actual)
	if overflow == tagLater {
		result = NextResult{Kind: AdjustedLater, Actual: actual, Observed: observed}
	}
	if it.spec.Adjustment != nil && it.spec.Adjustment.Kind != AdjustNA {
		adjusted, err := adjust(actual, it.spec.Adjustment, it.oracle)
		if err != nil {
			return nil, err
		}
		if adjusted.Kind != Single {
			result = adjusted
		}
	}

	if !result.Actual.After(it.cursor) {
		return nil, nil
	}

	if it.end != nil && result.Actual.After(*it.end) {
		it.cursor = *it.end
		it.index++
		terminal := NewSingleResult(*it.end)
		return &terminal, nil
	}

	it.cursor = result.Actual
	it.index++
	return &result, nil
}

// Take pulls up to n occurrences, stopping early if the sequence is
// exhausted.
func (it *Iterator) Take(n int) ([]NextResult, error) {
	out := make([]NextResult, 0, n)
	for i := 0; i < n; i++ {
		r, err := it.Next()
		if err != nil {
			return out, err
		}
		if r == nil {
			break
		}
		out = append(out, *r)
	}
	return out, nil
}
