// Package rruleconv converts the common overlapping subset of a recur.Spec
// into an rrule.ROption, for callers that need to hand a recurrence off to
// calendar software or a library that already speaks RFC 5545. The
// conversion is necessarily partial: rrule has no business-day-adjustment
// concept and no arbitrary sorted-set year axis, so ToROption rejects
// specs it cannot express faithfully instead of silently approximating
// them.
package rruleconv

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jpfluger/recurschedule/recur"
)

var weekdayToRRule = map[time.Weekday]rrule.Weekday{
	time.Monday:    rrule.MO,
	time.Tuesday:   rrule.TU,
	time.Wednesday: rrule.WE,
	time.Thursday:  rrule.TH,
	time.Friday:    rrule.FR,
	time.Saturday:  rrule.SA,
	time.Sunday:    rrule.SU,
}

// ToROption converts spec into an rrule.ROption anchored at dtstart. It
// supports:
//   - DayCycleOn with Months NA or Every(n) -> MONTHLY + Bymonthday, or
//     with Years Every(n) and a pinned In month -> YEARLY + Bymonth/Bymonthday
//   - DayCycleEvery(Regular) with Years/Months NA -> DAILY
//   - DayCycleOnWeekDays with Years/Months NA -> WEEKLY
//   - DayCycleOnWeekDay (Nth/LastNth) with Months NA or Every(n) -> MONTHLY + Bysetpos
//   - DayCycleOnLastDay with Months NA or Every(n) -> MONTHLY + Bymonthday(-1)
//
// Years.Kind must be NA or Every(n), and Every(n) years combine only with
// DayCycleOn. In/Values year axes, every-N time fields and any biz_day_adj
// are not representable in rrule and return an error.
func ToROption(spec recur.Spec, dtstart time.Time) (rrule.ROption, error) {
	if spec.Adjustment != nil && spec.Adjustment.Kind != recur.AdjustNA {
		return rrule.ROption{}, fmt.Errorf("rruleconv: business-day adjustments have no rrule equivalent")
	}

	opt := rrule.ROption{Dtstart: dtstart, Interval: 1}

	// rrule.YEARLY is Frequency's zero value, so an unset opt.Freq cannot
	// be told apart from YEARLY; the yearly case is tracked explicitly.
	yearly := false
	switch spec.Years.Kind {
	case recur.CycleNA:
		// yearly axis unconstrained; frequency is driven by month/day below
	case recur.CycleEvery:
		yearly = true
		opt.Freq = rrule.YEARLY
		opt.Interval = spec.Years.Step
	default:
		return rrule.ROption{}, fmt.Errorf("rruleconv: In/Values year cycles have no rrule equivalent")
	}

	if spec.Time.Hours.Kind == recur.TimeEvery || spec.Time.Minutes.Kind == recur.TimeEvery || spec.Time.Seconds.Kind == recur.TimeEvery {
		return rrule.ROption{}, fmt.Errorf("rruleconv: every-N time steps have no rrule equivalent")
	}

	switch spec.Days.Kind {
	case recur.DayCycleOn:
		if yearly {
			if spec.Months.Kind != recur.CycleIn {
				return rrule.ROption{}, fmt.Errorf("rruleconv: yearly recurrence needs a pinned month")
			}
			opt.Bymonth = []int{spec.Months.Lit}
			opt.Bymonthday = []int{spec.Days.Day}
			break
		}
		switch spec.Months.Kind {
		case recur.CycleNA:
			opt.Freq = rrule.MONTHLY
			opt.Bymonthday = []int{spec.Days.Day}
		case recur.CycleEvery:
			opt.Freq = rrule.MONTHLY
			opt.Interval = spec.Months.Step
			opt.Bymonthday = []int{spec.Days.Day}
		default:
			return rrule.ROption{}, fmt.Errorf("rruleconv: unsupported month cycle for DayCycleOn")
		}
	case recur.DayCycleOnLastDay:
		if yearly || (spec.Months.Kind != recur.CycleEvery && spec.Months.Kind != recur.CycleNA) {
			return rrule.ROption{}, fmt.Errorf("rruleconv: unsupported month or year cycle for OnLastDay")
		}
		opt.Freq = rrule.MONTHLY
		if spec.Months.Kind == recur.CycleEvery {
			opt.Interval = spec.Months.Step
		}
		opt.Bymonthday = []int{-1}
	case recur.DayCycleEvery:
		if spec.Days.EveryKind != recur.EveryDayRegular {
			return rrule.ROption{}, fmt.Errorf("rruleconv: business-day/weekday every-N steps have no rrule equivalent")
		}
		if yearly || spec.Months.Kind != recur.CycleNA {
			return rrule.ROption{}, fmt.Errorf("rruleconv: every-N days needs unconstrained years and months")
		}
		opt.Freq = rrule.DAILY
		opt.Interval = spec.Days.EveryN
	case recur.DayCycleOnWeekDays:
		if yearly || spec.Months.Kind != recur.CycleNA {
			return rrule.ROption{}, fmt.Errorf("rruleconv: weekday sets need unconstrained years and months")
		}
		opt.Freq = rrule.WEEKLY
		opt.Byweekday = make([]rrule.Weekday, 0, len(spec.Days.Weekdays))
		for _, wd := range spec.Days.Weekdays {
			opt.Byweekday = append(opt.Byweekday, weekdayToRRule[wd])
		}
	case recur.DayCycleOnWeekDay:
		if yearly || (spec.Months.Kind != recur.CycleEvery && spec.Months.Kind != recur.CycleNA) {
			return rrule.ROption{}, fmt.Errorf("rruleconv: unsupported month or year cycle for OnWeekDay")
		}
		opt.Freq = rrule.MONTHLY
		if spec.Months.Kind == recur.CycleEvery {
			opt.Interval = spec.Months.Step
		}
		wd := weekdayToRRule[spec.Days.Weekday]
		pos := spec.Days.Pos
		if spec.Days.PosKind == recur.WeekdayLastNth {
			pos = -pos
		}
		opt.Byweekday = []rrule.Weekday{wd}
		opt.Bysetpos = []int{pos}
	default:
		return rrule.ROption{}, fmt.Errorf("rruleconv: day cycle kind has no rrule equivalent")
	}

	if !yearly && opt.Freq == rrule.YEARLY {
		return rrule.ROption{}, fmt.Errorf("rruleconv: spec does not determine an rrule frequency")
	}

	opt.Byhour = timeCycleValues(spec.Time.Hours)
	opt.Byminute = timeCycleValues(spec.Time.Minutes)
	opt.Bysecond = timeCycleValues(spec.Time.Seconds)

	return opt, nil
}

func timeCycleValues(c recur.TimeCycle) []int {
	if c.Kind != recur.TimeAt {
		return nil
	}
	return []int{c.Val}
}
