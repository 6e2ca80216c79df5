package bizday

import (
	"fmt"
	"strings"
	"time"

	"github.com/rickar/cal/v2"
	cal_us "github.com/rickar/cal/v2/us"
)

// CalendarOracle is an Oracle backed by a github.com/rickar/cal/v2 business
// calendar: weekends plus a configured holiday set are non-business days.
// It is a second, holiday-aware implementation of Oracle living outside
// recur, proving the date-advance engine and adjuster are genuinely
// agnostic to which calendar backs them.
type CalendarOracle struct {
	bc *cal.BusinessCalendar
}

// NewCalendarOracle returns a CalendarOracle for the given ISO country code.
// Only "us" (or an empty code, which means "us") is wired to a holiday set;
// any other code is rejected with an error.
func NewCalendarOracle(isoCode string) (*CalendarOracle, error) {
	iso := strings.TrimSpace(strings.ToLower(isoCode))
	bc := cal.NewBusinessCalendar()

	switch iso {
	case "", "us":
		bc.AddHoliday(cal_us.Holidays...)
	default:
		return nil, fmt.Errorf("bizday: unsupported ISO code %q", isoCode)
	}

	return &CalendarOracle{bc: bc}, nil
}

// IsBizDay reports whether dtm is a workday under the configured calendar.
func (c *CalendarOracle) IsBizDay(dtm time.Time) (bool, error) {
	return c.bc.IsWorkday(dtm), nil
}

// Add returns the business day num business days after dtm.
func (c *CalendarOracle) Add(dtm time.Time, num uint) (time.Time, error) {
	current := dtm
	var added uint
	for added < num {
		current = current.AddDate(0, 0, 1)
		if ok, _ := c.IsBizDay(current); ok {
			added++
		}
	}
	return current, nil
}

// Sub returns the business day num business days before dtm.
func (c *CalendarOracle) Sub(dtm time.Time, num uint) (time.Time, error) {
	current := dtm
	var subtracted uint
	for subtracted < num {
		current = current.AddDate(0, 0, -1)
		if ok, _ := c.IsBizDay(current); ok {
			subtracted++
		}
	}
	return current, nil
}

// Find resolves dtm to a business day in the requested Direction, using the
// same month-boundary tie-break rule as WeekendSkipper for Nearest.
func (c *CalendarOracle) Find(dtm time.Time, direction Direction) (time.Time, error) {
	switch direction {
	case Prev:
		if ok, _ := c.IsBizDay(dtm); ok {
			return dtm, nil
		}
		return c.Sub(dtm, 1)
	case Next:
		if ok, _ := c.IsBizDay(dtm); ok {
			return dtm, nil
		}
		return c.Add(dtm, 1)
	default:
		return c.nearestBizDay(dtm)
	}
}

func (c *CalendarOracle) nearestBizDay(dtm time.Time) (time.Time, error) {
	if ok, _ := c.IsBizDay(dtm); ok {
		return dtm, nil
	}

	current := dtm
	day := 24 * time.Hour

	if dtm.Day() == 1 {
		for {
			if ok, _ := c.IsBizDay(current); ok {
				break
			}
			current = current.Add(day)
		}
		return current, nil
	}

	if dtm.Day() == lastDayOfMonth(dtm).Day() {
		for {
			if ok, _ := c.IsBizDay(current); ok {
				break
			}
			current = current.Add(-day)
		}
		return current, nil
	}

	step := day
	if dtm.Weekday() == time.Saturday {
		step = -day
	}
	for {
		current = current.Add(step)
		if ok, _ := c.IsBizDay(current); ok {
			return current, nil
		}
	}
}
