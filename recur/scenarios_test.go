package recur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpfluger/recurschedule/bizday"
)

func ny(y int, m time.Month, d, h, mi int) time.Time {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.UTC
	}
	return time.Date(y, m, d, h, mi, 0, 0, loc)
}

func takeObserved(t *testing.T, it *Iterator, n int) []time.Time {
	t.Helper()
	results, err := it.Take(n)
	require.NoError(t, err)
	require.Len(t, results, n)
	out := make([]time.Time, n)
	for i, r := range results {
		out[i] = r.Observed
	}
	return out
}

func TestScenario1_EveryMonthClampedLastDay(t *testing.T) {
	start := ny(2024, time.December, 31, 0, 0)
	it := NewWithStart(MustParse("YY-1M-31L"), start, bizday.NewWeekendSkipper())
	got := takeObserved(t, it, 5)

	assert.Equal(t, ny(2024, time.December, 31, 0, 0), got[0])
	assert.Equal(t, ny(2025, time.January, 31, 0, 0), got[1])
	assert.Equal(t, ny(2025, time.February, 28, 0, 0), got[2])
	assert.Equal(t, ny(2025, time.March, 31, 0, 0), got[3])
	assert.Equal(t, ny(2025, time.April, 30, 0, 0), got[4])
}

func TestScenario2_EveryMonthNextValidOverflow(t *testing.T) {
	start := ny(2024, time.December, 31, 0, 0)
	it := NewWithStart(MustParse("YY-1M-31N"), start, bizday.NewWeekendSkipper())
	results, err := it.Take(5)
	require.NoError(t, err)
	require.Len(t, results, 5)

	assert.Equal(t, ny(2024, time.December, 31, 0, 0), results[0].Observed)
	assert.Equal(t, Single, results[0].Kind)

	assert.Equal(t, ny(2025, time.January, 31, 0, 0), results[1].Observed)
	assert.Equal(t, Single, results[1].Kind)

	assert.Equal(t, ny(2025, time.March, 1, 0, 0), results[2].Observed)
	assert.Equal(t, ny(2025, time.February, 28, 0, 0), results[2].Actual)
	assert.Equal(t, AdjustedLater, results[2].Kind)

	assert.Equal(t, ny(2025, time.March, 31, 0, 0), results[3].Observed)
	assert.Equal(t, Single, results[3].Kind)

	assert.Equal(t, ny(2025, time.May, 1, 0, 0), results[4].Observed)
	assert.Equal(t, ny(2025, time.April, 30, 0, 0), results[4].Actual)
	assert.Equal(t, AdjustedLater, results[4].Kind)
}

// TestScenario2_ActualIsClampedCalendarTarget pins the Actual field of an
// overflow-tagged result to the days-in-month-clamped date, not the
// overflow-resolved one — the cursor advances from this value (see
// Iterator.Next), so collapsing it to Observed would silently re-derive
// following occurrences from the wrong month.
func TestScenario2_ActualIsClampedCalendarTarget(t *testing.T) {
	start := ny(2024, time.December, 31, 0, 0)
	it := NewWithStart(MustParse("YY-1M-31N"), start, bizday.NewWeekendSkipper())
	results, err := it.Take(3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	third := results[2]
	assert.Equal(t, AdjustedLater, third.Kind)
	assert.Equal(t, ny(2025, time.February, 28, 0, 0), third.Actual)
	assert.Equal(t, ny(2025, time.March, 1, 0, 0), third.Observed)
	assert.True(t, third.Observed.After(third.Actual))
}

func TestScenario3_BareWeekdayIsWeekly(t *testing.T) {
	start := ny(2025, time.January, 1, 0, 0)
	it := NewWithStart(MustParse("YY-MM-MON"), start, bizday.NewWeekendSkipper())
	got := takeObserved(t, it, 5)

	assert.Equal(t, ny(2025, time.January, 1, 0, 0), got[0])
	assert.Equal(t, ny(2025, time.January, 6, 0, 0), got[1])
	assert.Equal(t, ny(2025, time.January, 13, 0, 0), got[2])
	assert.Equal(t, ny(2025, time.January, 20, 0, 0), got[3])
	assert.Equal(t, ny(2025, time.January, 27, 0, 0), got[4])
}

func TestScenario4_LastWeekdayOfMonth(t *testing.T) {
	start := ny(2025, time.January, 29, 0, 0)
	it := NewWithStart(MustParse("YY-1M-WED#L"), start, bizday.NewWeekendSkipper())
	got := takeObserved(t, it, 4)

	assert.Equal(t, ny(2025, time.January, 29, 0, 0), got[0])
	assert.Equal(t, ny(2025, time.February, 26, 0, 0), got[1])
	assert.Equal(t, ny(2025, time.March, 26, 0, 0), got[2])
	assert.Equal(t, ny(2025, time.April, 30, 0, 0), got[3])
}

func TestScenario5_ValuesCrossProduct(t *testing.T) {
	start := ny(2025, time.January, 1, 0, 0)
	it := NewWithStart(MustParse("[2025,2026]-[01,07]-[01,15]"), start, bizday.NewWeekendSkipper())
	got := takeObserved(t, it, 5)

	assert.Equal(t, ny(2025, time.January, 1, 0, 0), got[0])
	assert.Equal(t, ny(2025, time.January, 15, 0, 0), got[1])
	assert.Equal(t, ny(2025, time.July, 1, 0, 0), got[2])
	assert.Equal(t, ny(2025, time.July, 15, 0, 0), got[3])
	assert.Equal(t, ny(2026, time.January, 1, 0, 0), got[4])
}

func TestScenario6_EveryMonthPlusEveryDays(t *testing.T) {
	start := ny(2024, time.December, 1, 0, 0)
	it := NewWithStart(MustParse("YY-1M-7D"), start, bizday.NewWeekendSkipper())
	got := takeObserved(t, it, 4)

	assert.Equal(t, ny(2024, time.December, 1, 0, 0), got[0])
	assert.Equal(t, ny(2025, time.January, 8, 0, 0), got[1])
	assert.Equal(t, ny(2025, time.February, 15, 0, 0), got[2])
	assert.Equal(t, ny(2025, time.March, 22, 0, 0), got[3])
}
