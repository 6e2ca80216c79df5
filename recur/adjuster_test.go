package recur

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpfluger/recurschedule/bizday"
)

func TestAdjust_NoAdjustmentConfigured(t *testing.T) {
	saturday := utc(2025, time.January, 4, 0, 0)
	result, err := adjust(saturday, nil, bizday.NewWeekendSkipper())
	require.NoError(t, err)
	assert.Equal(t, Single, result.Kind)
	assert.Equal(t, saturday, result.Observed)
}

func TestAdjust_AlreadyBizDaySkipsAdjustment(t *testing.T) {
	monday := utc(2025, time.January, 6, 0, 0)
	adj := &BizDayAdjustment{Kind: AdjustNextN, N: 2}
	result, err := adjust(monday, adj, bizday.NewWeekendSkipper())
	require.NoError(t, err)
	assert.Equal(t, Single, result.Kind)
	assert.Equal(t, monday, result.Observed)
}

func TestAdjust_WeekdayDirection(t *testing.T) {
	saturday := utc(2025, time.January, 4, 0, 0)
	adj := &BizDayAdjustment{Kind: AdjustWeekday, Direction: bizday.Next}
	result, err := adjust(saturday, adj, bizday.NewWeekendSkipper())
	require.NoError(t, err)
	assert.Equal(t, AdjustedLater, result.Kind)
	assert.Equal(t, saturday, result.Actual)
	assert.Equal(t, utc(2025, time.January, 6, 0, 0), result.Observed)
}

func TestAdjust_PrevN(t *testing.T) {
	saturday := utc(2025, time.January, 4, 0, 0)
	adj := &BizDayAdjustment{Kind: AdjustPrevN, N: 1}
	result, err := adjust(saturday, adj, bizday.NewWeekendSkipper())
	require.NoError(t, err)
	assert.Equal(t, AdjustedEarlier, result.Kind)
	assert.Equal(t, utc(2025, time.January, 3, 0, 0), result.Observed)
}

func TestAdjust_NextN(t *testing.T) {
	saturday := utc(2025, time.January, 4, 0, 0)
	adj := &BizDayAdjustment{Kind: AdjustNextN, N: 1}
	result, err := adjust(saturday, adj, bizday.NewWeekendSkipper())
	require.NoError(t, err)
	assert.Equal(t, AdjustedLater, result.Kind)
	assert.Equal(t, utc(2025, time.January, 6, 0, 0), result.Observed)
}
