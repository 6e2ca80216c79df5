package bizday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarOracle_IsBizDay(t *testing.T) {
	c, err := NewCalendarOracle("us")
	require.NoError(t, err)

	ok, err := c.IsBizDay(mustDate(2024, time.July, 12)) // Friday
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.IsBizDay(mustDate(2024, time.July, 13)) // Saturday
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCalendarOracle_SkipsHoliday(t *testing.T) {
	c, err := NewCalendarOracle("us")
	require.NoError(t, err)

	// July 4, 2024 is a Thursday and a US federal holiday.
	ok, err := c.IsBizDay(mustDate(2024, time.July, 4))
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := c.Find(mustDate(2024, time.July, 4), Next)
	require.NoError(t, err)
	assert.Equal(t, mustDate(2024, time.July, 5), got)
}

func TestCalendarOracle_AddSub(t *testing.T) {
	c, err := NewCalendarOracle("us")
	require.NoError(t, err)

	got, err := c.Add(mustDate(2024, time.July, 12), 1) // Friday + 1 biz day
	require.NoError(t, err)
	assert.Equal(t, mustDate(2024, time.July, 15), got) // Monday

	got, err = c.Sub(mustDate(2024, time.July, 15), 1)
	require.NoError(t, err)
	assert.Equal(t, mustDate(2024, time.July, 12), got)
}

func TestCalendarOracle_UnsupportedISOCode(t *testing.T) {
	_, err := NewCalendarOracle("zz")
	assert.Error(t, err)
}
