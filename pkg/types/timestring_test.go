package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Minutes(t *testing.T) {
	t.Run("valid values", func(t *testing.T) {
		cases := map[TimeString]int{
			"00:00": 0,
			"09:30": 570,
			"13:45": 825,
			"23:59": 1439,
			"24:00": 1440,
		}
		for ts, want := range cases {
			got, err := ts.Minutes()
			require.NoError(t, err, "value %s", ts)
			assert.Equal(t, want, got, "value %s", ts)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		invalid := []TimeString{"", "9:30", "09-30", "09:60", "25:00", "24:01", "ab:cd", "09:300"}
		for _, ts := range invalid {
			_, err := ts.Minutes()
			assert.ErrorIs(t, err, ErrInvalidFormat, "value %q", string(ts))
		}
	})
}

func TestTimeString_AddMinutes(t *testing.T) {
	t.Run("within day", func(t *testing.T) {
		got, err := TimeString("09:30").AddMinutes(45)
		require.NoError(t, err)
		assert.Equal(t, TimeString("10:15"), got)
	})

	t.Run("to exactly midnight", func(t *testing.T) {
		got, err := TimeString("23:00").AddMinutes(60)
		require.NoError(t, err)
		assert.Equal(t, TimeString("24:00"), got)
	})

	t.Run("past midnight", func(t *testing.T) {
		_, err := TimeString("23:30").AddMinutes(45)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})

	t.Run("negative below zero", func(t *testing.T) {
		_, err := TimeString("00:30").AddMinutes(-60)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
}

func TestTimeString_Comparisons(t *testing.T) {
	a := TimeString("09:00")
	b := TimeString("10:00")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.True(t, b.IsAfter(a))

	// Равные значения не раньше и не позже друг друга
	assert.False(t, a.IsBefore(a))
	assert.False(t, a.IsAfter(a))

	// Некорректные значения несравнимы
	assert.False(t, TimeString("bad").IsBefore(b))
	assert.False(t, a.IsBefore(TimeString("bad")))
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 9, 1, 9, 5, 59, 0, time.UTC))
	assert.Equal(t, TimeString("09:05"), ts)
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("18:00")
	require.NoError(t, err)
	assert.Equal(t, TimeString("18:00"), ts)

	_, err = NewTimeStringFromString("18:65")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
