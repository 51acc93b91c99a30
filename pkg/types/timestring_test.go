package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2026, 9, 1, 18, 30, 45, 0, time.UTC))
	assert.Equal(t, TimeString("18:30"), ts)
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:15")
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:15"), ts)

	_, err = NewTimeStringFromString("25:00")
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = NewTimeStringFromString("9:15 PM")
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Minutes(t *testing.T) {
	minutes, err := TimeString("18:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 18*60+30, minutes)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_AddMinutes(t *testing.T) {
	result, err := TimeString("18:30").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("19:30"), result)

	// Переход через полночь
	result, err = TimeString("23:30").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("00:30"), result)

	result, err = TimeString("00:30").AddMinutes(-60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("23:30"), result)
}

func TestTimeString_Comparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore(TimeString("18:00")))
	assert.False(t, TimeString("18:00").IsBefore(TimeString("09:00")))
	assert.True(t, TimeString("18:00").IsAfter(TimeString("09:00")))
	assert.False(t, TimeString("09:00").IsAfter(TimeString("09:00")))
}

func TestTimeString_DistanceMinutes(t *testing.T) {
	distance, err := TimeString("18:00").DistanceMinutes(TimeString("17:30"))
	require.NoError(t, err)
	assert.Equal(t, 30, distance)

	distance, err = TimeString("17:30").DistanceMinutes(TimeString("18:00"))
	require.NoError(t, err)
	assert.Equal(t, 30, distance)
}

func TestDateString_Validate(t *testing.T) {
	require.NoError(t, DateString("2026-09-01").Validate())
	assert.ErrorIs(t, DateString("01/09/2026").Validate(), ErrInvalidDateString)
	assert.ErrorIs(t, DateString("").Validate(), ErrInvalidDateString)
}

func TestNewDateString(t *testing.T) {
	date := NewDateString(time.Date(2026, 9, 1, 18, 30, 0, 0, time.UTC))
	assert.Equal(t, DateString("2026-09-01"), date)
}
