package transit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestFlightSameTimezone(t *testing.T) {
	d := Flight("09:00", "11:30", nil, nil, 0)
	assert.Equal(t, "2h 30m", d.DurationText)
	assert.False(t, d.Auto)
}

func TestFlightNegativeGuard(t *testing.T) {
	d := Flight("09:00", "08:00", nil, nil, 0)
	assert.Empty(t, d.DurationText)
}

func TestFlightDayOffsetCrossesMidnight(t *testing.T) {
	// 23:00 -> 01:00 next day
	d := Flight("23:00", "01:00", nil, nil, 1)
	assert.Equal(t, "2h 0m", d.DurationText)
}

func TestFlightTimezoneOffsetsMarkAuto(t *testing.T) {
	// Taipei 09:00 (+480) -> Tokyo 13:00 (+540): 3h in the air.
	d := Flight("09:00", "13:00", intp(480), intp(540), 0)
	assert.Equal(t, "3h 0m", d.DurationText)
	assert.True(t, d.Auto)
}

func TestFlightSingleOffsetNotAuto(t *testing.T) {
	d := Flight("09:00", "13:00", intp(480), nil, 0)
	assert.False(t, d.Auto)
	assert.NotEmpty(t, d.DurationText)
}

func TestFlightMissingTimesClear(t *testing.T) {
	assert.Empty(t, Flight("", "11:00", nil, nil, 0).DurationText)
	assert.Empty(t, Flight("09:00", "", nil, nil, 0).DurationText)
	assert.Empty(t, Flight("9am", "11:00", nil, nil, 0).DurationText)
}

func TestRoadSumsRouteAndBuffer(t *testing.T) {
	d := Road(75, 15)
	assert.Equal(t, "1h 30m", d.DurationText)
}

func TestRoadNonPositiveTotal(t *testing.T) {
	assert.Empty(t, Road(0, 0).DurationText)
	assert.Empty(t, Road(10, -20).DurationText)
}

func TestResolveTransitInflation(t *testing.T) {
	// 3000s = 50min raw, inflated to ceil(50*1.2) = 60, buffer 10.
	res := ResolveTransit(3000, "")
	assert.Equal(t, 50, res.RouteMinutes)
	assert.Equal(t, 10, res.BufferMinutes)
	assert.Equal(t, "1h 0m", res.DurationText)
	assert.Empty(t, res.EndTime, "no start time, end stays untouched")
	assert.Equal(t, 0, res.DayOffset)
}

func TestResolveTransitSuggestsEndTime(t *testing.T) {
	res := ResolveTransit(3000, "10:00")
	assert.Equal(t, "11:00", res.EndTime)
	assert.Equal(t, 0, res.DayOffset)
}

func TestResolveTransitMidnightWrap(t *testing.T) {
	// 2220s = 37min raw, inflated to 45. 23:30 + 45m = 00:15 next day.
	res := ResolveTransit(2220, "23:30")
	require.Equal(t, 45, res.RouteMinutes+res.BufferMinutes)
	assert.Equal(t, "00:15", res.EndTime)
	assert.Equal(t, 1, res.DayOffset)
}

func TestApplySuggested(t *testing.T) {
	end, off, ok := ApplySuggested("10:00", 90)
	require.True(t, ok)
	assert.Equal(t, "11:30", end)
	assert.Equal(t, 0, off)
}

func TestApplySuggestedWrapSetsDayOffset(t *testing.T) {
	end, off, ok := ApplySuggested("23:30", 45)
	require.True(t, ok)
	assert.Equal(t, "00:15", end)
	assert.Equal(t, 1, off)
}

func TestApplySuggestedIdempotent(t *testing.T) {
	e1, o1, ok1 := ApplySuggested("22:10", 130)
	e2, o2, ok2 := ApplySuggested("22:10", 130)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, e1, e2)
	assert.Equal(t, o1, o2)
}

func TestApplySuggestedInvalidInputs(t *testing.T) {
	_, _, ok := ApplySuggested("", 60)
	assert.False(t, ok)
	_, _, ok = ApplySuggested("10:00", 0)
	assert.False(t, ok)
}

func TestParseClock(t *testing.T) {
	mins, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, mins)

	mins, err = ParseClock("23:59:59")
	require.NoError(t, err)
	assert.Equal(t, 1439, mins)

	for _, bad := range []string{"", "24:00", "12:60", "noon", "12"} {
		_, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h 45m", FormatDuration(45))
	assert.Equal(t, "2h 30m", FormatDuration(150))
	assert.Empty(t, FormatDuration(-5))
}
