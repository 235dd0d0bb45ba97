package trips

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateDaysCoversRangeInclusive(t *testing.T) {
	days, err := GenerateDays("t1", "2025-06-01", "2025-06-05")
	require.NoError(t, err)
	require.Len(t, days, 5)

	for i, d := range days {
		assert.Equal(t, "t1", d.TripID)
		assert.Equal(t, i+1, d.DayNumber)
	}
	assert.Equal(t, "2025-06-01", days[0].DayDate)
	assert.Equal(t, "2025-06-03", days[2].DayDate)
	assert.Equal(t, "2025-06-05", days[4].DayDate)
}

func TestGenerateDaysSingleDayTrip(t *testing.T) {
	days, err := GenerateDays("t1", "2025-06-01", "2025-06-01")
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, 1, days[0].DayNumber)
}

func TestGenerateDaysCrossesMonthBoundary(t *testing.T) {
	days, err := GenerateDays("t1", "2025-06-29", "2025-07-02")
	require.NoError(t, err)
	require.Len(t, days, 4)
	assert.Equal(t, "2025-07-01", days[2].DayDate)
}

func TestGenerateDaysRejectsBadInput(t *testing.T) {
	_, err := GenerateDays("t1", "2025-06-05", "2025-06-01")
	assert.Error(t, err)

	_, err = GenerateDays("t1", "June 1st", "2025-06-05")
	assert.Error(t, err)
}
