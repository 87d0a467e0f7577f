package journey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSingle(t *testing.T) {
	t.Run("no times", func(t *testing.T) {
		assert.Nil(t, ParseSingle(nil, nil, intPointer(60)))
	})

	t.Run("planned time without realtime data", func(t *testing.T) {
		status := ParseSingle(at(3), at(0), nil)

		require.NotNil(t, status)
		assert.Equal(t, *at(0), status.Time)
		assert.Nil(t, status.Delay)
		assert.Empty(t, status.Severity)
	})

	t.Run("actual time with delay", func(t *testing.T) {
		status := ParseSingle(at(3), at(0), intPointer(180))

		require.NotNil(t, status)
		assert.Equal(t, *at(3), status.Time)
		require.NotNil(t, status.Delay)
		assert.InDelta(t, 3.0, *status.Delay, 0.0001)
		assert.Equal(t, SeverityGood, status.Severity)
	})

	t.Run("planned time when actual is missing", func(t *testing.T) {
		status := ParseSingle(nil, at(0), intPointer(0))

		require.NotNil(t, status)
		assert.Equal(t, *at(0), status.Time)
	})

	tests := []struct {
		name     string
		delay    int
		severity Severity
	}{
		{"on time", 0, SeverityGood},
		{"exactly at threshold", 300, SeverityGood},
		{"one second over threshold", 301, SeverityBad},
		{"early", -60, SeverityGood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := ParseSingle(at(0), at(0), intPointer(tt.delay))

			require.NotNil(t, status)
			assert.Equal(t, tt.severity, status.Severity)
		})
	}
}

func TestParseSingleTime(t *testing.T) {
	departure := ParseSingleTime(at(0), at(0), nil, RoleDeparture)
	assert.Nil(t, departure.Arrival)
	assert.NotNil(t, departure.Departure)

	arrival := ParseSingleTime(at(0), at(0), nil, RoleArrival)
	assert.NotNil(t, arrival.Arrival)
	assert.Nil(t, arrival.Departure)
	assert.Same(t, arrival.Arrival, arrival.Get(RoleArrival))
}

func TestParseTimePair(t *testing.T) {
	pair := ParseTimePair(at(10), at(9), intPointer(60), nil, nil, nil)

	require.NotNil(t, pair.Arrival)
	assert.Equal(t, *at(10), pair.Arrival.Time)
	assert.Nil(t, pair.Departure)
}

func TestMinutesBetween(t *testing.T) {
	minutes := MinutesBetween(at(0), at(25))
	require.NotNil(t, minutes)
	assert.InDelta(t, 25.0, *minutes, 0.0001)

	negative := MinutesBetween(at(25), at(0))
	require.NotNil(t, negative)
	assert.InDelta(t, -25.0, *negative, 0.0001)

	assert.Nil(t, MinutesBetween(nil, at(0)))
	assert.Nil(t, MinutesBetween(at(0), nil))
	assert.Nil(t, MinutesBetween(nil, nil))
}
