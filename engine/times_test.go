package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseElapsed(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"1:15.00", 75000},
		{"1:14", 74000},
		{"74.50", 74500},
		{"90", 90000},
		{"0:59.99", 59990},
		{"1:02.5", 62500},
		{"10:00.01", 600010},
		{" 1:15.00 ", 75000},
	}
	for _, tt := range tests {
		got, err := ParseElapsed(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseElapsedRejects(t *testing.T) {
	for _, in := range []string{
		"", "abc", "2:75.10", "1:60", "-1:10.00", "1:0a.00", "1:02.500", "1:2.x",
	} {
		_, err := ParseElapsed(in)
		require.Error(t, err, in)
		assert.ErrorIs(t, err, ErrInvalidFormat, in)
	}
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "1:15.00", FormatElapsed(75000))
	assert.Equal(t, "59.99", FormatElapsed(59990))
	assert.Equal(t, "0.00", FormatElapsed(0))
	assert.Equal(t, "10:00.01", FormatElapsed(600010))
}

func TestParseFormatRoundTrip(t *testing.T) {
	// Centisecond precision survives a full round trip.
	for _, ms := range []int64{0, 10, 990, 59990, 60000, 75000, 62500, 600010, 3599990} {
		got, err := ParseElapsed(FormatElapsed(ms))
		require.NoError(t, err)
		assert.Equal(t, ms, got)
	}
}

func TestFormatDelta(t *testing.T) {
	assert.Equal(t, "1.00", FormatDelta(1000))
	assert.Equal(t, "0.01", FormatDelta(10))
	assert.Equal(t, "12.35", FormatDelta(12350))
	assert.Equal(t, "", FormatDelta(0))
	assert.Equal(t, "", FormatDelta(-500))
}

func TestAutoFormat(t *testing.T) {
	tests := []struct{ in, want string }{
		{"12345", "1:23.45"},
		{"2345", "23.45"},
		{"345", "3.45"},
		{"45", "0.45"},
		{"5", "0.05"},
		{"1:23.45", "1:23.45"},
		{"0012345", "1:23.45"},
		{"", ""},
		{"--", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AutoFormat(tt.in), tt.in)
	}
}
