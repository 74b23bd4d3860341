package accounting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLocalDate(t *testing.T) {
	d, ok := ParseLocalDate("2024-03-10")
	require.True(t, ok)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 10, d.Day())

	// Anchored at local noon so a UTC conversion cannot shift the calendar
	// day.
	assert.Equal(t, 12, d.Hour())
	assert.Equal(t, time.Local, d.Location())
}

func TestParseLocalDateRejectsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"garbage", "not-a-date"},
		{"missing day", "2024-03"},
		{"non-numeric month", "2024-xx-10"},
		{"month out of range", "2024-13-01"},
		{"day out of range", "2024-02-31"},
		{"zero day", "2024-02-00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ParseLocalDate(tt.input)
			assert.False(t, ok)
		})
	}
}

func TestSafeTimestamp(t *testing.T) {
	earlier, ok := SafeTimestamp("2024-01-10")
	require.True(t, ok)
	later, ok := SafeTimestamp("2024-01-11")
	require.True(t, ok)
	assert.Less(t, earlier, later)

	_, ok = SafeTimestamp("bogus")
	assert.False(t, ok)
}

func TestIsToday(t *testing.T) {
	assert.True(t, IsToday(time.Now().Format(DateLayout)))
	assert.False(t, IsToday("1999-01-01"))
	assert.False(t, IsToday("not-a-date"))
}
