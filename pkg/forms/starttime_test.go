package forms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStartTime(t *testing.T) {
	t.Parallel()

	expected := time.Date(2035, 4, 1, 20, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		value string
	}{
		{"form layout", "2035-04-01 20:00:00"},
		{"without seconds", "2035-04-01 20:00"},
		{"html datetime-local", "2035-04-01T20:00"},
		{"rfc3339 utc", "2035-04-01T20:00:00Z"},
		{"rfc3339 with offset", "2035-04-01T13:00:00-07:00"},
		{"surrounding whitespace", "  2035-04-01 20:00:00 "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParseStartTime(tt.value)
			require.NoError(t, err)
			assert.True(t, expected.Equal(parsed))
			assert.Equal(t, time.UTC, parsed.Location())
		})
	}
}

func TestParseStartTime_Invalid(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"", "tomorrow", "2035-13-01 20:00:00", "01/04/2035"} {
		_, err := ParseStartTime(value)
		assert.Error(t, err, value)
	}
}
