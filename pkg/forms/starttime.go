package forms

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// StartTimeLayout is how start times are rendered back into forms.
const StartTimeLayout = "2006-01-02 15:04:05"

var startTimeLayouts = []string{
	time.RFC3339Nano,
	StartTimeLayout,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseStartTime parses a submitted show start time. Values without a zone
// are read as UTC. The result is always in UTC.
func ParseStartTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range startTimeLayouts {
		t, err := time.ParseInLocation(layout, value, time.UTC)
		if err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.Errorf("invalid start time %q", value)
}
