package reservation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateTimeLayout is the layout Seaware uses for every timestamp field.
const DateTimeLayout = "2006-01-02T15:04:05"

// Accepted on input. Output is DateTimeLayout plus any fractional seconds.
var dateTimeLayouts = []string{
	DateTimeLayout,
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
}

// DateTime is a Seaware timestamp. Values without an offset are taken as UTC.
type DateTime struct {
	time.Time
}

// ParseDateTime parses s using the accepted Seaware layouts.
func ParseDateTime(s string) (DateTime, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateTime{Time: t}, nil
		}
	}
	return DateTime{}, fmt.Errorf("invalid date-time %q, expected YYYY-MM-DDTHH:MM:SS", s)
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date-time must be a string: %w", err)
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if _, offset := d.Zone(); offset != 0 {
		return json.Marshal(d.Format(time.RFC3339Nano))
	}
	return json.Marshal(d.Format("2006-01-02T15:04:05.999999999"))
}
