package model

import (
	"bytes"
	"fmt"
	"time"
)

// DateTime wraps time.Time for the backend's naive ISO-8601 timestamps
// ("2006-01-02T15:04:05", no zone). Stock time.Time only round-trips RFC 3339
// and would reject every event payload.
type DateTime struct {
	time.Time
}

const wireDateTime = "2006-01-02T15:04:05"

var dateTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999999999",
	wireDateTime,
	"2006-01-02T15:04",
	"2006-01-02",
}

func NewDateTime(t time.Time) DateTime { return DateTime{Time: t} }

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(wireDateTime) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		d.Time = time.Time{}
		return nil
	}
	s := string(bytes.Trim(b, `"`))
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			d.Time = t
			return nil
		}
	}
	return fmt.Errorf("unsupported datetime %q", s)
}
