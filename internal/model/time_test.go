package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateTimeUnmarshalNaiveISO(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{`"2026-07-10T18:00:00"`, time.Date(2026, 7, 10, 18, 0, 0, 0, time.Local)},
		{`"2026-07-10T18:00:00.123456"`, time.Date(2026, 7, 10, 18, 0, 0, 123456000, time.Local)},
		{`"2026-07-10T18:00"`, time.Date(2026, 7, 10, 18, 0, 0, 0, time.Local)},
		{`"2026-07-10"`, time.Date(2026, 7, 10, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		var d DateTime
		if err := json.Unmarshal([]byte(tt.in), &d); err != nil {
			t.Fatalf("unmarshal %s: %v", tt.in, err)
		}
		if !d.Equal(tt.want) {
			t.Fatalf("unmarshal %s = %v, want %v", tt.in, d.Time, tt.want)
		}
	}
}

func TestDateTimeUnmarshalNullAndGarbage(t *testing.T) {
	var d DateTime
	if err := json.Unmarshal([]byte(`null`), &d); err != nil {
		t.Fatalf("null: %v", err)
	}
	if !d.IsZero() {
		t.Fatal("null must decode to the zero time")
	}
	if err := json.Unmarshal([]byte(`"domani alle otto"`), &d); err == nil {
		t.Fatal("garbage datetime accepted")
	}
}

func TestDateTimeMarshal(t *testing.T) {
	d := NewDateTime(time.Date(2026, 7, 10, 18, 0, 0, 0, time.Local))
	b, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"2026-07-10T18:00:00"` {
		t.Fatalf("marshal = %s", b)
	}

	var zero DateTime
	b, err = json.Marshal(zero)
	if err != nil {
		t.Fatalf("marshal zero: %v", err)
	}
	if string(b) != "null" {
		t.Fatalf("zero must marshal as null, got %s", b)
	}
}

func TestParseEventStatus(t *testing.T) {
	if st, ok := ParseEventStatus("completed"); !ok || st != StatusCompleted {
		t.Fatalf("ParseEventStatus(completed) = %q, %v", st, ok)
	}
	if st, ok := ParseEventStatus("  Contribution Paid to Association "); !ok || st != StatusContributionPaid {
		t.Fatalf("ParseEventStatus = %q, %v", st, ok)
	}
	if _, ok := ParseEventStatus("annullato"); ok {
		t.Fatal("unknown status parsed")
	}
	if got := len(EventStatuses()); got != 5 {
		t.Fatalf("statuses = %d, want 5", got)
	}
}
