package form

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"palchi-cli/internal/model"
)

func validEventForm() EventForm {
	return EventForm{
		Title:               "Sagra del paese",
		StartDatetime:       "2026-07-10 18:00",
		EndDatetime:         "2026-07-10 23:30",
		Location:            "Piazza Garibaldi",
		StageSize:           "48,5",
		Requester:           "Pro Loco",
		RequestReceivedDate: "2026-06-01",
	}
}

func TestEventFormValidate(t *testing.T) {
	if err := validEventForm().Validate(); err != nil {
		t.Fatalf("valid form rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*EventForm)
	}{
		{"short title", func(f *EventForm) { f.Title = "ab" }},
		{"bad start datetime", func(f *EventForm) { f.StartDatetime = "10/07/2026 18:00" }},
		{"missing end datetime", func(f *EventForm) { f.EndDatetime = "" }},
		{"missing location", func(f *EventForm) { f.Location = " " }},
		{"non-numeric stage size", func(f *EventForm) { f.StageSize = "grande" }},
		{"bad received date", func(f *EventForm) { f.RequestReceivedDate = "2026-06" }},
		{"bad optional assembly", func(f *EventForm) { f.AssemblyDatetime = "domani" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validEventForm()
			tt.mutate(&f)
			if err := f.Validate(); err == nil {
				t.Fatal("Validate() = nil, want error")
			}
		})
	}
}

func TestEventFormOptionalDatetimesStayEmpty(t *testing.T) {
	f := validEventForm()
	if err := f.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	ev, err := f.Event()
	if err != nil {
		t.Fatalf("Event(): %v", err)
	}
	if ev.AssemblyDatetime != nil || ev.DisassemblyDatetime != nil {
		t.Fatal("empty optional datetimes must convert to nil")
	}

	// And nil must serialize as JSON null, not a zero timestamp.
	b, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"assembly_datetime":null`) {
		t.Fatalf("assembly_datetime not null in %s", b)
	}
}

func TestEventFormRoundTripKeepsNilAssembly(t *testing.T) {
	var ev model.Event
	wire := `{
		"id": 9,
		"title": "Concerto d'estate",
		"start_datetime": "2026-08-01T21:00:00",
		"end_datetime": "2026-08-01T23:00:00",
		"location": "Parco comunale",
		"stage_size": 60,
		"requester": "Assessorato cultura",
		"request_received_date": "2026-05-20T00:00:00",
		"assembly_datetime": null,
		"disassembly_datetime": null,
		"status": "To Be Scheduled"
	}`
	if err := json.Unmarshal([]byte(wire), &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	f := EventFormFrom(ev)
	if f.AssemblyDatetime != "" || f.DisassemblyDatetime != "" {
		t.Fatal("nil datetimes must map to empty editable fields")
	}
	if f.StartDatetime != "2026-08-01 21:00" {
		t.Fatalf("start = %q", f.StartDatetime)
	}
	if f.IsNew() {
		t.Fatal("existing event treated as new")
	}

	back, err := f.Event()
	if err != nil {
		t.Fatalf("Event(): %v", err)
	}
	if back.AssemblyDatetime != nil {
		t.Fatal("assembly resurrected through the edit cycle")
	}
	if back.ID != 9 {
		t.Fatalf("id = %d", back.ID)
	}
}

func TestEventFormConvertsValues(t *testing.T) {
	f := validEventForm()
	f.AssemblyDatetime = "2026-07-10 14:00"
	f.Status = model.StatusContributionReceived

	ev, err := f.Event()
	if err != nil {
		t.Fatalf("Event(): %v", err)
	}
	if ev.StageSize != 48.5 {
		t.Fatalf("stage size = %v, comma decimal not parsed", ev.StageSize)
	}
	want := time.Date(2026, 7, 10, 18, 0, 0, 0, time.Local)
	if !ev.StartDatetime.Equal(want) {
		t.Fatalf("start = %v, want %v", ev.StartDatetime.Time, want)
	}
	if ev.AssemblyDatetime == nil || ev.AssemblyDatetime.Hour() != 14 {
		t.Fatalf("assembly = %v", ev.AssemblyDatetime)
	}
	if ev.Status != model.StatusContributionReceived {
		t.Fatalf("status = %q", ev.Status)
	}
}

func TestNewEventFormDefaults(t *testing.T) {
	f := NewEventForm()
	if !f.IsNew() {
		t.Fatal("template form must be new")
	}
	if f.Status != model.StatusToBeScheduled {
		t.Fatalf("default status = %q", f.Status)
	}
	if f.RequestReceivedDate == "" {
		t.Fatal("received date should default to today")
	}
}
