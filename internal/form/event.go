package form

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"palchi-cli/internal/model"
)

// Editable layouts: what the user types into the inputs. Wire conversion
// happens only on save, and nil optional datetimes stay empty end to end.
const (
	EditableDateTime = "2006-01-02 15:04"
	EditableDate     = "2006-01-02"
)

var (
	numberPattern   = regexp.MustCompile(`^\d+([.,]\d+)?$`)
	dateTimePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}$`)
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// EventForm is the working form bound to the event modal inputs.
type EventForm struct {
	ID                  int
	Title               string
	StartDatetime       string
	EndDatetime         string
	Location            string
	StageSize           string
	Requester           string
	RequestReceivedDate string
	AssemblyDatetime    string
	DisassemblyDatetime string
	Status              model.EventStatus
}

// NewEventForm returns the "create new" default-values template.
func NewEventForm() EventForm {
	return EventForm{
		RequestReceivedDate: time.Now().Format(EditableDate),
		Status:              model.StatusToBeScheduled,
	}
}

// EventFormFrom deep-copies an existing event into a working form,
// converting wire timestamps to the editable local format.
func EventFormFrom(ev model.Event) EventForm {
	f := EventForm{
		ID:                  ev.ID,
		Title:               ev.Title,
		StartDatetime:       ev.StartDatetime.Format(EditableDateTime),
		EndDatetime:         ev.EndDatetime.Format(EditableDateTime),
		Location:            ev.Location,
		StageSize:           strconv.FormatFloat(ev.StageSize, 'f', -1, 64),
		Requester:           ev.Requester,
		RequestReceivedDate: ev.RequestReceivedDate.Format(EditableDate),
		Status:              ev.Status,
	}
	if ev.AssemblyDatetime != nil && !ev.AssemblyDatetime.IsZero() {
		f.AssemblyDatetime = ev.AssemblyDatetime.Format(EditableDateTime)
	}
	if ev.DisassemblyDatetime != nil && !ev.DisassemblyDatetime.IsZero() {
		f.DisassemblyDatetime = ev.DisassemblyDatetime.Format(EditableDateTime)
	}
	return f
}

// IsNew reports whether saving must create (no id yet) or update.
func (f EventForm) IsNew() bool { return f.ID == 0 }

func (f EventForm) Validate() error {
	return Check(
		Field{Name: "title", Value: strings.TrimSpace(f.Title), Rules: []Rule{
			Required("Il titolo è obbligatorio"),
			MinLen(3, "Il titolo deve avere almeno 3 caratteri"),
		}},
		Field{Name: "start_datetime", Value: strings.TrimSpace(f.StartDatetime), Rules: []Rule{
			Required("La data di inizio è obbligatoria"),
			Match(dateTimePattern, "Data di inizio non valida (AAAA-MM-GG HH:MM)"),
		}},
		Field{Name: "end_datetime", Value: strings.TrimSpace(f.EndDatetime), Rules: []Rule{
			Required("La data di fine è obbligatoria"),
			Match(dateTimePattern, "Data di fine non valida (AAAA-MM-GG HH:MM)"),
		}},
		Field{Name: "location", Value: strings.TrimSpace(f.Location), Rules: []Rule{
			Required("Il luogo è obbligatorio"),
		}},
		Field{Name: "stage_size", Value: strings.TrimSpace(f.StageSize), Rules: []Rule{
			Required("La dimensione del palco è obbligatoria"),
			Match(numberPattern, "La dimensione del palco deve essere un numero"),
		}},
		Field{Name: "requester", Value: strings.TrimSpace(f.Requester), Rules: []Rule{
			Required("Il richiedente è obbligatorio"),
		}},
		Field{Name: "request_received_date", Value: strings.TrimSpace(f.RequestReceivedDate), Rules: []Rule{
			Required("La data di ricezione è obbligatoria"),
			Match(datePattern, "Data di ricezione non valida (AAAA-MM-GG)"),
		}},
		Field{Name: "assembly_datetime", Value: strings.TrimSpace(f.AssemblyDatetime), Rules: []Rule{
			Match(dateTimePattern, "Data di montaggio non valida (AAAA-MM-GG HH:MM)"),
		}},
		Field{Name: "disassembly_datetime", Value: strings.TrimSpace(f.DisassemblyDatetime), Rules: []Rule{
			Match(dateTimePattern, "Data di smontaggio non valida (AAAA-MM-GG HH:MM)"),
		}},
	)
}

// Event converts the working form back to the wire entity. Validate should
// have passed already; parse failures still come back as ValidationError.
func (f EventForm) Event() (model.Event, error) {
	start, err := parseEditableDateTime(f.StartDatetime)
	if err != nil {
		return model.Event{}, &ValidationError{Field: "start_datetime", Message: "Data di inizio non valida"}
	}
	end, err := parseEditableDateTime(f.EndDatetime)
	if err != nil {
		return model.Event{}, &ValidationError{Field: "end_datetime", Message: "Data di fine non valida"}
	}
	received, err := time.ParseInLocation(EditableDate, strings.TrimSpace(f.RequestReceivedDate), time.Local)
	if err != nil {
		return model.Event{}, &ValidationError{Field: "request_received_date", Message: "Data di ricezione non valida"}
	}
	size, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(f.StageSize), ",", "."), 64)
	if err != nil {
		return model.Event{}, &ValidationError{Field: "stage_size", Message: "La dimensione del palco deve essere un numero"}
	}

	ev := model.Event{
		ID:                  f.ID,
		Title:               strings.TrimSpace(f.Title),
		StartDatetime:       model.NewDateTime(start),
		EndDatetime:         model.NewDateTime(end),
		Location:            strings.TrimSpace(f.Location),
		StageSize:           size,
		Requester:           strings.TrimSpace(f.Requester),
		RequestReceivedDate: model.NewDateTime(received),
		Status:              f.Status,
	}

	if s := strings.TrimSpace(f.AssemblyDatetime); s != "" {
		t, err := parseEditableDateTime(s)
		if err != nil {
			return model.Event{}, &ValidationError{Field: "assembly_datetime", Message: "Data di montaggio non valida"}
		}
		dt := model.NewDateTime(t)
		ev.AssemblyDatetime = &dt
	}
	if s := strings.TrimSpace(f.DisassemblyDatetime); s != "" {
		t, err := parseEditableDateTime(s)
		if err != nil {
			return model.Event{}, &ValidationError{Field: "disassembly_datetime", Message: "Data di smontaggio non valida"}
		}
		dt := model.NewDateTime(t)
		ev.DisassemblyDatetime = &dt
	}
	return ev, nil
}

func parseEditableDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "T", " "))
	return time.ParseInLocation(EditableDateTime, s, time.Local)
}
