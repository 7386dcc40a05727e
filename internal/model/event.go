package model

import "strings"

// EventStatus is the fixed 5-value lifecycle enum. The wire values are the
// backend's display strings, so they round-trip unmodified.
type EventStatus string

const (
	StatusToBeScheduled        EventStatus = "To Be Scheduled"
	StatusContributionReceived EventStatus = "Contribution Received"
	StatusCertifiedAssembly    EventStatus = "Certified Assembly"
	StatusContributionPaid     EventStatus = "Contribution Paid to Association"
	StatusCompleted            EventStatus = "Completed"
)

// EventStatuses returns all statuses in lifecycle order.
func EventStatuses() []EventStatus {
	return []EventStatus{
		StatusToBeScheduled,
		StatusContributionReceived,
		StatusCertifiedAssembly,
		StatusContributionPaid,
		StatusCompleted,
	}
}

func ParseEventStatus(s string) (EventStatus, bool) {
	s = strings.TrimSpace(s)
	for _, st := range EventStatuses() {
		if strings.EqualFold(s, string(st)) {
			return st, true
		}
	}
	return "", false
}

// Event mirrors the backend event schema. List and detail responses carry the
// same shape (detail assignments additionally include association names and
// volunteer breakdowns).
type Event struct {
	ID                  int          `json:"id,omitempty"`
	Title               string       `json:"title"`
	StartDatetime       DateTime     `json:"start_datetime"`
	EndDatetime         DateTime     `json:"end_datetime"`
	Location            string       `json:"location"`
	StageSize           float64      `json:"stage_size"`
	Requester           string       `json:"requester"`
	RequestReceivedDate DateTime     `json:"request_received_date"`
	AssemblyDatetime    *DateTime    `json:"assembly_datetime"`
	DisassemblyDatetime *DateTime    `json:"disassembly_datetime"`
	Status              EventStatus  `json:"status"`
	Associations        []Assignment `json:"event_associations,omitempty"`

	// Derived cost fields, present on list/detail responses.
	TotalCost         float64 `json:"total_cost,omitempty"`
	ProLocoShare      float64 `json:"pro_loco_share,omitempty"`
	CertificationCost float64 `json:"certification_cost,omitempty"`
}

// Assignment links an event to an association with a volunteer allocation.
type Assignment struct {
	ID              int                 `json:"id"`
	EventID         int                 `json:"event_id"`
	AssociationID   int                 `json:"association_id"`
	VolunteerCount  int                 `json:"volunteer_count"`
	AssociationName string              `json:"association_name,omitempty"`
	Volunteers      []AssignedVolunteer `json:"volunteers,omitempty"`
}

// AssignedVolunteer is one roster member allocated to an assignment.
type AssignedVolunteer struct {
	ID            int    `json:"id"`
	VolunteerID   int    `json:"volunteer_id"`
	VolunteerName string `json:"volunteer_name"`
	IsCertified   bool   `json:"is_certified"`
}
