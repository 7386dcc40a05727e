package form

import (
	"strconv"
	"strings"

	"palchi-cli/internal/api"
)

// AssignmentForm allocates an association and a subset of its roster to an
// event. VolunteerIDs are picked from that association's roster only.
type AssignmentForm struct {
	EventID        int
	AssociationID  int
	VolunteerCount string
	VolunteerIDs   []int
}

func NewAssignmentForm(eventID int) AssignmentForm {
	return AssignmentForm{EventID: eventID, VolunteerCount: "1"}
}

func (f AssignmentForm) Validate() error {
	if f.AssociationID == 0 {
		return &ValidationError{Field: "association_id", Message: "Seleziona un'associazione"}
	}
	n, err := strconv.Atoi(strings.TrimSpace(f.VolunteerCount))
	if err != nil || n < 1 {
		return &ValidationError{Field: "volunteer_count", Message: "Il numero di volontari deve essere almeno 1"}
	}
	if len(f.VolunteerIDs) > n {
		return &ValidationError{Field: "volunteer_ids", Message: "Troppi volontari selezionati per il conteggio indicato"}
	}
	return nil
}

func (f AssignmentForm) Request() (api.AssignmentRequest, error) {
	if err := f.Validate(); err != nil {
		return api.AssignmentRequest{}, err
	}
	n, _ := strconv.Atoi(strings.TrimSpace(f.VolunteerCount))
	ids := f.VolunteerIDs
	if ids == nil {
		ids = []int{}
	}
	return api.AssignmentRequest{
		AssociationID:  f.AssociationID,
		VolunteerCount: n,
		VolunteerIDs:   ids,
	}, nil
}
