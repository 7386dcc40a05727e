package model

// Association mirrors the backend association schema, roster included.
type Association struct {
	ID            int         `json:"id,omitempty"`
	Name          string      `json:"name"`
	ContactPerson string      `json:"contact_person,omitempty"`
	TaxCode       string      `json:"tax_code,omitempty"`
	IBAN          string      `json:"iban,omitempty"`
	Headquarters  string      `json:"headquarters,omitempty"`
	Volunteers    []Volunteer `json:"volunteers,omitempty"`
}

// Volunteer belongs to exactly one association (via the request path, not an
// object reference). DateOfBirth is a wire date ("2006-01-02") when present.
type Volunteer struct {
	ID            int     `json:"id,omitempty"`
	AssociationID int     `json:"association_id,omitempty"`
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	DateOfBirth   *string `json:"date_of_birth"`
	IsCertified   bool    `json:"is_certified"`
}

func (v Volunteer) FullName() string {
	if v.FirstName == "" {
		return v.LastName
	}
	if v.LastName == "" {
		return v.FirstName
	}
	return v.FirstName + " " + v.LastName
}
