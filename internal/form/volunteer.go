package form

import (
	"strings"

	"palchi-cli/internal/model"
)

// VolunteerForm is the working form for one roster member.
type VolunteerForm struct {
	ID            int
	AssociationID int
	FirstName     string
	LastName      string
	DateOfBirth   string
	IsCertified   bool
}

func NewVolunteerForm(associationID int) VolunteerForm {
	return VolunteerForm{AssociationID: associationID}
}

func VolunteerFormFrom(v model.Volunteer) VolunteerForm {
	f := VolunteerForm{
		ID:            v.ID,
		AssociationID: v.AssociationID,
		FirstName:     v.FirstName,
		LastName:      v.LastName,
		IsCertified:   v.IsCertified,
	}
	if v.DateOfBirth != nil {
		f.DateOfBirth = *v.DateOfBirth
	}
	return f
}

func (f VolunteerForm) IsNew() bool { return f.ID == 0 }

func (f VolunteerForm) Validate() error {
	return Check(
		Field{Name: "first_name", Value: strings.TrimSpace(f.FirstName), Rules: []Rule{
			Required("Il nome è obbligatorio"),
			MinLen(2, "Il nome deve avere almeno 2 caratteri"),
		}},
		Field{Name: "last_name", Value: strings.TrimSpace(f.LastName), Rules: []Rule{
			Required("Il cognome è obbligatorio"),
			MinLen(2, "Il cognome deve avere almeno 2 caratteri"),
		}},
		Field{Name: "date_of_birth", Value: strings.TrimSpace(f.DateOfBirth), Rules: []Rule{
			Match(datePattern, "Data di nascita non valida (AAAA-MM-GG)"),
		}},
	)
}

func (f VolunteerForm) Volunteer() model.Volunteer {
	v := model.Volunteer{
		ID:            f.ID,
		AssociationID: f.AssociationID,
		FirstName:     strings.TrimSpace(f.FirstName),
		LastName:      strings.TrimSpace(f.LastName),
		IsCertified:   f.IsCertified,
	}
	if s := strings.TrimSpace(f.DateOfBirth); s != "" {
		v.DateOfBirth = &s
	}
	return v
}
