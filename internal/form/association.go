package form

import (
	"regexp"
	"strings"

	"palchi-cli/internal/model"
)

var (
	// Italian fiscal code: 16 alphanumerics (personal) or 11 digits (entity).
	taxCodePattern = regexp.MustCompile(`^([A-Za-z0-9]{16}|\d{11})$`)
	ibanPattern    = regexp.MustCompile(`^[A-Za-z]{2}\d{2}[A-Za-z0-9]{10,30}$`)
)

// AssociationForm is the working form bound to the association modal inputs.
type AssociationForm struct {
	ID            int
	Name          string
	ContactPerson string
	TaxCode       string
	IBAN          string
	Headquarters  string
}

// NewAssociationForm returns the "create new" default-values template.
func NewAssociationForm() AssociationForm { return AssociationForm{} }

// AssociationFormFrom deep-copies an existing association into a working
// form. The roster is not part of the form; volunteers have their own.
func AssociationFormFrom(a model.Association) AssociationForm {
	return AssociationForm{
		ID:            a.ID,
		Name:          a.Name,
		ContactPerson: a.ContactPerson,
		TaxCode:       a.TaxCode,
		IBAN:          a.IBAN,
		Headquarters:  a.Headquarters,
	}
}

func (f AssociationForm) IsNew() bool { return f.ID == 0 }

func (f AssociationForm) Validate() error {
	return Check(
		Field{Name: "name", Value: strings.TrimSpace(f.Name), Rules: []Rule{
			Required("Il nome è obbligatorio"),
			MinLen(2, "Il nome deve avere almeno 2 caratteri"),
		}},
		Field{Name: "tax_code", Value: strings.TrimSpace(f.TaxCode), Rules: []Rule{
			Match(taxCodePattern, "Codice fiscale non valido"),
		}},
		Field{Name: "iban", Value: strings.ReplaceAll(strings.TrimSpace(f.IBAN), " ", ""), Rules: []Rule{
			Match(ibanPattern, "IBAN non valido"),
		}},
	)
}

func (f AssociationForm) Association() model.Association {
	return model.Association{
		ID:            f.ID,
		Name:          strings.TrimSpace(f.Name),
		ContactPerson: strings.TrimSpace(f.ContactPerson),
		TaxCode:       strings.ToUpper(strings.TrimSpace(f.TaxCode)),
		IBAN:          strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(f.IBAN), " ", "")),
		Headquarters:  strings.TrimSpace(f.Headquarters),
	}
}
