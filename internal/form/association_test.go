package form

import (
	"testing"

	"palchi-cli/internal/model"
)

func TestAssociationFormValidate(t *testing.T) {
	tests := []struct {
		name   string
		f      AssociationForm
		wantOK bool
	}{
		{name: "name only", f: AssociationForm{Name: "Pro Loco"}, wantOK: true},
		{name: "missing name", f: AssociationForm{TaxCode: "12345678901"}},
		{name: "entity tax code", f: AssociationForm{Name: "APS", TaxCode: "12345678901"}, wantOK: true},
		{name: "personal tax code", f: AssociationForm{Name: "APS", TaxCode: "RSSMRA80A01H501U"}, wantOK: true},
		{name: "bad tax code", f: AssociationForm{Name: "APS", TaxCode: "123"}},
		{name: "valid iban", f: AssociationForm{Name: "APS", IBAN: "IT60X0542811101000000123456"}, wantOK: true},
		{name: "iban with spaces", f: AssociationForm{Name: "APS", IBAN: "IT60 X054 2811 1010 0000 0123 456"}, wantOK: true},
		{name: "bad iban", f: AssociationForm{Name: "APS", IBAN: "IT60"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.f.Validate()
			if tt.wantOK && err != nil {
				t.Fatalf("Validate() = %v, want nil", err)
			}
			if !tt.wantOK && err == nil {
				t.Fatal("Validate() = nil, want error")
			}
		})
	}
}

func TestAssociationFormNormalizes(t *testing.T) {
	f := AssociationForm{
		Name:    "  Pro Loco  ",
		TaxCode: "rssmra80a01h501u",
		IBAN:    "it60 x054 2811 1010 0000 0123 456",
	}
	a := f.Association()
	if a.Name != "Pro Loco" {
		t.Fatalf("name = %q", a.Name)
	}
	if a.TaxCode != "RSSMRA80A01H501U" {
		t.Fatalf("tax code = %q", a.TaxCode)
	}
	if a.IBAN != "IT60X0542811101000000123456" {
		t.Fatalf("iban = %q", a.IBAN)
	}
}

func TestVolunteerFormDateOfBirthOptional(t *testing.T) {
	f := VolunteerForm{AssociationID: 3, FirstName: "Anna", LastName: "Bianchi"}
	if err := f.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}
	if v := f.Volunteer(); v.DateOfBirth != nil {
		t.Fatal("empty birth date must stay nil on the wire")
	}

	f.DateOfBirth = "1990-03-15"
	v := f.Volunteer()
	if v.DateOfBirth == nil || *v.DateOfBirth != "1990-03-15" {
		t.Fatalf("date of birth = %v", v.DateOfBirth)
	}

	f.DateOfBirth = "15/03/1990"
	if err := f.Validate(); err == nil {
		t.Fatal("non-ISO birth date accepted")
	}
}

func TestVolunteerFormFromRoundTrip(t *testing.T) {
	dob := "1985-01-02"
	v := model.Volunteer{ID: 7, AssociationID: 3, FirstName: "Anna", LastName: "Bianchi", DateOfBirth: &dob, IsCertified: true}
	f := VolunteerFormFrom(v)
	if f.IsNew() {
		t.Fatal("existing volunteer treated as new")
	}
	back := f.Volunteer()
	if back.ID != 7 || back.AssociationID != 3 || !back.IsCertified {
		t.Fatalf("round trip lost fields: %+v", back)
	}
	if back.DateOfBirth == nil || *back.DateOfBirth != dob {
		t.Fatalf("date of birth = %v", back.DateOfBirth)
	}
}

func TestAssignmentFormValidate(t *testing.T) {
	f := NewAssignmentForm(5)
	if err := f.Validate(); err == nil {
		t.Fatal("missing association accepted")
	}

	f.AssociationID = 2
	if err := f.Validate(); err != nil {
		t.Fatalf("default count rejected: %v", err)
	}

	f.VolunteerCount = "0"
	if err := f.Validate(); err == nil {
		t.Fatal("zero volunteers accepted")
	}

	f.VolunteerCount = "2"
	f.VolunteerIDs = []int{1, 2, 3}
	if err := f.Validate(); err == nil {
		t.Fatal("more named volunteers than the count accepted")
	}

	f.VolunteerIDs = []int{1, 2}
	req, err := f.Request()
	if err != nil {
		t.Fatalf("Request(): %v", err)
	}
	if req.VolunteerCount != 2 || len(req.VolunteerIDs) != 2 {
		t.Fatalf("request = %+v", req)
	}
}

func TestAssignmentRequestNeverNilIDs(t *testing.T) {
	f := NewAssignmentForm(5)
	f.AssociationID = 2
	req, err := f.Request()
	if err != nil {
		t.Fatalf("Request(): %v", err)
	}
	if req.VolunteerIDs == nil {
		t.Fatal("volunteer_ids must marshal as [], not null")
	}
}
