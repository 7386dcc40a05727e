package form

import "strings"

// LoginForm is validated before the login call ever leaves the client.
type LoginForm struct {
	Username string
	Password string
}

func (f LoginForm) Validate() error {
	return Check(
		Field{Name: "username", Value: strings.TrimSpace(f.Username), Rules: []Rule{
			Required("Inserisci il nome utente"),
			MinLen(2, "Il nome utente deve avere almeno 2 caratteri"),
		}},
		Field{Name: "password", Value: f.Password, Rules: []Rule{
			Required("Inserisci la password"),
		}},
	)
}

// RegisterForm creates a new account; the backend does not auto-login.
type RegisterForm struct {
	Username string
	Email    string
	Password string
}

func (f RegisterForm) Validate() error {
	return Check(
		Field{Name: "username", Value: strings.TrimSpace(f.Username), Rules: []Rule{
			Required("Inserisci il nome utente"),
			MinLen(2, "Il nome utente deve avere almeno 2 caratteri"),
		}},
		Field{Name: "email", Value: strings.TrimSpace(f.Email), Rules: []Rule{
			Required("Inserisci l'email"),
			Email("Email non valida"),
		}},
		Field{Name: "password", Value: f.Password, Rules: []Rule{
			Required("Inserisci la password"),
			MinLen(8, "La password deve avere almeno 8 caratteri"),
		}},
	)
}

// ProfileForm updates the signed-in user; the password is optional and only
// sent when non-empty.
type ProfileForm struct {
	Username string
	Email    string
	Password string
}

func (f ProfileForm) Validate() error {
	return Check(
		Field{Name: "username", Value: strings.TrimSpace(f.Username), Rules: []Rule{
			Required("Inserisci il nome utente"),
			MinLen(2, "Il nome utente deve avere almeno 2 caratteri"),
		}},
		Field{Name: "email", Value: strings.TrimSpace(f.Email), Rules: []Rule{
			Required("Inserisci l'email"),
			Email("Email non valida"),
		}},
		Field{Name: "password", Value: f.Password, Rules: []Rule{
			MinLen(8, "La password deve avere almeno 8 caratteri"),
		}},
	)
}
