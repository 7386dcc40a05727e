package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failed call. Every non-2xx response and every network
// condition maps to exactly one kind; call sites branch on the kind, never on
// raw status codes.
type Kind int

const (
	KindGeneric Kind = iota
	KindAuthExpired
	KindForbidden
	KindServer
	KindTimeout
)

// Error is the single error type surfaced by the client. Message is already
// user-facing; operation boundaries pass it to the toast channel verbatim.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
}

func (e *Error) Error() string { return e.Message }

// User-facing messages. Server-side 5xx detail is deliberately replaced with
// a generic message so backend internals never reach the screen.
const (
	msgAuthExpired = "Sessione scaduta, effettua di nuovo l'accesso"
	msgForbidden   = "Permessi insufficienti per questa operazione"
	msgServer      = "Errore del server, riprova più tardi"
	msgTimeout     = "Richiesta scaduta, controlla la connessione e riprova"
	msgNetwork     = "Impossibile contattare il server"
	msgGeneric     = "Si è verificato un errore imprevisto"
)

// KindOf returns the taxonomy kind of err, or KindGeneric for anything that
// is not an *Error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindGeneric
}

// IsAuthExpired reports whether err is a 401 teardown error. Callers must not
// retry such a call.
func IsAuthExpired(err error) bool { return KindOf(err) == KindAuthExpired }

// IsTimeout reports whether err is the distinct request-expired error.
func IsTimeout(err error) bool { return KindOf(err) == KindTimeout }

// decodeErrorMessage extracts the user-facing message from a backend error
// envelope. The backend's `detail` is a tagged union: either a plain string or
// a list of validation items carrying `msg`. Unknown shapes are rejected
// explicitly; the caller falls back to a generic message.
func decodeErrorMessage(body []byte) (string, error) {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("decode error envelope: %w", err)
	}
	if len(envelope.Detail) == 0 {
		return "", errors.New("error envelope has no detail")
	}

	var s string
	if err := json.Unmarshal(envelope.Detail, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			return "", errors.New("error envelope detail is empty")
		}
		return s, nil
	}

	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &items); err == nil {
		msgs := make([]string, 0, len(items))
		for _, it := range items {
			if m := strings.TrimSpace(it.Msg); m != "" {
				msgs = append(msgs, m)
			}
		}
		if len(msgs) == 0 {
			return "", errors.New("error envelope detail list has no messages")
		}
		return strings.Join(msgs, "; "), nil
	}

	return "", errors.New("unrecognized error envelope detail shape")
}
