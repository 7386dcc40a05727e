// Package form holds the working forms bound to the UI inputs and the
// declarative validation rules evaluated before any network call.
//
// Validation here is advisory: the backend is the authority, and its
// rejection messages are shown verbatim when a request still fails.
package form

import (
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Rule is one declarative check on a single field. Rules run in declaration
// order; the first failure aborts the whole form with its message.
type Rule struct {
	// Tag is a validator var-tag ("required", "min=2", "email").
	Tag string
	// Pattern, when set, is checked instead of Tag.
	Pattern *regexp.Regexp
	// Message is the user-facing failure text.
	Message string
}

func Required(msg string) Rule { return Rule{Tag: "required", Message: msg} }

func MinLen(n int, msg string) Rule {
	return Rule{Tag: "min=" + strconv.Itoa(n), Message: msg}
}

func Email(msg string) Rule { return Rule{Tag: "email", Message: msg} }

func Match(re *regexp.Regexp, msg string) Rule {
	return Rule{Pattern: re, Message: msg}
}

// ValidationError is a client-side, pre-flight rejection. The network is
// never touched when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Field binds a value to its ordered rule set.
type Field struct {
	Name  string
	Value string
	Rules []Rule
}

// Check evaluates fields in order and returns the first failing rule's
// message. Non-required rules are skipped on empty values so optional fields
// stay optional.
func Check(fields ...Field) error {
	for _, f := range fields {
		for _, r := range f.Rules {
			if fails(f.Value, r) {
				return &ValidationError{Field: f.Name, Message: r.Message}
			}
		}
	}
	return nil
}

func fails(value string, r Rule) bool {
	if r.Pattern != nil {
		if value == "" {
			return false
		}
		return !r.Pattern.MatchString(value)
	}
	if r.Tag != "required" && value == "" {
		return false
	}
	return validate.Var(value, r.Tag) != nil
}
