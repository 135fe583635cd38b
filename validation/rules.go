// Package validation holds the per-field constraints of the registration form.
//
// A RuleSet is a pure function from form values to field errors: it keeps no
// state between calls and performs no I/O, so the same values always produce
// the same errors.
package validation

import (
	"regexp"
	"unicode/utf8"

	"thelab/models"
)

// Rule checks one field. values is the whole form so cross-field rules can
// read siblings. ok=false means the rule failed and message is the error.
type Rule interface {
	Check(value string, values models.FormValues) (message string, ok bool)
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc func(value string, values models.FormValues) (string, bool)

// Check calls f
func (f RuleFunc) Check(value string, values models.FormValues) (string, bool) {
	return f(value, values)
}

// Required fails on an empty value. Put it first in a chain so nothing
// else is reported for an empty field.
func Required(message string) Rule {
	return RuleFunc(func(value string, _ models.FormValues) (string, bool) {
		if value == "" {
			return message, false
		}
		return "", true
	})
}

// Length bounds the number of characters (runes, not bytes).
// Only one bound can fail for a given value.
func Length(min, max int, minMessage, maxMessage string) Rule {
	return RuleFunc(func(value string, _ models.FormValues) (string, bool) {
		n := utf8.RuneCountInString(value)
		if n < min {
			return minMessage, false
		}
		if max > 0 && n > max {
			return maxMessage, false
		}
		return "", true
	})
}

// Pattern fails when the value does not match re.
func Pattern(re *regexp.Regexp, message string) Rule {
	return RuleFunc(func(value string, _ models.FormValues) (string, bool) {
		if !re.MatchString(value) {
			return message, false
		}
		return "", true
	})
}

// emailPattern accepts local-part@domain where the domain has at least one dot.
var emailPattern = regexp.MustCompile(
	"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@" +
		"[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?" +
		"(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$")

// Email checks the value against a standard address grammar.
func Email(message string) Rule {
	return Pattern(emailPattern, message)
}

// lettersPattern allows ASCII letters and whitespace only.
var lettersPattern = regexp.MustCompile(`^[a-zA-Z\s]*$`)

// Letters restricts a name field to letters and whitespace.
func Letters(message string) Rule {
	return Pattern(lettersPattern, message)
}

// EqualTo fails unless the value equals the value of another field.
func EqualTo(other models.FieldKey, message string) Rule {
	return RuleFunc(func(value string, values models.FormValues) (string, bool) {
		if value != values.Get(other) {
			return message, false
		}
		return "", true
	})
}
