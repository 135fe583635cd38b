package validation

import (
	"fmt"

	"thelab/models"
)

// Length bounds of the two form variants
const (
	UsernameMinLength = 4
	UsernameMaxLength = 100

	// Username variant password bounds
	ShortPasswordMinLength = 8
	ShortPasswordMaxLength = 30

	NameMinLength = 5
	NameMaxLength = 45

	// Full-name variant password (and confirmation) bounds
	PasswordMinLength = 8
	PasswordMaxLength = 60
)

const (
	MsgEmailRequired   = "E-mail is a required property"
	MsgEmailInvalid    = "E-mail should follow the pattern 'username@domain.TLD'"
	MsgConfirmMismatch = "Confirmation don't match password"
)

func minMsg(label string, n int) string {
	return fmt.Sprintf("%s should have at least %d chars", label, n)
}

func maxMsg(label string, n int) string {
	return fmt.Sprintf("%s should have max %d chars", label, n)
}

func requiredMsg(label string) string {
	return label + " is a required property"
}

// UsernameRules validates the email/username/password/confirmation layout.
func UsernameRules() *RuleSet {
	return NewRuleSet().
		Field(models.FieldEmail,
			Required(MsgEmailRequired),
			Email(MsgEmailInvalid)).
		Field(models.FieldUsername,
			Required(requiredMsg("Username")),
			Length(UsernameMinLength, UsernameMaxLength,
				minMsg("Username", UsernameMinLength), maxMsg("Username", UsernameMaxLength))).
		Field(models.FieldPassword,
			Required(requiredMsg("Password")),
			Length(ShortPasswordMinLength, ShortPasswordMaxLength,
				minMsg("Password", ShortPasswordMinLength), maxMsg("Password", ShortPasswordMaxLength))).
		Field(models.FieldPasswordConfirmation,
			Required(requiredMsg("Password confirmation")),
			EqualTo(models.FieldPassword, MsgConfirmMismatch))
}

// FullNameRules validates the email/first name/surname/password/confirmation layout.
func FullNameRules() *RuleSet {
	return NewRuleSet().
		Field(models.FieldEmail,
			Required(MsgEmailRequired),
			Email(MsgEmailInvalid)).
		Field(models.FieldFirstName,
			Required(requiredMsg("First name")),
			Length(NameMinLength, NameMaxLength,
				minMsg("First name", NameMinLength), maxMsg("First name", NameMaxLength)),
			Letters("Only letters are allowed for the first name")).
		Field(models.FieldSurname,
			Required(requiredMsg("Surname")),
			Length(NameMinLength, NameMaxLength,
				minMsg("Surname", NameMinLength), maxMsg("Surname", NameMaxLength)),
			Letters("Only letters are allowed for the surname")).
		Field(models.FieldPassword,
			Required(requiredMsg("Password")),
			Length(PasswordMinLength, PasswordMaxLength,
				minMsg("Password", PasswordMinLength), maxMsg("Password", PasswordMaxLength))).
		Field(models.FieldPasswordConfirmation,
			Required(requiredMsg("Password confirmation")),
			Length(PasswordMinLength, PasswordMaxLength,
				minMsg("Password confirmation", PasswordMinLength), maxMsg("Password confirmation", PasswordMaxLength)),
			EqualTo(models.FieldPassword, MsgConfirmMismatch))
}

// RulesFor returns the rule set matching a catalog variant.
func RulesFor(v models.Variant) *RuleSet {
	if v == models.VariantUsername {
		return UsernameRules()
	}
	return FullNameRules()
}
