package models

// FullName is the two-part name sent to the account service.
type FullName struct {
	FirstName string `json:"firstName" msgpack:"firstName"`
	Surname   string `json:"surname" msgpack:"surname"`
}

// SignUpData is the body of an account-creation request.
// Local signups carry the credentials, Google signups carry EmailVerified
// instead. Username is only filled by the username form variant.
type SignUpData struct {
	Email                string    `json:"email" msgpack:"email"`
	Username             string    `json:"username,omitempty" msgpack:"username,omitempty"`
	FullName             *FullName `json:"fullName,omitempty" msgpack:"fullName,omitempty"`
	Password             string    `json:"password,omitempty" msgpack:"password,omitempty"`
	PasswordConfirmation string    `json:"passwordConfirmation,omitempty" msgpack:"passwordConfirmation,omitempty"`
	EmailVerified        *bool     `json:"emailVerified,omitempty" msgpack:"emailVerified,omitempty"`
}

// LocalSignUpData reshapes validated form values into a request body.
// First name and surname are grouped under FullName when the catalog has them.
func LocalSignUpData(values FormValues) SignUpData {
	data := SignUpData{
		Email:                values.Get(FieldEmail),
		Username:             values.Get(FieldUsername),
		Password:             values.Get(FieldPassword),
		PasswordConfirmation: values.Get(FieldPasswordConfirmation),
	}

	_, hasFirst := values[FieldFirstName]
	_, hasSurname := values[FieldSurname]
	if hasFirst || hasSurname {
		data.FullName = &FullName{
			FirstName: values.Get(FieldFirstName),
			Surname:   values.Get(FieldSurname),
		}
	}
	return data
}

// IdentityCredential is what we read out of an identity-provider token.
// It only lives for the duration of one widget callback.
type IdentityCredential struct {
	EmailVerified bool     `json:"emailVerified"`
	FullName      FullName `json:"fullName"`
	Email         string   `json:"email"`
}

// GoogleSignUpData converts a decoded credential into a request body.
func GoogleSignUpData(cred IdentityCredential) SignUpData {
	verified := cred.EmailVerified
	name := cred.FullName
	return SignUpData{
		Email:         cred.Email,
		FullName:      &name,
		EmailVerified: &verified,
	}
}
