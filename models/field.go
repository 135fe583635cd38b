package models

// FieldKey names one input slot of the registration form.
// Keys double as HTML input names and JSON keys on the wire.
type FieldKey string

const (
	FieldEmail                FieldKey = "email"
	FieldUsername             FieldKey = "username"
	FieldFirstName            FieldKey = "firstName"
	FieldSurname              FieldKey = "surname"
	FieldPassword             FieldKey = "password"
	FieldPasswordConfirmation FieldKey = "passwordConfirmation"
)

// FieldKind tells a front end how to render the input.
type FieldKind string

const (
	KindText   FieldKind = "text"
	KindEmail  FieldKind = "email"
	KindSecret FieldKind = "password"
)

// FieldDescriptor is the static description of one form field.
// Descriptors are created once by a Catalog and shared read-only.
type FieldDescriptor struct {
	ID          FieldKey  `json:"id"`
	Label       string    `json:"label"`
	Placeholder string    `json:"placeholder"`
	Kind        FieldKind `json:"kind"`
}

// IsSecret reports whether the field value must be masked and kept out of logs.
func (f FieldDescriptor) IsSecret() bool {
	return f.Kind == KindSecret
}

// InputID returns the DOM id used for the field's input element
func (f FieldDescriptor) InputID() string {
	return string(f.ID) + "--input"
}
