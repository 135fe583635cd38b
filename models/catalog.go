package models

import (
	"strings"

	"github.com/rohanthewiz/serr"
)

// Variant selects which field layout the registration form uses.
// The username variant collects a single handle, the full-name variant
// collects first name and surname separately.
type Variant string

const (
	VariantUsername Variant = "username"
	VariantFullName Variant = "fullname"
)

// ParseVariant converts a config value into a Variant.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantUsername:
		return VariantUsername, nil
	case VariantFullName, "":
		return VariantFullName, nil
	}
	return "", serr.New("unknown form variant " + s + ", expected username or fullname")
}

// Catalog is the ordered, immutable list of fields a form collects.
// The order drives both render order and tab order.
type Catalog struct {
	variant Variant
	fields  []FieldDescriptor
}

var usernameCatalog = Catalog{
	variant: VariantUsername,
	fields: []FieldDescriptor{
		{ID: FieldEmail, Label: "E-mail", Placeholder: "john.doe@mail.com", Kind: KindEmail},
		{ID: FieldUsername, Label: "Username", Placeholder: "john_doe", Kind: KindText},
		{ID: FieldPassword, Label: "Password", Placeholder: "super_secret#123", Kind: KindSecret},
		{ID: FieldPasswordConfirmation, Label: "Password confirmation", Placeholder: "super_secret#123", Kind: KindSecret},
	},
}

var fullNameCatalog = Catalog{
	variant: VariantFullName,
	fields: []FieldDescriptor{
		{ID: FieldEmail, Label: "E-mail", Placeholder: "john.doe@mail.com", Kind: KindEmail},
		{ID: FieldFirstName, Label: "First name", Placeholder: "John", Kind: KindText},
		{ID: FieldSurname, Label: "Surname", Placeholder: "Doe Johnson", Kind: KindText},
		{ID: FieldPassword, Label: "Password", Placeholder: "secret_123#", Kind: KindSecret},
		{ID: FieldPasswordConfirmation, Label: "Password confirmation", Placeholder: "secret_123#", Kind: KindSecret},
	},
}

// CatalogFor returns the catalog of the given variant.
// Unknown variants fall back to the full-name layout.
func CatalogFor(v Variant) Catalog {
	if v == VariantUsername {
		return usernameCatalog
	}
	return fullNameCatalog
}

// UsernameCatalog is email, username, password, password confirmation.
func UsernameCatalog() Catalog { return usernameCatalog }

// FullNameCatalog is email, first name, surname, password, password confirmation.
func FullNameCatalog() Catalog { return fullNameCatalog }

// Variant returns the layout this catalog describes
func (c Catalog) Variant() Variant { return c.variant }

// Fields returns a copy of the descriptors in declaration order.
func (c Catalog) Fields() []FieldDescriptor {
	out := make([]FieldDescriptor, len(c.fields))
	copy(out, c.fields)
	return out
}

// Keys returns the field keys in declaration order.
func (c Catalog) Keys() []FieldKey {
	keys := make([]FieldKey, len(c.fields))
	for i, f := range c.fields {
		keys[i] = f.ID
	}
	return keys
}

// Field looks up a descriptor by key.
func (c Catalog) Field(key FieldKey) (FieldDescriptor, bool) {
	for _, f := range c.fields {
		if f.ID == key {
			return f, true
		}
	}
	return FieldDescriptor{}, false
}

// Has reports whether the catalog declares the key
func (c Catalog) Has(key FieldKey) bool {
	_, ok := c.Field(key)
	return ok
}
