package models

// FormValues maps every catalog field to its current text.
// The key set is fixed when the values are created and never changes.
type FormValues map[FieldKey]string

// NewFormValues returns all-empty values for the catalog's fields.
func NewFormValues(c Catalog) FormValues {
	v := make(FormValues, len(c.fields))
	for _, f := range c.fields {
		v[f.ID] = ""
	}
	return v
}

// Get returns the value of a field, empty when the key is absent.
func (v FormValues) Get(key FieldKey) string {
	return v[key]
}

// Clone returns an independent copy, used to snapshot values on submit.
func (v FormValues) Clone() FormValues {
	out := make(FormValues, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Equal reports whether both value sets hold the same keys and text
func (v FormValues) Equal(other FormValues) bool {
	if len(v) != len(other) {
		return false
	}
	for k, val := range v {
		o, ok := other[k]
		if !ok || o != val {
			return false
		}
	}
	return true
}

// IsEmpty reports whether every field is empty.
func (v FormValues) IsEmpty() bool {
	for _, val := range v {
		if val != "" {
			return false
		}
	}
	return true
}

// FieldErrors maps a field to its single error message.
// A field without an entry is valid.
type FieldErrors map[FieldKey]string

// Has reports whether the field has an error
func (e FieldErrors) Has(key FieldKey) bool {
	_, ok := e[key]
	return ok
}

// Clone returns an independent copy.
func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for k, msg := range e {
		out[k] = msg
	}
	return out
}
