package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestCatalogOrder verifies field order is stable and matches the variant.
func TestCatalogOrder(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		want    []FieldKey
	}{
		{"username variant", UsernameCatalog(),
			[]FieldKey{FieldEmail, FieldUsername, FieldPassword, FieldPasswordConfirmation}},
		{"full-name variant", FullNameCatalog(),
			[]FieldKey{FieldEmail, FieldFirstName, FieldSurname, FieldPassword, FieldPasswordConfirmation}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := tt.catalog.Keys()
			second := tt.catalog.Keys()
			if diff := cmp.Diff(tt.want, first); diff != "" {
				t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("Keys() not stable across calls:\n%s", diff)
			}
		})
	}
}

// TestCatalogFieldsIsCopy ensures callers cannot mutate the shared catalog.
func TestCatalogFieldsIsCopy(t *testing.T) {
	fields := UsernameCatalog().Fields()
	fields[0].Label = "changed"

	f, ok := UsernameCatalog().Field(FieldEmail)
	if !ok {
		t.Fatal("expected email field")
	}
	if f.Label != "E-mail" {
		t.Errorf("catalog was mutated through Fields(): label = %q", f.Label)
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{"username", VariantUsername, false},
		{" FullName ", VariantFullName, false},
		{"", VariantFullName, false},
		{"nickname", "", true},
	}

	for _, tt := range tests {
		got, err := ParseVariant(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseVariant(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseVariant(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// TestFormValues covers emptiness, cloning and equality.
func TestFormValues(t *testing.T) {
	v := NewFormValues(UsernameCatalog())
	if !v.IsEmpty() {
		t.Fatal("new values should be empty")
	}
	if len(v) != 4 {
		t.Fatalf("expected one entry per field, got %d", len(v))
	}

	snapshot := v.Clone()
	v[FieldEmail] = "a@b.com"

	if snapshot.Get(FieldEmail) != "" {
		t.Error("Clone() shares storage with the original")
	}
	if v.Equal(snapshot) {
		t.Error("Equal() should report the changed value")
	}
	if !snapshot.Equal(NewFormValues(UsernameCatalog())) {
		t.Error("snapshot should still equal the initial values")
	}
}

// TestLocalSignUpData verifies the request shape for both variants.
func TestLocalSignUpData(t *testing.T) {
	t.Run("full name grouped", func(t *testing.T) {
		values := FormValues{
			FieldEmail:                "john@mail.com",
			FieldFirstName:            "John",
			FieldSurname:              "Doe Johnson",
			FieldPassword:             "secret123",
			FieldPasswordConfirmation: "secret123",
		}
		want := SignUpData{
			Email:                "john@mail.com",
			FullName:             &FullName{FirstName: "John", Surname: "Doe Johnson"},
			Password:             "secret123",
			PasswordConfirmation: "secret123",
		}
		if diff := cmp.Diff(want, LocalSignUpData(values)); diff != "" {
			t.Errorf("LocalSignUpData mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("username kept flat", func(t *testing.T) {
		values := FormValues{
			FieldEmail:                "a@b.com",
			FieldUsername:             "abcd",
			FieldPassword:             "secret12",
			FieldPasswordConfirmation: "secret12",
		}
		got := LocalSignUpData(values)
		if got.FullName != nil {
			t.Errorf("expected no fullName for username variant, got %+v", got.FullName)
		}
		if got.Username != "abcd" {
			t.Errorf("expected username abcd, got %q", got.Username)
		}
	})
}

// TestSignUpEncoding checks both wire encodings decode to the same body.
func TestSignUpEncoding(t *testing.T) {
	verified := true
	data := SignUpData{
		Email:         "jane@mail.com",
		FullName:      &FullName{FirstName: "Jane", Surname: "Roe"},
		EmailVerified: &verified,
	}

	for _, enc := range []Encoding{EncodingJSON, EncodingMsgPack} {
		t.Run(string(enc), func(t *testing.T) {
			body, err := EncodeSignUp(enc, data)
			if err != nil {
				t.Fatalf("EncodeSignUp() unexpected error: %v", err)
			}
			got, err := DecodeSignUp(enc, body)
			if err != nil {
				t.Fatalf("DecodeSignUp() unexpected error: %v", err)
			}
			if diff := cmp.Diff(data, got); diff != "" {
				t.Errorf("decoded body mismatch (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := ParseEncoding("xml"); err == nil {
		t.Error("ParseEncoding(xml) should fail")
	}
	if EncodingMsgPack.ContentType() != "application/msgpack" {
		t.Errorf("unexpected msgpack content type %q", EncodingMsgPack.ContentType())
	}
}
