package validation

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"thelab/models"
)

func validUsernameValues() models.FormValues {
	return models.FormValues{
		models.FieldEmail:                "a@b.com",
		models.FieldUsername:             "abcd",
		models.FieldPassword:             "secret12",
		models.FieldPasswordConfirmation: "secret12",
	}
}

func validFullNameValues() models.FormValues {
	return models.FormValues{
		models.FieldEmail:                "john.doe@mail.com",
		models.FieldFirstName:            "Johnny",
		models.FieldSurname:              "Doe Johnson",
		models.FieldPassword:             "secret_123#",
		models.FieldPasswordConfirmation: "secret_123#",
	}
}

// TestValidValuesPass covers the happy path of both variants.
func TestValidValuesPass(t *testing.T) {
	if errs := UsernameRules().Validate(validUsernameValues()); len(errs) != 0 {
		t.Errorf("expected no errors for username variant, got %v", errs)
	}
	if errs := FullNameRules().Validate(validFullNameValues()); len(errs) != 0 {
		t.Errorf("expected no errors for full-name variant, got %v", errs)
	}
}

// TestValidateDeterministic runs the same input twice and compares.
func TestValidateDeterministic(t *testing.T) {
	rs := FullNameRules()
	inputs := []models.FormValues{
		models.NewFormValues(models.FullNameCatalog()),
		validFullNameValues(),
		{models.FieldEmail: "nope", models.FieldFirstName: "J0hn", models.FieldPassword: "x"},
	}

	for _, in := range inputs {
		first := rs.Validate(in)
		second := rs.Validate(in)
		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("Validate not deterministic for %v:\n%s", in, diff)
		}
	}
}

// TestRequiredPrecedence ensures an empty field only reports "required".
func TestRequiredPrecedence(t *testing.T) {
	values := validUsernameValues()
	values[models.FieldPassword] = ""

	errs := UsernameRules().Validate(values)
	if got := errs[models.FieldPassword]; got != "Password is a required property" {
		t.Errorf("expected required error for password, got %q", got)
	}

	all := FullNameRules().Validate(models.NewFormValues(models.FullNameCatalog()))
	for key, msg := range all {
		if !strings.HasSuffix(msg, "is a required property") {
			t.Errorf("empty %s reported %q, want a required error", key, msg)
		}
	}
	if len(all) != 5 {
		t.Errorf("expected an error for every empty field, got %d", len(all))
	}
}

// TestPasswordConfirmation checks the cross-field equality law.
func TestPasswordConfirmation(t *testing.T) {
	passwords := []string{"secret12", "another-pass", "ümlaut-pässword"}

	for _, p := range passwords {
		t.Run(p, func(t *testing.T) {
			values := validFullNameValues()
			values[models.FieldPassword] = p
			values[models.FieldPasswordConfirmation] = p
			if errs := FullNameRules().Validate(values); errs.Has(models.FieldPasswordConfirmation) {
				t.Errorf("equal passwords reported %q", errs[models.FieldPasswordConfirmation])
			}

			values[models.FieldPasswordConfirmation] = p + "x"
			errs := FullNameRules().Validate(values)
			if errs[models.FieldPasswordConfirmation] != MsgConfirmMismatch {
				t.Errorf("expected mismatch error, got %q", errs[models.FieldPasswordConfirmation])
			}
		})
	}
}

// TestConfirmationOwnChecksFirst verifies length beats the equality check.
func TestConfirmationOwnChecksFirst(t *testing.T) {
	values := validFullNameValues()
	values[models.FieldPasswordConfirmation] = "short"

	errs := FullNameRules().Validate(values)
	want := "Password confirmation should have at least 8 chars"
	if errs[models.FieldPasswordConfirmation] != want {
		t.Errorf("got %q, want %q", errs[models.FieldPasswordConfirmation], want)
	}
}

// TestUsernameBounds checks exact bounds pass and bound +/- 1 fail.
func TestUsernameBounds(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantMsg string
	}{
		{"exactly min", UsernameMinLength, ""},
		{"exactly max", UsernameMaxLength, ""},
		{"min minus one", UsernameMinLength - 1, "Username should have at least 4 chars"},
		{"max plus one", UsernameMaxLength + 1, "Username should have max 100 chars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validUsernameValues()
			values[models.FieldUsername] = strings.Repeat("u", tt.length)

			msg, ok := UsernameRules().ValidateField(models.FieldUsername, values)
			if tt.wantMsg == "" && !ok {
				t.Errorf("length %d should pass, got %q", tt.length, msg)
			}
			if tt.wantMsg != "" && msg != tt.wantMsg {
				t.Errorf("length %d: got %q, want %q", tt.length, msg, tt.wantMsg)
			}
		})
	}
}

// TestNameRules covers length precedence over the letters-only pattern.
func TestNameRules(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantMsg string
	}{
		{"letters and spaces", "Mary Ann", ""},
		{"digits", "J0hnny", "Only letters are allowed for the first name"},
		{"too short with digit", "J0", "First name should have at least 5 chars"},
		{"too long", strings.Repeat("a", NameMaxLength+1), "First name should have max 45 chars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validFullNameValues()
			values[models.FieldFirstName] = tt.value
			msg, _ := FullNameRules().ValidateField(models.FieldFirstName, values)
			if msg != tt.wantMsg {
				t.Errorf("got %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestEmailRule(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"a@b.com", true},
		{"john.doe+tag@mail.example.org", true},
		{"a@b", false},
		{"missing-at.com", false},
		{"two@@b.com", false},
		{"spaces in@b.com", false},
		{"a@-b.com", false},
	}

	for _, tt := range tests {
		values := validUsernameValues()
		values[models.FieldEmail] = tt.email
		_, ok := UsernameRules().ValidateField(models.FieldEmail, values)
		if ok != tt.valid {
			t.Errorf("email %q valid = %v, want %v", tt.email, ok, tt.valid)
		}
	}
}

// TestRuleSetFieldAppends verifies repeated Field calls extend one chain.
func TestRuleSetFieldAppends(t *testing.T) {
	rs := NewRuleSet().
		Field(models.FieldUsername, Required("required")).
		Field(models.FieldUsername, Length(2, 3, "min", "max"))

	errs := rs.Validate(models.FormValues{models.FieldUsername: "abcd"})
	if diff := cmp.Diff(models.FieldErrors{models.FieldUsername: "max"}, errs); diff != "" {
		t.Errorf("unexpected errors (-want +got):\n%s", diff)
	}
}
