package validation

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateNames(t *testing.T) {
	for _, name := range []string{"Ada", "lovelace", "X", "Jean Luc"} {
		if got := ValidateFirstName(name); got != "" {
			t.Fatalf("first name %q: expected valid, got %q", name, got)
		}
		if got := ValidateLastName(name); got != "" {
			t.Fatalf("last name %q: expected valid, got %q", name, got)
		}
	}

	for _, blank := range []string{"", "   ", "\t\n"} {
		if got := ValidateFirstName(blank); got != MsgFirstNameRequired {
			t.Fatalf("first name %q: want %q, got %q", blank, MsgFirstNameRequired, got)
		}
		if got := ValidateLastName(blank); got != MsgLastNameRequired {
			t.Fatalf("last name %q: want %q, got %q", blank, MsgLastNameRequired, got)
		}
	}
}

func TestValidateEmail(t *testing.T) {
	cases := map[string]string{
		"":                      MsgEmailRequired,
		"  ":                    MsgEmailRequired,
		"a@b.com":               "",
		"first.last@mail.co.uk": "",
		"dash-name@my-host.io":  "",
		"a@b":                   MsgEmailInvalid,
		"a@b.c":                 MsgEmailInvalid,
		"a@b.comma":             MsgEmailInvalid,
		"@b.com":                MsgEmailInvalid,
		"a b@c.com":             MsgEmailInvalid,
		"a..b@c.com":            MsgEmailInvalid,
		" a@b.com":              MsgEmailInvalid,
	}
	for input, want := range cases {
		if got := ValidateEmail(input); got != want {
			t.Errorf("ValidateEmail(%q): want %q, got %q", input, want, got)
		}
	}
}

func TestValidatePhoneNumber_ExactTen(t *testing.T) {
	cases := map[string]string{
		"1234567890":  "",
		"":            MsgPhoneRequired,
		"12345":       MsgPhoneExactTen,
		"abc":         MsgPhoneExactTen,
		"12345678901": MsgPhoneExactTen,
		"abcdefghij":  MsgPhoneExactTen,
		"          ":  MsgPhoneExactTen,
	}
	for input, want := range cases {
		if got := ValidatePhoneNumber(input); got != want {
			t.Errorf("ValidatePhoneNumber(%q): want %q, got %q", input, want, got)
		}
	}
}

func TestValidatePhoneNumber_UpToTen(t *testing.T) {
	v := MustNew(PolicyLegacy)
	cases := map[string]string{
		"1234567890":  "",
		"12345":       "",
		"1":           "",
		"":            MsgPhoneRequiredLower,
		"   ":         MsgPhoneRequiredLower,
		"abc":         MsgPhoneInvalidFormat,
		"12345678901": MsgPhoneInvalidFormat,
		"123-456":     MsgPhoneInvalidFormat,
	}
	for input, want := range cases {
		if got := v.PhoneNumber(input); got != want {
			t.Errorf("PhoneNumber(%q): want %q, got %q", input, want, got)
		}
	}
}

func TestValidator_All(t *testing.T) {
	v := MustNew(PolicyCanonical)

	result := v.All(Input{FirstName: "", LastName: "Lovelace", Email: "ada@example.com", PhoneNumber: "1234567890"})
	want := Result{FirstName: MsgFirstNameRequired}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
	if result.Valid() {
		t.Fatalf("expected invalid result")
	}

	wantIssues := []Issue{{Field: "firstName", Message: MsgFirstNameRequired}}
	if diff := cmp.Diff(wantIssues, result.Issues()); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}

	valid := v.All(Input{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", PhoneNumber: "1234567890"})
	if !valid.Valid() || valid.Issues() != nil {
		t.Fatalf("expected valid result, got %+v", valid)
	}
}

func TestValidator_FormErrorPriority(t *testing.T) {
	v := MustNew(PolicyCanonical)

	all := v.All(Input{})
	if got := v.FormError(all); got != MsgPhoneRequired {
		t.Fatalf("expected phone message first, got %q", got)
	}

	namesOnly := Result{LastName: MsgLastNameRequired, Email: MsgEmailInvalid}
	if got := v.FormError(namesOnly); got != MsgLastNameRequired {
		t.Fatalf("expected last name message, got %q", got)
	}

	if got := v.FormError(Result{}); got != "" {
		t.Fatalf("expected no form error for valid result, got %q", got)
	}
}

func TestValidator_FormErrorGeneric(t *testing.T) {
	v := MustNew(PolicyLegacy)
	if got := v.FormError(Result{Email: MsgEmailInvalid}); got != MsgFormGeneric {
		t.Fatalf("expected generic message, got %q", got)
	}
}

func TestNew_RejectsInvalidPolicy(t *testing.T) {
	_, err := New(Policy{PhoneRule: "eleven"})
	if err == nil || !strings.Contains(err.Error(), "phone rule") {
		t.Fatalf("expected phone rule error, got %v", err)
	}
}
