package form

import (
	"errors"
	"testing"
)

func TestParseField(t *testing.T) {
	cases := map[string]Field{
		"firstName":    FieldFirstName,
		"first_name":   FieldFirstName,
		"First-Name":   FieldFirstName,
		"last_name":    FieldLastName,
		" email ":      FieldEmail,
		"phone_number": FieldPhoneNumber,
		"phone":        FieldPhoneNumber,
	}
	for input, want := range cases {
		got, err := ParseField(input)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if got != want {
			t.Fatalf("parse %q: want %s, got %s", input, want, got)
		}
	}

	if _, err := ParseField("nickname"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestDigitsOnly(t *testing.T) {
	if got := DigitsOnly("(555) 010-9999 ext. 7"); got != "55501099997" {
		t.Fatalf("unexpected digits %q", got)
	}
	if got := DigitsOnly(""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
