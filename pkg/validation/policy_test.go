package validation

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParsePolicy(t *testing.T) {
	got, err := ParsePolicy(" Legacy ")
	if err != nil {
		t.Fatalf("parse legacy: %v", err)
	}
	if diff := cmp.Diff(PolicyLegacy, got); diff != "" {
		t.Fatalf("policy mismatch (-want +got):\n%s", diff)
	}

	got, err = ParsePolicy("")
	if err != nil {
		t.Fatalf("parse empty: %v", err)
	}
	if got.Name != PolicyCanonical.Name {
		t.Fatalf("expected canonical default, got %q", got.Name)
	}

	if _, err := ParsePolicy("mobile"); !errors.Is(err, ErrUnknownPolicy) {
		t.Fatalf("expected ErrUnknownPolicy, got %v", err)
	}
}

func TestPolicy_Normalize(t *testing.T) {
	got := Policy{FormError: FormErrorGeneric}.Normalize()
	want := Policy{
		Name:          "custom",
		PhoneRule:     PhoneRuleExactTen,
		PhoneOverflow: PhoneOverflowReject,
		FormError:     FormErrorGeneric,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("normalize mismatch (-want +got):\n%s", diff)
	}

	if name := (Policy{}).Normalize().Name; name != "canonical" {
		t.Fatalf("expected empty policy to match canonical preset, got %q", name)
	}
}

func TestPolicy_Validate(t *testing.T) {
	for _, preset := range Presets() {
		if err := preset.Validate(); err != nil {
			t.Fatalf("preset %s: %v", preset.Name, err)
		}
	}

	bad := PolicyCanonical
	bad.PhoneOverflow = "wrap"
	if err := bad.Validate(); !errors.Is(err, ErrInvalidPolicy) {
		t.Fatalf("expected ErrInvalidPolicy, got %v", err)
	}
}
