package validation

import (
	"errors"
	"fmt"
	"strings"
)

// MaxPhoneDigits is the number of digits a phone number holds.
const MaxPhoneDigits = 10

// PhoneRule selects how the phone number is validated on submit.
type PhoneRule string

const (
	// PhoneRuleExactTen requires exactly ten digits.
	PhoneRuleExactTen PhoneRule = "exact10"
	// PhoneRuleUpToTen accepts between one and ten digits.
	PhoneRuleUpToTen PhoneRule = "upto10"
)

// PhoneOverflow selects what happens when a phone edit carries more than
// MaxPhoneDigits digits.
type PhoneOverflow string

const (
	// PhoneOverflowReject ignores the edit entirely.
	PhoneOverflowReject PhoneOverflow = "reject"
	// PhoneOverflowTruncate keeps the first MaxPhoneDigits digits.
	PhoneOverflowTruncate PhoneOverflow = "truncate"
	// PhoneOverflowAllow stores every digit and leaves length checks to submit.
	PhoneOverflowAllow PhoneOverflow = "allow"
)

// FormErrorMode selects the aggregate message set when a submit fails.
type FormErrorMode string

const (
	// FormErrorFirst reports the first field message in priority order
	// (phone, first name, last name, email).
	FormErrorFirst FormErrorMode = "first"
	// FormErrorGeneric reports MsgFormGeneric.
	FormErrorGeneric FormErrorMode = "generic"
)

// Policy bundles the behaviour switches that differ between screen variants.
type Policy struct {
	Name          string        `json:"name" yaml:"name"`
	PhoneRule     PhoneRule     `json:"phone_rule" yaml:"phone_rule"`
	PhoneOverflow PhoneOverflow `json:"phone_overflow" yaml:"phone_overflow"`
	FormError     FormErrorMode `json:"form_error" yaml:"form_error"`
}

var (
	// PolicyCanonical is the primary screen: exactly ten digits, over-long
	// phone edits ignored, first failing message surfaced as the form error.
	PolicyCanonical = Policy{
		Name:          "canonical",
		PhoneRule:     PhoneRuleExactTen,
		PhoneOverflow: PhoneOverflowReject,
		FormError:     FormErrorFirst,
	}

	// PolicyLegacy is the duplicate screen: one to ten digits, phone edits
	// truncated, generic form error.
	PolicyLegacy = Policy{
		Name:          "legacy",
		PhoneRule:     PhoneRuleUpToTen,
		PhoneOverflow: PhoneOverflowTruncate,
		FormError:     FormErrorGeneric,
	}
)

var (
	// ErrUnknownPolicy is returned when a preset name is not recognised.
	ErrUnknownPolicy = errors.New("validation: unknown policy")
	// ErrInvalidPolicy is returned when a policy carries unsupported values.
	ErrInvalidPolicy = errors.New("validation: invalid policy")
)

// Presets lists the named policies in a stable order.
func Presets() []Policy {
	return []Policy{PolicyCanonical, PolicyLegacy}
}

// ParsePolicy resolves a preset by name. An empty name yields PolicyCanonical.
func ParsePolicy(name string) (Policy, error) {
	trimmed := strings.ToLower(strings.TrimSpace(name))
	if trimmed == "" {
		return PolicyCanonical, nil
	}
	for _, preset := range Presets() {
		if preset.Name == trimmed {
			return preset, nil
		}
	}
	return Policy{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// Normalize fills unset switches with the canonical values.
func (p Policy) Normalize() Policy {
	if p.PhoneRule == "" {
		p.PhoneRule = PolicyCanonical.PhoneRule
	}
	if p.PhoneOverflow == "" {
		p.PhoneOverflow = PolicyCanonical.PhoneOverflow
	}
	if p.FormError == "" {
		p.FormError = PolicyCanonical.FormError
	}
	if p.Name == "" {
		p.Name = p.matchPreset()
	}
	return p
}

// Validate reports unsupported switch values.
func (p Policy) Validate() error {
	switch p.PhoneRule {
	case PhoneRuleExactTen, PhoneRuleUpToTen:
	default:
		return fmt.Errorf("%w: phone rule %q", ErrInvalidPolicy, p.PhoneRule)
	}
	switch p.PhoneOverflow {
	case PhoneOverflowReject, PhoneOverflowTruncate, PhoneOverflowAllow:
	default:
		return fmt.Errorf("%w: phone overflow %q", ErrInvalidPolicy, p.PhoneOverflow)
	}
	switch p.FormError {
	case FormErrorFirst, FormErrorGeneric:
	default:
		return fmt.Errorf("%w: form error mode %q", ErrInvalidPolicy, p.FormError)
	}
	return nil
}

func (p Policy) matchPreset() string {
	for _, preset := range Presets() {
		if preset.PhoneRule == p.PhoneRule && preset.PhoneOverflow == p.PhoneOverflow && preset.FormError == p.FormError {
			return preset.Name
		}
	}
	return "custom"
}
