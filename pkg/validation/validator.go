package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	tagRequired      = "required"
	tagNotBlank      = "regform_notblank"
	tagEmail         = "regform_email"
	tagPhoneExactTen = "regform_phone_exact10"
	tagPhoneUpToTen  = "regform_phone_upto10"
)

var (
	emailPattern         = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	phoneExactTenPattern = regexp.MustCompile(`^[0-9]{10}$`)
	phoneUpToTenPattern  = regexp.MustCompile(`^[0-9]{1,10}$`)
)

// Validator applies the registration rules under a Policy. It is safe for
// concurrent use once constructed.
type Validator struct {
	policy Policy
	engine *validator.Validate
}

// New builds a Validator for the policy, registering the field rules on a
// dedicated validator engine.
func New(policy Policy) (*Validator, error) {
	policy = policy.Normalize()
	if err := policy.Validate(); err != nil {
		return nil, err
	}

	engine := validator.New()
	rules := map[string]validator.Func{
		tagNotBlank:      notBlank,
		tagEmail:         matches(emailPattern),
		tagPhoneExactTen: matches(phoneExactTenPattern),
		tagPhoneUpToTen:  matches(phoneUpToTenPattern),
	}
	for tag, fn := range rules {
		if err := engine.RegisterValidation(tag, fn); err != nil {
			return nil, fmt.Errorf("validation: register %s: %w", tag, err)
		}
	}

	return &Validator{policy: policy, engine: engine}, nil
}

// MustNew panics when the policy is invalid. Useful for init-time wiring.
func MustNew(policy Policy) *Validator {
	v, err := New(policy)
	if err != nil {
		panic(err)
	}
	return v
}

// Policy reports the normalised policy the validator runs under.
func (v *Validator) Policy() Policy {
	return v.policy
}

// FirstName requires non-blank text.
func (v *Validator) FirstName(s string) string {
	return v.check(s, tagNotBlank, MsgFirstNameRequired)
}

// LastName requires non-blank text.
func (v *Validator) LastName(s string) string {
	return v.check(s, tagNotBlank, MsgLastNameRequired)
}

// Email requires non-blank text shaped like an address.
func (v *Validator) Email(s string) string {
	if msg := v.check(s, tagNotBlank, MsgEmailRequired); msg != "" {
		return msg
	}
	return v.check(s, tagEmail, MsgEmailInvalid)
}

// PhoneNumber applies the policy's phone rule.
func (v *Validator) PhoneNumber(s string) string {
	if v.policy.PhoneRule == PhoneRuleUpToTen {
		if msg := v.check(s, tagNotBlank, MsgPhoneRequiredLower); msg != "" {
			return msg
		}
		return v.check(s, tagPhoneUpToTen, MsgPhoneInvalidFormat)
	}
	if msg := v.check(s, tagRequired, MsgPhoneRequired); msg != "" {
		return msg
	}
	return v.check(s, tagPhoneExactTen, MsgPhoneExactTen)
}

// All validates every field and returns the per-field messages.
func (v *Validator) All(in Input) Result {
	return Result{
		FirstName:   v.FirstName(in.FirstName),
		LastName:    v.LastName(in.LastName),
		Email:       v.Email(in.Email),
		PhoneNumber: v.PhoneNumber(in.PhoneNumber),
	}
}

// FormError returns the aggregate banner message for a failed result, or ""
// when the result is valid.
func (v *Validator) FormError(r Result) string {
	if r.Valid() {
		return ""
	}
	if v.policy.FormError == FormErrorGeneric {
		return MsgFormGeneric
	}
	for _, issue := range r.priority() {
		if issue.Message != "" {
			return issue.Message
		}
	}
	return MsgFormGeneric
}

func (v *Validator) check(value, tag, msg string) string {
	if err := v.engine.Var(value, tag); err != nil {
		return msg
	}
	return ""
}

func notBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func matches(pattern *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	}
}

var defaultValidator = MustNew(PolicyCanonical)

// ValidateFirstName checks a first name under PolicyCanonical.
func ValidateFirstName(s string) string { return defaultValidator.FirstName(s) }

// ValidateLastName checks a last name under PolicyCanonical.
func ValidateLastName(s string) string { return defaultValidator.LastName(s) }

// ValidateEmail checks an email address under PolicyCanonical.
func ValidateEmail(s string) string { return defaultValidator.Email(s) }

// ValidatePhoneNumber checks a phone number under PolicyCanonical.
func ValidatePhoneNumber(s string) string { return defaultValidator.PhoneNumber(s) }
