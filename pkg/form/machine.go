package form

import (
	"strings"
	"unicode"

	"github.com/goliatone/go-regform/pkg/validation"
)

// Machine applies messages to states under a validation policy.
type Machine struct {
	validator *validation.Validator
}

// NewMachine builds a machine for the policy.
func NewMachine(policy validation.Policy) (*Machine, error) {
	v, err := validation.New(policy)
	if err != nil {
		return nil, err
	}
	return &Machine{validator: v}, nil
}

// NewMachineWithValidator reuses an existing validator.
func NewMachineWithValidator(v *validation.Validator) *Machine {
	if v == nil {
		v = validation.MustNew(validation.PolicyCanonical)
	}
	return &Machine{validator: v}
}

// Policy reports the policy the machine validates with.
func (m *Machine) Policy() validation.Policy {
	return m.validator.Policy()
}

// Validator exposes the underlying validator.
func (m *Machine) Validator() *validation.Validator {
	return m.validator
}

// Update applies msg to s. It never mutates shared data; the returned state is
// an independent value.
func (m *Machine) Update(s State, msg Msg) (State, Effect) {
	switch ev := msg.(type) {
	case Changed:
		next, ok := m.change(s, ev)
		if !ok {
			return s, Effect{Kind: EffectIgnored}
		}
		return next, Effect{}
	case Submitted:
		return m.submit(s)
	case Reset:
		return State{}, Effect{Kind: EffectReset}
	default:
		return s, Effect{}
	}
}

func (m *Machine) change(s State, ev Changed) (State, bool) {
	if !ev.Field.Valid() {
		return s, false
	}
	text := ev.Text
	if ev.Field == FieldPhoneNumber {
		var ok bool
		text, ok = m.phoneInput(text)
		if !ok {
			return s, false
		}
	}
	s.Values = s.Values.With(ev.Field, text)
	s.Errors = s.Errors.Clear(ev.Field)
	return s, true
}

// phoneInput strips non-digits and applies the overflow policy. The second
// result is false when the edit must be ignored.
func (m *Machine) phoneInput(text string) (string, bool) {
	digits := DigitsOnly(text)
	if len(digits) <= validation.MaxPhoneDigits {
		return digits, true
	}
	switch m.Policy().PhoneOverflow {
	case validation.PhoneOverflowTruncate:
		return digits[:validation.MaxPhoneDigits], true
	case validation.PhoneOverflowAllow:
		return digits, true
	default:
		return "", false
	}
}

func (m *Machine) submit(s State) (State, Effect) {
	result := m.validator.All(s.Values.input())
	s.Errors = errorsFromResult(result)

	if result.Valid() && m.lengthAccepted(s.Values.PhoneNumber) {
		submitted := s.Values
		return State{}, Effect{
			Kind:      EffectSucceeded,
			Notice:    SuccessNotice,
			Submitted: submitted,
		}
	}

	s.Errors.Form = m.validator.FormError(result)
	if s.Errors.Form == "" {
		s.Errors.Form = validation.MsgFormGeneric
	}
	return s, Effect{Kind: EffectRejected}
}

func (m *Machine) lengthAccepted(phone string) bool {
	if m.Policy().PhoneRule != validation.PhoneRuleExactTen {
		return true
	}
	return len(phone) == validation.MaxPhoneDigits
}

// DigitsOnly drops every character that is not an ASCII digit.
func DigitsOnly(text string) string {
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return -1
		}
		return r
	}, text)
}
