package form

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/validation"
)

func mustMachine(t *testing.T, policy validation.Policy) *Machine {
	t.Helper()
	m, err := NewMachine(policy)
	if err != nil {
		t.Fatalf("new machine: %v", err)
	}
	return m
}

func apply(m *Machine, s State, msgs ...Msg) (State, Effect) {
	var effect Effect
	for _, msg := range msgs {
		s, effect = m.Update(s, msg)
	}
	return s, effect
}

func validEdits() []Msg {
	return []Msg{
		Changed{Field: FieldFirstName, Text: "Ada"},
		Changed{Field: FieldLastName, Text: "Lovelace"},
		Changed{Field: FieldEmail, Text: "ada@example.com"},
		Changed{Field: FieldPhoneNumber, Text: "1234567890"},
	}
}

func TestUpdate_SubmitValidClearsEverything(t *testing.T) {
	m := mustMachine(t, validation.PolicyCanonical)

	state, _ := apply(m, State{}, validEdits()...)
	next, effect := m.Update(state, Submitted{})

	if !next.IsZero() {
		t.Fatalf("expected initial state after success, got %+v", next)
	}
	if effect.Kind != EffectSucceeded {
		t.Fatalf("expected success effect, got %s", effect.Kind)
	}
	if diff := cmp.Diff(SuccessNotice, effect.Notice); diff != "" {
		t.Fatalf("notice mismatch (-want +got):\n%s", diff)
	}
	want := Values{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", PhoneNumber: "1234567890"}
	if diff := cmp.Diff(want, effect.Submitted); diff != "" {
		t.Fatalf("submitted mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdate_SubmitMissingFirstName(t *testing.T) {
	m := mustMachine(t, validation.PolicyCanonical)

	edits := validEdits()[1:]
	state, _ := apply(m, State{}, edits...)
	next, effect := m.Update(state, Submitted{})

	if effect.Kind != EffectRejected {
		t.Fatalf("expected rejected effect, got %s", effect.Kind)
	}
	want := Errors{FirstName: validation.MsgFirstNameRequired, Form: validation.MsgFirstNameRequired}
	if diff := cmp.Diff(want, next.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
	if next.Values.LastName != "Lovelace" {
		t.Fatalf("values must survive a rejected submit, got %+v", next.Values)
	}
}

func TestUpdate_SubmitEmptyFormReportsPhoneFirst(t *testing.T) {
	m := mustMachine(t, validation.PolicyCanonical)

	next, _ := m.Update(State{}, Submitted{})
	want := Errors{
		FirstName:   validation.MsgFirstNameRequired,
		LastName:    validation.MsgLastNameRequired,
		Email:       validation.MsgEmailRequired,
		PhoneNumber: validation.MsgPhoneRequired,
		Form:        validation.MsgPhoneRequired,
	}
	if diff := cmp.Diff(want, next.Errors); diff != "" {
		t.Fatalf("errors mismatch (-want +got):\n%s", diff)
	}
}

func TestUpdate_LegacyPolicy(t *testing.T) {
	m := mustMachine(t, validation.PolicyLegacy)

	edits := validEdits()[:3]
	edits = append(edits, Changed{Field: FieldPhoneNumber, Text: "12345"})
	state, _ := apply(m, State{}, edits...)
	next, effect := m.Update(state, Submitted{})
	if effect.Kind != EffectSucceeded || !next.IsZero() {
		t.Fatalf("expected five digit phone to submit under legacy policy, got %s %+v", effect.Kind, next)
	}

	state, _ = apply(m, State{}, Changed{Field: FieldEmail, Text: "broken"})
	next, effect = m.Update(state, Submitted{})
	if effect.Kind != EffectRejected {
		t.Fatalf("expected rejection, got %s", effect.Kind)
	}
	if next.Errors.Form != validation.MsgFormGeneric {
		t.Fatalf("expected generic form error, got %q", next.Errors.Form)
	}
	if next.Errors.PhoneNumber != validation.MsgPhoneRequiredLower {
		t.Fatalf("expected legacy phone message, got %q", next.Errors.PhoneNumber)
	}
}

func TestUpdate_ChangeClearsOnlyThatField(t *testing.T) {
	m := mustMachine(t, validation.PolicyCanonical)

	rejected, _ := m.Update(State{}, Submitted{})
	next, effect := m.Update(rejected, Changed{Field: FieldEmail, Text: "a"})

	if effect.Kind != EffectNone {
		t.Fatalf("expected no effect for change, got %s", effect.Kind)
	}
	if next.Errors.Email != "" || next.Errors.Form != "" {
		t.Fatalf("expected email and form errors cleared, got %+v", next.Errors)
	}
	if next.Errors.FirstName == "" || next.Errors.LastName == "" || next.Errors.PhoneNumber == "" {
		t.Fatalf("other field errors must remain, got %+v", next.Errors)
	}
	if next.Values.Email != "a" {
		t.Fatalf("expected email stored, got %q", next.Values.Email)
	}
}

func TestUpdate_PhoneInputKeepsDigitsOnly(t *testing.T) {
	m := mustMachine(t, validation.PolicyCanonical)

	inputs := []string{"12a3", "(555) 123-4567", "+1 555", "abc", "٣٤٥", "12\t34"}
	for _, input := range inputs {
		next, _ := m.Update(State{}, Changed{Field: FieldPhoneNumber, Text: input})
		for _, r := range next.Values.PhoneNumber {
			if r < '0' || r > '9' {
				t.Fatalf("input %q stored non-digit %q", input, next.Values.PhoneNumber)
			}
		}
	}

	next, _ := m.Update(State{}, Changed{Field: FieldPhoneNumber, Text: "12a3"})
	if next.Values.PhoneNumber != "123" {
		t.Fatalf("expected 123, got %q", next.Values.PhoneNumber)
	}
}

func TestUpdate_PhoneOverflow(t *testing.T) {
	eleven := "12345678901"

	reject := mustMachine(t, validation.PolicyCanonical)
	start := State{
		Values: Values{PhoneNumber: "123"},
		Errors: Errors{PhoneNumber: validation.MsgPhoneExactTen, Form: validation.MsgPhoneExactTen},
	}
	next, effect := reject.Update(start, Changed{Field: FieldPhoneNumber, Text: eleven})
	if diff := cmp.Diff(start, next); diff != "" {
		t.Fatalf("reject overflow must leave state untouched (-want +got):\n%s", diff)
	}
	if effect.Kind != EffectIgnored {
		t.Fatalf("expected ignored effect for rejected edit, got %s", effect.Kind)
	}

	// Re-entering the stored value is accepted even though the state is unchanged.
	same := State{Values: Values{PhoneNumber: "123"}}
	next, effect = reject.Update(same, Changed{Field: FieldPhoneNumber, Text: "1-2-3"})
	if effect.Kind != EffectNone || next != same {
		t.Fatalf("expected accepted no-op edit, got %s %+v", effect.Kind, next)
	}

	truncate := mustMachine(t, validation.PolicyLegacy)
	next, effect = truncate.Update(State{}, Changed{Field: FieldPhoneNumber, Text: eleven})
	if next.Values.PhoneNumber != "1234567890" {
		t.Fatalf("expected truncation to ten digits, got %q", next.Values.PhoneNumber)
	}
	if effect.Kind != EffectNone {
		t.Fatalf("expected truncated edit to be accepted, got %s", effect.Kind)
	}

	allowPolicy := validation.PolicyCanonical
	allowPolicy.Name = ""
	allowPolicy.PhoneOverflow = validation.PhoneOverflowAllow
	allow := mustMachine(t, allowPolicy)
	next, _ = allow.Update(State{}, Changed{Field: FieldPhoneNumber, Text: eleven})
	if next.Values.PhoneNumber != eleven {
		t.Fatalf("expected all digits kept, got %q", next.Values.PhoneNumber)
	}
	next, _ = allow.Update(next, Submitted{})
	if next.Errors.PhoneNumber != validation.MsgPhoneExactTen {
		t.Fatalf("expected length error at submit, got %q", next.Errors.PhoneNumber)
	}
}

func TestUpdate_ResetReturnsInitialState(t *testing.T) {
	m := mustMachine(t, validation.PolicyCanonical)

	sequences := [][]Msg{
		validEdits(),
		append(validEdits()[:2], Submitted{}),
		{Submitted{}, Changed{Field: FieldEmail, Text: "x"}, Submitted{}},
		{Changed{Field: FieldPhoneNumber, Text: strings.Repeat("9", 12)}},
	}
	for i, seq := range sequences {
		state, _ := apply(m, State{}, seq...)
		next, effect := m.Update(state, Reset{})
		if !next.IsZero() {
			t.Fatalf("sequence %d: expected initial state after reset, got %+v", i, next)
		}
		if effect.Kind != EffectReset {
			t.Fatalf("sequence %d: expected reset effect, got %s", i, effect.Kind)
		}
	}
}

func TestUpdate_UnknownFieldIgnored(t *testing.T) {
	m := mustMachine(t, validation.PolicyCanonical)
	start := State{Values: Values{Email: "a@b.com"}}
	next, effect := m.Update(start, Changed{Field: "nickname", Text: "x"})
	if diff := cmp.Diff(start, next); diff != "" {
		t.Fatalf("state changed (-want +got):\n%s", diff)
	}
	if effect.Kind != EffectIgnored {
		t.Fatalf("expected ignored effect, got %s", effect.Kind)
	}
}
