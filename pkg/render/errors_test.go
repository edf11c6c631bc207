package render_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
)

func TestMapErrorPayload(t *testing.T) {
	payload := map[string][]string{
		"/body/firstName":       {"First name is taken"},
		"email":                 {"Email bounced", " Email bounced "},
		"$.data.phone_number":   {"Carrier rejected number"},
		"registration.lastName": {"Too long"},
		"non_field_errors":      {"Try again later"},
		"owner.email":           {"Nested paths are form level"},
		"":                      {"  "},
	}

	mapped := render.MapErrorPayload(payload)

	wantFields := map[form.Field][]string{
		form.FieldFirstName:   {"First name is taken"},
		form.FieldLastName:    {"Too long"},
		form.FieldEmail:       {"Email bounced"},
		form.FieldPhoneNumber: {"Carrier rejected number"},
	}
	if diff := cmp.Diff(wantFields, mapped.Fields); diff != "" {
		t.Fatalf("field errors mismatch (-want +got):\n%s", diff)
	}

	wantForm := []string{"Try again later", "Nested paths are form level"}
	if diff := cmp.Diff(wantForm, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestMapErrorPayload_Empty(t *testing.T) {
	mapped := render.MapErrorPayload(nil)
	if mapped.Fields != nil || mapped.Form != nil {
		t.Fatalf("expected empty mapping, got %+v", mapped)
	}
}

func TestErrorPayload_RoundTrip(t *testing.T) {
	errs := form.Errors{
		Email:       "Invalid email format.",
		PhoneNumber: "Phone Number is required.",
		Form:        "Phone Number is required.",
	}
	payload := render.ErrorPayload(errs)

	want := map[string][]string{
		"email":       {"Invalid email format."},
		"phoneNumber": {"Phone Number is required."},
		"form":        {"Phone Number is required."},
	}
	if diff := cmp.Diff(want, payload); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}

	mapped := render.MapErrorPayload(payload)
	if got := mapped.Fields[form.FieldEmail]; len(got) != 1 || got[0] != errs.Email {
		t.Fatalf("email not mapped back: %+v", mapped.Fields)
	}
	if diff := cmp.Diff([]string{errs.Form}, mapped.Form); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}

	if render.ErrorPayload(form.Errors{}) != nil {
		t.Fatalf("expected nil payload for no errors")
	}
}

func TestMergeFormErrors(t *testing.T) {
	merged := render.MergeFormErrors([]string{" First ", "Second"}, "Second", "third", "  ")
	want := []string{"First", "Second", "third"}

	if diff := cmp.Diff(want, merged); diff != "" {
		t.Fatalf("merged form errors mismatch (-want +got):\n%s", diff)
	}
}
