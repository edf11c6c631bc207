package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/contract"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/validation"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustContract loads the embedded registration contract.
func MustContract(t *testing.T) *contract.Contract {
	t.Helper()

	c, err := contract.Load(Context())
	if err != nil {
		t.Fatalf("load contract: %v", err)
	}
	return c
}

// ValidValues returns a set of values accepted by every policy preset.
func ValidValues() form.Values {
	return form.Values{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		PhoneNumber: "5551234567",
	}
}

// MustController returns a controller for policy that discards notices.
func MustController(t *testing.T, policy validation.Policy) *form.Controller {
	t.Helper()

	ctrl, err := form.NewController(form.WithPolicy(policy))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return ctrl
}

// FillValues dispatches one change per non-empty field of values.
func FillValues(t *testing.T, ctrl *form.Controller, values form.Values) form.State {
	t.Helper()

	state := ctrl.State()
	for _, field := range form.Fields() {
		text := values.Get(field)
		if text == "" {
			continue
		}
		next, err := ctrl.Change(Context(), field, text)
		if err != nil {
			t.Fatalf("change %s: %v", field, err)
		}
		state = next
	}
	return state
}

// MustDecodeJSON unmarshals data into a value of type T.
func MustDecodeJSON[T any](t *testing.T, data []byte) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("decode json: %v\n%s", err, data)
	}
	return out
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}

// CancelledContext returns a context that is already cancelled.
func CancelledContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(Context())
	cancel()
	return ctx, cancel
}
