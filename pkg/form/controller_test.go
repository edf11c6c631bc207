package form

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-regform/pkg/validation"
)

type recordingNotifier struct {
	notices []Notice
	err     error
}

func (r *recordingNotifier) Notify(_ context.Context, notice Notice) error {
	r.notices = append(r.notices, notice)
	return r.err
}

func TestController_SubmitNotifiesOnSuccess(t *testing.T) {
	notifier := &recordingNotifier{}
	c, err := NewController(WithNotifier(notifier))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	ctx := context.Background()

	for _, msg := range validEdits() {
		if _, _, err := c.Dispatch(ctx, msg); err != nil {
			t.Fatalf("dispatch %T: %v", msg, err)
		}
	}

	state, effect, err := c.Submit(ctx)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if effect.Kind != EffectSucceeded || !state.IsZero() {
		t.Fatalf("expected success with cleared state, got %s %+v", effect.Kind, state)
	}
	if len(notifier.notices) != 1 || notifier.notices[0] != SuccessNotice {
		t.Fatalf("expected one success notice, got %+v", notifier.notices)
	}
	if !c.State().IsZero() {
		t.Fatalf("controller state not cleared")
	}
}

func TestController_RejectedSubmitDoesNotNotify(t *testing.T) {
	notifier := &recordingNotifier{}
	c, err := NewController(WithNotifier(notifier))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}

	state, effect, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if effect.Kind != EffectRejected || state.Errors.Form == "" {
		t.Fatalf("expected rejection with form error, got %s %+v", effect.Kind, state.Errors)
	}
	if len(notifier.notices) != 0 {
		t.Fatalf("expected no notices, got %+v", notifier.notices)
	}
}

func TestController_NotifierError(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("display gone")}
	c, err := NewController(WithNotifier(notifier))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	ctx := context.Background()
	for _, msg := range validEdits() {
		_, _, _ = c.Dispatch(ctx, msg)
	}

	_, effect, err := c.Submit(ctx)
	if err == nil {
		t.Fatalf("expected notifier error")
	}
	if effect.Kind != EffectSucceeded {
		t.Fatalf("submission itself must still succeed, got %s", effect.Kind)
	}
}

func TestController_UnknownField(t *testing.T) {
	c, err := NewController()
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	if _, err := c.Change(context.Background(), Field("age"), "42"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestController_ResetAfterEdits(t *testing.T) {
	c, err := NewController(WithPolicy(validation.PolicyLegacy))
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	ctx := context.Background()
	if _, err := c.Change(ctx, FieldEmail, "nope"); err != nil {
		t.Fatalf("change: %v", err)
	}
	if _, _, err := c.Submit(ctx); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if state := c.Reset(ctx); !state.IsZero() {
		t.Fatalf("expected initial state, got %+v", state)
	}
	if c.Policy().Name != validation.PolicyLegacy.Name {
		t.Fatalf("expected legacy policy, got %q", c.Policy().Name)
	}
}

func TestController_InvalidPolicy(t *testing.T) {
	_, err := NewController(WithPolicy(validation.Policy{FormError: "loud"}))
	if !errors.Is(err, validation.ErrInvalidPolicy) {
		t.Fatalf("expected ErrInvalidPolicy, got %v", err)
	}
}
