package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/goliatone/go-regform/pkg/validation"
)

// Notifier surfaces the success notice to the user.
type Notifier interface {
	Notify(ctx context.Context, notice Notice) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, notice Notice) error

// Notify calls fn.
func (fn NotifierFunc) Notify(ctx context.Context, notice Notice) error {
	return fn(ctx, notice)
}

// LogNotifier writes notices to a slog logger.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify logs the notice at info level.
func (n LogNotifier) Notify(ctx context.Context, notice Notice) error {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "form notice", "title", notice.Title, "message", notice.Message)
	return nil
}

// Option configures a Controller.
type Option func(*Controller)

// WithPolicy selects the validation policy.
func WithPolicy(policy validation.Policy) Option {
	return func(c *Controller) {
		c.policy = policy
	}
}

// WithMachine injects a prebuilt machine; it takes precedence over WithPolicy.
func WithMachine(m *Machine) Option {
	return func(c *Controller) {
		if m != nil {
			c.machine = m
		}
	}
}

// WithNotifier overrides the success notifier.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger sets the logger used for event tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Controller owns one form's state and serialises events against it.
type Controller struct {
	mu       sync.Mutex
	state    State
	policy   validation.Policy
	machine  *Machine
	notifier Notifier
	logger   *slog.Logger
}

// NewController builds a controller in the initial state.
func NewController(options ...Option) (*Controller, error) {
	c := &Controller{
		policy: validation.PolicyCanonical,
		logger: slog.Default(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	if c.machine == nil {
		m, err := NewMachine(c.policy)
		if err != nil {
			return nil, fmt.Errorf("form: build machine: %w", err)
		}
		c.machine = m
	}
	if c.notifier == nil {
		c.notifier = LogNotifier{Logger: c.logger}
	}
	return c, nil
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Policy reports the policy in effect.
func (c *Controller) Policy() validation.Policy {
	return c.machine.Policy()
}

// Dispatch applies msg and notifies on success. A Changed message for an
// unknown field returns ErrUnknownField and leaves the state untouched.
func (c *Controller) Dispatch(ctx context.Context, msg Msg) (State, Effect, error) {
	if msg == nil {
		return c.State(), Effect{}, errors.New("form: message is nil")
	}
	if ev, ok := msg.(Changed); ok && !ev.Field.Valid() {
		return c.State(), Effect{}, fmt.Errorf("%w: %q", ErrUnknownField, ev.Field)
	}

	c.mu.Lock()
	next, effect := c.machine.Update(c.state, msg)
	c.state = next
	c.mu.Unlock()

	c.logger.DebugContext(ctx, "form event", "event", fmt.Sprintf("%T", msg), "effect", effect.Kind.String())

	if effect.Kind == EffectSucceeded {
		if err := c.notifier.Notify(ctx, effect.Notice); err != nil {
			return next, effect, fmt.Errorf("form: notify: %w", err)
		}
	}
	return next, effect, nil
}

// Change dispatches a Changed message.
func (c *Controller) Change(ctx context.Context, field Field, text string) (State, error) {
	state, _, err := c.Dispatch(ctx, Changed{Field: field, Text: text})
	return state, err
}

// Submit dispatches a Submitted message.
func (c *Controller) Submit(ctx context.Context) (State, Effect, error) {
	return c.Dispatch(ctx, Submitted{})
}

// Reset dispatches a Reset message.
func (c *Controller) Reset(ctx context.Context) State {
	state, _, _ := c.Dispatch(ctx, Reset{})
	return state
}
