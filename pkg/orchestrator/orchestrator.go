package orchestrator

import (
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-regform/pkg/contract"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/jsonview"
	"github.com/goliatone/go-regform/pkg/renderers/tui"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
	"github.com/goliatone/go-regform/pkg/validation"
)

const defaultRendererName = "vanilla"

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithContract injects a parsed field contract.
func WithContract(c *contract.Contract) Option {
	return func(o *Orchestrator) {
		o.contract = c
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request omits an
// explicit Renderer field.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithPolicy sets the policy reported in views.
func WithPolicy(policy validation.Policy) Option {
	return func(o *Orchestrator) {
		o.policy = policy
	}
}

// WithTheme supplies the renderer theme used when a request carries none.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(o *Orchestrator) {
		o.theme = cfg
	}
}

// WithTransformers registers transformers that run against the view before
// rendering, in order.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		o.transformers = append(o.transformers, transformers...)
	}
}

// Orchestrator coordinates view construction and rendering. Missing
// dependencies fall back to the embedded contract and the built-in renderers.
type Orchestrator struct {
	contract        *contract.Contract
	registry        *render.Registry
	defaultRenderer string
	policy          validation.Policy
	theme           *theme.RendererConfig
	transformers    []Transformer
}

// New constructs an Orchestrator applying any provided options.
func New(ctx context.Context, options ...Option) (*Orchestrator, error) {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		policy:          validation.PolicyCanonical,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}

	if o.contract == nil {
		c, err := contract.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: load contract: %w", err)
		}
		o.contract = c
	}
	if o.registry == nil {
		registry, err := DefaultRegistry(o.contract)
		if err != nil {
			return nil, err
		}
		o.registry = registry
	}
	return o, nil
}

// DefaultRegistry registers the HTML page, the indented JSON view document and
// the pretty terminal listing.
func DefaultRegistry(c *contract.Contract) (*render.Registry, error) {
	page, err := vanilla.New()
	if err != nil {
		return nil, fmt.Errorf("orchestrator: default renderer: %w", err)
	}
	text, err := tui.New(tui.WithContract(c), tui.WithOutputFormat(tui.OutputFormatPrettyText))
	if err != nil {
		return nil, fmt.Errorf("orchestrator: text renderer: %w", err)
	}

	registry := render.NewRegistry()
	for _, r := range []render.Renderer{page, jsonview.New(jsonview.WithIndent("  ")), text} {
		if err := registry.Register(r); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Request describes one rendering of a form state.
type Request struct {
	// State is the form state to display. The zero value renders an empty form.
	State form.State

	// Notice is shown above the form when set, typically after a successful
	// submission.
	Notice *form.Notice

	// Renderer names the renderer to use. If empty, the orchestrator falls back
	// to the configured default renderer.
	Renderer string

	// RenderOptions carries per-request instructions such as actions, hidden
	// inputs or host errors. A nil Theme is replaced by the configured theme.
	RenderOptions render.RenderOptions
}

// Contract returns the field contract in use.
func (o *Orchestrator) Contract() *contract.Contract {
	return o.contract
}

// View builds the renderer-facing view for req, applying transformers.
func (o *Orchestrator) View(ctx context.Context, req Request) (render.View, error) {
	view := render.NewView(o.contract, req.State, o.policy)
	if req.Notice != nil {
		view = view.WithNotice(*req.Notice)
	}
	for _, t := range o.transformers {
		if t == nil {
			continue
		}
		if err := t.Transform(ctx, &view); err != nil {
			return render.View{}, fmt.Errorf("orchestrator: transform view: %w", err)
		}
	}
	return view, nil
}

// Generate renders req and returns the output bytes.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	renderer, err := o.Renderer(req.Renderer)
	if err != nil {
		return nil, err
	}

	view, err := o.View(ctx, req)
	if err != nil {
		return nil, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil {
		opts.Theme = o.theme
	}

	output, err := renderer.Render(ctx, view, opts)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: render output: %w", err)
	}
	return output, nil
}

// Renderer resolves name against the registry. An empty name selects the
// default renderer, or the first registered one when the default is missing.
func (o *Orchestrator) Renderer(name string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	target := name
	if target == "" {
		target = o.defaultRenderer
	}

	if target != "" {
		renderer, err := o.registry.Get(target)
		if err == nil {
			return renderer, nil
		}
		if name != "" {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}

	renderer, err := o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}
