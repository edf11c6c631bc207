// Package regform exposes the registration form pipeline from the module root
// for callers that just want rendered output.
package regform

import (
	"context"
	"io/fs"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/orchestrator"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/renderers/vanilla"
)

// RenderOptions describes per-request overrides such as actions, hidden
// inputs or host-side errors.
type RenderOptions = render.RenderOptions

// EmbeddedTemplates exposes the built-in vanilla renderer templates so callers
// can reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(ctx context.Context, options ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	return orchestrator.New(ctx, options...)
}

// GenerateHTML renders state with the vanilla page renderer.
func GenerateHTML(ctx context.Context, state form.State, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	gen, err := orchestrator.New(ctx, options...)
	if err != nil {
		return nil, err
	}
	return gen.Generate(ctx, orchestrator.Request{
		State:         state,
		Renderer:      "vanilla",
		RenderOptions: opts,
	})
}
