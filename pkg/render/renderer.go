package render

import "context"

// Renderer turns a View into a byte representation (HTML, JSON, terminal
// session output).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view View, options RenderOptions) ([]byte, error)
}
