package template

import (
	"io"
)

// TemplateRenderer is the seam HTML renderers rely on; the gotemplate
// package provides the pongo2 implementation.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
