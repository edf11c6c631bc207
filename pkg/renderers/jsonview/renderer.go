// Package jsonview renders the registration view as a JSON document for API
// clients and the WebSocket channel.
package jsonview

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-regform/pkg/render"
)

// Document is the payload written by the renderer.
type Document struct {
	View   render.View          `json:"view"`
	Hidden []render.HiddenField `json:"hidden,omitempty"`
	Action string               `json:"action,omitempty"`
	Reset  string               `json:"reset,omitempty"`
	Live   string               `json:"live,omitempty"`
}

type Option func(*Renderer)

// WithIndent pretty-prints output using the given indent string.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// Renderer implements render.Renderer with encoding/json.
type Renderer struct {
	indent string
}

func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

func (r *Renderer) Render(ctx context.Context, view render.View, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := NewDocument(view, opts)

	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(doc, "", r.indent)
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, fmt.Errorf("jsonview: encode view: %w", err)
	}
	return out, nil
}

// NewDocument applies option-level errors and collects the hidden fields.
func NewDocument(view render.View, opts render.RenderOptions) Document {
	doc := Document{
		View:   render.Prepare(view, opts),
		Action: opts.Action,
		Reset:  opts.ResetAction,
		Live:   opts.LiveURL,
	}
	if hidden := render.SortedHiddenFields(opts.Hidden); len(hidden) > 0 {
		doc.Hidden = hidden
	}
	return doc
}
