package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
)

// Transformer mutates a View before it reaches the renderer.
type Transformer interface {
	Transform(ctx context.Context, view *render.View) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, view *render.View) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, view *render.View) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, view)
}

// JSONPresetTransformer applies declarative copy overrides loaded from JSON:
//
//	{
//	  "title": "Join the list",
//	  "fields": {
//	    "phone": {"label": "Mobile", "placeholder": "10 digits"}
//	  }
//	}
//
// Field keys accept any spelling form.ParseField understands.
type JSONPresetTransformer struct {
	document jsonTransformDocument
}

type jsonTransformDocument struct {
	Title  string                    `json:"title"`
	Fields map[string]jsonFieldPatch `json:"fields"`
}

type jsonFieldPatch struct {
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
}

// NewJSONPresetTransformer constructs a transformer from raw JSON bytes.
func NewJSONPresetTransformer(data []byte) (*JSONPresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("json preset transformer: document is empty")
	}
	var document jsonTransformDocument
	if err := json.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("json preset transformer: parse document: %w", err)
	}
	for key := range document.Fields {
		if _, err := form.ParseField(key); err != nil {
			return nil, fmt.Errorf("json preset transformer: %w", err)
		}
	}
	return &JSONPresetTransformer{document: document}, nil
}

// NewJSONPresetTransformerFromFS loads a JSON transformer document from the
// provided filesystem path.
func NewJSONPresetTransformerFromFS(fsys fs.FS, path string) (*JSONPresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("json preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("json preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("json preset transformer: read %s: %w", path, err)
	}
	return NewJSONPresetTransformer(data)
}

// Transform applies the declarative patches onto the supplied view.
func (t *JSONPresetTransformer) Transform(ctx context.Context, view *render.View) error {
	if view == nil {
		return errors.New("json preset transformer: view is nil")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if title := strings.TrimSpace(t.document.Title); title != "" {
		view.Title = title
	}
	if len(t.document.Fields) == 0 {
		return nil
	}

	fields := make([]render.FieldView, len(view.Fields))
	copy(fields, view.Fields)
	for key, patch := range t.document.Fields {
		field, _ := form.ParseField(key)
		for i := range fields {
			if fields[i].Field != field {
				continue
			}
			if patch.Label != "" {
				fields[i].Label = patch.Label
			}
			if patch.Placeholder != "" {
				fields[i].Placeholder = patch.Placeholder
			}
		}
	}
	view.Fields = fields
	return nil
}
