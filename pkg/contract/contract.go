// Package contract loads the registration payload description. The embedded
// OpenAPI document is the single source for labels, placeholders and input
// hints used by every renderer, and it is served verbatim to API clients.
package contract

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-regform/pkg/form"
)

//go:embed registration.yaml
var registrationDocument []byte

const (
	// OperationID names the submit operation in the document.
	OperationID = "createRegistration"

	formMediaType = "application/x-www-form-urlencoded"
	jsonMediaType = "application/json"

	extPlaceholder  = "x-placeholder"
	extAutocomplete = "x-autocomplete"
	extInputMode    = "x-inputmode"
	extFormTitle    = "x-form-title"
)

var (
	// ErrOperationMissing is returned when the document lacks OperationID.
	ErrOperationMissing = errors.New("contract: operation not found")
	// ErrFieldMissing is returned when a registration field has no schema.
	ErrFieldMissing = errors.New("contract: field not described")
)

// FieldSpec describes how one input is presented.
type FieldSpec struct {
	Field        form.Field `json:"field"`
	Label        string     `json:"label"`
	Placeholder  string     `json:"placeholder,omitempty"`
	Autocomplete string     `json:"autocomplete,omitempty"`
	InputMode    string     `json:"inputMode,omitempty"`
	MaxLength    int        `json:"maxLength,omitempty"`
	Required     bool       `json:"required"`
}

// Contract is the parsed registration description.
type Contract struct {
	title  string
	path   string
	fields []FieldSpec
	raw    []byte
}

// Document returns the embedded OpenAPI document.
func Document() []byte {
	out := make([]byte, len(registrationDocument))
	copy(out, registrationDocument)
	return out
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Contract, error) {
	return Parse(ctx, registrationDocument)
}

// MustLoad panics when the embedded document is unusable.
func MustLoad() *Contract {
	c, err := Load(context.Background())
	if err != nil {
		panic(err)
	}
	return c
}

// Parse builds a Contract from an OpenAPI document.
func Parse(ctx context.Context, raw []byte) (*Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("contract: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("contract: validate: %w", err)
	}

	path, op := findOperation(doc, OperationID)
	if op == nil {
		return nil, fmt.Errorf("%w: %s", ErrOperationMissing, OperationID)
	}

	schema := requestSchema(op)
	if schema == nil {
		return nil, fmt.Errorf("contract: operation %s has no request schema", OperationID)
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	fields := make([]FieldSpec, 0, len(form.Fields()))
	for _, field := range form.Fields() {
		ref, ok := schema.Properties[field.String()]
		if !ok || ref == nil || ref.Value == nil {
			return nil, fmt.Errorf("%w: %s", ErrFieldMissing, field)
		}
		fields = append(fields, convertProperty(field, ref.Value, required[field.String()]))
	}

	title := extensionString(op.Extensions, extFormTitle)
	if title == "" && doc.Info != nil {
		title = doc.Info.Title
	}

	return &Contract{
		title:  title,
		path:   path,
		fields: fields,
		raw:    append([]byte(nil), raw...),
	}, nil
}

// Title is the form heading.
func (c *Contract) Title() string {
	return c.title
}

// Path is the submit path declared for the operation.
func (c *Contract) Path() string {
	return c.path
}

// Fields returns the field specs in display order.
func (c *Contract) Fields() []FieldSpec {
	return append([]FieldSpec(nil), c.fields...)
}

// Field returns the spec for f.
func (c *Contract) Field(f form.Field) (FieldSpec, bool) {
	for _, spec := range c.fields {
		if spec.Field == f {
			return spec, true
		}
	}
	return FieldSpec{}, false
}

// Raw returns the source document.
func (c *Contract) Raw() []byte {
	return append([]byte(nil), c.raw...)
}

func findOperation(doc *openapi3.T, operationID string) (string, *openapi3.Operation) {
	if doc.Paths == nil {
		return "", nil
	}
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return path, op
			}
		}
	}
	return "", nil
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range []string{formMediaType, jsonMediaType} {
		media := content.Get(mediaType)
		if media != nil && media.Schema != nil && media.Schema.Value != nil {
			return media.Schema.Value
		}
	}
	return nil
}

func convertProperty(field form.Field, schema *openapi3.Schema, required bool) FieldSpec {
	spec := FieldSpec{
		Field:        field,
		Label:        strings.TrimSpace(schema.Title),
		Placeholder:  extensionString(schema.Extensions, extPlaceholder),
		Autocomplete: extensionString(schema.Extensions, extAutocomplete),
		InputMode:    extensionString(schema.Extensions, extInputMode),
		Required:     required,
	}
	if spec.Label == "" {
		spec.Label = field.String()
	}
	if schema.MaxLength != nil {
		spec.MaxLength = int(*schema.MaxLength)
	}
	return spec
}

func extensionString(extensions map[string]any, key string) string {
	value, ok := extensions[key]
	if !ok || value == nil {
		return ""
	}
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case json.RawMessage:
		var out string
		if err := json.Unmarshal(typed, &out); err == nil {
			return strings.TrimSpace(out)
		}
		return ""
	default:
		return strings.TrimSpace(fmt.Sprint(typed))
	}
}
