package render

import (
	"strings"

	"github.com/goliatone/go-regform/pkg/contract"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/validation"
)

// FieldView is one input as it should be displayed.
type FieldView struct {
	contract.FieldSpec
	Value string `json:"value"`
	Error string `json:"error,omitempty"`
}

// View is the renderer-facing snapshot of a form.
type View struct {
	Title     string       `json:"title"`
	Policy    string       `json:"policy"`
	Fields    []FieldView  `json:"fields"`
	FormError string       `json:"formError,omitempty"`
	Notice    *form.Notice `json:"notice,omitempty"`
}

// NewView combines the field contract with the current state.
func NewView(c *contract.Contract, state form.State, policy validation.Policy) View {
	specs := c.Fields()
	view := View{
		Title:     c.Title(),
		Policy:    policy.Name,
		Fields:    make([]FieldView, 0, len(specs)),
		FormError: state.Errors.Form,
	}
	for _, spec := range specs {
		view.Fields = append(view.Fields, FieldView{
			FieldSpec: spec,
			Value:     state.Values.Get(spec.Field),
			Error:     state.Errors.Get(spec.Field),
		})
	}
	return view
}

// WithNotice returns a copy of v carrying notice.
func (v View) WithNotice(notice form.Notice) View {
	n := notice
	v.Notice = &n
	return v
}

// WithErrors returns a copy of v with mapped host errors appended to the
// field and form messages.
func (v View) WithErrors(mapping ErrorMapping) View {
	if len(mapping.Fields) == 0 && len(mapping.Form) == 0 {
		return v
	}
	fields := make([]FieldView, len(v.Fields))
	copy(fields, v.Fields)
	for i := range fields {
		extra := mapping.Fields[fields[i].Field]
		if len(extra) == 0 {
			continue
		}
		fields[i].Error = joinMessages(fields[i].Error, extra...)
	}
	v.Fields = fields
	v.FormError = joinMessages(v.FormError, mapping.Form...)
	return v
}

// Field returns the view of f.
func (v View) Field(f form.Field) (FieldView, bool) {
	for _, field := range v.Fields {
		if field.Field == f {
			return field, true
		}
	}
	return FieldView{}, false
}

// HasErrors reports whether any message is shown.
func (v View) HasErrors() bool {
	if v.FormError != "" {
		return true
	}
	for _, field := range v.Fields {
		if field.Error != "" {
			return true
		}
	}
	return false
}

// Prepare applies the option-level errors to the view. Renderers call it
// before producing output.
func Prepare(view View, opts RenderOptions) View {
	if len(opts.Errors) == 0 {
		return view
	}
	return view.WithErrors(MapErrorPayload(opts.Errors))
}

func joinMessages(existing string, extras ...string) string {
	var base []string
	if strings.TrimSpace(existing) != "" {
		base = []string{existing}
	}
	return strings.Join(MergeFormErrors(base, extras...), " ")
}
