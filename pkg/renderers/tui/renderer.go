package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/goliatone/go-regform/pkg/contract"
	"github.com/goliatone/go-regform/pkg/form"
	"github.com/goliatone/go-regform/pkg/render"
	"github.com/goliatone/go-regform/pkg/validation"
)

const (
	menuSubmit = "Submit"
	menuReset  = "Reset"
	menuEdit   = "Edit a field"
	menuQuit   = "Quit"
)

var menuOptions = []string{menuSubmit, menuReset, menuEdit, menuQuit}

// Renderer drives a registration session in the terminal. Run is the
// interactive entry point; Render serialises an existing view without
// prompting.
type Renderer struct {
	driver            PromptDriver
	out               io.Writer
	outputFormat      OutputFormat
	contract          *contract.Contract
	submitTransformer SubmitTransformer
	theme             Theme
}

// New constructs a TUI renderer with defaults (survey driver, JSON output,
// embedded contract).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		theme:        DefaultTheme,
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if _, ok := ParseOutputFormat(string(r.outputFormat)); !ok {
		return nil, fmt.Errorf("tui: unsupported output format %q", r.outputFormat)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	if r.contract == nil {
		c, err := contract.Load(context.Background())
		if err != nil {
			return nil, fmt.Errorf("tui: load contract: %w", err)
		}
		r.contract = c
	}

	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Run and Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain; charset=utf-8"
	default:
		return "application/json"
	}
}

// Render serialises the values held by view. The pretty format also lists
// the messages shown beneath each input.
func (r *Renderer) Render(ctx context.Context, view render.View, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	view = render.Prepare(view, opts)

	var values form.Values
	for _, field := range view.Fields {
		values = values.With(field.Field, field.Value)
	}
	if r.outputFormat != OutputFormatPrettyText {
		return r.serialize(values)
	}

	var b strings.Builder
	for _, field := range view.Fields {
		fmt.Fprintf(&b, "%s: %s\n", field.Label, field.Value)
		if field.Error != "" {
			fmt.Fprintf(&b, "  %s%s\n", r.theme.ErrorPrefix, field.Error)
		}
	}
	if view.FormError != "" {
		fmt.Fprintf(&b, "%s%s\n", r.theme.ErrorPrefix, view.FormError)
	}
	return []byte(b.String()), nil
}

// Run prompts for every field, then loops over the action menu until a
// submission succeeds or the user quits. The submitted values are returned
// serialised in the configured output format.
func (r *Renderer) Run(ctx context.Context, ctrl *form.Controller) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if ctrl == nil {
		return nil, errors.New("tui: controller is nil")
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}

	if err := r.info(ctx, r.contract.Title()); err != nil {
		return nil, err
	}
	if err := r.promptAll(ctx, ctrl); err != nil {
		return nil, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		choice, err := r.driver.Select(ctx, SelectConfig{
			Message:      r.theme.PromptPrefix + "What next?",
			Options:      menuOptions,
			DefaultIndex: 0,
		})
		if err != nil {
			return nil, err
		}

		switch optionAt(menuOptions, choice) {
		case menuSubmit:
			state, effect, err := ctrl.Submit(ctx)
			if err != nil {
				return nil, err
			}
			if effect.Kind == form.EffectSucceeded {
				if err := r.info(ctx, effect.Notice.Title+": "+effect.Notice.Message); err != nil {
					return nil, err
				}
				return r.finish(effect.Submitted)
			}
			if err := r.printErrors(ctx, state); err != nil {
				return nil, err
			}
		case menuReset:
			ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: r.theme.PromptPrefix + "Clear all fields?"})
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			ctrl.Reset(ctx)
			if err := r.info(ctx, "Form cleared."); err != nil {
				return nil, err
			}
			if err := r.promptAll(ctx, ctrl); err != nil {
				return nil, err
			}
		case menuEdit:
			if err := r.editField(ctx, ctrl); err != nil {
				return nil, err
			}
		case menuQuit:
			return nil, ErrQuit
		default:
			return nil, fmt.Errorf("tui: unknown menu choice %d", choice)
		}
	}
}

func (r *Renderer) promptAll(ctx context.Context, ctrl *form.Controller) error {
	for _, spec := range r.contract.Fields() {
		if err := r.promptField(ctx, ctrl, spec); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) promptField(ctx context.Context, ctrl *form.Controller, spec contract.FieldSpec) error {
	for {
		state := ctrl.State()
		text, err := r.driver.Input(ctx, InputConfig{
			Message: r.theme.PromptPrefix + spec.Label,
			Default: state.Values.Get(spec.Field),
			Help:    spec.Placeholder,
		})
		if err != nil {
			return err
		}

		_, effect, err := ctrl.Dispatch(ctx, form.Changed{Field: spec.Field, Text: text})
		if err != nil {
			return err
		}
		if effect.Kind != form.EffectIgnored {
			return nil
		}
		msg := fmt.Sprintf("%s accepts at most %d digits.", spec.Label, validation.MaxPhoneDigits)
		if err := r.warn(ctx, msg); err != nil {
			return err
		}
	}
}

func (r *Renderer) editField(ctx context.Context, ctrl *form.Controller) error {
	specs := r.contract.Fields()
	state := ctrl.State()
	labels := make([]string, 0, len(specs))
	for _, spec := range specs {
		label := spec.Label
		if value := state.Values.Get(spec.Field); value != "" {
			label += " (" + value + ")"
		}
		labels = append(labels, label)
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: r.theme.PromptPrefix + "Which field?",
		Options: labels,
	})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(specs) {
		return fmt.Errorf("tui: unknown field choice %d", idx)
	}
	return r.promptField(ctx, ctrl, specs[idx])
}

func (r *Renderer) printErrors(ctx context.Context, state form.State) error {
	if state.Errors.Form != "" {
		if err := r.warn(ctx, state.Errors.Form); err != nil {
			return err
		}
	}
	for _, spec := range r.contract.Fields() {
		msg := state.Errors.Get(spec.Field)
		if msg == "" {
			continue
		}
		if err := r.warn(ctx, spec.Label+": "+msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) warn(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func (r *Renderer) finish(values form.Values) ([]byte, error) {
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(values)
}

func (r *Renderer) serialize(values form.Values) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for _, field := range form.Fields() {
			encoded.Set(field.String(), values.Get(field))
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatPrettyText:
		var b strings.Builder
		for _, spec := range r.contract.Fields() {
			fmt.Fprintf(&b, "%s: %s\n", spec.Label, values.Get(spec.Field))
		}
		return []byte(b.String()), nil
	default:
		out, err := json.Marshal(values)
		if err != nil {
			return nil, fmt.Errorf("tui: encode values: %w", err)
		}
		return out, nil
	}
}

func optionAt(options []string, idx int) string {
	if idx < 0 || idx >= len(options) {
		return ""
	}
	return options[idx]
}
