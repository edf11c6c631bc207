package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/goliatone/go-regform/pkg/render"
	rendertemplate "github.com/goliatone/go-regform/pkg/render/template"
	"github.com/goliatone/go-regform/pkg/render/template/gotemplate"
)

const pageTemplate = "registration"

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	assetBase        string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithAssetBase sets the URL prefix the embedded assets are served under.
// Theme asset URLs take precedence.
func WithAssetBase(prefix string) Option {
	return func(cfg *config) {
		cfg.assetBase = prefix
	}
}

// Renderer produces the registration page as HTML.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	assetBase string
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), assetBase: "/assets/"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{templates: renderer, assetBase: cfg.assetBase}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

func (r *Renderer) Render(ctx context.Context, view render.View, opts render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	view = render.Prepare(view, opts)

	result, err := r.templates.RenderTemplate(pageTemplate, r.templateData(view, opts))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}

func (r *Renderer) templateData(view render.View, opts render.RenderOptions) map[string]any {
	fields := make([]map[string]any, 0, len(view.Fields))
	for _, field := range view.Fields {
		maxLength := ""
		if field.MaxLength > 0 {
			maxLength = strconv.Itoa(field.MaxLength)
		}
		fields = append(fields, map[string]any{
			"name":         field.Field.String(),
			"label":        field.Label,
			"placeholder":  field.Placeholder,
			"autocomplete": field.Autocomplete,
			"inputmode":    field.InputMode,
			"type":         inputType(field.InputMode),
			"maxlength":    maxLength,
			"value":        field.Value,
			"error":        field.Error,
		})
	}

	hidden := make([]map[string]any, 0, len(opts.Hidden))
	for _, h := range render.SortedHiddenFields(opts.Hidden) {
		hidden = append(hidden, map[string]any{"name": h.Name, "value": h.Value})
	}

	data := map[string]any{
		"title":         view.Title,
		"policy":        view.Policy,
		"fields":        fields,
		"form_error":    view.FormError,
		"hidden_fields": hidden,
		"action":        defaultString(opts.Action, "/submit"),
		"reset_action":  defaultString(opts.ResetAction, "/reset"),
		"live_url":      opts.LiveURL,
		"intro":         render.SanitizeHTML(opts.IntroHTML),
		"stylesheet":    r.assetURL(opts, stylesheetAssetKey, StylesheetName),
		"script":        "",
	}
	if opts.LiveURL != "" {
		data["script"] = r.assetURL(opts, liveScriptAssetKey, LiveScriptName)
	}
	if view.Notice != nil {
		data["notice"] = map[string]any{
			"title":   view.Notice.Title,
			"message": view.Notice.Message,
		}
	}
	if cfg := opts.Theme; cfg != nil {
		data["theme"] = map[string]any{
			"name":     cfg.Theme,
			"variant":  cfg.Variant,
			"css_vars": cfg.CSSVars,
		}
	}
	return data
}

func (r *Renderer) assetURL(opts render.RenderOptions, key, file string) string {
	if opts.Theme != nil && opts.Theme.AssetURL != nil {
		if url := strings.TrimSpace(opts.Theme.AssetURL(key)); url != "" {
			return url
		}
	}
	if r.assetBase == "" {
		return ""
	}
	return strings.TrimSuffix(r.assetBase, "/") + "/" + file
}

func inputType(inputMode string) string {
	switch inputMode {
	case "email":
		return "email"
	case "numeric", "tel":
		return "tel"
	default:
		return "text"
	}
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
