package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-regform/pkg/render"
)

type stubRenderer struct {
	name        string
	contentType string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return s.contentType }
func (s stubRenderer) Render(context.Context, render.View, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistry_RegisterAndList(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"})
	registry.MustRegister(stubRenderer{name: "json", contentType: "application/json"})

	if err := registry.Register(stubRenderer{name: "json"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := registry.Register(nil); err == nil {
		t.Fatalf("expected nil renderer error")
	}
	if diff := cmp.Diff([]string{"json", "vanilla"}, registry.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !registry.Has("vanilla") || registry.Has("preact") {
		t.Fatalf("unexpected Has results")
	}
	if _, err := registry.Get("preact"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
}

func TestRegistry_Negotiate(t *testing.T) {
	registry := render.NewRegistry()
	registry.MustRegister(stubRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"})
	registry.MustRegister(stubRenderer{name: "json", contentType: "application/json"})

	cases := map[string]string{
		"application/json":                        "json",
		"text/html,application/xhtml+xml":         "vanilla",
		"application/xml;q=0.9, application/json": "json",
		"*/*":                                     "vanilla",
		"":                                        "vanilla",
		"image/png":                               "vanilla",
	}
	for accept, want := range cases {
		renderer, err := registry.Negotiate(accept)
		if err != nil {
			t.Fatalf("negotiate %q: %v", accept, err)
		}
		if renderer.Name() != want {
			t.Fatalf("negotiate %q: want %s, got %s", accept, want, renderer.Name())
		}
	}

	if _, err := render.NewRegistry().Negotiate("text/html"); err == nil {
		t.Fatalf("expected error for empty registry")
	}
}
