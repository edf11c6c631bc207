package template_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-regform/pkg/render/template/gotemplate"
)

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	files := fstest.MapFS{
		"hello.tpl":      {Data: []byte(`Hello {{ name|trim }}!`)},
		"use-filter.tpl": {Data: []byte(`{{ name|shout }}`)},
		"style.tpl":      {Data: []byte(`<div style="{{ vars|cssvars }}"></div>`)},
	}

	engine, err := gotemplate.New(gotemplate.WithFS(files))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var buf bytes.Buffer
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "  Ada "}, &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Ada!" {
		t.Fatalf("unexpected result %q", result)
	}
	if buf.String() != result {
		t.Fatalf("writer mismatch: %q", buf.String())
	}
}

func TestEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	result, err := engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "ADA!" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngine_CSSVarsFilter(t *testing.T) {
	engine := newEngine(t)

	result, err := engine.RenderTemplate("style", map[string]any{
		"vars": map[string]string{
			"--brand":   "#0066cc",
			"--accent":  "red",
			"--evil":    "red;} body{display:none",
			"not-a-var": "ignored",
		},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<div style="--accent: red; --brand: #0066cc;"></div>`
	if result != want {
		t.Fatalf("want %q, got %q", want, result)
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatal("expected error for missing template")
	}
}

func TestEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatal("expected error without base dir or fs")
	}
}

func TestEngine_StructDataUsesJSONNames(t *testing.T) {
	engine := newEngine(t)
	type person struct {
		Name string `json:"name"`
	}
	result, err := engine.RenderTemplate("hello", person{Name: "Grace"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Grace!" {
		t.Fatalf("unexpected result %q", result)
	}
}
