package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-regform/pkg/validation"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--env-file", t.TempDir()+"/none.env"))
	err := cmd.Execute()
	return out.String(), err
}

func TestValidate_Valid(t *testing.T) {
	out, err := execute(t, "validate",
		"--first-name", "Ada",
		"--last-name", "Lovelace",
		"--email", "ada@example.com",
		"--phone", "5551234567",
	)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if strings.TrimSpace(out) != "valid" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestValidate_ReportsIssues(t *testing.T) {
	out, err := execute(t, "validate", "--first-name", "Ada", "--email", "nope", "--phone", "123")
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	want := []string{
		"lastName: " + validation.MsgLastNameRequired,
		"email: " + validation.MsgEmailInvalid,
		"phoneNumber: " + validation.MsgPhoneExactTen,
		"form: " + validation.MsgPhoneExactTen,
	}
	for _, line := range want {
		if !strings.Contains(out, line+"\n") {
			t.Fatalf("expected %q in output:\n%s", line, out)
		}
	}
}

func TestValidate_LegacyPolicy(t *testing.T) {
	out, err := execute(t, "validate", "--policy", "legacy", "--phone", "12345")
	if !errors.Is(err, errInvalid) {
		t.Fatalf("expected errInvalid, got %v", err)
	}
	if strings.Contains(out, "phoneNumber:") {
		t.Fatalf("expected five digits to pass under legacy policy:\n%s", out)
	}
	if !strings.Contains(out, "form: "+validation.MsgFormGeneric) {
		t.Fatalf("expected generic form error:\n%s", out)
	}
}

func TestValidate_UnknownPolicy(t *testing.T) {
	if _, err := execute(t, "validate", "--policy", "strict"); err == nil || errors.Is(err, errInvalid) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRender_Formats(t *testing.T) {
	cases := map[string]string{
		"html":   "<title>Registration Form</title>",
		"json":   `"title": "Registration Form"`,
		"pretty": "Phone Number: \n",
	}
	for format, fragment := range cases {
		out, err := execute(t, "render", "--format", format)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if !strings.Contains(out, fragment) {
			t.Fatalf("%s: expected %q in output:\n%s", format, fragment, out)
		}
	}

	if _, err := execute(t, "render", "--format", "xml"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestRender_CopyOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "copy.json")
	doc := `{"title": "Join the list", "fields": {"phone": {"label": "Mobile"}}}`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write copy: %v", err)
	}

	out, err := execute(t, "render", "--format", "pretty", "--copy", path)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "Mobile: \n") {
		t.Fatalf("expected patched label in output:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version", "--short")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if strings.TrimSpace(out) != version {
		t.Fatalf("unexpected version output %q", out)
	}
}
