package tui

import (
	"bytes"
	"context"
	"os"
	"testing"
)

func TestNewSurveyDriver_PromptsAvoidStdout(t *testing.T) {
	d := newSurveyDriver(nil)
	if d.promptOut != os.Stderr {
		t.Fatalf("expected prompts on stderr by default, got %v", d.promptOut)
	}
	if d.out != os.Stderr {
		t.Fatalf("expected info on stderr by default, got %v", d.out)
	}
	if d.in != os.Stdin {
		t.Fatalf("expected prompts to read stdin, got %v", d.in)
	}
}

func TestNewSurveyDriver_BufferOutputFallsBackToStderr(t *testing.T) {
	var buf bytes.Buffer
	d := newSurveyDriver(&buf)
	if d.promptOut != os.Stderr {
		t.Fatalf("non-terminal writer should draw prompts on stderr, got %v", d.promptOut)
	}

	if err := d.Info(context.Background(), "Form cleared."); err != nil {
		t.Fatalf("info: %v", err)
	}
	if got := buf.String(); got != "Form cleared.\n" {
		t.Fatalf("info should go to the configured writer, got %q", got)
	}
}

func TestNewSurveyDriver_UsesFileOutput(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "prompts")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	defer f.Close()

	d := newSurveyDriver(f)
	if d.promptOut != f {
		t.Fatalf("expected prompts on the given file, got %v", d.promptOut)
	}
}
