package logger

import (
	"bytes"
	"os"
	"testing"
	"time"
)

func capture(t *testing.T, v bool) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(v)
	t.Cleanup(func() {
		SetVerbose(false)
		SetOutput(os.Stderr)
	})
	return &buf
}

func TestSetVerbose(t *testing.T) {
	capture(t, false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	buf := capture(t, true)

	Debug("folded %s into %s", "soma_0", "soma_group")

	if got := buf.String(); got != "[DEBUG] folded soma_0 into soma_group\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestQuietWhenNotVerbose(t *testing.T) {
	buf := capture(t, false)

	Debug("debug")
	Info("info")
	Section("section")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestWarn_AlwaysWritten(t *testing.T) {
	buf := capture(t, false)

	Warn("recipe %s has no steps", "PN")

	if got := buf.String(); got != "[WARN] recipe PN has no steps\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestSection(t *testing.T) {
	buf := capture(t, true)

	Section("Normalise GGN")

	if got := buf.String(); got != "\n=== Normalise GGN ===\n" {
		t.Errorf("unexpected output: %q", got)
	}
}

func TestStage(t *testing.T) {
	buf := capture(t, true)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	now = func() time.Time {
		calls++
		return start.Add(time.Duration(calls-1) * 2 * time.Millisecond)
	}
	t.Cleanup(func() { now = time.Now })

	Stage("Write KC")()

	want := "\n=== Write KC ===\n[DEBUG] Write KC done in 2ms\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output: %q", got)
	}
}
