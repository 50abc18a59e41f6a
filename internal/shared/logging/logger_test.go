package logging

import "testing"

type recordingLogger struct {
	infos []string
}

func (r *recordingLogger) Debug(format string, args ...any) {}
func (r *recordingLogger) Info(format string, args ...any)  { r.infos = append(r.infos, format) }
func (r *recordingLogger) Warn(format string, args ...any)  {}
func (r *recordingLogger) Error(format string, args ...any) {}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) must return a usable logger")
	}
	var typed *recordingLogger
	if OrNop(typed) == nil {
		t.Fatal("OrNop must handle typed nil pointers")
	}
	// Must not panic.
	OrNop(typed).Info("hello")

	rec := &recordingLogger{}
	if OrNop(rec) != rec {
		t.Fatal("OrNop must pass through non-nil loggers")
	}
}

func TestMultiFansOut(t *testing.T) {
	a := &recordingLogger{}
	b := &recordingLogger{}
	Multi(a, nil, b).Info("msg")

	if len(a.infos) != 1 || len(b.infos) != 1 {
		t.Fatalf("expected both loggers to receive the message, got %d/%d", len(a.infos), len(b.infos))
	}
}

func TestMultiFlattensNested(t *testing.T) {
	a := &recordingLogger{}
	b := &recordingLogger{}
	nested := Multi(Multi(a), b)
	nested.Info("msg")

	if len(a.infos) != 1 || len(b.infos) != 1 {
		t.Fatal("nested Multi loggers must be flattened and invoked")
	}
}
