package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: KindUnknown,
		},
		{
			name:     "plain error",
			err:      stderrors.New("boom"),
			expected: KindUnknown,
		},
		{
			name:     "tagged not found",
			err:      New(KindNotFound, "no checkins in last 30 days"),
			expected: KindNotFound,
		},
		{
			name:     "tagged invalid argument",
			err:      Newf(KindInvalidArgument, "time_window must be %q or %q", "7d", "30d"),
			expected: KindInvalidArgument,
		},
		{
			name:     "wrapped persistence failure",
			err:      fmt.Errorf("compute score: %w", Wrap(KindPersistenceFailure, stderrors.New("disk full"), "insert score")),
			expected: KindPersistenceFailure,
		},
		{
			name:     "double wrapped provider degraded",
			err:      fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", New(KindProviderDegraded, "embed timeout"))),
			expected: KindProviderDegraded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.expected {
				t.Errorf("KindOf() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestWrapKeepsCause(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Wrap(KindPersistenceFailure, cause, "insert alert")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause must remain reachable via errors.Is")
	}
	if err.Error() != "insert alert: connection refused" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestHelpers(t *testing.T) {
	if !IsNotFound(New(KindNotFound, "x")) {
		t.Error("IsNotFound should match tagged error")
	}
	if IsNotFound(New(KindInvalidArgument, "x")) {
		t.Error("IsNotFound should not match other kinds")
	}
	if !IsInvalidArgument(New(KindInvalidArgument, "x")) {
		t.Error("IsInvalidArgument should match tagged error")
	}
}
