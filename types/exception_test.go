package types

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

type timeoutError struct {
	Exception
	Seconds int
}

func TestNewException(t *testing.T) {
	t.Parallel()

	exc := NewException("operation timed out")
	if exc.Message() != "operation timed out" {
		t.Fatalf("unexpected message: %s", exc.Message())
	}
	if exc.Source() != "" || exc.Cause() != nil {
		t.Fatalf("expected empty source and nil cause")
	}
	if exc.StackTrace() == "" {
		t.Fatalf("expected a captured stack trace")
	}
	if !strings.Contains(exc.StackTrace(), "TestNewException") {
		t.Fatalf("expected stack to start at the call site, got:\n%s", exc.StackTrace())
	}
	if !strings.Contains(exc.StackTrace(), "\n\t") {
		t.Fatalf("expected function/location line pairs, got:\n%s", exc.StackTrace())
	}
}

func TestWrapException(t *testing.T) {
	t.Parallel()

	root := errors.New("connection refused")
	exc := WrapException("dial failed", root)

	if exc.Cause() != root {
		t.Fatalf("expected cause to be retained")
	}
	if got := exc.Error(); got != "dial failed: connection refused" {
		t.Fatalf("unexpected error string: %s", got)
	}
	if !errors.Is(exc, root) {
		t.Fatalf("expected errors.Is to reach the cause")
	}
}

func TestException_WriterRoundTrip(t *testing.T) {
	t.Parallel()

	root := errors.New("root")
	var w ExceptionWriter = &Exception{}
	w.SetMessage("restored")
	w.SetStackTrace("fn\n\tfile.go:1")
	w.SetSource("decoder")
	w.SetCause(root)

	r := w.(ExceptionError)
	if r.Message() != "restored" || r.StackTrace() != "fn\n\tfile.go:1" || r.Source() != "decoder" {
		t.Fatalf("unexpected state after writes: %q %q %q", r.Message(), r.StackTrace(), r.Source())
	}
	if r.Cause() != root {
		t.Fatalf("expected cause to round-trip")
	}
}

func TestException_FluentSetters(t *testing.T) {
	t.Parallel()

	root := errors.New("root")
	exc := NewException("boom").WithSource("worker").WithCause(root)
	if exc.Source() != "worker" {
		t.Fatalf("unexpected source: %s", exc.Source())
	}
	if exc.Cause() != root {
		t.Fatalf("expected cause to be set")
	}
}

func TestFromError(t *testing.T) {
	t.Parallel()

	if FromError(nil) != nil {
		t.Fatalf("expected nil for nil input")
	}

	exc := NewException("already an exception")
	if FromError(exc) != exc {
		t.Fatalf("expected passthrough for *Exception input")
	}

	inner := errors.New("inner")
	wrapped := fmt.Errorf("outer: %w", inner)
	promoted := FromError(wrapped)
	if promoted.Message() != "outer: inner" {
		t.Fatalf("unexpected message: %s", promoted.Message())
	}
	if promoted.Cause() != inner {
		t.Fatalf("expected wrapped cause to carry over")
	}
	if promoted.StackTrace() != "" {
		t.Fatalf("expected no stack capture for promoted errors")
	}
}

func TestException_EmbeddingPromotesSurfaces(t *testing.T) {
	t.Parallel()

	var v any = &timeoutError{Seconds: 30}
	if _, ok := v.(ExceptionError); !ok {
		t.Fatalf("expected pointer to embedding type to be readable")
	}
	if _, ok := v.(ExceptionWriter); !ok {
		t.Fatalf("expected pointer to embedding type to be writable")
	}

	var byValue any = timeoutError{}
	if _, ok := byValue.(ExceptionError); !ok {
		t.Fatalf("expected value of embedding type to be readable")
	}
	if _, ok := byValue.(ExceptionWriter); ok {
		t.Fatalf("expected value of embedding type to not be writable")
	}
}
