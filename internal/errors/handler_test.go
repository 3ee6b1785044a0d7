package apperrors

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

type testColors struct{}

func (testColors) Red() string    { return "<red>" }
func (testColors) Yellow() string { return "<yellow>" }
func (testColors) Reset() string  { return "</>" }

func TestExitCodeFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"deadline", context.DeadlineExceeded, ExitErrorTimeout},
		{"timeout type", TimeoutError{Operation: "bench", Limit: time.Second}, ExitErrorTimeout},
		{"canceled", WrapError(context.Canceled, "bench interrupted"), ExitErrorCanceled},
		{"arithmetic", CalculationError{Cause: ArithmeticError{Op: "div", Cause: errors.New("division by zero")}}, ExitErrorArithmetic},
		{"config", NewConfigError("unknown command %q", "frobnicate"), ExitErrorConfig},
		{"validation", WrapError(ValidationError{Field: "x", Message: "too wide"}, "parse"), ExitErrorConfig},
		{"generic", errors.New("boom"), ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExitCodeFor(tt.err); got != tt.want {
				t.Errorf("ExitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleCalculationError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantOutput string
	}{
		{"nil error prints nothing", nil, ExitSuccess, ""},
		{"timeout", context.DeadlineExceeded, ExitErrorTimeout, "<yellow>Operation timed out after 2s.</>"},
		{"canceled", context.Canceled, ExitErrorCanceled, "<yellow>Operation canceled after 2s.</>"},
		{
			"arithmetic",
			ArithmeticError{Op: "inv", Cause: errors.New("zero has no inverse")},
			ExitErrorArithmetic,
			"<red>Arithmetic error: arithmetic error in inv: zero has no inverse</>",
		},
		{"generic", errors.New("disk full"), ExitErrorGeneric, "<red>Error: disk full</>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			code := HandleCalculationError(tt.err, 2*time.Second, &buf, testColors{})
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d", code, tt.wantCode)
			}
			if got := strings.TrimSpace(buf.String()); got != tt.wantOutput {
				t.Errorf("output = %q, want %q", got, tt.wantOutput)
			}
		})
	}
}

func TestHandleCalculationError_NilWriterAndColors(t *testing.T) {
	t.Parallel()
	if code := HandleCalculationError(context.Canceled, time.Second, nil, nil); code != ExitErrorCanceled {
		t.Errorf("exit code = %d, want %d", code, ExitErrorCanceled)
	}
}
