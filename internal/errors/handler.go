package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used to highlight error output.
// Implementations return empty strings when color is disabled.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

type noColors struct{}

func (noColors) Red() string    { return "" }
func (noColors) Yellow() string { return "" }
func (noColors) Reset() string  { return "" }

// ExitCodeFor maps an error to the process exit code without printing
// anything.
//
// Parameters:
//   - err: The error to classify. nil maps to ExitSuccess.
//
// Returns:
//   - int: One of the Exit* constants.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var (
		configErr     ConfigError
		validationErr ValidationError
		arithErr      ArithmeticError
		timeoutErr    TimeoutError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &timeoutErr):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &arithErr):
		return ExitErrorArithmetic
	case errors.As(err, &configErr), errors.As(err, &validationErr):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

// HandleCalculationError prints a user-facing description of err to out and
// returns the matching exit code. A nil error prints nothing and returns
// ExitSuccess.
//
// Parameters:
//   - err: The error produced by the operation.
//   - duration: How long the operation ran before failing; shown for timeouts.
//   - out: Destination for the message. nil discards it.
//   - colors: Color sequences for the message. nil disables color.
//
// Returns:
//   - int: The exit code for the error, as computed by ExitCodeFor.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if out == nil {
		out = io.Discard
	}
	if colors == nil {
		colors = noColors{}
	}

	code := ExitCodeFor(err)
	switch code {
	case ExitErrorTimeout:
		fmt.Fprintf(out, "%sOperation timed out after %s.%s\n", colors.Yellow(), duration, colors.Reset())
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sOperation canceled after %s.%s\n", colors.Yellow(), duration, colors.Reset())
	case ExitErrorArithmetic:
		fmt.Fprintf(out, "%sArithmetic error: %v%s\n", colors.Red(), err, colors.Reset())
	case ExitErrorConfig:
		fmt.Fprintf(out, "%sInvalid input: %v%s\n", colors.Red(), err, colors.Reset())
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
	}
	return code
}
