// Package config parses and validates the command line of the ecurve tool.
// Values come from flags first, then ECURVE_* environment variables, then
// built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/ecurve/internal/errors"
	"github.com/agbru/ecurve/internal/logging"
)

// EnvPrefix is prepended to every environment variable read by the tool.
const EnvPrefix = "ECURVE_"

// Commands understood by the tool.
const (
	CmdEval       = "eval"
	CmdBench      = "bench"
	CmdInfo       = "info"
	CmdFields     = "fields"
	CmdRepl       = "repl"
	CmdCompletion = "completion"
)

// Commands lists the accepted commands in help order.
var Commands = []string{CmdEval, CmdBench, CmdInfo, CmdFields, CmdRepl, CmdCompletion}

// Shells lists the shells the completion command can generate scripts for.
var Shells = []string{"bash", "zsh", "fish"}

// Operations lists the operations accepted by eval. Kernel operations act
// on raw words of the field's width; the f-prefixed ones are field
// arithmetic.
var Operations = []string{
	"add", "sub", "mul", "div", "rem", "mont",
	"fadd", "fsub", "fmul", "fdiv", "fneg", "inv", "exp",
}

// UnaryOperations take only -x.
var UnaryOperations = []string{"fneg", "inv"}

// Defaults.
const (
	DefaultField      = "secp256k1"
	DefaultOp         = "fmul"
	DefaultIterations = 10000
	DefaultSeed       = 1
	DefaultTimeout    = 5 * time.Minute
	DefaultStrategy   = "all"
)

// AppConfig holds the parsed configuration for one invocation.
type AppConfig struct {
	Command     string
	Field       string
	Op          string
	X, Y        string
	Strategy    string
	Iterations  int
	Workers     int
	Seed        uint64
	Timeout     time.Duration
	Verbose     bool
	Quiet       bool
	NoColor     bool
	PresetsFile string
	MetricsFile string
	LogLevel    string
	OutputFile  string
	Shell       string
}

// IsUnary reports whether the configured operation ignores -y.
func (c AppConfig) IsUnary() bool {
	return slices.Contains(UnaryOperations, c.Op)
}

// ParseConfig parses args (without the program name). The first argument
// names the command when it does not start with '-'; eval is assumed
// otherwise. availableStrategies lists the names -strategy accepts besides
// "all".
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableStrategies []string) (AppConfig, error) {
	config := AppConfig{Command: CmdEval}
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		config.Command = args[0]
		args = args[1:]
	}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [%s] [flags]\n", programName, strings.Join(Commands, "|"))
		fmt.Fprintf(errorWriter, "       %s completion <%s>\n\n", programName, strings.Join(Shells, "|"))
		fmt.Fprintf(errorWriter, "Operations for eval: %s\n", strings.Join(Operations, ", "))
		fmt.Fprintf(errorWriter, "Strategies for bench: all, %s\n\nFlags:\n", strings.Join(availableStrategies, ", "))
		fs.PrintDefaults()
	}

	fs.StringVar(&config.Field, "field", DefaultField, "Field preset to work in (see the fields command).")
	fs.StringVar(&config.Op, "op", DefaultOp, "Operation to evaluate.")
	fs.StringVar(&config.X, "x", "", "First operand, decimal or 0x-prefixed hex.")
	fs.StringVar(&config.Y, "y", "", "Second operand, decimal or 0x-prefixed hex.")
	fs.StringVar(&config.Strategy, "strategy", DefaultStrategy, "Multiplication strategy to benchmark ('all' compares every strategy).")
	fs.IntVar(&config.Iterations, "iterations", DefaultIterations, "Multiplications per strategy in bench.")
	fs.IntVar(&config.Workers, "workers", 0, "Concurrent bench workers (0 picks from the CPU count).")
	fs.Uint64Var(&config.Seed, "seed", DefaultSeed, "Seed for bench operands.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum run time.")
	fs.BoolVar(&config.Verbose, "v", false, "Verbose output.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Verbose output (alias).")
	fs.BoolVar(&config.Quiet, "q", false, "Print results only.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print results only (alias).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&config.PresetsFile, "presets", "", "YAML file with extra field presets.")
	fs.StringVar(&config.MetricsFile, "metrics-file", "", "Write bench metrics in Prometheus text format to this file.")
	fs.StringVar(&config.LogLevel, "log-level", "info", "Log level (debug, info, warn, error, disabled).")
	fs.StringVar(&config.OutputFile, "o", "", "Write the result to this file.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the result to this file (alias).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	rest := fs.Args()
	if config.Command == CmdCompletion && len(rest) > 0 {
		config.Shell, rest = rest[0], rest[1:]
	}
	if len(rest) > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected argument %q", rest[0])
	}

	applyEnvOverrides(&config, fs)

	if err := config.Validate(availableStrategies); err != nil {
		fmt.Fprintln(errorWriter, "Error:", err)
		fs.Usage()
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate(availableStrategies []string) error {
	if !slices.Contains(Commands, c.Command) {
		return apperrors.NewConfigError("unknown command %q (expected one of %s)", c.Command, strings.Join(Commands, ", "))
	}
	if c.Field == "" {
		return apperrors.NewConfigError("-field must not be empty")
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("-timeout must be positive, got %s", c.Timeout)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("-quiet and -verbose are mutually exclusive")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("%v", err)
	}

	switch c.Command {
	case CmdEval:
		if !slices.Contains(Operations, c.Op) {
			return apperrors.NewConfigError("unknown operation %q (expected one of %s)", c.Op, strings.Join(Operations, ", "))
		}
		if c.X == "" {
			return apperrors.NewConfigError("-x is required for %s", c.Op)
		}
		if c.Y == "" && !c.IsUnary() {
			return apperrors.NewConfigError("-y is required for %s", c.Op)
		}
	case CmdBench:
		if c.Iterations <= 0 {
			return apperrors.NewConfigError("-iterations must be positive, got %d", c.Iterations)
		}
		if c.Workers < 0 {
			return apperrors.NewConfigError("-workers must not be negative, got %d", c.Workers)
		}
		if c.Strategy != DefaultStrategy && !slices.Contains(availableStrategies, c.Strategy) {
			return apperrors.NewConfigError("unknown strategy %q (expected all or one of %s)", c.Strategy, strings.Join(availableStrategies, ", "))
		}
	case CmdCompletion:
		if !slices.Contains(Shells, c.Shell) {
			return apperrors.NewConfigError("completion needs a shell argument (one of %s)", strings.Join(Shells, ", "))
		}
	}
	return nil
}
