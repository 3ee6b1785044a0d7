package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/agbru/ecurve/internal/bench"
	"github.com/agbru/ecurve/internal/cli"
	"github.com/agbru/ecurve/internal/config"
	apperrors "github.com/agbru/ecurve/internal/errors"
	"github.com/agbru/ecurve/internal/field"
	"github.com/agbru/ecurve/internal/fixedint"
	"github.com/agbru/ecurve/internal/logging"
	"github.com/agbru/ecurve/internal/ui"
)

var tracer = otel.Tracer("github.com/agbru/ecurve/internal/app")

// Application represents the ecurve application instance.
type Application struct {
	Config    config.AppConfig
	Factory   field.StrategyFactory
	Registry  *field.Registry
	Logger    logging.Logger
	ErrWriter io.Writer
	// In feeds the interactive session.
	In io.Reader

	level zerolog.Level
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom StrategyFactory for the application.
func WithFactory(f field.StrategyFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the reader used by the repl command.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name. Presets from -presets are registered before
// New returns, so an invalid file fails here with a ConfigError.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = field.NewDefaultFactory()
	}
	if app.Registry == nil {
		app.Registry = field.NewRegistry()
	}

	programName := "ecurve"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}

	// Validate has already accepted the level name.
	app.level, _ = logging.ParseLevel(cfg.LogLevel)
	app.Logger = logging.NewLevelLogger(errWriter, "ecurve", app.level)

	if cfg.PresetsFile != "" {
		if err := app.loadPresets(cfg.PresetsFile); err != nil {
			fmt.Fprintln(errWriter, "Error:", err)
			return nil, err
		}
	}

	app.Config = config.ApplyAdaptiveWorkers(cfg, len(bench.StrategiesToRun(cfg.Strategy, app.Factory)))
	return app, nil
}

// loadPresets registers every preset of a YAML presets file.
func (a *Application) loadPresets(path string) error {
	presets, err := config.LoadPresets(path)
	if err != nil {
		return err
	}
	for _, p := range presets {
		// Each input character carries at most four bits, so one word per
		// character always holds the value before trimming.
		m, err := fixedint.Parse(p.Modulus, len(p.Modulus))
		if err != nil {
			return apperrors.NewConfigError("preset %q: %v", p.Name, err)
		}
		m, err = m.Resize(fixedint.WidthForBits(m.BitLen()))
		if err != nil {
			return apperrors.NewConfigError("preset %q: %v", p.Name, err)
		}
		err = a.Registry.Register(field.Preset{Name: p.Name, Description: p.Description, Modulus: m})
		if err != nil {
			return apperrors.NewConfigError("%v", err)
		}
		a.Logger.Debug("preset registered", logging.String("name", p.Name), logging.Int("bits", m.BitLen()))
	}
	return nil
}

// Run executes the configured command and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	zerolog.SetGlobalLevel(a.level)
	ui.InitTheme(a.Config.NoColor)

	ctx, span := tracer.Start(ctx, "app."+a.Config.Command)
	defer span.End()
	span.SetAttributes(attribute.String("field", a.Config.Field))

	var code int
	switch a.Config.Command {
	case config.CmdBench:
		code = a.runBench(ctx, out)
	case config.CmdInfo:
		code = a.runInfo(out)
	case config.CmdFields:
		code = a.runFields(out)
	case config.CmdRepl:
		code = a.runREPL(out)
	case config.CmdCompletion:
		code = a.runCompletion(out)
	default:
		code = a.runEval(out)
	}
	span.SetAttributes(attribute.Int("exit_code", code))
	return code
}

// field resolves the configured preset, reporting a failure on ErrWriter.
func (a *Application) field() (*field.Field, int) {
	f, err := a.Registry.Field(a.Config.Field)
	if err != nil {
		return nil, apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	return f, apperrors.ExitSuccess
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	data := cli.CompletionData{Fields: a.Registry.Names(), Strategies: a.Factory.List()}
	if err := cli.GenerateCompletion(out, a.Config.Shell, data); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive session in the configured field.
func (a *Application) runREPL(out io.Writer) int {
	repl, err := cli.NewREPL(a.Registry, a.Factory, cli.REPLConfig{DefaultField: a.Config.Field})
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
