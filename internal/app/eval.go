package app

import (
	"io"
	"time"

	"github.com/agbru/ecurve/internal/calc"
	"github.com/agbru/ecurve/internal/cli"
	apperrors "github.com/agbru/ecurve/internal/errors"
	"github.com/agbru/ecurve/internal/logging"
)

// runEval evaluates one operation and prints its result.
func (a *Application) runEval(out io.Writer) int {
	f, code := a.field()
	if f == nil {
		return code
	}

	start := time.Now()
	res, err := calc.Evaluate(f, a.Config.Op, a.Config.X, a.Config.Y)
	duration := time.Since(start)
	if err != nil {
		a.Logger.Debug("evaluation failed", logging.String("op", a.Config.Op), logging.Err(err))
		return apperrors.HandleCalculationError(err, duration, a.ErrWriter, cli.CLIColorProvider{})
	}
	a.Logger.Debug("evaluated",
		logging.String("op", res.Op),
		logging.String("field", res.Field),
		logging.Duration("duration", duration))

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}
	if err := cli.DisplayResultWithConfig(out, res, duration, outputCfg); err != nil {
		a.Logger.Error("saving result failed", err, logging.String("path", outputCfg.OutputFile))
		return apperrors.HandleCalculationError(err, duration, a.ErrWriter, cli.CLIColorProvider{})
	}
	return apperrors.ExitSuccess
}
