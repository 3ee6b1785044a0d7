package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/ecurve/internal/bench"
	"github.com/agbru/ecurve/internal/cli"
	apperrors "github.com/agbru/ecurve/internal/errors"
	"github.com/agbru/ecurve/internal/logging"
	"github.com/agbru/ecurve/internal/metrics"
)

// runBench compares the selected strategies on one field.
func (a *Application) runBench(ctx context.Context, out io.Writer) int {
	f, code := a.field()
	if f == nil {
		return code
	}

	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	strategies := bench.StrategiesToRun(a.Config.Strategy, a.Factory)
	if len(strategies) == 0 {
		return apperrors.HandleCalculationError(
			apperrors.NewConfigError("no strategy matches %q", a.Config.Strategy), 0, a.ErrWriter, cli.CLIColorProvider{})
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, f, out)
		cli.PrintExecutionMode(strategies, out)
	}

	var progressReporter bench.ProgressReporter = cli.CLIProgressReporter{}
	presentOut := out
	if a.Config.Quiet {
		progressReporter = bench.NullProgressReporter{}
		presentOut = io.Discard
	}

	collector := metrics.NewCollector()
	mem := metrics.NewMemoryCollector()
	before := mem.Snapshot()
	start := time.Now()
	results := bench.ExecuteBenchmarks(ctx, strategies, f, bench.Options{
		Iterations: a.Config.Iterations,
		Workers:    a.Config.Workers,
		Seed:       a.Config.Seed,
	}, progressReporter, collector, presentOut)
	elapsed := time.Since(start)
	delta := mem.Snapshot().Since(before)

	presenter := cli.CLIResultPresenter{}
	exitCode := bench.AnalyzeResults(results, a.Config.Verbose, presenter, presenter, presentOut)

	totalOps := 0
	for _, r := range results {
		totalOps += r.Ops
		if a.Config.Quiet && r.Err == nil {
			fmt.Fprintf(out, "%s %.1f\n", r.Name, r.NsPerOp())
		}
	}
	if a.Config.Quiet && exitCode != apperrors.ExitSuccess {
		fmt.Fprintf(a.ErrWriter, "bench failed with exit code %d\n", exitCode)
	}

	if !a.Config.Quiet {
		cli.DisplayMemoryStats(delta, totalOps, out)
		if a.Config.Verbose {
			cli.DisplaySystemStats(metrics.SampleSystem(), out)
		}
	}

	a.Logger.Debug("benchmark finished",
		logging.String("field", f.Name()),
		logging.Int("strategies", len(strategies)),
		logging.Int("ops", totalOps),
		logging.Duration("elapsed", elapsed),
		logging.Int("exit_code", exitCode))

	if a.Config.MetricsFile != "" {
		if err := collector.WriteTextfile(a.Config.MetricsFile); err != nil {
			a.Logger.Error("writing metrics failed", err, logging.String("path", a.Config.MetricsFile))
			fmt.Fprintf(a.ErrWriter, "Error writing metrics: %v\n", err)
			if exitCode == apperrors.ExitSuccess {
				exitCode = apperrors.ExitErrorGeneric
			}
		} else if !a.Config.Quiet {
			fmt.Fprintf(out, "Metrics written to %s\n", a.Config.MetricsFile)
		}
	}
	return exitCode
}
