package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/agbru/ecurve/internal/bench"
	apperrors "github.com/agbru/ecurve/internal/errors"
	"github.com/agbru/ecurve/internal/metrics"
	"github.com/agbru/ecurve/internal/ui"
)

// CLIProgressReporter implements bench.ProgressReporter with a spinner and
// progress bar.
type CLIProgressReporter struct{}

var _ bench.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for running strategies.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan bench.ProgressUpdate, numStrategies int, out io.Writer) {
	DisplayProgress(wg, progressChan, numStrategies, out)
}

// CLIColorProvider supplies the active theme's colors to the error handler.
type CLIColorProvider struct{}

var _ apperrors.ColorProvider = CLIColorProvider{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter renders benchmark results for the terminal.
type CLIResultPresenter struct{}

var (
	_ bench.ResultPresenter = CLIResultPresenter{}
	_ bench.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable prints strategy names, durations, per-operation
// cost and status. Padding is computed manually so that ANSI color codes do
// not skew the columns.
func (CLIResultPresenter) PresentComparisonTable(results []bench.Result, out io.Writer) {
	fmt.Fprintf(out, "\n%s\n", ui.Heading("Comparison Summary"))

	maxNameLen := 8     // "Strategy" header length
	maxDurationLen := 8 // "Duration" header length
	maxPerOpLen := 6    // "Per op" header length
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
		maxDurationLen = max(maxDurationLen, len(durationCell(res.Duration)))
		maxPerOpLen = max(maxPerOpLen, len(perOpCell(res)))
	}

	fmt.Fprintf(out, "%sStrategy%s%s   %sDuration%s%s   %sPer op%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-8),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-8),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxPerOpLen-6),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		duration, perOp := durationCell(res.Duration), perOpCell(res)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			perOp, padRight("", maxPerOpLen-len(perOp)),
			status)
	}
}

func durationCell(d time.Duration) string {
	if d == 0 {
		return "< 1ns"
	}
	return FormatExecutionDuration(d)
}

func perOpCell(res bench.Result) string {
	if res.Ops == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1fns", res.NsPerOp())
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult prints the fastest run. Verbose output adds the digest and
// the last product.
func (CLIResultPresenter) PresentResult(result bench.Result, verbose bool, out io.Writer) {
	fmt.Fprintf(out, "Fastest strategy: %s%s%s (%s%d%s multiplications in %s%s%s).\n",
		ui.ColorGreen(), result.Name, ui.ColorReset(),
		ui.ColorCyan(), result.Ops, ui.ColorReset(),
		ui.ColorYellow(), FormatExecutionDuration(result.Duration), ui.ColorReset())
	if verbose {
		fmt.Fprintf(out, "Digest: %s%016x%s\n", ui.ColorMagenta(), result.Digest, ui.ColorReset())
		fmt.Fprintf(out, "Last product: %s0x%s%s\n", ui.ColorMagenta(), result.Last, ui.ColorReset())
	}
}

// HandleError reports err and returns the matching exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// DisplayMemoryStats shows how much the benchmark allocated.
func DisplayMemoryStats(delta metrics.AllocDelta, ops int, out io.Writer) {
	bytesPerOp, objectsPerOp := delta.PerOp(ops)
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Total allocated: %s\n", FormatBytes(delta.Bytes))
	fmt.Fprintf(out, "  Per operation:   %.1f B, %.2f allocs\n", bytesPerOp, objectsPerOp)
	fmt.Fprintf(out, "  GC cycles:       %d\n", delta.GCs)
}

// DisplaySystemStats shows the machine the benchmark ran on.
func DisplaySystemStats(s metrics.SystemStats, out io.Writer) {
	model := s.CPUModel
	if model == "" {
		model = "unknown CPU"
	}
	fmt.Fprintf(out, "System: %s%s%s, %d logical processors, CPU %.1f%%, memory %.1f%% used.\n",
		ui.ColorCyan(), model, ui.ColorReset(), s.LogicalCPU, s.CPUPercent, s.MemPercent)
}
