package bench

import (
	"io"
	"sync"
	"time"
)

// Result encapsulates the outcome of one strategy run.
type Result struct {
	// Name is the registry key of the strategy.
	Name string
	// Duration is the wall time spent multiplying.
	Duration time.Duration
	// Ops is the number of multiplications completed.
	Ops int
	// Digest folds every product in order. It is only meaningful when Err is nil.
	Digest uint64
	// Last is the final product, kept for display.
	Last string
	// Err contains any error that stopped the run.
	Err error
}

// NsPerOp returns the mean time per multiplication.
func (r Result) NsPerOp() float64 {
	if r.Ops == 0 {
		return 0
	}
	return float64(r.Duration.Nanoseconds()) / float64(r.Ops)
}

// ProgressUpdate reports how far one strategy has come, from 0.0 to 1.0.
type ProgressUpdate struct {
	Index int
	Value float64
}

// ProgressReporter displays progress while strategies run. Implementations
// must drain progressChan until it is closed and then call wg.Done.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numStrategies int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numStrategies int, out io.Writer)

// DisplayProgress calls f.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, numStrategies int, out io.Writer) {
	f(wg, progressChan, numStrategies, out)
}

// NullProgressReporter discards progress updates. Used in quiet mode.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
	}
}

// ResultPresenter renders benchmark results.
type ResultPresenter interface {
	// PresentComparisonTable prints one row per strategy.
	PresentComparisonTable(results []Result, out io.Writer)
	// PresentResult prints the details of the fastest successful run.
	PresentResult(result Result, verbose bool, out io.Writer)
}

// ErrorHandler reports a failure and maps it to an exit code.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
