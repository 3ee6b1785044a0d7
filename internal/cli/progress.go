package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/ecurve/internal/bench"
)

// DisplayProgress shows a spinner with an aggregated progress bar and ETA
// until progressChan is closed. It calls wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan bench.ProgressUpdate, numStrategies int, out io.Writer) {
	defer wg.Done()
	agg := bench.NewProgressAggregator(numStrategies)
	if agg == nil {
		bench.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	label := "Benchmarking"
	if numStrategies > 1 {
		label = fmt.Sprintf("Benchmarking %d strategies", numStrategies)
	}
	s.UpdateSuffix(" " + label + "...")
	s.Start()
	defer s.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	var last bench.AggregatedProgress
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.UpdateSuffix(" " + label + " " + FormatProgressBarWithETA(1, 0, ProgressBarWidth))
				return
			}
			last = agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(" " + label + " " + FormatProgressBarWithETA(last.AverageProgress, last.ETA, ProgressBarWidth))
		}
	}
}

// FormatETA renders an ETA for the progress line.
func FormatETA(eta time.Duration) string {
	switch {
	case eta <= 0:
		return "calculating..."
	case eta < time.Second:
		return "< 1s"
	case eta < time.Minute:
		return fmt.Sprintf("%ds", int(eta.Seconds()))
	case eta < time.Hour:
		return fmt.Sprintf("%dm%02ds", int(eta.Minutes()), int(eta.Seconds())%60)
	}
	return fmt.Sprintf("%dh%02dm", int(eta.Hours()), int(eta.Minutes())%60)
}

// FormatProgressBarWithETA renders "[bar] 42.0% ETA 3s". The ETA is omitted
// once progress reaches 100%.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	bar := fmt.Sprintf("[%s] %5.1f%%", progressBar(progress, width), min(max(progress, 0), 1)*100)
	if progress >= 1 {
		return bar
	}
	return bar + " ETA " + FormatETA(eta)
}
