package bench

import (
	"sync"
	"time"
)

// ProgressAggregator combines the progress of concurrent strategies into an
// average and an ETA. It is safe for concurrent use.
type ProgressAggregator struct {
	mu         sync.Mutex
	progresses []float64
	start      time.Time
	now        func() time.Time
}

// AggregatedProgress is the aggregator's view after one update.
type AggregatedProgress struct {
	Index           int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// NewProgressAggregator returns nil when there is nothing to track.
func NewProgressAggregator(numStrategies int) *ProgressAggregator {
	if numStrategies <= 0 {
		return nil
	}
	return &ProgressAggregator{
		progresses: make([]float64, numStrategies),
		start:      time.Now(),
		now:        time.Now,
	}
}

// Update records one progress value. Out-of-range indices are ignored.
func (a *ProgressAggregator) Update(update ProgressUpdate) AggregatedProgress {
	a.mu.Lock()
	defer a.mu.Unlock()
	if update.Index >= 0 && update.Index < len(a.progresses) {
		a.progresses[update.Index] = clamp01(update.Value)
	}
	avg := a.average()
	return AggregatedProgress{
		Index:           update.Index,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             a.eta(avg),
	}
}

// CalculateAverage returns the mean progress over all strategies.
func (a *ProgressAggregator) CalculateAverage() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.average()
}

// NumStrategies returns the number of tracked strategies.
func (a *ProgressAggregator) NumStrategies() int {
	return len(a.progresses)
}

func (a *ProgressAggregator) average() float64 {
	var total float64
	for _, p := range a.progresses {
		total += p
	}
	return total / float64(len(a.progresses))
}

// eta extrapolates the elapsed time linearly. It is zero until some
// progress has been made.
func (a *ProgressAggregator) eta(avg float64) time.Duration {
	if avg <= 0 || avg >= 1 {
		return 0
	}
	elapsed := a.now().Sub(a.start)
	return time.Duration(float64(elapsed) * (1 - avg) / avg)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// DrainChannel consumes progressChan until it is closed.
func DrainChannel(progressChan <-chan ProgressUpdate) {
	for range progressChan {
	}
}
