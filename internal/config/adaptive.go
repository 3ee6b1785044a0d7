package config

import "runtime"

// Worker resolution chain (highest priority first):
//   1. CLI flag (-workers)
//   2. Environment variable (ECURVE_WORKERS)
//   3. Hardware estimation (this file)

// ApplyAdaptiveWorkers fills in Workers when it was left at zero. The value
// never exceeds the number of strategies to run, since each worker runs one
// strategy at a time.
func ApplyAdaptiveWorkers(cfg AppConfig, strategies int) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateWorkers(runtime.NumCPU(), strategies)
	}
	return cfg
}

// EstimateWorkers returns how many strategies to benchmark concurrently on a
// machine with numCPU cores. Running more strategies than cores skews the
// timings, so the estimate stays at or below the core count.
func EstimateWorkers(numCPU, strategies int) int {
	if strategies <= 0 {
		return 1
	}
	switch {
	case numCPU <= 1:
		return 1
	case numCPU < strategies:
		return numCPU
	default:
		return strategies
	}
}
