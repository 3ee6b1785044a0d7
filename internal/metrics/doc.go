// Package metrics collects runtime, system and benchmark measurements for
// the ecurve tools. Benchmark counters live in a private Prometheus registry
// so that tests and repeated runs never collide on global state.
package metrics
