package bench

import "github.com/agbru/ecurve/internal/field"

// StrategiesToRun resolves a -strategy value. "all" selects every registered
// strategy in name order; an unknown name selects nothing.
func StrategiesToRun(name string, factory field.StrategyFactory) []field.Strategy {
	if name == "all" {
		keys := factory.List()
		strategies := make([]field.Strategy, 0, len(keys))
		for _, k := range keys {
			if s, err := factory.Get(k); err == nil {
				strategies = append(strategies, s)
			}
		}
		return strategies
	}
	if s, err := factory.Get(name); err == nil {
		return []field.Strategy{s}
	}
	return nil
}
