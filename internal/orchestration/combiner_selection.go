package orchestration

import (
	"github.com/abertrand/dsadd/internal/ndarray"
)

// GetCombinersToRun determines which combine strategies should be executed
// based on the configured selection. Returns strategies in alphabetically
// sorted order for consistent, reproducible behavior.
//
// Parameters:
//   - strategy: The configured strategy name, or "all" for every registered
//     strategy.
//   - factory: The combiner factory to retrieve implementations from.
//
// Returns:
//   - []ndarray.Combiner: A slice of strategies to execute; nil when the
//     name matches nothing.
func GetCombinersToRun(strategy string, factory ndarray.Factory) []ndarray.Combiner {
	if strategy == "all" {
		keys := factory.List() // List() returns sorted keys
		combiners := make([]ndarray.Combiner, 0, len(keys))
		for _, k := range keys {
			if comb, err := factory.Get(k); err == nil {
				combiners = append(combiners, comb)
			}
		}
		return combiners
	}
	if comb, err := factory.Get(strategy); err == nil {
		return []ndarray.Combiner{comb}
	}
	return nil
}
