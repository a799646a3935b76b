package reduce

import (
	"fmt"

	"github.com/murthyn/composer/types"
)

// Merge combines per-worker accumulator states into a single state using
// the declared per-field reduction rules.
//
// The inputs are not modified. All states must declare identical fields;
// any disagreement fails the whole merge with ErrReductionPolicy, since a
// partially merged state would silently misreport.
//
// Parameters:
//   - states: One state per worker
//
// Returns:
//   - *types.State: The merged state
//   - error: ErrNoWorkerStates for empty input, ErrReductionPolicy on
//     declaration mismatch
func Merge(states ...*types.State) (*types.State, error) {
	if len(states) == 0 {
		return nil, types.ErrNoWorkerStates
	}

	merged := states[0].Clone()
	for i, s := range states[1:] {
		if err := merged.Merge(s); err != nil {
			return nil, fmt.Errorf("merging worker state %d: %w", i+1, err)
		}
	}

	return merged, nil
}
