package solver

import (
	"fmt"
	"time"
)

// Tier is a named effort level. Longer budgets explore more of the search
// space with the same algorithm; they never switch strategies.
type Tier string

const (
	TierQuick    Tier = "quick"
	TierStandard Tier = "standard"
	TierThorough Tier = "thorough"
	TierDeep     Tier = "deep"
)

var tierBudgets = map[Tier]time.Duration{
	TierQuick:    30 * time.Second,
	TierStandard: 60 * time.Second,
	TierThorough: 180 * time.Second,
	TierDeep:     300 * time.Second,
}

// Budget returns the wall-clock time budget for the tier.
func (t Tier) Budget() time.Duration {
	return tierBudgets[t]
}

// ParseTier maps a user-supplied tier name to a Tier.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if _, ok := tierBudgets[t]; !ok {
		return "", fmt.Errorf("unknown solver tier %q (want quick, standard, thorough or deep)", s)
	}
	return t, nil
}

// TierForBudget maps a raw seconds value to the tier with that budget, for
// callers that pass timeLimitSeconds directly.
func TierForBudget(seconds int) (Tier, error) {
	d := time.Duration(seconds) * time.Second
	for tier, budget := range tierBudgets {
		if budget == d {
			return tier, nil
		}
	}
	return "", fmt.Errorf("no solver tier with a %ds budget (want 30, 60, 180 or 300)", seconds)
}
