package search

import (
	"fmt"

	"github.com/kailas-cloud/catalogai/internal/domain/catalog"
	"github.com/kailas-cloud/catalogai/internal/domain/search/filter"
)

// PriceTiers splits prices into budget [0, BudgetBelow), medium
// [BudgetBelow, PremiumFrom) and premium [PremiumFrom, inf).
type PriceTiers struct {
	BudgetBelow float64
	PremiumFrom float64
}

// DefaultPriceTiers are used when the configuration leaves tiers unset.
var DefaultPriceTiers = PriceTiers{BudgetBelow: 100, PremiumFrom: 500}

// Validate checks that the tiers are ordered.
func (t PriceTiers) Validate() error {
	if t.BudgetBelow <= 0 || t.PremiumFrom <= t.BudgetBelow {
		return fmt.Errorf("invalid price tiers: budget below %g, premium from %g", t.BudgetBelow, t.PremiumFrom)
	}
	return nil
}

// Range returns the price range of tier. ok is false for unknown tiers.
func (t PriceTiers) Range(tier filter.PriceTier) (r catalog.PriceRange, ok bool) {
	lo, hi := t.BudgetBelow, t.PremiumFrom
	var err error
	switch tier {
	case filter.Budget:
		r, err = catalog.NewPriceRange(nil, &lo)
	case filter.Medium:
		r, err = catalog.NewPriceRange(&lo, &hi)
	case filter.Premium:
		r, err = catalog.NewPriceRange(&hi, nil)
	default:
		return catalog.PriceRange{}, false
	}
	return r, err == nil
}
