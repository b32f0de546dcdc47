package domain

import "math/big"

// AdjustmentType is the shared adjustment vocabulary used by rate tiers and
// rate overrides. Direction is explicit in the type, never inferred from the
// sign of the value.
type AdjustmentType string

const (
	AdjustPercentageIncrease AdjustmentType = "PERCENTAGE_INCREASE"
	AdjustPercentageDecrease AdjustmentType = "PERCENTAGE_DECREASE"
	AdjustFixedIncrease      AdjustmentType = "FIXED_INCREASE"
	AdjustFixedDecrease      AdjustmentType = "FIXED_DECREASE"
	AdjustMultiplier         AdjustmentType = "MULTIPLIER"
	AdjustSetRate            AdjustmentType = "SET_RATE"
)

// Adjustment is a single pricing transformation: a percentage, a flat amount,
// a multiplier, or an outright replacement rate.
type Adjustment struct {
	adjType AdjustmentType
	value   *Money
}

// NewAdjustment creates a validated Adjustment.
// For percentage types the value is the percent figure (15 means 15%).
func NewAdjustment(adjType AdjustmentType, value *Money) (*Adjustment, error) {
	if value == nil {
		return nil, ErrMissingAdjustmentValue
	}

	switch adjType {
	case AdjustPercentageIncrease, AdjustPercentageDecrease:
		if value.IsNegative() {
			return nil, ErrNegativePercentage
		}
	case AdjustMultiplier:
		if value.IsNegative() {
			return nil, ErrNegativeMultiplier
		}
	case AdjustFixedIncrease, AdjustFixedDecrease, AdjustSetRate:
		// Fixed amounts and replacement rates carry their own sign.
	default:
		return nil, ErrInvalidAdjustmentType
	}

	return &Adjustment{adjType: adjType, value: value.Copy()}, nil
}

// Type returns the adjustment type.
func (a *Adjustment) Type() AdjustmentType {
	return a.adjType
}

// Value returns a copy of the adjustment value.
func (a *Adjustment) Value() *Money {
	return a.value.Copy()
}

// ApplyTo applies the adjustment to a base amount and returns the result.
// PERCENTAGE_INCREASE: base * (1 + v/100)
// PERCENTAGE_DECREASE: base * (1 - v/100)
// FIXED_INCREASE/DECREASE: base ± v
// MULTIPLIER: base * v
// SET_RATE: v, ignoring base
func (a *Adjustment) ApplyTo(base *Money) *Money {
	switch a.adjType {
	case AdjustPercentageIncrease:
		return base.Add(base.MultiplyByRat(a.percentRat()))
	case AdjustPercentageDecrease:
		return base.Subtract(base.MultiplyByRat(a.percentRat()))
	case AdjustFixedIncrease:
		return base.Add(a.value)
	case AdjustFixedDecrease:
		return base.Subtract(a.value)
	case AdjustMultiplier:
		return base.Multiply(a.value)
	case AdjustSetRate:
		return a.value.Copy()
	default:
		return base.Copy()
	}
}

// percentRat converts the percent figure to a multiplier (15 -> 15/100).
func (a *Adjustment) percentRat() *big.Rat {
	return new(big.Rat).Quo(a.value.Rat(), big.NewRat(100, 1))
}
