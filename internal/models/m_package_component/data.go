package m_package_component

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the rate_package_components table.
// Per-unit components carry the unit price pair; per-audience components
// carry the adult pair and optionally the child and infant pairs.
type Data struct {
	ComponentID            string
	RatePlanID             string
	Name                   string
	ComponentType          string
	Included               bool
	Quantity               int64
	PricingMode            string
	UnitPriceNumerator     spanner.NullInt64
	UnitPriceDenominator   spanner.NullInt64
	AdultPriceNumerator    spanner.NullInt64
	AdultPriceDenominator  spanner.NullInt64
	ChildPriceNumerator    spanner.NullInt64
	ChildPriceDenominator  spanner.NullInt64
	InfantPriceNumerator   spanner.NullInt64
	InfantPriceDenominator spanner.NullInt64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
