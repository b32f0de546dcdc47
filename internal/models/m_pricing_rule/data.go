package m_pricing_rule

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the pricing_rules table.
// Exactly one of the three adjustment pairs is non-NULL per row.
type Data struct {
	RuleID                        string
	HotelID                       string
	Name                          string
	Active                        bool
	Priority                      int64
	StartDate                     spanner.NullDate
	EndDate                       spanner.NullDate
	MinNights                     spanner.NullInt64
	MaxNights                     spanner.NullInt64
	AdvanceBookingDays            spanner.NullInt64
	DiscountPercentageNumerator   spanner.NullInt64
	DiscountPercentageDenominator spanner.NullInt64
	DiscountAmountNumerator       spanner.NullInt64
	DiscountAmountDenominator     spanner.NullInt64
	PriceAdjustmentNumerator      spanner.NullInt64
	PriceAdjustmentDenominator    spanner.NullInt64
	CreatedAt                     time.Time
	UpdatedAt                     time.Time
}
