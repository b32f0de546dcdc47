package m_pricing_rule

// Field name constants for the pricing_rules table.
const (
	TableName = "pricing_rules"

	RuleID                        = "rule_id"
	HotelID                       = "hotel_id"
	Name                          = "name"
	Active                        = "active"
	Priority                      = "priority"
	StartDate                     = "start_date"
	EndDate                       = "end_date"
	MinNights                     = "min_nights"
	MaxNights                     = "max_nights"
	AdvanceBookingDays            = "advance_booking_days"
	DiscountPercentageNumerator   = "discount_percentage_numerator"
	DiscountPercentageDenominator = "discount_percentage_denominator"
	DiscountAmountNumerator       = "discount_amount_numerator"
	DiscountAmountDenominator     = "discount_amount_denominator"
	PriceAdjustmentNumerator      = "price_adjustment_numerator"
	PriceAdjustmentDenominator    = "price_adjustment_denominator"
	CreatedAt                     = "created_at"
	UpdatedAt                     = "updated_at"
)
