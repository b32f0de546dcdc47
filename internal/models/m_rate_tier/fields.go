package m_rate_tier

// Field name constants for the rate_tiers table.
const (
	TableName = "rate_tiers"

	TierID                     = "tier_id"
	RatePlanID                 = "rate_plan_id"
	MinNights                  = "min_nights"
	MaxNights                  = "max_nights"
	AdjustmentType             = "adjustment_type"
	AdjustmentValueNumerator   = "adjustment_value_numerator"
	AdjustmentValueDenominator = "adjustment_value_denominator"
	Priority                   = "priority"
	CreatedAt                  = "created_at"
	UpdatedAt                  = "updated_at"
)
