package m_rate_override

// Field name constants for the rate_overrides table.
const (
	TableName = "rate_overrides"

	OverrideID                 = "override_id"
	RatePlanID                 = "rate_plan_id"
	RoomTypeID                 = "room_type_id"
	Date                       = "date"
	AdjustmentType             = "adjustment_type"
	AdjustmentValueNumerator   = "adjustment_value_numerator"
	AdjustmentValueDenominator = "adjustment_value_denominator"
	Reason                     = "reason"
	StopSell                   = "stop_sell"
	ClosedForArrival           = "closed_for_arrival"
	ClosedForDeparture         = "closed_for_departure"
	CreatedAt                  = "created_at"
	UpdatedAt                  = "updated_at"
)
