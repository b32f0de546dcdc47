package m_room_rate

// Field name constants for the room_rates table. The table is keyed
// (rate_plan_id, room_type_id, date); one row is one grid cell.
const (
	TableName = "room_rates"

	RatePlanID            = "rate_plan_id"
	RoomTypeID            = "room_type_id"
	Date                  = "date"
	RateAmountNumerator   = "rate_amount_numerator"
	RateAmountDenominator = "rate_amount_denominator"
	AvailabilityCount     = "availability_count"
	StopSell              = "stop_sell"
	ClosedForArrival      = "closed_for_arrival"
	ClosedForDeparture    = "closed_for_departure"
	Version               = "version"
	CreatedAt             = "created_at"
	UpdatedAt             = "updated_at"
)
