package m_room_rate

import (
	"time"

	"cloud.google.com/go/civil"
)

// Data represents the database model for the room_rates table.
type Data struct {
	RatePlanID            string
	RoomTypeID            string
	Date                  civil.Date
	RateAmountNumerator   int64
	RateAmountDenominator int64
	AvailabilityCount     int64
	StopSell              bool
	ClosedForArrival      bool
	ClosedForDeparture    bool
	Version               int64
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
