package m_rate_override

import (
	"time"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
)

// Data represents the database model for the rate_overrides table.
// RoomTypeID is NULL for plan-wide overrides.
type Data struct {
	OverrideID                 string
	RatePlanID                 string
	RoomTypeID                 spanner.NullString
	Date                       civil.Date
	AdjustmentType             string
	AdjustmentValueNumerator   int64
	AdjustmentValueDenominator int64
	Reason                     string
	StopSell                   bool
	ClosedForArrival           bool
	ClosedForDeparture         bool
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}
