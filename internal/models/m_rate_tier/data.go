package m_rate_tier

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the rate_tiers table.
type Data struct {
	TierID                     string
	RatePlanID                 string
	MinNights                  int64
	MaxNights                  spanner.NullInt64
	AdjustmentType             string
	AdjustmentValueNumerator   int64
	AdjustmentValueDenominator int64
	Priority                   int64
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}
