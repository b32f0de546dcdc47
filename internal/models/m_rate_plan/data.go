package m_rate_plan

import (
	"time"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
)

// Data represents the database model for the rate_plans table.
type Data struct {
	RatePlanID    string
	HotelID       string
	Code          string
	Name          string
	PlanType      string
	Category      string
	Class         string
	ValidFrom     civil.Date
	ValidTo       spanner.NullDate
	IsDefault     bool
	IsPackage     bool
	NonRefundable bool
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
