package domain

import (
	"time"

	"cloud.google.com/go/civil"
)

// RateOverride is a date-specific adjustment to a rate plan's resolved price.
// An override with no room type applies to every room type on that plan/date;
// a room-type-specific override supersedes the plan-wide one for the same
// date (only the specific one applies, never both).
type RateOverride struct {
	id                 string
	ratePlanID         string
	roomTypeID         *string // nil means plan-wide
	date               civil.Date
	adjustment         *Adjustment
	reason             string
	stopSell           bool
	closedForArrival   bool
	closedForDeparture bool
	createdAt          time.Time
	updatedAt          time.Time
}

// NewRateOverride creates a validated RateOverride.
func NewRateOverride(
	id, ratePlanID string,
	roomTypeID *string,
	date civil.Date,
	adjustment *Adjustment,
	reason string,
	now time.Time,
) (*RateOverride, error) {
	if ratePlanID == "" {
		return nil, ErrRatePlanNotFound
	}
	if adjustment == nil {
		return nil, ErrMissingAdjustmentValue
	}
	if roomTypeID != nil && *roomTypeID == "" {
		return nil, ErrEmptyRoomType
	}

	return &RateOverride{
		id:         id,
		ratePlanID: ratePlanID,
		roomTypeID: roomTypeID,
		date:       date,
		adjustment: adjustment,
		reason:     reason,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructRateOverride reconstitutes a RateOverride from the database.
func ReconstructRateOverride(
	id, ratePlanID string,
	roomTypeID *string,
	date civil.Date,
	adjustment *Adjustment,
	reason string,
	stopSell, closedForArrival, closedForDeparture bool,
	createdAt, updatedAt time.Time,
) *RateOverride {
	return &RateOverride{
		id:                 id,
		ratePlanID:         ratePlanID,
		roomTypeID:         roomTypeID,
		date:               date,
		adjustment:         adjustment,
		reason:             reason,
		stopSell:           stopSell,
		closedForArrival:   closedForArrival,
		closedForDeparture: closedForDeparture,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// Getters
func (o *RateOverride) ID() string               { return o.id }
func (o *RateOverride) RatePlanID() string       { return o.ratePlanID }
func (o *RateOverride) RoomTypeID() *string      { return o.roomTypeID }
func (o *RateOverride) Date() civil.Date         { return o.date }
func (o *RateOverride) Adjustment() *Adjustment  { return o.adjustment }
func (o *RateOverride) Reason() string           { return o.reason }
func (o *RateOverride) StopSell() bool           { return o.stopSell }
func (o *RateOverride) ClosedForArrival() bool   { return o.closedForArrival }
func (o *RateOverride) ClosedForDeparture() bool { return o.closedForDeparture }
func (o *RateOverride) CreatedAt() time.Time     { return o.createdAt }
func (o *RateOverride) UpdatedAt() time.Time     { return o.updatedAt }

// SetAvailabilityFlags marks the override's availability restrictions.
func (o *RateOverride) SetAvailabilityFlags(stopSell, closedForArrival, closedForDeparture bool) {
	o.stopSell = stopSell
	o.closedForArrival = closedForArrival
	o.closedForDeparture = closedForDeparture
}

// IsRoomTypeSpecific reports whether the override targets a single room type.
func (o *RateOverride) IsRoomTypeSpecific() bool {
	return o.roomTypeID != nil
}

// AppliesTo reports whether the override covers the given cell.
func (o *RateOverride) AppliesTo(roomTypeID string, date civil.Date) bool {
	if o.date != date {
		return false
	}
	if o.roomTypeID != nil && *o.roomTypeID != roomTypeID {
		return false
	}
	return true
}

// SelectOverride picks the single winning override for a cell: a room-type-
// specific override beats a plan-wide one regardless of creation order.
// Returns nil when no override covers the cell.
func SelectOverride(overrides []*RateOverride, roomTypeID string, date civil.Date) *RateOverride {
	var planWide *RateOverride
	for _, o := range overrides {
		if !o.AppliesTo(roomTypeID, date) {
			continue
		}
		if o.IsRoomTypeSpecific() {
			return o
		}
		if planWide == nil {
			planWide = o
		}
	}
	return planWide
}
