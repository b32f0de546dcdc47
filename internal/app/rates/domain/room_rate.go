package domain

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
)

// Field names for change tracking
const (
	FieldRateAmount         = "rate_amount"
	FieldAvailabilityCount  = "availability_count"
	FieldStopSell           = "stop_sell"
	FieldClosedForArrival   = "closed_for_arrival"
	FieldClosedForDeparture = "closed_for_departure"
)

// RoomRate is the base nightly price for one (rate plan, room type, date)
// cell, plus its availability flags. The triple is the natural key: writing
// an existing key updates in place, which makes per-day writes idempotent.
type RoomRate struct {
	ratePlanID         string
	roomTypeID         string
	date               civil.Date
	rateAmount         *Money
	availabilityCount  int64
	stopSell           bool
	closedForArrival   bool
	closedForDeparture bool
	version            int64
	createdAt          time.Time
	updatedAt          time.Time

	clock   clock.Clock
	changes *ChangeTracker
	events  []DomainEvent
}

// NewRoomRate creates a new RoomRate aggregate (for creation).
func NewRoomRate(
	ratePlanID, roomTypeID string,
	date civil.Date,
	rateAmount *Money,
	now time.Time,
	clk clock.Clock,
) (*RoomRate, error) {
	if ratePlanID == "" {
		return nil, ErrRatePlanNotFound
	}
	if roomTypeID == "" {
		return nil, ErrEmptyRoomType
	}
	if rateAmount == nil || rateAmount.IsNegative() {
		return nil, ErrNegativeRateAmount
	}

	r := &RoomRate{
		ratePlanID: ratePlanID,
		roomTypeID: roomTypeID,
		date:       date,
		rateAmount: rateAmount.Copy(),
		version:    0,
		createdAt:  now,
		updatedAt:  now,
		clock:      clk,
		changes:    NewChangeTracker(),
		events:     make([]DomainEvent, 0),
	}

	r.changes.MarkAll(
		FieldRateAmount, FieldAvailabilityCount, FieldStopSell,
		FieldClosedForArrival, FieldClosedForDeparture,
	)

	r.recordEvent(&RoomRateUpsertedEvent{
		RatePlanID: r.ratePlanID,
		RoomTypeID: r.roomTypeID,
		Date:       r.date,
		RateAmount: r.rateAmount.Copy(),
		UpsertedAt: now,
	})

	return r, nil
}

// ReconstructRoomRate reconstitutes a RoomRate from the database.
func ReconstructRoomRate(
	ratePlanID, roomTypeID string,
	date civil.Date,
	rateAmount *Money,
	availabilityCount int64,
	stopSell, closedForArrival, closedForDeparture bool,
	version int64,
	createdAt, updatedAt time.Time,
	clk clock.Clock,
) *RoomRate {
	return &RoomRate{
		ratePlanID:         ratePlanID,
		roomTypeID:         roomTypeID,
		date:               date,
		rateAmount:         rateAmount,
		availabilityCount:  availabilityCount,
		stopSell:           stopSell,
		closedForArrival:   closedForArrival,
		closedForDeparture: closedForDeparture,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
		clock:              clk,
		changes:            NewChangeTracker(),
		events:             make([]DomainEvent, 0),
	}
}

// Getters
func (r *RoomRate) RatePlanID() string          { return r.ratePlanID }
func (r *RoomRate) RoomTypeID() string          { return r.roomTypeID }
func (r *RoomRate) Date() civil.Date            { return r.date }
func (r *RoomRate) RateAmount() *Money          { return r.rateAmount.Copy() }
func (r *RoomRate) AvailabilityCount() int64    { return r.availabilityCount }
func (r *RoomRate) StopSell() bool              { return r.stopSell }
func (r *RoomRate) ClosedForArrival() bool      { return r.closedForArrival }
func (r *RoomRate) ClosedForDeparture() bool    { return r.closedForDeparture }
func (r *RoomRate) Version() int64              { return r.version }
func (r *RoomRate) CreatedAt() time.Time        { return r.createdAt }
func (r *RoomRate) UpdatedAt() time.Time        { return r.updatedAt }
func (r *RoomRate) Changes() *ChangeTracker     { return r.changes }
func (r *RoomRate) DomainEvents() []DomainEvent { return r.events }

// EntityID is the stable audit identifier for this cell: "plan|room|date".
func (r *RoomRate) EntityID() string {
	return fmt.Sprintf("%s|%s|%s", r.ratePlanID, r.roomTypeID, r.date.String())
}

// SetRateAmount updates the nightly price.
func (r *RoomRate) SetRateAmount(amount *Money) error {
	if amount == nil || amount.IsNegative() {
		return ErrNegativeRateAmount
	}

	r.rateAmount = amount.Copy()
	r.changes.MarkDirty(FieldRateAmount)

	r.recordEvent(&RoomRateUpsertedEvent{
		RatePlanID: r.ratePlanID,
		RoomTypeID: r.roomTypeID,
		Date:       r.date,
		RateAmount: r.rateAmount.Copy(),
		UpsertedAt: r.clock.Now(),
	})

	return nil
}

// SetAvailabilityCount updates the sellable inventory for the date.
func (r *RoomRate) SetAvailabilityCount(count int64) error {
	if count < 0 {
		return ErrNegativeAvailability
	}
	r.availabilityCount = count
	r.changes.MarkDirty(FieldAvailabilityCount)
	return nil
}

// SetStopSell closes or reopens the cell for sale.
func (r *RoomRate) SetStopSell(stopSell bool) {
	r.stopSell = stopSell
	r.changes.MarkDirty(FieldStopSell)
}

// SetClosedForArrival blocks stays starting on this date.
func (r *RoomRate) SetClosedForArrival(closed bool) {
	r.closedForArrival = closed
	r.changes.MarkDirty(FieldClosedForArrival)
}

// SetClosedForDeparture blocks stays ending on this date.
func (r *RoomRate) SetClosedForDeparture(closed bool) {
	r.closedForDeparture = closed
	r.changes.MarkDirty(FieldClosedForDeparture)
}

func (r *RoomRate) recordEvent(event DomainEvent) {
	r.events = append(r.events, event)
}

// ClearEvents clears all recorded domain events (called after publishing).
func (r *RoomRate) ClearEvents() {
	r.events = make([]DomainEvent, 0)
}
