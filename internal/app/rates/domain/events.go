package domain

import (
	"time"

	"cloud.google.com/go/civil"
)

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// RatePlanCreatedEvent is emitted when a rate plan is created.
type RatePlanCreatedEvent struct {
	RatePlanID string
	HotelID    string
	Code       string
	Name       string
	CreatedAt  time.Time
}

func (e *RatePlanCreatedEvent) EventType() string   { return "rateplan.created" }
func (e *RatePlanCreatedEvent) AggregateID() string { return e.RatePlanID }

// RatePlanUpdatedEvent is emitted when rate plan details are updated.
type RatePlanUpdatedEvent struct {
	RatePlanID string
	Code       string
	Name       string
	UpdatedAt  time.Time
}

func (e *RatePlanUpdatedEvent) EventType() string   { return "rateplan.updated" }
func (e *RatePlanUpdatedEvent) AggregateID() string { return e.RatePlanID }

// RatePlanStatusChangedEvent is emitted when a plan is activated, deactivated
// or retired.
type RatePlanStatusChangedEvent struct {
	RatePlanID string
	Status     string
	Timestamp  time.Time
}

func (e *RatePlanStatusChangedEvent) EventType() string   { return "rateplan.status_changed" }
func (e *RatePlanStatusChangedEvent) AggregateID() string { return e.RatePlanID }

// RoomRateUpsertedEvent is emitted when a nightly rate cell is written.
type RoomRateUpsertedEvent struct {
	RatePlanID string
	RoomTypeID string
	Date       civil.Date
	RateAmount *Money
	UpsertedAt time.Time
}

func (e *RoomRateUpsertedEvent) EventType() string { return "roomrate.upserted" }
func (e *RoomRateUpsertedEvent) AggregateID() string {
	return e.RatePlanID + "|" + e.RoomTypeID + "|" + e.Date.String()
}

// RateOverrideCreatedEvent is emitted when a date override is created.
type RateOverrideCreatedEvent struct {
	OverrideID string
	RatePlanID string
	RoomTypeID *string
	Date       civil.Date
	Reason     string
	CreatedAt  time.Time
}

func (e *RateOverrideCreatedEvent) EventType() string   { return "rateoverride.created" }
func (e *RateOverrideCreatedEvent) AggregateID() string { return e.OverrideID }

// PricingRuleCreatedEvent is emitted when a hotel-wide pricing rule is created.
type PricingRuleCreatedEvent struct {
	RuleID    string
	HotelID   string
	Name      string
	CreatedAt time.Time
}

func (e *PricingRuleCreatedEvent) EventType() string   { return "pricingrule.created" }
func (e *PricingRuleCreatedEvent) AggregateID() string { return e.RuleID }

// BulkApplyCompletedEvent is emitted once per bulk mutation batch.
type BulkApplyCompletedEvent struct {
	OperationID string
	Succeeded   int
	Failed      int
	CompletedAt time.Time
}

func (e *BulkApplyCompletedEvent) EventType() string   { return "bulk.apply_completed" }
func (e *BulkApplyCompletedEvent) AggregateID() string { return e.OperationID }
