package domain

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
)

// Field names for change tracking
const (
	FieldPlanName      = "name"
	FieldPlanType      = "plan_type"
	FieldPlanCategory  = "category"
	FieldPlanClass     = "class"
	FieldValidFrom     = "valid_from"
	FieldValidTo       = "valid_to"
	FieldIsDefault     = "is_default"
	FieldIsPackage     = "is_package"
	FieldNonRefundable = "non_refundable"
	FieldPlanStatus    = "status"
)

// PlanStatus represents the lifecycle status of a rate plan.
// Plans are never physically deleted while history references them;
// retirement is the terminal soft-delete state.
type PlanStatus string

const (
	PlanStatusActive   PlanStatus = "active"
	PlanStatusInactive PlanStatus = "inactive"
	PlanStatusRetired  PlanStatus = "retired"
)

// RatePlan is the aggregate root for a named pricing policy under which
// nightly prices are quoted ("Best Available Rate", "Breakfast Package", ...).
type RatePlan struct {
	id            string
	hotelID       string
	code          string
	name          string
	planType      string
	category      string
	class         string
	validFrom     civil.Date
	validTo       *civil.Date // nil means open-ended; window is [validFrom, validTo)
	isDefault     bool
	isPackage     bool
	nonRefundable bool
	status        PlanStatus
	createdAt     time.Time
	updatedAt     time.Time

	clock   clock.Clock
	changes *ChangeTracker
	events  []DomainEvent
}

// NewRatePlan creates a new RatePlan aggregate (for creation).
func NewRatePlan(
	id, hotelID, code, name, planType, category, class string,
	validFrom civil.Date,
	validTo *civil.Date,
	isDefault, isPackage, nonRefundable bool,
	now time.Time,
	clk clock.Clock,
) (*RatePlan, error) {
	if code == "" {
		return nil, ErrEmptyPlanCode
	}
	if name == "" {
		return nil, ErrEmptyPlanName
	}
	if validTo != nil && !validFrom.Before(*validTo) {
		return nil, ErrInvalidValidityWindow
	}

	p := &RatePlan{
		id:            id,
		hotelID:       hotelID,
		code:          code,
		name:          name,
		planType:      planType,
		category:      category,
		class:         class,
		validFrom:     validFrom,
		validTo:       validTo,
		isDefault:     isDefault,
		isPackage:     isPackage,
		nonRefundable: nonRefundable,
		status:        PlanStatusActive,
		createdAt:     now,
		updatedAt:     now,
		clock:         clk,
		changes:       NewChangeTracker(),
		events:        make([]DomainEvent, 0),
	}

	p.changes.MarkAll(
		FieldPlanName, FieldPlanType, FieldPlanCategory, FieldPlanClass,
		FieldValidFrom, FieldValidTo, FieldIsDefault, FieldIsPackage,
		FieldNonRefundable, FieldPlanStatus,
	)

	p.recordEvent(&RatePlanCreatedEvent{
		RatePlanID: p.id,
		HotelID:    p.hotelID,
		Code:       p.code,
		Name:       p.name,
		CreatedAt:  p.createdAt,
	})

	return p, nil
}

// ReconstructRatePlan reconstitutes a RatePlan from the database.
func ReconstructRatePlan(
	id, hotelID, code, name, planType, category, class string,
	validFrom civil.Date,
	validTo *civil.Date,
	isDefault, isPackage, nonRefundable bool,
	status PlanStatus,
	createdAt, updatedAt time.Time,
	clk clock.Clock,
) *RatePlan {
	return &RatePlan{
		id:            id,
		hotelID:       hotelID,
		code:          code,
		name:          name,
		planType:      planType,
		category:      category,
		class:         class,
		validFrom:     validFrom,
		validTo:       validTo,
		isDefault:     isDefault,
		isPackage:     isPackage,
		nonRefundable: nonRefundable,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		clock:         clk,
		changes:       NewChangeTracker(),
		events:        make([]DomainEvent, 0),
	}
}

// Getters
func (p *RatePlan) ID() string                { return p.id }
func (p *RatePlan) HotelID() string           { return p.hotelID }
func (p *RatePlan) Code() string              { return p.code }
func (p *RatePlan) Name() string              { return p.name }
func (p *RatePlan) PlanType() string          { return p.planType }
func (p *RatePlan) Category() string          { return p.category }
func (p *RatePlan) Class() string             { return p.class }
func (p *RatePlan) ValidFrom() civil.Date     { return p.validFrom }
func (p *RatePlan) ValidTo() *civil.Date      { return p.validTo }
func (p *RatePlan) IsDefault() bool           { return p.isDefault }
func (p *RatePlan) IsPackage() bool           { return p.isPackage }
func (p *RatePlan) NonRefundable() bool       { return p.nonRefundable }
func (p *RatePlan) Status() PlanStatus        { return p.status }
func (p *RatePlan) CreatedAt() time.Time      { return p.createdAt }
func (p *RatePlan) UpdatedAt() time.Time      { return p.updatedAt }
func (p *RatePlan) Changes() *ChangeTracker   { return p.changes }
func (p *RatePlan) DomainEvents() []DomainEvent { return p.events }

// SetName updates the plan display name.
func (p *RatePlan) SetName(name string) error {
	if err := p.checkNotRetired(); err != nil {
		return err
	}
	if name == "" {
		return ErrEmptyPlanName
	}

	p.name = name
	p.changes.MarkDirty(FieldPlanName)

	p.recordEvent(&RatePlanUpdatedEvent{
		RatePlanID: p.id,
		Code:       p.code,
		Name:       p.name,
		UpdatedAt:  p.clock.Now(),
	})

	return nil
}

// SetValidity updates the validity window [validFrom, validTo).
func (p *RatePlan) SetValidity(validFrom civil.Date, validTo *civil.Date) error {
	if err := p.checkNotRetired(); err != nil {
		return err
	}
	if validTo != nil && !validFrom.Before(*validTo) {
		return ErrInvalidValidityWindow
	}

	p.validFrom = validFrom
	p.validTo = validTo
	p.changes.MarkDirty(FieldValidFrom)
	p.changes.MarkDirty(FieldValidTo)

	p.recordEvent(&RatePlanUpdatedEvent{
		RatePlanID: p.id,
		Code:       p.code,
		Name:       p.name,
		UpdatedAt:  p.clock.Now(),
	})

	return nil
}

// Deactivate moves the plan out of sale without losing history.
func (p *RatePlan) Deactivate(now time.Time) error {
	if err := p.checkNotRetired(); err != nil {
		return err
	}

	p.status = PlanStatusInactive
	p.changes.MarkDirty(FieldPlanStatus)
	p.recordEvent(&RatePlanStatusChangedEvent{RatePlanID: p.id, Status: string(p.status), Timestamp: now})
	return nil
}

// Activate returns an inactive plan to sale.
func (p *RatePlan) Activate(now time.Time) error {
	if err := p.checkNotRetired(); err != nil {
		return err
	}

	p.status = PlanStatusActive
	p.changes.MarkDirty(FieldPlanStatus)
	p.recordEvent(&RatePlanStatusChangedEvent{RatePlanID: p.id, Status: string(p.status), Timestamp: now})
	return nil
}

// Retire soft-deletes the plan. Room rates keyed to it remain readable.
func (p *RatePlan) Retire(now time.Time) error {
	if p.status == PlanStatusRetired {
		return ErrAlreadyRetired
	}

	p.status = PlanStatusRetired
	p.changes.MarkDirty(FieldPlanStatus)
	p.recordEvent(&RatePlanStatusChangedEvent{RatePlanID: p.id, Status: string(p.status), Timestamp: now})
	return nil
}

// IsBookableOn reports whether the plan can quote rates for a stay date.
func (p *RatePlan) IsBookableOn(date civil.Date) bool {
	if p.status != PlanStatusActive {
		return false
	}
	if date.Before(p.validFrom) {
		return false
	}
	if p.validTo != nil && !date.Before(*p.validTo) {
		return false
	}
	return true
}

func (p *RatePlan) checkNotRetired() error {
	if p.status == PlanStatusRetired {
		return ErrPlanRetired
	}
	return nil
}

func (p *RatePlan) recordEvent(event DomainEvent) {
	p.events = append(p.events, event)
}

// ClearEvents clears all recorded domain events (called after publishing).
func (p *RatePlan) ClearEvents() {
	p.events = make([]DomainEvent, 0)
}
