// Package audit implements the append-only mutation trail for pricing
// primitives: structured before/after snapshots, field-level diffs, query
// summaries, and rollback support. Records are never edited after creation;
// a rollback is a new write through the normal mutation path.
package audit

import (
	"encoding/json"
	"fmt"

	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
)

// EntityType is the closed set of audited entity kinds.
type EntityType string

const (
	EntityRoomRate         EntityType = "ROOM_RATE"
	EntityRatePlan         EntityType = "RATE_PLAN"
	EntityRateOverride     EntityType = "RATE_OVERRIDE"
	EntityRateTier         EntityType = "RATE_TIER"
	EntityPackageComponent EntityType = "RATE_PACKAGE_COMPONENT"
	EntityPricingRule      EntityType = "PRICING_RULE"
	EntityBulkOperation    EntityType = "BULK_OPERATION"
)

// Snapshot is a structured capture of one entity's state at mutation time.
// Each entity type has its own constructor that enumerates the audited
// fields, so the diff engine can be tested exhaustively per entity; unknown
// entity types fall back to a generic flat key/value capture.
//
// Field keys are camelCase and stable: programmatic comparison uses the raw
// key, display uses FieldLabel. Optional fields that are unset are omitted
// entirely so the diff can classify them as added/removed.
type Snapshot struct {
	entity EntityType
	fields map[string]interface{}
}

// NewSnapshot creates a generic snapshot from a flat (or one-level-nested)
// field map. This is the forward-compatibility path for fields the typed
// constructors do not know about.
func NewSnapshot(entity EntityType, fields map[string]interface{}) *Snapshot {
	copied := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	return &Snapshot{entity: entity, fields: copied}
}

// RoomRateSnapshot captures a room rate cell.
func RoomRateSnapshot(r *domain.RoomRate) *Snapshot {
	return &Snapshot{
		entity: EntityRoomRate,
		fields: map[string]interface{}{
			"ratePlanId":         r.RatePlanID(),
			"roomTypeId":         r.RoomTypeID(),
			"date":               r.Date().String(),
			"rateAmount":         r.RateAmount().String(),
			"availabilityCount":  r.AvailabilityCount(),
			"stopSell":           r.StopSell(),
			"closedForArrival":   r.ClosedForArrival(),
			"closedForDeparture": r.ClosedForDeparture(),
		},
	}
}

// RatePlanSnapshot captures a rate plan.
func RatePlanSnapshot(p *domain.RatePlan) *Snapshot {
	fields := map[string]interface{}{
		"hotelId":       p.HotelID(),
		"code":          p.Code(),
		"name":          p.Name(),
		"planType":      p.PlanType(),
		"category":      p.Category(),
		"class":         p.Class(),
		"validFrom":     p.ValidFrom().String(),
		"isDefault":     p.IsDefault(),
		"isPackage":     p.IsPackage(),
		"nonRefundable": p.NonRefundable(),
		"status":        string(p.Status()),
	}
	if to := p.ValidTo(); to != nil {
		fields["validTo"] = to.String()
	}
	return &Snapshot{entity: EntityRatePlan, fields: fields}
}

// RateOverrideSnapshot captures a rate override.
func RateOverrideSnapshot(o *domain.RateOverride) *Snapshot {
	fields := map[string]interface{}{
		"ratePlanId":      o.RatePlanID(),
		"date":            o.Date().String(),
		"adjustmentType":  string(o.Adjustment().Type()),
		"adjustmentValue": o.Adjustment().Value().String(),
		"stopSell":        o.StopSell(),
	}
	if rt := o.RoomTypeID(); rt != nil {
		fields["roomTypeId"] = *rt
	}
	if o.Reason() != "" {
		fields["reason"] = o.Reason()
	}
	return &Snapshot{entity: EntityRateOverride, fields: fields}
}

// RateTierSnapshot captures a rate tier.
func RateTierSnapshot(t *domain.RateTier) *Snapshot {
	fields := map[string]interface{}{
		"ratePlanId":      t.RatePlanID(),
		"minNights":       t.MinNights(),
		"adjustmentType":  string(t.Adjustment().Type()),
		"adjustmentValue": t.Adjustment().Value().String(),
		"priority":        t.Priority(),
	}
	if max := t.MaxNights(); max != nil {
		fields["maxNights"] = *max
	}
	return &Snapshot{entity: EntityRateTier, fields: fields}
}

// PricingRuleSnapshot captures a pricing rule.
func PricingRuleSnapshot(r *domain.PricingRule) *Snapshot {
	fields := map[string]interface{}{
		"hotelId":  r.HotelID(),
		"name":     r.Name(),
		"active":   r.Active(),
		"priority": r.Priority(),
	}
	if d := r.StartDate(); d != nil {
		fields["startDate"] = d.String()
	}
	if d := r.EndDate(); d != nil {
		fields["endDate"] = d.String()
	}
	if n := r.MinNights(); n != nil {
		fields["minNights"] = *n
	}
	if n := r.MaxNights(); n != nil {
		fields["maxNights"] = *n
	}
	if n := r.AdvanceBookingDays(); n != nil {
		fields["advanceBookingDays"] = *n
	}
	if m := r.DiscountPercentage(); m != nil {
		fields["discountPercentage"] = m.String()
	}
	if m := r.DiscountAmount(); m != nil {
		fields["discountAmount"] = m.String()
	}
	if m := r.PriceAdjustment(); m != nil {
		fields["priceAdjustment"] = m.String()
	}
	return &Snapshot{entity: EntityPricingRule, fields: fields}
}

// PackageComponentSnapshot captures a package component.
func PackageComponentSnapshot(c *domain.RatePackageComponent) *Snapshot {
	fields := map[string]interface{}{
		"ratePlanId":    c.RatePlanID(),
		"name":          c.Name(),
		"componentType": string(c.ComponentType()),
		"included":      c.Included(),
		"quantity":      c.Quantity(),
		"pricingMode":   string(c.PricingMode()),
	}
	if m := c.UnitPrice(); m != nil {
		fields["unitPrice"] = m.String()
	}
	if m := c.AdultPrice(); m != nil {
		fields["adultPrice"] = m.String()
	}
	if m := c.ChildPrice(); m != nil {
		fields["childPrice"] = m.String()
	}
	if m := c.InfantPrice(); m != nil {
		fields["infantPrice"] = m.String()
	}
	return &Snapshot{entity: EntityPackageComponent, fields: fields}
}

// EntityType returns the snapshot's entity type.
func (s *Snapshot) EntityType() EntityType {
	return s.entity
}

// Fields returns a copy of the field map.
func (s *Snapshot) Fields() map[string]interface{} {
	if s == nil {
		return nil
	}
	copied := make(map[string]interface{}, len(s.fields))
	for k, v := range s.fields {
		copied[k] = v
	}
	return copied
}

// Get returns the value of one field and whether it is present.
func (s *Snapshot) Get(field string) (interface{}, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.fields[field]
	return v, ok
}

// StringField returns a string field value, or "" when absent.
func (s *Snapshot) StringField(field string) string {
	v, ok := s.Get(field)
	if !ok {
		return ""
	}
	str, _ := v.(string)
	return str
}

// Int64Field returns an integer field value, tolerating the float64 form
// JSON decoding produces for stored snapshots.
func (s *Snapshot) Int64Field(field string) int64 {
	v, ok := s.Get(field)
	if !ok {
		return 0
	}
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

// BoolField returns a boolean field value, or false when absent.
func (s *Snapshot) BoolField(field string) bool {
	v, ok := s.Get(field)
	if !ok {
		return false
	}
	b, _ := v.(bool)
	return b
}

// MarshalJSON serializes the field map for storage.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.fields)
}

// DecodeSnapshot parses a stored snapshot payload back into a Snapshot.
// Nested objects stay as nested maps; the diff compares them structurally.
func DecodeSnapshot(entity EntityType, raw []byte) (*Snapshot, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	fields := make(map[string]interface{})
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode %s snapshot: %w", entity, err)
	}
	return &Snapshot{entity: entity, fields: fields}, nil
}
