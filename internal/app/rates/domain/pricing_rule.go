package domain

import (
	"math/big"
	"sort"
	"time"

	"cloud.google.com/go/civil"
)

// PricingRule is a hotel-wide, plan-independent adjustment gated by booking
// conditions. Rules are evaluated in descending priority and the first
// matching active rule is applied; rules are never cumulative with each
// other, only with the tier/override layers above them.
//
// Exactly one of discountPercentage, discountAmount or priceAdjustment is
// set. discountPercentage is always subtractive; priceAdjustment is a signed
// flat amount.
type PricingRule struct {
	id                 string
	hotelID            string
	name               string
	active             bool
	priority           int64
	startDate          *civil.Date
	endDate            *civil.Date
	minNights          *int64
	maxNights          *int64
	advanceBookingDays *int64
	discountPercentage *Money
	discountAmount     *Money
	priceAdjustment    *Money
	createdAt          time.Time
	updatedAt          time.Time
}

// NewPricingRule creates a validated PricingRule.
func NewPricingRule(
	id, hotelID, name string,
	active bool,
	priority int64,
	startDate, endDate *civil.Date,
	minNights, maxNights, advanceBookingDays *int64,
	discountPercentage, discountAmount, priceAdjustment *Money,
	now time.Time,
) (*PricingRule, error) {
	if priority < 0 {
		return nil, ErrNegativePriority
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, ErrInvalidRuleDateRange
	}

	set := 0
	for _, v := range []*Money{discountPercentage, discountAmount, priceAdjustment} {
		if v != nil {
			set++
		}
	}
	if set != 1 {
		return nil, ErrRuleAdjustmentCount
	}
	if discountPercentage != nil && discountPercentage.IsNegative() {
		return nil, ErrNegativePercentage
	}

	return &PricingRule{
		id:                 id,
		hotelID:            hotelID,
		name:               name,
		active:             active,
		priority:           priority,
		startDate:          startDate,
		endDate:            endDate,
		minNights:          minNights,
		maxNights:          maxNights,
		advanceBookingDays: advanceBookingDays,
		discountPercentage: discountPercentage,
		discountAmount:     discountAmount,
		priceAdjustment:    priceAdjustment,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// ReconstructPricingRule reconstitutes a PricingRule from the database.
func ReconstructPricingRule(
	id, hotelID, name string,
	active bool,
	priority int64,
	startDate, endDate *civil.Date,
	minNights, maxNights, advanceBookingDays *int64,
	discountPercentage, discountAmount, priceAdjustment *Money,
	createdAt, updatedAt time.Time,
) *PricingRule {
	return &PricingRule{
		id:                 id,
		hotelID:            hotelID,
		name:               name,
		active:             active,
		priority:           priority,
		startDate:          startDate,
		endDate:            endDate,
		minNights:          minNights,
		maxNights:          maxNights,
		advanceBookingDays: advanceBookingDays,
		discountPercentage: discountPercentage,
		discountAmount:     discountAmount,
		priceAdjustment:    priceAdjustment,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// Getters
func (r *PricingRule) ID() string                  { return r.id }
func (r *PricingRule) HotelID() string             { return r.hotelID }
func (r *PricingRule) Name() string                { return r.name }
func (r *PricingRule) Active() bool                { return r.active }
func (r *PricingRule) Priority() int64             { return r.priority }
func (r *PricingRule) StartDate() *civil.Date      { return r.startDate }
func (r *PricingRule) EndDate() *civil.Date        { return r.endDate }
func (r *PricingRule) MinNights() *int64           { return r.minNights }
func (r *PricingRule) MaxNights() *int64           { return r.maxNights }
func (r *PricingRule) AdvanceBookingDays() *int64  { return r.advanceBookingDays }
func (r *PricingRule) DiscountPercentage() *Money  { return r.discountPercentage }
func (r *PricingRule) DiscountAmount() *Money      { return r.discountAmount }
func (r *PricingRule) PriceAdjustment() *Money     { return r.priceAdjustment }
func (r *PricingRule) CreatedAt() time.Time        { return r.createdAt }
func (r *PricingRule) UpdatedAt() time.Time        { return r.updatedAt }

// Matches reports whether every condition of the rule is satisfied for a
// stay date, length of stay, and number of days booked in advance.
func (r *PricingRule) Matches(date civil.Date, lengthOfStay, advanceDays int64) bool {
	if !r.active {
		return false
	}
	if r.startDate != nil && date.Before(*r.startDate) {
		return false
	}
	if r.endDate != nil && r.endDate.Before(date) {
		return false
	}
	if r.minNights != nil && lengthOfStay < *r.minNights {
		return false
	}
	if r.maxNights != nil && lengthOfStay > *r.maxNights {
		return false
	}
	if r.advanceBookingDays != nil && advanceDays < *r.advanceBookingDays {
		return false
	}
	return true
}

// Apply applies the rule's single adjustment to a base amount.
func (r *PricingRule) Apply(base *Money) *Money {
	switch {
	case r.discountPercentage != nil:
		pct := new(big.Rat).Quo(r.discountPercentage.Rat(), big.NewRat(100, 1))
		return base.Subtract(base.MultiplyByRat(pct))
	case r.discountAmount != nil:
		return base.Subtract(r.discountAmount)
	case r.priceAdjustment != nil:
		return base.Add(r.priceAdjustment)
	default:
		return base.Copy()
	}
}

// SelectRule returns the first matching active rule when rules are ordered
// by descending priority, or nil when none match. Evaluation stops at the
// first match.
func SelectRule(rules []*PricingRule, date civil.Date, lengthOfStay, advanceDays int64) *PricingRule {
	ordered := make([]*PricingRule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].priority > ordered[j].priority
	})

	for _, rule := range ordered {
		if rule.Matches(date, lengthOfStay, advanceDays) {
			return rule
		}
	}
	return nil
}
