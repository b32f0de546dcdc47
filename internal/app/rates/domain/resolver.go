package domain

import (
	"cloud.google.com/go/civil"
)

// ResolveInput carries one cell's coordinates plus every pricing primitive in
// effect for it. Resolution is pure: all I/O happens before this point.
type ResolveInput struct {
	Plan         *RatePlan
	RoomTypeID   string
	Date         civil.Date
	GuestType    GuestType // defaults to GuestAdult
	LengthOfStay int64     // defaults to 1
	BookingDate  civil.Date // for advance-booking rule conditions; zero means booking today

	BaseRate   *RoomRate // nil resolves to ErrNoBaseRate
	Tiers      []*RateTier
	Overrides  []*RateOverride
	Rules      []*PricingRule
	Components []*RatePackageComponent
}

// RateMatrixCell is the resolved pricing/availability state for one
// (rate plan, room type, date, guest type) combination.
type RateMatrixCell struct {
	RatePlanID   string
	RatePlanCode string
	RoomTypeID   string
	Date         civil.Date
	GuestType    GuestType

	BaseRate  *Money
	FinalRate *Money
	// PackageComponentTotal is reported separately from FinalRate.
	PackageComponentTotal *Money

	AppliedTierID     *string
	AppliedOverrideID *string
	AppliedRuleID     *string

	AvailabilityCount  int64
	StopSell           bool
	ClosedForArrival   bool
	ClosedForDeparture bool
}

// Resolve computes the effective nightly price for one cell by layering the
// pricing primitives in precedence order. Each layer consumes the output of
// the previous one as its base:
//
//  1. RoomRate base price (absent base rate fails with ErrNoBaseRate)
//  2. first matching RateTier, ascending priority
//  3. most specific matching RateOverride (room-type beats plan-wide)
//  4. first matching active PricingRule, descending priority
//  5. package component totals, reported separately
//
// Availability flags are OR-ed across the RoomRate and the applied override,
// never adjusted arithmetically. The final rate is clamped at zero.
func Resolve(in ResolveInput) (*RateMatrixCell, error) {
	if in.BaseRate == nil {
		return nil, ErrNoBaseRate
	}

	guestType := in.GuestType
	if guestType == "" {
		guestType = GuestAdult
	}
	lengthOfStay := in.LengthOfStay
	if lengthOfStay < 1 {
		lengthOfStay = 1
	}
	advanceDays := int64(0)
	if in.BookingDate.IsValid() {
		if d := in.Date.DaysSince(in.BookingDate); d > 0 {
			advanceDays = int64(d)
		}
	}

	cell := &RateMatrixCell{
		RatePlanID:         in.Plan.ID(),
		RatePlanCode:       in.Plan.Code(),
		RoomTypeID:         in.RoomTypeID,
		Date:               in.Date,
		GuestType:          guestType,
		BaseRate:           in.BaseRate.RateAmount(),
		AvailabilityCount:  in.BaseRate.AvailabilityCount(),
		StopSell:           in.BaseRate.StopSell(),
		ClosedForArrival:   in.BaseRate.ClosedForArrival(),
		ClosedForDeparture: in.BaseRate.ClosedForDeparture(),
	}

	rate := cell.BaseRate.Copy()

	if tier := SelectTier(in.Tiers, lengthOfStay); tier != nil {
		rate = tier.Adjustment().ApplyTo(rate)
		id := tier.ID()
		cell.AppliedTierID = &id
	}

	if override := SelectOverride(in.Overrides, in.RoomTypeID, in.Date); override != nil {
		rate = override.Adjustment().ApplyTo(rate)
		id := override.ID()
		cell.AppliedOverrideID = &id

		cell.StopSell = cell.StopSell || override.StopSell()
		cell.ClosedForArrival = cell.ClosedForArrival || override.ClosedForArrival()
		cell.ClosedForDeparture = cell.ClosedForDeparture || override.ClosedForDeparture()
	}

	if rule := SelectRule(in.Rules, in.Date, lengthOfStay, advanceDays); rule != nil {
		rate = rule.Apply(rate)
		id := rule.ID()
		cell.AppliedRuleID = &id
	}

	cell.FinalRate = rate.ClampZero()

	if in.Plan.IsPackage() && len(in.Components) > 0 {
		cell.PackageComponentTotal = ComponentTotal(in.Components, guestType)
	}

	return cell, nil
}
