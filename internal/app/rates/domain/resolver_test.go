package domain

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
)

var (
	testNow   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	stayDate  = civil.Date{Year: 2026, Month: 6, Day: 15}
	validFrom = civil.Date{Year: 2026, Month: 1, Day: 1}
)

func testPlan(t *testing.T) *RatePlan {
	t.Helper()
	plan, err := NewRatePlan(
		"plan-1", "hotel-1", "BAR", "Best Available Rate", "standard", "public", "flexible",
		validFrom, nil, true, false, false,
		testNow, clock.NewMockClock(testNow),
	)
	require.NoError(t, err)
	return plan
}

func testBaseRate(t *testing.T, amount string) *RoomRate {
	t.Helper()
	rate, err := NewRoomRate("plan-1", "room-1", stayDate, mustMoney(t, amount), testNow, clock.NewMockClock(testNow))
	require.NoError(t, err)
	return rate
}

func TestResolve_NoBaseRate(t *testing.T) {
	_, err := Resolve(ResolveInput{Plan: testPlan(t), RoomTypeID: "room-1", Date: stayDate})
	assert.ErrorIs(t, err, ErrNoBaseRate)
}

func TestResolve_BaseRateOnly(t *testing.T) {
	cell, err := Resolve(ResolveInput{
		Plan:       testPlan(t),
		RoomTypeID: "room-1",
		Date:       stayDate,
		BaseRate:   testBaseRate(t, "200"),
	})
	require.NoError(t, err)

	assert.Equal(t, "200.00", cell.BaseRate.String())
	assert.Equal(t, "200.00", cell.FinalRate.String())
	assert.Equal(t, GuestAdult, cell.GuestType)
	assert.Nil(t, cell.AppliedTierID)
	assert.Nil(t, cell.AppliedOverrideID)
	assert.Nil(t, cell.AppliedRuleID)
	assert.Nil(t, cell.PackageComponentTotal)
}

// Full layering: 200 base, 15% tier discount to 170, override sets 180,
// 10% rule discount lands at 162. Every layer consumes the previous output.
func TestResolve_AllLayersCompound(t *testing.T) {
	tier, err := NewRateTier("tier-1", "plan-1", 3, nil,
		mustAdjustment(t, AdjustPercentageDecrease, "15"), 0, testNow)
	require.NoError(t, err)

	override, err := NewRateOverride("ovr-1", "plan-1", nil, stayDate,
		mustAdjustment(t, AdjustSetRate, "180"), "event pricing", testNow)
	require.NoError(t, err)

	rule, err := NewPricingRule("rule-1", "hotel-1", "summer promo",
		true, 10, nil, nil, nil, nil, nil,
		mustMoney(t, "10"), nil, nil, testNow)
	require.NoError(t, err)

	cell, err := Resolve(ResolveInput{
		Plan:         testPlan(t),
		RoomTypeID:   "room-1",
		Date:         stayDate,
		LengthOfStay: 4,
		BaseRate:     testBaseRate(t, "200"),
		Tiers:        []*RateTier{tier},
		Overrides:    []*RateOverride{override},
		Rules:        []*PricingRule{rule},
	})
	require.NoError(t, err)

	assert.Equal(t, "200.00", cell.BaseRate.String())
	assert.Equal(t, "162.00", cell.FinalRate.String())
	assert.Equal(t, "tier-1", *cell.AppliedTierID)
	assert.Equal(t, "ovr-1", *cell.AppliedOverrideID)
	assert.Equal(t, "rule-1", *cell.AppliedRuleID)
}

func TestResolve_FirstMatchingTierWins(t *testing.T) {
	loose, err := NewRateTier("tier-loose", "plan-1", 1, nil,
		mustAdjustment(t, AdjustPercentageDecrease, "5"), 5, testNow)
	require.NoError(t, err)
	tight, err := NewRateTier("tier-tight", "plan-1", 3, nil,
		mustAdjustment(t, AdjustPercentageDecrease, "20"), 1, testNow)
	require.NoError(t, err)

	// both match a 4-night stay; the lower priority value wins, never both
	cell, err := Resolve(ResolveInput{
		Plan:         testPlan(t),
		RoomTypeID:   "room-1",
		Date:         stayDate,
		LengthOfStay: 4,
		BaseRate:     testBaseRate(t, "100"),
		Tiers:        []*RateTier{loose, tight},
	})
	require.NoError(t, err)

	assert.Equal(t, "tier-tight", *cell.AppliedTierID)
	assert.Equal(t, "80.00", cell.FinalRate.String())
}

func TestResolve_RoomSpecificOverrideBeatsPlanWide(t *testing.T) {
	roomID := "room-1"
	planWide, err := NewRateOverride("ovr-wide", "plan-1", nil, stayDate,
		mustAdjustment(t, AdjustFixedIncrease, "50"), "", testNow)
	require.NoError(t, err)
	specific, err := NewRateOverride("ovr-room", "plan-1", &roomID, stayDate,
		mustAdjustment(t, AdjustFixedIncrease, "10"), "", testNow)
	require.NoError(t, err)

	cell, err := Resolve(ResolveInput{
		Plan:       testPlan(t),
		RoomTypeID: roomID,
		Date:       stayDate,
		BaseRate:   testBaseRate(t, "100"),
		Overrides:  []*RateOverride{planWide, specific},
	})
	require.NoError(t, err)

	assert.Equal(t, "ovr-room", *cell.AppliedOverrideID)
	assert.Equal(t, "110.00", cell.FinalRate.String())
}

func TestResolve_OverrideFlagsAreORed(t *testing.T) {
	override, err := NewRateOverride("ovr-1", "plan-1", nil, stayDate,
		mustAdjustment(t, AdjustFixedIncrease, "0"), "", testNow)
	require.NoError(t, err)
	override.SetAvailabilityFlags(true, false, true)

	base := testBaseRate(t, "100")
	require.NoError(t, base.SetAvailabilityCount(5))
	base.SetClosedForArrival(true)

	cell, err := Resolve(ResolveInput{
		Plan:       testPlan(t),
		RoomTypeID: "room-1",
		Date:       stayDate,
		BaseRate:   base,
		Overrides:  []*RateOverride{override},
	})
	require.NoError(t, err)

	assert.True(t, cell.StopSell)
	assert.True(t, cell.ClosedForArrival)
	assert.True(t, cell.ClosedForDeparture)
	assert.Equal(t, int64(5), cell.AvailabilityCount)
}

func TestResolve_FinalRateClampedAtZero(t *testing.T) {
	rule, err := NewPricingRule("rule-1", "hotel-1", "deep discount",
		true, 0, nil, nil, nil, nil, nil,
		nil, mustMoney(t, "500"), nil, testNow)
	require.NoError(t, err)

	cell, err := Resolve(ResolveInput{
		Plan:       testPlan(t),
		RoomTypeID: "room-1",
		Date:       stayDate,
		BaseRate:   testBaseRate(t, "100"),
		Rules:      []*PricingRule{rule},
	})
	require.NoError(t, err)

	assert.True(t, cell.FinalRate.IsZero())
}

func TestResolve_AdvanceBookingRule(t *testing.T) {
	minAdvance := int64(30)
	rule, err := NewPricingRule("rule-early", "hotel-1", "early bird",
		true, 0, nil, nil, nil, nil, &minAdvance,
		mustMoney(t, "10"), nil, nil, testNow)
	require.NoError(t, err)

	input := ResolveInput{
		Plan:       testPlan(t),
		RoomTypeID: "room-1",
		Date:       stayDate,
		BaseRate:   testBaseRate(t, "100"),
		Rules:      []*PricingRule{rule},
	}

	t.Run("applies when booked far enough ahead", func(t *testing.T) {
		input.BookingDate = civil.Date{Year: 2026, Month: 3, Day: 1}
		cell, err := Resolve(input)
		require.NoError(t, err)
		assert.Equal(t, "90.00", cell.FinalRate.String())
	})

	t.Run("skipped when booked late", func(t *testing.T) {
		input.BookingDate = civil.Date{Year: 2026, Month: 6, Day: 10}
		cell, err := Resolve(input)
		require.NoError(t, err)
		assert.Equal(t, "100.00", cell.FinalRate.String())
		assert.Nil(t, cell.AppliedRuleID)
	})
}

func TestResolve_PackageComponentTotalReportedSeparately(t *testing.T) {
	plan, err := NewRatePlan(
		"plan-pkg", "hotel-1", "PKG", "Breakfast Package", "standard", "public", "flexible",
		validFrom, nil, false, true, false,
		testNow, clock.NewMockClock(testNow),
	)
	require.NoError(t, err)

	breakfast, err := NewRatePackageComponent("cmp-1", "plan-pkg", "Breakfast",
		ComponentMeal, true, 2, PricePerUnit,
		mustMoney(t, "15"), nil, nil, nil, testNow)
	require.NoError(t, err)

	rate, err := NewRoomRate("plan-pkg", "room-1", stayDate, mustMoney(t, "200"), testNow, clock.NewMockClock(testNow))
	require.NoError(t, err)

	cell, err := Resolve(ResolveInput{
		Plan:       plan,
		RoomTypeID: "room-1",
		Date:       stayDate,
		BaseRate:   rate,
		Components: []*RatePackageComponent{breakfast},
	})
	require.NoError(t, err)

	// the component total never folds into the nightly rate
	assert.Equal(t, "200.00", cell.FinalRate.String())
	assert.Equal(t, "30.00", cell.PackageComponentTotal.String())
}
