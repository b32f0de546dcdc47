package matrix

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
)

var (
	fixtureNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	from       = civil.Date{Year: 2026, Month: 6, Day: 1}
	to         = civil.Date{Year: 2026, Month: 6, Day: 3}
)

// fakeSource serves prefetches from in-memory fixtures.
type fakeSource struct {
	plans      []*domain.RatePlan
	rates      []*domain.RoomRate
	tiers      []*domain.RateTier
	overrides  []*domain.RateOverride
	rules      []*domain.PricingRule
	components []*domain.RatePackageComponent
}

func (f *fakeSource) RatePlans(_ context.Context, _ string, ids []string) ([]*domain.RatePlan, error) {
	if len(ids) == 0 {
		return f.plans, nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []*domain.RatePlan
	for _, p := range f.plans {
		if want[p.ID()] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSource) RoomRates(_ context.Context, _, _ []string, _, _ civil.Date) ([]*domain.RoomRate, error) {
	return f.rates, nil
}

func (f *fakeSource) RateTiers(_ context.Context, _ []string) ([]*domain.RateTier, error) {
	return f.tiers, nil
}

func (f *fakeSource) RateOverrides(_ context.Context, _ []string, _, _ civil.Date) ([]*domain.RateOverride, error) {
	return f.overrides, nil
}

func (f *fakeSource) ActivePricingRules(_ context.Context, _ string) ([]*domain.PricingRule, error) {
	return f.rules, nil
}

func (f *fakeSource) PackageComponents(_ context.Context, _ []string) ([]*domain.RatePackageComponent, error) {
	return f.components, nil
}

func fixturePlan(t *testing.T, id, code string, status domain.PlanStatus) *domain.RatePlan {
	t.Helper()
	return domain.ReconstructRatePlan(id, "hotel-1", code, code, "standard", "public", "flexible",
		civil.Date{Year: 2026, Month: 1, Day: 1}, nil, false, false, false,
		status, fixtureNow, fixtureNow, clock.NewMockClock(fixtureNow))
}

func fixtureRate(t *testing.T, planID, roomID string, date civil.Date, amount string) *domain.RoomRate {
	t.Helper()
	m, err := domain.NewMoneyFromString(amount)
	require.NoError(t, err)
	return domain.ReconstructRoomRate(planID, roomID, date, m, 10, false, false, false,
		1, fixtureNow, fixtureNow, clock.NewMockClock(fixtureNow))
}

func newTestBuilder(source *fakeSource) *Builder {
	return NewBuilder(source, zap.NewNop(), 4)
}

func TestBuild_Validation(t *testing.T) {
	b := newTestBuilder(&fakeSource{})

	t.Run("no room types", func(t *testing.T) {
		_, err := b.Build(context.Background(), Request{HotelID: "hotel-1", From: from, To: to})
		assert.ErrorIs(t, err, ErrNoRoomTypes)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, err := b.Build(context.Background(), Request{
			HotelID: "hotel-1", RoomTypeIDs: []string{"std"}, From: to, To: from,
		})
		assert.ErrorIs(t, err, ErrBadDateRange)
	})

	t.Run("range too wide", func(t *testing.T) {
		_, err := b.Build(context.Background(), Request{
			HotelID: "hotel-1", RoomTypeIDs: []string{"std"},
			From: from, To: from.AddDays(MaxRangeDays),
		})
		assert.ErrorIs(t, err, ErrDateRangeTooWide)
	})
}

func TestBuild_Grid(t *testing.T) {
	source := &fakeSource{
		plans: []*domain.RatePlan{fixturePlan(t, "bar", "BAR", domain.PlanStatusActive)},
		rates: []*domain.RoomRate{
			fixtureRate(t, "bar", "std", from, "100"),
			fixtureRate(t, "bar", "std", from.AddDays(1), "120"),
			// June 3 has no stored rate
		},
	}
	b := newTestBuilder(source)

	matrix, err := b.Build(context.Background(), Request{
		HotelID:     "hotel-1",
		RoomTypeIDs: []string{"std"},
		From:        from,
		To:          to,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), matrix.Stats.TotalCells)
	assert.Equal(t, int64(1), matrix.Stats.EmptyCells)

	cell := matrix.Cells["2026-06-01"]["std"]["bar"][domain.GuestAdult]
	require.NotNil(t, cell)
	assert.Equal(t, "100.00", cell.FinalRate.String())
	assert.Equal(t, "BAR", cell.RatePlanCode)

	t.Run("missing cells are absent, not zero", func(t *testing.T) {
		_, ok := matrix.Cells["2026-06-03"]
		assert.False(t, ok)
	})

	t.Run("rate stats over resolved cells only", func(t *testing.T) {
		assert.Equal(t, "100.00", matrix.Stats.MinRate.String())
		assert.Equal(t, "120.00", matrix.Stats.MaxRate.String())
		assert.Equal(t, "110.00", matrix.Stats.AvgRate.String())
	})
}

func TestBuild_SkipsRetiredPlans(t *testing.T) {
	source := &fakeSource{
		plans: []*domain.RatePlan{
			fixturePlan(t, "bar", "BAR", domain.PlanStatusActive),
			fixturePlan(t, "old", "OLD", domain.PlanStatusRetired),
		},
		rates: []*domain.RoomRate{
			fixtureRate(t, "bar", "std", from, "100"),
			fixtureRate(t, "old", "std", from, "50"),
		},
	}
	b := newTestBuilder(source)

	matrix, err := b.Build(context.Background(), Request{
		HotelID:     "hotel-1",
		RoomTypeIDs: []string{"std"},
		From:        from,
		To:          from,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), matrix.Stats.TotalCells)
	assert.NotNil(t, matrix.Cells["2026-06-01"]["std"]["bar"][domain.GuestAdult])
	assert.Nil(t, matrix.Cells["2026-06-01"]["std"]["old"])
	assert.Equal(t, "100.00", matrix.Stats.MinRate.String())
}

func TestBuild_InactivePlanCellsAreEmpty(t *testing.T) {
	source := &fakeSource{
		plans: []*domain.RatePlan{fixturePlan(t, "corp", "CORP", domain.PlanStatusInactive)},
		rates: []*domain.RoomRate{fixtureRate(t, "corp", "std", from, "100")},
	}
	b := newTestBuilder(source)

	matrix, err := b.Build(context.Background(), Request{
		HotelID:     "hotel-1",
		RoomTypeIDs: []string{"std"},
		From:        from,
		To:          from,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), matrix.Stats.TotalCells)
	assert.Equal(t, int64(1), matrix.Stats.EmptyCells)
	assert.Nil(t, matrix.Stats.MinRate)
	assert.Nil(t, matrix.Stats.AvgRate)
}

func TestBuild_GuestTypeVariants(t *testing.T) {
	adult, err := domain.NewMoneyFromString("20")
	require.NoError(t, err)
	child, err := domain.NewMoneyFromString("10")
	require.NoError(t, err)
	breakfast := domain.ReconstructRatePackageComponent("cmp-1", "pkg", "Breakfast",
		domain.ComponentMeal, true, 1, domain.PricePerAudience,
		nil, adult, child, nil, fixtureNow, fixtureNow)

	plan := domain.ReconstructRatePlan("pkg", "hotel-1", "PKG", "Package", "standard", "public", "flexible",
		civil.Date{Year: 2026, Month: 1, Day: 1}, nil, false, true, false,
		domain.PlanStatusActive, fixtureNow, fixtureNow, clock.NewMockClock(fixtureNow))

	source := &fakeSource{
		plans:      []*domain.RatePlan{plan},
		rates:      []*domain.RoomRate{fixtureRate(t, "pkg", "std", from, "200")},
		components: []*domain.RatePackageComponent{breakfast},
	}
	b := newTestBuilder(source)

	matrix, err := b.Build(context.Background(), Request{
		HotelID:     "hotel-1",
		RoomTypeIDs: []string{"std"},
		From:        from,
		To:          from,
		GuestTypes:  []domain.GuestType{domain.GuestAdult, domain.GuestChild},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), matrix.Stats.TotalCells)
	byGuest := matrix.Cells["2026-06-01"]["std"]["pkg"]
	require.NotNil(t, byGuest)
	assert.Equal(t, "20.00", byGuest[domain.GuestAdult].PackageComponentTotal.String())
	assert.Equal(t, "10.00", byGuest[domain.GuestChild].PackageComponentTotal.String())
	// room rate itself does not vary by guest type
	assert.Equal(t, "200.00", byGuest[domain.GuestChild].FinalRate.String())
}

func TestBuild_AvailabilityStats(t *testing.T) {
	stopSell := fixtureRate(t, "bar", "std", from, "100")
	stopSell.SetStopSell(true)
	closed := fixtureRate(t, "bar", "dlx", from, "150")
	closed.SetClosedForArrival(true)
	closed.SetClosedForDeparture(true)

	source := &fakeSource{
		plans: []*domain.RatePlan{fixturePlan(t, "bar", "BAR", domain.PlanStatusActive)},
		rates: []*domain.RoomRate{stopSell, closed},
	}
	b := newTestBuilder(source)

	matrix, err := b.Build(context.Background(), Request{
		HotelID:     "hotel-1",
		RoomTypeIDs: []string{"std", "dlx"},
		From:        from,
		To:          from,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), matrix.Stats.StopSellCells)
	assert.Equal(t, int64(1), matrix.Stats.ClosedForArrivalCells)
	assert.Equal(t, int64(1), matrix.Stats.ClosedForDepartureCells)
}
