package repo

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
)

// GridSource composes the pricing repositories into the read surface the
// matrix builder prefetches from.
type GridSource struct {
	plans      contracts.RatePlanRepository
	rates      contracts.RoomRateRepository
	tiers      contracts.RateTierRepository
	overrides  contracts.RateOverrideRepository
	rules      contracts.PricingRuleRepository
	components contracts.PackageComponentRepository
}

// NewGridSource creates a new GridSource.
func NewGridSource(
	plans contracts.RatePlanRepository,
	rates contracts.RoomRateRepository,
	tiers contracts.RateTierRepository,
	overrides contracts.RateOverrideRepository,
	rules contracts.PricingRuleRepository,
	components contracts.PackageComponentRepository,
) contracts.MatrixSource {
	return &GridSource{
		plans:      plans,
		rates:      rates,
		tiers:      tiers,
		overrides:  overrides,
		rules:      rules,
		components: components,
	}
}

func (s *GridSource) RatePlans(ctx context.Context, hotelID string, ids []string) ([]*domain.RatePlan, error) {
	return s.plans.ListByHotel(ctx, hotelID, ids)
}

func (s *GridSource) RoomRates(ctx context.Context, ratePlanIDs, roomTypeIDs []string, from, to civil.Date) ([]*domain.RoomRate, error) {
	return s.rates.ListInRange(ctx, ratePlanIDs, roomTypeIDs, from, to)
}

func (s *GridSource) RateTiers(ctx context.Context, ratePlanIDs []string) ([]*domain.RateTier, error) {
	return s.tiers.ListByRatePlans(ctx, ratePlanIDs)
}

func (s *GridSource) RateOverrides(ctx context.Context, ratePlanIDs []string, from, to civil.Date) ([]*domain.RateOverride, error) {
	return s.overrides.ListInRange(ctx, ratePlanIDs, from, to)
}

func (s *GridSource) ActivePricingRules(ctx context.Context, hotelID string) ([]*domain.PricingRule, error) {
	return s.rules.ListActiveByHotel(ctx, hotelID)
}

func (s *GridSource) PackageComponents(ctx context.Context, ratePlanIDs []string) ([]*domain.RatePackageComponent, error) {
	return s.components.ListByRatePlans(ctx, ratePlanIDs)
}
