package contracts

import (
	"context"

	"cloud.google.com/go/civil"

	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
)

// MatrixSource is the read surface the matrix builder prefetches from.
// One implementation composes the individual repositories; tests substitute
// an in-memory fixture. All primitives for a grid request are loaded up
// front so per-cell resolution is pure computation.
type MatrixSource interface {
	// RatePlans returns the hotel's plans restricted to ids when non-empty
	RatePlans(ctx context.Context, hotelID string, ids []string) ([]*domain.RatePlan, error)

	// RoomRates returns stored cells for the plans and room types in [from, to]
	RoomRates(ctx context.Context, ratePlanIDs, roomTypeIDs []string, from, to civil.Date) ([]*domain.RoomRate, error)

	// RateTiers returns tiers for the plans, priority ascending
	RateTiers(ctx context.Context, ratePlanIDs []string) ([]*domain.RateTier, error)

	// RateOverrides returns overrides for the plans dated within [from, to]
	RateOverrides(ctx context.Context, ratePlanIDs []string, from, to civil.Date) ([]*domain.RateOverride, error)

	// ActivePricingRules returns the hotel's active rules, priority descending
	ActivePricingRules(ctx context.Context, hotelID string) ([]*domain.PricingRule, error)

	// PackageComponents returns components for the package plans among the ids
	PackageComponents(ctx context.Context, ratePlanIDs []string) ([]*domain.RatePackageComponent, error)
}
