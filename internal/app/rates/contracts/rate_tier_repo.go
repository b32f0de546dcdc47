package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
)

// RateTierRepository defines the interface for length-of-stay tier persistence.
type RateTierRepository interface {
	// InsertMut creates a mutation for inserting a new tier
	InsertMut(tier *domain.RateTier) (*spanner.Mutation, error)

	// DeleteMut creates a mutation for removing a tier
	DeleteMut(tierID string) *spanner.Mutation

	// GetByID retrieves a tier by ID
	GetByID(ctx context.Context, tierID string) (*domain.RateTier, error)

	// ListByRatePlans retrieves tiers for the given plans, ordered by
	// priority ascending (the resolver's evaluation order)
	ListByRatePlans(ctx context.Context, ratePlanIDs []string) ([]*domain.RateTier, error)
}
