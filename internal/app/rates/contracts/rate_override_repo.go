package contracts

import (
	"context"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
)

// RateOverrideRepository defines the interface for date override persistence.
type RateOverrideRepository interface {
	// InsertMut creates a mutation for inserting a new override
	InsertMut(override *domain.RateOverride) (*spanner.Mutation, error)

	// DeleteMut creates a mutation for removing an override
	DeleteMut(overrideID string) *spanner.Mutation

	// GetByID retrieves an override by ID
	GetByID(ctx context.Context, overrideID string) (*domain.RateOverride, error)

	// ListInRange retrieves overrides for the given plans whose date falls
	// within [from, to] inclusive
	ListInRange(ctx context.Context, ratePlanIDs []string, from, to civil.Date) ([]*domain.RateOverride, error)
}
