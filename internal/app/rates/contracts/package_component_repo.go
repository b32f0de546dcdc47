package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
)

// PackageComponentRepository defines the interface for package component
// persistence.
type PackageComponentRepository interface {
	// InsertMut creates a mutation for inserting a new component.
	// Returns error if money values exceed int64 bounds.
	InsertMut(component *domain.RatePackageComponent) (*spanner.Mutation, error)

	// DeleteMut creates a mutation for removing a component
	DeleteMut(componentID string) *spanner.Mutation

	// ListByRatePlans retrieves components for the given package plans
	ListByRatePlans(ctx context.Context, ratePlanIDs []string) ([]*domain.RatePackageComponent, error)
}
