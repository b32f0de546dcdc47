package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
)

// RatePlanRepository defines the interface for rate plan persistence.
// Repositories return mutations, they don't apply them (Golden Mutation Pattern).
type RatePlanRepository interface {
	// InsertMut creates a mutation for inserting a new rate plan
	InsertMut(plan *domain.RatePlan) (*spanner.Mutation, error)

	// UpdateMut creates a mutation for updating a rate plan (only dirty fields)
	UpdateMut(plan *domain.RatePlan) (*spanner.Mutation, error)

	// GetByID retrieves a rate plan by ID, reconstructing the domain aggregate
	GetByID(ctx context.Context, ratePlanID string) (*domain.RatePlan, error)

	// ListByHotel retrieves all rate plans for a hotel. When ids is non-empty
	// the result is restricted to those plan IDs.
	ListByHotel(ctx context.Context, hotelID string, ids []string) ([]*domain.RatePlan, error)

	// CodeExists checks if a plan code is already in use for a hotel
	CodeExists(ctx context.Context, hotelID, code string) (bool, error)
}
