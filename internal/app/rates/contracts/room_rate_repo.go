package contracts

import (
	"context"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"

	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
)

// RoomRateRepository defines the interface for room rate persistence.
// A room rate row is keyed (ratePlanID, roomTypeID, date); writes go through
// UpsertMut because bulk edits create and update cells interchangeably.
type RoomRateRepository interface {
	// UpsertMut creates an insert-or-update mutation for a room rate cell.
	// Returns error if money values exceed int64 bounds.
	UpsertMut(rate *domain.RoomRate) (*spanner.Mutation, error)

	// Get retrieves one cell. Returns domain.ErrRoomRateNotFound when the
	// cell has no stored base rate.
	Get(ctx context.Context, ratePlanID, roomTypeID string, date civil.Date) (*domain.RoomRate, error)

	// ListInRange retrieves all cells for the given plans and room types
	// within [from, to] inclusive. Missing cells are simply absent.
	ListInRange(ctx context.Context, ratePlanIDs, roomTypeIDs []string, from, to civil.Date) ([]*domain.RoomRate, error)
}
