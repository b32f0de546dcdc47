package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
)

// PricingRuleRepository defines the interface for pricing rule persistence.
type PricingRuleRepository interface {
	// InsertMut creates a mutation for inserting a new rule.
	// Returns error if money values exceed int64 bounds.
	InsertMut(rule *domain.PricingRule) (*spanner.Mutation, error)

	// UpdateMut creates a mutation for updating a rule (only dirty fields)
	UpdateMut(rule *domain.PricingRule) (*spanner.Mutation, error)

	// GetByID retrieves a rule by ID
	GetByID(ctx context.Context, ruleID string) (*domain.PricingRule, error)

	// ListActiveByHotel retrieves a hotel's active rules ordered by priority
	// descending (the resolver picks the first match)
	ListActiveByHotel(ctx context.Context, hotelID string) ([]*domain.PricingRule, error)
}
