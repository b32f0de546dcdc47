package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
)

// OutboxEvent represents an enriched domain event ready for persistence.
type OutboxEvent struct {
	EventID     string
	EventType   string
	AggregateID string
	Payload     string // JSON
	Status      string
	CreatedAt   time.Time
}

// OutboxRepository defines the interface for outbox event persistence.
type OutboxRepository interface {
	// InsertMut creates a mutation for inserting an outbox event
	InsertMut(event *OutboxEvent) *spanner.Mutation

	// EnrichEvent converts a domain event to an outbox event with metadata
	EnrichEvent(event domain.DomainEvent, payload string) *OutboxEvent

	// ListRecent retrieves the newest events for the inspection endpoint
	ListRecent(ctx context.Context, limit int64) ([]*OutboxEvent, error)
}
