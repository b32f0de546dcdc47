package list_events

import (
	"context"

	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
)

// Request contains paging parameters for listing outbox events.
type Request struct {
	Limit int64 // Max number of events to return (default: 100)
}

// Query handles the list events query use case.
type Query struct {
	outboxRepo contracts.OutboxRepository
}

// NewQuery creates a new list events query.
func NewQuery(outboxRepo contracts.OutboxRepository) *Query {
	return &Query{
		outboxRepo: outboxRepo,
	}
}

// Execute retrieves the newest outbox events.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.OutboxEvent, error) {
	if req.Limit <= 0 {
		req.Limit = 100 // Default limit
	}
	if req.Limit > 1000 {
		req.Limit = 1000 // Max limit
	}

	return q.outboxRepo.ListRecent(ctx, req.Limit)
}
