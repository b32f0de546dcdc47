package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
)

// AuditRepository defines the interface for the append-only audit trail.
// Records are inserted via mutations riding the same commit plan as the
// primitive write they describe; there is no update or delete surface.
type AuditRepository interface {
	// InsertMut creates a mutation for appending an audit record
	InsertMut(record *audit.Record) (*spanner.Mutation, error)

	// GetByID retrieves one audit record with its full snapshots
	GetByID(ctx context.Context, auditID string) (*audit.Record, error)

	// Query retrieves a filtered page of records, newest first
	Query(ctx context.Context, filter audit.Filter, page audit.PageRequest) (*audit.Page, error)

	// Summarize aggregates matching records without returning them
	Summarize(ctx context.Context, filter audit.Filter) (*audit.Summary, error)
}
