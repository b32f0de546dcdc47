package get_audit_record

import (
	"context"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
)

// Request contains the audit record ID to retrieve.
type Request struct {
	AuditID string
}

// Query handles the get audit record query use case.
type Query struct {
	auditRepo contracts.AuditRepository
}

// NewQuery creates a new get audit record query.
func NewQuery(auditRepo contracts.AuditRepository) *Query {
	return &Query{
		auditRepo: auditRepo,
	}
}

// Execute retrieves one audit record with its full snapshots.
func (q *Query) Execute(ctx context.Context, req *Request) (*audit.Record, error) {
	return q.auditRepo.GetByID(ctx, req.AuditID)
}
