package summarize_audit

import (
	"context"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
)

// Request contains the filter for the summary.
type Request struct {
	Filter audit.Filter
}

// Query handles the summarize audit query use case.
type Query struct {
	auditRepo contracts.AuditRepository
}

// NewQuery creates a new summarize audit query.
func NewQuery(auditRepo contracts.AuditRepository) *Query {
	return &Query{
		auditRepo: auditRepo,
	}
}

// Execute aggregates matching audit records without materializing them.
func (q *Query) Execute(ctx context.Context, req *Request) (*audit.Summary, error) {
	return q.auditRepo.Summarize(ctx, req.Filter)
}
