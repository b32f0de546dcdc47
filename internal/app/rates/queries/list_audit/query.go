package list_audit

import (
	"context"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
)

// Request contains filtering and paging parameters for the audit trail.
type Request struct {
	Filter audit.Filter
	Page   audit.PageRequest
}

// Query handles the list audit records query use case.
type Query struct {
	auditRepo contracts.AuditRepository
}

// NewQuery creates a new list audit query.
func NewQuery(auditRepo contracts.AuditRepository) *Query {
	return &Query{
		auditRepo: auditRepo,
	}
}

// Execute retrieves a filtered page of audit records, newest first.
func (q *Query) Execute(ctx context.Context, req *Request) (*audit.Page, error) {
	return q.auditRepo.Query(ctx, req.Filter, req.Page.Normalize())
}
