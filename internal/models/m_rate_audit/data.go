package m_rate_audit

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the rate_audit_records table.
// PreviousState is NULL for creations, NewState is NULL for deletions.
type Data struct {
	AuditID       string
	EntityType    string
	EntityID      string
	Action        string
	ActorID       string
	ActorName     string
	PreviousState spanner.NullJSON
	NewState      spanner.NullJSON
	ChangedFields spanner.NullJSON
	OccurredAt    time.Time
}
