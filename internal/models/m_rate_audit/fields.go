package m_rate_audit

// Field name constants for the rate_audit_records table. The table is
// append-only; there is no update mutation.
const (
	TableName = "rate_audit_records"

	AuditID       = "audit_id"
	EntityType    = "entity_type"
	EntityID      = "entity_id"
	Action        = "action"
	ActorID       = "actor_id"
	ActorName     = "actor_name"
	PreviousState = "previous_state"
	NewState      = "new_state"
	ChangedFields = "changed_fields"
	OccurredAt    = "occurred_at"
)
