package m_rate_audit

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the rate_audit_records
// table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for appending an audit record.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			AuditID,
			EntityType,
			EntityID,
			Action,
			ActorID,
			ActorName,
			PreviousState,
			NewState,
			ChangedFields,
			OccurredAt,
		},
		[]interface{}{
			data.AuditID,
			data.EntityType,
			data.EntityID,
			data.Action,
			data.ActorID,
			data.ActorName,
			data.PreviousState,
			data.NewState,
			data.ChangedFields,
			data.OccurredAt,
		},
	)
}
