package m_rate_plan

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the rate_plans table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a rate plan.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			RatePlanID,
			HotelID,
			Code,
			Name,
			PlanType,
			Category,
			Class,
			ValidFrom,
			ValidTo,
			IsDefault,
			IsPackage,
			NonRefundable,
			Status,
			CreatedAt,
			UpdatedAt,
		},
		[]interface{}{
			data.RatePlanID,
			data.HotelID,
			data.Code,
			data.Name,
			data.PlanType,
			data.Category,
			data.Class,
			data.ValidFrom,
			data.ValidTo,
			data.IsDefault,
			data.IsPackage,
			data.NonRefundable,
			data.Status,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific plan fields.
// The updates map should contain field names as keys and new values.
func (m *Model) UpdateMut(ratePlanID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	// Always update the UpdatedAt timestamp
	updates[UpdatedAt] = spanner.CommitTimestamp

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, RatePlanID)
	values = append(values, ratePlanID)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}
