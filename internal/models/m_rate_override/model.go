package m_rate_override

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the rate_overrides table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting an override.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			OverrideID,
			RatePlanID,
			RoomTypeID,
			Date,
			AdjustmentType,
			AdjustmentValueNumerator,
			AdjustmentValueDenominator,
			Reason,
			StopSell,
			ClosedForArrival,
			ClosedForDeparture,
			CreatedAt,
			UpdatedAt,
		},
		[]interface{}{
			data.OverrideID,
			data.RatePlanID,
			data.RoomTypeID,
			data.Date,
			data.AdjustmentType,
			data.AdjustmentValueNumerator,
			data.AdjustmentValueDenominator,
			data.Reason,
			data.StopSell,
			data.ClosedForArrival,
			data.ClosedForDeparture,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a Spanner mutation for deleting an override.
func (m *Model) DeleteMut(overrideID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{overrideID})
}
