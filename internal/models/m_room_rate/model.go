package m_room_rate

import (
	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the room_rates table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a Spanner mutation for inserting or updating a cell.
// Bulk edits write cells without knowing whether they exist, so all writes
// go through InsertOrUpdate.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{
			RatePlanID,
			RoomTypeID,
			Date,
			RateAmountNumerator,
			RateAmountDenominator,
			AvailabilityCount,
			StopSell,
			ClosedForArrival,
			ClosedForDeparture,
			Version,
			CreatedAt,
			UpdatedAt,
		},
		[]interface{}{
			data.RatePlanID,
			data.RoomTypeID,
			data.Date,
			data.RateAmountNumerator,
			data.RateAmountDenominator,
			data.AvailabilityCount,
			data.StopSell,
			data.ClosedForArrival,
			data.ClosedForDeparture,
			data.Version,
			data.CreatedAt,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a Spanner mutation for deleting a cell.
func (m *Model) DeleteMut(ratePlanID, roomTypeID string, date civil.Date) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{ratePlanID, roomTypeID, date})
}
