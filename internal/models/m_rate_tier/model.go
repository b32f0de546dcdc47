package m_rate_tier

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the rate_tiers table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a tier.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			TierID,
			RatePlanID,
			MinNights,
			MaxNights,
			AdjustmentType,
			AdjustmentValueNumerator,
			AdjustmentValueDenominator,
			Priority,
			CreatedAt,
			UpdatedAt,
		},
		[]interface{}{
			data.TierID,
			data.RatePlanID,
			data.MinNights,
			data.MaxNights,
			data.AdjustmentType,
			data.AdjustmentValueNumerator,
			data.AdjustmentValueDenominator,
			data.Priority,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a Spanner mutation for deleting a tier.
func (m *Model) DeleteMut(tierID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{tierID})
}
