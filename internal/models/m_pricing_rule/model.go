package m_pricing_rule

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the pricing_rules table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a pricing rule.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			RuleID,
			HotelID,
			Name,
			Active,
			Priority,
			StartDate,
			EndDate,
			MinNights,
			MaxNights,
			AdvanceBookingDays,
			DiscountPercentageNumerator,
			DiscountPercentageDenominator,
			DiscountAmountNumerator,
			DiscountAmountDenominator,
			PriceAdjustmentNumerator,
			PriceAdjustmentDenominator,
			CreatedAt,
			UpdatedAt,
		},
		[]interface{}{
			data.RuleID,
			data.HotelID,
			data.Name,
			data.Active,
			data.Priority,
			data.StartDate,
			data.EndDate,
			data.MinNights,
			data.MaxNights,
			data.AdvanceBookingDays,
			data.DiscountPercentageNumerator,
			data.DiscountPercentageDenominator,
			data.DiscountAmountNumerator,
			data.DiscountAmountDenominator,
			data.PriceAdjustmentNumerator,
			data.PriceAdjustmentDenominator,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a Spanner mutation for updating specific rule fields.
// The updates map should contain field names as keys and new values.
func (m *Model) UpdateMut(ruleID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	// Always update the UpdatedAt timestamp
	updates[UpdatedAt] = spanner.CommitTimestamp

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	columns = append(columns, RuleID)
	values = append(values, ruleID)

	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}

	return spanner.Update(TableName, columns, values)
}
