package m_package_component

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the
// rate_package_components table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a component.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			ComponentID,
			RatePlanID,
			Name,
			ComponentType,
			Included,
			Quantity,
			PricingMode,
			UnitPriceNumerator,
			UnitPriceDenominator,
			AdultPriceNumerator,
			AdultPriceDenominator,
			ChildPriceNumerator,
			ChildPriceDenominator,
			InfantPriceNumerator,
			InfantPriceDenominator,
			CreatedAt,
			UpdatedAt,
		},
		[]interface{}{
			data.ComponentID,
			data.RatePlanID,
			data.Name,
			data.ComponentType,
			data.Included,
			data.Quantity,
			data.PricingMode,
			data.UnitPriceNumerator,
			data.UnitPriceDenominator,
			data.AdultPriceNumerator,
			data.AdultPriceDenominator,
			data.ChildPriceNumerator,
			data.ChildPriceDenominator,
			data.InfantPriceNumerator,
			data.InfantPriceDenominator,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteMut creates a Spanner mutation for deleting a component.
func (m *Model) DeleteMut(componentID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{componentID})
}
