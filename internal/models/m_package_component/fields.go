package m_package_component

// Field name constants for the rate_package_components table.
const (
	TableName = "rate_package_components"

	ComponentID            = "component_id"
	RatePlanID             = "rate_plan_id"
	Name                   = "name"
	ComponentType          = "component_type"
	Included               = "included"
	Quantity               = "quantity"
	PricingMode            = "pricing_mode"
	UnitPriceNumerator     = "unit_price_numerator"
	UnitPriceDenominator   = "unit_price_denominator"
	AdultPriceNumerator    = "adult_price_numerator"
	AdultPriceDenominator  = "adult_price_denominator"
	ChildPriceNumerator    = "child_price_numerator"
	ChildPriceDenominator  = "child_price_denominator"
	InfantPriceNumerator   = "infant_price_numerator"
	InfantPriceDenominator = "infant_price_denominator"
	CreatedAt              = "created_at"
	UpdatedAt              = "updated_at"
)
