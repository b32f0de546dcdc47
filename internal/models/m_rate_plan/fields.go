package m_rate_plan

// Field name constants for the rate_plans table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "rate_plans"

	RatePlanID    = "rate_plan_id"
	HotelID       = "hotel_id"
	Code          = "code"
	Name          = "name"
	PlanType      = "plan_type"
	Category      = "category"
	Class         = "class"
	ValidFrom     = "valid_from"
	ValidTo       = "valid_to"
	IsDefault     = "is_default"
	IsPackage     = "is_package"
	NonRefundable = "non_refundable"
	Status        = "status"
	CreatedAt     = "created_at"
	UpdatedAt     = "updated_at"
)
