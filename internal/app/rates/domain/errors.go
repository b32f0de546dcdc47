package domain

import "errors"

// Domain errors as sentinel values
var (
	// Rate plan errors
	ErrRatePlanNotFound      = errors.New("rate plan not found")
	ErrDuplicatePlanCode     = errors.New("rate plan code already in use")
	ErrEmptyPlanCode         = errors.New("rate plan code cannot be empty")
	ErrEmptyPlanName         = errors.New("rate plan name cannot be empty")
	ErrInvalidValidityWindow = errors.New("rate plan validTo must be after validFrom")
	ErrPlanRetired           = errors.New("cannot modify a retired rate plan")
	ErrAlreadyRetired        = errors.New("rate plan is already retired")
	ErrNotPackagePlan        = errors.New("rate plan is not a package plan")

	// Room rate errors
	ErrNoBaseRate           = errors.New("no base rate for rate plan, room type and date")
	ErrRoomRateNotFound     = errors.New("room rate not found")
	ErrNegativeRateAmount   = errors.New("rate amount cannot be negative")
	ErrNegativeAvailability = errors.New("availability count cannot be negative")
	ErrEmptyRoomType        = errors.New("room type cannot be empty")

	// Adjustment errors
	ErrInvalidAdjustmentType  = errors.New("unknown adjustment type")
	ErrMissingAdjustmentValue = errors.New("adjustment value is required")
	ErrNegativePercentage     = errors.New("percentage adjustment value cannot be negative")
	ErrNegativeMultiplier     = errors.New("multiplier adjustment value cannot be negative")

	// Tier errors
	ErrTierNotFound     = errors.New("rate tier not found")
	ErrInvalidTierRange = errors.New("tier maxNights must be greater than minNights")
	ErrInvalidMinNights = errors.New("tier minNights must be at least 1")
	ErrNegativePriority = errors.New("priority cannot be negative")

	// Override errors
	ErrOverrideNotFound = errors.New("rate override not found")

	// Pricing rule errors
	ErrRuleNotFound         = errors.New("pricing rule not found")
	ErrRuleAdjustmentCount  = errors.New("pricing rule must carry exactly one adjustment")
	ErrInvalidRuleDateRange = errors.New("pricing rule endDate must not precede startDate")

	// Package component errors
	ErrComponentNotFound    = errors.New("package component not found")
	ErrEmptyComponentName   = errors.New("package component name cannot be empty")
	ErrInvalidQuantity      = errors.New("package component quantity must be at least 1")
	ErrMissingComponentRate = errors.New("package component needs a unit price or audience prices")

	// Storage errors
	ErrMoneyOverflow = errors.New("money value exceeds int64 storage bounds")
)
