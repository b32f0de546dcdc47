package http

import (
	"encoding/json"
	"net/http"

	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/create_override"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/create_package_component"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/create_pricing_rule"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/create_rate_plan"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/create_rate_tier"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/update_rate_plan"
)

// PlansHandler handles HTTP requests for rate plans and their pricing
// primitives.
type PlansHandler struct {
	createPlan      *create_rate_plan.Interactor
	updatePlan      *update_rate_plan.Interactor
	createOverride  *create_override.Interactor
	createTier      *create_rate_tier.Interactor
	createRule      *create_pricing_rule.Interactor
	createComponent *create_package_component.Interactor
}

// NewPlansHandler creates a new plans handler.
func NewPlansHandler(
	createPlan *create_rate_plan.Interactor,
	updatePlan *update_rate_plan.Interactor,
	createOverride *create_override.Interactor,
	createTier *create_rate_tier.Interactor,
	createRule *create_pricing_rule.Interactor,
	createComponent *create_package_component.Interactor,
) *PlansHandler {
	return &PlansHandler{
		createPlan:      createPlan,
		updatePlan:      updatePlan,
		createOverride:  createOverride,
		createTier:      createTier,
		createRule:      createRule,
		createComponent: createComponent,
	}
}

// createdResponse carries the generated ID of a created resource.
type createdResponse struct {
	ID string `json:"id"`
}

// CreatePlanRequest is the HTTP request body for creating a rate plan.
type CreatePlanRequest struct {
	HotelID       string  `json:"hotel_id"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	PlanType      string  `json:"plan_type"`
	Category      string  `json:"category"`
	Class         string  `json:"class"`
	ValidFrom     string  `json:"valid_from"`
	ValidTo       *string `json:"valid_to,omitempty"`
	IsDefault     bool    `json:"is_default,omitempty"`
	IsPackage     bool    `json:"is_package,omitempty"`
	NonRefundable bool    `json:"non_refundable,omitempty"`
}

// CreatePlan handles POST /api/v1/rate-plans requests.
func (h *PlansHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var body CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	validFrom, err := parseDate(body.ValidFrom)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	req := &create_rate_plan.Request{
		HotelID:       body.HotelID,
		Code:          body.Code,
		Name:          body.Name,
		PlanType:      body.PlanType,
		Category:      body.Category,
		Class:         body.Class,
		ValidFrom:     validFrom,
		IsDefault:     body.IsDefault,
		IsPackage:     body.IsPackage,
		NonRefundable: body.NonRefundable,
		Actor:         actorFromRequest(r),
	}
	if body.ValidTo != nil {
		validTo, err := parseDatePtr(*body.ValidTo)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		req.ValidTo = validTo
	}

	id, err := h.createPlan.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

// UpdatePlanRequest is the HTTP request body for updating a rate plan.
// Omitted fields are left unchanged.
type UpdatePlanRequest struct {
	Name      *string `json:"name,omitempty"`
	ValidFrom *string `json:"valid_from,omitempty"`
	ValidTo   *string `json:"valid_to,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// UpdatePlan handles PATCH /api/v1/rate-plans/{id} requests.
func (h *PlansHandler) UpdatePlan(w http.ResponseWriter, r *http.Request) {
	var body UpdatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	req := &update_rate_plan.Request{
		RatePlanID: r.PathValue("id"),
		Name:       body.Name,
		Actor:      actorFromRequest(r),
	}
	if body.ValidFrom != nil {
		validFrom, err := parseDatePtr(*body.ValidFrom)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		req.ValidFrom = validFrom
	}
	if body.ValidTo != nil {
		validTo, err := parseDatePtr(*body.ValidTo)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		req.ValidTo = validTo
	}
	if body.Status != nil {
		status := domain.PlanStatus(*body.Status)
		req.Status = &status
	}

	if err := h.updatePlan.Execute(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateOverrideRequest is the HTTP request body for creating a date override.
type CreateOverrideRequest struct {
	RoomTypeID         *string `json:"room_type_id,omitempty"`
	Date               string  `json:"date"`
	AdjustmentType     string  `json:"adjustment_type"`
	AdjustmentValue    *string `json:"adjustment_value,omitempty"`
	Reason             string  `json:"reason,omitempty"`
	StopSell           bool    `json:"stop_sell,omitempty"`
	ClosedForArrival   bool    `json:"closed_for_arrival,omitempty"`
	ClosedForDeparture bool    `json:"closed_for_departure,omitempty"`
}

// CreateOverride handles POST /api/v1/rate-plans/{id}/overrides requests.
func (h *PlansHandler) CreateOverride(w http.ResponseWriter, r *http.Request) {
	var body CreateOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	date, err := parseDate(body.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	req := &create_override.Request{
		RatePlanID:         r.PathValue("id"),
		RoomTypeID:         body.RoomTypeID,
		Date:               date,
		AdjustmentType:     domain.AdjustmentType(body.AdjustmentType),
		Reason:             body.Reason,
		StopSell:           body.StopSell,
		ClosedForArrival:   body.ClosedForArrival,
		ClosedForDeparture: body.ClosedForDeparture,
		Actor:              actorFromRequest(r),
	}
	if body.AdjustmentValue != nil {
		value, err := parseMoney(*body.AdjustmentValue)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		req.AdjustmentValue = value
	}

	id, err := h.createOverride.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

// CreateTierRequest is the HTTP request body for creating a length-of-stay tier.
type CreateTierRequest struct {
	MinNights       int64   `json:"min_nights"`
	MaxNights       *int64  `json:"max_nights,omitempty"`
	AdjustmentType  string  `json:"adjustment_type"`
	AdjustmentValue *string `json:"adjustment_value,omitempty"`
	Priority        int64   `json:"priority"`
}

// CreateTier handles POST /api/v1/rate-plans/{id}/tiers requests.
func (h *PlansHandler) CreateTier(w http.ResponseWriter, r *http.Request) {
	var body CreateTierRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	req := &create_rate_tier.Request{
		RatePlanID:     r.PathValue("id"),
		MinNights:      body.MinNights,
		MaxNights:      body.MaxNights,
		AdjustmentType: domain.AdjustmentType(body.AdjustmentType),
		Priority:       body.Priority,
		Actor:          actorFromRequest(r),
	}
	if body.AdjustmentValue != nil {
		value, err := parseMoney(*body.AdjustmentValue)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		req.AdjustmentValue = value
	}

	id, err := h.createTier.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

// CreateRuleRequest is the HTTP request body for creating a pricing rule.
// Exactly one of the three adjustment fields must be set.
type CreateRuleRequest struct {
	HotelID            string  `json:"hotel_id"`
	Name               string  `json:"name"`
	Active             bool    `json:"active"`
	Priority           int64   `json:"priority"`
	StartDate          *string `json:"start_date,omitempty"`
	EndDate            *string `json:"end_date,omitempty"`
	MinNights          *int64  `json:"min_nights,omitempty"`
	MaxNights          *int64  `json:"max_nights,omitempty"`
	AdvanceBookingDays *int64  `json:"advance_booking_days,omitempty"`
	DiscountPercentage *string `json:"discount_percentage,omitempty"`
	DiscountAmount     *string `json:"discount_amount,omitempty"`
	PriceAdjustment    *string `json:"price_adjustment,omitempty"`
}

// CreateRule handles POST /api/v1/pricing-rules requests.
func (h *PlansHandler) CreateRule(w http.ResponseWriter, r *http.Request) {
	var body CreateRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	req := &create_pricing_rule.Request{
		HotelID:            body.HotelID,
		Name:               body.Name,
		Active:             body.Active,
		Priority:           body.Priority,
		MinNights:          body.MinNights,
		MaxNights:          body.MaxNights,
		AdvanceBookingDays: body.AdvanceBookingDays,
		Actor:              actorFromRequest(r),
	}

	var err error
	if body.StartDate != nil {
		if req.StartDate, err = parseDatePtr(*body.StartDate); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}
	if body.EndDate != nil {
		if req.EndDate, err = parseDatePtr(*body.EndDate); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}
	if body.DiscountPercentage != nil {
		if req.DiscountPercentage, err = parseMoney(*body.DiscountPercentage); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}
	if body.DiscountAmount != nil {
		if req.DiscountAmount, err = parseMoney(*body.DiscountAmount); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}
	if body.PriceAdjustment != nil {
		if req.PriceAdjustment, err = parseMoney(*body.PriceAdjustment); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	id, err := h.createRule.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}

// CreateComponentRequest is the HTTP request body for attaching a component
// to a package plan.
type CreateComponentRequest struct {
	Name          string  `json:"name"`
	ComponentType string  `json:"component_type"`
	Included      bool    `json:"included"`
	Quantity      int64   `json:"quantity"`
	PricingMode   string  `json:"pricing_mode"`
	UnitPrice     *string `json:"unit_price,omitempty"`
	AdultPrice    *string `json:"adult_price,omitempty"`
	ChildPrice    *string `json:"child_price,omitempty"`
	InfantPrice   *string `json:"infant_price,omitempty"`
}

// CreateComponent handles POST /api/v1/rate-plans/{id}/components requests.
func (h *PlansHandler) CreateComponent(w http.ResponseWriter, r *http.Request) {
	var body CreateComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	req := &create_package_component.Request{
		RatePlanID:    r.PathValue("id"),
		Name:          body.Name,
		ComponentType: domain.ComponentType(body.ComponentType),
		Included:      body.Included,
		Quantity:      body.Quantity,
		PricingMode:   domain.PricingMode(body.PricingMode),
		Actor:         actorFromRequest(r),
	}

	var err error
	if body.UnitPrice != nil {
		if req.UnitPrice, err = parseMoney(*body.UnitPrice); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}
	if body.AdultPrice != nil {
		if req.AdultPrice, err = parseMoney(*body.AdultPrice); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}
	if body.ChildPrice != nil {
		if req.ChildPrice, err = parseMoney(*body.ChildPrice); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}
	if body.InfantPrice != nil {
		if req.InfantPrice, err = parseMoney(*body.InfantPrice); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
	}

	id, err := h.createComponent.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, createdResponse{ID: id})
}
