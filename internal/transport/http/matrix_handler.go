package http

import (
	"encoding/json"
	"net/http"

	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
	"github.com/light-bringer/rategrid-service/internal/app/rates/matrix"
	"github.com/light-bringer/rategrid-service/internal/app/rates/queries/build_matrix"
)

// MatrixHandler handles HTTP requests for the resolved rate grid.
type MatrixHandler struct {
	buildMatrix *build_matrix.Query
}

// NewMatrixHandler creates a new matrix handler.
func NewMatrixHandler(buildMatrix *build_matrix.Query) *MatrixHandler {
	return &MatrixHandler{
		buildMatrix: buildMatrix,
	}
}

// BuildMatrixRequest is the HTTP request body for building a rate matrix.
type BuildMatrixRequest struct {
	HotelID      string   `json:"hotel_id"`
	RatePlanIDs  []string `json:"rate_plan_ids,omitempty"`
	RoomTypeIDs  []string `json:"room_type_ids"`
	From         string   `json:"from"`
	To           string   `json:"to"`
	GuestTypes   []string `json:"guest_types,omitempty"`
	LengthOfStay int64    `json:"length_of_stay,omitempty"`
	BookingDate  string   `json:"booking_date,omitempty"`
}

// MatrixCell is one resolved cell in the HTTP response.
type MatrixCell struct {
	RatePlanID            string  `json:"rate_plan_id"`
	RatePlanCode          string  `json:"rate_plan_code"`
	RoomTypeID            string  `json:"room_type_id"`
	Date                  string  `json:"date"`
	GuestType             string  `json:"guest_type"`
	BaseRate              string  `json:"base_rate"`
	FinalRate             string  `json:"final_rate"`
	PackageComponentTotal *string `json:"package_component_total,omitempty"`
	AppliedTierID         *string `json:"applied_tier_id,omitempty"`
	AppliedOverrideID     *string `json:"applied_override_id,omitempty"`
	AppliedRuleID         *string `json:"applied_rule_id,omitempty"`
	AvailabilityCount     int64   `json:"availability_count"`
	StopSell              bool    `json:"stop_sell"`
	ClosedForArrival      bool    `json:"closed_for_arrival"`
	ClosedForDeparture    bool    `json:"closed_for_departure"`
}

// MatrixStats summarizes the built grid.
type MatrixStats struct {
	TotalCells              int64   `json:"total_cells"`
	EmptyCells              int64   `json:"empty_cells"`
	StopSellCells           int64   `json:"stop_sell_cells"`
	ClosedForArrivalCells   int64   `json:"closed_for_arrival_cells"`
	ClosedForDepartureCells int64   `json:"closed_for_departure_cells"`
	MinRate                 *string `json:"min_rate,omitempty"`
	MaxRate                 *string `json:"max_rate,omitempty"`
	AvgRate                 *string `json:"avg_rate,omitempty"`
}

// BuildMatrixResponse is the HTTP response: cells keyed by date, room type,
// rate plan and guest type, mirroring the grid's axes.
type BuildMatrixResponse struct {
	Cells map[string]map[string]map[string]map[string]MatrixCell `json:"cells"`
	Stats MatrixStats                                            `json:"stats"`
}

// BuildMatrix handles POST /api/v1/rate-matrix requests.
func (h *MatrixHandler) BuildMatrix(w http.ResponseWriter, r *http.Request) {
	var body BuildMatrixRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	req, err := h.toMatrixRequest(body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.buildMatrix.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toMatrixResponse(result))
}

func (h *MatrixHandler) toMatrixRequest(body BuildMatrixRequest) (matrix.Request, error) {
	from, err := parseDate(body.From)
	if err != nil {
		return matrix.Request{}, err
	}
	to, err := parseDate(body.To)
	if err != nil {
		return matrix.Request{}, err
	}

	req := matrix.Request{
		HotelID:      body.HotelID,
		RatePlanIDs:  body.RatePlanIDs,
		RoomTypeIDs:  body.RoomTypeIDs,
		From:         from,
		To:           to,
		LengthOfStay: body.LengthOfStay,
	}
	for _, gt := range body.GuestTypes {
		req.GuestTypes = append(req.GuestTypes, domain.GuestType(gt))
	}
	if body.BookingDate != "" {
		bookingDate, err := parseDate(body.BookingDate)
		if err != nil {
			return matrix.Request{}, err
		}
		req.BookingDate = bookingDate
	}
	return req, nil
}

func toMatrixResponse(m *matrix.Matrix) BuildMatrixResponse {
	cells := make(map[string]map[string]map[string]map[string]MatrixCell, len(m.Cells))
	for date, byRoom := range m.Cells {
		cells[date] = make(map[string]map[string]map[string]MatrixCell, len(byRoom))
		for room, byPlan := range byRoom {
			cells[date][room] = make(map[string]map[string]MatrixCell, len(byPlan))
			for plan, byGuest := range byPlan {
				cells[date][room][plan] = make(map[string]MatrixCell, len(byGuest))
				for guest, cell := range byGuest {
					cells[date][room][plan][string(guest)] = toMatrixCell(cell)
				}
			}
		}
	}

	stats := MatrixStats{
		TotalCells:              m.Stats.TotalCells,
		EmptyCells:              m.Stats.EmptyCells,
		StopSellCells:           m.Stats.StopSellCells,
		ClosedForArrivalCells:   m.Stats.ClosedForArrivalCells,
		ClosedForDepartureCells: m.Stats.ClosedForDepartureCells,
		MinRate:                 moneyStringPtr(m.Stats.MinRate),
		MaxRate:                 moneyStringPtr(m.Stats.MaxRate),
		AvgRate:                 moneyStringPtr(m.Stats.AvgRate),
	}

	return BuildMatrixResponse{Cells: cells, Stats: stats}
}

func toMatrixCell(cell *domain.RateMatrixCell) MatrixCell {
	return MatrixCell{
		RatePlanID:            cell.RatePlanID,
		RatePlanCode:          cell.RatePlanCode,
		RoomTypeID:            cell.RoomTypeID,
		Date:                  cell.Date.String(),
		GuestType:             string(cell.GuestType),
		BaseRate:              moneyString(cell.BaseRate),
		FinalRate:             moneyString(cell.FinalRate),
		PackageComponentTotal: moneyStringPtr(cell.PackageComponentTotal),
		AppliedTierID:         cell.AppliedTierID,
		AppliedOverrideID:     cell.AppliedOverrideID,
		AppliedRuleID:         cell.AppliedRuleID,
		AvailabilityCount:     cell.AvailabilityCount,
		StopSell:              cell.StopSell,
		ClosedForArrival:      cell.ClosedForArrival,
		ClosedForDeparture:    cell.ClosedForDeparture,
	}
}
