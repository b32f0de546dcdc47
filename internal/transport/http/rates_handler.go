package http

import (
	"encoding/json"
	"net/http"

	"github.com/light-bringer/rategrid-service/internal/app/rates/selection"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/bulk_apply"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/upsert_room_rate"
)

// RatesHandler handles HTTP requests for room rate writes.
type RatesHandler struct {
	upsertRate *upsert_room_rate.Interactor
	bulkApply  *bulk_apply.Interactor
}

// NewRatesHandler creates a new rates handler.
func NewRatesHandler(upsertRate *upsert_room_rate.Interactor, bulkApply *bulk_apply.Interactor) *RatesHandler {
	return &RatesHandler{
		upsertRate: upsertRate,
		bulkApply:  bulkApply,
	}
}

// UpsertRoomRateRequest is the HTTP request body for writing one cell.
// Omitted optional fields leave the stored value untouched.
type UpsertRoomRateRequest struct {
	RatePlanID         string  `json:"rate_plan_id"`
	RoomTypeID         string  `json:"room_type_id"`
	Date               string  `json:"date"`
	RateAmount         *string `json:"rate_amount,omitempty"`
	AvailabilityCount  *int64  `json:"availability_count,omitempty"`
	StopSell           *bool   `json:"stop_sell,omitempty"`
	ClosedForArrival   *bool   `json:"closed_for_arrival,omitempty"`
	ClosedForDeparture *bool   `json:"closed_for_departure,omitempty"`
	ExpectedVersion    *int64  `json:"expected_version,omitempty"`
}

// UpsertRoomRate handles PUT /api/v1/room-rates requests.
func (h *RatesHandler) UpsertRoomRate(w http.ResponseWriter, r *http.Request) {
	var body UpsertRoomRateRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	date, err := parseDate(body.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	req := &upsert_room_rate.Request{
		RatePlanID:         body.RatePlanID,
		RoomTypeID:         body.RoomTypeID,
		Date:               date,
		AvailabilityCount:  body.AvailabilityCount,
		StopSell:           body.StopSell,
		ClosedForArrival:   body.ClosedForArrival,
		ClosedForDeparture: body.ClosedForDeparture,
		ExpectedVersion:    body.ExpectedVersion,
		Actor:              actorFromRequest(r),
	}
	if body.RateAmount != nil {
		amount, err := parseMoney(*body.RateAmount)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		req.RateAmount = amount
	}

	if err := h.upsertRate.Execute(r.Context(), req); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// BulkApplyRequest is the HTTP request body for one bulk mutation batch.
type BulkApplyRequest struct {
	Operation string   `json:"operation"`
	Targets   []string `json:"targets"`
	Amount    *string  `json:"amount,omitempty"`
	Clipboard []struct {
		Key               string `json:"key"`
		RateAmount        string `json:"rate_amount"`
		AvailabilityCount int64  `json:"availability_count"`
		StopSell          bool   `json:"stop_sell"`
	} `json:"clipboard,omitempty"`
	Parallel          bool `json:"parallel,omitempty"`
	Workers           int  `json:"workers,omitempty"`
	SingleAuditRecord bool `json:"single_audit_record,omitempty"`
}

// BulkApplyResponse reports the batch outcome.
type BulkApplyResponse struct {
	OperationID string          `json:"operation_id"`
	Succeeded   int             `json:"succeeded"`
	Failed      int             `json:"failed"`
	Canceled    bool            `json:"canceled"`
	Errors      []BulkCellError `json:"errors,omitempty"`
}

// BulkCellError identifies one failed cell.
type BulkCellError struct {
	Key   string `json:"key"`
	Error string `json:"error"`
}

// BulkApply handles POST /api/v1/room-rates/bulk requests.
func (h *RatesHandler) BulkApply(w http.ResponseWriter, r *http.Request) {
	var body BulkApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	req, err := h.toBulkRequest(r, body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.bulkApply.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := BulkApplyResponse{
		OperationID: result.OperationID,
		Succeeded:   result.Succeeded,
		Failed:      result.Failed,
		Canceled:    result.Canceled,
	}
	for _, cellErr := range result.Errors {
		resp.Errors = append(resp.Errors, BulkCellError{
			Key:   cellErr.Key.String(),
			Error: cellErr.Err.Error(),
		})
	}

	// Partial failure still returns the full outcome report.
	writeJSON(w, http.StatusOK, resp)
}

func (h *RatesHandler) toBulkRequest(r *http.Request, body BulkApplyRequest) (*bulk_apply.Request, error) {
	req := &bulk_apply.Request{
		Kind:              bulk_apply.OpKind(body.Operation),
		Actor:             actorFromRequest(r),
		Parallel:          body.Parallel,
		Workers:           body.Workers,
		SingleAuditRecord: body.SingleAuditRecord,
	}

	for _, target := range body.Targets {
		key, err := selection.ParseCellKey(target)
		if err != nil {
			return nil, err
		}
		req.Targets = append(req.Targets, key)
	}

	if body.Amount != nil {
		amount, err := parseMoney(*body.Amount)
		if err != nil {
			return nil, err
		}
		req.Amount = amount
	}

	if len(body.Clipboard) > 0 {
		cells := make([]selection.CopiedCell, 0, len(body.Clipboard))
		for _, entry := range body.Clipboard {
			key, err := selection.ParseCellKey(entry.Key)
			if err != nil {
				return nil, err
			}
			amount, err := parseMoney(entry.RateAmount)
			if err != nil {
				return nil, err
			}
			cells = append(cells, selection.CopiedCell{
				Key:               key,
				RateAmount:        amount,
				AvailabilityCount: entry.AvailabilityCount,
				StopSell:          entry.StopSell,
			})
		}
		req.Clipboard = selection.NewClipboard(cells)
	}

	return req, nil
}
