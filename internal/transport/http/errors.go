package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
	"github.com/light-bringer/rategrid-service/internal/app/rates/matrix"
	"github.com/light-bringer/rategrid-service/internal/app/rates/repo"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/bulk_apply"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/rollback_audit"
	"github.com/light-bringer/rategrid-service/internal/pkg/committer"
)

// errorResponse is the JSON body for all error replies.
type errorResponse struct {
	Error string `json:"error"`
}

// writeError converts application errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusOf(err), errorResponse{Error: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrRatePlanNotFound),
		errors.Is(err, domain.ErrRoomRateNotFound),
		errors.Is(err, domain.ErrTierNotFound),
		errors.Is(err, domain.ErrOverrideNotFound),
		errors.Is(err, domain.ErrRuleNotFound),
		errors.Is(err, domain.ErrComponentNotFound),
		errors.Is(err, repo.ErrAuditRecordNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrDuplicatePlanCode):
		return http.StatusConflict

	case errors.Is(err, committer.ErrVersionConflict):
		return http.StatusConflict

	case errors.Is(err, domain.ErrPlanRetired),
		errors.Is(err, domain.ErrAlreadyRetired),
		errors.Is(err, domain.ErrNotPackagePlan),
		errors.Is(err, domain.ErrNoBaseRate),
		errors.Is(err, rollback_audit.ErrNoPreviousState),
		errors.Is(err, rollback_audit.ErrUnsupportedEntity):
		return http.StatusUnprocessableEntity

	case errors.Is(err, domain.ErrEmptyPlanCode),
		errors.Is(err, domain.ErrEmptyPlanName),
		errors.Is(err, domain.ErrInvalidValidityWindow),
		errors.Is(err, domain.ErrNegativeRateAmount),
		errors.Is(err, domain.ErrNegativeAvailability),
		errors.Is(err, domain.ErrEmptyRoomType),
		errors.Is(err, domain.ErrInvalidAdjustmentType),
		errors.Is(err, domain.ErrMissingAdjustmentValue),
		errors.Is(err, domain.ErrNegativePercentage),
		errors.Is(err, domain.ErrNegativeMultiplier),
		errors.Is(err, domain.ErrInvalidTierRange),
		errors.Is(err, domain.ErrInvalidMinNights),
		errors.Is(err, domain.ErrNegativePriority),
		errors.Is(err, domain.ErrRuleAdjustmentCount),
		errors.Is(err, domain.ErrInvalidRuleDateRange),
		errors.Is(err, domain.ErrEmptyComponentName),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrMissingComponentRate),
		errors.Is(err, matrix.ErrNoRoomTypes),
		errors.Is(err, matrix.ErrBadDateRange),
		errors.Is(err, matrix.ErrDateRangeTooWide),
		errors.Is(err, bulk_apply.ErrNoTargets),
		errors.Is(err, bulk_apply.ErrMissingAmount),
		errors.Is(err, bulk_apply.ErrEmptyClipboard),
		errors.Is(err, bulk_apply.ErrUnknownOperation):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// writeJSON sends a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
