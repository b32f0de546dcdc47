package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/export"
	"github.com/light-bringer/rategrid-service/internal/app/rates/queries/get_audit_record"
	"github.com/light-bringer/rategrid-service/internal/app/rates/queries/list_audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/queries/summarize_audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/rollback_audit"
	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
)

// AuditHandler handles HTTP requests for the audit trail.
type AuditHandler struct {
	listAudit      *list_audit.Query
	getRecord      *get_audit_record.Query
	summarizeAudit *summarize_audit.Query
	rollback       *rollback_audit.Interactor
	clock          clock.Clock
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(
	listAudit *list_audit.Query,
	getRecord *get_audit_record.Query,
	summarizeAudit *summarize_audit.Query,
	rollback *rollback_audit.Interactor,
	clk clock.Clock,
) *AuditHandler {
	return &AuditHandler{
		listAudit:      listAudit,
		getRecord:      getRecord,
		summarizeAudit: summarizeAudit,
		rollback:       rollback,
		clock:          clk,
	}
}

// AuditRecord is one audit trail entry in the HTTP response.
type AuditRecord struct {
	AuditID       string                 `json:"audit_id"`
	EntityType    string                 `json:"entity_type"`
	EntityID      string                 `json:"entity_id"`
	Action        string                 `json:"action"`
	ActorID       string                 `json:"actor_id"`
	ActorName     string                 `json:"actor_name,omitempty"`
	Previous      map[string]interface{} `json:"previous,omitempty"`
	New           map[string]interface{} `json:"new,omitempty"`
	ChangedFields []audit.FieldChange    `json:"changed_fields"`
	OccurredAt    string                 `json:"occurred_at"`
}

// ListAuditResponse is one page of audit records.
type ListAuditResponse struct {
	Records       []AuditRecord `json:"records"`
	Page          int64         `json:"page"`
	Size          int64         `json:"size"`
	TotalElements int64         `json:"total_elements"`
	TotalPages    int64         `json:"total_pages"`
}

// List handles GET /api/v1/audit requests.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, page, err := auditQueryParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.listAudit.Execute(r.Context(), &list_audit.Request{Filter: filter, Page: page})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := ListAuditResponse{
		Records:       make([]AuditRecord, 0, len(result.Records)),
		Page:          result.Page,
		Size:          result.Size,
		TotalElements: result.TotalElements,
		TotalPages:    result.TotalPages,
	}
	for _, rec := range result.Records {
		resp.Records = append(resp.Records, toAuditRecord(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/audit/{id} requests.
func (h *AuditHandler) Get(w http.ResponseWriter, r *http.Request) {
	rec, err := h.getRecord.Execute(r.Context(), &get_audit_record.Request{AuditID: r.PathValue("id")})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toAuditRecord(rec))
}

// Summary handles GET /api/v1/audit/summary requests.
func (h *AuditHandler) Summary(w http.ResponseWriter, r *http.Request) {
	filter, _, err := auditQueryParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	summary, err := h.summarizeAudit.Execute(r.Context(), &summarize_audit.Request{Filter: filter})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

// Export handles GET /api/v1/audit/export requests. The same filters as List
// apply; format selects csv, xlsx or pdf.
func (h *AuditHandler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	filter, page, err := auditQueryParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.listAudit.Execute(r.Context(), &list_audit.Request{Filter: filter, Page: page})
	if err != nil {
		writeError(w, err)
		return
	}

	exporter, err := export.New(format)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", "attachment; filename="+format.FileName(h.clock.Now()))
	if err := exporter.Export(w, result.Records); err != nil {
		// Headers are already sent; nothing useful to report to the client.
		return
	}
}

// RollbackResponse carries the ID of the ROLLBACK audit entry produced by a
// successful rollback.
type RollbackResponse struct {
	AuditID string `json:"audit_id"`
}

// Rollback handles POST /api/v1/audit/{id}/rollback requests.
func (h *AuditHandler) Rollback(w http.ResponseWriter, r *http.Request) {
	auditID, err := h.rollback.Execute(r.Context(), &rollback_audit.Request{
		AuditID: r.PathValue("id"),
		Actor:   actorFromRequest(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, RollbackResponse{AuditID: auditID})
}

func toAuditRecord(rec *audit.Record) AuditRecord {
	return AuditRecord{
		AuditID:       rec.AuditID,
		EntityType:    string(rec.EntityType),
		EntityID:      rec.EntityID,
		Action:        string(rec.Action),
		ActorID:       rec.Actor.ID,
		ActorName:     rec.Actor.DisplayName,
		Previous:      rec.Previous.Fields(),
		New:           rec.New.Fields(),
		ChangedFields: rec.ChangedFields,
		OccurredAt:    rec.OccurredAt.UTC().Format(time.RFC3339),
	}
}

func auditQueryParams(r *http.Request) (audit.Filter, audit.PageRequest, error) {
	query := r.URL.Query()
	var filter audit.Filter

	if v := query.Get("entity_type"); v != "" {
		entityType := audit.EntityType(v)
		filter.EntityType = &entityType
	}
	if v := query.Get("entity_id"); v != "" {
		filter.EntityID = &v
	}
	if v := query.Get("action"); v != "" {
		action := audit.Action(v)
		filter.Action = &action
	}
	if v := query.Get("actor_id"); v != "" {
		filter.ActorID = &v
	}
	if v := query.Get("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, audit.PageRequest{}, err
		}
		filter.From = &from
	}
	if v := query.Get("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, audit.PageRequest{}, err
		}
		filter.To = &to
	}
	filter.FreeText = query.Get("q")

	var page audit.PageRequest
	if v := query.Get("page"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, page, err
		}
		page.Page = n
	}
	if v := query.Get("size"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return filter, page, err
		}
		page.Size = n
	}
	return filter, page, nil
}
