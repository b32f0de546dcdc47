// Package http exposes the rate grid engine as a JSON API. Handlers stay
// thin: parse, call the usecase or query, map errors to status codes.
package http

import "net/http"

// Router aggregates all HTTP handlers of the service.
type Router struct {
	Matrix *MatrixHandler
	Rates  *RatesHandler
	Plans  *PlansHandler
	Audit  *AuditHandler
	Events *EventsHandler
}

// Mux builds the route table.
func (rt *Router) Mux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/rate-matrix", rt.Matrix.BuildMatrix)

	mux.HandleFunc("PUT /api/v1/room-rates", rt.Rates.UpsertRoomRate)
	mux.HandleFunc("POST /api/v1/room-rates/bulk", rt.Rates.BulkApply)

	mux.HandleFunc("POST /api/v1/rate-plans", rt.Plans.CreatePlan)
	mux.HandleFunc("PATCH /api/v1/rate-plans/{id}", rt.Plans.UpdatePlan)
	mux.HandleFunc("POST /api/v1/rate-plans/{id}/overrides", rt.Plans.CreateOverride)
	mux.HandleFunc("POST /api/v1/rate-plans/{id}/tiers", rt.Plans.CreateTier)
	mux.HandleFunc("POST /api/v1/rate-plans/{id}/components", rt.Plans.CreateComponent)
	mux.HandleFunc("POST /api/v1/pricing-rules", rt.Plans.CreateRule)

	mux.HandleFunc("GET /api/v1/audit", rt.Audit.List)
	mux.HandleFunc("GET /api/v1/audit/summary", rt.Audit.Summary)
	mux.HandleFunc("GET /api/v1/audit/export", rt.Audit.Export)
	mux.HandleFunc("GET /api/v1/audit/{id}", rt.Audit.Get)
	mux.HandleFunc("POST /api/v1/audit/{id}/rollback", rt.Audit.Rollback)

	mux.HandleFunc("GET /api/v1/events", rt.Events.List)

	return mux
}
