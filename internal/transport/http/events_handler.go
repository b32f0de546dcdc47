package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/light-bringer/rategrid-service/internal/app/rates/queries/list_events"
)

// EventsHandler handles HTTP requests for outbox events.
type EventsHandler struct {
	listEvents *list_events.Query
}

// NewEventsHandler creates a new HTTP events handler.
func NewEventsHandler(listEvents *list_events.Query) *EventsHandler {
	return &EventsHandler{
		listEvents: listEvents,
	}
}

// Event represents a domain event in the HTTP response.
type Event struct {
	EventID     string `json:"event_id"`
	EventType   string `json:"event_type"`
	AggregateID string `json:"aggregate_id"`
	Payload     string `json:"payload"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// ListEventsResponse represents the HTTP response for listing events.
type ListEventsResponse struct {
	Events []Event `json:"events"`
}

// List handles GET /api/v1/events requests.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	req := &list_events.Request{}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.ParseInt(limitStr, 10, 64); err == nil && limit > 0 {
			req.Limit = limit
		}
	}

	events, err := h.listEvents.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := ListEventsResponse{Events: make([]Event, 0, len(events))}
	for _, event := range events {
		resp.Events = append(resp.Events, Event{
			EventID:     event.EventID,
			EventType:   event.EventType,
			AggregateID: event.AggregateID,
			Payload:     event.Payload,
			Status:      event.Status,
			CreatedAt:   event.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
