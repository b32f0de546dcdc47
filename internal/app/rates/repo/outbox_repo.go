package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
	"github.com/light-bringer/rategrid-service/internal/models/m_rate_event"
	"github.com/light-bringer/rategrid-service/internal/pkg/query"
)

// OutboxRepo implements OutboxRepository for Spanner.
type OutboxRepo struct {
	client *spanner.Client
	model  *m_rate_event.Model
}

// NewOutboxRepo creates a new OutboxRepo.
func NewOutboxRepo(client *spanner.Client) contracts.OutboxRepository {
	return &OutboxRepo{
		client: client,
		model:  m_rate_event.NewModel(),
	}
}

// InsertMut creates a mutation for inserting an outbox event.
func (r *OutboxRepo) InsertMut(event *contracts.OutboxEvent) *spanner.Mutation {
	// Wrap payload string as JSON for Spanner
	payload := spanner.NullJSON{Value: event.Payload, Valid: event.Payload != ""}

	data := &m_rate_event.Data{
		EventID:     event.EventID,
		EventType:   event.EventType,
		AggregateID: event.AggregateID,
		Payload:     payload,
		Status:      event.Status,
		RetryCount:  0,
	}

	return r.model.InsertMut(data)
}

// EnrichEvent converts a domain event to an outbox event with metadata.
func (r *OutboxRepo) EnrichEvent(event domain.DomainEvent, payload string) *contracts.OutboxEvent {
	return &contracts.OutboxEvent{
		EventID:     uuid.New().String(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Payload:     payload,
		Status:      m_rate_event.StatusPending,
	}
}

// ListRecent retrieves the newest events for the inspection endpoint.
func (r *OutboxRepo) ListRecent(ctx context.Context, limit int64) ([]*contracts.OutboxEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	stmt := query.From(m_rate_event.TableName).
		Select(
			m_rate_event.EventID,
			m_rate_event.EventType,
			m_rate_event.AggregateID,
			m_rate_event.Payload,
			m_rate_event.Status,
			m_rate_event.CreatedAt,
		).
		OrderBy(m_rate_event.CreatedAt, query.Desc).
		Limit(limit).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	events := make([]*contracts.OutboxEvent, 0, limit)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list events: %w", err)
		}

		var data m_rate_event.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse event: %w", err)
		}

		payload := ""
		if data.Payload.Valid {
			if s, ok := data.Payload.Value.(string); ok {
				payload = s
			}
		}

		events = append(events, &contracts.OutboxEvent{
			EventID:     data.EventID,
			EventType:   data.EventType,
			AggregateID: data.AggregateID,
			Payload:     payload,
			Status:      data.Status,
			CreatedAt:   data.CreatedAt,
		})
	}

	return events, nil
}
