package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
	"github.com/light-bringer/rategrid-service/internal/models/m_rate_audit"
	"github.com/light-bringer/rategrid-service/internal/pkg/query"
)

// ErrAuditRecordNotFound is returned when an audit record does not exist.
var ErrAuditRecordNotFound = errors.New("audit record not found")

// AuditRepo implements AuditRepository for Spanner.
type AuditRepo struct {
	client *spanner.Client
	model  *m_rate_audit.Model
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(client *spanner.Client) contracts.AuditRepository {
	return &AuditRepo{
		client: client,
		model:  m_rate_audit.NewModel(),
	}
}

// InsertMut creates a mutation for appending an audit record.
func (r *AuditRepo) InsertMut(record *audit.Record) (*spanner.Mutation, error) {
	if record.AuditID == "" {
		return nil, fmt.Errorf("audit record has no ID")
	}

	data := &m_rate_audit.Data{
		AuditID:       record.AuditID,
		EntityType:    string(record.EntityType),
		EntityID:      record.EntityID,
		Action:        string(record.Action),
		ActorID:       record.Actor.ID,
		ActorName:     record.Actor.DisplayName,
		PreviousState: snapshotJSON(record.Previous),
		NewState:      snapshotJSON(record.New),
		ChangedFields: spanner.NullJSON{Value: record.ChangedFields, Valid: true},
		OccurredAt:    record.OccurredAt,
	}

	return r.model.InsertMut(data), nil
}

// GetByID retrieves one audit record with its full snapshots.
func (r *AuditRepo) GetByID(ctx context.Context, auditID string) (*audit.Record, error) {
	row, err := r.client.Single().ReadRow(ctx, m_rate_audit.TableName, spanner.Key{auditID}, auditColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, ErrAuditRecordNotFound
		}
		return nil, fmt.Errorf("failed to read audit record: %w", err)
	}

	var data m_rate_audit.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse audit record: %w", err)
	}

	return r.dataToRecord(&data)
}

// Query retrieves a filtered page of records, newest first.
func (r *AuditRepo) Query(ctx context.Context, filter audit.Filter, page audit.PageRequest) (*audit.Page, error) {
	page = page.Normalize()

	base := r.filtered(query.From(m_rate_audit.TableName), filter)

	total, err := r.count(ctx, base)
	if err != nil {
		return nil, err
	}

	stmt := base.
		Select(auditColumns()...).
		OrderBy(m_rate_audit.OccurredAt, query.Desc).
		Limit(page.Size).
		Offset(page.Page * page.Size).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	records := make([]*audit.Record, 0, page.Size)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query audit records: %w", err)
		}

		var data m_rate_audit.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse audit record: %w", err)
		}

		record, err := r.dataToRecord(&data)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	totalPages := total / page.Size
	if total%page.Size != 0 {
		totalPages++
	}

	return &audit.Page{
		Records:       records,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

// Summarize aggregates matching records without materializing snapshots.
func (r *AuditRepo) Summarize(ctx context.Context, filter audit.Filter) (*audit.Summary, error) {
	stmt := r.filtered(query.From(m_rate_audit.TableName), filter).
		Select(m_rate_audit.EntityType, m_rate_audit.Action, m_rate_audit.ActorID).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	summary := audit.NewSummary()
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to summarize audit records: %w", err)
		}

		var entityType, action, actorID string
		if err := row.Columns(&entityType, &action, &actorID); err != nil {
			return nil, fmt.Errorf("failed to parse audit summary row: %w", err)
		}

		summary.Accumulate(&audit.Record{
			EntityType: audit.EntityType(entityType),
			Action:     audit.Action(action),
			Actor:      audit.Actor{ID: actorID},
		})
	}

	return summary, nil
}

// filtered applies the audit filter to a query builder.
func (r *AuditRepo) filtered(builder *query.Builder, filter audit.Filter) *query.Builder {
	if filter.EntityType != nil {
		builder = builder.Where(query.Eq(m_rate_audit.EntityType, string(*filter.EntityType)))
	}
	if filter.EntityID != nil {
		builder = builder.Where(query.Eq(m_rate_audit.EntityID, *filter.EntityID))
	}
	if filter.Action != nil {
		builder = builder.Where(query.Eq(m_rate_audit.Action, string(*filter.Action)))
	}
	if filter.ActorID != nil {
		builder = builder.Where(query.Eq(m_rate_audit.ActorID, *filter.ActorID))
	}
	if filter.From != nil {
		builder = builder.Where(query.Gte(m_rate_audit.OccurredAt, *filter.From))
	}
	if filter.To != nil {
		builder = builder.Where(query.Lte(m_rate_audit.OccurredAt, *filter.To))
	}
	if filter.FreeText != "" {
		pattern := "%" + filter.FreeText + "%"
		builder = builder.Where(query.Or(
			query.Like(m_rate_audit.EntityID, pattern),
			query.Like(m_rate_audit.ActorName, pattern),
		))
	}
	return builder
}

func (r *AuditRepo) count(ctx context.Context, builder *query.Builder) (int64, error) {
	iter := r.client.Single().Query(ctx, builder.Count().Build())
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count audit records: %w", err)
	}

	var count int64
	if err := row.Column(0, &count); err != nil {
		return 0, fmt.Errorf("failed to parse audit record count: %w", err)
	}
	return count, nil
}

func auditColumns() []string {
	return []string{
		m_rate_audit.AuditID,
		m_rate_audit.EntityType,
		m_rate_audit.EntityID,
		m_rate_audit.Action,
		m_rate_audit.ActorID,
		m_rate_audit.ActorName,
		m_rate_audit.PreviousState,
		m_rate_audit.NewState,
		m_rate_audit.ChangedFields,
		m_rate_audit.OccurredAt,
	}
}

// dataToRecord converts database Data to an audit Record.
func (r *AuditRepo) dataToRecord(data *m_rate_audit.Data) (*audit.Record, error) {
	entity := audit.EntityType(data.EntityType)

	prev, err := decodeSnapshot(entity, data.PreviousState)
	if err != nil {
		return nil, err
	}
	next, err := decodeSnapshot(entity, data.NewState)
	if err != nil {
		return nil, err
	}

	var changed []audit.FieldChange
	if data.ChangedFields.Valid {
		raw, err := json.Marshal(data.ChangedFields.Value)
		if err != nil {
			return nil, fmt.Errorf("failed to re-encode changed fields: %w", err)
		}
		if err := json.Unmarshal(raw, &changed); err != nil {
			return nil, fmt.Errorf("failed to decode changed fields: %w", err)
		}
	}

	return &audit.Record{
		AuditID:       data.AuditID,
		EntityType:    entity,
		EntityID:      data.EntityID,
		Action:        audit.Action(data.Action),
		Actor:         audit.Actor{ID: data.ActorID, DisplayName: data.ActorName},
		Previous:      prev,
		New:           next,
		ChangedFields: changed,
		OccurredAt:    data.OccurredAt,
	}, nil
}

func snapshotJSON(s *audit.Snapshot) spanner.NullJSON {
	if s == nil {
		return spanner.NullJSON{}
	}
	return spanner.NullJSON{Value: s, Valid: true}
}

func decodeSnapshot(entity audit.EntityType, col spanner.NullJSON) (*audit.Snapshot, error) {
	if !col.Valid {
		return nil, nil
	}
	raw, err := json.Marshal(col.Value)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode snapshot: %w", err)
	}
	snapshot, err := audit.DecodeSnapshot(entity, raw)
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}
