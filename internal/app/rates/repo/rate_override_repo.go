package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/civil"
	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
	"github.com/light-bringer/rategrid-service/internal/models/m_rate_override"
	"github.com/light-bringer/rategrid-service/internal/pkg/query"
)

// RateOverrideRepo implements RateOverrideRepository for Spanner.
type RateOverrideRepo struct {
	client *spanner.Client
	model  *m_rate_override.Model
}

// NewRateOverrideRepo creates a new RateOverrideRepo.
func NewRateOverrideRepo(client *spanner.Client) contracts.RateOverrideRepository {
	return &RateOverrideRepo{
		client: client,
		model:  m_rate_override.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a new override.
func (r *RateOverrideRepo) InsertMut(override *domain.RateOverride) (*spanner.Mutation, error) {
	value := override.Adjustment().Value().Normalize()
	if !value.IsSafeForStorage() {
		return nil, fmt.Errorf("adjustment value exceeds storage capacity: %w", domain.ErrMoneyOverflow)
	}

	roomTypeID := spanner.NullString{}
	if rt := override.RoomTypeID(); rt != nil {
		roomTypeID = spanner.NullString{StringVal: *rt, Valid: true}
	}

	data := &m_rate_override.Data{
		OverrideID:                 override.ID(),
		RatePlanID:                 override.RatePlanID(),
		RoomTypeID:                 roomTypeID,
		Date:                       override.Date(),
		AdjustmentType:             string(override.Adjustment().Type()),
		AdjustmentValueNumerator:   value.Numerator(),
		AdjustmentValueDenominator: value.Denominator(),
		Reason:                     override.Reason(),
		StopSell:                   override.StopSell(),
		ClosedForArrival:           override.ClosedForArrival(),
		ClosedForDeparture:         override.ClosedForDeparture(),
	}

	return r.model.InsertMut(data), nil
}

// DeleteMut creates a mutation for removing an override.
func (r *RateOverrideRepo) DeleteMut(overrideID string) *spanner.Mutation {
	return r.model.DeleteMut(overrideID)
}

// GetByID retrieves an override by ID.
func (r *RateOverrideRepo) GetByID(ctx context.Context, overrideID string) (*domain.RateOverride, error) {
	row, err := r.client.Single().ReadRow(ctx, m_rate_override.TableName, spanner.Key{overrideID}, overrideColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrOverrideNotFound
		}
		return nil, fmt.Errorf("failed to read rate override: %w", err)
	}

	var data m_rate_override.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse rate override: %w", err)
	}

	return r.dataToDomain(&data)
}

// ListInRange retrieves overrides for the given plans dated within [from, to].
func (r *RateOverrideRepo) ListInRange(ctx context.Context, ratePlanIDs []string, from, to civil.Date) ([]*domain.RateOverride, error) {
	if len(ratePlanIDs) == 0 {
		return nil, nil
	}

	stmt := query.From(m_rate_override.TableName).
		Select(overrideColumns()...).
		Where(query.In(m_rate_override.RatePlanID, ratePlanIDs)).
		Where(query.Gte(m_rate_override.Date, from)).
		Where(query.Lte(m_rate_override.Date, to)).
		OrderBy(m_rate_override.Date, query.Asc).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	overrides := make([]*domain.RateOverride, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list rate overrides: %w", err)
		}

		var data m_rate_override.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse rate override: %w", err)
		}

		override, err := r.dataToDomain(&data)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, override)
	}

	return overrides, nil
}

func overrideColumns() []string {
	return []string{
		m_rate_override.OverrideID,
		m_rate_override.RatePlanID,
		m_rate_override.RoomTypeID,
		m_rate_override.Date,
		m_rate_override.AdjustmentType,
		m_rate_override.AdjustmentValueNumerator,
		m_rate_override.AdjustmentValueDenominator,
		m_rate_override.Reason,
		m_rate_override.StopSell,
		m_rate_override.ClosedForArrival,
		m_rate_override.ClosedForDeparture,
		m_rate_override.CreatedAt,
		m_rate_override.UpdatedAt,
	}
}

// dataToDomain converts database Data to a domain RateOverride.
func (r *RateOverrideRepo) dataToDomain(data *m_rate_override.Data) (*domain.RateOverride, error) {
	value, err := domain.NewMoney(data.AdjustmentValueNumerator, data.AdjustmentValueDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid adjustment value: %w", err)
	}

	adjustment, err := domain.NewAdjustment(domain.AdjustmentType(data.AdjustmentType), value)
	if err != nil {
		return nil, fmt.Errorf("invalid override adjustment: %w", err)
	}

	var roomTypeID *string
	if data.RoomTypeID.Valid {
		rt := data.RoomTypeID.StringVal
		roomTypeID = &rt
	}

	return domain.ReconstructRateOverride(
		data.OverrideID,
		data.RatePlanID,
		roomTypeID,
		data.Date,
		adjustment,
		data.Reason,
		data.StopSell,
		data.ClosedForArrival,
		data.ClosedForDeparture,
		data.CreatedAt,
		data.UpdatedAt,
	), nil
}
