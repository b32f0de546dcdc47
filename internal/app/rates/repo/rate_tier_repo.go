package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
	"github.com/light-bringer/rategrid-service/internal/models/m_rate_tier"
	"github.com/light-bringer/rategrid-service/internal/pkg/query"
)

// RateTierRepo implements RateTierRepository for Spanner.
type RateTierRepo struct {
	client *spanner.Client
	model  *m_rate_tier.Model
}

// NewRateTierRepo creates a new RateTierRepo.
func NewRateTierRepo(client *spanner.Client) contracts.RateTierRepository {
	return &RateTierRepo{
		client: client,
		model:  m_rate_tier.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a new tier.
func (r *RateTierRepo) InsertMut(tier *domain.RateTier) (*spanner.Mutation, error) {
	value := tier.Adjustment().Value().Normalize()
	if !value.IsSafeForStorage() {
		return nil, fmt.Errorf("adjustment value exceeds storage capacity: %w", domain.ErrMoneyOverflow)
	}

	data := &m_rate_tier.Data{
		TierID:                     tier.ID(),
		RatePlanID:                 tier.RatePlanID(),
		MinNights:                  tier.MinNights(),
		MaxNights:                  nullInt64Ptr(tier.MaxNights()),
		AdjustmentType:             string(tier.Adjustment().Type()),
		AdjustmentValueNumerator:   value.Numerator(),
		AdjustmentValueDenominator: value.Denominator(),
		Priority:                   tier.Priority(),
	}

	return r.model.InsertMut(data), nil
}

// DeleteMut creates a mutation for removing a tier.
func (r *RateTierRepo) DeleteMut(tierID string) *spanner.Mutation {
	return r.model.DeleteMut(tierID)
}

// GetByID retrieves a tier by ID.
func (r *RateTierRepo) GetByID(ctx context.Context, tierID string) (*domain.RateTier, error) {
	row, err := r.client.Single().ReadRow(ctx, m_rate_tier.TableName, spanner.Key{tierID}, tierColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrTierNotFound
		}
		return nil, fmt.Errorf("failed to read rate tier: %w", err)
	}

	var data m_rate_tier.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse rate tier: %w", err)
	}

	return r.dataToDomain(&data)
}

// ListByRatePlans retrieves tiers for the given plans, priority ascending.
func (r *RateTierRepo) ListByRatePlans(ctx context.Context, ratePlanIDs []string) ([]*domain.RateTier, error) {
	if len(ratePlanIDs) == 0 {
		return nil, nil
	}

	stmt := query.From(m_rate_tier.TableName).
		Select(tierColumns()...).
		Where(query.In(m_rate_tier.RatePlanID, ratePlanIDs)).
		OrderBy(m_rate_tier.Priority, query.Asc).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	tiers := make([]*domain.RateTier, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list rate tiers: %w", err)
		}

		var data m_rate_tier.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse rate tier: %w", err)
		}

		tier, err := r.dataToDomain(&data)
		if err != nil {
			return nil, err
		}
		tiers = append(tiers, tier)
	}

	return tiers, nil
}

func tierColumns() []string {
	return []string{
		m_rate_tier.TierID,
		m_rate_tier.RatePlanID,
		m_rate_tier.MinNights,
		m_rate_tier.MaxNights,
		m_rate_tier.AdjustmentType,
		m_rate_tier.AdjustmentValueNumerator,
		m_rate_tier.AdjustmentValueDenominator,
		m_rate_tier.Priority,
		m_rate_tier.CreatedAt,
		m_rate_tier.UpdatedAt,
	}
}

// dataToDomain converts database Data to a domain RateTier.
func (r *RateTierRepo) dataToDomain(data *m_rate_tier.Data) (*domain.RateTier, error) {
	value, err := domain.NewMoney(data.AdjustmentValueNumerator, data.AdjustmentValueDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid adjustment value: %w", err)
	}

	adjustment, err := domain.NewAdjustment(domain.AdjustmentType(data.AdjustmentType), value)
	if err != nil {
		return nil, fmt.Errorf("invalid tier adjustment: %w", err)
	}

	var maxNights *int64
	if data.MaxNights.Valid {
		n := data.MaxNights.Int64
		maxNights = &n
	}

	return domain.ReconstructRateTier(
		data.TierID,
		data.RatePlanID,
		data.MinNights,
		maxNights,
		adjustment,
		data.Priority,
		data.CreatedAt,
		data.UpdatedAt,
	), nil
}

func nullInt64Ptr(n *int64) spanner.NullInt64 {
	if n == nil {
		return spanner.NullInt64{}
	}
	return spanner.NullInt64{Int64: *n, Valid: true}
}
