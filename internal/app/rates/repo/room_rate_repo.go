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
	"github.com/light-bringer/rategrid-service/internal/models/m_room_rate"
	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
	"github.com/light-bringer/rategrid-service/internal/pkg/query"
)

// RoomRateRepo implements RoomRateRepository for Spanner.
type RoomRateRepo struct {
	client *spanner.Client
	model  *m_room_rate.Model
	clock  clock.Clock
}

// NewRoomRateRepo creates a new RoomRateRepo.
func NewRoomRateRepo(client *spanner.Client, clk clock.Clock) contracts.RoomRateRepository {
	return &RoomRateRepo{
		client: client,
		model:  m_room_rate.NewModel(),
		clock:  clk,
	}
}

// UpsertMut creates an insert-or-update mutation for a room rate cell.
// The stored version is always Version()+1: fresh aggregates start at 0,
// reconstructed aggregates carry the loaded row version.
func (r *RoomRateRepo) UpsertMut(rate *domain.RoomRate) (*spanner.Mutation, error) {
	amount := rate.RateAmount().Normalize()
	if !amount.IsSafeForStorage() {
		return nil, fmt.Errorf("rate amount exceeds storage capacity: %w", domain.ErrMoneyOverflow)
	}

	data := &m_room_rate.Data{
		RatePlanID:            rate.RatePlanID(),
		RoomTypeID:            rate.RoomTypeID(),
		Date:                  rate.Date(),
		RateAmountNumerator:   amount.Numerator(),
		RateAmountDenominator: amount.Denominator(),
		AvailabilityCount:     rate.AvailabilityCount(),
		StopSell:              rate.StopSell(),
		ClosedForArrival:      rate.ClosedForArrival(),
		ClosedForDeparture:    rate.ClosedForDeparture(),
		Version:               rate.Version() + 1,
		CreatedAt:             rate.CreatedAt(),
	}

	return r.model.UpsertMut(data), nil
}

// Get retrieves one cell by its (rate plan, room type, date) key.
func (r *RoomRateRepo) Get(ctx context.Context, ratePlanID, roomTypeID string, date civil.Date) (*domain.RoomRate, error) {
	row, err := r.client.Single().ReadRow(ctx, m_room_rate.TableName, spanner.Key{ratePlanID, roomTypeID, date}, roomRateColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrRoomRateNotFound
		}
		return nil, fmt.Errorf("failed to read room rate: %w", err)
	}

	var data m_room_rate.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse room rate: %w", err)
	}

	return r.dataToDomain(&data)
}

// ListInRange retrieves all cells for the given plans and room types within
// [from, to] inclusive.
func (r *RoomRateRepo) ListInRange(ctx context.Context, ratePlanIDs, roomTypeIDs []string, from, to civil.Date) ([]*domain.RoomRate, error) {
	stmt := query.From(m_room_rate.TableName).
		Select(roomRateColumns()...).
		Where(query.In(m_room_rate.RatePlanID, ratePlanIDs)).
		Where(query.In(m_room_rate.RoomTypeID, roomTypeIDs)).
		Where(query.Gte(m_room_rate.Date, from)).
		Where(query.Lte(m_room_rate.Date, to)).
		OrderBy(m_room_rate.Date, query.Asc).
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	rates := make([]*domain.RoomRate, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list room rates: %w", err)
		}

		var data m_room_rate.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse room rate: %w", err)
		}

		rate, err := r.dataToDomain(&data)
		if err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}

	return rates, nil
}

func roomRateColumns() []string {
	return []string{
		m_room_rate.RatePlanID,
		m_room_rate.RoomTypeID,
		m_room_rate.Date,
		m_room_rate.RateAmountNumerator,
		m_room_rate.RateAmountDenominator,
		m_room_rate.AvailabilityCount,
		m_room_rate.StopSell,
		m_room_rate.ClosedForArrival,
		m_room_rate.ClosedForDeparture,
		m_room_rate.Version,
		m_room_rate.CreatedAt,
		m_room_rate.UpdatedAt,
	}
}

// dataToDomain converts database Data to a domain RoomRate.
func (r *RoomRateRepo) dataToDomain(data *m_room_rate.Data) (*domain.RoomRate, error) {
	amount, err := domain.NewMoney(data.RateAmountNumerator, data.RateAmountDenominator)
	if err != nil {
		return nil, fmt.Errorf("invalid rate amount: %w", err)
	}

	return domain.ReconstructRoomRate(
		data.RatePlanID,
		data.RoomTypeID,
		data.Date,
		amount,
		data.AvailabilityCount,
		data.StopSell,
		data.ClosedForArrival,
		data.ClosedForDeparture,
		data.Version,
		data.CreatedAt,
		data.UpdatedAt,
		r.clock,
	), nil
}
