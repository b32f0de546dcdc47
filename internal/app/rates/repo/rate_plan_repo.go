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
	"github.com/light-bringer/rategrid-service/internal/models/m_rate_plan"
	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
	"github.com/light-bringer/rategrid-service/internal/pkg/query"
)

// RatePlanRepo implements RatePlanRepository for Spanner.
type RatePlanRepo struct {
	client *spanner.Client
	model  *m_rate_plan.Model
	clock  clock.Clock
}

// NewRatePlanRepo creates a new RatePlanRepo.
func NewRatePlanRepo(client *spanner.Client, clk clock.Clock) contracts.RatePlanRepository {
	return &RatePlanRepo{
		client: client,
		model:  m_rate_plan.NewModel(),
		clock:  clk,
	}
}

// InsertMut creates a mutation for inserting a new rate plan.
func (r *RatePlanRepo) InsertMut(plan *domain.RatePlan) (*spanner.Mutation, error) {
	return r.model.InsertMut(r.domainToData(plan)), nil
}

// UpdateMut creates a mutation for updating a rate plan (only dirty fields).
func (r *RatePlanRepo) UpdateMut(plan *domain.RatePlan) (*spanner.Mutation, error) {
	changes := plan.Changes()
	if !changes.HasChanges() {
		return nil, nil
	}

	updates := make(map[string]interface{})

	if changes.Dirty(domain.FieldPlanName) {
		updates[m_rate_plan.Name] = plan.Name()
	}
	if changes.Dirty(domain.FieldPlanType) {
		updates[m_rate_plan.PlanType] = plan.PlanType()
	}
	if changes.Dirty(domain.FieldPlanCategory) {
		updates[m_rate_plan.Category] = plan.Category()
	}
	if changes.Dirty(domain.FieldPlanClass) {
		updates[m_rate_plan.Class] = plan.Class()
	}
	if changes.Dirty(domain.FieldValidFrom) {
		updates[m_rate_plan.ValidFrom] = plan.ValidFrom()
	}
	if changes.Dirty(domain.FieldValidTo) {
		updates[m_rate_plan.ValidTo] = nullDatePtr(plan.ValidTo())
	}
	if changes.Dirty(domain.FieldIsDefault) {
		updates[m_rate_plan.IsDefault] = plan.IsDefault()
	}
	if changes.Dirty(domain.FieldIsPackage) {
		updates[m_rate_plan.IsPackage] = plan.IsPackage()
	}
	if changes.Dirty(domain.FieldNonRefundable) {
		updates[m_rate_plan.NonRefundable] = plan.NonRefundable()
	}
	if changes.Dirty(domain.FieldPlanStatus) {
		updates[m_rate_plan.Status] = string(plan.Status())
	}

	if len(updates) == 0 {
		return nil, nil
	}

	return r.model.UpdateMut(plan.ID(), updates), nil
}

// GetByID retrieves a rate plan by ID, reconstructing the domain aggregate.
func (r *RatePlanRepo) GetByID(ctx context.Context, ratePlanID string) (*domain.RatePlan, error) {
	row, err := r.client.Single().ReadRow(ctx, m_rate_plan.TableName, spanner.Key{ratePlanID}, planColumns())
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrRatePlanNotFound
		}
		return nil, fmt.Errorf("failed to read rate plan: %w", err)
	}

	var data m_rate_plan.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse rate plan: %w", err)
	}

	return r.dataToDomain(&data), nil
}

// ListByHotel retrieves all rate plans for a hotel, optionally restricted to ids.
func (r *RatePlanRepo) ListByHotel(ctx context.Context, hotelID string, ids []string) ([]*domain.RatePlan, error) {
	builder := query.From(m_rate_plan.TableName).
		Select(planColumns()...).
		Where(query.Eq(m_rate_plan.HotelID, hotelID)).
		OrderBy(m_rate_plan.Code, query.Asc)
	if len(ids) > 0 {
		builder = builder.Where(query.In(m_rate_plan.RatePlanID, ids))
	}

	iter := r.client.Single().Query(ctx, builder.Build())
	defer iter.Stop()

	plans := make([]*domain.RatePlan, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list rate plans: %w", err)
		}

		var data m_rate_plan.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse rate plan: %w", err)
		}
		plans = append(plans, r.dataToDomain(&data))
	}

	return plans, nil
}

// CodeExists checks if a plan code is already in use for a hotel.
func (r *RatePlanRepo) CodeExists(ctx context.Context, hotelID, code string) (bool, error) {
	stmt := query.From(m_rate_plan.TableName).
		Where(query.Eq(m_rate_plan.HotelID, hotelID)).
		Where(query.Eq(m_rate_plan.Code, code)).
		Count().
		Build()

	iter := r.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return false, fmt.Errorf("failed to check plan code: %w", err)
	}

	var count int64
	if err := row.Column(0, &count); err != nil {
		return false, fmt.Errorf("failed to parse plan code count: %w", err)
	}
	return count > 0, nil
}

func planColumns() []string {
	return []string{
		m_rate_plan.RatePlanID,
		m_rate_plan.HotelID,
		m_rate_plan.Code,
		m_rate_plan.Name,
		m_rate_plan.PlanType,
		m_rate_plan.Category,
		m_rate_plan.Class,
		m_rate_plan.ValidFrom,
		m_rate_plan.ValidTo,
		m_rate_plan.IsDefault,
		m_rate_plan.IsPackage,
		m_rate_plan.NonRefundable,
		m_rate_plan.Status,
		m_rate_plan.CreatedAt,
		m_rate_plan.UpdatedAt,
	}
}

// domainToData converts a domain RatePlan to database Data.
func (r *RatePlanRepo) domainToData(plan *domain.RatePlan) *m_rate_plan.Data {
	return &m_rate_plan.Data{
		RatePlanID:    plan.ID(),
		HotelID:       plan.HotelID(),
		Code:          plan.Code(),
		Name:          plan.Name(),
		PlanType:      plan.PlanType(),
		Category:      plan.Category(),
		Class:         plan.Class(),
		ValidFrom:     plan.ValidFrom(),
		ValidTo:       nullDatePtr(plan.ValidTo()),
		IsDefault:     plan.IsDefault(),
		IsPackage:     plan.IsPackage(),
		NonRefundable: plan.NonRefundable(),
		Status:        string(plan.Status()),
		CreatedAt:     plan.CreatedAt(),
		UpdatedAt:     plan.UpdatedAt(),
	}
}

// dataToDomain converts database Data to a domain RatePlan.
func (r *RatePlanRepo) dataToDomain(data *m_rate_plan.Data) *domain.RatePlan {
	var validTo *civil.Date
	if data.ValidTo.Valid {
		d := data.ValidTo.Date
		validTo = &d
	}

	return domain.ReconstructRatePlan(
		data.RatePlanID,
		data.HotelID,
		data.Code,
		data.Name,
		data.PlanType,
		data.Category,
		data.Class,
		data.ValidFrom,
		validTo,
		data.IsDefault,
		data.IsPackage,
		data.NonRefundable,
		domain.PlanStatus(data.Status),
		data.CreatedAt,
		data.UpdatedAt,
		r.clock,
	)
}

func nullDatePtr(d *civil.Date) spanner.NullDate {
	if d == nil {
		return spanner.NullDate{}
	}
	return spanner.NullDate{Date: *d, Valid: true}
}
