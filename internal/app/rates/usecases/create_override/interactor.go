package create_override

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/google/uuid"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
	"github.com/light-bringer/rategrid-service/internal/pkg/committer"
)

// Request contains the data needed to create a date override.
// RoomTypeID nil means the override covers every room type on the plan.
type Request struct {
	RatePlanID string
	RoomTypeID *string
	Date       civil.Date

	AdjustmentType  domain.AdjustmentType
	AdjustmentValue *domain.Money
	Reason          string

	StopSell           bool
	ClosedForArrival   bool
	ClosedForDeparture bool

	Actor audit.Actor
}

// Interactor handles the create override use case.
type Interactor struct {
	planRepo     contracts.RatePlanRepository
	overrideRepo contracts.RateOverrideRepository
	auditRepo    contracts.AuditRepository
	outboxRepo   contracts.OutboxRepository
	recorder     *audit.Recorder
	applier      committer.Applier
	clock        clock.Clock
}

// NewInteractor creates a new create override interactor.
func NewInteractor(
	planRepo contracts.RatePlanRepository,
	overrideRepo contracts.RateOverrideRepository,
	auditRepo contracts.AuditRepository,
	outboxRepo contracts.OutboxRepository,
	recorder *audit.Recorder,
	applier committer.Applier,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		planRepo:     planRepo,
		overrideRepo: overrideRepo,
		auditRepo:    auditRepo,
		outboxRepo:   outboxRepo,
		recorder:     recorder,
		applier:      applier,
		clock:        clk,
	}
}

// Execute creates the override and returns its generated ID.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	plan, err := i.planRepo.GetByID(ctx, req.RatePlanID)
	if err != nil {
		return "", err
	}
	if plan.Status() == domain.PlanStatusRetired {
		return "", domain.ErrPlanRetired
	}

	adjustment, err := domain.NewAdjustment(req.AdjustmentType, req.AdjustmentValue)
	if err != nil {
		return "", err
	}

	now := i.clock.Now()
	override, err := domain.NewRateOverride(
		uuid.New().String(),
		req.RatePlanID, req.RoomTypeID, req.Date,
		adjustment, req.Reason, now,
	)
	if err != nil {
		return "", err
	}
	override.SetAvailabilityFlags(req.StopSell, req.ClosedForArrival, req.ClosedForDeparture)

	record := i.recorder.Record(audit.ActionCreate, override.ID(), nil, audit.RateOverrideSnapshot(override), req.Actor)

	event := &domain.RateOverrideCreatedEvent{
		OverrideID: override.ID(),
		RatePlanID: override.RatePlanID(),
		RoomTypeID: override.RoomTypeID(),
		Date:       override.Date(),
		Reason:     override.Reason(),
		CreatedAt:  now,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return "", fmt.Errorf("failed to serialize event: %w", err)
	}

	commitPlan := committer.NewPlan()

	overrideMut, err := i.overrideRepo.InsertMut(override)
	if err != nil {
		return "", err
	}
	commitPlan.Add(overrideMut)

	auditMut, err := i.auditRepo.InsertMut(record)
	if err != nil {
		return "", err
	}
	commitPlan.Add(auditMut)
	commitPlan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, string(payload))))

	if err := i.applier.Apply(ctx, commitPlan); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return override.ID(), nil
}
