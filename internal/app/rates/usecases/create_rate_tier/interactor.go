package create_rate_tier

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
	"github.com/light-bringer/rategrid-service/internal/pkg/committer"
)

// Request contains the data needed to create a length-of-stay tier.
// MaxNights nil means the tier is open-ended.
type Request struct {
	RatePlanID string
	MinNights  int64
	MaxNights  *int64

	AdjustmentType  domain.AdjustmentType
	AdjustmentValue *domain.Money
	Priority        int64

	Actor audit.Actor
}

// Interactor handles the create rate tier use case.
type Interactor struct {
	planRepo  contracts.RatePlanRepository
	tierRepo  contracts.RateTierRepository
	auditRepo contracts.AuditRepository
	recorder  *audit.Recorder
	applier   committer.Applier
	clock     clock.Clock
}

// NewInteractor creates a new create rate tier interactor.
func NewInteractor(
	planRepo contracts.RatePlanRepository,
	tierRepo contracts.RateTierRepository,
	auditRepo contracts.AuditRepository,
	recorder *audit.Recorder,
	applier committer.Applier,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		planRepo:  planRepo,
		tierRepo:  tierRepo,
		auditRepo: auditRepo,
		recorder:  recorder,
		applier:   applier,
		clock:     clk,
	}
}

// Execute creates the tier and returns its generated ID.
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

	tier, err := domain.NewRateTier(
		uuid.New().String(),
		req.RatePlanID,
		req.MinNights, req.MaxNights,
		adjustment, req.Priority,
		i.clock.Now(),
	)
	if err != nil {
		return "", err
	}

	record := i.recorder.Record(audit.ActionCreate, tier.ID(), nil, audit.RateTierSnapshot(tier), req.Actor)

	commitPlan := committer.NewPlan()

	tierMut, err := i.tierRepo.InsertMut(tier)
	if err != nil {
		return "", err
	}
	commitPlan.Add(tierMut)

	auditMut, err := i.auditRepo.InsertMut(record)
	if err != nil {
		return "", err
	}
	commitPlan.Add(auditMut)

	if err := i.applier.Apply(ctx, commitPlan); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return tier.ID(), nil
}
