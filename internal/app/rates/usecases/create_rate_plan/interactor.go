package create_rate_plan

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

// Request contains the data needed to create a rate plan.
type Request struct {
	HotelID       string
	Code          string
	Name          string
	PlanType      string
	Category      string
	Class         string
	ValidFrom     civil.Date
	ValidTo       *civil.Date
	IsDefault     bool
	IsPackage     bool
	NonRefundable bool
	Actor         audit.Actor
}

// Interactor handles the create rate plan use case.
type Interactor struct {
	planRepo   contracts.RatePlanRepository
	auditRepo  contracts.AuditRepository
	outboxRepo contracts.OutboxRepository
	recorder   *audit.Recorder
	applier    committer.Applier
	clock      clock.Clock
}

// NewInteractor creates a new create rate plan interactor.
func NewInteractor(
	planRepo contracts.RatePlanRepository,
	auditRepo contracts.AuditRepository,
	outboxRepo contracts.OutboxRepository,
	recorder *audit.Recorder,
	applier committer.Applier,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		planRepo:   planRepo,
		auditRepo:  auditRepo,
		outboxRepo: outboxRepo,
		recorder:   recorder,
		applier:    applier,
		clock:      clk,
	}
}

// Execute creates the plan and returns its generated ID.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	exists, err := i.planRepo.CodeExists(ctx, req.HotelID, req.Code)
	if err != nil {
		return "", err
	}
	if exists {
		return "", domain.ErrDuplicatePlanCode
	}

	plan, err := domain.NewRatePlan(
		uuid.New().String(),
		req.HotelID, req.Code, req.Name, req.PlanType, req.Category, req.Class,
		req.ValidFrom, req.ValidTo,
		req.IsDefault, req.IsPackage, req.NonRefundable,
		i.clock.Now(), i.clock,
	)
	if err != nil {
		return "", err
	}
	defer plan.ClearEvents()

	record := i.recorder.Record(audit.ActionCreate, plan.ID(), nil, audit.RatePlanSnapshot(plan), req.Actor)

	commitPlan := committer.NewPlan()

	planMut, err := i.planRepo.InsertMut(plan)
	if err != nil {
		return "", err
	}
	commitPlan.Add(planMut)

	auditMut, err := i.auditRepo.InsertMut(record)
	if err != nil {
		return "", err
	}
	commitPlan.Add(auditMut)

	for _, event := range plan.DomainEvents() {
		payload, err := json.Marshal(event)
		if err != nil {
			return "", fmt.Errorf("failed to serialize event: %w", err)
		}
		commitPlan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, string(payload))))
	}

	if err := i.applier.Apply(ctx, commitPlan); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return plan.ID(), nil
}
