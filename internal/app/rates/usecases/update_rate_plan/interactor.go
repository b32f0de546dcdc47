package update_rate_plan

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/civil"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/contracts"
	"github.com/light-bringer/rategrid-service/internal/app/rates/domain"
	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
	"github.com/light-bringer/rategrid-service/internal/pkg/committer"
)

// Request contains the data for updating a rate plan. Nil fields are left
// unchanged. Status moves the plan through its lifecycle; retiring is
// terminal.
type Request struct {
	RatePlanID string

	Name      *string
	ValidFrom *civil.Date
	ValidTo   *civil.Date
	Status    *domain.PlanStatus

	Actor audit.Actor
}

// Interactor handles the update rate plan use case.
type Interactor struct {
	planRepo   contracts.RatePlanRepository
	auditRepo  contracts.AuditRepository
	outboxRepo contracts.OutboxRepository
	recorder   *audit.Recorder
	applier    committer.Applier
	clock      clock.Clock
}

// NewInteractor creates a new update rate plan interactor.
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

// Execute applies the changes following the Golden Mutation Pattern.
func (i *Interactor) Execute(ctx context.Context, req *Request) error {
	plan, err := i.planRepo.GetByID(ctx, req.RatePlanID)
	if err != nil {
		return err
	}
	defer plan.ClearEvents()

	prev := audit.RatePlanSnapshot(plan)

	if req.Name != nil {
		if err := plan.SetName(*req.Name); err != nil {
			return err
		}
	}
	if req.ValidFrom != nil || req.ValidTo != nil {
		validFrom := plan.ValidFrom()
		if req.ValidFrom != nil {
			validFrom = *req.ValidFrom
		}
		validTo := plan.ValidTo()
		if req.ValidTo != nil {
			validTo = req.ValidTo
		}
		if err := plan.SetValidity(validFrom, validTo); err != nil {
			return err
		}
	}
	if req.Status != nil {
		if err := i.applyStatus(plan, *req.Status); err != nil {
			return err
		}
	}

	if !plan.Changes().HasChanges() {
		return nil
	}

	record := i.recorder.Record(audit.ActionUpdate, plan.ID(), prev, audit.RatePlanSnapshot(plan), req.Actor)

	commitPlan := committer.NewPlan()

	planMut, err := i.planRepo.UpdateMut(plan)
	if err != nil {
		return err
	}
	commitPlan.Add(planMut)

	auditMut, err := i.auditRepo.InsertMut(record)
	if err != nil {
		return err
	}
	commitPlan.Add(auditMut)

	for _, event := range plan.DomainEvents() {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to serialize event: %w", err)
		}
		commitPlan.Add(i.outboxRepo.InsertMut(i.outboxRepo.EnrichEvent(event, string(payload))))
	}

	if err := i.applier.Apply(ctx, commitPlan); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (i *Interactor) applyStatus(plan *domain.RatePlan, status domain.PlanStatus) error {
	now := i.clock.Now()
	switch status {
	case domain.PlanStatusActive:
		return plan.Activate(now)
	case domain.PlanStatusInactive:
		return plan.Deactivate(now)
	case domain.PlanStatusRetired:
		return plan.Retire(now)
	default:
		return fmt.Errorf("unknown plan status: %s", status)
	}
}
