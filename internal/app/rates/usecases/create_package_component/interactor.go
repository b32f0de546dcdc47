package create_package_component

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

// Request contains the data needed to attach a component to a package plan.
type Request struct {
	RatePlanID    string
	Name          string
	ComponentType domain.ComponentType
	Included      bool
	Quantity      int64
	PricingMode   domain.PricingMode

	UnitPrice   *domain.Money
	AdultPrice  *domain.Money
	ChildPrice  *domain.Money
	InfantPrice *domain.Money

	Actor audit.Actor
}

// Interactor handles the create package component use case.
type Interactor struct {
	planRepo      contracts.RatePlanRepository
	componentRepo contracts.PackageComponentRepository
	auditRepo     contracts.AuditRepository
	recorder      *audit.Recorder
	applier       committer.Applier
	clock         clock.Clock
}

// NewInteractor creates a new create package component interactor.
func NewInteractor(
	planRepo contracts.RatePlanRepository,
	componentRepo contracts.PackageComponentRepository,
	auditRepo contracts.AuditRepository,
	recorder *audit.Recorder,
	applier committer.Applier,
	clk clock.Clock,
) *Interactor {
	return &Interactor{
		planRepo:      planRepo,
		componentRepo: componentRepo,
		auditRepo:     auditRepo,
		recorder:      recorder,
		applier:       applier,
		clock:         clk,
	}
}

// Execute creates the component and returns its generated ID.
func (i *Interactor) Execute(ctx context.Context, req *Request) (string, error) {
	plan, err := i.planRepo.GetByID(ctx, req.RatePlanID)
	if err != nil {
		return "", err
	}
	if plan.Status() == domain.PlanStatusRetired {
		return "", domain.ErrPlanRetired
	}
	if !plan.IsPackage() {
		return "", domain.ErrNotPackagePlan
	}

	component, err := domain.NewRatePackageComponent(
		uuid.New().String(),
		req.RatePlanID, req.Name,
		req.ComponentType, req.Included, req.Quantity, req.PricingMode,
		req.UnitPrice, req.AdultPrice, req.ChildPrice, req.InfantPrice,
		i.clock.Now(),
	)
	if err != nil {
		return "", err
	}

	record := i.recorder.Record(audit.ActionCreate, component.ID(), nil, audit.PackageComponentSnapshot(component), req.Actor)

	commitPlan := committer.NewPlan()

	componentMut, err := i.componentRepo.InsertMut(component)
	if err != nil {
		return "", err
	}
	commitPlan.Add(componentMut)

	auditMut, err := i.auditRepo.InsertMut(record)
	if err != nil {
		return "", err
	}
	commitPlan.Add(auditMut)

	if err := i.applier.Apply(ctx, commitPlan); err != nil {
		return "", fmt.Errorf("failed to commit transaction: %w", err)
	}
	return component.ID(), nil
}
