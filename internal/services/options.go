package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"go.uber.org/zap"

	"github.com/light-bringer/rategrid-service/internal/app/rates/audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/matrix"
	"github.com/light-bringer/rategrid-service/internal/app/rates/queries/build_matrix"
	"github.com/light-bringer/rategrid-service/internal/app/rates/queries/get_audit_record"
	"github.com/light-bringer/rategrid-service/internal/app/rates/queries/list_audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/queries/list_events"
	"github.com/light-bringer/rategrid-service/internal/app/rates/queries/summarize_audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/repo"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/bulk_apply"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/create_override"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/create_package_component"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/create_pricing_rule"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/create_rate_plan"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/create_rate_tier"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/rollback_audit"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/update_rate_plan"
	"github.com/light-bringer/rategrid-service/internal/app/rates/usecases/upsert_room_rate"
	"github.com/light-bringer/rategrid-service/internal/pkg/clock"
	"github.com/light-bringer/rategrid-service/internal/pkg/committer"
	httptransport "github.com/light-bringer/rategrid-service/internal/transport/http"
)

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	Router        *httptransport.Router
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, spannerDB string, logger *zap.Logger, matrixWorkers int) (*ServiceOptions, error) {
	// 1. Initialize Spanner client
	spannerClient, err := spanner.NewClient(ctx, spannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	// 2. Create infrastructure components
	clk := clock.NewRealClock()
	comm := committer.NewCommitter(spannerClient)
	recorder := audit.NewRecorder(clk)

	// 3. Create repositories
	planRepo := repo.NewRatePlanRepo(spannerClient, clk)
	rateRepo := repo.NewRoomRateRepo(spannerClient, clk)
	tierRepo := repo.NewRateTierRepo(spannerClient)
	overrideRepo := repo.NewRateOverrideRepo(spannerClient)
	ruleRepo := repo.NewPricingRuleRepo(spannerClient)
	componentRepo := repo.NewPackageComponentRepo(spannerClient)
	auditRepo := repo.NewAuditRepo(spannerClient)
	outboxRepo := repo.NewOutboxRepo(spannerClient)
	gridSource := repo.NewGridSource(planRepo, rateRepo, tierRepo, overrideRepo, ruleRepo, componentRepo)

	// 4. Create command use cases (write operations)
	createPlanUseCase := create_rate_plan.NewInteractor(planRepo, auditRepo, outboxRepo, recorder, comm, clk)
	updatePlanUseCase := update_rate_plan.NewInteractor(planRepo, auditRepo, outboxRepo, recorder, comm, clk)
	upsertRateUseCase := upsert_room_rate.NewInteractor(rateRepo, planRepo, auditRepo, outboxRepo, recorder, comm, clk)
	bulkApplyUseCase := bulk_apply.NewInteractor(rateRepo, auditRepo, outboxRepo, recorder, comm, clk, logger)
	createOverrideUseCase := create_override.NewInteractor(planRepo, overrideRepo, auditRepo, outboxRepo, recorder, comm, clk)
	createTierUseCase := create_rate_tier.NewInteractor(planRepo, tierRepo, auditRepo, recorder, comm, clk)
	createRuleUseCase := create_pricing_rule.NewInteractor(ruleRepo, auditRepo, outboxRepo, recorder, comm, clk)
	createComponentUseCase := create_package_component.NewInteractor(planRepo, componentRepo, auditRepo, recorder, comm, clk)
	rollbackUseCase := rollback_audit.NewInteractor(auditRepo, rateRepo, outboxRepo, recorder, comm, clk)

	// 5. Create query use cases (read operations)
	matrixBuilder := matrix.NewBuilder(gridSource, logger, matrixWorkers)
	buildMatrixQuery := build_matrix.NewQuery(matrixBuilder)
	listAuditQuery := list_audit.NewQuery(auditRepo)
	getAuditQuery := get_audit_record.NewQuery(auditRepo)
	summarizeAuditQuery := summarize_audit.NewQuery(auditRepo)
	listEventsQuery := list_events.NewQuery(outboxRepo)

	// 6. Create HTTP handlers
	router := &httptransport.Router{
		Matrix: httptransport.NewMatrixHandler(buildMatrixQuery),
		Rates:  httptransport.NewRatesHandler(upsertRateUseCase, bulkApplyUseCase),
		Plans: httptransport.NewPlansHandler(
			createPlanUseCase,
			updatePlanUseCase,
			createOverrideUseCase,
			createTierUseCase,
			createRuleUseCase,
			createComponentUseCase,
		),
		Audit:  httptransport.NewAuditHandler(listAuditQuery, getAuditQuery, summarizeAuditQuery, rollbackUseCase, clk),
		Events: httptransport.NewEventsHandler(listEventsQuery),
	}

	return &ServiceOptions{
		SpannerClient: spannerClient,
		Router:        router,
	}, nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
