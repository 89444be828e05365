// Package results wires the results module: import pipeline, placement
// engine, message router, and job queue.
package results

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"

	racedb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/race/infrastructure/repositories"
	registrationdb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/registration/infrastructure/repositories"
	resultsservice "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/application"
	"github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/application/parsers"
	resultmetrics "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/infrastructure/metrics"
	resultqueue "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/infrastructure/queue"
	resultdb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/infrastructure/repositories"
	resultrouter "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/infrastructure/router"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/eventbus"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/utils"
	"github.com/erik-onofrej/runportal-2026-sub000/config"
)

// Module represents the results module.
type Module struct {
	EventBus      eventbus.EventBus
	ResultService resultsservice.Service
	QueueService  resultqueue.QueueService
	ResultRouter  *resultrouter.ResultRouter
	logger        *slog.Logger
	config        *config.Config
	cancelFunc    context.CancelFunc
}

// NewResultsModule creates and wires the results module.
func NewResultsModule(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	bunDB *bun.DB,
	resultDB resultdb.ResultDB,
	registrationDB registrationdb.RegistrationDB,
	raceDB racedb.RaceDB,
	eventBus eventbus.EventBus,
	router *message.Router,
	helpers utils.Helpers,
	registry *prometheus.Registry,
) (*Module, error) {
	metrics := resultmetrics.NewResultMetrics(registry)

	resultService := resultsservice.NewResultService(
		resultDB,
		registrationDB,
		raceDB,
		parsers.NewFactory(),
		logger,
		metrics,
	)

	queueService, err := resultqueue.NewService(
		ctx,
		bunDB,
		logger,
		cfg.Postgres.DSN,
		metrics.Queue(),
		resultService,
		eventBus,
		helpers,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create queue service: %w", err)
	}

	resultRouter := resultrouter.NewResultRouter(logger, router, eventBus, eventBus, helpers, registry)
	if err := resultRouter.Configure(ctx, resultService, queueService, metrics); err != nil {
		return nil, fmt.Errorf("failed to configure results router: %w", err)
	}

	return &Module{
		EventBus:      eventBus,
		ResultService: resultService,
		QueueService:  queueService,
		ResultRouter:  resultRouter,
		logger:        logger,
		config:        cfg,
	}, nil
}

// Run starts the queue and blocks until the context is canceled.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	m.logger.Info("Starting results module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if err := m.QueueService.Start(ctx); err != nil {
		m.logger.Error("Failed to start queue service", "error", err)
		return
	}

	<-ctx.Done()
	m.logger.Info("Results module goroutine stopped")
}

// Close stops the module's background work.
func (m *Module) Close() error {
	m.logger.Info("Stopping results module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if err := m.QueueService.Stop(context.Background()); err != nil {
		m.logger.Error("Failed to stop queue service", "error", err)
	}

	m.logger.Info("Results module stopped")
	return nil
}
