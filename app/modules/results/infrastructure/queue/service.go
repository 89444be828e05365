package resultqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"

	resultsservice "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/application"
	resultevents "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/domain/events"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/attr"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/eventbus"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/utils"
)

// ImportQueue is the river queue name for import jobs. It runs a single
// worker so concurrent uploads for the same race serialize instead of racing
// the existence checks.
const ImportQueue = "result_import"

// Metrics is the telemetry contract for queue operations.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

// QueueService is the job scheduling contract for the results module.
type QueueService interface {
	// EnqueueImport schedules a timing file import. Identical payloads are
	// deduplicated while a matching job is still pending.
	EnqueueImport(ctx context.Context, payload resultevents.ResultImportRequestedPayload) error
	// HealthCheck verifies the queue service can reach its backing table.
	HealthCheck(ctx context.Context) error
	// Start starts job processing.
	Start(ctx context.Context) error
	// Stop drains and stops job processing.
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service handles import job scheduling for the results module using River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	db      *bun.DB
	metrics Metrics
}

// NewService creates a River-backed queue service and registers the import
// worker. River requires its own pgx pool; it cannot share bun's database/sql
// connection.
func NewService(
	ctx context.Context,
	bunDB *bun.DB,
	logger *slog.Logger,
	dsn string,
	metrics Metrics,
	resultService resultsservice.Service,
	eventBus eventbus.EventBus,
	helpers utils.Helpers,
) (*Service, error) {
	ctxLogger := logger.With(attr.String("component", "river_queue"))

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", "river")

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewImportWorker(ctxLogger, resultService, eventBus, helpers))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: 10},
			ImportQueue:        {MaxWorkers: 1},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", "river")
	metrics.RecordOperationDuration(ctx, "initialize_service", "river", time.Since(start))

	ctxLogger.Info("Result queue service initialized")
	return &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		db:      bunDB,
		metrics: metrics,
	}, nil
}

// Start starts the River client.
func (s *Service) Start(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "start_service", "river")
	if err := s.client.Start(ctx); err != nil {
		s.metrics.RecordOperationFailure(ctx, "start_service", "river")
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.metrics.RecordOperationSuccess(ctx, "start_service", "river")
	s.logger.Info("Result queue service started")
	return nil
}

// Stop stops the River client and closes its pool.
func (s *Service) Stop(ctx context.Context) error {
	s.metrics.RecordOperationAttempt(ctx, "stop_service", "river")
	if err := s.client.Stop(ctx); err != nil {
		s.metrics.RecordOperationFailure(ctx, "stop_service", "river")
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.pool.Close()
	s.metrics.RecordOperationSuccess(ctx, "stop_service", "river")
	s.logger.Info("Result queue service stopped")
	return nil
}

// EnqueueImport schedules an import job on the serialized import queue.
func (s *Service) EnqueueImport(ctx context.Context, payload resultevents.ResultImportRequestedPayload) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "enqueue_import", "river")

	job := ImportJob{
		RaceID:      payload.RaceID.String(),
		FileName:    payload.FileName,
		FileData:    payload.FileData,
		RequestedBy: payload.RequestedBy,
	}

	jobResult, err := s.client.Insert(ctx, job, &river.InsertOpts{
		Queue: ImportQueue,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true, // duplicate uploads collapse into one pending job
		},
	})
	if err != nil {
		s.metrics.RecordOperationFailure(ctx, "enqueue_import", "river")
		return fmt.Errorf("failed to enqueue import job: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "enqueue_import", "river")
	s.metrics.RecordOperationDuration(ctx, "enqueue_import", "river", time.Since(start))

	s.logger.InfoContext(ctx, "import job enqueued",
		attr.RaceID("race_id", payload.RaceID),
		attr.String("file_name", payload.FileName),
		attr.Int64("job_id", jobResult.Job.ID),
		attr.Bool("duplicate", jobResult.UniqueSkippedAsDuplicate),
	)
	return nil
}

// HealthCheck verifies the queue's backing table is reachable.
func (s *Service) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("river client is nil")
	}

	var count int
	err := s.db.NewSelect().
		Table("river_job").
		ColumnExpr("COUNT(*)").
		Scan(ctx, &count)
	if err != nil {
		return fmt.Errorf("queue health check failed: %w", err)
	}
	return nil
}
