package resultsservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	racedb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/race/infrastructure/repositories"
	registrationdb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/registration/infrastructure/repositories"
	"github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/application/parsers"
	resultdb "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/infrastructure/repositories"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/attr"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/results"
	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// Metrics records operational telemetry for the result import pipeline.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operationName string, raceID sharedtypes.RaceID)
	RecordOperationSuccess(ctx context.Context, operationName string, raceID sharedtypes.RaceID)
	RecordOperationFailure(ctx context.Context, operationName string, raceID sharedtypes.RaceID)
	RecordOperationDuration(ctx context.Context, operationName string, duration time.Duration, raceID sharedtypes.RaceID)
	RecordRowsImported(ctx context.Context, raceID sharedtypes.RaceID, imported, skipped, failed int)
	RecordRowsRejected(ctx context.Context, raceID sharedtypes.RaceID, rejected int)
}

// NoOpMetrics discards all telemetry. Used in tests and when metrics are
// disabled by configuration.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, sharedtypes.RaceID) {}
func (NoOpMetrics) RecordOperationSuccess(context.Context, string, sharedtypes.RaceID) {}
func (NoOpMetrics) RecordOperationFailure(context.Context, string, sharedtypes.RaceID) {}
func (NoOpMetrics) RecordOperationDuration(context.Context, string, time.Duration, sharedtypes.RaceID) {
}
func (NoOpMetrics) RecordRowsImported(context.Context, sharedtypes.RaceID, int, int, int) {}
func (NoOpMetrics) RecordRowsRejected(context.Context, sharedtypes.RaceID, int)           {}

// ResultService implements the result import and placement operations.
type ResultService struct {
	resultDB       resultdb.ResultDB
	registrationDB registrationdb.RegistrationDB
	raceDB         racedb.RaceDB
	parserFactory  parsers.ParserFactory
	logger         *slog.Logger
	metrics        Metrics
}

// NewResultService creates a new ResultService.
func NewResultService(
	resultDB resultdb.ResultDB,
	registrationDB registrationdb.RegistrationDB,
	raceDB racedb.RaceDB,
	parserFactory parsers.ParserFactory,
	logger *slog.Logger,
	metrics Metrics,
) Service {
	return &ResultService{
		resultDB:       resultDB,
		registrationDB: registrationDB,
		raceDB:         raceDB,
		parserFactory:  parserFactory,
		logger:         logger,
		metrics:        metrics,
	}
}

// withTelemetry wraps a service operation with logging, metrics, and panic
// recovery so the individual operations stay focused on domain logic.
func withTelemetry[S any, F any](
	s *ResultService,
	ctx context.Context,
	operationName string,
	raceID sharedtypes.RaceID,
	op func(ctx context.Context) (results.OperationResult[S, F], error),
) (result results.OperationResult[S, F], err error) {
	if op == nil {
		return result, fmt.Errorf("%s called with nil operation", operationName)
	}

	s.metrics.RecordOperationAttempt(ctx, operationName, raceID)
	s.logger.InfoContext(ctx, "operation started",
		attr.String("operation", operationName),
		attr.RaceID("race_id", raceID),
	)

	start := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, time.Since(start), raceID)

		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "operation panicked",
				attr.String("operation", operationName),
				attr.RaceID("race_id", raceID),
				attr.Any("panic", r),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, raceID)
		}
	}()

	result, err = op(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "operation failed",
			attr.String("operation", operationName),
			attr.RaceID("race_id", raceID),
			attr.Error(err),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, raceID)
		return result, fmt.Errorf("%s failed: %w", operationName, err)
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "operation rejected input",
			attr.String("operation", operationName),
			attr.RaceID("race_id", raceID),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, raceID)
		return result, nil
	}

	s.logger.InfoContext(ctx, "operation completed",
		attr.String("operation", operationName),
		attr.RaceID("race_id", raceID),
	)
	s.metrics.RecordOperationSuccess(ctx, operationName, raceID)
	return result, nil
}
