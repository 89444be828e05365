// Package resultmetrics provides the prometheus implementation of the
// results module's metrics interfaces.
package resultmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
)

// ResultMetrics implements the service, handler, and queue metrics contracts
// of the results module. Race IDs are deliberately not used as labels; they
// are unbounded.
type ResultMetrics struct {
	operationAttempts  *prometheus.CounterVec
	operationSuccesses *prometheus.CounterVec
	operationFailures  *prometheus.CounterVec
	operationDuration  *prometheus.HistogramVec

	handlerAttempts  *prometheus.CounterVec
	handlerSuccesses *prometheus.CounterVec
	handlerFailures  *prometheus.CounterVec
	handlerDuration  *prometheus.HistogramVec

	rowsImported prometheus.Counter
	rowsSkipped  prometheus.Counter
	rowsFailed   prometheus.Counter
	rowsRejected prometheus.Counter
}

// NewResultMetrics registers the results module metrics on the registry.
func NewResultMetrics(registry prometheus.Registerer) *ResultMetrics {
	factory := promauto.With(registry)

	return &ResultMetrics{
		operationAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "results_operation_attempts_total",
			Help: "Number of result service operation attempts.",
		}, []string{"operation"}),
		operationSuccesses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "results_operation_successes_total",
			Help: "Number of successful result service operations.",
		}, []string{"operation"}),
		operationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "results_operation_failures_total",
			Help: "Number of failed result service operations.",
		}, []string{"operation"}),
		operationDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "results_operation_duration_seconds",
			Help:    "Duration of result service operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),

		handlerAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "results_handler_attempts_total",
			Help: "Number of message handler attempts.",
		}, []string{"handler"}),
		handlerSuccesses: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "results_handler_successes_total",
			Help: "Number of successful message handler runs.",
		}, []string{"handler"}),
		handlerFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "results_handler_failures_total",
			Help: "Number of failed message handler runs.",
		}, []string{"handler"}),
		handlerDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "results_handler_duration_seconds",
			Help:    "Duration of message handler runs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"handler"}),

		rowsImported: factory.NewCounter(prometheus.CounterOpts{
			Name: "results_rows_imported_total",
			Help: "Number of result rows imported.",
		}),
		rowsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Name: "results_rows_skipped_total",
			Help: "Number of rows skipped because a result already existed.",
		}),
		rowsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "results_rows_failed_total",
			Help: "Number of rows that failed during commit.",
		}),
		rowsRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "results_rows_rejected_total",
			Help: "Number of rows rejected during validation.",
		}),
	}
}

// --- resultsservice.Metrics ---

func (m *ResultMetrics) RecordOperationAttempt(ctx context.Context, operationName string, raceID sharedtypes.RaceID) {
	m.operationAttempts.WithLabelValues(operationName).Inc()
}

func (m *ResultMetrics) RecordOperationSuccess(ctx context.Context, operationName string, raceID sharedtypes.RaceID) {
	m.operationSuccesses.WithLabelValues(operationName).Inc()
}

func (m *ResultMetrics) RecordOperationFailure(ctx context.Context, operationName string, raceID sharedtypes.RaceID) {
	m.operationFailures.WithLabelValues(operationName).Inc()
}

func (m *ResultMetrics) RecordOperationDuration(ctx context.Context, operationName string, duration time.Duration, raceID sharedtypes.RaceID) {
	m.operationDuration.WithLabelValues(operationName).Observe(duration.Seconds())
}

func (m *ResultMetrics) RecordRowsImported(ctx context.Context, raceID sharedtypes.RaceID, imported, skipped, failed int) {
	m.rowsImported.Add(float64(imported))
	m.rowsSkipped.Add(float64(skipped))
	m.rowsFailed.Add(float64(failed))
}

func (m *ResultMetrics) RecordRowsRejected(ctx context.Context, raceID sharedtypes.RaceID, rejected int) {
	m.rowsRejected.Add(float64(rejected))
}

// --- resulthandlers.HandlerMetrics ---

func (m *ResultMetrics) RecordHandlerAttempt(handlerName string) {
	m.handlerAttempts.WithLabelValues(handlerName).Inc()
}

func (m *ResultMetrics) RecordHandlerSuccess(handlerName string) {
	m.handlerSuccesses.WithLabelValues(handlerName).Inc()
}

func (m *ResultMetrics) RecordHandlerFailure(handlerName string) {
	m.handlerFailures.WithLabelValues(handlerName).Inc()
}

func (m *ResultMetrics) RecordHandlerDuration(handlerName string, duration time.Duration) {
	m.handlerDuration.WithLabelValues(handlerName).Observe(duration.Seconds())
}

// --- resultqueue.Metrics ---

// QueueMetrics adapts ResultMetrics to the queue's operation-plus-service
// label scheme. The queue interface shares method names with the service
// interface, so one receiver cannot implement both directly.
type QueueMetrics struct {
	m *ResultMetrics
}

// Queue returns the queue-facing view of the metrics.
func (m *ResultMetrics) Queue() *QueueMetrics {
	return &QueueMetrics{m: m}
}

func (q *QueueMetrics) RecordOperationAttempt(ctx context.Context, operation, service string) {
	q.m.operationAttempts.WithLabelValues(service + "." + operation).Inc()
}

func (q *QueueMetrics) RecordOperationSuccess(ctx context.Context, operation, service string) {
	q.m.operationSuccesses.WithLabelValues(service + "." + operation).Inc()
}

func (q *QueueMetrics) RecordOperationFailure(ctx context.Context, operation, service string) {
	q.m.operationFailures.WithLabelValues(service + "." + operation).Inc()
}

func (q *QueueMetrics) RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration) {
	q.m.operationDuration.WithLabelValues(service + "." + operation).Observe(duration.Seconds())
}
