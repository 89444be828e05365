package resulthandlers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"

	resultsservice "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/application"
	resultqueue "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/infrastructure/queue"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/attr"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/utils"
)

// HandlerMetrics records telemetry for message handlers.
type HandlerMetrics interface {
	RecordHandlerAttempt(handlerName string)
	RecordHandlerSuccess(handlerName string)
	RecordHandlerFailure(handlerName string)
	RecordHandlerDuration(handlerName string, duration time.Duration)
}

// NoOpHandlerMetrics discards handler telemetry.
type NoOpHandlerMetrics struct{}

func (NoOpHandlerMetrics) RecordHandlerAttempt(string)                 {}
func (NoOpHandlerMetrics) RecordHandlerSuccess(string)                 {}
func (NoOpHandlerMetrics) RecordHandlerFailure(string)                 {}
func (NoOpHandlerMetrics) RecordHandlerDuration(string, time.Duration) {}

// ResultHandlers handles result import events.
type ResultHandlers struct {
	service        resultsservice.Service
	queue          resultqueue.QueueService
	logger         *slog.Logger
	metrics        HandlerMetrics
	helpers        utils.Helpers
	handlerWrapper func(handlerName string, unmarshalTo interface{}, handlerFunc func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error)) message.HandlerFunc
}

// NewResultHandlers creates a new ResultHandlers.
func NewResultHandlers(
	service resultsservice.Service,
	queue resultqueue.QueueService,
	logger *slog.Logger,
	helpers utils.Helpers,
	metrics HandlerMetrics,
) Handlers {
	return &ResultHandlers{
		service: service,
		queue:   queue,
		logger:  logger,
		metrics: metrics,
		helpers: helpers,
		handlerWrapper: func(handlerName string, unmarshalTo interface{}, handlerFunc func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error)) message.HandlerFunc {
			return handlerWrapper(handlerName, unmarshalTo, handlerFunc, logger, metrics, helpers)
		},
	}
}

// handlerWrapper handles the common logging, metrics, and payload
// unmarshalling for message handlers.
func handlerWrapper(
	handlerName string,
	unmarshalTo interface{},
	handlerFunc func(ctx context.Context, msg *message.Message, payload interface{}) ([]*message.Message, error),
	logger *slog.Logger,
	metrics HandlerMetrics,
	helpers utils.Helpers,
) message.HandlerFunc {
	return func(msg *message.Message) ([]*message.Message, error) {
		ctx := msg.Context()

		metrics.RecordHandlerAttempt(handlerName)
		start := time.Now()
		defer func() {
			metrics.RecordHandlerDuration(handlerName, time.Since(start))
		}()

		logger.InfoContext(ctx, handlerName+" triggered",
			attr.CorrelationIDFromMsg(msg),
			attr.String("message_id", msg.UUID),
		)

		if unmarshalTo != nil {
			if err := helpers.UnmarshalPayload(msg, unmarshalTo); err != nil {
				logger.ErrorContext(ctx, "Failed to unmarshal payload",
					attr.CorrelationIDFromMsg(msg),
					attr.Error(err),
				)
				metrics.RecordHandlerFailure(handlerName)
				return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
			}
		}

		result, err := handlerFunc(ctx, msg, unmarshalTo)
		if err != nil {
			logger.ErrorContext(ctx, "Error in "+handlerName,
				attr.CorrelationIDFromMsg(msg),
				attr.Error(err),
			)
			metrics.RecordHandlerFailure(handlerName)
			return nil, err
		}

		logger.InfoContext(ctx, handlerName+" completed", attr.CorrelationIDFromMsg(msg))
		metrics.RecordHandlerSuccess(handlerName)
		return result, nil
	}
}
