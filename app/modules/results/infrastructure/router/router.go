// Package resultrouter wires the results module's message handlers into a
// watermill router.
package resultrouter

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ThreeDotsLabs/watermill/components/metrics"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/prometheus/client_golang/prometheus"

	resultsservice "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/application"
	resultevents "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/domain/events"
	resulthandlers "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/infrastructure/handlers"
	resultqueue "github.com/erik-onofrej/runportal-2026-sub000/app/modules/results/infrastructure/queue"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/attr"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/eventbus"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/utils"
)

const (
	TestEnvironmentFlag  = "APP_ENV"
	TestEnvironmentValue = "test"
)

// ResultRouter owns the subscription side of the results module.
type ResultRouter struct {
	logger         *slog.Logger
	Router         *message.Router
	subscriber     eventbus.EventBus
	publisher      eventbus.EventBus
	helpers        utils.Helpers
	metricsBuilder *metrics.PrometheusMetricsBuilder
	metricsEnabled bool
}

// NewResultRouter creates a new ResultRouter.
func NewResultRouter(
	logger *slog.Logger,
	router *message.Router,
	subscriber eventbus.EventBus,
	publisher eventbus.EventBus,
	helpers utils.Helpers,
	prometheusRegistry *prometheus.Registry,
) *ResultRouter {
	inTestEnv := os.Getenv(TestEnvironmentFlag) == TestEnvironmentValue

	var metricsBuilder *metrics.PrometheusMetricsBuilder
	if prometheusRegistry != nil && !inTestEnv {
		builder := metrics.NewPrometheusMetricsBuilder(prometheusRegistry, "", "")
		metricsBuilder = &builder
	}
	return &ResultRouter{
		logger:         logger,
		Router:         router,
		subscriber:     subscriber,
		publisher:      publisher,
		helpers:        helpers,
		metricsBuilder: metricsBuilder,
		metricsEnabled: prometheusRegistry != nil && !inTestEnv,
	}
}

// Configure adds middleware and registers the module's handlers.
func (r *ResultRouter) Configure(
	routerCtx context.Context,
	resultService resultsservice.Service,
	queueService resultqueue.QueueService,
	handlerMetrics resulthandlers.HandlerMetrics,
) error {
	if r.metricsEnabled && r.metricsBuilder != nil {
		r.metricsBuilder.AddPrometheusRouterMetrics(r.Router)
	}

	handlers := resulthandlers.NewResultHandlers(resultService, queueService, r.logger, r.helpers, handlerMetrics)

	r.Router.AddMiddleware(
		middleware.CorrelationID,
		middleware.Recoverer,
		middleware.Retry{MaxRetries: 3}.Middleware,
	)

	if err := r.RegisterHandlers(routerCtx, handlers); err != nil {
		return fmt.Errorf("failed to register handlers: %w", err)
	}
	return nil
}

// RegisterHandlers subscribes each topic to its handler. Returned messages
// carry their publish topic in metadata; the router publishes them.
func (r *ResultRouter) RegisterHandlers(ctx context.Context, handlers resulthandlers.Handlers) error {
	eventsToHandlers := map[string]message.HandlerFunc{
		resultevents.ResultImportRequested: handlers.HandleImportRequested,
	}

	for topic, handlerFunc := range eventsToHandlers {
		handlerName := fmt.Sprintf("results.%s", topic)
		r.Router.AddHandler(
			handlerName,
			topic,
			r.subscriber,
			"",
			nil,
			func(msg *message.Message) ([]*message.Message, error) {
				messages, err := handlerFunc(msg)
				if err != nil {
					r.logger.ErrorContext(ctx, "Error processing message",
						attr.String("message_id", msg.UUID),
						attr.Error(err),
					)
					return nil, err
				}
				for _, m := range messages {
					publishTopic := utils.TopicFromMessage(m)
					if publishTopic == "" {
						r.logger.Error("message missing publish topic, dropped",
							attr.String("handler", handlerName),
							attr.String("msg_uuid", m.UUID),
						)
						continue
					}
					if err := r.publisher.Publish(publishTopic, m); err != nil {
						return nil, fmt.Errorf("failed to publish to %s: %w", publishTopic, err)
					}
				}
				return nil, nil
			},
		)
	}
	return nil
}

func (r *ResultRouter) Close() error {
	return r.Router.Close()
}
