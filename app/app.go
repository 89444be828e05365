package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/erik-onofrej/runportal-2026-sub000/app/modules/results"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/attr"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/eventbus"
	sharedtypes "github.com/erik-onofrej/runportal-2026-sub000/app/shared/types"
	"github.com/erik-onofrej/runportal-2026-sub000/app/shared/utils"
	"github.com/erik-onofrej/runportal-2026-sub000/config"
	"github.com/erik-onofrej/runportal-2026-sub000/db/bundb"
)

// App bundles the application's long-lived components.
type App struct {
	Config          *config.Config
	Logger          *slog.Logger
	DBService       *bundb.DBService
	EventBus        eventbus.EventBus
	WatermillRouter *message.Router
	ResultsModule   *results.Module
	Registry        *prometheus.Registry
	httpServer      *http.Server
}

// NewApp initializes the application.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	dbService, err := bundb.NewBunDBService(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	watermillLogger := watermill.NewSlogLogger(logger)

	bus, err := eventbus.NewNatsEventBus(cfg.NATS.URL, "runportal", watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	router, err := message.NewRouter(message.RouterConfig{}, watermillLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create watermill router: %w", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	helpers := utils.NewMessageHelpers()

	resultsModule, err := results.NewResultsModule(
		ctx,
		cfg,
		logger,
		dbService.GetDB(),
		dbService.ResultDB,
		dbService.RegistrationDB,
		dbService.RaceDB,
		bus,
		router,
		helpers,
		registry,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize results module: %w", err)
	}

	app := &App{
		Config:          cfg,
		Logger:          logger,
		DBService:       dbService,
		EventBus:        bus,
		WatermillRouter: router,
		ResultsModule:   resultsModule,
		Registry:        registry,
	}
	app.httpServer = &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           app.httpHandler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	return app, nil
}

// httpHandler serves health, metrics, and result charts.
func (a *App) httpHandler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := a.ResultsModule.QueueService.HealthCheck(req.Context()); err != nil {
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if a.Config.Observability.MetricsEnabled {
		r.Handle("/metrics", promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/races/{raceID}/results/chart.png", func(w http.ResponseWriter, req *http.Request) {
		rawID, err := uuid.Parse(chi.URLParam(req, "raceID"))
		if err != nil {
			http.Error(w, "invalid race id", http.StatusBadRequest)
			return
		}

		png, err := a.ResultsModule.ResultService.GenerateFinishTimeChart(req.Context(), sharedtypes.RaceID(rawID))
		if err != nil {
			a.Logger.ErrorContext(req.Context(), "failed to render chart", attr.Error(err))
			http.Error(w, "failed to render chart", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	})

	return r
}

// Run starts the router, the results module, and the HTTP server, and blocks
// until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	var wg sync.WaitGroup

	wg.Add(1)
	go a.ResultsModule.Run(ctx, &wg)

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := a.WatermillRouter.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.Logger.Error("watermill router stopped", attr.Error(err))
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.Logger.Info("HTTP server listening", attr.String("address", a.Config.HTTP.Address))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("http server stopped", attr.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		a.Logger.Error("http server shutdown failed", attr.Error(err))
	}

	wg.Wait()
	return nil
}

// Close releases all resources.
func (a *App) Close() error {
	if err := a.ResultsModule.Close(); err != nil {
		a.Logger.Error("failed to close results module", attr.Error(err))
	}
	if err := a.WatermillRouter.Close(); err != nil {
		a.Logger.Error("failed to close watermill router", attr.Error(err))
	}
	if err := a.EventBus.Close(); err != nil {
		a.Logger.Error("failed to close event bus", attr.Error(err))
	}
	if err := a.DBService.GetDB().Close(); err != nil {
		a.Logger.Error("failed to close database", attr.Error(err))
	}
	return nil
}
