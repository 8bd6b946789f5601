package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/ambiance/internal/config"
	"github.com/Vovarama1992/ambiance/internal/delivery"
	ws "github.com/Vovarama1992/ambiance/internal/delivery/ws"
	"github.com/Vovarama1992/ambiance/internal/domain"
	"github.com/Vovarama1992/ambiance/internal/infra"
	"github.com/Vovarama1992/ambiance/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {

	// CONFIG
	cfg, err := config.Load()
	if err != nil {
		panic("config: " + err.Error())
	}

	// LOGGER
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcore, err := zcfg.Build()
	if err != nil {
		panic("logger: " + err.Error())
	}
	defer func() { _ = zcore.Sync() }()
	zl := logger.NewZapLogger(zcore.Sugar())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// STORAGE
	var (
		mediaRepo ports.MediaRepository
		evalRepo  ports.EvaluationRepository
	)
	switch cfg.Storage {
	case "memory":
		mediaRepo = infra.NewMemoryMediaRepo()
		evalRepo = infra.NewMemoryEvaluationRepo()
	default:
		pool, err := infra.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			panic(err.Error())
		}
		defer pool.Close()

		if err := infra.EnsureSchema(ctx, pool); err != nil {
			panic(err.Error())
		}
		mediaRepo = infra.NewPostgresMediaRepo(pool)
		evalRepo = infra.NewPostgresEvaluationRepo(pool)
	}

	// METRICS
	reg := prometheus.NewRegistry()
	recorder := infra.NewPromRecorder(reg)

	// SERVICES
	catalog := domain.NewCatalogService(mediaRepo, zl)
	assigner := domain.NewAssignmentService(mediaRepo, evalRepo, nil, zl, recorder)
	evaluations := domain.NewEvaluationService(evalRepo, mediaRepo, zl,
		domain.WithEditWindow(cfg.EditWindow),
		domain.WithRecorder(recorder),
	)
	aggregation := domain.NewAggregationService(mediaRepo, evalRepo)
	identity := infra.NewJWTIdentity(cfg.AuthSecret)

	// LIVE FEED
	hub := ws.NewHub(zl)
	go ws.Forward(ctx, hub, evaluations.Events(), zl)

	// HANDLERS
	hMedia := delivery.NewMediaHandler(catalog, assigner, zl)
	hEval := delivery.NewEvaluationHandler(evaluations, catalog, zl)
	hMap := delivery.NewMapHandler(aggregation, zl)

	// ROUTER
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Origins(),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "X-Auth"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: true,
	}))

	delivery.RegisterRoutes(r, identity, hMedia, hEval, hMap)

	r.Get("/ws", ws.FeedHandler(hub, identity))
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "server started",
		Fields:  map[string]any{"port": cfg.Port, "storage": cfg.Storage},
	})

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		zl.Log(logger.LogEntry{
			Level:   "error",
			Message: "server crashed",
			Error:   err,
		})
	}
}
