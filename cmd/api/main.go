package main

// @title Route Estimation Service API
// @version 1.0.0
// @description Route assembly and demand prediction service for intercity bus planning. Resolves ordered stop sequences against the stop catalog, computes road-network routes through OSRM, and estimates expected passengers, fuel cost and profitability with a trained regression model.
// @description
// @description Main capabilities:
// @description - Route estimation for an ordered stop sequence (distance, duration, geometry)
// @description - Passenger demand and fuel cost prediction with route economics
// @description - Degraded great-circle fallback when the routing engine is unavailable
// @description - Stop catalog listing and nearest-stop lookup

// @contact.name API Support
// @contact.email support@route-estimation-service.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	_ "github.com/route-estimation-service/docs/swagger"
	"github.com/route-estimation-service/internal/catalog"
	"github.com/route-estimation-service/internal/config"
	httpDelivery "github.com/route-estimation-service/internal/delivery/http"
	"github.com/route-estimation-service/internal/delivery/http/handler"
	"github.com/route-estimation-service/internal/domain"
	"github.com/route-estimation-service/internal/infrastructure/osrm"
	"github.com/route-estimation-service/internal/metrics"
	"github.com/route-estimation-service/internal/model"
	"github.com/route-estimation-service/internal/pkg/logger"
	"github.com/route-estimation-service/internal/repository/cache"
	"github.com/route-estimation-service/internal/repository/jsonfile"
	"github.com/route-estimation-service/internal/repository/postgres"
	"github.com/route-estimation-service/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Route Estimation Service")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("catalog_source", cfg.Catalog.Source),
	)

	// 3. Load the stop catalog. A broken dataset must never serve traffic,
	// so any load or validation error aborts startup.
	var db *postgres.DB
	stopSource := jsonfile.NewStopSource(cfg.Catalog.Path, log)
	if cfg.Catalog.Source == "postgres" {
		db, err = postgres.New(&cfg.Database, log)
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Error("Failed to close PostgreSQL connection", zap.Error(err))
			}
		}()
		stopSource = postgres.NewStopSource(db, cfg.Catalog.Districts)
		log.Info("PostgreSQL connected")
	}

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 30*time.Second)
	stops, err := stopSource.LoadStops(loadCtx)
	loadCancel()
	if err != nil {
		log.Fatal("Failed to load stops", zap.Error(err))
	}

	cat, err := catalog.New(stops, domain.BoundingBox{
		MinLat: cfg.Catalog.MinLat,
		MinLon: cfg.Catalog.MinLon,
		MaxLat: cfg.Catalog.MaxLat,
		MaxLon: cfg.Catalog.MaxLon,
	})
	if err != nil {
		log.Fatal("Failed to build stop catalog", zap.Error(err))
	}
	log.Info("Stop catalog loaded", zap.Int("stops", cat.Size()))

	// 4. Load the prediction model. Schema mismatches abort startup for the
	// same reason the catalog does.
	mdl, err := model.Load(cfg.Model.Path)
	if err != nil {
		log.Fatal("Failed to load prediction model", zap.Error(err))
	}
	log.Info("Prediction model loaded",
		zap.String("schema_version", mdl.SchemaVersion()),
		zap.Time("trained_at", mdl.TrainedAt()),
	)

	// 5. Connect to Redis
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()
	log.Info("Redis connected")

	// 6. Health checks
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if db != nil {
		if err := db.Health(ctx); err != nil {
			log.Fatal("PostgreSQL health check failed", zap.Error(err))
		}
	}

	if err := redisClient.Health(ctx); err != nil {
		log.Fatal("Redis health check failed", zap.Error(err))
	}

	log.Info("All connections healthy")

	// 7. Initialize repositories and infrastructure
	cacheRepo := cache.NewCacheRepository(redisClient)
	routingRepo := osrm.NewClient(&cfg.Routing, log)
	m := metrics.New()

	log.Info("Repositories initialized")

	// 8. Initialize use cases
	estimateUC := usecase.NewEstimateUseCase(
		cat,
		routingRepo,
		cacheRepo,
		mdl,
		m,
		cfg.Estimation,
		cfg.Cache,
		cfg.Routing.RequestTimeout,
		log,
	)

	stopUC := usecase.NewStopUseCase(cat, log)

	log.Info("Use cases initialized")

	// 9. Initialize HTTP handlers
	estimateHandler := handler.NewEstimateHandler(estimateUC, log)
	stopHandler := handler.NewStopHandler(stopUC, log)
	healthHandler := handler.NewHealthHandler(db, redisClient, cat, mdl, routingRepo, log)

	log.Info("HTTP handlers initialized")

	// 10. Initialize HTTP server
	server := httpDelivery.NewServer(
		cfg,
		log,
		m,
		estimateHandler,
		stopHandler,
		healthHandler,
	)

	log.Info("HTTP server initialized")

	// 11. Start server in goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 12. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}
