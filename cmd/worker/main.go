package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/route-estimation-service/internal/catalog"
	"github.com/route-estimation-service/internal/config"
	"github.com/route-estimation-service/internal/domain"
	"github.com/route-estimation-service/internal/infrastructure/osrm"
	"github.com/route-estimation-service/internal/metrics"
	"github.com/route-estimation-service/internal/model"
	"github.com/route-estimation-service/internal/pkg/logger"
	"github.com/route-estimation-service/internal/repository/cache"
	"github.com/route-estimation-service/internal/repository/jsonfile"
	"github.com/route-estimation-service/internal/repository/postgres"
	redisRepo "github.com/route-estimation-service/internal/repository/redis"
	"github.com/route-estimation-service/internal/usecase"
	"github.com/route-estimation-service/internal/worker"
	"github.com/route-estimation-service/internal/worker/route"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Check if worker is enabled
	if !cfg.Worker.Enabled {
		fmt.Println("Worker is disabled in configuration. Set WORKER_ENABLED=true to enable.")
		os.Exit(0)
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting Route Estimate Worker")
	log.Info("Configuration loaded",
		zap.String("consumer_group", cfg.Worker.ConsumerGroup),
		zap.Duration("job_timeout", cfg.Worker.JobTimeout),
		zap.String("catalog_source", cfg.Catalog.Source))

	// 3. Load the stop catalog, same fail-fast rules as the API
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

	// 4. Load the prediction model
	mdl, err := model.Load(cfg.Model.Path)
	if err != nil {
		log.Fatal("Failed to load prediction model", zap.Error(err))
	}
	log.Info("Prediction model loaded", zap.String("schema_version", mdl.SchemaVersion()))

	// 5. Connect to Redis (cache) and Redis Streams
	redisClient, err := cache.NewRedis(&cfg.Redis, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", zap.Error(err))
		}
	}()

	streamsClient, err := cache.NewRedisStreams(&cfg.RedisStreams, log)
	if err != nil {
		log.Fatal("Failed to connect to Redis Streams", zap.Error(err))
	}
	defer func() {
		if err := streamsClient.Close(); err != nil {
			log.Error("Failed to close Redis Streams connection", zap.Error(err))
		}
	}()

	// 6. Initialize repositories and infrastructure
	cacheRepo := cache.NewCacheRepository(redisClient)
	streamRepo := redisRepo.NewStreamRepository(streamsClient, log)
	routingRepo := osrm.NewClient(&cfg.Routing, log)
	m := metrics.New()

	// 7. Initialize use cases
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

	// 8. Initialize workers
	estimateWorker := route.NewEstimateWorker(
		streamRepo,
		estimateUC,
		cfg.Worker.ConsumerGroup,
		cfg.Worker.JobTimeout,
		log,
	)

	// 9. Create worker manager and register workers
	workerManager := worker.NewWorkerManager(log)
	workerManager.Register(estimateWorker)

	// 10. Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := workerManager.Start(ctx); err != nil {
		log.Fatal("Failed to start workers", zap.Error(err))
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	log.Info("Received shutdown signal")

	cancel()

	if err := workerManager.Stop(); err != nil {
		log.Error("Error stopping workers", zap.Error(err))
	}

	log.Info("Worker shutdown complete")
}
