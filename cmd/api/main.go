// @title                       Unity API
// @version                     1.0
// @description                 Goals, check-ins and consistency scoring.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	_ "github.com/unity-app/unity-engine/docs"
	"github.com/unity-app/unity-engine/internal/adapters/cache"
	"github.com/unity-app/unity-engine/internal/adapters/events"
	adapterHTTP "github.com/unity-app/unity-engine/internal/adapters/handler/http"
	"github.com/unity-app/unity-engine/internal/adapters/metrics"
	"github.com/unity-app/unity-engine/internal/adapters/repository"
	"github.com/unity-app/unity-engine/internal/config"
	"github.com/unity-app/unity-engine/internal/core/domain"
	"github.com/unity-app/unity-engine/internal/core/services"
	"github.com/unity-app/unity-engine/internal/core/workers"
)

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Critical: Invalid configuration: %v", err)
	}

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", cfg.DB.DSN())
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	userDB, err := sql.Open("postgres", cfg.DB.DSN())
	if err != nil {
		log.Fatalf("Critical: Failed to open user database: %v", err)
	}
	defer userDB.Close()

	log.Println("Database connected successfully.")

	m := metrics.New()

	var rdb *redis.Client
	if client, err := cache.NewRedisClient(cfg.Redis); err != nil {
		log.Printf("[CACHE] Redis unavailable, running without cache: %v", err)
	} else {
		rdb = client
		defer rdb.Close()
	}

	userRepo := repository.NewPostgresUserRepository(userDB)
	checkInRepo := repository.NewPostgresCheckInRepository(db)

	var goalRepo domain.GoalRepository = repository.NewPostgresGoalRepository(db)
	var reportCache domain.ReportCache = repository.NewInMemoryReportCache()
	if rdb != nil {
		goalRepo = repository.NewCachedGoalRepository(goalRepo, rdb, m)
		reportCache = repository.NewRedisReportCache(rdb, repository.DefaultReportTTL, m)
	}

	publisher, closePublisher, err := events.NewPublisher(cfg.Kafka)
	if err != nil {
		log.Fatalf("Critical: Failed to start event publisher: %v", err)
	}
	defer func() {
		if err := closePublisher(); err != nil {
			log.Printf("[EVENTS] Close failed: %v", err)
		}
	}()

	worker := workers.NewConsistencyWorker(goalRepo, checkInRepo, userRepo, cfg.Scoring,
		workers.WithReportCache(reportCache),
		workers.WithPublisher(publisher),
		workers.WithRecorder(m),
	)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	worker.Start(workerCtx)

	tokenService := services.NewTokenService(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, userRepo)
	authService := services.NewAuthService(userRepo, tokenService)
	goalService := services.NewGoalService(goalRepo)
	checkInService := services.NewCheckInService(checkInRepo, goalRepo, worker, reportCache)
	consistencyService := services.NewConsistencyService(goalRepo, checkInRepo, userRepo, cfg.Scoring,
		services.WithReportCache(reportCache),
	)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:        adapterHTTP.NewAuthHandler(authService),
		GoalHandler:        adapterHTTP.NewGoalHandler(goalService),
		CheckInHandler:     adapterHTTP.NewCheckInHandler(checkInService),
		ConsistencyHandler: adapterHTTP.NewConsistencyHandler(consistencyService),
		Tokens:             tokenService,
		DB:                 db,
		Redis:              rdb,
		Metrics:            m,
		RateLimit:          cfg.Limits,
		StartTime:          startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Unity engine running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}
	stopWorker()

	log.Println("Server stopped gracefully.")
}
