package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/vpisarenko/habitboard/internal/adapters/cache"
	adapterHTTP "github.com/vpisarenko/habitboard/internal/adapters/handler/http"
	"github.com/vpisarenko/habitboard/internal/adapters/repository"
	"github.com/vpisarenko/habitboard/internal/core/domain"
	"github.com/vpisarenko/habitboard/internal/core/services"
	"github.com/vpisarenko/habitboard/internal/core/workers"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	startTime := time.Now()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables.")
	}

	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	serverPort := getEnv("PORT", "8080")

	// The user whose feed the background worker keeps warm.
	activeUserID := os.Getenv("ACTIVE_USER_ID")

	refreshInterval := time.Second
	if raw := os.Getenv("FEED_REFRESH_INTERVAL_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms <= 0 {
			log.Fatalf("Critical: invalid FEED_REFRESH_INTERVAL_MS %q", raw)
		}
		refreshInterval = time.Duration(ms) * time.Millisecond
	}

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		dbUser, dbPass, dbHost, dbPort, dbName)

	log.Println("Connecting to database...")

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		log.Fatalf("Critical: Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	log.Println("Database connected successfully.")

	var rdb *redis.Client
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	rdb, err = cache.NewRedisClient(
		getEnv("REDIS_HOST", "localhost"),
		getEnv("REDIS_PORT", "6379"),
		os.Getenv("REDIS_PASSWORD"),
		redisDB,
	)
	if err != nil {
		log.Printf("Redis unavailable, falling back to in-memory preferences and uncached statistics: %v", err)
		rdb = nil
	} else {
		defer rdb.Close()
		log.Println("Redis connected successfully.")
	}

	habitRepo := repository.NewPostgresHabitRepository(db)
	userRepo := repository.NewPostgresUserRepository(db)
	pgStats := repository.NewPostgresStatsRepository(db)

	var statsRepo domain.StatsRepository = pgStats
	var logRepo domain.LogRepository = pgStats
	var prefsRepo domain.PreferencesRepository

	if rdb != nil {
		cached := repository.NewCachedStatsRepository(pgStats, pgStats, rdb)
		statsRepo = cached
		logRepo = cached
		prefsRepo = repository.NewRedisPreferencesRepository(rdb)
	} else {
		prefsRepo = repository.NewInMemoryPreferencesRepository()
	}

	catalogService := services.NewCatalogService(habitRepo, userRepo)
	feedService := services.NewFeedService(statsRepo, userRepo, prefsRepo)
	logService := services.NewLogService(logRepo, habitRepo, userRepo)
	prefsService := services.NewPreferencesService(prefsRepo, habitRepo, userRepo)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	var worker *workers.RefreshWorker
	if activeUserID != "" {
		worker = workers.NewRefreshWorker(statsRepo, userRepo, habitRepo, prefsRepo, feedService, activeUserID, refreshInterval)
		worker.Start(workerCtx)
	} else {
		log.Println("ACTIVE_USER_ID not set, background feed refresh disabled.")
	}

	var currentFeed adapterHTTP.CurrentFeed
	var refresher adapterHTTP.FeedRefresher
	if worker != nil {
		currentFeed = worker
		refresher = worker
	}

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		HabitHandler:       adapterHTTP.NewHabitHandler(catalogService),
		UserHandler:        adapterHTTP.NewUserHandler(catalogService),
		StatsHandler:       adapterHTTP.NewStatsHandler(statsRepo),
		LogHandler:         adapterHTTP.NewLogHandler(logService, refresher),
		FeedHandler:        adapterHTTP.NewFeedHandler(feedService, currentFeed),
		PreferencesHandler: adapterHTTP.NewPreferencesHandler(prefsService),
		DB:                 db,
		Redis:              rdb,
		StartTime:          startTime,
	})

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Habitboard API running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
