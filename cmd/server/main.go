package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dharmasatrya/tripform/internal/catalog"
	"github.com/dharmasatrya/tripform/internal/form"
	"github.com/dharmasatrya/tripform/internal/handler"
	"github.com/dharmasatrya/tripform/internal/ratelimit"
	"github.com/dharmasatrya/tripform/internal/session"
	"github.com/dharmasatrya/tripform/internal/store"
	"github.com/dharmasatrya/tripform/internal/timezone"
)

type Config struct {
	Port          string
	StoreEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisTTL      time.Duration
	SessionTTL    time.Duration
	SweepInterval time.Duration
	EventRate     float64
	EventBurst    int
	CatalogPath   string
	Timezone      string
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}
	cfg := loadConfig()

	e := echo.New()
	e.Validator = handler.NewRequestValidator()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Loaded catalog with %d destinations", len(cat.Destinations()))

	loc := timezone.GetLocationByName(cfg.Timezone)

	var submissions store.Store
	if cfg.StoreEnabled {
		redisStore, err := store.NewRedisStore(store.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			TTL:      cfg.RedisTTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		submissions = redisStore
		log.Printf("Redis store enabled (host: %s:%s, TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.RedisTTL)
	} else {
		submissions = store.NewMemoryStore()
		log.Println("Redis store disabled, keeping reservations in memory")
	}
	defer submissions.Close()

	limiter := ratelimit.NewSessionLimiter(ratelimit.RateLimitConfig{
		EventsPerSecond: cfg.EventRate,
		BurstSize:       cfg.EventBurst,
	})

	registry := session.NewRegistry(cat, session.Config{
		IdleTTL:       cfg.SessionTTL,
		SweepInterval: cfg.SweepInterval,
		FormOptions:   form.Options{Location: loc},
		OnEvict:       limiter.Forget,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go registry.Run(ctx)

	api := e.Group("/api/v1")
	handler.NewFormHandler(registry, submissions, limiter).Register(api)
	handler.NewLookupHandler(cat, submissions).Register(api)
	e.GET("/health", handler.HealthHandler)

	go func() {
		log.Printf("Starting trip reservation form server on port %s (timezone %s)", cfg.Port, loc)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown failed: %v", err)
	}
}

func loadConfig() Config {
	limits := ratelimit.DefaultConfig()
	sessions := session.DefaultConfig()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		StoreEnabled:  getEnvBool("STORE_ENABLED", false),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisTTL:      getEnvDuration("REDIS_TTL", 24*time.Hour),
		SessionTTL:    getEnvDuration("SESSION_TTL", sessions.IdleTTL),
		SweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", sessions.SweepInterval),
		EventRate:     getEnvFloat("EVENT_RATE", limits.EventsPerSecond),
		EventBurst:    getEnvInt("EVENT_BURST", limits.BurstSize),
		CatalogPath:   getEnv("CATALOG_PATH", ""),
		Timezone:      getEnv("TIMEZONE", timezone.DefaultName),
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
