package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Skufu/healthcare-ai/internal/httpapi"
	"github.com/Skufu/healthcare-ai/internal/kv"
	"github.com/Skufu/healthcare-ai/internal/logger"
	"github.com/Skufu/healthcare-ai/internal/risk"
	"github.com/Skufu/healthcare-ai/internal/session"
)

const serviceName = "healthcare-ai"

// Session backends selectable through SESSION_BACKEND.
const (
	backendMemory   = "memory"
	backendSQLite   = "sqlite"
	backendRedis    = "redis"
	backendPostgres = "postgres"
)

type Config struct {
	Port      string `env:"PORT" envDefault:"8080"`
	GinMode   string `env:"GIN_MODE" envDefault:"release"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	SessionBackend string `env:"SESSION_BACKEND" envDefault:"sqlite"`
	SessionKey     string `env:"SESSION_KEY" envDefault:"healthcareUser"`
	SQLitePath     string `env:"SQLITE_PATH" envDefault:"healthcare.db"`
	RedisAddr      string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword  string `env:"REDIS_PASSWORD"`
	RedisDB        int    `env:"REDIS_DB" envDefault:"0"`
	DatabaseURL    string `env:"DATABASE_URL"`

	PredictionDelay     time.Duration `env:"PREDICTION_DELAY" envDefault:"0s"`
	RecommendationDelay time.Duration `env:"RECOMMENDATION_DELAY" envDefault:"0s"`
}

// blobBackend is a session blob store that also reports health and owns a
// connection to release.
type blobBackend interface {
	kv.Store
	kv.HealthChecker
	io.Closer
}

type memoryBackend struct {
	*kv.MemoryStore
}

func (memoryBackend) Close() error { return nil }

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogFormat, serviceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	gin.SetMode(cfg.GinMode)

	ctx := context.Background()
	blobs, err := openBackend(ctx, cfg)
	if err != nil {
		log.Fatal("session store unavailable", zap.String("backend", cfg.SessionBackend), zap.Error(err))
	}
	defer blobs.Close()

	sessions := session.NewStore(blobs, session.DemoCredentials(), log.Named("session"), session.WithKey(cfg.SessionKey))
	sessions.Initialize(ctx)

	router := httpapi.NewRouter(httpapi.Deps{
		Sessions:            sessions,
		Predictor:           risk.NewPredictor(nil),
		Health:              blobs,
		Log:                 log.Named("http"),
		StaticRoot:          detectStaticRoot(),
		PredictionDelay:     cfg.PredictionDelay,
		RecommendationDelay: cfg.RecommendationDelay,
	})
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	log.Info("server listening", zap.String("port", cfg.Port), zap.String("session_backend", cfg.SessionBackend))
	waitForShutdown(server, log)
}

func loadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	switch cfg.SessionBackend {
	case backendMemory, backendSQLite, backendRedis:
	case backendPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when SESSION_BACKEND=postgres")
		}
	default:
		return nil, fmt.Errorf("unknown SESSION_BACKEND %q", cfg.SessionBackend)
	}

	return cfg, nil
}

func openBackend(ctx context.Context, cfg *Config) (blobBackend, error) {
	switch cfg.SessionBackend {
	case backendMemory:
		return memoryBackend{kv.NewMemoryStore()}, nil
	case backendRedis:
		store, err := kv.OpenRedis(ctx, kv.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	case backendPostgres:
		store, err := kv.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		store, err := kv.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
}

func waitForShutdown(server *http.Server, log *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
}

func detectStaticRoot() string {
	startDir, err := os.Getwd()
	if err != nil {
		return "."
	}

	candidates := []string{
		startDir,
		filepath.Join(startDir, "web"),
		filepath.Dir(startDir),
		filepath.Dir(filepath.Dir(startDir)),
	}

	for _, dir := range candidates {
		if fileExists(filepath.Join(dir, "index.html")) {
			return dir
		}
	}

	return startDir
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
