package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sentimentlab/reviewpulse/internal/classifier"
	"github.com/sentimentlab/reviewpulse/internal/corpus"
	"github.com/sentimentlab/reviewpulse/internal/identity"
	"github.com/sentimentlab/reviewpulse/internal/server"
	"github.com/sentimentlab/reviewpulse/internal/storage"
	"github.com/sentimentlab/reviewpulse/internal/telemetry"
	"github.com/sentimentlab/reviewpulse/pkg/config"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Optional .env for local development
	_ = godotenv.Load()

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", configPath))
	}

	// Load the review corpus. A load failure is surfaced but not fatal:
	// the server runs with an empty working set and reports the error
	// on each sampling attempt.
	reviews, err := corpus.Load(cfg.Corpus.Path, logger)
	if err != nil {
		logger.Error("Failed to load review corpus", zap.Error(err), zap.String("path", cfg.Corpus.Path))
		reviews = corpus.Empty()
	}

	// Initialize storage
	var store storage.Storage
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		logger.Info("Using PostgreSQL storage")
		dbConfig := storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		}
		store, err = storage.NewPostgresStorage(dbConfig, logger)
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Initialize classifier backend
	clf := buildClassifier(cfg, logger)
	logger.Info("Classifier ready", zap.String("backend", cfg.Classifier.Backend), zap.String("model", clf.Model()))

	// Initialize telemetry
	var emitter *telemetry.Emitter
	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint != "" {
		client := &http.Client{Timeout: time.Duration(cfg.Telemetry.TimeoutSeconds) * time.Second}
		emitter = telemetry.NewEmitter(cfg.Telemetry.Endpoint, cfg.Telemetry.QueueSize, client, logger)
		defer emitter.Close()
	} else {
		logger.Info("Telemetry disabled")
	}

	ident := identity.NewStore(cfg.Identity.Path, logger)

	// Start the server
	srv := server.New(reviews, clf, store, emitter, ident, logger)
	logger.Info("Starting server", zap.String("addr", cfg.Server.Addr))
	if err := srv.Run(cfg.Server.Addr); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}

func buildClassifier(cfg *config.Config, logger *zap.Logger) classifier.Classifier {
	switch cfg.Classifier.Backend {
	case "openai":
		if cfg.OpenAI.APIKey == "" {
			logger.Warn("No OpenAI API key configured, falling back to mock classifier")
			return classifier.NewMockClassifier(time.Now().UnixNano())
		}
		return classifier.NewOpenAIClassifier(
			cfg.OpenAI.APIKey,
			cfg.OpenAI.Model,
			cfg.OpenAI.MaxTokens,
			cfg.OpenAI.Temperature,
			logger,
		)
	case "mock":
		return classifier.NewMockClassifier(time.Now().UnixNano())
	default:
		return classifier.NewHFClassifier(
			cfg.HuggingFace.APIKey,
			cfg.HuggingFace.Model,
			cfg.HuggingFace.Endpoint,
			time.Duration(cfg.HuggingFace.TimeoutSeconds)*time.Second,
			logger,
		)
	}
}
