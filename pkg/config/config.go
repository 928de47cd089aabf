package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Corpus      CorpusConfig      `mapstructure:"corpus"`
	Classifier  ClassifierConfig  `mapstructure:"classifier"`
	OpenAI      OpenAIConfig      `mapstructure:"openai"`
	HuggingFace HuggingFaceConfig `mapstructure:"huggingface"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Identity    IdentityConfig    `mapstructure:"identity"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type CorpusConfig struct {
	Path string `mapstructure:"path"`
}

// ClassifierConfig selects the classification backend: "huggingface",
// "openai", or "mock".
type ClassifierConfig struct {
	Backend string `mapstructure:"backend"`
}

type OpenAIConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

type HuggingFaceConfig struct {
	APIKey         string `mapstructure:"api_key"`
	Model          string `mapstructure:"model"`
	Endpoint       string `mapstructure:"endpoint"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type TelemetryConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	Enabled        bool   `mapstructure:"enabled"`
	QueueSize      int    `mapstructure:"queue_size"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type DatabaseConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	DBName      string `mapstructure:"dbname"`
	SSLMode     string `mapstructure:"sslmode"`
	UseInMemory bool   `mapstructure:"use_in_memory"`
}

type IdentityConfig struct {
	Path string `mapstructure:"path"`
}

func parseDatabaseURL(dbURL string) (DatabaseConfig, error) {
	u, err := url.Parse(dbURL)
	if err != nil {
		return DatabaseConfig{}, err
	}

	password, _ := u.User.Password()
	port := 5432 // default PostgreSQL port
	if u.Port() != "" {
		fmt.Sscanf(u.Port(), "%d", &port)
	}

	// Remove leading slash from path to get database name
	dbName := strings.TrimPrefix(u.Path, "/")

	return DatabaseConfig{
		Host:     u.Hostname(),
		Port:     port,
		User:     u.User.Username(),
		Password: password,
		DBName:   dbName,
		SSLMode:  "disable",
	}, nil
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("corpus.path", "reviews.tsv")
	v.SetDefault("classifier.backend", "huggingface")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("openai.max_tokens", 100)
	v.SetDefault("openai.temperature", 0.0)
	v.SetDefault("huggingface.model", "distilbert-base-uncased-finetuned-sst-2-english")
	v.SetDefault("huggingface.timeout_seconds", 30)
	v.SetDefault("telemetry.enabled", true)
	v.SetDefault("telemetry.queue_size", 64)
	v.SetDefault("telemetry.timeout_seconds", 10)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.use_in_memory", true)
	v.SetDefault("identity.path", "data/user_id")

	// Enable environment variable support
	v.AutomaticEnv()

	// Read the config file
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	// Check for DATABASE_URL environment variable
	if dbURL := v.GetString("DATABASE_URL"); dbURL != "" {
		dbConfig, err := parseDatabaseURL(dbURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %v", err)
		}
		dbConfig.UseInMemory = false
		config.Database = dbConfig
	}

	// Get other environment variables
	if apiKey := v.GetString("OPENAI_API_KEY"); apiKey != "" {
		config.OpenAI.APIKey = apiKey
	}

	if apiKey := v.GetString("HF_API_KEY"); apiKey != "" {
		config.HuggingFace.APIKey = apiKey
	}

	if endpoint := v.GetString("TELEMETRY_URL"); endpoint != "" {
		config.Telemetry.Endpoint = endpoint
	}

	return &config, nil
}
