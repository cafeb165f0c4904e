package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultAIGatewayURL = "https://ai.gateway.lovable.dev/v1/chat/completions"
	DefaultChatModel    = "google/gemini-3-flash-preview"
	DefaultFoodModel    = "google/gemini-2.5-flash"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort  string
	ServerHost  string
	CORSOrigins []string

	// Database configuration. DBDriver is "postgres" or "sqlite".
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Redis configuration. RedisURL wins over host/port when set.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string
	TokenTTL  time.Duration

	// AI gateway
	AIGatewayURL    string
	AIGatewayAPIKey string
	AIChatModel     string
	AIFoodModel     string

	// Per-user hourly request budgets for the AI endpoints
	ChatRateLimit    int
	AnalyzeRateLimit int

	// Data exports
	S3BucketName string
	AWSRegion    string

	// Logging
	LogDir   string
	LogDebug bool
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()

	switch env {
	case Development, Test:
		// A missing .env file is normal outside local development.
		_ = godotenv.Load()
	case CI, Production:
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	cfg := defaults(env)
	loadFromEnv(cfg)

	switch env {
	case CI:
		loadCISecrets(cfg)
	default:
		loadSecrets(cfg)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func defaults(env Environment) *Config {
	cfg := &Config{
		Environment:      env,
		ServerHost:       "0.0.0.0",
		ServerPort:       "8080",
		CORSOrigins:      []string{"http://localhost:5173"},
		DBDriver:         "postgres",
		DBHost:           "localhost",
		DBPort:           "5432",
		DBUser:           "postgres",
		DBName:           "vitaltrack",
		DBSSLMode:        "disable",
		SQLitePath:       "vitaltrack.db",
		RedisHost:        "localhost",
		RedisPort:        "6379",
		TokenTTL:         24 * time.Hour,
		AIGatewayURL:     DefaultAIGatewayURL,
		AIChatModel:      DefaultChatModel,
		AIFoodModel:      DefaultFoodModel,
		ChatRateLimit:    30,
		AnalyzeRateLimit: 20,
		AWSRegion:        "us-east-1",
	}
	if env == Development || env == Test {
		cfg.DBPassword = "postgres"
		cfg.JWTSecret = "dev-secret-change-me"
	}
	return cfg
}

func loadFromEnv(cfg *Config) {
	setString(&cfg.ServerHost, "SERVER_HOST")
	setString(&cfg.ServerPort, "SERVER_PORT")
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		cfg.CORSOrigins = splitList(v)
	}

	setString(&cfg.DBDriver, "DB_DRIVER")
	setString(&cfg.DBHost, "DB_HOST")
	setString(&cfg.DBPort, "DB_PORT")
	setString(&cfg.DBUser, "DB_USER")
	setString(&cfg.DBPassword, "DB_PASSWORD")
	setString(&cfg.DBName, "DB_NAME")
	setString(&cfg.DBSSLMode, "DB_SSL_MODE")
	setString(&cfg.SQLitePath, "SQLITE_PATH")

	setString(&cfg.RedisHost, "REDIS_HOST")
	setString(&cfg.RedisPort, "REDIS_PORT")
	setString(&cfg.RedisPassword, "REDIS_PASSWORD")
	setString(&cfg.RedisURL, "REDIS_URL")
	setInt(&cfg.RedisDB, "REDIS_DB")

	setString(&cfg.JWTSecret, "JWT_SECRET")
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.TokenTTL = d
		}
	}

	setString(&cfg.AIGatewayURL, "AI_GATEWAY_URL")
	setString(&cfg.AIGatewayAPIKey, "AI_GATEWAY_API_KEY")
	setString(&cfg.AIChatModel, "AI_CHAT_MODEL")
	setString(&cfg.AIFoodModel, "AI_FOOD_MODEL")
	setInt(&cfg.ChatRateLimit, "CHAT_RATE_LIMIT")
	setInt(&cfg.AnalyzeRateLimit, "ANALYZE_RATE_LIMIT")

	setString(&cfg.S3BucketName, "S3_BUCKET_NAME")
	setString(&cfg.AWSRegion, "AWS_REGION")

	setString(&cfg.LogDir, "LOG_DIR")
	if v := os.Getenv("LOG_DEBUG"); v != "" {
		cfg.LogDebug, _ = strconv.ParseBool(v)
	}
}

// loadCISecrets reads the TEST_-prefixed values GitHub Actions injects.
func loadCISecrets(cfg *Config) {
	setString(&cfg.DBPassword, "TEST_DB_PASSWORD")
	setString(&cfg.JWTSecret, "TEST_JWT_SECRET")
	setString(&cfg.RedisPassword, "TEST_REDIS_PASSWORD")
	setString(&cfg.RedisURL, "TEST_REDIS_URL")
	setString(&cfg.AIGatewayAPIKey, "TEST_AI_GATEWAY_API_KEY")
}

// loadSecrets overrides sensitive values with Docker secrets when present.
func loadSecrets(cfg *Config) {
	for name, dst := range map[string]*string{
		"db_user":            &cfg.DBUser,
		"db_password":        &cfg.DBPassword,
		"jwt_secret":         &cfg.JWTSecret,
		"redis_password":     &cfg.RedisPassword,
		"redis_url":          &cfg.RedisURL,
		"ai_gateway_api_key": &cfg.AIGatewayAPIKey,
	} {
		if v := readSecret(name); v != "" {
			*dst = v
		}
	}
	if cfg.AIGatewayAPIKey == "" {
		if path := os.Getenv("AI_GATEWAY_API_KEY_FILE"); path != "" {
			if data, err := os.ReadFile(path); err == nil {
				cfg.AIGatewayAPIKey = strings.TrimSpace(string(data))
			}
		}
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, name)); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

// PostgresDSN builds a key/value connection string for the configured database.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Addr is the listen address of the HTTP server.
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
