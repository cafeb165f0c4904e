package config

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// requirement is a named check against a loaded Config.
type requirement struct {
	field   string
	message string
	ok      func(*Config) bool
}

func notEmpty(get func(*Config) string) func(*Config) bool {
	return func(c *Config) bool { return strings.TrimSpace(get(c)) != "" }
}

var (
	baseRequirements = []requirement{
		{"SERVER_PORT", "is required", notEmpty(func(c *Config) string { return c.ServerPort })},
		{"DB_DRIVER", "must be postgres or sqlite", func(c *Config) bool { return c.DBDriver == "postgres" || c.DBDriver == "sqlite" }},
		{"JWT_SECRET", "is required", notEmpty(func(c *Config) string { return c.JWTSecret })},
		{"TOKEN_TTL", "must be positive", func(c *Config) bool { return c.TokenTTL > 0 }},
		{"CHAT_RATE_LIMIT", "must be positive", func(c *Config) bool { return c.ChatRateLimit > 0 }},
		{"ANALYZE_RATE_LIMIT", "must be positive", func(c *Config) bool { return c.AnalyzeRateLimit > 0 }},
	}

	postgresRequirements = []requirement{
		{"DB_HOST", "is required for postgres", notEmpty(func(c *Config) string { return c.DBHost })},
		{"DB_NAME", "is required for postgres", notEmpty(func(c *Config) string { return c.DBName })},
		{"DB_USER", "is required for postgres", notEmpty(func(c *Config) string { return c.DBUser })},
	}

	// Environment-specific requirements
	requirements = map[Environment][]requirement{
		Development: nil,
		Test:        nil,
		CI: {
			{"DB_PASSWORD", "is required in CI (TEST_DB_PASSWORD)", notEmpty(func(c *Config) string { return c.DBPassword })},
		},
		Production: {
			{"db_password", "secret is required", notEmpty(func(c *Config) string { return c.DBPassword })},
			{"ai_gateway_api_key", "secret is required", notEmpty(func(c *Config) string { return c.AIGatewayAPIKey })},
			{"JWT_SECRET", "must be at least 32 characters", func(c *Config) bool { return len(c.JWTSecret) >= 32 }},
			{"DB_DRIVER", "sqlite is not allowed in production", func(c *Config) bool { return c.DBDriver != "sqlite" }},
		},
	}
)

// ValidateConfig checks cfg against the requirements of its environment and
// reports every violation at once.
func ValidateConfig(cfg *Config) error {
	checks := append([]requirement{}, baseRequirements...)
	if cfg.DBDriver == "postgres" {
		checks = append(checks, postgresRequirements...)
	}
	checks = append(checks, requirements[cfg.Environment]...)

	var errs []error
	for _, r := range checks {
		if !r.ok(cfg) {
			errs = append(errs, ValidationError{Field: r.field, Message: r.message})
		}
	}
	return errors.Join(errs...)
}
