package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
	StoreSQLite   = "sqlite"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string

	// Store
	StoreDriver   string
	DatabaseURL   string
	TablePrefix   string
	MongoURI      string
	MongoDatabase string
	SQLitePath    string

	// AI providers
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	AnthropicAPIKey  string
	OpenRouterAPIKey string
	GeminiAPIKey     string
	DefaultModel     string
	TitleModel       string
	AITimeout        time.Duration
	HistoryWindow    int
	PromptsFile      string

	// Rendering
	Timezone string

	// Logging
	LogDir      string
	LogMaxFiles int
	Debug       bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")
	defaultModel := getEnv("DEFAULT_MODEL", "gpt-4o-mini")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),

		StoreDriver:   strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		TablePrefix:   getTablePrefix(env),
		MongoURI:      getEnv("MONGO_URL", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("DB_NAME", "chat_app"),
		SQLitePath:    getEnv("SQLITE_PATH", "chats.db"),

		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", ""),
		AnthropicAPIKey:  getEnv("ANTHROPIC_API_KEY", ""),
		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		DefaultModel:     defaultModel,
		TitleModel:       getEnv("TITLE_MODEL", defaultModel),
		AITimeout:        getEnvDuration("AI_TIMEOUT", 20*time.Second),
		HistoryWindow:    getEnvInt("HISTORY_WINDOW", 10),
		PromptsFile:      getEnv("PROMPTS_FILE", ""),

		Timezone: getEnv("TIMEZONE", "UTC"),

		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", 10),
		Debug:       getEnv("DEBUG", "false") == "true",
	}
}

// Validate reports configuration that would make the server unusable.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreMemory, StoreSQLite, StoreMongo:
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=%s", StorePostgres)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.DefaultModel == "" {
		return fmt.Errorf("DEFAULT_MODEL cannot be empty")
	}
	if c.HistoryWindow <= 0 {
		return fmt.Errorf("HISTORY_WINDOW must be positive, got %d", c.HistoryWindow)
	}
	if c.AITimeout <= 0 {
		return fmt.Errorf("AI_TIMEOUT must be positive, got %s", c.AITimeout)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// Location resolves Timezone for rendering message clock times.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// AllowedOrigins splits CORSOrigins into the list rs/cors expects.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		slog.Warn("invalid integer in environment, using default", "key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return n
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration in environment, using default", "key", key, "value", value, "default", defaultValue)
		return defaultValue
	}
	return d
}
