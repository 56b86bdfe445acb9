package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hafljin/inquiry-automation/pkg/utils"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Logging    LoggingConfig
	Metrics    MetricsConfig
	Diagnostic DiagnosticConfig
	LLM        LLMConfig
	Admin      AdminConfig
	Redis      RedisConfig
	Usage      UsageConfig
}

type ServerConfig struct {
	Host                    string
	Port                    int
	ReadTimeout             time.Duration
	WriteTimeout            time.Duration
	IdleTimeout             time.Duration
	GracefulShutdownTimeout time.Duration
	CORSAllowedOrigins      []string
	RateLimitRPM            int
}

type DatabaseConfig struct {
	URL             string
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string // json or text
}

type MetricsConfig struct {
	Enabled bool
	Port    int
	Path    string
}

// DiagnosticConfig selects the engine and the simulated processing delays
type DiagnosticConfig struct {
	Engine         string // rules or llm
	BusinessName   string
	TextDelay      time.Duration
	SelectionDelay time.Duration
	ChatDelay      time.Duration
}

type LLMConfig struct {
	Provider        string // gemini or openai
	GeminiAPIKey    string
	OpenAIAPIKey    string
	Model           string
	Temperature     float64
	MaxTokens       int
	Timeout         time.Duration
	BreakerFailures int
	BreakerTimeout  time.Duration
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type AdminConfig struct {
	AdminSecret string
}

type UsageConfig struct {
	FlushInterval time.Duration
}

// Engine names
const (
	EngineRules = "rules"
	EngineLLM   = "llm"
)

// Load loads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:                    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:                    getEnvInt("SERVER_PORT", 8080),
			ReadTimeout:             getEnvDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:            getEnvDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:             getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			GracefulShutdownTimeout: getEnvDuration("SERVER_GRACEFUL_SHUTDOWN_TIMEOUT", 30*time.Second),
			CORSAllowedOrigins:      getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
			RateLimitRPM:            getEnvInt("RATE_LIMIT_RPM", 30),
		},
		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvInt("DB_MIN_CONNS", 1),
			MaxConnLifetime: getEnvDuration("DB_MAX_CONN_LIFETIME", 1*time.Hour),
			MaxConnIdleTime: getEnvDuration("DB_MAX_CONN_IDLE_TIME", 30*time.Minute),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Port:    getEnvInt("METRICS_PORT", 9090),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
		Diagnostic: DiagnosticConfig{
			Engine:         strings.ToLower(getEnv("DIAGNOSTIC_ENGINE", EngineRules)),
			BusinessName:   getEnv("BUSINESS_NAME", "問い合わせ自動化サービス"),
			TextDelay:      getEnvDuration("DIAGNOSTIC_TEXT_DELAY", 800*time.Millisecond),
			SelectionDelay: getEnvDuration("DIAGNOSTIC_SELECTION_DELAY", 600*time.Millisecond),
			ChatDelay:      getEnvDuration("CHAT_DELAY", 500*time.Millisecond),
		},
		LLM: LLMConfig{
			Provider:        strings.ToLower(getEnv("LLM_PROVIDER", "gemini")),
			GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
			OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
			Model:           getEnv("LLM_MODEL", ""),
			Temperature:     getEnvFloat("LLM_TEMPERATURE", 0.7),
			MaxTokens:       getEnvInt("LLM_MAX_TOKENS", 1024),
			Timeout:         getEnvDuration("LLM_TIMEOUT", 20*time.Second),
			BreakerFailures: getEnvInt("LLM_BREAKER_FAILURES", 5),
			BreakerTimeout:  getEnvDuration("LLM_BREAKER_TIMEOUT", 30*time.Second),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Admin: AdminConfig{
			AdminSecret: getEnv("ADMIN_SECRET", ""),
		},
		Usage: UsageConfig{
			FlushInterval: getEnvDuration("USAGE_FLUSH_INTERVAL", 5*time.Minute),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.RateLimitRPM < 1 {
		return fmt.Errorf("rate limit must be at least 1 request per minute")
	}
	if c.Database.MaxConns < 1 {
		return fmt.Errorf("database max connections must be at least 1")
	}
	switch c.Diagnostic.Engine {
	case EngineRules, EngineLLM:
	default:
		return fmt.Errorf("unknown diagnostic engine: %s", c.Diagnostic.Engine)
	}
	if c.Diagnostic.TextDelay < 0 || c.Diagnostic.SelectionDelay < 0 || c.Diagnostic.ChatDelay < 0 {
		return fmt.Errorf("diagnostic delays must not be negative")
	}
	switch c.LLM.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("unknown llm provider: %s", c.LLM.Provider)
	}
	if c.LLM.BreakerFailures < 1 {
		return fmt.Errorf("llm breaker failures must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	if items := utils.SplitCSV(os.Getenv(key)); len(items) > 0 {
		return items
	}
	return defaultValue
}
