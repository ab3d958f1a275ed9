package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Preview   PreviewConfig
	Workbench WorkbenchConfig
	App       AppConfig
}

type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

// DatabaseConfig configures the optional revision archive. DSN wins over
// the individual fields; with neither DSN nor Host the archive is off.
type DatabaseConfig struct {
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	MaxConns int
	MinConns int
}

// Enabled reports whether a database is configured.
func (d DatabaseConfig) Enabled() bool {
	return d.DSN != "" || d.Host != ""
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PreviewConfig points at the calculation service.
type PreviewConfig struct {
	BaseURL       string
	Timeout       time.Duration
	ReportTimeout time.Duration
	RatePerSec    float64
	Burst         int
}

type WorkbenchConfig struct {
	GlassDebounce      time.Duration
	WindDebounce       time.Duration
	FigureRefreshSpec  string
	CatalogRefreshSpec string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	LogFormat   string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:               getEnv("PORT", "8080"),
			CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "facade"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Preview: PreviewConfig{
			BaseURL:       getEnv("PREVIEW_SERVICE_URL", "http://localhost:5000"),
			Timeout:       time.Duration(getEnvAsInt("PREVIEW_TIMEOUT_SEC", 15)) * time.Second,
			ReportTimeout: time.Duration(getEnvAsInt("REPORT_TIMEOUT_SEC", 120)) * time.Second,
			RatePerSec:    getEnvAsFloat("PREVIEW_RATE_PER_SEC", 10),
			Burst:         getEnvAsInt("PREVIEW_BURST", 20),
		},
		Workbench: WorkbenchConfig{
			GlassDebounce:      time.Duration(getEnvAsInt("GLASS_DEBOUNCE_MS", 400)) * time.Millisecond,
			WindDebounce:       time.Duration(getEnvAsInt("WIND_DEBOUNCE_MS", 500)) * time.Millisecond,
			FigureRefreshSpec:  getEnv("FIGURE_REFRESH_SPEC", "@every 10s"),
			CatalogRefreshSpec: getEnv("CATALOG_REFRESH_SPEC", "@every 30m"),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFormat:   getEnv("LOG_FORMAT", "text"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Preview.BaseURL == "" {
		return fmt.Errorf("PREVIEW_SERVICE_URL is required")
	}

	if c.Workbench.GlassDebounce <= 0 || c.Workbench.WindDebounce <= 0 {
		return fmt.Errorf("debounce windows must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid number for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
