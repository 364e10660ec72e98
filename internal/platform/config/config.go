// Package config loads process configuration once at startup into an
// immutable struct. Nothing here is re-read after main wires dependencies.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultJWTSecret = "dev-secret-change-in-production"

// Config captures everything the server needs from the environment.
type Config struct {
	Addr         string
	Env          string
	ServerOrigin string

	JWTSecret string
	JWTTTL    time.Duration

	DatabaseURL string
	Redis       RedisConfig

	KafkaBrokers []string
	AuditTopic   string

	Logging LoggingConfig
}

// RedisConfig configures the optional owner-lookup cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LoggingConfig selects handler format and level for slog.
type LoggingConfig struct {
	Level         string
	Format        string
	IncludeCaller bool
}

// Development reports whether the process runs with relaxed error redaction.
func (c Config) Development() bool {
	return c.Env != "production"
}

// Load builds a Config from environment variables. A .env file is honored in
// development the way the original deployment did.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Addr:         getEnv("ADDR", ":8080"),
		Env:          getEnv("ENV", "development"),
		ServerOrigin: getEnv("SERVER_ORIGIN", "http://localhost:8080"),
		JWTSecret:    getEnv("JWT_SECRET", defaultJWTSecret),
		JWTTTL:       getDuration("JWT_TTL", 24*time.Hour),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		AuditTopic: getEnv("AUDIT_TOPIC", "revo.audit.records"),
		Logging: LoggingConfig{
			Level:         getEnv("LOG_LEVEL", "info"),
			Format:        getEnv("LOG_FORMAT", "json"),
			IncludeCaller: os.Getenv("LOG_CALLER") == "true",
		},
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = splitAndTrim(brokers)
	}

	if cfg.Env == "production" && cfg.JWTSecret == defaultJWTSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
