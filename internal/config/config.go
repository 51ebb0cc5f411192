package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/unity-app/unity-engine/internal/core/scoring"
)

type Config struct {
	Port    string
	DB      DBConfig
	Redis   RedisConfig
	Auth    AuthConfig
	Kafka   KafkaConfig
	Limits  RateLimitConfig
	Scoring scoring.ScoringConfig
}

type DBConfig struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AuthConfig struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

// KafkaConfig leaves milestone publishing disabled when Brokers is empty.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func (c KafkaConfig) Enabled() bool { return len(c.Brokers) > 0 }

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Printf("[CONFIG] No .env file loaded: %v", err)
	}

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		DB: DBConfig{
			User:     getEnv("DB_USER", "unity_user"),
			Password: getEnv("DB_PASSWORD", "secret"),
			Name:     getEnv("DB_NAME", "unity_db"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		Auth: AuthConfig{
			Secret: os.Getenv("JWT_SECRET"),
			Issuer: getEnv("JWT_ISSUER", "unity-engine"),
		},
		Kafka: KafkaConfig{
			Brokers: splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:   getEnv("KAFKA_TOPIC", "unity.milestones"),
		},
	}

	var err error
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.Auth.TokenTTL, err = getDuration("TOKEN_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.Limits.Requests, err = getInt("RATE_LIMIT", 100); err != nil {
		return nil, err
	}
	if cfg.Limits.Window, err = getDuration("RATE_WINDOW", time.Minute); err != nil {
		return nil, err
	}
	if cfg.Scoring, err = loadScoring(); err != nil {
		return nil, err
	}

	if cfg.Auth.Secret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET is required")
	}

	return cfg, nil
}

func loadScoring() (scoring.ScoringConfig, error) {
	sc := scoring.DefaultConfig()
	var err error
	if sc.Window, err = getInt("SCORING_WINDOW", sc.Window); err != nil {
		return sc, err
	}
	if sc.Threshold, err = getFloat("SCORING_THRESHOLD", sc.Threshold); err != nil {
		return sc, err
	}
	if sc.Lookback, err = getInt("SCORING_LOOKBACK", sc.Lookback); err != nil {
		return sc, err
	}
	if sc.MonthlyTarget, err = getInt("SCORING_MONTHLY_TARGET", sc.MonthlyTarget); err != nil {
		return sc, err
	}
	if sc.FlexMilestone, err = getInt("SCORING_FLEX_MILESTONE", sc.FlexMilestone); err != nil {
		return sc, err
	}
	if sc.SpanDays, err = getInt("SCORING_SPAN_DAYS", sc.SpanDays); err != nil {
		return sc, err
	}
	return sc.Normalize(), nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", key, err)
	}
	return n, nil
}

func getFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a number: %w", key, err)
	}
	return f, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a duration: %w", key, err)
	}
	return d, nil
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
