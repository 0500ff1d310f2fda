package config

import (
	"os"
	"strings"
	"time"
)

// Server captures process-level configuration.
type Server struct {
	Addr          string
	JWTSigningKey string
	TokenTTL      time.Duration

	// SnapshotBackend selects where the session snapshot slot lives:
	// "memory", "file", or "redis".
	SnapshotBackend string
	SnapshotDir     string

	// AuthLatency adds a fixed pause to backend calls, standing in for a
	// real identity-service round trip. Zero disables it.
	AuthLatency time.Duration

	PostgresURL string
	Redis       RedisConfig
	Kafka       KafkaConfig
}

// RedisConfig holds connection settings for the redis snapshot backend.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds the audit trail broker settings. Empty brokers means
// the trail stays in memory.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	cfg := Server{
		Addr:            getenv("KAZIID_ADDR", ":8080"),
		SnapshotBackend: getenv("KAZIID_SNAPSHOT_BACKEND", "memory"),
		SnapshotDir:     getenv("KAZIID_SNAPSHOT_DIR", "."),
		TokenTTL:        duration("KAZIID_TOKEN_TTL", time.Hour),
		AuthLatency:     duration("KAZIID_AUTH_LATENCY", 0),
		PostgresURL:     os.Getenv("KAZIID_POSTGRES_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("KAZIID_REDIS_URL"),
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Topic: getenv("KAZIID_KAFKA_TOPIC", "kaziid.session.audit"),
		},
	}

	if brokers := os.Getenv("KAZIID_KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = strings.Split(brokers, ",")
	}

	cfg.JWTSigningKey = os.Getenv("JWT_SIGNING_KEY")
	if cfg.JWTSigningKey == "" {
		// Use a default for development - should be overridden in production
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
