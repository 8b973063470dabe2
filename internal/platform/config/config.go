package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process-level configuration. FromEnv builds it from
// environment variables so main stays lean.
type Server struct {
	Addr           string
	DatabaseURL    string
	AdminTokenHash string
	JWTSigningKey  string
	Redis          RedisConfig
	Kafka          KafkaConfig
	RequestTimeout time.Duration
}

// RedisConfig configures the optional Redis profile cache.
// An empty URL disables Redis entirely.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ProfileTTL   time.Duration
}

// KafkaConfig configures the optional audit event sink.
// No brokers means audit events stay on the local store only.
type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
}

func FromEnv() Server {
	cfg := Server{
		Addr:           getEnv("PEOPLEDESK_ADDR", ":8080"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		AdminTokenHash: os.Getenv("ADMIN_TOKEN_HASH"),
		JWTSigningKey:  os.Getenv("JWT_SIGNING_KEY"),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 30*time.Second),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			ProfileTTL:   getDuration("REDIS_PROFILE_TTL", 5*time.Minute),
		},
		Kafka: KafkaConfig{
			AuditTopic: getEnv("KAFKA_AUDIT_TOPIC", "peopledesk.audit"),
		},
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.Kafka.Brokers = splitAndTrim(brokers)
	}
	if cfg.JWTSigningKey == "" {
		// Development fallback - must be overridden in production.
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
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
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			part := s[start:i]
			for len(part) > 0 && part[0] == ' ' {
				part = part[1:]
			}
			for len(part) > 0 && part[len(part)-1] == ' ' {
				part = part[:len(part)-1]
			}
			if part != "" {
				out = append(out, part)
			}
			start = i + 1
		}
	}
	return out
}
