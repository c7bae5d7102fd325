package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/muss3ab/tsh/pkg/database"

	"go.uber.org/zap"
)

type Config struct {
	Port string
	Env  string

	DB    DB
	JWT   JWT
	Redis Redis
	Kafka Kafka
}

type DB struct {
	database.Config
}

type JWT struct {
	Secret    string
	Issuer    string
	Audience  string
	AccessTTL time.Duration
}

type Redis struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

type Kafka struct {
	Enabled bool
	Brokers []string
	Topic   string
}

func Load(log *zap.Logger) *Config {
	cfg := &Config{
		Port: getEnv("APP_PORT", log),
		Env:  envDefault("ENV", "prod"),
		DB: DB{
			Config: database.Config{
				Host:     getEnv("DB_HOST", log),
				Port:     getEnv("DB_PORT", log),
				User:     getEnv("DB_USER", log),
				Password: getEnv("DB_PASSWORD", log),
				Name:     getEnv("DB_NAME", log),
				SSLMode:  getEnv("DB_SSLMODE", log),
			},
		},
		JWT: JWT{
			Secret:    getEnv("JWT_SECRET", log),
			Issuer:    envDefault("JWT_ISSUER", "tsh"),
			Audience:  envDefault("JWT_AUDIENCE", "tsh-api"),
			AccessTTL: durationDefault("JWT_ACCESS_TTL", 24*time.Hour),
		},
		Redis: Redis{
			Enabled:  envDefault("REDIS_ENABLED", "false") == "true",
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       atoiDefault(os.Getenv("REDIS_DB"), 0),
		},
		Kafka: Kafka{
			Brokers: splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			Topic:   envDefault("KAFKA_TOPIC_ORDERS", "order.placed"),
		},
	}
	cfg.Kafka.Enabled = len(cfg.Kafka.Brokers) > 0

	if cfg.Redis.Enabled && cfg.Redis.Addr == "" {
		log.Error("REDIS_ENABLED is true but REDIS_ADDR is empty")
		panic("missing required environment variable: REDIS_ADDR")
	}
	return cfg
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("required environment variable is not set", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func envDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func durationDefault(key string, def time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return def
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return def
	}
	return d
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
