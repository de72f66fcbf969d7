package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	MySQLDSN       string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	StorageBaseURL string
	StorageBucket  string
	StorageKey     string
	AdminToken     string
	PlaceholderURL string
	SeedWorkers    int
	CacheTTL       time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ":9100"),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/pousada?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		StorageBaseURL: env("STORAGE_BASE_URL", ""),
		StorageBucket:  env("STORAGE_BUCKET", "pousada-images"),
		StorageKey:     env("STORAGE_KEY", ""),
		AdminToken:     env("ADMIN_TOKEN", ""),
		PlaceholderURL: env("PLACEHOLDER_URL", "/placeholder.svg"),
		SeedWorkers:    atoi("SEED_WORKERS", 4),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.AdminToken == "" {
		log.Warn().Msg("ADMIN_TOKEN is empty; admin routes are disabled")
	}
	if c.StorageBaseURL == "" {
		log.Warn().Msg("STORAGE_BASE_URL is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
