package config

import (
	"os"
	"time"
)

type AppConfig struct {
	HTTPAddr   string
	RedisAddr  string
	RedisPass  string
	SessionTTL time.Duration

	// Initial admin seeded when the admins table is empty.
	SeedAdminUsername string
	SeedAdminPassword string
	SeedAdminFullName string
}

func Load() AppConfig {
	return AppConfig{
		HTTPAddr:   getEnv("HTTP_ADDR", ":8041"),
		RedisAddr:  getEnv("REDIS_ADDR", "redis:6379"),
		RedisPass:  getEnv("REDIS_PASS", ""),
		SessionTTL: getEnvDuration("SESSION_TTL", 12*time.Hour),

		SeedAdminUsername: getEnv("SEED_ADMIN_USERNAME", "admin"),
		SeedAdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
		SeedAdminFullName: getEnv("SEED_ADMIN_FULLNAME", "System Administrator"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
