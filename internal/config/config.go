package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Session backends supported by the console.
const (
	SessionBackendCookie = "cookie"
	SessionBackendRedis  = "redis"
	SessionBackendGorm   = "gorm"
)

type Config struct {
	ListenAddr string

	// Upstream API server
	APIBaseURL      string
	UpstreamTimeout time.Duration

	// Query cache
	QueryStaleTime  time.Duration
	QueryRetry      int
	QueryRetryDelay time.Duration

	// Sessions
	SessionBackend string
	SessionSecret  string
	SessionMaxAge  int
	RedisHost      string
	RedisPort      string

	// Database (gorm session backend only)
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	UpgradePath string

	GinMode   string
	LogLevel  string
	LogFormat string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:4000/api"),
		UpstreamTimeout: getEnvDuration("UPSTREAM_TIMEOUT", 15*time.Second),
		QueryStaleTime:  getEnvDuration("QUERY_STALE_TIME", 5*time.Minute),
		QueryRetry:      getEnvInt("QUERY_RETRY", 1),
		QueryRetryDelay: getEnvDuration("QUERY_RETRY_DELAY", 500*time.Millisecond),
		SessionBackend:  getEnv("SESSION_BACKEND", SessionBackendRedis),
		SessionSecret:   getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		SessionMaxAge:   getEnvInt("SESSION_MAX_AGE", 86400*7),
		RedisHost:       getEnv("REDIS_HOST", "localhost"),
		RedisPort:       getEnv("REDIS_PORT", "6379"),
		DBDriver:        getEnv("DB_DRIVER", "mysql"),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBUser:          getEnv("DB_USER", "flock"),
		DBPassword:      getEnv("DB_PASSWORD", "flockpassword"),
		DBName:          getEnv("DB_NAME", "flock_console"),
		UpgradePath:     getEnv("UPGRADE_PATH", "/settings/subscription"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "auto"),
	}
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}
