package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port   string
	DBPath string

	JWTSecret     string
	AdminPassword string

	GaugeBaseURL   string
	GaugeCacheTTL  time.Duration
	RoutingBaseURL string
	// RouteLongTTL is the ordinary drive-time cache window.
	RouteLongTTL time.Duration
	// RouteShortTTL is the window used under high or dangerous water,
	// when road closures can invalidate a route quickly.
	RouteShortTTL time.Duration

	// RateLimit is requests per minute per IP on the plan endpoints.
	RateLimit int
}

// Load reads configuration from the environment, with a .env file as
// fallback for local development.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	return &Config{
		Port:           getEnv("PORT", ":8080"),
		DBPath:         getEnv("DB_PATH", "./data/riverplan.db"),
		JWTSecret:      getEnv("JWT_SECRET", "change-me-in-production"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "change-me-in-production"),
		GaugeBaseURL:   getEnv("GAUGE_BASE_URL", ""),
		GaugeCacheTTL:  getDuration("GAUGE_CACHE_TTL", time.Hour),
		RoutingBaseURL: getEnv("ROUTING_BASE_URL", ""),
		RouteLongTTL:   getDuration("ROUTE_LONG_TTL", 6*time.Hour),
		RouteShortTTL:  getDuration("ROUTE_SHORT_TTL", 10*time.Minute),
		RateLimit:      getInt("RATE_LIMIT", 60),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid duration for %s: %q, using %v", key, v, fallback)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Invalid integer for %s: %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
