package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultBackendURL = "https://backend.easi.ac.ug"

type Config struct {
	Port    string
	GinMode string
	SiteURL string
	// Remote backend (contact, newsletter, resources)
	BackendURL     string
	BackendTimeout time.Duration // 0 = transport default
	// Site content
	ContentPath string // empty = embedded web/content/site.yaml
	NoticeTTL   time.Duration
	// CORS for the JSON API
	AllowedOrigins []string
	// CSRF cookie is sent with the Secure attribute
	CookieSecure bool
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitFormThreshold   int
	RateLimitGlobalThreshold int
	// How long a form instance stays locked while its submission is pending
	InflightTTL time.Duration
}

func LoadConfig() (*Config, error) {
	// Load .env file (local only; ignored when the file does not exist)
	_ = godotenv.Load()

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),
		SiteURL: strings.TrimRight(getEnv("SITE_URL", "http://localhost:8080"), "/"),
		// Trim trailing slash so paths never produce a double slash (e.g. .ug//contact)
		BackendURL:     strings.TrimRight(getEnv("BACKEND_URL", defaultBackendURL), "/"),
		BackendTimeout: getEnvDuration("BACKEND_TIMEOUT", 0),
		ContentPath:    getEnv("CONTENT_PATH", ""),
		NoticeTTL:      getEnvDuration("NOTICE_TTL", 6*time.Second),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "https://easi.ac.ug,https://www.easi.ac.ug")),
		CookieSecure:   getEnvBool("COOKIE_SECURE", true),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),   // 1 minute window
		RateLimitFormThreshold:   getEnvInt("RATE_LIMIT_FORM_THRESHOLD", 5),    // 5 form posts per window
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 300), // 300 requests per window
		InflightTTL:              getEnvDuration("INFLIGHT_TTL", 2*time.Minute),
	}

	if cfg.BackendURL == "" {
		log.Println("WARNING: BACKEND_URL is empty. Falling back to " + defaultBackendURL)
		cfg.BackendURL = defaultBackendURL
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting and form locks will be in-memory.")
	}

	return cfg, nil
}

// IsProduction reports whether gin runs in release mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// RateLimitWindow returns the rate limit window as a duration
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("6s", "2m") or a bare number of seconds
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimRight(strings.TrimSpace(part), "/"); part != "" {
			out = append(out, part)
		}
	}
	return out
}
