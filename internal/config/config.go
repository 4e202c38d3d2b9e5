package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Auth    AuthConfig
	Redis   RedisConfig
	Store   StoreConfig
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// BackendConfig is the single source of the REST backend origin. Nothing
// else in the codebase may hardcode a host.
type BackendConfig struct {
	BaseURL string
	Timeout time.Duration
}

type AuthConfig struct {
	Issuer       string
	ClientID     string
	ClientSecret string
}

type RedisConfig struct {
	// Addr is optional; when empty the token cache stays in-process.
	Addr string
}

type StoreConfig struct {
	// Path of the local SQLite file holding the organizer-email fallback.
	Path string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", ":8080"),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Backend: BackendConfig{
			BaseURL: getEnv("API_BASE_URL", "http://localhost:5000"),
			Timeout: time.Duration(getEnvInt("API_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Auth: AuthConfig{
			Issuer:       getEnv("AUTH_ISSUER", "http://localhost:8180/realms/event-ticketing"),
			ClientID:     getEnv("AUTH_CLIENT_ID", "ticketly-gateway"),
			ClientSecret: getEnv("AUTH_CLIENT_SECRET", ""),
		},
		Redis: RedisConfig{
			Addr: getEnv("REDIS_ADDR", ""),
		},
		Store: StoreConfig{
			Path: getEnv("STORE_PATH", "ticketly.db"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
