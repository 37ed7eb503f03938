// Package config provides configuration for the server
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the server
type Config struct {
	Port       int    // порт HTTP API
	DBPath     string // путь к файлу SQLite
	JWTSecret  string // секрет подписи токенов, обязателен
	SeedSecret string // секрет заголовка X-Admin-Secret, обязателен
	LogLevel   string // debug | info | warn | error
}

// Load reads configuration from environment variables.
// Отсутствие секретов — фатальная ошибка конфигурации: сервер не должен
// подняться с дефолтным секретом.
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	cfg.JWTSecret = jwtSecret

	seedSecret := os.Getenv("ADMIN_SEED_SECRET")
	if seedSecret == "" {
		return nil, fmt.Errorf("ADMIN_SEED_SECRET is required")
	}
	cfg.SeedSecret = seedSecret

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8083" // default port
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}
	cfg.Port = port

	cfg.DBPath = os.Getenv("DB_PATH")
	if cfg.DBPath == "" {
		cfg.DBPath = "maktab.db"
	}

	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
