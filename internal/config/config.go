package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL     string
	HTTPPort        string
	LogLevel        string
	JWTSecret       []byte
	JWTTTL          time.Duration
	CipherCacheSize int
}

// Load reads .env when present, then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() (Config, error) {
	cfg := Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		HTTPPort:        getenv("HTTP_PORT", "8080"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		JWTSecret:       []byte(os.Getenv("JWT_SECRET")),
		JWTTTL:          24 * time.Hour,
		CipherCacheSize: 128,
	}
	if len(cfg.JWTSecret) == 0 {
		return cfg, errors.New("config: JWT_SECRET is empty")
	}
	if s := os.Getenv("JWT_EXPIRES_IN"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return cfg, fmt.Errorf("config: JWT_EXPIRES_IN: %w", err)
		}
		if d <= 0 {
			return cfg, fmt.Errorf("config: JWT_EXPIRES_IN must be positive, got %s", d)
		}
		cfg.JWTTTL = d
	}
	if s := os.Getenv("CIPHER_CACHE_SIZE"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return cfg, fmt.Errorf("config: CIPHER_CACHE_SIZE must be a positive integer, got %q", s)
		}
		cfg.CipherCacheSize = n
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
