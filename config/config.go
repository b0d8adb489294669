package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadENV loads variables from .env when GO_ENV is unset or development.
// A missing .env file is not an error.
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}

type EnvironmentVariable struct {
	GO_ENV string
	PORT   int
	// Storage
	DB_DRIVER        string // sqlite or postgres
	DB_PATH          string
	QUESTION_DB_PATH string
	DB_USER_NAME     string
	DB_PASSWORD      string
	DB_NAME          string
	QUESTION_DB_NAME string
	DB_HOST          string
	DB_PORT          string
	DB_SSL_MODE      string
	// Session
	JWT_SECRET  string
	JWT_ISSUER  string
	SESSION_TTL time.Duration
	// Redis
	REDIS_URL string
	// Admin provisioning
	ADMIN_USERNAME  string
	ADMIN_PASSWORD  string
	ADMIN_FULL_NAME string
	// Operations
	LOG_LEVEL           string
	CRON_ENABLED        bool
	ALLOWED_ORIGINS     string
	RATE_LIMIT_REQUESTS int
}

// Get reads the server configuration. JWT_SECRET is required.
func Get() (*EnvironmentVariable, error) {
	env, err := read()
	if err != nil {
		return nil, err
	}
	if env.JWT_SECRET == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	return env, nil
}

// GetForCLI reads the configuration for one-shot tools that never sign
// sessions, so JWT_SECRET may be empty
func GetForCLI() (*EnvironmentVariable, error) {
	return read()
}

func read() (*EnvironmentVariable, error) {
	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	driver := strings.ToLower(getOr("DB_DRIVER", "sqlite"))
	if driver != "sqlite" && driver != "postgres" {
		return nil, fmt.Errorf("unknown DB_DRIVER %q (want sqlite or postgres)", driver)
	}

	ttl, err := time.ParseDuration(getOr("SESSION_TTL", "12h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}

	rateLimit, err := strconv.Atoi(getOr("RATE_LIMIT_REQUESTS", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REQUESTS: %w", err)
	}

	envVariables := &EnvironmentVariable{
		GO_ENV:           os.Getenv("GO_ENV"),
		PORT:             port,
		DB_DRIVER:        driver,
		DB_PATH:          getOr("DB_PATH", "academic.db"),
		QUESTION_DB_PATH: getOr("QUESTION_DB_PATH", "questions.db"),
		DB_USER_NAME:     os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:      os.Getenv("DB_PASSWORD"),
		DB_NAME:          os.Getenv("DB_NAME"),
		QUESTION_DB_NAME: getOr("QUESTION_DB_NAME", "questions"),
		DB_HOST:          getOr("DB_HOST", "localhost"),
		DB_PORT:          getOr("DB_PORT", "5432"),
		DB_SSL_MODE:      getOr("DB_SSL_MODE", "disable"),
		// Session
		JWT_SECRET:  os.Getenv("JWT_SECRET"),
		JWT_ISSUER:  getOr("JWT_ISSUER", "form-app"),
		SESSION_TTL: ttl,
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// Admin
		ADMIN_USERNAME:  os.Getenv("ADMIN_USERNAME"),
		ADMIN_PASSWORD:  os.Getenv("ADMIN_PASSWORD"),
		ADMIN_FULL_NAME: getOr("ADMIN_FULL_NAME", "Administrator"),
		// Operations
		LOG_LEVEL:           getOr("LOG_LEVEL", "info"),
		CRON_ENABLED:        os.Getenv("CRON_ENABLED") != "false",
		ALLOWED_ORIGINS:     os.Getenv("ALLOWED_ORIGINS"),
		RATE_LIMIT_REQUESTS: rateLimit,
	}

	return envVariables, nil
}

func getOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
