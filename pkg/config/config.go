package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alimgiray/mrscope/internal/apperr"
	"github.com/joho/godotenv"
)

const (
	AuthModePrivateToken = "private_token"
	AuthModeOAuth        = "oauth"
)

type Config struct {
	Server ServerConfig
	GitLab GitLabConfig
	Scan   ScanConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port         string
	Mode         string
	ReadTimeout  int
	WriteTimeout int
}

type GitLabConfig struct {
	APIURL         string
	Token          string
	AuthMode       string
	RequestTimeout int
	RepositoryURL  string
}

type ScanConfig struct {
	Workers           int
	JobWorkers        int
	DefaultLimit      int
	DefaultMaxAgeDays int
	ScheduleHour      int // hour of day for the daily scan, -1 disables it
}

type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "5000"),
			Mode:         getEnv("GIN_MODE", "release"),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 0),
		},
		GitLab: GitLabConfig{
			APIURL:         strings.TrimRight(getEnv("GITLAB_API_URL", "https://gitlab.com/api/v4"), "/"),
			Token:          getEnv("GITLAB_TOKEN", ""),
			AuthMode:       getEnv("GITLAB_AUTH_MODE", AuthModePrivateToken),
			RequestTimeout: getEnvAsInt("GITLAB_REQUEST_TIMEOUT", 30),
			// PROJECT_ID is the older name for the same setting
			RepositoryURL: getEnv("REPOSITORY_URL", getEnv("PROJECT_ID", "")),
		},
		Scan: ScanConfig{
			Workers:           getEnvAsInt("SCAN_WORKERS", 4),
			JobWorkers:        getEnvAsInt("SCAN_JOB_WORKERS", 1),
			DefaultLimit:      getEnvAsInt("DEFAULT_LIMIT", 100),
			DefaultMaxAgeDays: getEnvAsInt("DEFAULT_MAX_AGE_DAYS", 30),
			ScheduleHour:      getEnvAsInt("SCAN_SCHEDULE_HOUR", -1),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// Validate checks the settings every GitLab call depends on.
func (c *Config) Validate() error {
	if c.GitLab.Token == "" {
		return fmt.Errorf("%w: GITLAB_TOKEN is not set", apperr.ErrConfiguration)
	}
	switch c.GitLab.AuthMode {
	case AuthModePrivateToken, AuthModeOAuth:
	default:
		return fmt.Errorf("%w: unknown GITLAB_AUTH_MODE %q", apperr.ErrConfiguration, c.GitLab.AuthMode)
	}
	if c.Scan.Workers < 1 {
		return fmt.Errorf("%w: SCAN_WORKERS must be positive", apperr.ErrConfiguration)
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// RequestTimeout returns the per-request timeout for GitLab calls
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.GitLab.RequestTimeout) * time.Second
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
