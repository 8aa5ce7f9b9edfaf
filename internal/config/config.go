package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

type Config struct {
	// Server
	Host        string
	Port        int
	Debug       bool
	APIPrefix   string
	CORSOrigins string
	// Leantime
	LeantimeURL      string
	LeantimeAPIKey   string
	LeantimeUsername string
	LeantimePassword string
	LeantimeTimeout  time.Duration
	// Dispatch
	BatchConcurrency int
	// Logging
	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	return &Config{
		Host:        getEnv("MCP_HOST", "0.0.0.0"),
		Port:        getEnvInt("MCP_PORT", 8000),
		Debug:       strings.EqualFold(getEnv("MCP_DEBUG", "false"), "true"),
		APIPrefix:   getEnv("MCP_API_PREFIX", "/api/v1"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		// Leantime
		LeantimeURL:      getEnv("LEANTIME_URL", ""),
		LeantimeAPIKey:   getEnv("LEANTIME_API_KEY", ""),
		LeantimeUsername: getEnv("LEANTIME_USERNAME", ""),
		LeantimePassword: getEnv("LEANTIME_PASSWORD", ""),
		LeantimeTimeout:  getEnvDuration("LEANTIME_TIMEOUT", DefaultLeantimeTimeout),
		// Dispatch
		BatchConcurrency: getEnvInt("BATCH_CONCURRENCY", 1),
		// Logging (empty dir = stdout only)
		LogDir:      getEnv("LOG_DIR", ""),
		LogMaxFiles: getEnvInt("LOG_MAX_FILES", DefaultLogMaxFiles),
	}
}

// Validate implements validation.Validatable. LEANTIME_URL may be empty so the
// server can start and list tools; tool calls then fail until it is set.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.LeantimeURL, is.URL),
		validation.Field(&c.APIPrefix, validation.When(c.APIPrefix != "",
			validation.By(func(interface{}) error {
				if !strings.HasPrefix(c.APIPrefix, "/") || c.APIPrefix == "/" {
					return validation.NewError("validation_api_prefix", "must start with / and not be the root")
				}
				return nil
			}),
		)),
		validation.Field(&c.BatchConcurrency, validation.Min(1), validation.Max(MaxBatchConcurrency)),
		validation.Field(&c.LeantimeTimeout, validation.Min(time.Second)),
		validation.Field(&c.LogMaxFiles, validation.Min(1)),
	)
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// getEnvDuration accepts Go durations ("45s") or plain seconds ("45").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
