package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends for the durable key-value store
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

type Config struct {
	// Service configuration
	ServiceHost         string
	ServicePort         string
	InternalServicePort string

	// Durable key-value store configuration
	StorageBackend   string
	StorageKey       string
	RedisURL         string
	RedisMaxConns    int
	DatabaseURL      string
	DatabaseMaxConns int

	// Product lookup configuration
	ProductAPIBaseURL string
	ProductAPITimeout time.Duration

	// Logging configuration
	LogLevel string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}

	// Service configuration
	cfg.ServiceHost = os.Getenv("PANTRY_SERVICE_HOST")
	if cfg.ServiceHost == "" {
		cfg.ServiceHost = "0.0.0.0"
	}

	cfg.ServicePort = os.Getenv("PANTRY_SERVICE_PORT")
	if cfg.ServicePort == "" {
		cfg.ServicePort = "8080"
	}

	cfg.InternalServicePort = os.Getenv("PANTRY_INTERNAL_PORT")
	if cfg.InternalServicePort == "" {
		cfg.InternalServicePort = "8081"
	}

	// Storage configuration
	cfg.StorageBackend = os.Getenv("STORAGE_BACKEND")
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = BackendRedis
	}

	cfg.StorageKey = os.Getenv("INVENTORY_STORAGE_KEY")
	if cfg.StorageKey == "" {
		cfg.StorageKey = "inventory"
	}

	cfg.RedisURL = os.Getenv("REDIS_URL")

	redisMaxConnStr := os.Getenv("REDIS_MAX_CONNECTIONS")
	if redisMaxConnStr == "" {
		cfg.RedisMaxConns = 10
	} else {
		redisMaxConns, err := strconv.Atoi(redisMaxConnStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_MAX_CONNECTIONS: %v", err)
		}
		cfg.RedisMaxConns = redisMaxConns
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	maxConnStr := os.Getenv("DATABASE_MAX_CONNECTIONS")
	if maxConnStr == "" {
		cfg.DatabaseMaxConns = 10
	} else {
		maxConns, err := strconv.Atoi(maxConnStr)
		if err != nil {
			return nil, fmt.Errorf("invalid DATABASE_MAX_CONNECTIONS: %v", err)
		}
		cfg.DatabaseMaxConns = maxConns
	}

	// Product lookup configuration
	cfg.ProductAPIBaseURL = os.Getenv("PRODUCT_API_BASE_URL")
	if cfg.ProductAPIBaseURL == "" {
		cfg.ProductAPIBaseURL = "https://world.openfoodfacts.org/api/v2"
	}

	timeoutStr := os.Getenv("PRODUCT_API_TIMEOUT_SECONDS")
	if timeoutStr == "" {
		cfg.ProductAPITimeout = 10 * time.Second
	} else {
		seconds, err := strconv.Atoi(timeoutStr)
		if err != nil || seconds < 1 {
			return nil, fmt.Errorf("invalid PRODUCT_API_TIMEOUT_SECONDS: %s", timeoutStr)
		}
		cfg.ProductAPITimeout = time.Duration(seconds) * time.Second
	}

	// Logging configuration
	cfg.LogLevel = os.Getenv("LOG_LEVEL")
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when STORAGE_BACKEND is redis")
		}
		if !strings.HasPrefix(c.RedisURL, "redis://") && !strings.HasPrefix(c.RedisURL, "rediss://") {
			return fmt.Errorf("REDIS_URL must start with redis:// or rediss://")
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when STORAGE_BACKEND is postgres")
		}
		if !strings.HasPrefix(c.DatabaseURL, "postgresql://") && !strings.HasPrefix(c.DatabaseURL, "postgres://") {
			return fmt.Errorf("DATABASE_URL must start with postgresql:// or postgres://")
		}
	case BackendMemory:
		// No external dependency; state is lost on restart.
	default:
		return fmt.Errorf("STORAGE_BACKEND must be one of: %s, %s, %s", BackendRedis, BackendPostgres, BackendMemory)
	}

	if c.StorageKey == "" {
		return fmt.Errorf("INVENTORY_STORAGE_KEY cannot be empty")
	}

	// Validate numeric ranges
	if c.RedisMaxConns < 1 || c.RedisMaxConns > 100 {
		return fmt.Errorf("REDIS_MAX_CONNECTIONS must be between 1 and 100")
	}

	if c.DatabaseMaxConns < 1 || c.DatabaseMaxConns > 100 {
		return fmt.Errorf("DATABASE_MAX_CONNECTIONS must be between 1 and 100")
	}

	if !strings.HasPrefix(c.ProductAPIBaseURL, "http://") && !strings.HasPrefix(c.ProductAPIBaseURL, "https://") {
		return fmt.Errorf("PRODUCT_API_BASE_URL must start with http:// or https://")
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	validLevel := false
	for _, level := range validLevels {
		if c.LogLevel == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("LOG_LEVEL must be one of: %s", strings.Join(validLevels, ", "))
	}

	return nil
}

// String returns a string representation of the config (for logging, without sensitive data)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Host: %s, Port: %s, InternalPort: %s, Backend: %s, Key: %s, LogLevel: %s, Redis: %s, DB: %s, ProductAPI: %s}",
		c.ServiceHost, c.ServicePort, c.InternalServicePort, c.StorageBackend, c.StorageKey,
		c.LogLevel, maskURL(c.RedisURL), maskURL(c.DatabaseURL), c.ProductAPIBaseURL,
	)
}

// maskURL masks sensitive information in URLs
func maskURL(url string) string {
	if strings.Contains(url, "@") {
		parts := strings.Split(url, "@")
		if len(parts) >= 2 {
			return parts[0][:strings.Index(parts[0], "://")+3] + "***@" + parts[1]
		}
	}
	return url
}
