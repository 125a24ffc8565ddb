package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/azure/market-research-agent/internal/models"
)

// Search interval bounds, in seconds
const (
	MinSearchInterval     = 60
	MaxSearchInterval     = 3600
	DefaultSearchInterval = 300
)

// DefaultTavilyEndpoint is the search API endpoint used when none is configured
const DefaultTavilyEndpoint = "https://api.tavily.com/search"

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port  string
	Debug bool

	// Research configuration
	TavilyAPIKey        string
	TavilyEndpoint      string
	SearchInterval      int // seconds, clamped to [60, 3600]
	Industry            string
	AutoStart           bool
	SearchRatePerMinute int

	// Azure Storage configuration (report archive)
	StorageAccount   string
	StorageContainer string

	// Notification configuration
	TeamsWebhookURL   string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string

	// NATS alert publishing
	NATSURL     string
	NATSSubject string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		TavilyAPIKey:        getEnv("TAVILY_API_KEY", ""),
		TavilyEndpoint:      getEnv("TAVILY_ENDPOINT", DefaultTavilyEndpoint),
		SearchInterval:      ClampInterval(getIntEnv("SEARCH_INTERVAL", DefaultSearchInterval)),
		Industry:            getEnv("INDUSTRY", "technology"),
		AutoStart:           getBoolEnv("AUTO_START", false),
		SearchRatePerMinute: getIntEnv("SEARCH_RATE_PER_MINUTE", 30),

		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "market-reports"),

		TeamsWebhookURL:   getEnv("TEAMS_WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),

		NATSURL:     getEnv("NATS_URL", ""),
		NATSSubject: getEnv("NATS_SUBJECT", "market.alerts"),
	}

	// Validate required configuration
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if _, ok := models.FindIndustry(models.Industries, c.Industry); !ok {
		return fmt.Errorf("INDUSTRY must be one of: %s", strings.Join(industryIDs(), ", "))
	}

	if c.SearchRatePerMinute <= 0 {
		return fmt.Errorf("SEARCH_RATE_PER_MINUTE must be positive")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// Interval returns the configured search interval as a duration
func (c *Config) Interval() time.Duration {
	return time.Duration(ClampInterval(c.SearchInterval)) * time.Second
}

// ClampInterval bounds a search interval in seconds to [60, 3600]
func ClampInterval(seconds int) int {
	if seconds < MinSearchInterval {
		return MinSearchInterval
	}
	if seconds > MaxSearchInterval {
		return MaxSearchInterval
	}
	return seconds
}

func industryIDs() []string {
	ids := make([]string, 0, len(models.Industries))
	for _, industry := range models.Industries {
		ids = append(ids, industry.ID)
	}
	return ids
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
