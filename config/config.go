package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Browser BrowserConfig
	Scraper ScraperConfig
	Log     LogConfig
}

// BrowserConfig controls the Rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Stealth injects anti-bot-detection JS into every new page.
	Stealth bool // default: true
}

// ScraperConfig controls scraping behavior.
type ScraperConfig struct {
	// BaseURL is the bank's login host.
	BaseURL string // default: "https://login.bankhapoalim.co.il"

	// WaitTimeout is the deadline for selector and app-state waits.
	WaitTimeout time.Duration // default: 10s

	// RedirectTimeout is the deadline for the post-login redirect.
	RedirectTimeout time.Duration // default: 15s

	// PollInterval is the polling cadence of all condition waits.
	PollInterval time.Duration // default: 100ms

	// BlockedResourceTypes lists resource types aborted before they load.
	// default: ["Image", "Stylesheet", "Font", "Media"]
	BlockedResourceTypes []string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless:   envBoolOr("HAPOALIM_HEADLESS", true),
			NoSandbox:  envBoolOr("HAPOALIM_NO_SANDBOX", false),
			BrowserBin: os.Getenv("HAPOALIM_BROWSER_BIN"),
			Stealth:    envBoolOr("HAPOALIM_STEALTH", true),
		},
		Scraper: ScraperConfig{
			BaseURL:         envOr("HAPOALIM_BASE_URL", "https://login.bankhapoalim.co.il"),
			WaitTimeout:     envDurationOr("HAPOALIM_WAIT_TIMEOUT", 10*time.Second),
			RedirectTimeout: envDurationOr("HAPOALIM_REDIRECT_TIMEOUT", 15*time.Second),
			PollInterval:    envDurationOr("HAPOALIM_POLL_INTERVAL", 100*time.Millisecond),
			BlockedResourceTypes: envSliceOr("HAPOALIM_BLOCKED_RESOURCES", []string{
				"Image", "Stylesheet", "Font", "Media",
			}),
		},
		Log: LogConfig{
			Level:  envOr("HAPOALIM_LOG_LEVEL", "info"),
			Format: envOr("HAPOALIM_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
