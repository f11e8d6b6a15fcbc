package config

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/Vedansh2005/Indiamart-Scraper-final/pkg/errors"
)

// Config represents the application configuration
type Config struct {
	// Run parameters (CLI flags)
	Keyword    string
	OutputFile string
	MinLeads   int
	Headless   bool

	// Login
	MobileNumber string
	BuyerURL     string

	// Retry ceilings and delays
	LoginAttempts    int
	LoginRetryDelay  time.Duration
	SearchAttempts   int
	SearchRetryDelay time.Duration
	EnrichAttempts   int
	EnrichRetryDelay time.Duration

	// Wait budgets
	PageLoadTimeout time.Duration
	ElementTimeout  time.Duration
	ShortTimeout    time.Duration
	PagePause       time.Duration
	ExpandPause     time.Duration

	// Loop safety valves
	MaxExpandClicks int
	MaxPages        int

	// Diagnostic artifacts
	ScreenshotDir string
	LogDir        string

	// Optional lead feed (disabled when RedisAddr is empty)
	RedisAddr       string
	RedisDB         int
	RedisStream     string
	RedisStreamMax  int

	// Environment
	Environment string
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	redisStreamMax, _ := strconv.Atoi(getEnv("REDIS_STREAM_MAX_LENGTH", "500"))
	loginAttempts, _ := strconv.Atoi(getEnv("LOGIN_ATTEMPTS", "3"))
	searchAttempts, _ := strconv.Atoi(getEnv("SEARCH_ATTEMPTS", "3"))
	enrichAttempts, _ := strconv.Atoi(getEnv("ENRICH_ATTEMPTS", "2"))
	maxExpandClicks, _ := strconv.Atoi(getEnv("MAX_EXPAND_CLICKS", "30"))
	maxPages, _ := strconv.Atoi(getEnv("MAX_PAGES", "25"))

	return &Config{
		Keyword:    "Cricket Ball",
		OutputFile: "leads.csv",
		MinLeads:   50,
		Headless:   false,

		MobileNumber: getEnv("INDIAMART_MOBILE", ""),
		BuyerURL:     getEnv("INDIAMART_BUYER_URL", "https://buyer.indiamart.com/"),

		LoginAttempts:    loginAttempts,
		LoginRetryDelay:  durationEnv("LOGIN_RETRY_DELAY_SECONDS", 2*time.Second),
		SearchAttempts:   searchAttempts,
		SearchRetryDelay: durationEnv("SEARCH_RETRY_DELAY_SECONDS", 2*time.Second),
		EnrichAttempts:   enrichAttempts,
		EnrichRetryDelay: durationEnv("ENRICH_RETRY_DELAY_SECONDS", 1*time.Second),

		PageLoadTimeout: durationEnv("PAGE_LOAD_TIMEOUT_SECONDS", 20*time.Second),
		ElementTimeout:  durationEnv("ELEMENT_TIMEOUT_SECONDS", 10*time.Second),
		ShortTimeout:    durationEnv("SHORT_TIMEOUT_SECONDS", 5*time.Second),
		PagePause:       durationEnv("PAGE_PAUSE_SECONDS", 2*time.Second),
		ExpandPause:     durationEnv("EXPAND_PAUSE_SECONDS", 4*time.Second),

		MaxExpandClicks: maxExpandClicks,
		MaxPages:        maxPages,

		ScreenshotDir: getEnv("SCREENSHOT_DIR", "screenshots"),
		LogDir:        getEnv("LOG_DIR", "logs"),

		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisDB:        redisDB,
		RedisStream:    getEnv("REDIS_STREAM", "leads"),
		RedisStreamMax: redisStreamMax,

		Environment: getEnv("SCRAPER_ENVIRONMENT", "development"),
	}
}

// RegisterFlags binds the run parameters to CLI flags. Both long and short
// spellings are accepted.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.Keyword, "keyword", c.Keyword, "Product keyword to search for")
	fs.StringVar(&c.Keyword, "k", c.Keyword, "Product keyword to search for (shorthand)")
	fs.StringVar(&c.OutputFile, "output", c.OutputFile, "Output CSV file name")
	fs.StringVar(&c.OutputFile, "o", c.OutputFile, "Output CSV file name (shorthand)")
	fs.IntVar(&c.MinLeads, "min-leads", c.MinLeads, "Minimum number of leads to collect")
	fs.IntVar(&c.MinLeads, "m", c.MinLeads, "Minimum number of leads to collect (shorthand)")
	fs.BoolVar(&c.Headless, "headless", c.Headless, "Run in headless mode (no browser UI)")
	fs.BoolVar(&c.Headless, "H", c.Headless, "Run in headless mode (shorthand)")
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.Keyword == "" {
		return errors.NewConfiguration("keyword must not be empty", nil)
	}
	if c.OutputFile == "" {
		return errors.NewConfiguration("output file must not be empty", nil)
	}
	if c.MinLeads < 1 {
		return errors.NewConfiguration("min-leads must be at least 1", nil)
	}
	if c.LoginAttempts < 1 || c.SearchAttempts < 1 || c.EnrichAttempts < 1 {
		return errors.NewConfiguration("retry attempt ceilings must be at least 1", nil)
	}
	return nil
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// durationEnv reads a whole-second duration from the environment
func durationEnv(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}
