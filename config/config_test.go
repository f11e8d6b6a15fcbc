package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, "Cricket Ball", config.Keyword)
	assert.Equal(t, "leads.csv", config.OutputFile)
	assert.Equal(t, 50, config.MinLeads)
	assert.False(t, config.Headless)
	assert.Equal(t, "https://buyer.indiamart.com/", config.BuyerURL)
	assert.Equal(t, 3, config.LoginAttempts)
	assert.Equal(t, 2*time.Second, config.LoginRetryDelay)
	assert.Equal(t, 2, config.EnrichAttempts)
	assert.Equal(t, 1*time.Second, config.EnrichRetryDelay)
	assert.Equal(t, 30, config.MaxExpandClicks)
	assert.Equal(t, 2*time.Second, config.PagePause)
	assert.Equal(t, 4*time.Second, config.ExpandPause)
	assert.Equal(t, "", config.RedisAddr)

	// Test with environment variables
	os.Setenv("INDIAMART_MOBILE", "9876543210")
	os.Setenv("LOGIN_ATTEMPTS", "5")
	os.Setenv("ENRICH_RETRY_DELAY_SECONDS", "3")
	os.Setenv("MAX_EXPAND_CLICKS", "10")
	os.Setenv("REDIS_ADDR", "redis.example.com:6379")

	config = LoadConfig()
	assert.Equal(t, "9876543210", config.MobileNumber)
	assert.Equal(t, 5, config.LoginAttempts)
	assert.Equal(t, 3*time.Second, config.EnrichRetryDelay)
	assert.Equal(t, 10, config.MaxExpandClicks)
	assert.Equal(t, "redis.example.com:6379", config.RedisAddr)

	// Clean up
	os.Unsetenv("INDIAMART_MOBILE")
	os.Unsetenv("LOGIN_ATTEMPTS")
	os.Unsetenv("ENRICH_RETRY_DELAY_SECONDS")
	os.Unsetenv("MAX_EXPAND_CLICKS")
	os.Unsetenv("REDIS_ADDR")
}

func TestRegisterFlags(t *testing.T) {
	config := LoadConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	config.RegisterFlags(fs)

	err := fs.Parse([]string{"-k", "Leather Gloves", "-o", "out.csv", "-m", "5", "-H"})
	assert.NoError(t, err)
	assert.Equal(t, "Leather Gloves", config.Keyword)
	assert.Equal(t, "out.csv", config.OutputFile)
	assert.Equal(t, 5, config.MinLeads)
	assert.True(t, config.Headless)
}

func TestValidate(t *testing.T) {
	config := LoadConfig()
	assert.NoError(t, config.Validate())

	config.Keyword = ""
	assert.Error(t, config.Validate())

	config = LoadConfig()
	config.MinLeads = 0
	assert.Error(t, config.Validate())

	config = LoadConfig()
	config.OutputFile = ""
	assert.Error(t, config.Validate())
}
