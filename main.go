package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Vedansh2005/Indiamart-Scraper-final/config"
	"github.com/Vedansh2005/Indiamart-Scraper-final/internal/browser"
	"github.com/Vedansh2005/Indiamart-Scraper-final/internal/scraper"
	"github.com/Vedansh2005/Indiamart-Scraper-final/logger"
	"github.com/Vedansh2005/Indiamart-Scraper-final/pkg/errors"
	"github.com/Vedansh2005/Indiamart-Scraper-final/services/publisher"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Load configuration and bind CLI flags
	cfg := config.LoadConfig()
	fs := flag.NewFlagSet("indiamart-scraper", flag.ExitOnError)
	cfg.RegisterFlags(fs)
	fs.Parse(os.Args[1:])

	// Initialize logger with a per-run log file
	logPath, err := logger.InitWithFile(cfg.LogDir)
	if err != nil {
		logger.Init()
		logger.Warn("Could not open log file, console only: %v", err)
	}
	log := logger.Default

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("keyword", cfg.Keyword).
		Str("output", cfg.OutputFile).
		Int("min_leads", cfg.MinLeads).
		Bool("headless", cfg.Headless).
		Str("environment", cfg.Environment).
		Msg("Starting lead harvest")
	if logPath != "" {
		logger.Info("Run log: %s", logPath)
	}

	// Interrupt unwinds to cleanup and export of whatever was collected
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	driver, err := browser.NewChrome(ctx, cfg.Headless)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to start browser")
	}
	defer driver.Close()

	pub := initPublisher(ctx, cfg)
	if pub != nil {
		defer pub.Close()
	}

	session := scraper.NewSession(ctx, cfg, driver, newStdinCredentials(cfg), pub)

	runErr := session.Run()
	session.Cleanup()

	switch {
	case runErr == nil:
		log.Info().Int("leads", session.Store().Len()).Msg("Harvest complete")
	case errors.IsCancelled(runErr):
		log.Info().Int("leads", session.Store().Len()).Msg("Harvest interrupted, exporting partial results")
	default:
		log.Error().Err(runErr).Int("leads", session.Store().Len()).Msg("Harvest ended with error, exporting partial results")
	}

	// Export runs regardless of how the harvest ended
	count, exportErr := session.Store().Export(cfg.OutputFile)
	if exportErr != nil {
		log.Error().Err(exportErr).Str("file", cfg.OutputFile).Msg("Export failed")
		return
	}
	log.Info().Int("leads", count).Str("file", cfg.OutputFile).Msg("Leads exported")
}

// initPublisher connects the optional Redis lead feed. A missing or
// unreachable Redis disables the feed rather than failing the run.
func initPublisher(ctx context.Context, cfg *config.Config) publisher.Publisher {
	if cfg.RedisAddr == "" {
		return nil
	}

	pub := publisher.NewRedisPublisher(cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream, cfg.RedisStreamMax)
	if err := pub.Ping(ctx); err != nil {
		logger.Warn("Redis feed unavailable at %s, continuing without it: %v", cfg.RedisAddr, err)
		pub.Close()
		return nil
	}

	logger.Info("Publishing leads to Redis stream '%s' at %s (DB: %d)",
		cfg.RedisStream, cfg.RedisAddr, cfg.RedisDB)
	return pub
}

// stdinCredentials prompts on the terminal for the login inputs. The
// mobile number is taken from configuration when present.
type stdinCredentials struct {
	cfg    *config.Config
	reader *bufio.Reader
}

func newStdinCredentials(cfg *config.Config) *stdinCredentials {
	return &stdinCredentials{
		cfg:    cfg,
		reader: bufio.NewReader(os.Stdin),
	}
}

func (c *stdinCredentials) Mobile() (string, error) {
	if c.cfg.MobileNumber != "" {
		return c.cfg.MobileNumber, nil
	}
	return c.prompt("Enter your IndiaMART registered mobile number: ")
}

func (c *stdinCredentials) OTP() (string, error) {
	return c.prompt("Enter the OTP sent to your mobile: ")
}

func (c *stdinCredentials) prompt(msg string) (string, error) {
	fmt.Print(msg)
	line, err := c.reader.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
