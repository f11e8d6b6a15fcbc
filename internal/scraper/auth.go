package scraper

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Vedansh2005/Indiamart-Scraper-final/helpers"
	"github.com/Vedansh2005/Indiamart-Scraper-final/logger"
	cerrors "github.com/Vedansh2005/Indiamart-Scraper-final/pkg/errors"
)

// CredentialProvider supplies the login inputs. The CLI reads them from
// stdin; tests script them.
type CredentialProvider interface {
	// Mobile returns the registered 10-digit mobile number.
	Mobile() (string, error)
	// OTP returns the one-time password sent to the mobile number.
	OTP() (string, error)
}

// Login signs the session into the buyer portal using phone + OTP. The
// whole sequence is retried as a unit: a failure at any step restarts
// from the landing page with a fresh OTP prompt.
func (s *Session) Login() error {
	mobile, err := s.creds.Mobile()
	if err != nil {
		return cerrors.NewAuth("reading mobile number", err)
	}
	mobile = helpers.NormalizePhone(strings.TrimSpace(mobile))
	if len(mobile) != 10 {
		return cerrors.NewValidation("login", fmt.Sprintf("mobile number must be 10 digits, got %q", mobile))
	}

	retry := helpers.Retry{MaxAttempts: s.cfg.LoginAttempts, Delay: s.cfg.LoginRetryDelay}
	return retry.Do("login", func() error {
		return s.loginOnce(mobile)
	})
}

func (s *Session) loginOnce(mobile string) error {
	d := s.driver
	cfg := s.cfg

	if err := d.Navigate(cfg.BuyerURL); err != nil {
		return cerrors.NewAuth("opening buyer portal", err)
	}

	if err := d.WaitVisible(selMobileInput, cfg.PageLoadTimeout); err != nil {
		// Already signed in from a previous run.
		if s.isLoggedIn() {
			logger.Info("Existing session detected, skipping login")
			return nil
		}
		s.captureFailure("login_no_mobile_input")
		return cerrors.NewAuth("mobile input did not appear", err)
	}

	if err := d.SendKeys(selMobileInput, mobile, cfg.ElementTimeout); err != nil {
		return cerrors.NewAuth("entering mobile number", err)
	}
	if err := d.Click(selSendOTP, cfg.ElementTimeout); err != nil {
		s.captureFailure("login_send_otp")
		return cerrors.NewAuth("requesting OTP", err)
	}

	if err := d.WaitVisible(selOTPInput, cfg.ElementTimeout); err != nil {
		s.captureFailure("login_no_otp_input")
		return cerrors.NewAuth("OTP input did not appear", err)
	}

	otp, err := s.creds.OTP()
	if err != nil {
		return cerrors.NewAuth("reading OTP", err)
	}
	if err := d.SendKeys(selOTPInput, strings.TrimSpace(otp), cfg.ElementTimeout); err != nil {
		return cerrors.NewAuth("entering OTP", err)
	}
	if err := d.Click(selVerifyOTP, cfg.ElementTimeout); err != nil {
		return cerrors.NewAuth("submitting OTP", err)
	}

	if err := s.awaitLogin(cfg.PageLoadTimeout); err != nil {
		s.captureFailure("login_not_confirmed")
		return err
	}
	logger.Info("Logged in as %s", mobile)
	return nil
}

// awaitLogin polls for either a dashboard URL or a logged-in page marker.
func (s *Session) awaitLogin(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if s.isLoggedIn() {
			return nil
		}
		if time.Now().After(deadline) {
			return cerrors.NewAuth("login confirmation timed out", nil)
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func (s *Session) isLoggedIn() bool {
	if loc, err := s.driver.Location(); err == nil {
		if strings.Contains(loc, "/dashboard") || strings.Contains(loc, "bizfeed") {
			return true
		}
	}
	// selLoggedInMarks ORs every marker into one XPath; one wait covers
	// them all, first match wins.
	if err := s.driver.WaitVisible(selLoggedInMarks, s.cfg.ShortTimeout); err == nil {
		return true
	}
	return false
}

// captureFailure saves a screenshot for post-mortem; failures to capture
// are logged and swallowed.
func (s *Session) captureFailure(tag string) {
	name := fmt.Sprintf("%s_%s.png", tag, time.Now().Format("20060102_150405"))
	path := filepath.Join(s.cfg.ScreenshotDir, name)
	if err := s.driver.Screenshot(path); err != nil {
		logger.Warn("Could not capture screenshot %s: %v", path, err)
		return
	}
	logger.Info("Saved failure screenshot: %s", path)
}
