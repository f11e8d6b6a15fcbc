package scraper

import (
	"github.com/Vedansh2005/Indiamart-Scraper-final/helpers"
	"github.com/Vedansh2005/Indiamart-Scraper-final/internal/browser"
	"github.com/Vedansh2005/Indiamart-Scraper-final/logger"
	cerrors "github.com/Vedansh2005/Indiamart-Scraper-final/pkg/errors"
)

// Search runs the keyword search and hands focus to the results window.
// On success the driver is focused on the results tab and s.results holds
// its handle; the dashboard tab stays open underneath as the anchor.
func (s *Session) Search() error {
	retry := helpers.Retry{MaxAttempts: s.cfg.SearchAttempts, Delay: s.cfg.SearchRetryDelay}
	return retry.Do("search", func() error {
		return s.searchOnce()
	})
}

func (s *Session) searchOnce() error {
	d := s.driver
	cfg := s.cfg

	anchor := d.CurrentWindow()
	before, err := d.Windows()
	if err != nil {
		return cerrors.NewSearch("listing windows before search", err)
	}

	if err := d.WaitVisible(selSearchInput, cfg.PageLoadTimeout); err != nil {
		s.captureFailure("search_no_input")
		return cerrors.NewSearch("search box did not appear", err)
	}
	if err := d.SendKeys(selSearchInput, cfg.Keyword, cfg.ElementTimeout); err != nil {
		return cerrors.NewSearch("typing keyword", err)
	}
	if err := d.Click(selSearchButton, cfg.ElementTimeout); err != nil {
		return cerrors.NewSearch("submitting search", err)
	}

	if err := d.WaitVisible(selOpenResults, cfg.ElementTimeout); err != nil {
		s.captureFailure("search_no_results_link")
		return cerrors.NewSearch("results link did not appear", err)
	}
	if err := d.Click(selOpenResults, cfg.ElementTimeout); err != nil {
		return cerrors.NewSearch("opening results", err)
	}

	// The results open in a fresh window; wait for it and diff the handle
	// sets to find it.
	after, err := browser.AwaitWindowCount(d, len(before)+1, cfg.ElementTimeout)
	if err != nil {
		s.abortSearch(anchor, before)
		return cerrors.NewSearch("results window did not open", err)
	}
	handle, ok := browser.NewHandle(before, after)
	if !ok {
		s.abortSearch(anchor, before)
		return cerrors.NewSearch("could not identify results window", nil)
	}
	if err := d.SwitchWindow(handle); err != nil {
		s.abortSearch(anchor, before)
		return cerrors.NewSearch("switching to results window", err)
	}

	if err := d.WaitVisible(selResultsList, cfg.PageLoadTimeout); err != nil {
		s.captureFailure("search_results_not_loaded")
		s.abortSearch(anchor, before)
		return cerrors.NewSearch("results did not load", err)
	}

	s.anchor = anchor
	s.results = handle
	logger.Info("Results window open for keyword '%s'", cfg.Keyword)

	s.applyRegionFilter()
	s.expandResults()
	return nil
}

// abortSearch closes any window the failed attempt opened and returns
// focus to the anchor so the retry starts from a clean slate.
func (s *Session) abortSearch(anchor string, before []string) {
	after, err := s.driver.Windows()
	if err == nil {
		if extra, ok := browser.NewHandle(before, after); ok {
			if err := s.driver.CloseWindow(extra); err != nil {
				logger.Warn("Could not close stray results window: %v", err)
			}
		}
	}
	if err := s.driver.SwitchWindow(anchor); err != nil {
		logger.Error("Could not return to anchor window: %v", err)
	}
}

// applyRegionFilter widens the results to All India. Best effort: the
// dropdown is not always present and a miss is not fatal.
func (s *Session) applyRegionFilter() {
	d := s.driver
	if err := d.WaitVisible(selCityDropdown, s.cfg.ShortTimeout); err != nil {
		logger.Debug("City filter not present, skipping region widening")
		return
	}
	if err := d.Click(selCityDropdown, s.cfg.ShortTimeout); err != nil {
		logger.Warn("Could not open city filter: %v", err)
		return
	}
	if err := d.WaitVisible(selAllIndia, s.cfg.ShortTimeout); err != nil {
		logger.Warn("All India option did not appear: %v", err)
		return
	}
	if err := d.Click(selAllIndia, s.cfg.ShortTimeout); err != nil {
		logger.Warn("Could not select All India: %v", err)
		return
	}
	if err := d.WaitVisible(selResultsList, s.cfg.PageLoadTimeout); err != nil {
		logger.Warn("Results did not reload after region filter: %v", err)
		return
	}
	logger.Info("Region filter widened to All India")
}

// expandResults clicks "show more" until the button stops appearing or
// the cap is hit, growing the result list in place.
func (s *Session) expandResults() {
	d := s.driver

	// Resume on the results anchor; an enrichment excursion may have
	// left focus elsewhere.
	if s.results != "" && d.CurrentWindow() != s.results {
		if err := d.SwitchWindow(s.results); err != nil {
			logger.Warn("Could not focus results window before expanding: %v", err)
			return
		}
	}

	for i := 0; i < s.cfg.MaxExpandClicks; i++ {
		if err := s.ctx.Err(); err != nil {
			return
		}
		if err := d.WaitVisible(selShowMore, s.cfg.ShortTimeout); err != nil {
			logger.Debug("Show-more exhausted after %d clicks", i)
			return
		}
		if err := d.Click(selShowMore, s.cfg.ShortTimeout); err != nil {
			logger.Warn("Show-more click failed: %v", err)
			return
		}
		s.pause(s.cfg.ExpandPause)
	}
	logger.Warn("Show-more cap of %d clicks reached", s.cfg.MaxExpandClicks)
}

// nextPage advances to the next results page. Returns false when there is
// no further page.
func (s *Session) nextPage() bool {
	d := s.driver
	if err := d.WaitVisible(selNextPage, s.cfg.ShortTimeout); err != nil {
		return false
	}
	if err := d.Click(selNextPage, s.cfg.ShortTimeout); err != nil {
		logger.Warn("Next-page click failed: %v", err)
		return false
	}
	if err := d.WaitVisible(selResultsList, s.cfg.PageLoadTimeout); err != nil {
		logger.Warn("Next page did not load: %v", err)
		return false
	}
	return true
}
