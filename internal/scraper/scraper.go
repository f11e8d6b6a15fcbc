package scraper

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/Vedansh2005/Indiamart-Scraper-final/config"
	"github.com/Vedansh2005/Indiamart-Scraper-final/helpers"
	"github.com/Vedansh2005/Indiamart-Scraper-final/internal/browser"
	"github.com/Vedansh2005/Indiamart-Scraper-final/internal/leads"
	"github.com/Vedansh2005/Indiamart-Scraper-final/logger"
	cerrors "github.com/Vedansh2005/Indiamart-Scraper-final/pkg/errors"
	"github.com/Vedansh2005/Indiamart-Scraper-final/services/publisher"
)

// Session drives one harvesting run: login, search, expand, extract,
// enrich, score. Collected leads accumulate in the store even when the
// run ends early, so a partial harvest still exports.
type Session struct {
	ctx    context.Context
	cfg    *config.Config
	driver browser.Driver
	creds  CredentialProvider
	store  *leads.Store
	pub    publisher.Publisher
	fetch  fetchFunc

	anchor  string // dashboard window, owner of the logged-in session
	results string // results window, anchor for profile windows
}

// NewSession wires a session over an already-started driver. pub may be
// nil when no feed is configured.
func NewSession(ctx context.Context, cfg *config.Config, d browser.Driver, creds CredentialProvider, pub publisher.Publisher) *Session {
	return &Session{
		ctx:    ctx,
		cfg:    cfg,
		driver: d,
		creds:  creds,
		store:  leads.NewStore(),
		pub:    pub,
		fetch:  helpers.FetchWithRandomHeaders,
	}
}

// Store exposes the accumulated leads for export.
func (s *Session) Store() *leads.Store {
	return s.store
}

// Run executes the full harvest. The store keeps whatever was collected
// before any error, including cancellation.
func (s *Session) Run() error {
	if err := s.Login(); err != nil {
		return err
	}
	if err := s.checkCancelled(); err != nil {
		return err
	}
	if err := s.Search(); err != nil {
		return err
	}
	return s.Collect()
}

// Collect walks the results pages until the lead target is met, the pages
// run out, or the run is cancelled.
func (s *Session) Collect() error {
	for page := 1; page <= s.cfg.MaxPages; page++ {
		if err := s.checkCancelled(); err != nil {
			return err
		}

		// The previous iteration may have left focus elsewhere.
		if err := s.driver.SwitchWindow(s.results); err != nil {
			return cerrors.NewSearch("results window lost", err)
		}
		if err := s.driver.WaitVisible(selResultsList, s.cfg.PageLoadTimeout); err != nil {
			s.captureFailure(fmt.Sprintf("page_%d_container", page))
			return cerrors.NewSearch("results container missing", err)
		}

		s.expandResults()
		added, err := s.harvestPage()
		if err != nil {
			s.captureFailure(fmt.Sprintf("page_%d", page))
			return err
		}
		if added == 0 {
			s.captureFailure(fmt.Sprintf("page_%d_no_leads", page))
		}
		logger.Info("Page %d yielded %d leads (%d/%d total)", page, added, s.store.Len(), s.cfg.MinLeads)

		if s.store.Len() >= s.cfg.MinLeads {
			logger.Info("Lead target reached")
			return nil
		}
		if !s.nextPage() {
			logger.Info("No further result pages")
			return nil
		}
		s.pace()
	}
	logger.Warn("Page cap of %d reached with %d leads", s.cfg.MaxPages, s.store.Len())
	return nil
}

// harvestPage extracts every card on the current results page, enriches
// the ones with gaps, scores, and stores them.
func (s *Session) harvestPage() (int, error) {
	html, err := s.driver.OuterHTML(selResultsList, s.cfg.ElementTimeout)
	if err != nil {
		return 0, cerrors.NewSearch("reading results list", err)
	}
	cards, err := parseCards(html)
	if err != nil {
		return 0, cerrors.NewSearch("parsing results list", err)
	}

	added := 0
	for i, card := range cards {
		if err := s.checkCancelled(); err != nil {
			return added, err
		}
		if i > 0 {
			s.pace()
		}

		l := ExtractListing(card)
		if !l.HasIdentity() {
			continue
		}

		if l.NeedsEnrichment() {
			// Enrichment failures leave a partial lead; the card data
			// alone is still worth keeping.
			if err := s.EnrichFromProfile(&l); err != nil {
				if cerrors.IsCancelled(err) {
					return added, err
				}
				logger.Warn("Keeping partial lead for '%s': %v", l.CompanyName, err)
			}
		}

		l.Sanitize()
		l.Score = Score(&l, s.cfg.Keyword)
		if !s.store.Add(l) {
			continue
		}
		added++
		s.publish(l)

		if s.store.Len() >= s.cfg.MinLeads {
			break
		}
	}
	return added, nil
}

func (s *Session) publish(l leads.Lead) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(s.ctx, l); err != nil {
		logger.Warn("Could not publish lead '%s': %v", l.CompanyName, err)
	}
}

// pause sleeps a randomized interval between half of limit and limit,
// as a light rate-limiting measure.
func (s *Session) pause(limit time.Duration) {
	if limit <= 0 {
		return
	}
	half := limit / 2
	time.Sleep(half + time.Duration(rand.Int64N(int64(half)+1)))
}

func (s *Session) pace() {
	s.pause(s.cfg.PagePause)
}

func (s *Session) checkCancelled() error {
	if s.ctx.Err() != nil {
		return cerrors.NewCancelled("run")
	}
	return nil
}

// Cleanup closes the results window and returns to the anchor. Safe to
// call after a failed run.
func (s *Session) Cleanup() {
	if s.results != "" {
		if err := s.driver.CloseWindow(s.results); err != nil {
			logger.Debug("Results window already gone: %v", err)
		}
		s.results = ""
	}
	if s.anchor != "" {
		if err := s.driver.SwitchWindow(s.anchor); err != nil {
			logger.Debug("Could not refocus anchor window: %v", err)
		}
	}
}
