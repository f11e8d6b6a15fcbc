package scraper

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Vedansh2005/Indiamart-Scraper-final/helpers"
	"github.com/Vedansh2005/Indiamart-Scraper-final/internal/browser"
	"github.com/Vedansh2005/Indiamart-Scraper-final/internal/leads"
	"github.com/Vedansh2005/Indiamart-Scraper-final/logger"
	cerrors "github.com/Vedansh2005/Indiamart-Scraper-final/pkg/errors"
)

// EnrichFromProfile opens the lead's profile page in a transient window,
// backfills the gaps the result card left, and closes the window again.
// The results window is the anchor: whatever happens, focus returns there.
// When the browser path fails after its retries, a plain HTTP fetch of the
// profile page is tried as a last resort.
func (s *Session) EnrichFromProfile(l *leads.Lead) error {
	if !l.NeedsEnrichment() {
		return nil
	}

	retry := helpers.Retry{MaxAttempts: s.cfg.EnrichAttempts, Delay: s.cfg.EnrichRetryDelay}
	err := retry.Do("enrich "+l.CompanyName, func() error {
		return browser.WithWindow(s.driver, s.results, l.ProfileURL, func() error {
			return s.enrichOnce(l)
		})
	})
	if err == nil {
		return nil
	}

	logger.Warn("Browser enrichment failed for '%s', trying static fetch: %v", l.CompanyName, err)
	if serr := s.enrichFromStaticHTML(l); serr != nil {
		logger.Warn("Static enrichment also failed for '%s': %v", l.CompanyName, serr)
		return err
	}
	return nil
}

func (s *Session) enrichOnce(l *leads.Lead) error {
	d := s.driver

	if err := d.WaitVisible(profileBody, s.cfg.PageLoadTimeout); err != nil {
		return cerrors.NewEnrich("profile page did not load", err)
	}

	// Reveal interactions first; the backfill then reads the settled DOM.
	if l.Phone == "" {
		s.revealPhone()
	}

	html, err := d.OuterHTML("html", s.cfg.ElementTimeout)
	if err != nil {
		return cerrors.NewEnrich("reading profile markup", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return cerrors.NewEnrich("parsing profile markup", err)
	}

	backfillFromProfile(l, doc)
	return nil
}

// revealPhone clicks the masked-number control so the full number renders.
// Best effort: many profiles show the number without masking.
func (s *Session) revealPhone() {
	d := s.driver
	if err := d.WaitVisible(profileRevealPhone, s.cfg.ShortTimeout); err != nil {
		return
	}
	if err := d.Click(profileRevealPhone, s.cfg.ShortTimeout); err != nil {
		logger.Debug("Phone reveal click failed: %v", err)
		return
	}
	if err := d.WaitVisible(profileRevealedText, s.cfg.ShortTimeout); err != nil {
		logger.Debug("Revealed number did not appear: %v", err)
	}
}

// backfillFromProfile fills only the fields the card left empty; profile
// data never overwrites what the card already supplied.
func backfillFromProfile(l *leads.Lead, doc *goquery.Document) {
	text := func(sel string) string {
		return strings.TrimSpace(doc.Find(sel).First().Text())
	}

	if l.ProductTitle == "" {
		l.ProductTitle = text(profileTitle)
	}
	if l.Price == leads.PriceNotListed || l.Price == "" {
		if p := text(profilePrice); p != "" {
			l.Price = p
		}
	}
	if l.CompanyName == "" {
		l.CompanyName = text(profileCompany)
	}
	if l.Address == "" {
		if a := text(profileAddressAlt); a != "" {
			l.Address = a
		} else {
			l.Address = text(profileCityMark)
		}
	}
	if l.Phone == "" {
		if raw := text(profileRevealedText); raw != "" {
			l.Phone = helpers.NormalizePhone(raw)
		}
	}
	if l.Email == "" {
		l.Email = extractEmail(doc)
	}
	if l.CatalogURL == "" {
		l.CatalogURL = findCatalogURL(doc)
	}
}

// extractEmail looks for a mailto link first, then falls back to scanning
// the contact block text for an address-shaped token.
func extractEmail(doc *goquery.Document) string {
	email := ""
	doc.Find("a[href^='mailto:']").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		addr := strings.TrimPrefix(href, "mailto:")
		if i := strings.IndexByte(addr, '?'); i >= 0 {
			addr = addr[:i]
		}
		if e := helpers.NormalizeEmail(addr); e != "" {
			email = e
			return false
		}
		return true
	})
	if email != "" {
		return email
	}

	for _, tok := range strings.Fields(doc.Find(profileEmailBlock).Text()) {
		if e := helpers.NormalizeEmail(tok); e != "" {
			return e
		}
	}

	// Last resort: the address may be printed anywhere on the page, a
	// contact footer being the usual spot.
	for _, tok := range strings.Fields(doc.Find("body").Text()) {
		if e := helpers.NormalizeEmail(tok); e != "" {
			return e
		}
	}
	return ""
}

// findCatalogURL scans profile anchors for a downloadable catalog. A
// candidate anchor is labeled catalog/brochure/download (by text or
// class); it is accepted when its reference is a PDF or lives on a
// catalog-hosting indiamart domain.
func findCatalogURL(doc *goquery.Document) string {
	found := ""
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		h := strings.ToLower(href)
		label := strings.ToLower(a.Text())
		class, _ := a.Attr("class")
		class = strings.ToLower(class)

		labeled := strings.Contains(label, "catalog") ||
			strings.Contains(label, "brochure") ||
			strings.Contains(label, "download") ||
			strings.Contains(class, "catalog-link") ||
			strings.Contains(class, "download-brochure")
		hosted := strings.Contains(h, "catalog.indiamart.com") ||
			strings.Contains(h, "brochure.indiamart.com")

		if hosted || (labeled && strings.Contains(h, ".pdf")) {
			found = href
			return false
		}
		return true
	})
	return found
}

// enrichFromStaticHTML fetches the profile over plain HTTP and runs the
// same backfill. JS-revealed fields stay hidden down this path.
func (s *Session) enrichFromStaticHTML(l *leads.Lead) error {
	if l.ProfileURL == "" {
		return cerrors.NewEnrich("no profile URL for static fetch", nil)
	}
	body, err := s.fetch(l.ProfileURL)
	if err != nil {
		return cerrors.NewEnrich("fetching profile page", err)
	}
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return cerrors.NewEnrich("parsing fetched profile", err)
	}
	backfillFromProfile(l, doc)
	return nil
}

// fetchFunc matches helpers.FetchWithRandomHeaders and is swappable in
// tests.
type fetchFunc func(url string) (io.Reader, error)
