package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Vedansh2005/Indiamart-Scraper-final/helpers"
	"github.com/Vedansh2005/Indiamart-Scraper-final/internal/leads"
)

// parseCards parses the results-list markup and returns one selection per
// result card.
func parseCards(html string) ([]*goquery.Selection, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	var cards []*goquery.Selection
	doc.Find(selListingCard).Each(func(_ int, card *goquery.Selection) {
		cards = append(cards, card)
	})
	return cards, nil
}

// ExtractListing reads the fields directly visible on one result card.
// Every field is attempted independently; a missing element leaves that
// field at its default and never aborts the record. Email and catalog URL
// require navigation and are left for profile enrichment.
func ExtractListing(card *goquery.Selection) leads.Lead {
	l := leads.New()

	if title := card.Find(cardTitle).First(); title.Length() > 0 {
		l.ProductTitle = strings.TrimSpace(title.Text())
		if href, ok := title.Attr("href"); ok {
			l.ProfileURL = strings.TrimSpace(href)
		}
	}

	if price := card.Find(cardPrice).First(); price.Length() > 0 {
		if p := strings.TrimSpace(price.Text()); p != "" {
			l.Price = p
		}
	}

	if company := card.Find(cardCompany).First(); company.Length() > 0 {
		l.CompanyName = strings.TrimSpace(company.Text())
		// The product link doubles as the profile reference; the company
		// link is the fallback when it was absent.
		if l.ProfileURL == "" {
			if href, ok := company.Attr("href"); ok {
				l.ProfileURL = strings.TrimSpace(href)
			}
		}
	}

	if loc := card.Find(cardLocation).First(); loc.Length() > 0 {
		l.Address = strings.TrimSpace(loc.Text())
	}

	// A more specific address overwrites the short location label.
	if addr := card.Find(cardAddress).First(); addr.Length() > 0 {
		if a := strings.TrimSpace(addr.Text()); a != "" {
			l.Address = a
		}
	}

	// The on-card phone counts only when actually rendered, not merely
	// present in the markup.
	if phone := card.Find(cardPhone).First(); phone.Length() > 0 && isRendered(phone) {
		l.Phone = helpers.NormalizePhone(strings.TrimSpace(phone.Text()))
	}

	return l
}

// isRendered walks the selection and its ancestors looking for markup
// that hides the element.
func isRendered(s *goquery.Selection) bool {
	for cur := s; cur.Length() > 0; cur = cur.Parent() {
		if _, hidden := cur.Attr("hidden"); hidden {
			return false
		}
		if style, ok := cur.Attr("style"); ok {
			st := strings.ReplaceAll(strings.ToLower(style), " ", "")
			if strings.Contains(st, "display:none") || strings.Contains(st, "visibility:hidden") {
				return false
			}
		}
		if goquery.NodeName(cur) == "html" {
			break
		}
	}
	return true
}
