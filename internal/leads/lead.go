package leads

import "github.com/Vedansh2005/Indiamart-Scraper-final/helpers"

// PriceNotListed is the default price for listings without one.
const PriceNotListed = "Not Listed"

// Lead holds everything harvested for a single seller listing.
type Lead struct {
	CompanyName  string `json:"company_name"`
	ProductTitle string `json:"product_title"`
	Price        string `json:"price"`
	Address      string `json:"address"`
	Phone        string `json:"phone_number"`
	Email        string `json:"email"`
	CatalogURL   string `json:"product_catalog_url"`
	ProfileURL   string `json:"company_profile_url"`
	Score        int    `json:"relevancy_score"`
}

// New returns a Lead with field defaults applied.
func New() Lead {
	return Lead{Price: PriceNotListed}
}

// HasIdentity reports whether the record carries the minimal identity
// required to be retained: a company name or a product title.
func (l *Lead) HasIdentity() bool {
	return l.CompanyName != "" || l.ProductTitle != ""
}

// NeedsEnrichment reports whether visiting the profile page could still
// fill a gap: a profile URL exists and phone, email, or catalog is empty.
func (l *Lead) NeedsEnrichment() bool {
	if l.ProfileURL == "" {
		return false
	}
	return l.Phone == "" || l.Email == "" || l.CatalogURL == ""
}

// Sanitize cleans every text field for export.
func (l *Lead) Sanitize() {
	l.CompanyName = helpers.SanitizeText(l.CompanyName)
	l.ProductTitle = helpers.SanitizeText(l.ProductTitle)
	l.Price = helpers.SanitizeText(l.Price)
	l.Address = helpers.SanitizeText(l.Address)
	l.Phone = helpers.SanitizeText(l.Phone)
	l.Email = helpers.SanitizeText(l.Email)
	l.CatalogURL = helpers.SanitizeText(l.CatalogURL)
	l.ProfileURL = helpers.SanitizeText(l.ProfileURL)
}
