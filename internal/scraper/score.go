package scraper

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/Vedansh2005/Indiamart-Scraper-final/internal/leads"
)

// Score rates how well a lead matches the search keyword, 0 to 100.
// A literal keyword hit in the product description is worth 60 plus 2 per
// additional occurrence (at most 10 bonus); otherwise the fuzzy partial
// ratio contributes at 60% weight. The company name works the same way at
// 30 weight. Present contact fields add flat bonuses.
func Score(l *leads.Lead, keyword string) int {
	score := 0
	kw := strings.ToLower(keyword)

	desc := strings.ToLower(l.ProductTitle)
	if desc != "" && kw != "" {
		if strings.Contains(desc, kw) {
			score += 60
			score += min(10, (strings.Count(desc, kw)-1)*2)
		} else {
			score += int(float64(fuzzy.PartialRatio(kw, desc)) * 0.6)
		}
	}

	name := strings.ToLower(l.CompanyName)
	if name != "" && kw != "" {
		if strings.Contains(name, kw) {
			score += 30
		} else {
			score += int(float64(fuzzy.PartialRatio(kw, name)) * 0.3)
		}
	}

	if l.Phone != "" {
		score += 3
	}
	if l.Email != "" {
		score += 2
	}
	if l.Address != "" {
		score += 5
	}
	if l.CatalogURL != "" {
		score += 5
	}

	return min(100, score)
}
