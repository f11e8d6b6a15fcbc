package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Vedansh2005/Indiamart-Scraper-final/internal/leads"
)

func TestScoreEmptyRecordIsZero(t *testing.T) {
	l := leads.Lead{}
	assert.Equal(t, 0, Score(&l, "Cricket Ball"))
}

func TestScoreSubstringAwardsAtLeastSixty(t *testing.T) {
	l := leads.Lead{ProductTitle: "Leather Cricket Ball, size 5"}
	got := Score(&l, "Cricket Ball")
	assert.GreaterOrEqual(t, got, 60)
}

func TestScoreOccurrenceBonus(t *testing.T) {
	single := leads.Lead{ProductTitle: "Cricket Ball"}
	assert.Equal(t, 60, Score(&single, "Cricket Ball"))

	double := leads.Lead{ProductTitle: "Cricket Ball and spare Cricket Ball"}
	assert.Equal(t, 62, Score(&double, "Cricket Ball"))

	// Bonus caps at 10 no matter how often the keyword repeats.
	many := leads.Lead{
		ProductTitle: "cricket ball cricket ball cricket ball cricket ball cricket ball cricket ball cricket ball cricket ball",
	}
	assert.Equal(t, 70, Score(&many, "Cricket Ball"))
}

func TestScoreFuzzyFallbackStaysBelowSubstringFloor(t *testing.T) {
	l := leads.Lead{ProductTitle: "Premium Crichet Bal for practice"}
	got := Score(&l, "Cricket Ball")
	assert.Greater(t, got, 0)
	assert.Less(t, got, 60)
}

func TestScoreCompanyAndBonuses(t *testing.T) {
	l := leads.Lead{
		CompanyName: "Cricket Ball Industries",
		Phone:       "9876543210",
		Address:     "Meerut, Uttar Pradesh",
	}
	// 30 company + 3 phone + 5 address
	assert.Equal(t, 38, Score(&l, "Cricket Ball"))
}

func TestScoreCapsAtHundred(t *testing.T) {
	l := leads.Lead{
		CompanyName:  "Cricket Ball Industries",
		ProductTitle: "cricket ball cricket ball cricket ball cricket ball cricket ball cricket ball",
		Phone:        "9876543210",
		Email:        "sales@example.in",
		Address:      "Meerut",
		CatalogURL:   "https://www.indiamart.com/cbi/products",
	}
	assert.Equal(t, 100, Score(&l, "Cricket Ball"))
}

func TestScoreEndToEndScenario(t *testing.T) {
	// Card exposes only identity fields; enrichment backfills contact info.
	l := leads.Lead{
		CompanyName:  "Acme Cricket Ball Sports",
		ProductTitle: "Leather Cricket Ball, size 5",
	}
	l.Phone = "9876543210"
	l.Email = "sales@acme.com"

	// 60 description + 30 company + 3 phone + 2 email
	assert.Equal(t, 95, Score(&l, "Cricket Ball"))
}

func TestScoreAlwaysInRange(t *testing.T) {
	records := []leads.Lead{
		{},
		{ProductTitle: "Cricket Ball"},
		{CompanyName: "Totally Unrelated Packaging"},
		{ProductTitle: "rubber duck", CompanyName: "Duck Co", Phone: "1", Email: "a@b.c", Address: "x", CatalogURL: "y"},
	}
	for _, l := range records {
		got := Score(&l, "Cricket Ball")
		assert.GreaterOrEqual(t, got, 0)
		assert.LessOrEqual(t, got, 100)
	}
}
