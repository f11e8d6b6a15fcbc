package leads

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/Vedansh2005/Indiamart-Scraper-final/pkg/errors"
)

// CSVColumns is the fixed export column order.
var CSVColumns = []string{
	"Company Name",
	"Product Title/Description",
	"Price",
	"Address",
	"Phone Number",
	"Email",
	"Product Catalog URL",
	"Company Profile URL",
	"Relevancy Score (%)",
}

// ExportCSV writes the given leads to filename as UTF-8 CSV. A BOM is
// written first so spreadsheet tools pick up the encoding. Missing values
// become empty columns, never omitted ones.
func ExportCSV(filename string, records []Lead) error {
	f, err := os.Create(filename)
	if err != nil {
		return errors.NewExport("failed to create output file", err)
	}

	// UTF-8 BOM for Excel friendliness
	if _, err := f.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		f.Close()
		return errors.NewExport("failed to write BOM", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(CSVColumns); err != nil {
		f.Close()
		return errors.NewExport("failed to write header", err)
	}

	for _, l := range records {
		row := []string{
			l.CompanyName,
			l.ProductTitle,
			l.Price,
			l.Address,
			l.Phone,
			l.Email,
			l.CatalogURL,
			l.ProfileURL,
			strconv.Itoa(l.Score),
		}
		if err := w.Write(row); err != nil {
			f.Close()
			return errors.NewExport("failed to write row", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return errors.NewExport("failed to flush writer", err)
	}
	return f.Close()
}

// Export sorts the store's leads by score descending and writes them to
// filename.
func (s *Store) Export(filename string) (int, error) {
	sorted := s.SortedByScore()
	if err := ExportCSV(filename, sorted); err != nil {
		return 0, err
	}
	return len(sorted), nil
}
