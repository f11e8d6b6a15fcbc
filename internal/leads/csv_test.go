package leads

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV(t *testing.T) {
	low := New()
	low.CompanyName = "Low Score Traders"
	low.ProductTitle = "Tennis Ball"
	low.Price = "" // missing price must still produce a column
	low.Score = 70

	high := New()
	high.CompanyName = "Acme Sports"
	high.ProductTitle = "Leather Cricket Ball, size 5"
	high.Phone = "9876543210"
	high.Email = "sales@acme.com"
	high.Score = 95

	s := NewStore()
	s.Add(low)
	s.Add(high)

	path := filepath.Join(t.TempDir(), "leads.csv")
	n, err := s.Export(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// UTF-8 BOM prefix
	require.True(t, len(data) > 3)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3])

	r := csv.NewReader(strings.NewReader(string(data[3:])))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, CSVColumns, rows[0])

	// Sorted by score descending: the 95 row comes first
	assert.Equal(t, "Acme Sports", rows[1][0])
	assert.Equal(t, "95", rows[1][8])
	assert.Equal(t, "Low Score Traders", rows[2][0])
	assert.Equal(t, "70", rows[2][8])

	// Missing price is an empty column, not an omitted one
	assert.Equal(t, "", rows[2][2])
	require.Len(t, rows[2], len(CSVColumns))
}
