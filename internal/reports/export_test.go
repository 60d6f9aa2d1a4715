package reports

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWriteCSVStartsWithBOM(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))
	require.True(t, bytes.HasPrefix(buf.Bytes(), utf8BOM))
}

func TestWriteCSVHeaderAndRows(t *testing.T) {
	rows := []Row{
		{
			Date:       time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
			Category:   "direct",
			CostCenter: "Mango",
			ItemName:   "Nitrate fertilizer",
			Amount:     500,
			Notes:      "spring application",
		},
		{
			Date:       time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
			Category:   "revenue",
			CostCenter: "Poultry",
			ItemName:   "Egg trays",
			Revenue:    320.5,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	payload := bytes.TrimPrefix(buf.Bytes(), utf8BOM)
	records, err := csv.NewReader(bytes.NewReader(payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	require.Equal(t, []string{"date", "category", "cost_center", "item_name", "amount_spent", "revenue", "notes"}, records[0])
	require.Equal(t, []string{"2025-03-10", "direct", "Mango", "Nitrate fertilizer", "500.00", "0.00", "spring application"}, records[1])
	require.Equal(t, []string{"2025-03-12", "revenue", "Poultry", "Egg trays", "0.00", "320.50", ""}, records[2])
}
