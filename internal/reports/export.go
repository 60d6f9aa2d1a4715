// Package reports serializes ledger data for download.
package reports

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"
)

const (
	csvFlushEvery = 200
	csvBufferSize = 32 * 1024
)

// utf8BOM marks the export as UTF-8 for spreadsheet tools.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Row is one line of the expense report: expenses and revenue entries
// merged by date into a single table.
type Row struct {
	Date       time.Time
	Category   string
	CostCenter string
	ItemName   string
	Amount     float64
	Revenue    float64
	Notes      string
}

var header = []string{"date", "category", "cost_center", "item_name", "amount_spent", "revenue", "notes"}

type csvStreamer struct {
	buf          *bufio.Writer
	csv          *csv.Writer
	flushEvery   int
	pendingLines int
}

func newCSVStreamer(w io.Writer) *csvStreamer {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true
	return &csvStreamer{buf: buf, csv: writer, flushEvery: csvFlushEvery}
}

func (s *csvStreamer) writeBOM() error {
	if s == nil || s.buf == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	_, err := s.buf.Write(utf8BOM)
	return err
}

func (s *csvStreamer) writeRow(row []string) error {
	if s == nil || s.csv == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	if err := s.csv.Write(row); err != nil {
		return err
	}
	s.pendingLines++
	if s.flushEvery > 0 && s.pendingLines >= s.flushEvery {
		return s.Flush()
	}
	return nil
}

func (s *csvStreamer) Flush() error {
	if s == nil || s.csv == nil || s.buf == nil {
		return fmt.Errorf("csv streamer not initialised")
	}
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return err
	}
	if err := s.buf.Flush(); err != nil {
		return err
	}
	s.pendingLines = 0
	return nil
}

// WriteCSV streams report rows as UTF-8 CSV with a byte-order mark.
func WriteCSV(w io.Writer, rows []Row) error {
	streamer := newCSVStreamer(w)
	if err := streamer.writeBOM(); err != nil {
		return err
	}
	if err := streamer.writeRow(header); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.Date.Format("2006-01-02"),
			row.Category,
			row.CostCenter,
			row.ItemName,
			formatAmount(row.Amount),
			formatAmount(row.Revenue),
			row.Notes,
		}
		if err := streamer.writeRow(record); err != nil {
			return err
		}
	}
	return streamer.Flush()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
