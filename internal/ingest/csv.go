package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"livingledger/internal/model"
)

// ErrMissingColumns marks a CSV that lacks one of the required headers.
// Handlers map it to a client error; everything else in the batch path is a
// server error.
var ErrMissingColumns = errors.New("CSV must contain Description, Amount and Type columns")

// Header names are case-sensitive. Timestamp is optional per row.
const (
	columnDescription = "Description"
	columnAmount      = "Amount"
	columnType        = "Type"
	columnTimestamp   = "Timestamp"
)

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Row is one parsed CSV line. A zero Timestamp means the column was absent
// or unparseable; the caller substitutes the current time.
type Row struct {
	Transaction model.Transaction
	Timestamp   time.Time
}

// ParseCSV reads the whole table up front so that a malformed row fails the
// batch before any story generation or ledger mutation happens.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, ErrMissingColumns
		}
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}

	for _, required := range []string{columnDescription, columnAmount, columnType} {
		if _, ok := columns[required]; !ok {
			return nil, ErrMissingColumns
		}
	}

	var rows []Row
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", line, err)
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(record[columns[columnAmount]]))
		if err != nil {
			return nil, fmt.Errorf("invalid amount on CSV line %d: %w", line, err)
		}

		tx := model.Transaction{
			Description: record[columns[columnDescription]],
			Amount:      amount,
			Type:        strings.ToLower(strings.TrimSpace(record[columns[columnType]])),
		}
		if err := tx.Validate(); err != nil {
			return nil, fmt.Errorf("invalid transaction on CSV line %d: %w", line, err)
		}

		row := Row{Transaction: tx}
		if i, ok := columns[columnTimestamp]; ok && i < len(record) {
			row.Timestamp = parseTimestamp(record[i])
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func parseTimestamp(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}
