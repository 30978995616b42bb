package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// knownDateFormats covers the date styles seen across bank exports.
var knownDateFormats = []string{
	"02/01/2006", // dd/mm/yyyy, the common Spanish bank format
	"2006-01-02",
	"02-01-2006",
	"01/02/2006", // US fallback, tried after dd/mm
	"02.01.2006",
}

// ParseDate tries each known format in order and returns the first hit.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range knownDateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", value)
}

// ParseAmount handles European formatted amounts ("1.234,56 €") as well
// as plain decimals, stripping currency symbols. Sign is preserved.
func ParseAmount(value string) (float64, error) {
	v := strings.TrimSpace(value)
	v = strings.NewReplacer("€", "", "$", "", " ", "").Replace(v)
	if v == "" {
		return 0, fmt.Errorf("empty amount")
	}

	// "1.234,56" -> thousands dots, decimal comma.
	if strings.Contains(v, ",") {
		v = strings.ReplaceAll(v, ".", "")
		v = strings.Replace(v, ",", ".", 1)
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("unrecognized amount %q", value)
	}
	return f, nil
}

// Record is one successfully converted finance row.
type Record struct {
	Date        time.Time
	Amount      float64
	Description string
	Category    string
}

// RowError pinpoints a row that could not be converted. Line numbers are
// 1-based and count the header, matching what users see in a spreadsheet.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Result holds converted records together with per-row failures.
// Conversion is best-effort: bad rows are reported, good rows proceed.
type Result struct {
	Records []Record
	Errors  []RowError
}

// Convert applies the column mapping to every row.
func Convert(t *Table, mapping ColumnMapping) (*Result, error) {
	if !mapping.Complete() {
		return nil, fmt.Errorf("column mapping incomplete: date and amount columns are required")
	}

	res := &Result{}
	for i, row := range t.Rows {
		line := i + 2 // header is line 1

		date, err := ParseDate(row[mapping.Date])
		if err != nil {
			res.Errors = append(res.Errors, RowError{Line: line, Reason: err.Error()})
			continue
		}
		amount, err := ParseAmount(row[mapping.Amount])
		if err != nil {
			res.Errors = append(res.Errors, RowError{Line: line, Reason: err.Error()})
			continue
		}

		rec := Record{Date: date, Amount: amount}
		if mapping.Description != "" {
			rec.Description = strings.TrimSpace(row[mapping.Description])
		}
		if mapping.Category != "" {
			rec.Category = strings.TrimSpace(row[mapping.Category])
		}
		res.Records = append(res.Records, rec)
	}
	return res, nil
}
