// Package importer turns bank/accounting CSV exports into finance
// records. Column meaning is auto-detected from header names so users
// can feed exports from different tools without pre-mapping.
package importer

import (
	"encoding/csv"
	"fmt"
	"strings"
)

// ColumnMapping associates semantic fields with CSV header names.
// Empty strings mean the column was not found.
type ColumnMapping struct {
	Date        string
	Amount      string
	Description string
	Category    string
}

// Complete reports whether the minimum usable mapping (date + amount)
// was detected.
func (m ColumnMapping) Complete() bool {
	return m.Date != "" && m.Amount != ""
}

// Table is a parsed CSV file: ordered headers plus row maps keyed by header.
type Table struct {
	Headers   []string
	Rows      []map[string]string
	Delimiter rune
}

// DetectDelimiter inspects the first line for the most common European
// CSV delimiters, in order of preference.
func DetectDelimiter(content string) rune {
	firstLine, _, _ := strings.Cut(content, "\n")
	for _, d := range []rune{',', ';', '\t', '|'} {
		if strings.ContainsRune(firstLine, d) {
			return d
		}
	}
	return ','
}

// Parse reads the whole CSV content using the detected delimiter. The
// first record is treated as the header row.
func Parse(content string) (*Table, error) {
	delim := DetectDelimiter(content)

	r := csv.NewReader(strings.NewReader(content))
	r.Comma = delim
	r.FieldsPerRecord = -1 // ragged exports are common, tolerate them
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return &Table{Delimiter: delim}, nil
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(rec) {
				row[h] = rec[i]
			}
		}
		rows = append(rows, row)
	}

	return &Table{Headers: headers, Rows: rows, Delimiter: delim}, nil
}

// Header keyword sets for column detection, Spanish first since that is
// what the product's bank exports use.
var (
	dateKeywords     = []string{"fecha", "date", "dia"}
	descKeywords     = []string{"descripcion", "concepto", "description", "detalle", "referencia"}
	amountKeywords   = []string{"importe", "amount", "cantidad", "monto", "total"}
	categoryKeywords = []string{"categoria", "category", "tipo", "type"}
)

// DetectColumns maps semantic fields to headers by keyword match. The
// first matching header wins for each field; a header feeds at most one
// field, checked in date > amount > description > category priority.
func DetectColumns(headers []string) ColumnMapping {
	var m ColumnMapping
	for _, header := range headers {
		h := strings.ToLower(strings.TrimSpace(header))
		switch {
		case m.Date == "" && containsAny(h, dateKeywords):
			m.Date = header
		case m.Amount == "" && containsAny(h, amountKeywords):
			m.Amount = header
		case m.Description == "" && containsAny(h, descKeywords):
			m.Description = header
		case m.Category == "" && containsAny(h, categoryKeywords):
			m.Category = header
		}
	}
	return m
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// Preview holds the first rows of a parsed file for wizard display.
type Preview struct {
	Headers   []string
	Rows      [][]string
	TotalRows int
	Mapping   ColumnMapping
}

const previewLimit = 20

// BuildPreview extracts the first rows and the detected mapping so the
// import wizard can show what is about to happen.
func BuildPreview(t *Table) Preview {
	p := Preview{
		Headers:   t.Headers,
		TotalRows: len(t.Rows),
		Mapping:   DetectColumns(t.Headers),
	}
	for i, row := range t.Rows {
		if i >= previewLimit {
			break
		}
		cells := make([]string, len(t.Headers))
		for j, h := range t.Headers {
			cells[j] = row[h]
		}
		p.Rows = append(p.Rows, cells)
	}
	return p
}
