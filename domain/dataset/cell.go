package dataset

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// CellKind defines the storage type for cell values
type CellKind string

const (
	CellMissing       CellKind = "missing"
	CellNumeric       CellKind = "numeric"
	CellText          CellKind = "text"
	CellDateCandidate CellKind = "date_candidate"
)

// Cell represents a typed cell value with deterministic coercion.
// A raw string is parsed exactly once when the dataset is built; downstream
// stages read the tagged variant and never re-inspect the raw text.
type Cell struct {
	Kind    CellKind   `json:"kind"`
	Raw     string     `json:"raw,omitempty"`
	Number  *float64   `json:"number,omitempty"`
	Date    *time.Time `json:"date,omitempty"`
	Missing bool       `json:"missing"`
}

// missingMarkers are raw strings treated as absent values after normalization
var missingMarkers = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"null": true,
	"nil":  true,
	"none": true,
	"nan":  true,
	"-":    true,
}

// dateFormats are tried in order when coercing a date candidate
var dateFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"02-Jan-2006",
	"Jan 2, 2006",
}

// NewMissingCell creates a missing cell
func NewMissingCell() Cell {
	return Cell{Kind: CellMissing, Missing: true}
}

// NewNumericCell creates a numeric cell
func NewNumericCell(n float64) Cell {
	return Cell{Kind: CellNumeric, Number: &n, Raw: strconv.FormatFloat(n, 'g', -1, 64)}
}

// NewTextCell creates a text cell
func NewTextCell(s string) Cell {
	if isMissingMarker(s) {
		return NewMissingCell()
	}
	return Cell{Kind: CellText, Raw: s}
}

// NewDateCell creates a date-candidate cell
func NewDateCell(t time.Time) Cell {
	return Cell{Kind: CellDateCandidate, Date: &t, Raw: t.Format("2006-01-02")}
}

// ParseCell deterministically coerces a raw string into a tagged cell.
// Numeric coercion wins over dates for ambiguous values such as "2024",
// but a cell that parses as a date keeps the parsed time alongside the
// raw text so the classifier can count temporal evidence either way.
func ParseCell(raw string) Cell {
	trimmed := strings.TrimSpace(raw)
	if isMissingMarker(trimmed) {
		return NewMissingCell()
	}

	cell := Cell{Kind: CellText, Raw: trimmed}

	if n, ok := tryParseNumber(trimmed); ok {
		cell.Kind = CellNumeric
		cell.Number = &n
	}

	if t, ok := tryParseDate(trimmed); ok {
		cell.Date = &t
		if cell.Kind == CellText {
			cell.Kind = CellDateCandidate
		}
	}

	return cell
}

// IsNumeric returns true if the cell holds a parsed number
func (c Cell) IsNumeric() bool {
	return c.Number != nil
}

// IsDate returns true if the cell holds a parsed date
func (c Cell) IsDate() bool {
	return c.Date != nil
}

// AsFloat64 returns the numeric value, or 0 if not numeric
func (c Cell) AsFloat64() float64 {
	if c.Number != nil {
		return *c.Number
	}
	return 0
}

// AsString returns the raw text of the cell, or "<missing>" when absent
func (c Cell) AsString() string {
	if c.Missing {
		return "<missing>"
	}
	return c.Raw
}

func isMissingMarker(s string) bool {
	return missingMarkers[strings.ToLower(strings.TrimSpace(s))]
}

// tryParseNumber attempts strict numeric coercion. Thousands separators,
// currency symbols and percent signs are stripped before parsing; values
// wrapped in parentheses are treated as negatives.
func tryParseNumber(s string) (float64, bool) {
	clean := s

	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		clean = strings.TrimSuffix(strings.TrimPrefix(clean, "("), ")")
		negative = true
	}

	for _, symbol := range []string{"$", "€", "£", "¥", "%"} {
		clean = strings.ReplaceAll(clean, symbol, "")
	}
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.TrimSpace(clean)

	if clean == "" {
		return 0, false
	}
	if negative {
		clean = "-" + clean
	}

	val, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// tryParseDate attempts to parse a date or timestamp in common formats
func tryParseDate(s string) (time.Time, bool) {
	for _, format := range dateFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
