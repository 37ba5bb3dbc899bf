// Package importer turns CSV exports into ledger entries ready to be added
// in one batch.
package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocketbook/internal/encoding"
	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
)

var (
	ErrNoHeader = errors.New("csv header must name date, amount and reason columns")
	ErrNoRows   = errors.New("csv contains no transactions")
)

var headerAliases = map[string]string{
	"date":        "date",
	"day":         "date",
	"type":        "type",
	"kind":        "type",
	"amount":      "amount",
	"value":       "amount",
	"reason":      "reason",
	"description": "reason",
	"note":        "reason",
}

var dateLayouts = []string{time.DateOnly, "02-01-2006", "02/01/2006", "2006/01/02"}

type columns struct {
	date, kind, amount, reason int
}

// Parse reads a CSV with a header row naming at least date, amount and reason
// columns, comma or semicolon separated and in any common encoding. Without
// a type column the amount's sign decides: negative amounts are expenses.
func Parse(r io.Reader) ([]ledger.CreateParams, error) {
	utf8Reader, charset, err := encoding.ToUTF8(r)
	if err != nil {
		return nil, fmt.Errorf("detecting encoding: %w", err)
	}

	br := bufio.NewReader(utf8Reader)

	reader := csv.NewReader(br)
	reader.Comma = sniffDelimiter(br)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	slog.Debug("parsed csv", "charset", charset, "rows", len(rows), "delimiter", string(reader.Comma))

	if len(rows) == 0 {
		return nil, ErrNoHeader
	}

	cols, err := mapHeader(rows[0])
	if err != nil {
		return nil, err
	}

	var out []ledger.CreateParams

	for i, row := range rows[1:] {
		if blank(row) {
			continue
		}

		p, err := parseRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+2, err)
		}

		out = append(out, p)
	}

	if len(out) == 0 {
		return nil, ErrNoRows
	}

	return out, nil
}

func sniffDelimiter(br *bufio.Reader) rune {
	head, _ := br.Peek(br.Size())
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		head = head[:i]
	}

	if bytes.Count(head, []byte{';'}) > bytes.Count(head, []byte{','}) {
		return ';'
	}

	return ','
}

func mapHeader(header []string) (columns, error) {
	cols := columns{date: -1, kind: -1, amount: -1, reason: -1}

	for i, name := range header {
		switch headerAliases[strings.ToLower(strings.TrimSpace(name))] {
		case "date":
			cols.date = i
		case "type":
			cols.kind = i
		case "amount":
			cols.amount = i
		case "reason":
			cols.reason = i
		}
	}

	if cols.date < 0 || cols.amount < 0 || cols.reason < 0 {
		return cols, ErrNoHeader
	}

	return cols, nil
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}

	return true
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func parseRow(row []string, cols columns) (ledger.CreateParams, error) {
	date, err := parseDate(field(row, cols.date))
	if err != nil {
		return ledger.CreateParams{}, err
	}

	amount, err := ParseAmount(field(row, cols.amount))
	if err != nil {
		return ledger.CreateParams{}, err
	}

	kind := ledger.KindIncome

	if cols.kind >= 0 {
		kind = ledger.Kind(strings.ToLower(field(row, cols.kind)))
		if !kind.Valid() {
			return ledger.CreateParams{}, fmt.Errorf("%w: %q", ledger.ErrInvalidKind, field(row, cols.kind))
		}
	} else if amount.IsNegative() {
		kind = ledger.KindExpense
		amount = amount.Abs()
	}

	p := ledger.CreateParams{
		Amount: amount,
		Kind:   kind,
		Reason: field(row, cols.reason),
		Date:   date,
	}

	return p, p.Validate()
}

func parseDate(s string) (ledger.Date, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return ledger.NewDate(t.Year(), t.Month(), t.Day()), nil
		}
	}

	return ledger.Date{}, fmt.Errorf("%w: %q", ledger.ErrInvalidDate, s)
}

// ParseAmount parses "1234.56", "1,234.56", "1.234,56", "1,00,000.50" and
// "12,5" style amounts, optionally prefixed with a rupee sign. When both
// separators appear the last one is the decimal point. A single dot is always
// the decimal point; a single comma is one too unless exactly three digits
// follow it. Repeated separators of one kind are grouping.
func ParseAmount(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("₹", "", "Rs.", "", "Rs", "", " ", "", "\u00a0", "").Replace(s)
	if clean == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: empty", ledger.ErrInvalidAmount)
	}

	dots := strings.Count(clean, ".")
	commas := strings.Count(clean, ",")
	lastDot := strings.LastIndexByte(clean, '.')
	lastComma := strings.LastIndexByte(clean, ',')

	decimalSep := byte(0)

	switch {
	case dots > 0 && commas > 0:
		decimalSep = clean[max(lastDot, lastComma)]
	case dots == 1:
		decimalSep = '.'
	case commas == 1 && len(clean)-lastComma-1 != 3:
		decimalSep = ','
	}

	if decimalSep != 0 && strings.Count(clean, string(decimalSep)) > 1 {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ledger.ErrInvalidAmount, s)
	}

	var b strings.Builder

	for i := 0; i < len(clean); i++ {
		c := clean[i]

		switch {
		case c == decimalSep:
			b.WriteByte('.')
		case c == '.' || c == ',':
		default:
			b.WriteByte(c)
		}
	}

	d, err := decimal.NewFromString(b.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ledger.ErrInvalidAmount, s)
	}

	return d, nil
}
