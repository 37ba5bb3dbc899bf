// Package export writes transactions as CSV in the layout the importer reads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
)

var header = []string{"date", "type", "amount", "reason"}

// WriteCSV writes txs oldest first with a date,type,amount,reason header.
// Amounts are written at full precision.
func WriteCSV(w io.Writer, txs []ledger.Transaction) error {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b ledger.Transaction) int {
		return a.Date.Compare(b.Date.Time)
	})

	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, tx := range sorted {
		if err := cw.Write([]string{tx.Date.String(), string(tx.Kind), tx.Amount.String(), tx.Reason}); err != nil {
			return fmt.Errorf("writing transaction %d: %w", tx.ID, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// Filename names an export of scope (a member id or "private") for month.
// An empty month means the whole history.
func Filename(scope, month string) string {
	if month == "" {
		month = "all"
	}

	safe := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}

		return '_'
	}, scope)

	return fmt.Sprintf("pocketbook_%s_%s.csv", safe, month)
}

// ToFile writes txs into dir under name, creating dir if needed, and returns
// the written path.
func ToFile(dir, name string, txs []ledger.Transaction) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, txs); err != nil {
		return "", err
	}

	return path, nil
}
