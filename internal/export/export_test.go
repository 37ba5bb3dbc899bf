package export_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketbook/internal/export"
	"github.com/MrJamesThe3rd/pocketbook/internal/importer"
	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
)

func tx(id int64, date string, kind ledger.Kind, amount, reason string) ledger.Transaction {
	d, err := ledger.ParseDate(date)
	if err != nil {
		panic(err)
	}

	return ledger.Transaction{ID: id, Amount: decimal.RequireFromString(amount), Kind: kind, Reason: reason, Date: d}
}

func TestWriteCSV(t *testing.T) {
	txs := []ledger.Transaction{
		tx(2, "2024-01-05", ledger.KindExpense, "200", "Groceries, weekly"),
		tx(1, "2024-01-01", ledger.KindIncome, "1000.5", "Salary"),
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, txs))

	assert.Equal(t,
		"date,type,amount,reason\n"+
			"2024-01-01,income,1000.5,Salary\n"+
			"2024-01-05,expense,200,\"Groceries, weekly\"\n",
		buf.String())

	params, err := importer.Parse(&buf)
	require.NoError(t, err)
	require.Len(t, params, 2)
	assert.Equal(t, "Groceries, weekly", params[1].Reason)
	assert.True(t, params[0].Amount.Equal(decimal.RequireFromString("1000.5")))
}

func TestWriteCSV_KeepsSubPaisaAmounts(t *testing.T) {
	txs := []ledger.Transaction{
		tx(1, "2024-01-01", ledger.KindIncome, "12.345", "Interest"),
		tx(2, "2024-01-02", ledger.KindExpense, "0.004", "Rounding"),
	}

	var buf bytes.Buffer
	require.NoError(t, export.WriteCSV(&buf, txs))

	params, err := importer.Parse(&buf)
	require.NoError(t, err)
	require.Len(t, params, 2)

	for i, p := range params {
		assert.True(t, txs[i].Amount.Equal(p.Amount), "got %s want %s", p.Amount, txs[i].Amount)
		assert.Equal(t, txs[i].Kind, p.Kind)
		assert.Equal(t, txs[i].Date, p.Date)
	}
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "pocketbook_spouse_2024-01.csv", export.Filename("spouse", "2024-01"))
	assert.Equal(t, "pocketbook_private_all.csv", export.Filename("private", ""))
	assert.Equal(t, "pocketbook_a_b_all.csv", export.Filename("a/b", ""))
}

func TestToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	path, err := export.ToFile(dir, "x.csv", []ledger.Transaction{tx(1, "2024-02-01", ledger.KindIncome, "1", "Pay")})
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "2024-02-01,income,1,Pay")
}
