package view

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234.5", "1,234.50"},
		{"0.333", "0.33"},
		{"1000000", "1,000,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := FormatAmount(decimal.RequireFromString(tt.in))
			assert.Contains(t, got, tt.want)
			assert.Contains(t, got, "₹")
		})
	}

	assert.Contains(t, FormatAmount(decimal.RequireFromString("-300")), "-")
}

func TestFormatAmountBeyondInt64(t *testing.T) {
	huge := decimal.RequireFromString("100000000000000000000")

	assert.Equal(t, "₹100000000000000000000.00", FormatAmount(huge))
	assert.Equal(t, "-₹100000000000000000000.00", FormatAmount(huge.Neg()))
}

func TestFormatSigned(t *testing.T) {
	d, _ := ledger.ParseDate("2024-01-15")

	expense := ledger.Transaction{Amount: decimal.NewFromInt(5), Kind: ledger.KindExpense, Date: d}
	income := ledger.Transaction{Amount: decimal.NewFromInt(5), Kind: ledger.KindIncome, Date: d}

	assert.Equal(t, "-"+FormatAmount(expense.Amount), FormatSigned(expense))
	assert.Equal(t, "+"+FormatAmount(income.Amount), FormatSigned(income))
	assert.Equal(t, "15 Jan 2024", FormatDate(d))
}

func TestMonthHelpers(t *testing.T) {
	now := time.Date(2024, 1, 31, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, "2024-01", MonthKey(now, 0))
	assert.Equal(t, "2023-12", MonthKey(now, -1))
	assert.Equal(t, "January 2024", MonthLabel("2024-01"))
	assert.Equal(t, "All time", MonthLabel(""))
}
