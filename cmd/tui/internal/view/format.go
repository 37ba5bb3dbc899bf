package view

import (
	"math"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
)

// FormatAmount renders amount in rupees with two decimals.
func FormatAmount(amount decimal.Decimal) string {
	cur := money.GetCurrency(money.INR)
	minor := amount.Shift(int32(cur.Fraction)).Round(0)

	// Past int64 minor units go-money cannot hold the value.
	if minor.Abs().GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		if amount.IsNegative() {
			return "-" + cur.Grapheme + amount.Abs().StringFixed(2)
		}

		return cur.Grapheme + amount.StringFixed(2)
	}

	return money.New(minor.IntPart(), money.INR).Display()
}

// FormatSigned prefixes expenses with a minus sign.
func FormatSigned(tx ledger.Transaction) string {
	if tx.Kind == ledger.KindExpense {
		return "-" + FormatAmount(tx.Amount)
	}

	return "+" + FormatAmount(tx.Amount)
}

// FormatDate renders a date as "15 Jan 2024".
func FormatDate(d ledger.Date) string {
	return d.Format("02 Jan 2006")
}

// MonthLabel renders a YYYY-MM month as "January 2024"; empty means all time.
func MonthLabel(month string) string {
	if month == "" {
		return "All time"
	}

	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}

	return t.Format("January 2006")
}

// MonthKey returns the YYYY-MM month offset months away from now.
func MonthKey(now time.Time, offset int) string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	return first.AddDate(0, offset, 0).Format("2006-01")
}
