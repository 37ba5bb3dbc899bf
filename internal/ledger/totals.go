package ledger

import "github.com/shopspring/decimal"

type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// ComputeTotals sums income and expense amounts exactly.
func ComputeTotals(txs []Transaction) Totals {
	income := decimal.Zero
	expense := decimal.Zero

	for _, t := range txs {
		switch t.Kind {
		case KindIncome:
			income = income.Add(t.Amount)
		case KindExpense:
			expense = expense.Add(t.Amount)
		}
	}

	return Totals{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}
