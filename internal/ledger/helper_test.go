package ledger_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
)

func tx(id int64, month time.Month, day int, kind ledger.Kind, amount string) ledger.Transaction {
	return ledger.Transaction{
		ID:     id,
		Amount: decimal.RequireFromString(amount),
		Kind:   kind,
		Reason: string(kind),
		Date:   ledger.NewDate(2024, month, day),
	}
}

func income(id int64, month time.Month, day int, amount string) ledger.Transaction {
	return tx(id, month, day, ledger.KindIncome, amount)
}

func expense(id int64, month time.Month, day int, amount string) ledger.Transaction {
	return tx(id, month, day, ledger.KindExpense, amount)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
