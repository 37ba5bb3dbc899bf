package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
)

type transactionResponse struct {
	ID     int64           `json:"id"`
	Amount decimal.Decimal `json:"amount"`
	Type   ledger.Kind     `json:"type"`
	Reason string          `json:"reason"`
	Date   ledger.Date     `json:"date"`
	// MemberID is set on family transactions only.
	MemberID string `json:"memberId,omitempty"`
}

type totalsResponse struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

type listResponse struct {
	Member       string                `json:"member,omitempty"`
	Month        string                `json:"month,omitempty"`
	Transactions []transactionResponse `json:"transactions"`
	Totals       totalsResponse        `json:"totals"`
}

type blockResponse struct {
	Income       *transactionResponse  `json:"income"`
	Expenses     []transactionResponse `json:"expenses"`
	TotalExpense decimal.Decimal       `json:"total_expense"`
	Remaining    decimal.Decimal       `json:"remaining"`
}

type allocationResponse struct {
	Member string          `json:"member,omitempty"`
	Month  string          `json:"month,omitempty"`
	Blocks []blockResponse `json:"blocks"`
}

type importResponse struct {
	Imported     int                   `json:"imported"`
	Transactions []transactionResponse `json:"transactions"`
}

func toResponse(tx ledger.Transaction) transactionResponse {
	return transactionResponse{
		ID:     tx.ID,
		Amount: tx.Amount,
		Type:   tx.Kind,
		Reason: tx.Reason,
		Date:   tx.Date,
	}
}

// toResponseList converts txs, tagging each with its member from owners.
// A nil owners map leaves the member unset.
func toResponseList(txs []ledger.Transaction, owners map[int64]string) []transactionResponse {
	resp := make([]transactionResponse, len(txs))
	for i, tx := range txs {
		resp[i] = toResponse(tx)
		resp[i].MemberID = owners[tx.ID]
	}

	return resp
}

func toTotalsResponse(t ledger.Totals) totalsResponse {
	return totalsResponse{Income: t.Income, Expense: t.Expense, Balance: t.Balance}
}

func toBlockResponseList(blocks []ledger.Block, owners map[int64]string) []blockResponse {
	resp := make([]blockResponse, len(blocks))
	for i, b := range blocks {
		resp[i] = blockResponse{
			Expenses:     toResponseList(b.Expenses, owners),
			TotalExpense: b.TotalExpense,
			Remaining:    b.Remaining,
		}

		if b.Income != nil {
			income := toResponse(*b.Income)
			income.MemberID = owners[b.Income.ID]
			resp[i].Income = &income
		}
	}

	return resp
}
