package ledger

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"
)

// Block is one income together with every expense dated after it and before
// the next income. A leading block with a nil Income collects the expenses
// that precede the first income.
type Block struct {
	Income       *Transaction
	Expenses     []Transaction
	TotalExpense decimal.Decimal
	Remaining    decimal.Decimal
}

func (b Block) empty() bool {
	return b.Income == nil && len(b.Expenses) == 0
}

// Allocate attributes each expense to the nearest preceding income in date
// order (ties broken by id) and returns the blocks newest first. Remaining
// goes negative when a block's expenses exceed its income.
func Allocate(txs []Transaction) []Block {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, compareChronological)

	var blocks []Block

	current := Block{TotalExpense: decimal.Zero, Remaining: decimal.Zero}

	for _, t := range sorted {
		switch t.Kind {
		case KindIncome:
			if !current.empty() {
				blocks = append(blocks, current)
			}

			income := t
			current = Block{
				Income:       &income,
				TotalExpense: decimal.Zero,
				Remaining:    t.Amount,
			}
		case KindExpense:
			current.Expenses = append(current.Expenses, t)
			current.TotalExpense = current.TotalExpense.Add(t.Amount)
			current.Remaining = current.Remaining.Sub(t.Amount)
		}
	}

	if !current.empty() {
		blocks = append(blocks, current)
	}

	slices.Reverse(blocks)

	return blocks
}

func compareChronological(a, b Transaction) int {
	if c := a.Date.Compare(b.Date.Time); c != 0 {
		return c
	}

	return cmp.Compare(a.ID, b.ID)
}

// SortNewestFirst orders txs by date descending, most recently created first
// within a day.
func SortNewestFirst(txs []Transaction) []Transaction {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b Transaction) int {
		return compareChronological(b, a)
	})

	return sorted
}
