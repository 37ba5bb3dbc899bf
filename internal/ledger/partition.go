package ledger

import "time"

// Selection is the explicit state that picks the active partition.
type Selection struct {
	Private  bool
	MemberID string
}

// Resolve returns the transactions of the partition named by sel. The private
// set is returned as-is and the member id is not consulted for it.
// DefaultMemberID selects the whole family set.
func Resolve(sel Selection, family []FamilyTransaction, private []Transaction) []Transaction {
	if sel.Private {
		return private
	}

	all := sel.MemberID == "" || sel.MemberID == DefaultMemberID

	out := make([]Transaction, 0, len(family))

	for _, t := range family {
		if all || t.MemberID == sel.MemberID {
			out = append(out, t.Transaction)
		}
	}

	return out
}

// ParseMonth validates a YYYY-MM month filter. The empty string is a valid
// "no filter" value.
func ParseMonth(month string) error {
	if month == "" {
		return nil
	}

	if _, err := time.Parse("2006-01", month); err != nil || len(month) != len("2006-01") {
		return ErrInvalidMonth
	}

	return nil
}

// FilterMonth keeps the transactions dated in month (YYYY-MM). An empty month
// returns txs unchanged.
func FilterMonth(txs []Transaction, month string) []Transaction {
	if month == "" {
		return txs
	}

	var out []Transaction

	for _, t := range txs {
		if t.Date.MonthKey() == month {
			out = append(out, t)
		}
	}

	return out
}
