package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
)

func TestResolve(t *testing.T) {
	a := income(1, 1, 1, "10")
	b := expense(2, 1, 2, "3")
	c := expense(3, 1, 3, "4")
	p := expense(4, 1, 4, "99")

	family := []ledger.FamilyTransaction{
		{Transaction: a, MemberID: ledger.DefaultMemberID},
		{Transaction: b, MemberID: "spouse"},
		{Transaction: c, MemberID: "custom-1"},
	}
	private := []ledger.Transaction{p}

	tests := []struct {
		name string
		sel  ledger.Selection
		want []ledger.Transaction
	}{
		{name: "AllMembers", sel: ledger.Selection{MemberID: ledger.DefaultMemberID}, want: []ledger.Transaction{a, b, c}},
		{name: "OneMember", sel: ledger.Selection{MemberID: "spouse"}, want: []ledger.Transaction{b}},
		{name: "DefaultTagIsNotAMember", sel: ledger.Selection{MemberID: "self"}, want: []ledger.Transaction{}},
		{name: "PrivateIgnoresMember", sel: ledger.Selection{Private: true, MemberID: "spouse"}, want: []ledger.Transaction{p}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ledger.Resolve(tt.sel, family, private))
		})
	}
}

func TestResolve_PrivateNeverSeesFamily(t *testing.T) {
	family := []ledger.FamilyTransaction{{Transaction: income(1, 1, 1, "10"), MemberID: ledger.DefaultMemberID}}

	assert.Empty(t, ledger.Resolve(ledger.Selection{Private: true}, family, nil))
	assert.Empty(t, ledger.Allocate(ledger.Resolve(ledger.Selection{Private: true}, family, nil)))
}

func TestFilterMonth(t *testing.T) {
	march := ledger.Transaction{ID: 1, Date: ledger.NewDate(2024, 3, 15)}
	txs := []ledger.Transaction{march}

	assert.Equal(t, txs, ledger.FilterMonth(txs, "2024-03"))
	assert.Empty(t, ledger.FilterMonth(txs, "2024-04"))
	assert.Empty(t, ledger.FilterMonth(txs, "2023-03"))
	assert.Equal(t, txs, ledger.FilterMonth(txs, ""))
}

func TestParseMonth(t *testing.T) {
	assert.NoError(t, ledger.ParseMonth(""))
	assert.NoError(t, ledger.ParseMonth("2024-03"))
	assert.ErrorIs(t, ledger.ParseMonth("2024-3"), ledger.ErrInvalidMonth)
	assert.ErrorIs(t, ledger.ParseMonth("2024-13"), ledger.ErrInvalidMonth)
	assert.ErrorIs(t, ledger.ParseMonth("March"), ledger.ErrInvalidMonth)
}
