package ledger_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
)

func TestAllocate_Empty(t *testing.T) {
	assert.Empty(t, ledger.Allocate(nil))
}

func TestAllocate_IncomeBlocks(t *testing.T) {
	salary := income(1, 1, 1, "1000")
	food := expense(2, 1, 5, "200")
	bonus := income(3, 1, 10, "500")
	rent := expense(4, 1, 12, "800")

	blocks := ledger.Allocate([]ledger.Transaction{rent, salary, bonus, food})
	require.Len(t, blocks, 2)

	require.NotNil(t, blocks[0].Income)
	assert.Equal(t, bonus, *blocks[0].Income)
	assert.Equal(t, []ledger.Transaction{rent}, blocks[0].Expenses)
	assert.True(t, dec("800").Equal(blocks[0].TotalExpense))
	assert.True(t, dec("-300").Equal(blocks[0].Remaining))

	require.NotNil(t, blocks[1].Income)
	assert.Equal(t, salary, *blocks[1].Income)
	assert.Equal(t, []ledger.Transaction{food}, blocks[1].Expenses)
	assert.True(t, dec("200").Equal(blocks[1].TotalExpense))
	assert.True(t, dec("800").Equal(blocks[1].Remaining))
}

func TestAllocate_ExpenseBeforeFirstIncome(t *testing.T) {
	early := expense(1, 1, 1, "50")
	pay := income(2, 1, 5, "100")

	blocks := ledger.Allocate([]ledger.Transaction{early, pay})
	require.Len(t, blocks, 2)

	assert.Equal(t, pay, *blocks[0].Income)
	assert.Empty(t, blocks[0].Expenses)
	assert.True(t, dec("100").Equal(blocks[0].Remaining))

	assert.Nil(t, blocks[1].Income)
	assert.Equal(t, []ledger.Transaction{early}, blocks[1].Expenses)
	assert.True(t, dec("-50").Equal(blocks[1].Remaining))
}

func TestAllocate_OnlyIncomes(t *testing.T) {
	i1 := income(1, 2, 1, "10")
	i2 := income(2, 2, 3, "25")

	blocks := ledger.Allocate([]ledger.Transaction{i2, i1})
	require.Len(t, blocks, 2)

	assert.Equal(t, i2, *blocks[0].Income)
	assert.True(t, dec("25").Equal(blocks[0].Remaining))
	assert.Empty(t, blocks[0].Expenses)
	assert.Equal(t, i1, *blocks[1].Income)
	assert.True(t, dec("10").Equal(blocks[1].Remaining))
}

func TestAllocate_OnlyExpenses(t *testing.T) {
	blocks := ledger.Allocate([]ledger.Transaction{
		expense(1, 1, 1, "5"),
		expense(2, 1, 2, "7.25"),
	})
	require.Len(t, blocks, 1)

	assert.Nil(t, blocks[0].Income)
	assert.Len(t, blocks[0].Expenses, 2)
	assert.True(t, dec("12.25").Equal(blocks[0].TotalExpense))
	assert.True(t, dec("-12.25").Equal(blocks[0].Remaining))
}

func TestAllocate_SameDayOrderedByID(t *testing.T) {
	// The expense was created before the income on the same day, so it
	// belongs to the leading block.
	spend := expense(1, 1, 1, "5")
	pay := income(2, 1, 1, "100")
	later := expense(3, 1, 1, "10")

	blocks := ledger.Allocate([]ledger.Transaction{later, pay, spend})
	require.Len(t, blocks, 2)

	assert.Equal(t, []ledger.Transaction{later}, blocks[0].Expenses)
	assert.Nil(t, blocks[1].Income)
	assert.Equal(t, []ledger.Transaction{spend}, blocks[1].Expenses)
}

func TestAllocate_PermutationInvariant(t *testing.T) {
	txs := []ledger.Transaction{
		expense(1, 1, 3, "5"),
		income(2, 1, 1, "100"),
		expense(3, 1, 2, "10"),
		income(4, 1, 7, "40"),
		expense(5, 1, 7, "60"),
		expense(6, 1, 9, "1"),
	}

	want := ledger.Allocate(txs)

	rng := rand.New(rand.NewPCG(1, 2))
	for range 20 {
		shuffled := slices.Clone(txs)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		assert.Equal(t, want, ledger.Allocate(shuffled))
	}
}

func TestAllocate_DoesNotReorderInput(t *testing.T) {
	txs := []ledger.Transaction{expense(2, 1, 9, "1"), income(1, 1, 1, "2")}
	orig := slices.Clone(txs)

	ledger.Allocate(txs)

	assert.Equal(t, orig, txs)
}

func TestSortNewestFirst(t *testing.T) {
	a := income(1, 1, 1, "1")
	b := expense(2, 1, 5, "1")
	c := expense(3, 1, 5, "1")

	assert.Equal(t, []ledger.Transaction{c, b, a}, ledger.SortNewestFirst([]ledger.Transaction{a, b, c}))
}
