package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/pocketbook/internal/kv/memory"
	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
	"github.com/MrJamesThe3rd/pocketbook/internal/ledger/store"
)

var clock = time.Date(2024, 1, 20, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return clock }

func params(kind ledger.Kind, amount, reason string, date ledger.Date) ledger.CreateParams {
	return ledger.CreateParams{
		Amount: decimal.RequireFromString(amount),
		Kind:   kind,
		Reason: reason,
		Date:   date,
	}
}

func newLoadedService(t *testing.T) *ledger.Service {
	t.Helper()

	svc := ledger.NewService(store.New(memory.New()), ledger.WithClock(fixedClock))
	require.NoError(t, svc.Load(context.Background()))

	return svc
}

func TestService_Add_Validation(t *testing.T) {
	date := ledger.NewDate(2024, 1, 1)

	tests := []struct {
		name    string
		params  ledger.CreateParams
		wantErr error
	}{
		{name: "ZeroAmount", params: params(ledger.KindIncome, "0", "x", date), wantErr: ledger.ErrInvalidAmount},
		{name: "NegativeAmount", params: params(ledger.KindIncome, "-5", "x", date), wantErr: ledger.ErrInvalidAmount},
		{name: "AboveMaxAmount", params: params(ledger.KindIncome, "10000000000000.01", "x", date), wantErr: ledger.ErrInvalidAmount},
		{name: "BadKind", params: params("transfer", "5", "x", date), wantErr: ledger.ErrInvalidKind},
		{name: "EmptyReason", params: params(ledger.KindExpense, "5", "   ", date), wantErr: ledger.ErrEmptyReason},
		{name: "MissingDate", params: params(ledger.KindExpense, "5", "x", ledger.Date{}), wantErr: ledger.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			// No Save* expectations: validation must fail before any write.
			repo := ledger.NewMockRepository(ctrl)
			svc := ledger.NewService(repo)

			_, err := svc.Add(context.Background(), ledger.Target{Scope: ledger.ScopeFamily}, tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, svc.Family())
		})
	}
}

func TestService_Add_AssignsIncreasingIDs(t *testing.T) {
	svc := newLoadedService(t)
	ctx := context.Background()
	target := ledger.Target{Scope: ledger.ScopeFamily, MemberID: "self"}

	first, err := svc.Add(ctx, target, params(ledger.KindIncome, "100", "Salary", ledger.NewDate(2024, 1, 1)))
	require.NoError(t, err)

	second, err := svc.Add(ctx, target, params(ledger.KindExpense, "40", "Food", ledger.NewDate(2023, 12, 1)))
	require.NoError(t, err)

	assert.Equal(t, clock.UnixMilli(), first.ID)
	assert.Greater(t, second.ID, first.ID)

	family := svc.Family()
	require.Len(t, family, 2)
	assert.Equal(t, "self", family[0].MemberID)
	assert.Equal(t, "Food", family[1].Reason)
}

func TestService_Add_DefaultMemberTag(t *testing.T) {
	svc := newLoadedService(t)

	_, err := svc.Add(context.Background(), ledger.Target{Scope: ledger.ScopeFamily},
		params(ledger.KindIncome, "1", "Gift", ledger.NewDate(2024, 1, 1)))
	require.NoError(t, err)

	assert.Equal(t, ledger.DefaultMemberID, svc.Family()[0].MemberID)
}

func TestService_AddDelete_RoundTrip(t *testing.T) {
	svc := newLoadedService(t)
	ctx := context.Background()
	target := ledger.Target{Scope: ledger.ScopeFamily, MemberID: ledger.DefaultMemberID}

	_, err := svc.Add(ctx, target, params(ledger.KindIncome, "100", "A", ledger.NewDate(2024, 1, 1)))
	require.NoError(t, err)
	_, err = svc.Add(ctx, target, params(ledger.KindExpense, "20", "B", ledger.NewDate(2024, 1, 2)))
	require.NoError(t, err)

	before := svc.Family()

	added, err := svc.Add(ctx, target, params(ledger.KindExpense, "5", "C", ledger.NewDate(2024, 1, 3)))
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, ledger.ScopeFamily, added.ID))

	assert.Equal(t, before, svc.Family())
}

func TestService_Delete_UnknownIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().LoadFamily(gomock.Any()).Return(nil, nil)
	repo.EXPECT().LoadPrivate(gomock.Any()).Return(nil, nil)

	svc := ledger.NewService(repo)
	require.NoError(t, svc.Load(context.Background()))

	assert.NoError(t, svc.Delete(context.Background(), ledger.ScopeFamily, 42))
	assert.NoError(t, svc.Delete(context.Background(), ledger.ScopePrivate, 42))
}

func TestService_ScopesAreIsolated(t *testing.T) {
	svc := newLoadedService(t)
	ctx := context.Background()

	priv, err := svc.Add(ctx, ledger.Target{Scope: ledger.ScopePrivate, MemberID: "self"},
		params(ledger.KindExpense, "9", "Secret", ledger.NewDate(2024, 1, 1)))
	require.NoError(t, err)

	fam, err := svc.Add(ctx, ledger.Target{Scope: ledger.ScopeFamily},
		params(ledger.KindExpense, "3", "Groceries", ledger.NewDate(2024, 1, 1)))
	require.NoError(t, err)

	assert.Equal(t, []ledger.Transaction{priv}, svc.Private())
	require.Len(t, svc.Family(), 1)
	assert.Equal(t, fam, svc.Family()[0].Transaction)

	// Deleting by id in the wrong scope leaves the other set alone.
	require.NoError(t, svc.Delete(ctx, ledger.ScopeFamily, priv.ID))
	assert.Len(t, svc.Private(), 1)
}

func TestService_SaveFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().LoadFamily(gomock.Any()).Return(nil, nil)
	repo.EXPECT().LoadPrivate(gomock.Any()).Return(nil, nil)
	repo.EXPECT().SavePrivate(gomock.Any(), gomock.Any()).Return(errors.New("write failed"))

	svc := ledger.NewService(repo)
	require.NoError(t, svc.Load(context.Background()))

	_, err := svc.Add(context.Background(), ledger.Target{Scope: ledger.ScopePrivate},
		params(ledger.KindIncome, "10", "Bonus", ledger.NewDate(2024, 1, 1)))
	assert.Error(t, err)
	assert.Empty(t, svc.Private())
}

func TestService_Load_MigratesLegacyMembers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	legacy := []ledger.FamilyTransaction{
		{Transaction: ledger.Transaction{ID: 1, Amount: decimal.NewFromInt(5), Kind: ledger.KindIncome, Reason: "a"}},
		{Transaction: ledger.Transaction{ID: 2, Amount: decimal.NewFromInt(5), Kind: ledger.KindIncome, Reason: "b"}, MemberID: "spouse"},
	}

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().LoadFamily(gomock.Any()).Return(legacy, nil)
	repo.EXPECT().LoadPrivate(gomock.Any()).Return(nil, nil)
	repo.EXPECT().SaveFamily(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, txs []ledger.FamilyTransaction) error {
			assert.Equal(t, ledger.DefaultMemberID, txs[0].MemberID)
			assert.Equal(t, "spouse", txs[1].MemberID)
			return nil
		})

	svc := ledger.NewService(repo)
	require.NoError(t, svc.Load(context.Background()))

	// A second load of already-migrated data writes nothing.
	repo.EXPECT().LoadFamily(gomock.Any()).Return(svc.Family(), nil)
	repo.EXPECT().LoadPrivate(gomock.Any()).Return(nil, nil)
	require.NoError(t, svc.Load(context.Background()))
}

func TestService_AddBatch(t *testing.T) {
	svc := newLoadedService(t)
	ctx := context.Background()

	rows := []ledger.CreateParams{
		params(ledger.KindIncome, "100", "Salary", ledger.NewDate(2024, 1, 1)),
		params(ledger.KindExpense, "30", "Rent", ledger.NewDate(2024, 1, 2)),
	}

	created, err := svc.AddBatch(ctx, ledger.Target{Scope: ledger.ScopeFamily, MemberID: "mother"}, rows)
	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, created[0].ID+1, created[1].ID)

	bad := append(rows, params(ledger.KindExpense, "0", "Broken", ledger.NewDate(2024, 1, 3)))
	_, err = svc.AddBatch(ctx, ledger.Target{Scope: ledger.ScopeFamily}, bad)
	assert.ErrorIs(t, err, ledger.ErrInvalidAmount)
	assert.Len(t, svc.Family(), 2)
}
