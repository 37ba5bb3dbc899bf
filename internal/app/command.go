package app

import (
	"context"
	"io"

	"github.com/MrJamesThe3rd/pocketbook/internal/importer"
	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
	"github.com/MrJamesThe3rd/pocketbook/internal/member"
)

// Command is a single user intent. Commands are plain values so a sequence of
// them can be recorded and replayed.
type Command interface {
	apply(ctx context.Context, a *App) (Result, error)
}

// Result carries whatever a command produced.
type Result struct {
	Transactions []ledger.Transaction
	Member       *member.Member
}

// AddTransaction writes into the private set while private mode is active,
// otherwise into the family set under the selected member.
type AddTransaction struct {
	Params ledger.CreateParams
}

func (c AddTransaction) apply(ctx context.Context, a *App) (Result, error) {
	tx, err := a.Ledger.Add(ctx, a.state.Target(), c.Params)
	if err != nil {
		return Result{}, err
	}

	return Result{Transactions: []ledger.Transaction{tx}}, nil
}

// DeleteTransaction removes by id from the set of the current mode.
type DeleteTransaction struct {
	ID int64
}

func (c DeleteTransaction) apply(ctx context.Context, a *App) (Result, error) {
	return Result{}, a.Ledger.Delete(ctx, a.state.Scope(), c.ID)
}

type SelectMember struct {
	MemberID string
}

func (c SelectMember) apply(ctx context.Context, a *App) (Result, error) {
	if err := a.Members.Select(ctx, c.MemberID); err != nil {
		return Result{}, err
	}

	a.state.MemberID = c.MemberID

	return Result{}, nil
}

// SetPrivateMode only ever leaves private mode; entering goes through GateSubmit.
type SetPrivateMode struct {
	Enabled bool
}

func (c SetPrivateMode) apply(_ context.Context, a *App) (Result, error) {
	if c.Enabled && !a.state.Private {
		return Result{}, ErrLocked
	}

	a.state.Private = c.Enabled

	return Result{}, nil
}

// GateSubmit sets up the PIN on first use and verifies it afterwards. Success
// switches to private mode.
type GateSubmit struct {
	PIN     string
	Confirm string
}

func (c GateSubmit) apply(ctx context.Context, a *App) (Result, error) {
	if err := a.Gate.Submit(ctx, c.PIN, c.Confirm); err != nil {
		return Result{}, err
	}

	a.state.Private = true

	return Result{}, nil
}

type AddMember struct {
	Name string
}

func (c AddMember) apply(ctx context.Context, a *App) (Result, error) {
	m, err := a.Members.Add(ctx, c.Name)
	if err != nil {
		return Result{}, err
	}

	return Result{Member: &m}, nil
}

// SetMonth narrows the view to one YYYY-MM month; an empty month clears it.
type SetMonth struct {
	Month string
}

func (c SetMonth) apply(_ context.Context, a *App) (Result, error) {
	if err := ledger.ParseMonth(c.Month); err != nil {
		return Result{}, err
	}

	a.state.Month = c.Month

	return Result{}, nil
}

// ImportTransactions adds every row atomically under the current state.
type ImportTransactions struct {
	Params []ledger.CreateParams
}

// ImportCSV parses r into an ImportTransactions command.
func ImportCSV(r io.Reader) (ImportTransactions, error) {
	params, err := importer.Parse(r)
	if err != nil {
		return ImportTransactions{}, err
	}

	return ImportTransactions{Params: params}, nil
}

func (c ImportTransactions) apply(ctx context.Context, a *App) (Result, error) {
	txs, err := a.Ledger.AddBatch(ctx, a.state.Target(), c.Params)
	if err != nil {
		return Result{}, err
	}

	return Result{Transactions: txs}, nil
}
