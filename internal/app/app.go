// Package app ties the ledger, members and the private gate together behind
// one explicit application state and a replayable command interface.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/MrJamesThe3rd/pocketbook/internal/gate"
	"github.com/MrJamesThe3rd/pocketbook/internal/kv"
	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
	ledgerStore "github.com/MrJamesThe3rd/pocketbook/internal/ledger/store"
	"github.com/MrJamesThe3rd/pocketbook/internal/member"
)

// ErrLocked is returned when private mode is requested without passing the gate.
var ErrLocked = errors.New("private mode requires a pin")

// State is everything that decides what the user is looking at.
type State struct {
	Private  bool
	MemberID string
	Month    string
}

func (s State) Selection() ledger.Selection {
	return ledger.Selection{Private: s.Private, MemberID: s.MemberID}
}

// Target is where an add under this state is written.
func (s State) Target() ledger.Target {
	if s.Private {
		return ledger.Target{Scope: ledger.ScopePrivate}
	}

	return ledger.Target{Scope: ledger.ScopeFamily, MemberID: s.MemberID}
}

func (s State) Scope() ledger.Scope {
	return s.Target().Scope
}

// App processes commands one at a time.
type App struct {
	Ledger  *ledger.Service
	Members *member.Service
	Gate    *gate.Gate

	mu    sync.Mutex
	state State
}

func New(ledgerSvc *ledger.Service, members *member.Service, g *gate.Gate) *App {
	return &App{
		Ledger:  ledgerSvc,
		Members: members,
		Gate:    g,
		state:   State{MemberID: ledger.DefaultMemberID},
	}
}

// NewFromStore wires every service onto a single key-value store.
func NewFromStore(store kv.Store, opts ...ledger.Option) *App {
	return New(
		ledger.NewService(ledgerStore.New(store), opts...),
		member.NewService(store),
		gate.New(store),
	)
}

// Load reads all persisted state and restores the last selected member.
func (a *App) Load(ctx context.Context) error {
	if err := a.Ledger.Load(ctx); err != nil {
		return err
	}

	if err := a.Members.Load(ctx); err != nil {
		return err
	}

	if err := a.Gate.Load(ctx); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.state = State{MemberID: a.Members.Selected()}

	slog.Debug("state loaded",
		"family", len(a.Ledger.Family()),
		"private", len(a.Ledger.Private()),
		"member", a.state.MemberID,
		"gate", a.Gate.State().String())

	return nil
}

func (a *App) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.state
}

// Apply runs cmd against the current state.
func (a *App) Apply(ctx context.Context, cmd Command) (Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.run(ctx, cmd)
}

// ApplyAs runs cmd against st instead of the session state, which is left
// untouched. Stateless callers such as HTTP handlers carry their state per request.
func (a *App) ApplyAs(ctx context.Context, st State, cmd Command) (Result, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	saved := a.state
	a.state = st

	defer func() { a.state = saved }()

	return a.run(ctx, cmd)
}

func (a *App) run(ctx context.Context, cmd Command) (Result, error) {
	res, err := cmd.apply(ctx, a)
	if err != nil {
		slog.Debug("command rejected", "command", fmt.Sprintf("%T", cmd), "error", err)
		return Result{}, err
	}

	slog.Debug("command applied", "command", fmt.Sprintf("%T", cmd), "private", a.state.Private, "member", a.state.MemberID)

	return res, nil
}

// View is the derived data a renderer needs for the current state.
type View struct {
	State        State
	Transactions []ledger.Transaction
	Totals       ledger.Totals
	Blocks       []ledger.Block
}

// View resolves the active partition, applies the month filter and derives
// totals and income blocks from what remains.
func (a *App) View() View {
	a.mu.Lock()
	st := a.state
	a.mu.Unlock()

	return Snapshot(st, a.Ledger)
}

// Snapshot derives a View for an explicit state without touching any App.
func Snapshot(st State, svc *ledger.Service) View {
	var family []ledger.FamilyTransaction
	if !st.Private {
		family = svc.Family()
	}

	var private []ledger.Transaction
	if st.Private {
		private = svc.Private()
	}

	visible := ledger.FilterMonth(ledger.Resolve(st.Selection(), family, private), st.Month)

	return View{
		State:        st,
		Transactions: ledger.SortNewestFirst(visible),
		Totals:       ledger.ComputeTotals(visible),
		Blocks:       ledger.Allocate(visible),
	}
}
