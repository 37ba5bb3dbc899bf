// Package gate implements the PIN check guarding the private ledger.
//
// The gate starts without a PIN. The first successful setup stores one;
// afterwards every entry is a verify against the stored PIN. Failed attempts
// change nothing and may be retried without limit.
package gate

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"unicode/utf8"

	"github.com/MrJamesThe3rd/pocketbook/internal/kv"
)

const PINLength = 6

var (
	ErrInvalidLength = errors.New("pin must be exactly 6 characters")
	ErrNonNumeric    = errors.New("pin must contain only digits")
	ErrMismatch      = errors.New("pins do not match")
	ErrRejected      = errors.New("incorrect pin")
	ErrNotSet        = errors.New("no pin has been set")
	ErrAlreadySet    = errors.New("pin is already set")
)

var pinPattern = regexp.MustCompile(`^[0-9]{6}$`)

type State int

const (
	StateNoPIN State = iota
	StatePINSet
)

func (s State) String() string {
	if s == StatePINSet {
		return "pin_set"
	}

	return "no_pin"
}

type Gate struct {
	kv kv.Store

	mu  sync.Mutex
	pin string
}

func New(store kv.Store) *Gate {
	return &Gate{kv: store}
}

// Load reads the stored PIN, if any.
func (g *Gate) Load(ctx context.Context) error {
	pin, ok, err := g.kv.Get(ctx, kv.KeyPrivatePIN)
	if err != nil {
		return fmt.Errorf("loading pin: %w", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.pin = ""
	if ok && pinPattern.MatchString(pin) {
		g.pin = pin
	}

	return nil
}

func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pin == "" {
		return StateNoPIN
	}

	return StatePINSet
}

func checkFormat(pins ...string) error {
	for _, p := range pins {
		if utf8.RuneCountInString(p) != PINLength {
			return ErrInvalidLength
		}
	}

	for _, p := range pins {
		if !pinPattern.MatchString(p) {
			return ErrNonNumeric
		}
	}

	return nil
}

// SubmitSetup stores pin as the private PIN when both entries are well formed
// and equal.
func (g *Gate) SubmitSetup(ctx context.Context, pin, confirm string) error {
	if err := checkFormat(pin, confirm); err != nil {
		return err
	}

	if pin != confirm {
		return ErrMismatch
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pin != "" {
		return ErrAlreadySet
	}

	if err := g.kv.Set(ctx, kv.KeyPrivatePIN, pin); err != nil {
		return fmt.Errorf("saving pin: %w", err)
	}

	g.pin = pin

	return nil
}

// SubmitVerify grants entry when pin equals the stored PIN.
func (g *Gate) SubmitVerify(pin string) error {
	if err := checkFormat(pin); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pin == "" {
		return ErrNotSet
	}

	if pin != g.pin {
		return ErrRejected
	}

	return nil
}

// Submit takes the setup path while no PIN exists and the verify path after.
// confirm is ignored once a PIN is set.
func (g *Gate) Submit(ctx context.Context, pin, confirm string) error {
	if g.State() == StateNoPIN {
		return g.SubmitSetup(ctx, pin, confirm)
	}

	return g.SubmitVerify(pin)
}
