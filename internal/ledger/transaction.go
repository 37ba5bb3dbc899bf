package ledger

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the direction of a transaction.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// Scope identifies one of the two independent transaction sets.
type Scope int

const (
	ScopeFamily Scope = iota
	ScopePrivate
)

func (s Scope) String() string {
	if s == ScopePrivate {
		return "private"
	}

	return "family"
}

// DefaultMemberID means "all members" when filtering and is also the tag
// written onto family transactions added while no specific member is selected.
const DefaultMemberID = "default"

// MaxAmount bounds a single transaction so totals stay representable in
// int64 minor units.
var MaxAmount = decimal.New(1, 13)

var (
	ErrInvalidAmount = errors.New("amount must be greater than zero and at most 10^13")
	ErrInvalidKind   = errors.New("type must be income or expense")
	ErrEmptyReason   = errors.New("reason cannot be empty")
	ErrInvalidDate   = errors.New("date is required")
	ErrInvalidMonth  = errors.New("month must be formatted as YYYY-MM")
)

// Date is a calendar date without time of day, serialized as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}

	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format(time.DateOnly)
}

// MonthKey returns the zero-padded YYYY-MM month of the date.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}

	// Some older records carry a full timestamp.
	if len(s) > len(time.DateOnly) {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("parsing date %q: %w", s, err)
		}

		*d = NewDate(t.Year(), t.Month(), t.Day())

		return nil
	}

	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}

	*d = parsed

	return nil
}

// Transaction is a single income or expense entry. Records are never
// modified after creation.
type Transaction struct {
	ID     int64
	Amount decimal.Decimal
	Kind   Kind
	Reason string
	Date   Date
}

// FamilyTransaction is a transaction of the family set, attributed to a member.
type FamilyTransaction struct {
	Transaction
	MemberID string
}

// CreateParams holds the user-supplied fields of a new transaction.
type CreateParams struct {
	Amount decimal.Decimal
	Kind   Kind
	Reason string
	Date   Date
}

func (p CreateParams) Validate() error {
	if !p.Amount.IsPositive() || p.Amount.GreaterThan(MaxAmount) {
		return ErrInvalidAmount
	}

	if !p.Kind.Valid() {
		return ErrInvalidKind
	}

	if strings.TrimSpace(p.Reason) == "" {
		return ErrEmptyReason
	}

	if p.Date.IsZero() {
		return ErrInvalidDate
	}

	return nil
}

// Target names the set a new transaction is written to. MemberID is only
// meaningful for ScopeFamily.
type Target struct {
	Scope    Scope
	MemberID string
}
