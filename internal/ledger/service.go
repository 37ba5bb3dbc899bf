package ledger

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=ledger
type Repository interface {
	// LoadFamily returns the persisted family set; a missing set is empty.
	LoadFamily(ctx context.Context) ([]FamilyTransaction, error)
	SaveFamily(ctx context.Context, txs []FamilyTransaction) error
	LoadPrivate(ctx context.Context) ([]Transaction, error)
	SavePrivate(ctx context.Context, txs []Transaction) error
}

// Service owns the family and private transaction sets. Every mutation is
// validated first, then applied and persisted as a whole set; a failed write
// leaves the in-memory set as it was.
type Service struct {
	repo Repository
	now  func() time.Time

	mu      sync.Mutex
	family  []FamilyTransaction
	private []Transaction
}

type Option func(*Service)

// WithClock overrides the clock used to derive transaction ids.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load reads both sets from the repository. Family records persisted before
// members existed are tagged with DefaultMemberID and written back.
func (s *Service) Load(ctx context.Context) error {
	family, err := s.repo.LoadFamily(ctx)
	if err != nil {
		return fmt.Errorf("loading family transactions: %w", err)
	}

	private, err := s.repo.LoadPrivate(ctx)
	if err != nil {
		return fmt.Errorf("loading private transactions: %w", err)
	}

	if migrateMembers(family) {
		if err := s.repo.SaveFamily(ctx, family); err != nil {
			return fmt.Errorf("saving migrated family transactions: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.family = family
	s.private = private

	return nil
}

func migrateMembers(txs []FamilyTransaction) bool {
	changed := false

	for i := range txs {
		if txs[i].MemberID == "" {
			txs[i].MemberID = DefaultMemberID
			changed = true
		}
	}

	return changed
}

// Family returns the family set in insertion order.
func (s *Service) Family() []FamilyTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.family)
}

// Private returns the private set in insertion order.
func (s *Service) Private() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.private)
}

func (s *Service) Add(ctx context.Context, target Target, params CreateParams) (Transaction, error) {
	txs, err := s.AddBatch(ctx, target, []CreateParams{params})
	if err != nil {
		return Transaction{}, err
	}

	return txs[0], nil
}

// AddBatch validates every entry before appending any of them, then persists
// the target set once.
func (s *Service) AddBatch(ctx context.Context, target Target, params []CreateParams) ([]Transaction, error) {
	if len(params) == 0 {
		return nil, nil
	}

	for i, p := range params {
		if err := p.Validate(); err != nil {
			if len(params) == 1 {
				return nil, err
			}

			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	created := make([]Transaction, len(params))

	switch target.Scope {
	case ScopePrivate:
		id := s.nextID(maxID(s.private, func(t Transaction) int64 { return t.ID }))

		next := slices.Clone(s.private)
		for i, p := range params {
			created[i] = newTransaction(id+int64(i), p)
			next = append(next, created[i])
		}

		if err := s.repo.SavePrivate(ctx, next); err != nil {
			return nil, fmt.Errorf("saving private transactions: %w", err)
		}

		s.private = next
	default:
		memberID := target.MemberID
		if memberID == "" {
			memberID = DefaultMemberID
		}

		id := s.nextID(maxID(s.family, func(t FamilyTransaction) int64 { return t.ID }))

		next := slices.Clone(s.family)
		for i, p := range params {
			created[i] = newTransaction(id+int64(i), p)
			next = append(next, FamilyTransaction{Transaction: created[i], MemberID: memberID})
		}

		if err := s.repo.SaveFamily(ctx, next); err != nil {
			return nil, fmt.Errorf("saving family transactions: %w", err)
		}

		s.family = next
	}

	return created, nil
}

// Delete removes the transaction with the given id from the scope's set.
// Unknown ids are ignored.
func (s *Service) Delete(ctx context.Context, scope Scope, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch scope {
	case ScopePrivate:
		idx := slices.IndexFunc(s.private, func(t Transaction) bool { return t.ID == id })
		if idx < 0 {
			return nil
		}

		next := slices.Delete(slices.Clone(s.private), idx, idx+1)
		if err := s.repo.SavePrivate(ctx, next); err != nil {
			return fmt.Errorf("saving private transactions: %w", err)
		}

		s.private = next
	default:
		idx := slices.IndexFunc(s.family, func(t FamilyTransaction) bool { return t.ID == id })
		if idx < 0 {
			return nil
		}

		next := slices.Delete(slices.Clone(s.family), idx, idx+1)
		if err := s.repo.SaveFamily(ctx, next); err != nil {
			return fmt.Errorf("saving family transactions: %w", err)
		}

		s.family = next
	}

	return nil
}

// nextID derives an id from the creation time, bumped past the highest id
// already in the set so ids stay unique and increasing.
func (s *Service) nextID(highest int64) int64 {
	id := s.now().UnixMilli()
	if id <= highest {
		id = highest + 1
	}

	return id
}

func maxID[T any](txs []T, id func(T) int64) int64 {
	var highest int64

	for _, t := range txs {
		highest = max(highest, id(t))
	}

	return highest
}

func newTransaction(id int64, p CreateParams) Transaction {
	return Transaction{
		ID:     id,
		Amount: p.Amount,
		Kind:   p.Kind,
		Reason: strings.TrimSpace(p.Reason),
		Date:   p.Date,
	}
}
