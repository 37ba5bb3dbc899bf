// Package store persists the ledger's transaction sets as JSON arrays in a
// kv.Store, one key per set.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/pocketbook/internal/kv"
	"github.com/MrJamesThe3rd/pocketbook/internal/ledger"
)

type Store struct {
	kv kv.Store
}

func New(store kv.Store) *Store {
	return &Store{kv: store}
}

// record is the persisted shape of a transaction. Amounts are kept as JSON
// numbers so older data written as plain numbers reads back unchanged.
type record struct {
	ID       int64       `json:"id"`
	Amount   json.Number `json:"amount"`
	Type     ledger.Kind `json:"type"`
	Reason   string      `json:"reason"`
	Date     ledger.Date `json:"date"`
	MemberID string      `json:"memberId,omitempty"`
}

func toRecord(tx ledger.Transaction) record {
	return record{
		ID:     tx.ID,
		Amount: json.Number(tx.Amount.String()),
		Type:   tx.Kind,
		Reason: tx.Reason,
		Date:   tx.Date,
	}
}

func (r record) transaction() (ledger.Transaction, error) {
	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return ledger.Transaction{}, fmt.Errorf("parsing amount of transaction %d: %w", r.ID, err)
	}

	// An unknown type would silently fall out of every total.
	if !r.Type.Valid() {
		return ledger.Transaction{}, fmt.Errorf("transaction %d: %w", r.ID, ledger.ErrInvalidKind)
	}

	return ledger.Transaction{
		ID:     r.ID,
		Amount: amount,
		Kind:   r.Type,
		Reason: r.Reason,
		Date:   r.Date,
	}, nil
}

func (s *Store) load(ctx context.Context, key string) ([]record, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}

	if !ok || raw == "" {
		return nil, nil
	}

	var records []record
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", key, err)
	}

	return records, nil
}

func (s *Store) save(ctx context.Context, key string, records []record) error {
	if records == nil {
		records = []record{}
	}

	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}

	return s.kv.Set(ctx, key, string(raw))
}

func (s *Store) LoadFamily(ctx context.Context) ([]ledger.FamilyTransaction, error) {
	records, err := s.load(ctx, kv.KeyFamilyTransactions)
	if err != nil {
		return nil, err
	}

	txs := make([]ledger.FamilyTransaction, 0, len(records))

	for _, r := range records {
		tx, err := r.transaction()
		if err != nil {
			return nil, err
		}

		txs = append(txs, ledger.FamilyTransaction{Transaction: tx, MemberID: r.MemberID})
	}

	return txs, nil
}

func (s *Store) SaveFamily(ctx context.Context, txs []ledger.FamilyTransaction) error {
	records := make([]record, len(txs))
	for i, tx := range txs {
		records[i] = toRecord(tx.Transaction)
		records[i].MemberID = tx.MemberID
	}

	return s.save(ctx, kv.KeyFamilyTransactions, records)
}

func (s *Store) LoadPrivate(ctx context.Context) ([]ledger.Transaction, error) {
	records, err := s.load(ctx, kv.KeyPrivateTransactions)
	if err != nil {
		return nil, err
	}

	txs := make([]ledger.Transaction, 0, len(records))

	for _, r := range records {
		tx, err := r.transaction()
		if err != nil {
			return nil, err
		}

		txs = append(txs, tx)
	}

	return txs, nil
}

func (s *Store) SavePrivate(ctx context.Context, txs []ledger.Transaction) error {
	records := make([]record, len(txs))
	for i, tx := range txs {
		records[i] = toRecord(tx)
	}

	return s.save(ctx, kv.KeyPrivateTransactions, records)
}
