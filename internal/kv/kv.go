// Package kv defines the durable string key-value store that backs every
// piece of persisted application state.
package kv

import "context"

// Keys under which application state is persisted.
const (
	KeyFamilyTransactions  = "transactions"
	KeyPrivateTransactions = "privateTransactions"
	KeyCustomMembers       = "customMembers"
	KeySelectedMember      = "selectedMember"
	KeyPrivatePIN          = "privatePin"
)

//go:generate mockgen -source=kv.go -destination=store_mock.go -package=kv
type Store interface {
	// Get returns the value stored under key. A missing key is reported
	// with ok == false and a nil error.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}
