// Package memstore implements the store interfaces in memory. It backs
// the controller tests and mirrors the semantics of mongostore,
// including unique keys and not-found sentinels.
package memstore

import (
	"context"
	"time"

	"github.com/nphn2028thief/shoes-store-server/store"
)

// New builds the full in-memory store bundle.
func New() *store.Stores {
	return &store.Stores{
		Accounts:   NewAccountStore(),
		Products:   NewProductStore(),
		Categories: NewCategoryStore(),
		Carts:      NewCartStore(),
		Orders:     NewOrderStore(),
		Addresses:  NewAddressStore(),
		Runner:     runner{},
	}
}

// runner just executes the function. Each store guards its own state
// with a mutex, which is enough for single-writer tests.
type runner struct{}

func (runner) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func now() time.Time {
	return time.Now().UTC()
}
