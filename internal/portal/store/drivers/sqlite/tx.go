package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/partnerportal/internal/portal/store"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store/drivers/sqlite/gen"
)

type txStore struct {
	tx *sql.Tx
	q  *gen.Queries
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{
		tx: tx,
		q:  gen.New(tx),
	}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error                   { return nil } // the outer DB stays open
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Identities() store.Identities   { return &identitiesRepo{q: t.q} }
func (t *txStore) Accounts() store.Accounts       { return &accountsRepo{q: t.q} }
func (t *txStore) Admins() store.Admins           { return &adminsRepo{q: t.q} }
func (t *txStore) Members() store.Members         { return &membersRepo{q: t.q} }
func (t *txStore) Invitations() store.Invitations { return &invitationsRepo{q: t.q} }
func (t *txStore) Partners() store.Partners       { return &partnersRepo{q: t.q} }
func (t *txStore) Clicks() store.Clicks           { return &clicksRepo{q: t.q} }
func (t *txStore) Conversions() store.Conversions { return &conversionsRepo{q: t.q} }

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
