package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store/drivers/sqlite/gen"
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// NewStore opens the database at dsn. SQLite serialises writers anyway, so
// the pool is pinned to a single connection; this also keeps ":memory:"
// databases from being recreated per connection and the foreign_keys pragma
// in force. Callers inside WithTx must only use the tx repos.
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// DB exposes the pool for stats collection.
func (s *Store) DB() *sql.DB { return s.db }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Identities() store.Identities   { return &identitiesRepo{q: s.q} }
func (s *Store) Accounts() store.Accounts       { return &accountsRepo{q: s.q} }
func (s *Store) Admins() store.Admins           { return &adminsRepo{q: s.q} }
func (s *Store) Members() store.Members         { return &membersRepo{q: s.q} }
func (s *Store) Invitations() store.Invitations { return &invitationsRepo{q: s.q} }
func (s *Store) Partners() store.Partners       { return &partnersRepo{q: s.q} }
func (s *Store) Clicks() store.Clicks           { return &clicksRepo{q: s.q} }
func (s *Store) Conversions() store.Conversions { return &conversionsRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapWriteErr turns unique and primary key violations into
// store.ErrAlreadyExists.
func mapWriteErr(err error) error {
	var se *msqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return errors.Join(store.ErrAlreadyExists, err)
		case sqlite3.SQLITE_CONSTRAINT:
			if strings.Contains(se.Error(), "UNIQUE constraint failed") {
				return errors.Join(store.ErrAlreadyExists, err)
			}
		}
	}
	return err
}

// affected converts an :execrows result into ErrNotFound when nothing matched.
func affected(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// utc normalises timestamps before they are bound. SQLite compares the stored
// text, so every value must share one offset.
func utc(t time.Time) time.Time { return t.UTC() }

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func mapNullStringPtr(ns sql.NullString) *string {
	if ns.Valid {
		val := ns.String
		return &val
	}
	return nil
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time
		return &val
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func mapIdentity(row gen.Identity) domain.Identity {
	return domain.Identity{
		ID:                 row.ID,
		Email:              row.Email,
		PasswordHash:       row.PasswordHash,
		EmailConfirmed:     row.EmailConfirmed,
		SessionsValidAfter: mapNullTimePtr(row.SessionsValidAfter),
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}

func mapAdmin(row gen.AdminUser) domain.AdminUser {
	return domain.AdminUser{
		ID:                 row.ID,
		UserID:             row.UserID,
		Email:              row.Email,
		FullName:           row.FullName,
		IsActive:           row.IsActive,
		MustChangePassword: row.MustChangePassword,
		PasswordExpiresAt:  mapNullTimePtr(row.PasswordExpiresAt),
		MFAEnabled:         mapNullTimePtr(row.MfaEnabled),
		MFASecret:          mapNullStringPtr(row.MfaSecret),
		CreatedAt:          row.CreatedAt,
		UpdatedAt:          row.UpdatedAt,
	}
}

func mapMember(row gen.Member) domain.Member {
	return domain.Member{
		ID:          row.ID,
		UserID:      row.UserID,
		Email:       row.Email,
		FullName:    row.FullName,
		CompanyName: row.CompanyName,
		Phone:       row.Phone,
		IsActive:    row.IsActive,
		IsApproved:  row.IsApproved,
		ApprovedAt:  mapNullTimePtr(row.ApprovedAt),
		ApprovedBy:  mapNullString(row.ApprovedBy),
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

func mapInvitation(row gen.InvitationToken) domain.Invitation {
	return domain.Invitation{
		ID:        row.ID,
		Kind:      domain.AccountKind(row.AccountKind),
		AccountID: row.AccountID,
		TokenHash: row.TokenHash,
		ExpiresAt: row.ExpiresAt,
		Used:      row.Used,
		UsedAt:    mapNullTimePtr(row.UsedAt),
		CreatedAt: row.CreatedAt,
	}
}

func mapPartner(row gen.Partner) domain.Partner {
	return domain.Partner{
		ID:             row.ID,
		Name:           row.Name,
		Slug:           row.Slug,
		Website:        row.Website,
		CommissionRate: int(row.CommissionRate),
		MemberID:       mapNullString(row.MemberID),
		IsActive:       row.IsActive,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}

func mapClick(row gen.Click) domain.Click {
	return domain.Click{
		ID:          row.ID,
		PartnerID:   row.PartnerID,
		VisitorID:   row.VisitorID,
		LandingPath: row.LandingPath,
		Referrer:    row.Referrer,
		UserAgent:   row.UserAgent,
		IPHash:      row.IpHash,
		CreatedAt:   row.CreatedAt,
	}
}
