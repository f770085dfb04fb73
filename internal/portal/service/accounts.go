package service

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store"
)

// accountRef is the part of either account class the token flows need.
type accountRef struct {
	Kind        domain.AccountKind
	ID          string
	UserID      string
	Email       string
	FullName    string
	CompanyName string
	IsActive    bool
	IsApproved  bool
}

func loadAccount(ctx context.Context, st store.Store, kind domain.AccountKind, id string) (accountRef, error) {
	switch kind {
	case domain.KindAdmin:
		a, err := st.Admins().GetAdminByID(ctx, id)
		if err != nil {
			return accountRef{}, notFound(err)
		}
		return accountRef{
			Kind: kind, ID: a.ID, UserID: a.UserID, Email: a.Email, FullName: a.FullName,
			IsActive: a.IsActive, IsApproved: true,
		}, nil
	case domain.KindMember:
		m, err := st.Members().GetMemberByID(ctx, id)
		if err != nil {
			return accountRef{}, notFound(err)
		}
		return accountRef{
			Kind: kind, ID: m.ID, UserID: m.UserID, Email: m.Email, FullName: m.FullName,
			CompanyName: m.CompanyName, IsActive: m.IsActive, IsApproved: m.IsApproved,
		}, nil
	default:
		return accountRef{}, invalid("invalid input", "unknown account kind")
	}
}

// emailTaken checks the shared lookup across both account classes.
func emailTaken(ctx context.Context, st store.Store, email string) error {
	_, err := st.Accounts().FindAccountByEmail(ctx, email)
	switch {
	case err == nil:
		return &ConflictError{Email: email}
	case errors.Is(err, store.ErrNotFound):
		return nil
	default:
		return upstream("lookup email", err)
	}
}

func notFound(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func clock(now func() time.Time) time.Time {
	if now != nil {
		return now().UTC()
	}
	return time.Now().UTC()
}
