package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/partnerportal/internal/portal/domain"
	"github.com/aussiebroadwan/partnerportal/internal/portal/identity"
	"github.com/aussiebroadwan/partnerportal/internal/portal/metrics"
	"github.com/aussiebroadwan/partnerportal/internal/portal/notify"
	"github.com/aussiebroadwan/partnerportal/internal/portal/store"
	"github.com/aussiebroadwan/partnerportal/pkg/idx"
	"github.com/aussiebroadwan/partnerportal/pkg/slogx"
	"golang.org/x/sync/errgroup"
)

// DefaultEmailConcurrency bounds parallel sends in BulkApprove.
const DefaultEmailConcurrency = 4

// MemberService owns registration and the approval gate.
type MemberService struct {
	Store    store.Store
	Identity identity.Provider
	Notifier *notify.Notifier
	Metrics  *metrics.Metrics

	Policy           domain.PasswordPolicy
	EmailConcurrency int
	Now              func() time.Time
}

type RegisterMemberRequest struct {
	Email       string
	Password    string
	FullName    string
	CompanyName string
	Phone       string
}

type RegistrationResult struct {
	Member            domain.Member
	AdminNotification notify.Outcome
}

type ApprovalResult struct {
	Member       domain.Member
	Changed      bool
	Notification notify.Outcome
}

type ApprovedMember struct {
	Member       domain.Member
	Notification notify.Outcome
}

type BulkApprovalResult struct {
	Approved     []ApprovedMember
	EmailsSent   int
	EmailsFailed int
}

type MemberFilter struct {
	Pending *bool
}

// Register is public self-registration. The member starts pending and the
// active admins are told about it.
func (s *MemberService) Register(ctx context.Context, req RegisterMemberRequest) (RegistrationResult, error) {
	l := slogx.FromContext(ctx)

	email, err := checkEmail(req.Email)
	if err != nil {
		return RegistrationResult{}, err
	}
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return RegistrationResult{}, invalid("invalid input", "full_name is required")
	}
	if err := checkPassword(s.Policy, req.Password); err != nil {
		return RegistrationResult{}, err
	}
	if err := emailTaken(ctx, s.Store, email); err != nil {
		return RegistrationResult{}, err
	}

	user, err := s.Identity.CreateUser(ctx, email, req.Password, false)
	if err != nil {
		if errors.Is(err, identity.ErrEmailExists) {
			return RegistrationResult{}, &ConflictError{Email: email}
		}
		return RegistrationResult{}, upstream("create identity", err)
	}

	now := clock(s.Now)
	member := domain.Member{
		ID:          idx.NewAt(now).String(),
		UserID:      user.ID,
		Email:       email,
		FullName:    name,
		CompanyName: strings.TrimSpace(req.CompanyName),
		Phone:       strings.TrimSpace(req.Phone),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Members().CreateMember(ctx, member); err != nil {
		if derr := s.Identity.DeleteUser(ctx, user.ID); derr != nil {
			l.Error("failed to remove orphaned identity", slog.String("user_id", user.ID), slogx.Err(derr))
		}
		return RegistrationResult{}, persistErr("create member", email, err)
	}

	outcome := s.Notifier.RegistrationReceived(ctx, s.adminEmails(ctx), member.FullName, member.Email, member.CompanyName)
	l.Info("member registered",
		slog.String("member_id", member.ID),
		slog.Bool("admins_notified", outcome.Sent),
	)

	return RegistrationResult{Member: member, AdminNotification: outcome}, nil
}

func (s *MemberService) adminEmails(ctx context.Context) []string {
	admins, err := s.Store.Admins().ListAdmins(ctx)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to list admins for notification", slogx.Err(err))
		return nil
	}
	out := make([]string, 0, len(admins))
	for _, a := range admins {
		if a.IsActive {
			out = append(out, a.Email)
		}
	}
	return out
}

// Approve lets a pending member through the gate. Approving an approved
// member succeeds with Changed false and sends nothing.
func (s *MemberService) Approve(ctx context.Context, memberID, adminID string) (ApprovalResult, error) {
	l := slogx.FromContext(ctx)

	if _, err := s.Store.Members().GetMemberByID(ctx, memberID); err != nil {
		return ApprovalResult{}, notFound(err)
	}

	changed, err := s.Store.Members().ApproveMember(ctx, memberID, adminID, clock(s.Now))
	if err != nil {
		return ApprovalResult{}, upstream("approve member", err)
	}

	m, err := s.Store.Members().GetMemberByID(ctx, memberID)
	if err != nil {
		return ApprovalResult{}, notFound(err)
	}
	if !changed {
		return ApprovalResult{Member: m}, nil
	}

	s.Metrics.MembersApproved(1)
	outcome := s.Notifier.MemberApproved(ctx, m.Email, m.FullName)
	l.Info("member approved",
		slog.String("member_id", m.ID),
		slog.String("approved_by", adminID),
		slog.Bool("email_sent", outcome.Sent),
	)

	return ApprovalResult{Member: m, Changed: true, Notification: outcome}, nil
}

// BulkApprove approves every pending member in one transaction, then emails
// them in parallel. Email failures are reported per member.
func (s *MemberService) BulkApprove(ctx context.Context, adminID string) (BulkApprovalResult, error) {
	l := slogx.FromContext(ctx)

	var approved []domain.Member
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		approved, err = tx.Members().ApprovePendingMembers(ctx, adminID, clock(s.Now))
		return err
	})
	if err != nil {
		return BulkApprovalResult{}, upstream("approve pending members", err)
	}

	res := BulkApprovalResult{Approved: make([]ApprovedMember, len(approved))}
	limit := s.EmailConcurrency
	if limit <= 0 {
		limit = DefaultEmailConcurrency
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, m := range approved {
		g.Go(func() error {
			res.Approved[i] = ApprovedMember{
				Member:       m,
				Notification: s.Notifier.MemberApproved(ctx, m.Email, m.FullName),
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, a := range res.Approved {
		if a.Notification.Sent {
			res.EmailsSent++
		} else {
			res.EmailsFailed++
		}
	}

	s.Metrics.MembersApproved(len(approved))
	l.Info("pending members approved",
		slog.Int("approved", len(approved)),
		slog.Int("emails_sent", res.EmailsSent),
		slog.Int("emails_failed", res.EmailsFailed),
		slog.String("approved_by", adminID),
	)
	return res, nil
}

// SetActive toggles the member's access. Deactivation also revokes every
// session the member holds. Approval is left untouched either way.
func (s *MemberService) SetActive(ctx context.Context, memberID string, active bool) (domain.Member, error) {
	l := slogx.FromContext(ctx)

	m, err := s.Store.Members().GetMemberByID(ctx, memberID)
	if err != nil {
		return domain.Member{}, notFound(err)
	}
	if err := s.Store.Members().SetMemberActive(ctx, memberID, active, clock(s.Now)); err != nil {
		return domain.Member{}, notFound(err)
	}
	if !active {
		if err := s.Identity.RevokeSessions(ctx, m.UserID); err != nil {
			l.Error("failed to revoke member sessions", slog.String("member_id", m.ID), slogx.Err(err))
		}
	}
	l.Info("member active flag changed", slog.String("member_id", m.ID), slog.Bool("active", active))

	m.IsActive = active
	return m, nil
}

// Delete removes the member profile and then its identity.
func (s *MemberService) Delete(ctx context.Context, memberID string) error {
	m, err := s.Store.Members().GetMemberByID(ctx, memberID)
	if err != nil {
		return notFound(err)
	}
	if err := s.Store.Members().DeleteMember(ctx, memberID); err != nil {
		return notFound(err)
	}
	if err := s.Identity.DeleteUser(ctx, m.UserID); err != nil && !errors.Is(err, identity.ErrNotFound) {
		return upstream("delete identity", err)
	}
	slogx.FromContext(ctx).Info("member deleted", slog.String("member_id", m.ID))
	return nil
}

func (s *MemberService) Get(ctx context.Context, memberID string) (domain.Member, error) {
	m, err := s.Store.Members().GetMemberByID(ctx, memberID)
	if err != nil {
		return domain.Member{}, notFound(err)
	}
	return m, nil
}

func (s *MemberService) List(ctx context.Context, f MemberFilter) ([]domain.Member, error) {
	return s.Store.Members().ListMembers(ctx, f.Pending)
}
