package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mquintal/aitutor/internal/models"
	"github.com/mquintal/aitutor/pkg/crypto"
	"github.com/mquintal/aitutor/pkg/mail"
	"github.com/mquintal/aitutor/pkg/metrics"
)

const (
	defaultInviteTTL        = 7 * 24 * time.Hour
	defaultInviteTokenBytes = 32 // 256 bits of entropy
)

// InviteOption customises InviteService behaviour.
type InviteOption func(*InviteService)

// WithInviteTTL overrides the invite link lifetime.
func WithInviteTTL(d time.Duration) InviteOption {
	return func(s *InviteService) {
		s.ttl = d
	}
}

// WithInviteBaseURL configures the base URL used to render invite hyperlinks.
func WithInviteBaseURL(url string) InviteOption {
	return func(s *InviteService) {
		s.baseURL = strings.TrimRight(url, "/")
	}
}

// WithInviteClock injects a custom clock primarily for testing.
func WithInviteClock(clock func() time.Time) InviteOption {
	return func(s *InviteService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// InviteService manages issuance and exactly-once redemption of invite links.
type InviteService struct {
	db      *gorm.DB
	mailer  mail.Mailer
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

// NewInviteService constructs an InviteService. The mailer may be nil, in
// which case invites are issued without email dispatch.
func NewInviteService(db *gorm.DB, mailer mail.Mailer, opts ...InviteOption) (*InviteService, error) {
	if db == nil {
		return nil, errors.New("invite service: db is required")
	}

	service := &InviteService{
		db:     db,
		mailer: mailer,
		ttl:    defaultInviteTTL,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(service)
	}

	return service, nil
}

// Create issues a new invite link on behalf of createdBy. The email is
// advisory; redemption never matches against it. The raw token is returned
// exactly once and optionally dispatched by mail.
func (s *InviteService) Create(ctx context.Context, createdBy uint, email *string) (*models.InviteLink, string, error) {
	ctx = ensureContext(ctx)

	token, err := crypto.GenerateToken(defaultInviteTokenBytes)
	if err != nil {
		return nil, "", fmt.Errorf("invite service: generate token: %w", err)
	}

	now := s.now()
	invite := models.InviteLink{
		Token:     token,
		Email:     normaliseEmail(email),
		CreatedBy: createdBy,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.db.WithContext(ctx).Create(&invite).Error; err != nil {
		return nil, "", fmt.Errorf("invite service: create invite: %w", err)
	}

	if s.mailer != nil && invite.Email != nil {
		message := mail.Message{
			To:      []string{*invite.Email},
			Subject: "Your AI Tutor invitation",
			Body:    s.inviteBody(token),
		}
		if mailErr := s.mailer.Send(ctx, message); mailErr != nil && !errors.Is(mailErr, mail.ErrSMTPDisabled) {
			return nil, "", fmt.Errorf("invite service: send email: %w", mailErr)
		}
	}

	return &invite, token, nil
}

// Redeem marks the invite identified by token as used by userID. It returns
// true only when this call performed the unused-to-used transition.
//
// An unknown token and an already-used token are indistinguishable to the
// caller; both read as false. Expired invites are rejected and left unused.
func (s *InviteService) Redeem(ctx context.Context, token string, userID uint) (bool, error) {
	ctx = ensureContext(ctx)

	token = strings.TrimSpace(token)
	if token == "" {
		return false, nil
	}

	var invite models.InviteLink
	err := s.db.WithContext(ctx).
		Where("token = ? AND used = ?", token, false).
		First(&invite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			metrics.InviteRedemptions.WithLabelValues("rejected").Inc()
			return false, nil
		}
		return false, fmt.Errorf("invite service: find invite: %w", err)
	}

	// The expiry is inclusive: an invite is dead from expires_at onward,
	// so a zero TTL never redeems even on a frozen clock.
	now := s.now()
	if !invite.ExpiresAt.After(now) {
		metrics.InviteRedemptions.WithLabelValues("rejected").Inc()
		return false, nil
	}

	// The used = false guard is re-verified at write time, so concurrent
	// redeemers race on a single conditional update and at most one wins.
	res := s.db.WithContext(ctx).
		Model(&models.InviteLink{}).
		Where("id = ? AND used = ?", invite.ID, false).
		Updates(map[string]any{
			"used":    true,
			"used_by": userID,
			"used_at": now,
		})
	if res.Error != nil {
		return false, fmt.Errorf("invite service: mark used: %w", res.Error)
	}

	won := res.RowsAffected == 1
	if won {
		metrics.InviteRedemptions.WithLabelValues("accepted").Inc()
	} else {
		metrics.InviteRedemptions.WithLabelValues("rejected").Inc()
	}
	return won, nil
}

// Peek looks up an invite by token without consuming it. It returns nil for
// unknown tokens.
func (s *InviteService) Peek(ctx context.Context, token string) (*models.InviteLink, error) {
	ctx = ensureContext(ctx)

	var invite models.InviteLink
	err := s.db.WithContext(ctx).Where("token = ?", strings.TrimSpace(token)).First(&invite).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("invite service: peek invite: %w", err)
	}
	return &invite, nil
}

// GetByID looks up an invite by primary key, returning nil when absent.
func (s *InviteService) GetByID(ctx context.Context, inviteID uint) (*models.InviteLink, error) {
	ctx = ensureContext(ctx)

	var invite models.InviteLink
	err := s.db.WithContext(ctx).First(&invite, inviteID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("invite service: get invite: %w", err)
	}
	return &invite, nil
}

// ListActive returns the creator's unused, unexpired invites, newest first.
// Expired rows persist but never appear here.
func (s *InviteService) ListActive(ctx context.Context, createdBy uint) ([]models.InviteLink, error) {
	ctx = ensureContext(ctx)

	var invites []models.InviteLink
	err := s.db.WithContext(ctx).
		Where("created_by = ? AND used = ? AND expires_at > ?", createdBy, false, s.now()).
		Order("created_at DESC, id DESC").
		Find(&invites).Error
	if err != nil {
		return nil, fmt.Errorf("invite service: list active: %w", err)
	}
	return invites, nil
}

// Delete revokes an invite by id, reporting whether a row was actually
// removed.
func (s *InviteService) Delete(ctx context.Context, inviteID uint) (bool, error) {
	ctx = ensureContext(ctx)

	res := s.db.WithContext(ctx).Delete(&models.InviteLink{}, inviteID)
	if res.Error != nil {
		return false, fmt.Errorf("invite service: delete invite: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *InviteService) inviteBody(token string) string {
	link := token
	if s.baseURL != "" {
		link = fmt.Sprintf("%s?token=%s", s.baseURL, token)
	}
	return fmt.Sprintf("Hello,\n\nYou have been invited to join AI Tutor. Use the following link to sign up:\n%s\n\nIf you did not expect this email, you can ignore it.\n", link)
}
