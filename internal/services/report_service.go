package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/mquintal/aitutor/internal/models"
	apperrors "github.com/mquintal/aitutor/pkg/errors"
	"github.com/mquintal/aitutor/pkg/mail"
)

// ReportOption customises ReportService behaviour.
type ReportOption func(*ReportService)

// WithReportClock injects a custom clock primarily for testing.
func WithReportClock(clock func() time.Time) ReportOption {
	return func(s *ReportService) {
		if clock != nil {
			s.now = clock
		}
	}
}

// ReportService persists progress reports and their delivery status. Report
// rendering happens upstream; only the file path is stored here.
type ReportService struct {
	db     *gorm.DB
	mailer mail.Mailer
	now    func() time.Time
}

// NewReportService constructs a ReportService. The mailer may be nil when
// email delivery is disabled.
func NewReportService(db *gorm.DB, mailer mail.Mailer, opts ...ReportOption) (*ReportService, error) {
	if db == nil {
		return nil, errors.New("report service: db is required")
	}

	service := &ReportService{db: db, mailer: mailer, now: time.Now}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// Add stores a new report for a user with generated_at = now.
func (s *ReportService) Add(ctx context.Context, userID uint, title, reportPath string) (*models.ProgressReport, error) {
	ctx = ensureContext(ctx)

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, apperrors.NewBadRequest("title is required")
	}

	report := &models.ProgressReport{
		UserID:      userID,
		Title:       title,
		GeneratedAt: s.now(),
		ReportPath:  reportPath,
	}

	if err := s.db.WithContext(ctx).Create(report).Error; err != nil {
		if isForeignKeyError(err) {
			return nil, apperrors.ErrConstraintViolation.WithInternal(err)
		}
		return nil, fmt.Errorf("report service: add report: %w", err)
	}
	return report, nil
}

// UpdateEmailStatus records a delivery event, setting emailed_to and
// emailed_at together. Re-delivery overwrites both.
func (s *ReportService) UpdateEmailStatus(ctx context.Context, reportID uint, emailedTo string) error {
	ctx = ensureContext(ctx)

	err := s.db.WithContext(ctx).
		Model(&models.ProgressReport{}).
		Where("id = ?", reportID).
		Updates(map[string]any{
			"emailed_to": emailedTo,
			"emailed_at": s.now(),
		}).Error
	if err != nil {
		return fmt.Errorf("report service: update email status: %w", err)
	}
	return nil
}

// ListForUser returns a user's reports ordered newest-generated first.
func (s *ReportService) ListForUser(ctx context.Context, userID uint) ([]models.ProgressReport, error) {
	ctx = ensureContext(ctx)

	var reports []models.ProgressReport
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("generated_at DESC, id DESC").
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("report service: list reports: %w", err)
	}
	return reports, nil
}

// EmailReport sends the report notification to the given address and records
// the delivery. Composition of send-then-record lives here so handlers stay
// thin; a failed send leaves the email status untouched.
func (s *ReportService) EmailReport(ctx context.Context, reportID uint, emailedTo string) error {
	ctx = ensureContext(ctx)

	var report models.ProgressReport
	if err := s.db.WithContext(ctx).First(&report, reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("report service: find report: %w", err)
	}

	if s.mailer != nil {
		message := mail.Message{
			To:      []string{emailedTo},
			Subject: fmt.Sprintf("Progress report: %s", report.Title),
			Body:    fmt.Sprintf("Hello,\n\nA new progress report (%s) is available at %s.\n", report.Title, report.ReportPath),
		}
		if err := s.mailer.Send(ctx, message); err != nil && !errors.Is(err, mail.ErrSMTPDisabled) {
			return fmt.Errorf("report service: send email: %w", err)
		}
	}

	return s.UpdateEmailStatus(ctx, reportID, emailedTo)
}
