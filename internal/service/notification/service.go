package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-agenda/internal/locale"
	"github.com/jwalitptl/clinic-agenda/internal/model"
	"github.com/jwalitptl/clinic-agenda/internal/repository"
	"github.com/jwalitptl/clinic-agenda/internal/service/audit"
	apperrors "github.com/jwalitptl/clinic-agenda/pkg/errors"
	"github.com/jwalitptl/clinic-agenda/pkg/logger"
	"github.com/jwalitptl/clinic-agenda/pkg/metrics"
)

type Service interface {
	Post(ctx context.Context, kind model.NotificationKind, title, message string) (*model.Notification, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	Remove(ctx context.Context, id uuid.UUID) error
	UnreadCount(ctx context.Context) (int, error)
	List(ctx context.Context) ([]*model.Notification, error)
	RelativeAge(n *model.Notification, now time.Time) string
}

// SubscribeOptions selects which domain events produce a notice.
type SubscribeOptions struct {
	AppointmentCreated bool
}

type service struct {
	repo    repository.NotificationRepository
	catalog *locale.Catalog
	auditor *audit.Service
	metrics *metrics.Metrics
	logger  *logger.Logger
	now     func() time.Time
}

func NewService(repo repository.NotificationRepository, catalog *locale.Catalog, auditor *audit.Service, m *metrics.Metrics, log *logger.Logger) Service {
	return newService(repo, catalog, auditor, m, log)
}

func newService(repo repository.NotificationRepository, catalog *locale.Catalog, auditor *audit.Service, m *metrics.Metrics, log *logger.Logger) *service {
	return &service{
		repo:    repo,
		catalog: catalog,
		auditor: auditor,
		metrics: m,
		logger:  log.With("notification"),
		now:     time.Now,
	}
}

// Post puts an unread notice at the top of the feed.
func (s *service) Post(ctx context.Context, kind model.NotificationKind, title, message string) (*model.Notification, error) {
	n := &model.Notification{
		ID:        uuid.New(),
		Kind:      kind,
		Title:     title,
		Message:   message,
		CreatedAt: s.now(),
	}

	if err := s.repo.Prepend(ctx, n); err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to create notification: %w", err))
	}

	s.metrics.NotificationsPosted.WithLabelValues(string(kind)).Inc()
	s.logger.Info("notification posted", "id", n.ID.String(), "kind", string(kind))
	s.syncUnread(ctx)
	s.audit(ctx, model.AuditActionCreate, n.ID, n)

	return n, nil
}

// MarkRead flags the notice as read. Unknown ids are ignored.
func (s *service) MarkRead(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.MarkRead(ctx, id)
	if err != nil {
		return apperrors.NewInternal(fmt.Errorf("failed to mark notification read: %w", err))
	}
	if !found {
		s.logger.Debug("mark read on unknown notification", "id", id.String())
		return nil
	}

	s.syncUnread(ctx)
	s.audit(ctx, model.AuditActionUpdate, id, map[string]bool{"read": true})
	return nil
}

// Remove drops the notice from the feed. Unknown ids are ignored.
func (s *service) Remove(ctx context.Context, id uuid.UUID) error {
	found, err := s.repo.Remove(ctx, id)
	if err != nil {
		return apperrors.NewInternal(fmt.Errorf("failed to remove notification: %w", err))
	}
	if !found {
		s.logger.Debug("remove on unknown notification", "id", id.String())
		return nil
	}

	s.syncUnread(ctx)
	s.audit(ctx, model.AuditActionDelete, id, nil)
	return nil
}

func (s *service) UnreadCount(ctx context.Context) (int, error) {
	count, err := s.repo.UnreadCount(ctx)
	if err != nil {
		return 0, apperrors.NewInternal(fmt.Errorf("failed to count unread notifications: %w", err))
	}
	return count, nil
}

func (s *service) List(ctx context.Context) ([]*model.Notification, error) {
	feed, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.NewInternal(fmt.Errorf("failed to list notifications: %w", err))
	}
	return feed, nil
}

// RelativeAge renders how long ago n was posted, as seen at now.
func (s *service) RelativeAge(n *model.Notification, now time.Time) string {
	return s.catalog.Elapsed(now.Sub(n.CreatedAt))
}

func (s *service) syncUnread(ctx context.Context) {
	count, err := s.repo.UnreadCount(ctx)
	if err != nil {
		s.logger.Error(err, "failed to refresh unread gauge")
		return
	}
	s.metrics.NotificationsUnread.Set(float64(count))
}

func (s *service) audit(ctx context.Context, action string, id uuid.UUID, changes interface{}) {
	var opts *audit.LogOptions
	if changes != nil {
		opts = &audit.LogOptions{Changes: changes}
	}
	if err := s.auditor.Log(ctx, action, model.AuditEntityNotification, id.String(), opts); err != nil {
		s.logger.Error(err, "failed to audit notification", "id", id.String())
	}
}
