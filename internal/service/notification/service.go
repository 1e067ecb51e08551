package notification

import (
	"context"

	"marketplace-api/internal/domain"
	notificationrepo "marketplace-api/internal/repository/notification"
)

// Service exposes the user-facing side of the notification store. Records are
// created by event handlers, not through this service.
type Service struct {
	repo notificationrepo.Repository
}

func New(repo notificationrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	notifications, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	return notifications, nil
}

// MarkRead flips the read flag on the given ids. Ids not owned by the user are
// silently skipped; the returned count reflects rows actually updated.
func (s *Service) MarkRead(ctx context.Context, userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, domain.ValidationError("notification ids required")
	}
	return s.repo.MarkRead(ctx, userID, ids)
}
