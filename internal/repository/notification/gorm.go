package notification

import (
	"context"

	"marketplace-api/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormRepo struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) Repository {
	return &gormRepo{db: db}
}

func (r *gormRepo) Create(ctx context.Context, n domain.Notification) (*domain.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *gormRepo) ListByUser(ctx context.Context, userID string) ([]domain.Notification, error) {
	notifications := []domain.Notification{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *gormRepo) MarkRead(ctx context.Context, userID string, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("user_id = ? AND id IN ?", userID, ids).
		Update("read", true)
	return res.RowsAffected, res.Error
}
