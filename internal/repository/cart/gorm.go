package cart

import (
	"context"
	"errors"

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

func (r *gormRepo) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	var c domain.Cart
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.created_at ASC") }).
		First(&c, "user_id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCartNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *gormRepo) Create(ctx context.Context, userID string) (*domain.Cart, error) {
	c := domain.Cart{ID: uuid.NewString(), UserID: userID, Total: 0}
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	c.Items = []domain.CartItem{}
	return &c, nil
}

func (r *gormRepo) SaveItem(ctx context.Context, item *domain.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *gormRepo) DeleteItem(ctx context.Context, cartID, productID string) error {
	res := r.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cartID, productID).
		Delete(&domain.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCartItemNotFound
	}
	return nil
}

func (r *gormRepo) SetTotal(ctx context.Context, cartID string, total float64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Cart{}).
		Where("id = ?", cartID).
		Update("total", total).Error
}

func (r *gormRepo) Clear(ctx context.Context, cartID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Cart{}).Where("id = ?", cartID).Update("total", 0).Error
	})
}
