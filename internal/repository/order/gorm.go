package order

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

func (r *gormRepo) CreateWithReservation(ctx context.Context, o domain.Order, reservations []Reservation, cartID string) (*domain.Order, error) {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	for i := range o.Items {
		if o.Items[i].ID == "" {
			o.Items[i].ID = uuid.NewString()
		}
		o.Items[i].OrderID = o.ID
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// All-or-nothing: a conditional decrement that matches zero rows means
		// the line cannot be satisfied, and the transaction rolls back.
		for _, res := range reservations {
			upd := tx.Model(&domain.Product{}).
				Where("id = ? AND quantity >= ?", res.ProductID, res.Quantity).
				Update("quantity", gorm.Expr("quantity - ?", res.Quantity))
			if upd.Error != nil {
				return upd.Error
			}
			if upd.RowsAffected == 0 {
				return &domain.InsufficientInventoryError{ProductID: res.ProductID, Requested: res.Quantity}
			}
		}

		if err := tx.Model(&domain.Product{}).
			Where("quantity = 0 AND available = true").
			Update("available", false).Error; err != nil {
			return err
		}

		if err := tx.Create(&o).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cartID).Delete(&domain.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Cart{}).Where("id = ?", cartID).Update("total", 0).Error
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *gormRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *gormRepo) ListByBuyer(ctx context.Context, buyerID string) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("buyer_id = ?", buyerID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *gormRepo) Update(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Omit("Items").Save(o).Error
}
