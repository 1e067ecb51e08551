package collection

import (
	"context"
	"errors"

	"marketplace-api/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type gormRepo struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) Repository {
	return &gormRepo{db: db}
}

func (r *gormRepo) Create(ctx context.Context, c domain.Collection) (*domain.Collection, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Omit("Products").Create(&c).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &c, nil
}

func (r *gormRepo) GetByID(ctx context.Context, id string) (*domain.Collection, error) {
	var c domain.Collection
	if err := r.db.WithContext(ctx).Preload("Products").First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCollectionNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *gormRepo) ListBySeller(ctx context.Context, sellerID string) ([]domain.Collection, error) {
	var cols []domain.Collection
	err := r.db.WithContext(ctx).
		Preload("Products").
		Where("seller_id = ?", sellerID).
		Order("created_at DESC").
		Find(&cols).Error
	return cols, err
}

func (r *gormRepo) AddProduct(ctx context.Context, collectionID, productID string) error {
	c := domain.Collection{ID: collectionID}
	return r.db.WithContext(ctx).
		Model(&c).
		Association("Products").
		Append(&domain.Product{ID: productID})
}

func (r *gormRepo) RemoveProduct(ctx context.Context, collectionID, productID string) error {
	c := domain.Collection{ID: collectionID}
	return r.db.WithContext(ctx).
		Model(&c).
		Association("Products").
		Delete(&domain.Product{ID: productID})
}

func (r *gormRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&domain.Collection{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCollectionNotFound
	}
	return nil
}
