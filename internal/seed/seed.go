package seed

import (
	"context"
	"fmt"
	"time"

	"marketplace-api/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixed ids keep reruns idempotent.
const (
	sellerID = "c7a2d3a0-0b65-4f3e-9a44-1f6f18d2a101"
	buyerID  = "c7a2d3a0-0b65-4f3e-9a44-1f6f18d2a102"
)

// Apply inserts demo accounts and products for manual testing. Existing rows
// are left untouched.
func Apply(ctx context.Context, db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash demo password: %w", err)
	}

	users := []domain.User{
		{ID: sellerID, Email: "seller@demo.local", Name: "Demo Seller", PasswordHash: string(hash), PasswordChangedAt: time.Now().UTC()},
		{ID: buyerID, Email: "buyer@demo.local", Name: "Demo Buyer", PasswordHash: string(hash), PasswordChangedAt: time.Now().UTC()},
	}
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&users).Error; err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	products := []domain.Product{
		{
			ID:          "d8b3e4b1-1c76-4a4f-8b55-2a7f29e3b201",
			SellerID:    sellerID,
			Name:        "Wildflower Honey",
			Description: "Raw honey from a small apiary",
			Price:       12.50,
			Quantity:    40,
			Available:   true,
			ExpiryDate:  time.Now().AddDate(1, 0, 0),
		},
		{
			ID:          "d8b3e4b1-1c76-4a4f-8b55-2a7f29e3b202",
			SellerID:    sellerID,
			Name:        "Sourdough Loaf",
			Description: "Baked daily, short shelf life",
			Price:       6.00,
			Quantity:    12,
			Available:   true,
			ExpiryDate:  time.Now().AddDate(0, 0, 3),
		},
		{
			ID:          "d8b3e4b1-1c76-4a4f-8b55-2a7f29e3b203",
			SellerID:    sellerID,
			Name:        "Ceramic Mug",
			Description: "Hand thrown stoneware mug",
			Price:       18.00,
			Quantity:    25,
			Available:   true,
		},
	}
	if err := db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error; err != nil {
		return fmt.Errorf("seed products: %w", err)
	}

	return nil
}
