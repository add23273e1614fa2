package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// Repository persists order lines.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

func (r *Repository) CreateLine(ctx context.Context, line *models.OrderItem) (*models.OrderItem, error) {
	if err := r.db.WithContext(ctx).Create(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

func (r *Repository) UpdateLine(ctx context.Context, line *models.OrderItem) (*models.OrderItem, error) {
	if err := r.db.WithContext(ctx).Save(line).Error; err != nil {
		return nil, err
	}
	return line, nil
}

// ListByOrder loads all lines for one order with products resolved.
func (r *Repository) ListByOrder(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var lines []models.OrderItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&lines).
		Error
	return lines, err
}

// ListByProduct loads every line referencing the product, across orders.
func (r *Repository) ListByProduct(ctx context.Context, productID uint) ([]models.OrderItem, error) {
	var lines []models.OrderItem
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id ASC").
		Find(&lines).
		Error
	return lines, err
}
