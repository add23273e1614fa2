package inventory

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// Repository wires together product and stock-record persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// CreateProduct inserts a new product row; the assigned ID lands on the
// passed struct.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindProductByID loads the product without associations.
func (r *Repository) FindProductByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateStockRecord inserts the inventory row for a product.
func (r *Repository) CreateStockRecord(ctx context.Context, record *models.StockRecord) (*models.StockRecord, error) {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// UpdateStockRecord updates an existing inventory row.
func (r *Repository) UpdateStockRecord(ctx context.Context, record *models.StockRecord) (*models.StockRecord, error) {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return nil, err
	}
	return record, nil
}

// FindBySKU loads one inventory row with its product resolved.
func (r *Repository) FindBySKU(ctx context.Context, sku uint) (*models.StockRecord, error) {
	var record models.StockRecord
	if err := r.db.WithContext(ctx).
		Preload("Product").
		First(&record, "sku = ?", sku).
		Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// ListJoined returns the full inventory/product join ordered by SKU.
func (r *Repository) ListJoined(ctx context.Context) ([]models.StockRecord, error) {
	var rows []models.StockRecord
	err := r.db.WithContext(ctx).
		Preload("Product").
		Order("sku ASC").
		Find(&rows).
		Error
	return rows, err
}
