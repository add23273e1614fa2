package orders

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
)

// Service manages order lines against the shared product catalog. It is
// not routed yet; the HTTP surface only covers inventory workflows.
type Service interface {
	AddLine(ctx context.Context, orderID, productID uint, quantity int) (*models.OrderItem, error)
	OrderTotal(ctx context.Context, orderID uint) (float64, error)
	UpdateProductPrice(ctx context.Context, productID uint, newPrice float64) error
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

// AddLine prices the line at the product's current price and stores the
// computed subtotal on the row.
func (s *service) AddLine(ctx context.Context, orderID, productID uint, quantity int) (*models.OrderItem, error) {
	if quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	line := &models.OrderItem{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		Subtotal:  LineSubtotal(quantity, product),
	}
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).CreateLine(ctx, line)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert order line")
	}
	return line, nil
}

// OrderTotal sums the stored subtotals for one order.
func (s *service) OrderTotal(ctx context.Context, orderID uint) (float64, error) {
	lines, err := s.repo.ListByOrder(ctx, orderID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list order lines")
	}
	total := 0.0
	for i := range lines {
		total += lines[i].Subtotal
	}
	return total, nil
}

// UpdateProductPrice rewrites the product price and every dependent
// line subtotal in one commit, so stored subtotals never drift from the
// price that produced them.
func (s *service) UpdateProductPrice(ctx context.Context, productID uint, newPrice float64) error {
	if newPrice <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be a positive number")
	}

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return err
	}
	product.Price = newPrice

	lines, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list product lines")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if err := tx.WithContext(ctx).Save(product).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].Subtotal = LineSubtotal(lines[i].Quantity, product)
			if _, err := txRepo.UpdateLine(ctx, &lines[i]); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reprice order lines")
	}
	return nil
}

func (s *service) findProduct(ctx context.Context, productID uint) (*models.Product, error) {
	var product models.Product
	if err := s.repo.db.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return &product, nil
}
