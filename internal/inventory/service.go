package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
)

// Service exposes the inventory workflows.
type Service interface {
	AddItem(ctx context.Context, input AddItemInput) (*ItemDTO, error)
	UpdateQuantity(ctx context.Context, sku uint, newQuantity float64) (*ItemDTO, error)
	UpdateItem(ctx context.Context, sku uint, input UpdateItemInput) (*ItemDTO, error)
	GetItem(ctx context.Context, sku uint) (*ItemDTO, error)
	ListItems(ctx context.Context) ([]ItemDTO, error)
	Report(ctx context.Context) (*Report, error)
}

type service struct {
	repo      *Repository
	dbClient  *db.Client
	threshold float64
}

// NewService constructs the inventory service. The low-stock threshold is
// injected here from configuration.
func NewService(repo *Repository, dbClient *db.Client, lowStockThreshold float64) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if lowStockThreshold < 0 {
		return nil, fmt.Errorf("low stock threshold must be non-negative")
	}
	return &service{
		repo:      repo,
		dbClient:  dbClient,
		threshold: lowStockThreshold,
	}, nil
}

// AddItem creates the product and its stock record as one atomic unit.
// Nothing persists on any failure.
func (s *service) AddItem(ctx context.Context, input AddItemInput) (*ItemDTO, error) {
	if err := validateAddItem(input); err != nil {
		return nil, err
	}

	var createdSKU uint
	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product := &models.Product{
			Name:        strings.TrimSpace(input.Name),
			Category:    strings.TrimSpace(input.Category),
			Price:       input.Price,
			UnitMeasure: input.ProductUnitMeasure,
		}
		created, err := txRepo.CreateProduct(ctx, product)
		if err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "product already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert product")
		}

		record := &models.StockRecord{
			ProductID:      created.ID,
			QuantityOnHand: input.QuantityOnHand,
			IsLowStock:     IsLowStock(input.QuantityOnHand, s.threshold),
			InventoryCost:  input.InventoryCost,
			UnitMeasure:    input.InventoryUnitMeasure,
		}
		if _, err := txRepo.CreateStockRecord(ctx, record); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert stock record")
		}
		createdSKU = record.SKU
		return nil
	}); err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add inventory item")
	}

	return s.loadItem(ctx, createdSKU)
}

// UpdateQuantity sets the quantity on hand and recomputes the low-stock
// flag in the same commit, so the flag is never stale.
func (s *service) UpdateQuantity(ctx context.Context, sku uint, newQuantity float64) (*ItemDTO, error) {
	record, err := s.findRecord(ctx, sku)
	if err != nil {
		return nil, err
	}

	record.QuantityOnHand = newQuantity
	record.IsLowStock = IsLowStock(newQuantity, s.threshold)
	record.Product = nil

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).UpdateStockRecord(ctx, record)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update quantity")
	}

	return s.loadItem(ctx, sku)
}

// UpdateItem rewrites the product fields and the stock record's cost and
// unit measure in one commit. Quantity is not part of this form, so the
// stored low-stock flag remains valid and is left untouched.
func (s *service) UpdateItem(ctx context.Context, sku uint, input UpdateItemInput) (*ItemDTO, error) {
	if err := validateUpdateItem(input); err != nil {
		return nil, err
	}

	record, err := s.findRecord(ctx, sku)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.FindProductByID(ctx, record.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Category = strings.TrimSpace(input.Category)
	product.Price = input.Price
	product.UnitMeasure = input.ProductUnitMeasure

	record.InventoryCost = input.InventoryCost
	record.UnitMeasure = input.InventoryUnitMeasure
	record.Product = nil

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.UpdateProduct(ctx, product); err != nil {
			return err
		}
		_, err := txRepo.UpdateStockRecord(ctx, record)
		return err
	}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update item details")
	}

	return s.loadItem(ctx, sku)
}

// GetItem returns one joined row for form display.
func (s *service) GetItem(ctx context.Context, sku uint) (*ItemDTO, error) {
	return s.loadItem(ctx, sku)
}

// ListItems returns the full join. Flags are maintained at mutation time,
// so reads never write.
func (s *service) ListItems(ctx context.Context) ([]ItemDTO, error) {
	rows, err := s.repo.ListJoined(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list inventory")
	}
	items := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *NewItemDTO(&rows[i]))
	}
	return items, nil
}

// Report aggregates the full join into totals and a per-category
// breakdown.
func (s *service) Report(ctx context.Context) (*Report, error) {
	rows, err := s.repo.ListJoined(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load report rows")
	}
	return buildReport(rows), nil
}

func (s *service) findRecord(ctx context.Context, sku uint) (*models.StockRecord, error) {
	record, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "stock record not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock record")
	}
	return record, nil
}

func (s *service) loadItem(ctx context.Context, sku uint) (*ItemDTO, error) {
	record, err := s.findRecord(ctx, sku)
	if err != nil {
		return nil, err
	}
	return NewItemDTO(record), nil
}

func validateAddItem(input AddItemInput) error {
	details := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		details["productName"] = "is required"
	}
	if strings.TrimSpace(input.Category) == "" {
		details["category"] = "is required"
	}
	if input.Price <= 0 {
		details["price"] = "must be a positive number"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func validateUpdateItem(input UpdateItemInput) error {
	details := map[string]string{}
	if strings.TrimSpace(input.Name) == "" {
		details["productName"] = "is required"
	}
	if strings.TrimSpace(input.Category) == "" {
		details["category"] = "is required"
	}
	if input.Price <= 0 {
		details["price"] = "must be a positive number"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}
