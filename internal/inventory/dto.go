package inventory

import "github.com/stockroomhq/stockroom-backend/pkg/db/models"

// ItemDTO is the joined stock-record/product view returned by every
// workflow and consumed by the rendering boundary.
type ItemDTO struct {
	SKU                  uint    `json:"sku"`
	ProductID            uint    `json:"product_id"`
	ProductName          string  `json:"product_name"`
	Category             string  `json:"category"`
	Price                float64 `json:"price"`
	ProductUnitMeasure   float64 `json:"product_unit_measure"`
	QuantityOnHand       float64 `json:"quantity_on_hand"`
	IsLowStock           bool    `json:"is_low_stock"`
	InventoryCost        float64 `json:"inventory_cost"`
	InventoryUnitMeasure float64 `json:"inventory_unit_measure"`
}

// NewItemDTO flattens a stock record with its preloaded product.
func NewItemDTO(record *models.StockRecord) *ItemDTO {
	if record == nil {
		return nil
	}
	dto := &ItemDTO{
		SKU:                  record.SKU,
		ProductID:            record.ProductID,
		QuantityOnHand:       record.QuantityOnHand,
		IsLowStock:           record.IsLowStock,
		InventoryCost:        record.InventoryCost,
		InventoryUnitMeasure: record.UnitMeasure,
	}
	if record.Product != nil {
		dto.ProductName = record.Product.Name
		dto.Category = record.Product.Category
		dto.Price = record.Product.Price
		dto.ProductUnitMeasure = record.Product.UnitMeasure
	}
	return dto
}

// AddItemInput is the validated payload for the add-item workflow.
type AddItemInput struct {
	Name                 string
	Category             string
	Price                float64
	ProductUnitMeasure   float64
	QuantityOnHand       float64
	InventoryCost        float64
	InventoryUnitMeasure float64
}

// UpdateItemInput carries the full detail-update field set. Quantity is
// deliberately absent: it is not part of this form.
type UpdateItemInput struct {
	Name                 string
	Category             string
	Price                float64
	ProductUnitMeasure   float64
	InventoryCost        float64
	InventoryUnitMeasure float64
}
