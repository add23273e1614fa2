package models

import "time"

// StockRecord is one stocked product instance, keyed by SKU. IsLowStock is
// derived state: after every mutation commit it equals
// quantity-on-hand <= configured threshold. Workflows treat the
// product/stock relationship as one-to-one even though the store does not
// enforce it.
type StockRecord struct {
	SKU            uint      `gorm:"column:sku;primaryKey;autoIncrement"`
	ProductID      uint      `gorm:"column:product_id;not null;index"`
	QuantityOnHand float64   `gorm:"column:quantity_on_hand;not null"`
	IsLowStock     bool      `gorm:"column:is_low_stock;not null;default:false"`
	InventoryCost  float64   `gorm:"column:inventory_cost;not null"`
	UnitMeasure    float64   `gorm:"column:unit_measure;not null"`
	Product        *Product  `gorm:"foreignKey:ProductID"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (StockRecord) TableName() string { return "inventory" }
