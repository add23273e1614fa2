package models

import "time"

// OrderItem is a single order line. Subtotal is derived
// (quantity x product price) and only rewritten by an explicit
// recalculation or a price update routed through the orders service; no
// inventory workflow touches it.
type OrderItem struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   uint      `gorm:"column:order_id;not null;index"`
	ProductID uint      `gorm:"column:product_id;not null;index"`
	Quantity  int       `gorm:"column:quantity;not null;default:1"`
	Subtotal  float64   `gorm:"column:subtotal;not null;default:0"`
	Product   *Product  `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (OrderItem) TableName() string { return "order_items" }
