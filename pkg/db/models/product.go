package models

import "time"

// Product is the root entity every stock record and order line points at.
// Products are created through the add-item workflow and edited through the
// detail-update workflow; nothing deletes them.
type Product struct {
	ID          uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;size:255;not null"`
	Category    string    `gorm:"column:category;size:255;not null"`
	Price       float64   `gorm:"column:price;not null"`
	UnitMeasure float64   `gorm:"column:unit_measure;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }
