package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// CategoryBreakdown aggregates one product category.
type CategoryBreakdown struct {
	Category      string  `json:"category"`
	Count         int     `json:"count"`
	TotalValue    float64 `json:"total_value"`
	TotalQuantity float64 `json:"total_quantity"`
}

// Report is the aggregated inventory view.
type Report struct {
	TotalItems    int                 `json:"total_items"`
	TotalValue    float64             `json:"total_inventory_value"`
	LowStockCount int                 `json:"low_stock_count"`
	LowStock      []ItemDTO           `json:"low_stock_items"`
	Categories    []CategoryBreakdown `json:"categories"`
}

type categoryAccumulator struct {
	count    int
	value    decimal.Decimal
	quantity decimal.Decimal
}

// buildReport folds the joined rows into totals. Categories keep
// first-seen order so the rendered breakdown is deterministic.
func buildReport(rows []models.StockRecord) *Report {
	report := &Report{
		TotalItems: len(rows),
		LowStock:   []ItemDTO{},
		Categories: []CategoryBreakdown{},
	}

	total := decimal.Zero
	order := []string{}
	byCategory := map[string]*categoryAccumulator{}

	for i := range rows {
		row := &rows[i]
		value := decimal.NewFromFloat(StockValue(row.QuantityOnHand, row.InventoryCost))
		total = total.Add(value)

		if row.IsLowStock {
			report.LowStock = append(report.LowStock, *NewItemDTO(row))
		}

		category := ""
		if row.Product != nil {
			category = row.Product.Category
		}
		acc, ok := byCategory[category]
		if !ok {
			acc = &categoryAccumulator{}
			byCategory[category] = acc
			order = append(order, category)
		}
		acc.count++
		acc.value = acc.value.Add(value)
		acc.quantity = acc.quantity.Add(decimal.NewFromFloat(row.QuantityOnHand))
	}

	report.TotalValue = total.InexactFloat64()
	report.LowStockCount = len(report.LowStock)

	for _, category := range order {
		acc := byCategory[category]
		report.Categories = append(report.Categories, CategoryBreakdown{
			Category:      category,
			Count:         acc.count,
			TotalValue:    acc.value.InexactFloat64(),
			TotalQuantity: acc.quantity.InexactFloat64(),
		})
	}

	return report
}
