package orders

import (
	"github.com/shopspring/decimal"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// LineSubtotal prices a line at quantity times the current product
// price. A missing product prices to zero rather than guessing.
func LineSubtotal(quantity int, product *models.Product) float64 {
	if product == nil || quantity <= 0 {
		return 0
	}
	return decimal.NewFromInt(int64(quantity)).
		Mul(decimal.NewFromFloat(product.Price)).
		InexactFloat64()
}
