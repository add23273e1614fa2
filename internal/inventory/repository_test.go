package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

func seedProduct(t *testing.T, repo *Repository, name, category string) *models.Product {
	t.Helper()
	product, err := repo.CreateProduct(context.Background(), &models.Product{
		Name:        name,
		Category:    category,
		Price:       9.99,
		UnitMeasure: 1,
	})
	require.NoError(t, err)
	return product
}

func TestRepository_FindBySKUPreloadsProduct(t *testing.T) {
	client := newTestClient(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	product := seedProduct(t, repo, "Bracket", "Hardware")
	record, err := repo.CreateStockRecord(ctx, &models.StockRecord{
		ProductID:      product.ID,
		QuantityOnHand: 12,
		InventoryCost:  0.5,
		UnitMeasure:    1,
	})
	require.NoError(t, err)

	found, err := repo.FindBySKU(ctx, record.SKU)
	require.NoError(t, err)
	require.NotNil(t, found.Product)
	assert.Equal(t, "Bracket", found.Product.Name)
	assert.Equal(t, product.ID, found.ProductID)
}

func TestRepository_FindBySKUMiss(t *testing.T) {
	client := newTestClient(t)
	repo := NewRepository(client.DB())

	_, err := repo.FindBySKU(context.Background(), 777)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_ListJoinedOrdersBySKU(t *testing.T) {
	client := newTestClient(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	for _, name := range []string{"First", "Second", "Third"} {
		product := seedProduct(t, repo, name, "Misc")
		_, err := repo.CreateStockRecord(ctx, &models.StockRecord{
			ProductID:      product.ID,
			QuantityOnHand: 1,
		})
		require.NoError(t, err)
	}

	rows, err := repo.ListJoined(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i := 1; i < len(rows); i++ {
		assert.Less(t, rows[i-1].SKU, rows[i].SKU)
	}
	assert.Equal(t, "First", rows[0].Product.Name)
}

func TestRepository_WithTxRollbackDiscardsWrites(t *testing.T) {
	client := newTestClient(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	tx := client.DB().Begin()
	require.NoError(t, tx.Error)

	_, err := repo.WithTx(tx).CreateProduct(ctx, &models.Product{
		Name:     "Ephemeral",
		Category: "Misc",
		Price:    1,
	})
	require.NoError(t, err)
	require.NoError(t, tx.Rollback().Error)

	var count int64
	require.NoError(t, client.DB().Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}
