package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
)

func newTestService(t *testing.T) (Service, *db.Client) {
	t.Helper()

	cfg := config.DBConfig{
		Driver: config.DriverSQLite,
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
	}
	client, err := db.New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.AutoMigrate(context.Background()))

	svc, err := NewService(NewRepository(client.DB()), client)
	require.NoError(t, err)
	return svc, client
}

func seedCatalogProduct(t *testing.T, client *db.Client, price float64) *models.Product {
	t.Helper()
	product := &models.Product{Name: "Widget", Category: "Tools", Price: price, UnitMeasure: 1}
	require.NoError(t, client.DB().Create(product).Error)
	return product
}

func TestAddLine_StoresCurrentPriceSubtotal(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	product := seedCatalogProduct(t, client, 5.0)

	line, err := svc.AddLine(ctx, 1, product.ID, 4)
	require.NoError(t, err)
	assert.Equal(t, 20.0, line.Subtotal)
	assert.Equal(t, 4, line.Quantity)

	total, err := svc.OrderTotal(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 20.0, total)
}

func TestAddLine_Validation(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	product := seedCatalogProduct(t, client, 5.0)

	_, err := svc.AddLine(ctx, 1, product.ID, 0)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())

	_, err = svc.AddLine(ctx, 1, 9999, 2)
	coded = pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeNotFound, coded.Code())
}

func TestUpdateProductPrice_RepricesDependentLines(t *testing.T) {
	svc, client := newTestService(t)
	ctx := context.Background()

	product := seedCatalogProduct(t, client, 5.0)

	_, err := svc.AddLine(ctx, 1, product.ID, 2)
	require.NoError(t, err)
	_, err = svc.AddLine(ctx, 2, product.ID, 3)
	require.NoError(t, err)

	require.NoError(t, svc.UpdateProductPrice(ctx, product.ID, 10.0))

	var reloaded models.Product
	require.NoError(t, client.DB().First(&reloaded, "id = ?", product.ID).Error)
	assert.Equal(t, 10.0, reloaded.Price)

	firstTotal, err := svc.OrderTotal(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 20.0, firstTotal)

	secondTotal, err := svc.OrderTotal(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 30.0, secondTotal)
}

func TestUpdateProductPrice_RejectsNonPositive(t *testing.T) {
	svc, client := newTestService(t)
	product := seedCatalogProduct(t, client, 5.0)

	err := svc.UpdateProductPrice(context.Background(), product.ID, 0)
	coded := pkgerrors.As(err)
	require.NotNil(t, coded)
	assert.Equal(t, pkgerrors.CodeValidation, coded.Code())
}

func TestOrderTotal_EmptyOrder(t *testing.T) {
	svc, _ := newTestService(t)

	total, err := svc.OrderTotal(context.Background(), 42)
	require.NoError(t, err)
	assert.Zero(t, total)
}
