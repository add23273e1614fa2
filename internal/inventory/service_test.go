package inventory

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
)

func widgetInput() AddItemInput {
	return AddItemInput{
		Name:                 "Widget",
		Category:             "Tools",
		Price:                5.0,
		ProductUnitMeasure:   1.0,
		QuantityOnHand:       20,
		InventoryCost:        2.0,
		InventoryUnitMeasure: 1.0,
	}
}

func TestAddItem_CreatesProductAndStockAtomically(t *testing.T) {
	svc, client := newTestService(t, 10)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, widgetInput())
	if err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	if item.SKU == 0 {
		t.Fatal("expected a generated SKU")
	}
	if item.ProductName != "Widget" || item.Category != "Tools" {
		t.Fatalf("unexpected product fields: %+v", item)
	}
	if item.IsLowStock {
		t.Fatal("quantity 20 against threshold 10 should not be low stock")
	}

	var products, records int64
	if err := client.DB().Model(&models.Product{}).Count(&products).Error; err != nil {
		t.Fatal(err)
	}
	if err := client.DB().Model(&models.StockRecord{}).Count(&records).Error; err != nil {
		t.Fatal(err)
	}
	if products != 1 || records != 1 {
		t.Fatalf("expected 1 product and 1 stock record, got %d and %d", products, records)
	}

	var record models.StockRecord
	if err := client.DB().First(&record, "sku = ?", item.SKU).Error; err != nil {
		t.Fatal(err)
	}
	if record.ProductID != item.ProductID {
		t.Fatalf("stock record points at product %d, want %d", record.ProductID, item.ProductID)
	}
}

func TestAddItem_QuantityAtThresholdIsLowStock(t *testing.T) {
	svc, _ := newTestService(t, 10)

	input := widgetInput()
	input.QuantityOnHand = 10

	item, err := svc.AddItem(context.Background(), input)
	if err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}
	if !item.IsLowStock {
		t.Fatal("quantity equal to the threshold must be flagged low")
	}
}

func TestAddItem_ValidationFailureWritesNothing(t *testing.T) {
	svc, client := newTestService(t, 10)
	ctx := context.Background()

	cases := []struct {
		name  string
		mut   func(*AddItemInput)
		field string
	}{
		{"missing name", func(in *AddItemInput) { in.Name = "   " }, "productName"},
		{"missing category", func(in *AddItemInput) { in.Category = "" }, "category"},
		{"zero price", func(in *AddItemInput) { in.Price = 0 }, "price"},
		{"negative price", func(in *AddItemInput) { in.Price = -1 }, "price"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := widgetInput()
			tc.mut(&input)

			_, err := svc.AddItem(ctx, input)
			coded := pkgerrors.As(err)
			if coded == nil || coded.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			details, ok := coded.Details().(map[string]string)
			if !ok {
				t.Fatalf("expected field details, got %v", coded.Details())
			}
			if _, ok := details[tc.field]; !ok {
				t.Fatalf("expected details for %q, got %v", tc.field, details)
			}
		})
	}

	var products, records int64
	client.DB().Model(&models.Product{}).Count(&products)
	client.DB().Model(&models.StockRecord{}).Count(&records)
	if products != 0 || records != 0 {
		t.Fatalf("rejected inputs must not persist rows, got %d products and %d records", products, records)
	}
}

func TestUpdateQuantity_RecomputesFlag(t *testing.T) {
	svc, _ := newTestService(t, 10)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, widgetInput())
	if err != nil {
		t.Fatal(err)
	}
	if item.IsLowStock {
		t.Fatal("starting quantity 20 should not be low")
	}

	updated, err := svc.UpdateQuantity(ctx, item.SKU, 5)
	if err != nil {
		t.Fatalf("UpdateQuantity returned error: %v", err)
	}
	if updated.QuantityOnHand != 5 {
		t.Fatalf("quantity = %v, want 5", updated.QuantityOnHand)
	}
	if !updated.IsLowStock {
		t.Fatal("quantity 5 must flip the low-stock flag on")
	}

	restocked, err := svc.UpdateQuantity(ctx, item.SKU, 50)
	if err != nil {
		t.Fatal(err)
	}
	if restocked.IsLowStock {
		t.Fatal("quantity 50 must flip the low-stock flag back off")
	}
}

func TestUpdateQuantity_LeavesProductRowAlone(t *testing.T) {
	svc, client := newTestService(t, 10)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, widgetInput())
	if err != nil {
		t.Fatal(err)
	}

	var before models.Product
	if err := client.DB().First(&before, "id = ?", item.ProductID).Error; err != nil {
		t.Fatal(err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := svc.UpdateQuantity(ctx, item.SKU, 7); err != nil {
		t.Fatal(err)
	}

	var after models.Product
	if err := client.DB().First(&after, "id = ?", item.ProductID).Error; err != nil {
		t.Fatal(err)
	}
	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Fatalf("quantity update must not write the product row: %v -> %v", before.UpdatedAt, after.UpdatedAt)
	}
}

func TestUpdateQuantity_UnknownSKU(t *testing.T) {
	svc, client := newTestService(t, 10)

	_, err := svc.UpdateQuantity(context.Background(), 9999, 5)
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}

	var records int64
	client.DB().Model(&models.StockRecord{}).Count(&records)
	if records != 0 {
		t.Fatalf("lookup miss must not create rows, got %d", records)
	}
}

func TestUpdateItem_RewritesDetailsKeepsQuantity(t *testing.T) {
	svc, _ := newTestService(t, 10)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, widgetInput())
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.UpdateItem(ctx, item.SKU, UpdateItemInput{
		Name:                 "Widget Pro",
		Category:             "Hardware",
		Price:                7.5,
		ProductUnitMeasure:   2.0,
		InventoryCost:        3.0,
		InventoryUnitMeasure: 2.0,
	})
	if err != nil {
		t.Fatalf("UpdateItem returned error: %v", err)
	}
	if updated.ProductName != "Widget Pro" || updated.Category != "Hardware" {
		t.Fatalf("product fields not rewritten: %+v", updated)
	}
	if updated.Price != 7.5 || updated.InventoryCost != 3.0 {
		t.Fatalf("numeric fields not rewritten: %+v", updated)
	}
	if updated.QuantityOnHand != 20 {
		t.Fatalf("quantity must survive a detail update, got %v", updated.QuantityOnHand)
	}
	if updated.IsLowStock {
		t.Fatal("flag must be untouched by a detail update")
	}
}

func TestUpdateItem_UnknownSKU(t *testing.T) {
	svc, _ := newTestService(t, 10)

	_, err := svc.UpdateItem(context.Background(), 42, UpdateItemInput{
		Name:     "Ghost",
		Category: "Nowhere",
		Price:    1,
	})
	coded := pkgerrors.As(err)
	if coded == nil || coded.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestListItems_ReturnsJoinedRowsInSKUOrder(t *testing.T) {
	svc, _ := newTestService(t, 10)
	ctx := context.Background()

	first := widgetInput()
	second := widgetInput()
	second.Name = "Gadget"
	second.Category = "Electronics"
	second.QuantityOnHand = 3

	a, err := svc.AddItem(ctx, first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.AddItem(ctx, second)
	if err != nil {
		t.Fatal(err)
	}

	items, err := svc.ListItems(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].SKU != a.SKU || items[1].SKU != b.SKU {
		t.Fatalf("items out of SKU order: %d then %d", items[0].SKU, items[1].SKU)
	}
	if items[1].ProductName != "Gadget" {
		t.Fatalf("join lost the product name: %+v", items[1])
	}
	if !items[1].IsLowStock {
		t.Fatal("quantity 3 must be low in the listing")
	}
}

func TestReport_WidgetScenario(t *testing.T) {
	svc, _ := newTestService(t, 10)
	ctx := context.Background()

	item, err := svc.AddItem(ctx, widgetInput())
	if err != nil {
		t.Fatal(err)
	}

	report, err := svc.Report(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if report.TotalItems != 1 {
		t.Fatalf("total_items = %d, want 1", report.TotalItems)
	}
	if report.TotalValue != 40.0 {
		t.Fatalf("total value = %v, want 40.0 (20 units at cost 2.0)", report.TotalValue)
	}
	if report.LowStockCount != 0 || len(report.LowStock) != 0 {
		t.Fatalf("nothing should be low yet: %+v", report)
	}

	if _, err := svc.UpdateQuantity(ctx, item.SKU, 5); err != nil {
		t.Fatal(err)
	}

	report, err = svc.Report(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if report.TotalValue != 10.0 {
		t.Fatalf("total value = %v, want 10.0 after dropping to 5 units", report.TotalValue)
	}
	if report.LowStockCount != 1 || len(report.LowStock) != 1 {
		t.Fatalf("the widget should appear as low stock: %+v", report)
	}
	if report.LowStock[0].SKU != item.SKU {
		t.Fatalf("low stock entry for SKU %d, want %d", report.LowStock[0].SKU, item.SKU)
	}
}

func TestReport_CategorySumsMatchGrandTotal(t *testing.T) {
	svc, _ := newTestService(t, 10)
	ctx := context.Background()

	inputs := []AddItemInput{
		{Name: "Hammer", Category: "Tools", Price: 12, ProductUnitMeasure: 1, QuantityOnHand: 8, InventoryCost: 6.5, InventoryUnitMeasure: 1},
		{Name: "Screwdriver", Category: "Tools", Price: 4, ProductUnitMeasure: 1, QuantityOnHand: 30, InventoryCost: 1.1, InventoryUnitMeasure: 1},
		{Name: "Cable", Category: "Electronics", Price: 3, ProductUnitMeasure: 1, QuantityOnHand: 100, InventoryCost: 0.3, InventoryUnitMeasure: 1},
	}
	for _, input := range inputs {
		if _, err := svc.AddItem(ctx, input); err != nil {
			t.Fatal(err)
		}
	}

	report, err := svc.Report(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if report.TotalItems != 3 {
		t.Fatalf("total_items = %d, want 3", report.TotalItems)
	}

	// 8*6.5 + 30*1.1 + 100*0.3 = 52 + 33 + 30 = 115
	if report.TotalValue != 115.0 {
		t.Fatalf("total value = %v, want 115.0", report.TotalValue)
	}

	if len(report.Categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(report.Categories))
	}
	if report.Categories[0].Category != "Tools" || report.Categories[1].Category != "Electronics" {
		t.Fatalf("categories must keep first-seen order: %+v", report.Categories)
	}

	sum := 0.0
	for _, c := range report.Categories {
		sum += c.TotalValue
	}
	if math.Abs(sum-report.TotalValue) > 1e-9 {
		t.Fatalf("category sums %v do not match grand total %v", sum, report.TotalValue)
	}

	tools := report.Categories[0]
	if tools.Count != 2 || tools.TotalQuantity != 38 || tools.TotalValue != 85.0 {
		t.Fatalf("unexpected Tools breakdown: %+v", tools)
	}
}

func TestReport_EmptyInventory(t *testing.T) {
	svc, _ := newTestService(t, 10)

	report, err := svc.Report(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if report.TotalItems != 0 || report.TotalValue != 0 || report.LowStockCount != 0 {
		t.Fatalf("empty inventory must report zeros: %+v", report)
	}
	if report.LowStock == nil || report.Categories == nil {
		t.Fatal("slices must be initialized for serialization")
	}
}

func TestNewService_RejectsBadArguments(t *testing.T) {
	client := newTestClient(t)
	repo := NewRepository(client.DB())

	if _, err := NewService(nil, client, 10); err == nil {
		t.Fatal("nil repository must be rejected")
	}
	if _, err := NewService(repo, nil, 10); err == nil {
		t.Fatal("nil db client must be rejected")
	}
	if _, err := NewService(repo, client, -1); err == nil {
		t.Fatal("negative threshold must be rejected")
	}
}
