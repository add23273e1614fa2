package controllers

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stockroomhq/stockroom-backend/api/flash"
	"github.com/stockroomhq/stockroom-backend/api/responses"
	"github.com/stockroomhq/stockroom-backend/api/validators"
	"github.com/stockroomhq/stockroom-backend/internal/inventory"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

type addItemRequest struct {
	Name                 string  `form:"product_name" validate:"required"`
	Category             string  `form:"category" validate:"required"`
	Price                float64 `form:"price" validate:"gt=0"`
	ProductUnitMeasure   float64 `form:"product_unit_measure" validate:"gte=0"`
	QuantityOnHand       float64 `form:"quantity_on_hand" validate:"gte=0"`
	InventoryCost        float64 `form:"inventory_cost" validate:"gte=0"`
	InventoryUnitMeasure float64 `form:"inventory_unit_measure" validate:"gte=0"`
}

type updateItemRequest struct {
	Name                 string  `form:"product_name" validate:"required"`
	Category             string  `form:"category" validate:"required"`
	Price                float64 `form:"price" validate:"gt=0"`
	ProductUnitMeasure   float64 `form:"product_unit_measure" validate:"gte=0"`
	InventoryCost        float64 `form:"inventory_cost" validate:"gte=0"`
	InventoryUnitMeasure float64 `form:"inventory_unit_measure" validate:"gte=0"`
}

// Home serves the combined inventory view plus any pending flash
// messages for this browser.
func Home(svc inventory.Service, flashes flash.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		items, err := svc.ListItems(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		lowStock := 0
		for i := range items {
			if items[i].IsLowStock {
				lowStock++
			}
		}

		msgs := popFlashes(w, r, flashes, logg)

		responses.WriteSuccess(w, map[string]any{
			"items":           items,
			"low_stock_count": lowStock,
			"flash":           msgs,
		})
	}
}

// AddItemForm describes the add form for the renderer.
func AddItemForm(flashes flash.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]any{
			"fields": []string{
				"product_name", "category", "price", "product_unit_measure",
				"quantity_on_hand", "inventory_cost", "inventory_unit_measure",
			},
			"flash": popFlashes(w, r, flashes, logg),
		})
	}
}

// AddItem runs the create workflow and redirects back into the app.
func AddItem(svc inventory.Service, flashes flash.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		req, err := decodeAddItem(r)
		if err != nil {
			redirectWithError(w, r, flashes, logg, "/inventory/add", err)
			return
		}

		item, err := svc.AddItem(ctx, inventory.AddItemInput{
			Name:                 req.Name,
			Category:             req.Category,
			Price:                req.Price,
			ProductUnitMeasure:   req.ProductUnitMeasure,
			QuantityOnHand:       req.QuantityOnHand,
			InventoryCost:        req.InventoryCost,
			InventoryUnitMeasure: req.InventoryUnitMeasure,
		})
		if err != nil {
			if isValidation(err) {
				redirectWithError(w, r, flashes, logg, "/inventory/add", err)
				return
			}
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(logg.WithProductID(logg.WithSKU(ctx, item.SKU), item.ProductID), "inventory item added")
		}
		pushFlash(r, w, flashes, logg, flash.Message{
			Level: flash.LevelSuccess,
			Text:  fmt.Sprintf("%s added to inventory", item.ProductName),
		})
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// UpdateQuantityForm returns the current row for form prefill.
func UpdateQuantityForm(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sku, err := skuParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := svc.GetItem(ctx, sku)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// UpdateQuantity runs the quantity workflow. The low-stock flag is
// recomputed by the service in the same commit.
func UpdateQuantity(svc inventory.Service, flashes flash.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sku, err := skuParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		form, err := validators.ParseForm(r)
		if err != nil {
			redirectWithError(w, r, flashes, logg, updateQuantityPath(sku), err)
			return
		}
		quantity := form.Float("quantity_on_hand")
		if err := form.Err(); err != nil {
			redirectWithError(w, r, flashes, logg, updateQuantityPath(sku), err)
			return
		}
		if quantity < 0 {
			err := pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
				WithDetails(map[string]string{"quantity_on_hand": "must be at least 0"})
			redirectWithError(w, r, flashes, logg, updateQuantityPath(sku), err)
			return
		}

		if logg != nil {
			ctx = logg.WithSKU(ctx, sku)
		}

		item, err := svc.UpdateQuantity(ctx, sku, quantity)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if logg != nil {
			logg.Info(ctx, "quantity updated")
		}
		pushFlash(r, w, flashes, logg, flash.Message{
			Level: flash.LevelSuccess,
			Text:  fmt.Sprintf("Quantity for %s updated", item.ProductName),
		})
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// UpdateItemForm returns the joined row for the detail form.
func UpdateItemForm(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sku, err := skuParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		item, err := svc.GetItem(ctx, sku)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

// UpdateItem runs the full detail-update workflow.
func UpdateItem(svc inventory.Service, flashes flash.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sku, err := skuParam(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		req, err := decodeUpdateItem(r)
		if err != nil {
			redirectWithError(w, r, flashes, logg, updateItemPath(sku), err)
			return
		}

		if logg != nil {
			ctx = logg.WithSKU(ctx, sku)
		}

		item, err := svc.UpdateItem(ctx, sku, inventory.UpdateItemInput{
			Name:                 req.Name,
			Category:             req.Category,
			Price:                req.Price,
			ProductUnitMeasure:   req.ProductUnitMeasure,
			InventoryCost:        req.InventoryCost,
			InventoryUnitMeasure: req.InventoryUnitMeasure,
		})
		if err != nil {
			if isValidation(err) {
				redirectWithError(w, r, flashes, logg, updateItemPath(sku), err)
				return
			}
			responses.WriteError(ctx, logg, w, err)
			return
		}

		pushFlash(r, w, flashes, logg, flash.Message{
			Level: flash.LevelSuccess,
			Text:  fmt.Sprintf("%s updated", item.ProductName),
		})
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

// Report serves the aggregated inventory report.
func Report(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		report, err := svc.Report(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

func decodeAddItem(r *http.Request) (*addItemRequest, error) {
	form, err := validators.ParseForm(r)
	if err != nil {
		return nil, err
	}

	req := &addItemRequest{
		Name:                 form.String("product_name"),
		Category:             form.String("category"),
		Price:                form.Float("price"),
		ProductUnitMeasure:   form.Float("product_unit_measure"),
		QuantityOnHand:       form.Float("quantity_on_hand"),
		InventoryCost:        form.Float("inventory_cost"),
		InventoryUnitMeasure: form.Float("inventory_unit_measure"),
	}
	if err := form.Err(); err != nil {
		return nil, err
	}
	if err := validators.Check(req); err != nil {
		return nil, err
	}
	return req, nil
}

func decodeUpdateItem(r *http.Request) (*updateItemRequest, error) {
	form, err := validators.ParseForm(r)
	if err != nil {
		return nil, err
	}

	req := &updateItemRequest{
		Name:                 form.String("product_name"),
		Category:             form.String("category"),
		Price:                form.Float("price"),
		ProductUnitMeasure:   form.Float("product_unit_measure"),
		InventoryCost:        form.Float("inventory_cost"),
		InventoryUnitMeasure: form.Float("inventory_unit_measure"),
	}
	if err := form.Err(); err != nil {
		return nil, err
	}
	if err := validators.Check(req); err != nil {
		return nil, err
	}
	return req, nil
}

func skuParam(r *http.Request) (uint, error) {
	raw := chi.URLParam(r, "sku")
	sku, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || sku == 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "invalid sku").
			WithDetails(map[string]string{"sku": "must be a positive integer"})
	}
	return uint(sku), nil
}

func updateQuantityPath(sku uint) string {
	return fmt.Sprintf("/inventory/update-quantity/%d", sku)
}

func updateItemPath(sku uint) string {
	return fmt.Sprintf("/inventory/update/%d", sku)
}

func isValidation(err error) bool {
	typed := pkgerrors.As(err)
	return typed != nil && typed.Code() == pkgerrors.CodeValidation
}

func pushFlash(r *http.Request, w http.ResponseWriter, flashes flash.Store, logg *logger.Logger, msg flash.Message) {
	if flashes == nil {
		return
	}
	if err := flashes.Push(r.Context(), flash.Token(w, r), msg); err != nil && logg != nil {
		logg.Warn(logg.WithField(r.Context(), "flash_level", string(msg.Level)), "failed to queue flash message")
	}
}

func popFlashes(w http.ResponseWriter, r *http.Request, flashes flash.Store, logg *logger.Logger) []flash.Message {
	if flashes == nil {
		return nil
	}
	msgs, err := flashes.Pop(r.Context(), flash.Token(w, r))
	if err != nil {
		if logg != nil {
			logg.Warn(r.Context(), "failed to read flash messages")
		}
		return nil
	}
	if msgs == nil {
		msgs = []flash.Message{}
	}
	return msgs
}

// redirectWithError flashes each field problem and sends the browser
// back to the form.
func redirectWithError(w http.ResponseWriter, r *http.Request, flashes flash.Store, logg *logger.Logger, target string, err error) {
	typed := pkgerrors.As(err)
	texts := []string{}
	if typed != nil {
		if details, ok := typed.Details().(map[string]string); ok {
			fields := make([]string, 0, len(details))
			for field := range details {
				fields = append(fields, field)
			}
			sort.Strings(fields)
			for _, field := range fields {
				texts = append(texts, fmt.Sprintf("%s %s", field, details[field]))
			}
		}
		if len(texts) == 0 && typed.Message() != "" {
			texts = append(texts, typed.Message())
		}
	}
	if len(texts) == 0 {
		texts = append(texts, "validation failed")
	}

	for _, text := range texts {
		pushFlash(r, w, flashes, logg, flash.Message{Level: flash.LevelError, Text: text})
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
