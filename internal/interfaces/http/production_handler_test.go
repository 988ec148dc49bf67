package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Produccion-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el caso de uso de producción
// ──────────────────────────────────────────────────────────────────────────────

type memItemRepo struct{ items map[string]*entity.Item }

func (r *memItemRepo) Create(i *entity.Item) error { r.items[i.ID] = i; return nil }
func (r *memItemRepo) GetByID(id string) (*entity.Item, error) {
	return r.items[id], nil
}
func (r *memItemRepo) GetByNameAndType(name, itemType string) (*entity.Item, error) {
	for _, i := range r.items {
		if i.Name == name && i.Type == itemType {
			return i, nil
		}
	}
	return nil, nil
}
func (r *memItemRepo) List(includeDeleted bool, limit, offset int) ([]*entity.Item, error) {
	out := make([]*entity.Item, 0, len(r.items))
	for _, i := range r.items {
		if includeDeleted || i.IsActive() {
			out = append(out, i)
		}
	}
	return out, nil
}
func (r *memItemRepo) Update(i *entity.Item) error { r.items[i.ID] = i; return nil }
func (r *memItemRepo) SoftDelete(id string) error {
	if i, ok := r.items[id]; ok {
		i.Status = entity.ItemStatusDeleted
	}
	return nil
}

type memOrderRepo struct {
	orders    map[string]*entity.ProductionOrder
	materials map[string][]*entity.ProductionMaterial
}

func (r *memOrderRepo) Create(o *entity.ProductionOrder) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}
func (r *memOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}
func (r *memOrderRepo) List(status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	out := make([]*entity.ProductionOrder, 0, len(r.orders))
	for _, o := range r.orders {
		if status == "" || o.Status == status {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}
func (r *memOrderRepo) Update(o *entity.ProductionOrder) error {
	cp := *o
	r.orders[o.ID] = &cp
	return nil
}
func (r *memOrderRepo) CreateMaterial(m *entity.ProductionMaterial) error {
	cp := *m
	r.materials[m.OrderID] = append(r.materials[m.OrderID], &cp)
	return nil
}
func (r *memOrderRepo) ListMaterials(orderID string) ([]*entity.ProductionMaterial, error) {
	return r.materials[orderID], nil
}
func (r *memOrderRepo) UpdateMaterialActual(materialID string, actualQty decimal.Decimal) error {
	for _, ms := range r.materials {
		for _, m := range ms {
			if m.ID == materialID {
				m.ActualQty = actualQty
				return nil
			}
		}
	}
	return nil
}

type memRecipeRepo struct{ lines map[string][]*entity.RecipeLine }

func (r *memRecipeRepo) Create(l *entity.RecipeLine) error {
	r.lines[l.ProductID] = append(r.lines[l.ProductID], l)
	return nil
}
func (r *memRecipeRepo) ListByProduct(productID string) ([]*entity.RecipeLine, error) {
	return r.lines[productID], nil
}
func (r *memRecipeRepo) Delete(id string) error { return nil }

type memStockKey struct {
	itemID    string
	isProduct bool
}

type memStockRepo struct{ stock map[memStockKey]decimal.Decimal }

func (r *memStockRepo) Get(itemID string, isProduct bool) (*entity.Stock, error) {
	return &entity.Stock{ItemID: itemID, IsProduct: isProduct, Quantity: r.stock[memStockKey{itemID, isProduct}]}, nil
}
func (r *memStockRepo) GetForUpdate(itemID string, isProduct bool) (*entity.Stock, error) {
	return r.Get(itemID, isProduct)
}
func (r *memStockRepo) Upsert(s *entity.Stock) error {
	r.stock[memStockKey{s.ItemID, s.IsProduct}] = s.Quantity
	return nil
}

type memLedgerRepo struct{ entries []*entity.StockLedgerEntry }

func (r *memLedgerRepo) Append(e *entity.StockLedgerEntry) error {
	r.entries = append(r.entries, e)
	return nil
}
func (r *memLedgerRepo) ListByItem(itemID string, isProduct bool, limit, offset int) ([]*entity.StockLedgerEntry, error) {
	var out []*entity.StockLedgerEntry
	for _, e := range r.entries {
		if e.ItemID == itemID && e.IsProduct == isProduct {
			out = append(out, e)
		}
	}
	return out, nil
}
func (r *memLedgerRepo) ListByTransaction(transactionID string) ([]*entity.StockLedgerEntry, error) {
	var out []*entity.StockLedgerEntry
	for _, e := range r.entries {
		if e.TransactionID == transactionID {
			out = append(out, e)
		}
	}
	return out, nil
}

// memTxRunner pasa los mismos repos en memoria; la atomicidad real se prueba
// en el paquete de aplicación.
type memTxRunner struct {
	stock  *memStockRepo
	ledger *memLedgerRepo
	orders *memOrderRepo
}

func (t *memTxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	ledgerRepo repository.StockLedgerRepository,
	orderRepo repository.ProductionOrderRepository,
) error) error {
	return fn(t.stock, t.ledger, t.orders)
}

// ──────────────────────────────────────────────────────────────────────────────
// App de prueba: rutas de producción y stock montadas sin auth
// ──────────────────────────────────────────────────────────────────────────────

type prodFixture struct {
	app    *fiber.App
	items  *memItemRepo
	orders *memOrderRepo
	recipe *memRecipeRepo
	stock  *memStockRepo
}

func newProdFixture() *prodFixture {
	items := &memItemRepo{items: map[string]*entity.Item{}}
	orders := &memOrderRepo{orders: map[string]*entity.ProductionOrder{}, materials: map[string][]*entity.ProductionMaterial{}}
	recipe := &memRecipeRepo{lines: map[string][]*entity.RecipeLine{}}
	stock := &memStockRepo{stock: map[memStockKey]decimal.Decimal{}}
	ledger := &memLedgerRepo{}
	tx := &memTxRunner{stock: stock, ledger: ledger, orders: orders}

	uc := production.NewUseCase(tx, items, orders, recipe, stock, ledger)
	prodHandler := apphttp.NewProductionHandler(uc)
	stockHandler := apphttp.NewStockHandler(uc)

	app := fiber.New()
	app.Post("/production/orders", prodHandler.Create)
	app.Get("/production/orders/:id", prodHandler.GetByID)
	app.Post("/production/orders/:id/apply-bom", prodHandler.ApplyBOM)
	app.Post("/production/orders/:id/complete", prodHandler.Complete)
	app.Get("/stock/:id", stockHandler.Get)

	return &prodFixture{app: app, items: items, orders: orders, recipe: recipe, stock: stock}
}

func (fx *prodFixture) addItem(id, name, itemType string) {
	fx.items.items[id] = &entity.Item{ID: id, Name: name, Type: itemType, Status: entity.ItemStatusActive, CreatedAt: time.Now()}
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func getJSON(t *testing.T, app *fiber.App, path string, out any) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestProductionHandler_CrearOrden(t *testing.T) {
	fx := newProdFixture()
	fx.addItem("prod-1", "Crema facial", entity.ItemTypeFinishedProduct)

	resp := postJSON(t, fx.app, "/production/orders", fiber.Map{
		"product_id":  "prod-1",
		"planned_qty": "100",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "prod-1", body["product_id"])
	assert.Equal(t, entity.OrderStatusPlanned, body["status"])
}

func TestProductionHandler_CrearOrden_ProductoInexistente(t *testing.T) {
	fx := newProdFixture()

	resp := postJSON(t, fx.app, "/production/orders", fiber.Map{
		"product_id":  "no-existe",
		"planned_qty": "100",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestProductionHandler_ApplyBOM_SinReceta(t *testing.T) {
	fx := newProdFixture()
	fx.addItem("prod-1", "Crema facial", entity.ItemTypeFinishedProduct)

	resp := postJSON(t, fx.app, "/production/orders", fiber.Map{
		"product_id":  "prod-1",
		"planned_qty": "100",
	})
	var created map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	orderID := created["id"].(string)

	resp = postJSON(t, fx.app, "/production/orders/"+orderID+"/apply-bom", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode,
		"sin receta el apply-bom debe retornar 422 NO_RECIPE")
}

// Flujo completo por HTTP: crear, aplicar receta, cerrar con rendimiento 90% y
// verificar que el stock refleja el consumo escalado.
func TestProductionHandler_FlujoCompleto(t *testing.T) {
	fx := newProdFixture()
	fx.addItem("prod-1", "Crema facial", entity.ItemTypeFinishedProduct)
	fx.addItem("mat-1", "Base glicerina", entity.ItemTypeRawMaterial)
	fx.recipe.lines["prod-1"] = []*entity.RecipeLine{
		{ID: "rl-1", ProductID: "prod-1", MaterialID: "mat-1", QtyPerUnit: decimal.RequireFromString("0.2")},
	}
	fx.stock.stock[memStockKey{"mat-1", false}] = decimal.NewFromInt(100)

	resp := postJSON(t, fx.app, "/production/orders", fiber.Map{
		"product_id":  "prod-1",
		"planned_qty": "100",
	})
	var created map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	orderID := created["id"].(string)

	resp = postJSON(t, fx.app, "/production/orders/"+orderID+"/apply-bom", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = postJSON(t, fx.app, "/production/orders/"+orderID+"/complete", fiber.Map{
		"actual_qty": "90",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var closed map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&closed))
	resp.Body.Close()
	assert.Equal(t, entity.OrderStatusCompleted, closed["status"], "la orden debe quedar completada")

	// Consumo planificado 20, escalado por 0.9 → 18; stock 100 − 18 = 82.
	var matStock map[string]any
	require.Equal(t, http.StatusOK, getJSON(t, fx.app, "/stock/mat-1", &matStock))
	assert.Equal(t, "82", matStock["quantity"], "la materia prima debe reflejar el consumo escalado")

	var prodStock map[string]any
	require.Equal(t, http.StatusOK, getJSON(t, fx.app, "/stock/prod-1?is_product=true", &prodStock))
	assert.Equal(t, "90", prodStock["quantity"], "el producto terminado debe sumar la cantidad real")
}

func TestProductionHandler_Complete_OrdenInexistente(t *testing.T) {
	fx := newProdFixture()

	resp := postJSON(t, fx.app, "/production/orders/no-existe/complete", fiber.Map{
		"actual_qty": "10",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
