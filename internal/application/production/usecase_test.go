package production_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// ── fakes en memoria ──────────────────────────────────────────────────────────

type stockKey struct {
	itemID    string
	isProduct bool
}

type fakeStockRepo struct {
	rows map[stockKey]decimal.Decimal
}

func newFakeStockRepo() *fakeStockRepo {
	return &fakeStockRepo{rows: make(map[stockKey]decimal.Decimal)}
}

func (f *fakeStockRepo) Get(itemID string, isProduct bool) (*entity.Stock, error) {
	qty := f.rows[stockKey{itemID, isProduct}]
	return &entity.Stock{ItemID: itemID, IsProduct: isProduct, Quantity: qty}, nil
}

func (f *fakeStockRepo) GetForUpdate(itemID string, isProduct bool) (*entity.Stock, error) {
	return f.Get(itemID, isProduct)
}

func (f *fakeStockRepo) Upsert(stock *entity.Stock) error {
	f.rows[stockKey{stock.ItemID, stock.IsProduct}] = stock.Quantity
	return nil
}

func (f *fakeStockRepo) snapshot() map[stockKey]decimal.Decimal {
	cp := make(map[stockKey]decimal.Decimal, len(f.rows))
	for k, v := range f.rows {
		cp[k] = v
	}
	return cp
}

type fakeLedgerRepo struct {
	entries []*entity.StockLedgerEntry
	failAt  int // falla en el N-ésimo Append (1-based); 0 = nunca
}

var errLedgerDown = errors.New("ledger caído")

func (f *fakeLedgerRepo) Append(e *entity.StockLedgerEntry) error {
	if f.failAt > 0 && len(f.entries)+1 >= f.failAt {
		return errLedgerDown
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeLedgerRepo) ListByItem(itemID string, isProduct bool, limit, offset int) ([]*entity.StockLedgerEntry, error) {
	var out []*entity.StockLedgerEntry
	for _, e := range f.entries {
		if e.ItemID == itemID && e.IsProduct == isProduct {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeLedgerRepo) ListByTransaction(txID string) ([]*entity.StockLedgerEntry, error) {
	var out []*entity.StockLedgerEntry
	for _, e := range f.entries {
		if e.TransactionID == txID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeOrderRepo struct {
	orders    map[string]*entity.ProductionOrder
	materials map[string][]*entity.ProductionMaterial // por orderID
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:    make(map[string]*entity.ProductionOrder),
		materials: make(map[string][]*entity.ProductionMaterial),
	}
}

func (f *fakeOrderRepo) Create(o *entity.ProductionOrder) error {
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) GetByID(id string) (*entity.ProductionOrder, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) List(status string, limit, offset int) ([]*entity.ProductionOrder, error) {
	var out []*entity.ProductionOrder
	for _, o := range f.orders {
		if status == "" || o.Status == status {
			cp := *o
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeOrderRepo) Update(o *entity.ProductionOrder) error {
	cp := *o
	f.orders[o.ID] = &cp
	return nil
}

func (f *fakeOrderRepo) CreateMaterial(m *entity.ProductionMaterial) error {
	cp := *m
	f.materials[m.OrderID] = append(f.materials[m.OrderID], &cp)
	return nil
}

func (f *fakeOrderRepo) ListMaterials(orderID string) ([]*entity.ProductionMaterial, error) {
	out := make([]*entity.ProductionMaterial, 0, len(f.materials[orderID]))
	for _, m := range f.materials[orderID] {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeOrderRepo) UpdateMaterialActual(materialID string, actualQty decimal.Decimal) error {
	for _, ms := range f.materials {
		for _, m := range ms {
			if m.ID == materialID {
				m.ActualQty = actualQty
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

type fakeRecipeRepo struct {
	lines map[string][]*entity.RecipeLine // por productID
}

func (f *fakeRecipeRepo) Create(l *entity.RecipeLine) error {
	f.lines[l.ProductID] = append(f.lines[l.ProductID], l)
	return nil
}

func (f *fakeRecipeRepo) ListByProduct(productID string) ([]*entity.RecipeLine, error) {
	return f.lines[productID], nil
}

func (f *fakeRecipeRepo) Delete(id string) error { return nil }

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func (f *fakeItemRepo) Create(i *entity.Item) error { f.items[i.ID] = i; return nil }

func (f *fakeItemRepo) GetByID(id string) (*entity.Item, error) {
	return f.items[id], nil
}

func (f *fakeItemRepo) GetByNameAndType(name, itemType string) (*entity.Item, error) {
	for _, i := range f.items {
		if i.Name == name && i.Type == itemType {
			return i, nil
		}
	}
	return nil, nil
}

func (f *fakeItemRepo) List(includeDeleted bool, limit, offset int) ([]*entity.Item, error) {
	var out []*entity.Item
	for _, i := range f.items {
		if includeDeleted || i.IsActive() {
			out = append(out, i)
		}
	}
	return out, nil
}

func (f *fakeItemRepo) Update(i *entity.Item) error { f.items[i.ID] = i; return nil }

func (f *fakeItemRepo) SoftDelete(id string) error {
	if i, ok := f.items[id]; ok {
		i.Status = entity.ItemStatusDeleted
	}
	return nil
}

// fakeTxRunner ejecuta fn contra los fakes y, si fn falla, restaura el stock
// al estado previo — simula el rollback de la transacción real.
type fakeTxRunner struct {
	stock  *fakeStockRepo
	ledger *fakeLedgerRepo
	orders *fakeOrderRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockRepository,
	ledgerRepo repository.StockLedgerRepository,
	orderRepo repository.ProductionOrderRepository,
) error) error {
	before := f.stock.snapshot()
	beforeEntries := len(f.ledger.entries)
	if err := fn(f.stock, f.ledger, f.orders); err != nil {
		f.stock.rows = before
		f.ledger.entries = f.ledger.entries[:beforeEntries]
		return err
	}
	return nil
}

// ── armado ────────────────────────────────────────────────────────────────────

type fixture struct {
	uc     *production.UseCase
	stock  *fakeStockRepo
	ledger *fakeLedgerRepo
	orders *fakeOrderRepo
	recipe *fakeRecipeRepo
	items  *fakeItemRepo
}

func newFixture() *fixture {
	stock := newFakeStockRepo()
	ledger := &fakeLedgerRepo{}
	orders := newFakeOrderRepo()
	recipe := &fakeRecipeRepo{lines: make(map[string][]*entity.RecipeLine)}
	items := &fakeItemRepo{items: make(map[string]*entity.Item)}
	runner := &fakeTxRunner{stock: stock, ledger: ledger, orders: orders}
	uc := production.NewUseCase(runner, items, orders, recipe, stock, ledger)
	return &fixture{uc: uc, stock: stock, ledger: ledger, orders: orders, recipe: recipe, items: items}
}

func (fx *fixture) addItem(id, name, itemType string) {
	fx.items.items[id] = &entity.Item{
		ID: id, Name: name, Type: itemType, Status: entity.ItemStatusActive, CreatedAt: time.Now(),
	}
}

func (fx *fixture) addRecipeLine(productID, materialID string, qtyPerUnit decimal.Decimal) {
	fx.recipe.lines[productID] = append(fx.recipe.lines[productID], &entity.RecipeLine{
		ID: productID + "-" + materialID, ProductID: productID, MaterialID: materialID, QtyPerUnit: qtyPerUnit,
	})
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── CreateOrder / ApplyBOM ────────────────────────────────────────────────────

func TestCreateOrder_ProductoInexistente(t *testing.T) {
	fx := newFixture()
	_, err := fx.uc.CreateOrder(dto.CreateProductionOrderRequest{ProductID: "nope", PlannedQty: dec("10")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateOrder_MateriaPrimaRechazada(t *testing.T) {
	fx := newFixture()
	fx.addItem("mat-1", "Harina", entity.ItemTypeRawMaterial)
	_, err := fx.uc.CreateOrder(dto.CreateProductionOrderRequest{ProductID: "mat-1", PlannedQty: dec("10")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyBOM_PueblaLineasEscaladas(t *testing.T) {
	fx := newFixture()
	fx.addItem("prod-1", "Pan", entity.ItemTypeFinishedProduct)
	fx.addRecipeLine("prod-1", "mat-1", dec("0.2"))
	fx.addRecipeLine("prod-1", "mat-2", dec("0.05"))

	order, err := fx.uc.CreateOrder(dto.CreateProductionOrderRequest{ProductID: "prod-1", PlannedQty: dec("100")})
	require.NoError(t, err)

	require.NoError(t, fx.uc.ApplyBOM(context.Background(), order.ID))

	materials, err := fx.uc.ListMaterials(order.ID)
	require.NoError(t, err)
	require.Len(t, materials, 2)
	assert.True(t, materials[0].PlannedQty.Equal(dec("20")),
		"planned = qtyPerUnit × plannedQty: 0.2 × 100 = 20, fue %s", materials[0].PlannedQty)
	assert.True(t, materials[1].PlannedQty.Equal(dec("5")))
	assert.True(t, materials[0].ActualQty.IsZero(), "el uso real queda en 0 hasta el cierre")
}

func TestApplyBOM_ReaplicarRechazado(t *testing.T) {
	fx := newFixture()
	fx.addItem("prod-1", "Pan", entity.ItemTypeFinishedProduct)
	fx.addRecipeLine("prod-1", "mat-1", dec("1"))

	order, _ := fx.uc.CreateOrder(dto.CreateProductionOrderRequest{ProductID: "prod-1", PlannedQty: dec("10")})
	require.NoError(t, fx.uc.ApplyBOM(context.Background(), order.ID))

	err := fx.uc.ApplyBOM(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict, "re-aplicar la receta duplicaría las líneas")
}

func TestApplyBOM_SinReceta(t *testing.T) {
	fx := newFixture()
	fx.addItem("prod-1", "Pan", entity.ItemTypeFinishedProduct)
	order, _ := fx.uc.CreateOrder(dto.CreateProductionOrderRequest{ProductID: "prod-1", PlannedQty: dec("10")})

	err := fx.uc.ApplyBOM(context.Background(), order.ID)
	assert.ErrorIs(t, err, domain.ErrNoRecipe)
}

// ── Complete ──────────────────────────────────────────────────────────────────

// El cierre con rendimiento 90/100 escala todo el consumo por 0.9 y deja el
// libro cuadrado: cada asiento cumple new = old + change y todos comparten
// el mismo transaction_id.
func TestComplete_EscalaPorRendimiento(t *testing.T) {
	fx := newFixture()
	fx.addItem("prod-1", "Pan", entity.ItemTypeFinishedProduct)
	fx.addRecipeLine("prod-1", "mat-1", dec("0.2"))
	fx.addRecipeLine("prod-1", "mat-2", dec("0.05"))
	fx.stock.rows[stockKey{"mat-1", false}] = dec("100")
	fx.stock.rows[stockKey{"mat-2", false}] = dec("30")

	order, _ := fx.uc.CreateOrder(dto.CreateProductionOrderRequest{ProductID: "prod-1", PlannedQty: dec("100")})
	require.NoError(t, fx.uc.ApplyBOM(context.Background(), order.ID))

	require.NoError(t, fx.uc.Complete(context.Background(), order.ID, dec("90")))

	materials, _ := fx.uc.ListMaterials(order.ID)
	assert.True(t, materials[0].ActualQty.Equal(dec("18")), "20 × 0.9 = 18, fue %s", materials[0].ActualQty)
	assert.True(t, materials[1].ActualQty.Equal(dec("4.5")), "5 × 0.9 = 4.5, fue %s", materials[1].ActualQty)

	assert.True(t, fx.stock.rows[stockKey{"mat-1", false}].Equal(dec("82")))
	assert.True(t, fx.stock.rows[stockKey{"mat-2", false}].Equal(dec("25.5")))
	assert.True(t, fx.stock.rows[stockKey{"prod-1", true}].Equal(dec("90")))

	got, _ := fx.uc.GetOrder(order.ID)
	assert.Equal(t, entity.OrderStatusCompleted, got.Status)
	assert.True(t, got.ActualQty.Equal(dec("90")))
	require.NotNil(t, got.EndDate)

	// 2 materiales + 1 producto = 3 asientos, mismo transaction_id, libro cuadrado.
	require.Len(t, fx.ledger.entries, 3)
	txID := fx.ledger.entries[0].TransactionID
	for _, e := range fx.ledger.entries {
		assert.Equal(t, txID, e.TransactionID)
		assert.Equal(t, entity.ChangeTypeProduction, e.ChangeType)
		assert.True(t, e.NewQty.Equal(e.OldQty.Add(e.ChangeQty)),
			"new = old + change: %s ≠ %s + %s", e.NewQty, e.OldQty, e.ChangeQty)
	}
}

// Rendimiento 0 (actual 0): sin consumo de materiales y sin ingreso neto,
// pero la orden cierra igualmente.
func TestComplete_RendimientoCero(t *testing.T) {
	fx := newFixture()
	fx.addItem("prod-1", "Pan", entity.ItemTypeFinishedProduct)
	fx.addRecipeLine("prod-1", "mat-1", dec("2"))
	fx.stock.rows[stockKey{"mat-1", false}] = dec("50")

	order, _ := fx.uc.CreateOrder(dto.CreateProductionOrderRequest{ProductID: "prod-1", PlannedQty: dec("10")})
	require.NoError(t, fx.uc.ApplyBOM(context.Background(), order.ID))
	require.NoError(t, fx.uc.Complete(context.Background(), order.ID, decimal.Zero))

	assert.True(t, fx.stock.rows[stockKey{"mat-1", false}].Equal(dec("50")), "sin producción no hay consumo")
	got, _ := fx.uc.GetOrder(order.ID)
	assert.Equal(t, entity.OrderStatusCompleted, got.Status)
}

// El stock puede quedar negativo: el cierre nunca se bloquea por faltantes.
func TestComplete_PermiteStockNegativo(t *testing.T) {
	fx := newFixture()
	fx.addItem("prod-1", "Pan", entity.ItemTypeFinishedProduct)
	fx.addRecipeLine("prod-1", "mat-1", dec("5"))
	fx.stock.rows[stockKey{"mat-1", false}] = dec("10")

	order, _ := fx.uc.CreateOrder(dto.CreateProductionOrderRequest{ProductID: "prod-1", PlannedQty: dec("10")})
	require.NoError(t, fx.uc.ApplyBOM(context.Background(), order.ID))
	require.NoError(t, fx.uc.Complete(context.Background(), order.ID, dec("10")))

	assert.True(t, fx.stock.rows[stockKey{"mat-1", false}].Equal(dec("-40")),
		"10 - 50 = -40; la discrepancia se investiga con el libro, no se bloquea")
}

func TestComplete_CantidadNegativaRechazada(t *testing.T) {
	fx := newFixture()
	err := fx.uc.Complete(context.Background(), "any", dec("-1"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestComplete_OrdenYaCerrada(t *testing.T) {
	fx := newFixture()
	fx.addItem("prod-1", "Pan", entity.ItemTypeFinishedProduct)
	fx.addRecipeLine("prod-1", "mat-1", dec("1"))

	order, _ := fx.uc.CreateOrder(dto.CreateProductionOrderRequest{ProductID: "prod-1", PlannedQty: dec("10")})
	require.NoError(t, fx.uc.ApplyBOM(context.Background(), order.ID))
	require.NoError(t, fx.uc.Complete(context.Background(), order.ID, dec("10")))

	err := fx.uc.Complete(context.Background(), order.ID, dec("10"))
	assert.ErrorIs(t, err, domain.ErrConflict, "Completed es terminal: un segundo cierre duplicaría los movimientos")
}

// Si un asiento del libro falla a mitad del cierre, nada queda a medias:
// el error sube al runner de la transacción y el stock vuelve al estado previo.
func TestComplete_FalloParcialNoDejaEstadoAMedias(t *testing.T) {
	fx := newFixture()
	fx.addItem("prod-1", "Pan", entity.ItemTypeFinishedProduct)
	fx.addRecipeLine("prod-1", "mat-1", dec("2"))
	fx.addRecipeLine("prod-1", "mat-2", dec("3"))
	fx.stock.rows[stockKey{"mat-1", false}] = dec("100")
	fx.stock.rows[stockKey{"mat-2", false}] = dec("100")

	order, _ := fx.uc.CreateOrder(dto.CreateProductionOrderRequest{ProductID: "prod-1", PlannedQty: dec("10")})
	require.NoError(t, fx.uc.ApplyBOM(context.Background(), order.ID))

	fx.ledger.failAt = 2 // el segundo asiento revienta

	err := fx.uc.Complete(context.Background(), order.ID, dec("10"))
	require.ErrorIs(t, err, errLedgerDown)

	assert.True(t, fx.stock.rows[stockKey{"mat-1", false}].Equal(dec("100")), "rollback: el primer descuento no persiste")
	assert.True(t, fx.stock.rows[stockKey{"mat-2", false}].Equal(dec("100")))
	assert.Empty(t, fx.ledger.entries, "sin asientos huérfanos")
	got, _ := fx.uc.GetOrder(order.ID)
	assert.Equal(t, entity.OrderStatusPlanned, got.Status, "la orden sigue abierta y puede reintentarse")
}

// ── Cancel / AdjustStock ──────────────────────────────────────────────────────

func TestCancel_SoloDesdePlanned(t *testing.T) {
	fx := newFixture()
	fx.addItem("prod-1", "Pan", entity.ItemTypeFinishedProduct)
	fx.addRecipeLine("prod-1", "mat-1", dec("1"))

	order, _ := fx.uc.CreateOrder(dto.CreateProductionOrderRequest{ProductID: "prod-1", PlannedQty: dec("10")})
	require.NoError(t, fx.uc.ApplyBOM(context.Background(), order.ID))
	require.NoError(t, fx.uc.Complete(context.Background(), order.ID, dec("10")))

	err := fx.uc.Cancel(order.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestAdjustStock_AsientaManualAdjust(t *testing.T) {
	fx := newFixture()
	fx.addItem("mat-1", "Harina", entity.ItemTypeRawMaterial)
	fx.stock.rows[stockKey{"mat-1", false}] = dec("10")

	err := fx.uc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ItemID: "mat-1", IsProduct: false, Delta: dec("-3.5"), Reason: "merma de bodega",
	})
	require.NoError(t, err)

	assert.True(t, fx.stock.rows[stockKey{"mat-1", false}].Equal(dec("6.5")))
	require.Len(t, fx.ledger.entries, 1)
	e := fx.ledger.entries[0]
	assert.Equal(t, entity.ChangeTypeManualAdjust, e.ChangeType)
	assert.Equal(t, "merma de bodega", e.Reason)
	assert.True(t, e.OldQty.Equal(dec("10")))
	assert.True(t, e.NewQty.Equal(dec("6.5")))
}

func TestAdjustStock_ArticuloSinFilaDeStock(t *testing.T) {
	fx := newFixture()
	fx.addItem("mat-9", "Azúcar", entity.ItemTypeRawMaterial)

	// Sin fila previa: se parte de 0 y el delta negativo deja saldo negativo.
	err := fx.uc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ItemID: "mat-9", IsProduct: false, Delta: dec("-2"),
	})
	require.NoError(t, err)
	assert.True(t, fx.stock.rows[stockKey{"mat-9", false}].Equal(dec("-2")))
}
