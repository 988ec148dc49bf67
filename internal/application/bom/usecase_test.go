package bom_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/application/bom"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// ── fakes en memoria ──────────────────────────────────────────────────────────

type fakeFormulaRepo struct {
	headers map[string]*entity.FormulaHeader
	details map[string]*entity.FormulaDetail
}

func newFakeFormulaRepo() *fakeFormulaRepo {
	return &fakeFormulaRepo{
		headers: make(map[string]*entity.FormulaHeader),
		details: make(map[string]*entity.FormulaDetail),
	}
}

func (f *fakeFormulaRepo) CreateHeader(h *entity.FormulaHeader) error {
	f.headers[h.ID] = h
	return nil
}

func (f *fakeFormulaRepo) GetHeader(id string) (*entity.FormulaHeader, error) {
	return f.headers[id], nil
}

func (f *fakeFormulaRepo) ListHeadersByProduct(productID string) ([]*entity.FormulaHeader, error) {
	var out []*entity.FormulaHeader
	for _, h := range f.headers {
		if h.ProductID == productID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (f *fakeFormulaRepo) UpdateHeader(h *entity.FormulaHeader) error {
	f.headers[h.ID] = h
	return nil
}

func (f *fakeFormulaRepo) DeleteHeader(id string) error {
	delete(f.headers, id)
	return nil
}

func (f *fakeFormulaRepo) AddDetail(d *entity.FormulaDetail) error {
	cp := *d
	f.details[d.ID] = &cp
	return nil
}

func (f *fakeFormulaRepo) GetDetail(id string) (*entity.FormulaDetail, error) {
	d, ok := f.details[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (f *fakeFormulaRepo) GetDetailByComponent(headerID, componentID string) (*entity.FormulaDetail, error) {
	for _, d := range f.details {
		if d.HeaderID == headerID && d.ComponentID == componentID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeFormulaRepo) ListDetails(headerID string) ([]*entity.FormulaDetail, error) {
	var out []*entity.FormulaDetail
	for _, d := range f.details {
		if d.HeaderID == headerID {
			cp := *d
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeFormulaRepo) UpdateDetail(d *entity.FormulaDetail) error {
	cp := *d
	f.details[d.ID] = &cp
	return nil
}

func (f *fakeFormulaRepo) DeleteDetail(id string) error {
	delete(f.details, id)
	return nil
}

type quoteKey struct{ supplierID, itemID string }

type fakeQuoteRepo struct {
	latest map[quoteKey]*entity.SupplierQuote
}

func (f *fakeQuoteRepo) Create(q *entity.SupplierQuote) error {
	f.latest[quoteKey{q.SupplierID, q.ItemID}] = q
	return nil
}

func (f *fakeQuoteRepo) GetByID(id string) (*entity.SupplierQuote, error) { return nil, nil }

func (f *fakeQuoteRepo) GetLatest(supplierID, itemID string) (*entity.SupplierQuote, error) {
	return f.latest[quoteKey{supplierID, itemID}], nil
}

func (f *fakeQuoteRepo) ListByItem(itemID string, limit, offset int) ([]*entity.SupplierQuote, error) {
	return nil, nil
}

func (f *fakeQuoteRepo) Update(q *entity.SupplierQuote) error { return nil }
func (f *fakeQuoteRepo) Delete(id string) error               { return nil }

type fakePriceHistoryRepo struct {
	entries []*entity.PriceHistoryEntry
}

func (f *fakePriceHistoryRepo) Append(e *entity.PriceHistoryEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakePriceHistoryRepo) ListByItem(itemID string, limit, offset int) ([]*entity.PriceHistoryEntry, error) {
	var out []*entity.PriceHistoryEntry
	for _, e := range f.entries {
		if e.ItemID == itemID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeRecipeRepo struct {
	lines []*entity.RecipeLine
}

func (f *fakeRecipeRepo) Create(l *entity.RecipeLine) error {
	f.lines = append(f.lines, l)
	return nil
}

func (f *fakeRecipeRepo) ListByProduct(productID string) ([]*entity.RecipeLine, error) {
	var out []*entity.RecipeLine
	for _, l := range f.lines {
		if l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeRecipeRepo) Delete(id string) error { return nil }

type fakeItemRepo struct {
	items map[string]*entity.Item
}

func (f *fakeItemRepo) Create(i *entity.Item) error { f.items[i.ID] = i; return nil }

func (f *fakeItemRepo) GetByID(id string) (*entity.Item, error) { return f.items[id], nil }

func (f *fakeItemRepo) GetByNameAndType(name, itemType string) (*entity.Item, error) {
	return nil, nil
}

func (f *fakeItemRepo) List(includeDeleted bool, limit, offset int) ([]*entity.Item, error) {
	return nil, nil
}

func (f *fakeItemRepo) Update(i *entity.Item) error { return nil }
func (f *fakeItemRepo) SoftDelete(id string) error  { return nil }

type fakeTxRunner struct {
	formula *fakeFormulaRepo
	prices  *fakePriceHistoryRepo
}

func (f *fakeTxRunner) RunFormula(ctx context.Context, fn func(
	formulaRepo repository.FormulaRepository,
	priceRepo repository.PriceHistoryRepository,
) error) error {
	return fn(f.formula, f.prices)
}

// ── armado ────────────────────────────────────────────────────────────────────

type fixture struct {
	uc      *bom.UseCase
	formula *fakeFormulaRepo
	quotes  *fakeQuoteRepo
	prices  *fakePriceHistoryRepo
	items   *fakeItemRepo
}

func newFixture() *fixture {
	formula := newFakeFormulaRepo()
	quotes := &fakeQuoteRepo{latest: make(map[quoteKey]*entity.SupplierQuote)}
	prices := &fakePriceHistoryRepo{}
	items := &fakeItemRepo{items: make(map[string]*entity.Item)}
	recipe := &fakeRecipeRepo{}
	runner := &fakeTxRunner{formula: formula, prices: prices}
	uc := bom.NewUseCase(runner, formula, recipe, items, quotes)
	return &fixture{uc: uc, formula: formula, quotes: quotes, prices: prices, items: items}
}

func (fx *fixture) addItem(id, name, itemType string) {
	fx.items.items[id] = &entity.Item{
		ID: id, Name: name, Type: itemType, Status: entity.ItemStatusActive, CreatedAt: time.Now(),
	}
}

func (fx *fixture) addQuote(supplierID, itemID string, pricePerKg decimal.Decimal) {
	fx.quotes.latest[quoteKey{supplierID, itemID}] = &entity.SupplierQuote{
		ID: supplierID + "-" + itemID, SupplierID: supplierID, ItemID: itemID,
		PricePerKg: &pricePerKg, CreatedAt: time.Now(),
	}
}

func (fx *fixture) newHeader(t *testing.T, productID string, totalWeight decimal.Decimal) string {
	t.Helper()
	header, err := fx.uc.CreateHeader(dto.CreateFormulaRequest{
		ProductID: productID, Version: "v1", TotalWeight: totalWeight, EffectiveDate: time.Now(),
	})
	require.NoError(t, err)
	return header.ID
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── CreateHeader / AddDetail ──────────────────────────────────────────────────

func TestCreateHeader_ExpiracionAntesDeVigencia(t *testing.T) {
	fx := newFixture()
	fx.addItem("prod-1", "Crema", entity.ItemTypeFinishedProduct)
	effective := time.Now()
	expire := effective.Add(-24 * time.Hour)
	_, err := fx.uc.CreateHeader(dto.CreateFormulaRequest{
		ProductID: "prod-1", Version: "v1", TotalWeight: dec("1000"),
		EffectiveDate: effective, ExpireDate: &expire,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddDetail_ComponenteDuplicado(t *testing.T) {
	fx := newFixture()
	fx.addItem("prod-1", "Crema", entity.ItemTypeFinishedProduct)
	fx.addItem("mat-1", "Glicerina", entity.ItemTypeRawMaterial)
	headerID := fx.newHeader(t, "prod-1", dec("1000"))

	_, err := fx.uc.AddDetail(headerID, dto.AddFormulaDetailRequest{ComponentID: "mat-1", Quantity: dec("60")})
	require.NoError(t, err)

	_, err = fx.uc.AddDetail(headerID, dto.AddFormulaDetailRequest{ComponentID: "mat-1", Quantity: dec("10")})
	assert.ErrorIs(t, err, domain.ErrDuplicateComponent,
		"el mismo componente dos veces en una fórmula rompe la unicidad (fórmula, componente)")
}

func TestAddDetail_MermaFueraDeRango(t *testing.T) {
	fx := newFixture()
	fx.addItem("prod-1", "Crema", entity.ItemTypeFinishedProduct)
	fx.addItem("mat-1", "Glicerina", entity.ItemTypeRawMaterial)
	headerID := fx.newHeader(t, "prod-1", dec("1000"))

	scrap := dec("1.5")
	_, err := fx.uc.AddDetail(headerID, dto.AddFormulaDetailRequest{
		ComponentID: "mat-1", Quantity: dec("60"), ScrapRate: &scrap,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddDetail_UnidadVaciaEsPorcentaje(t *testing.T) {
	fx := newFixture()
	fx.addItem("prod-1", "Crema", entity.ItemTypeFinishedProduct)
	fx.addItem("mat-1", "Glicerina", entity.ItemTypeRawMaterial)
	headerID := fx.newHeader(t, "prod-1", dec("1000"))

	detail, err := fx.uc.AddDetail(headerID, dto.AddFormulaDetailRequest{ComponentID: "mat-1", Quantity: dec("60")})
	require.NoError(t, err)
	assert.Equal(t, entity.UnitPercent, detail.Unit)
}

// ── UpdateDetail ──────────────────────────────────────────────────────────────

// Cambiar el proveedor de un componente invalida el precio adoptado: el precio
// pertenecía a la cotización del proveedor anterior.
func TestUpdateDetail_CambioDeProveedorInvalidaPrecio(t *testing.T) {
	fx := newFixture()
	fx.addItem("prod-1", "Crema", entity.ItemTypeFinishedProduct)
	fx.addItem("mat-1", "Glicerina", entity.ItemTypeRawMaterial)
	fx.addQuote("sup-1", "mat-1", dec("50"))
	headerID := fx.newHeader(t, "prod-1", dec("1000"))

	detail, err := fx.uc.AddDetail(headerID, dto.AddFormulaDetailRequest{
		ComponentID: "mat-1", Quantity: dec("60"), SupplierID: "sup-1",
	})
	require.NoError(t, err)

	_, err = fx.uc.RefreshPrices(context.Background(), headerID)
	require.NoError(t, err)

	newSupplier := "sup-2"
	updated, err := fx.uc.UpdateDetail(detail.ID, dto.UpdateFormulaDetailRequest{SupplierID: &newSupplier})
	require.NoError(t, err)
	assert.Nil(t, updated.PricePerGram)
}

// ── Cost ──────────────────────────────────────────────────────────────────────

// Fórmula de 1000 g: 60 % a 0.05/g más 40 % a 0.08/g cuesta 62.
func TestCost_FormulaPorcentual(t *testing.T) {
	fx := newFixture()
	fx.addItem("prod-1", "Crema", entity.ItemTypeFinishedProduct)
	fx.addItem("mat-1", "Glicerina", entity.ItemTypeRawMaterial)
	fx.addItem("mat-2", "Aceite", entity.ItemTypeRawMaterial)
	fx.addQuote("sup-1", "mat-1", dec("50")) // 50/kg = 0.05/g
	fx.addQuote("sup-1", "mat-2", dec("80")) // 80/kg = 0.08/g
	headerID := fx.newHeader(t, "prod-1", dec("1000"))

	_, err := fx.uc.AddDetail(headerID, dto.AddFormulaDetailRequest{ComponentID: "mat-1", Quantity: dec("60"), SupplierID: "sup-1"})
	require.NoError(t, err)
	_, err = fx.uc.AddDetail(headerID, dto.AddFormulaDetailRequest{ComponentID: "mat-2", Quantity: dec("40"), SupplierID: "sup-1"})
	require.NoError(t, err)

	_, err = fx.uc.RefreshPrices(context.Background(), headerID)
	require.NoError(t, err)

	cost, err := fx.uc.Cost(headerID)
	require.NoError(t, err)
	require.Len(t, cost.Lines, 2)
	assert.True(t, cost.Total.Equal(dec("62")),
		"600 g × 0.05 + 400 g × 0.08 = 62, fue %s", cost.Total)
	for _, l := range cost.Lines {
		assert.False(t, l.PriceMissing)
	}
}

func TestCost_ComponenteSinPrecioCosteaCero(t *testing.T) {
	fx := newFixture()
	fx.addItem("prod-1", "Crema", entity.ItemTypeFinishedProduct)
	fx.addItem("mat-1", "Glicerina", entity.ItemTypeRawMaterial)
	headerID := fx.newHeader(t, "prod-1", dec("1000"))

	_, err := fx.uc.AddDetail(headerID, dto.AddFormulaDetailRequest{ComponentID: "mat-1", Quantity: dec("60")})
	require.NoError(t, err)

	cost, err := fx.uc.Cost(headerID)
	require.NoError(t, err)
	require.Len(t, cost.Lines, 1)
	assert.True(t, cost.Lines[0].PriceMissing)
	assert.True(t, cost.Lines[0].Subtotal.IsZero())
	assert.True(t, cost.Total.IsZero())
}

// ── RefreshPrices ─────────────────────────────────────────────────────────────

// Adoptar precios convierte kg a gramos una sola vez y asienta el histórico.
func TestRefreshPrices_AdoptaYAsientaHistorico(t *testing.T) {
	fx := newFixture()
	fx.addItem("prod-1", "Crema", entity.ItemTypeFinishedProduct)
	fx.addItem("mat-1", "Glicerina", entity.ItemTypeRawMaterial)
	fx.addQuote("sup-1", "mat-1", dec("50"))
	headerID := fx.newHeader(t, "prod-1", dec("1000"))

	_, err := fx.uc.AddDetail(headerID, dto.AddFormulaDetailRequest{
		ComponentID: "mat-1", Quantity: dec("60"), SupplierID: "sup-1",
	})
	require.NoError(t, err)

	resp, err := fx.uc.RefreshPrices(context.Background(), headerID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Updated)
	assert.Empty(t, resp.Missing)

	_, details, err := fx.uc.GetFormula(headerID)
	require.NoError(t, err)
	require.NotNil(t, details[0].PricePerGram)
	assert.True(t, details[0].PricePerGram.Equal(dec("0.05")), "50/kg ÷ 1000 = 0.05/g")

	history, err := fx.prices.ListByItem("mat-1", 10, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.True(t, history[0].Price.Equal(dec("0.05")))
}

// Un componente sin cotización vigente no es un error: se reporta en Missing
// y su precio queda intacto.
func TestRefreshPrices_SinCotizacionNoEsError(t *testing.T) {
	fx := newFixture()
	fx.addItem("prod-1", "Crema", entity.ItemTypeFinishedProduct)
	fx.addItem("mat-1", "Glicerina", entity.ItemTypeRawMaterial)
	fx.addItem("mat-2", "Aceite", entity.ItemTypeRawMaterial)
	fx.addQuote("sup-1", "mat-1", dec("50"))
	headerID := fx.newHeader(t, "prod-1", dec("1000"))

	_, err := fx.uc.AddDetail(headerID, dto.AddFormulaDetailRequest{
		ComponentID: "mat-1", Quantity: dec("60"), SupplierID: "sup-1",
	})
	require.NoError(t, err)
	// mat-2 con proveedor pero sin cotización registrada.
	_, err = fx.uc.AddDetail(headerID, dto.AddFormulaDetailRequest{
		ComponentID: "mat-2", Quantity: dec("40"), SupplierID: "sup-9",
	})
	require.NoError(t, err)

	resp, err := fx.uc.RefreshPrices(context.Background(), headerID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Updated)
	assert.Equal(t, []string{"mat-2"}, resp.Missing)

	assert.Len(t, fx.prices.entries, 1, "solo el componente cotizado genera histórico")
}
