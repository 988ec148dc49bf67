package bom

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	domainbom "github.com/jhoicas/Produccion-api/internal/domain/bom"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

var one = decimal.NewFromInt(1)

// UseCase casos de uso de fórmulas: encabezados y detalles porcentuales,
// recetas absolutas de producción, costeo y adopción de precios de proveedor.
type UseCase struct {
	txRunner    TxRunner
	formulaRepo repository.FormulaRepository
	recipeRepo  repository.RecipeRepository
	itemRepo    repository.ItemRepository
	quoteRepo   repository.SupplierQuoteRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner TxRunner,
	formulaRepo repository.FormulaRepository,
	recipeRepo repository.RecipeRepository,
	itemRepo repository.ItemRepository,
	quoteRepo repository.SupplierQuoteRepository,
) *UseCase {
	return &UseCase{
		txRunner:    txRunner,
		formulaRepo: formulaRepo,
		recipeRepo:  recipeRepo,
		itemRepo:    itemRepo,
		quoteRepo:   quoteRepo,
	}
}

// CreateHeader crea el encabezado de una fórmula. El producto debe existir y
// estar activo; la fecha de expiración, si existe, no puede preceder a la de
// vigencia; el peso no puede ser negativo.
func (uc *UseCase) CreateHeader(in dto.CreateFormulaRequest) (*dto.FormulaHeaderResponse, error) {
	if in.Version == "" || in.TotalWeight.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.ExpireDate != nil && in.ExpireDate.Before(in.EffectiveDate) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.itemRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive() {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	header := &entity.FormulaHeader{
		ID:            uuid.New().String(),
		ProductID:     in.ProductID,
		Version:       in.Version,
		TotalWeight:   in.TotalWeight,
		EffectiveDate: in.EffectiveDate,
		ExpireDate:    in.ExpireDate,
		Remarks:       in.Remarks,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.formulaRepo.CreateHeader(header); err != nil {
		return nil, err
	}
	return toHeaderResponse(header), nil
}

// AddDetail agrega un componente a la fórmula. Cantidad positiva, merma en
// [0, 1] y componente no repetido en el mismo encabezado.
func (uc *UseCase) AddDetail(headerID string, in dto.AddFormulaDetailRequest) (*dto.FormulaDetailResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if in.ScrapRate != nil && (in.ScrapRate.IsNegative() || in.ScrapRate.GreaterThan(one)) {
		return nil, domain.ErrInvalidInput
	}
	header, err := uc.formulaRepo.GetHeader(headerID)
	if err != nil {
		return nil, err
	}
	if header == nil {
		return nil, domain.ErrNotFound
	}
	component, err := uc.itemRepo.GetByID(in.ComponentID)
	if err != nil {
		return nil, err
	}
	if component == nil || !component.IsActive() {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.formulaRepo.GetDetailByComponent(headerID, in.ComponentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateComponent
	}
	unit := in.Unit
	if unit == "" {
		unit = entity.UnitPercent
	}
	now := time.Now()
	detail := &entity.FormulaDetail{
		ID:          uuid.New().String(),
		HeaderID:    headerID,
		ComponentID: in.ComponentID,
		Quantity:    in.Quantity,
		Unit:        unit,
		ScrapRate:   in.ScrapRate,
		SupplierID:  in.SupplierID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.formulaRepo.AddDetail(detail); err != nil {
		return nil, err
	}
	return toDetailResponse(detail), nil
}

// UpdateDetail actualiza parcialmente un componente, con las mismas
// validaciones del alta. Campo a campo: solo lo presente se aplica.
func (uc *UseCase) UpdateDetail(detailID string, in dto.UpdateFormulaDetailRequest) (*dto.FormulaDetailResponse, error) {
	detail, err := uc.formulaRepo.GetDetail(detailID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		return nil, domain.ErrNotFound
	}
	if in.Quantity != nil {
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		detail.Quantity = *in.Quantity
	}
	if in.Unit != nil {
		detail.Unit = *in.Unit
	}
	if in.ScrapRate != nil {
		if in.ScrapRate.IsNegative() || in.ScrapRate.GreaterThan(one) {
			return nil, domain.ErrInvalidInput
		}
		detail.ScrapRate = in.ScrapRate
	}
	if in.SupplierID != nil {
		detail.SupplierID = *in.SupplierID
		// Cambiar de proveedor invalida el precio adoptado.
		detail.PricePerGram = nil
	}
	detail.UpdatedAt = time.Now()
	if err := uc.formulaRepo.UpdateDetail(detail); err != nil {
		return nil, err
	}
	return toDetailResponse(detail), nil
}

// DeleteDetail elimina un componente de la fórmula.
func (uc *UseCase) DeleteDetail(detailID string) error {
	detail, err := uc.formulaRepo.GetDetail(detailID)
	if err != nil {
		return err
	}
	if detail == nil {
		return domain.ErrNotFound
	}
	return uc.formulaRepo.DeleteDetail(detailID)
}

// GetFormula devuelve encabezado y detalles de una fórmula.
func (uc *UseCase) GetFormula(headerID string) (*dto.FormulaHeaderResponse, []*dto.FormulaDetailResponse, error) {
	header, details, err := uc.load(headerID)
	if err != nil {
		return nil, nil, err
	}
	out := make([]*dto.FormulaDetailResponse, 0, len(details))
	for _, d := range details {
		out = append(out, toDetailResponse(d))
	}
	return toHeaderResponse(header), out, nil
}

// ListHeadersByProduct lista las versiones de fórmula de un producto.
func (uc *UseCase) ListHeadersByProduct(productID string) ([]*dto.FormulaHeaderResponse, error) {
	headers, err := uc.formulaRepo.ListHeadersByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.FormulaHeaderResponse, 0, len(headers))
	for _, h := range headers {
		out = append(out, toHeaderResponse(h))
	}
	return out, nil
}

// Cost calcula el desglose de costo y el total de la fórmula con el motor de
// dominio. No toca precios: usa los ya adoptados en los detalles.
func (uc *UseCase) Cost(headerID string) (*dto.FormulaCostResponse, error) {
	header, details, err := uc.load(headerID)
	if err != nil {
		return nil, err
	}
	lines, total := domainbom.ComputeFormulaCost(header, details)
	out := &dto.FormulaCostResponse{
		HeaderID:    header.ID,
		ProductID:   header.ProductID,
		TotalWeight: header.TotalWeight,
		Lines:       make([]dto.CostLineDTO, 0, len(lines)),
		Total:       total,
	}
	for _, l := range lines {
		out.Lines = append(out.Lines, dto.CostLineDTO{
			ComponentID:  l.ComponentID,
			ActualQty:    l.ActualQty,
			PricePerGram: l.PricePerGram,
			Subtotal:     l.Subtotal,
			PriceMissing: l.PriceMissing,
		})
	}
	return out, nil
}

// RefreshPrices adopta en cada detalle con proveedor el último precio
// cotizado, convertido a gramos, y asienta un registro en el histórico de
// precios con la fecha actual — todo dentro de una transacción. Componentes
// sin cotización vigente no son error: se reportan en Missing.
func (uc *UseCase) RefreshPrices(ctx context.Context, headerID string) (*dto.RefreshPricesResponse, error) {
	_, details, err := uc.load(headerID)
	if err != nil {
		return nil, err
	}

	type adoption struct {
		detail  *entity.FormulaDetail
		perGram decimal.Decimal
	}
	var adoptions []adoption
	resp := &dto.RefreshPricesResponse{}

	for _, d := range details {
		if d.SupplierID == "" {
			resp.Missing = append(resp.Missing, d.ComponentID)
			continue
		}
		quote, err := uc.quoteRepo.GetLatest(d.SupplierID, d.ComponentID)
		if err != nil {
			return nil, err
		}
		if quote == nil || quote.PricePerKg == nil {
			resp.Missing = append(resp.Missing, d.ComponentID)
			continue
		}
		adoptions = append(adoptions, adoption{detail: d, perGram: domainbom.PricePerGram(*quote.PricePerKg)})
	}

	now := time.Now()
	err = uc.txRunner.RunFormula(ctx, func(
		formulaRepo repository.FormulaRepository,
		priceRepo repository.PriceHistoryRepository,
	) error {
		for _, a := range adoptions {
			perGram := a.perGram
			a.detail.PricePerGram = &perGram
			a.detail.UpdatedAt = now
			if err := formulaRepo.UpdateDetail(a.detail); err != nil {
				return err
			}
			if err := priceRepo.Append(&entity.PriceHistoryEntry{
				ID:            uuid.New().String(),
				ItemID:        a.detail.ComponentID,
				Price:         perGram,
				EffectiveDate: now,
				CreatedAt:     now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp.Updated = len(adoptions)
	return resp, nil
}

// AddRecipeLine agrega una línea a la receta de producción (BOM absoluto).
func (uc *UseCase) AddRecipeLine(in dto.CreateRecipeLineRequest) (*dto.RecipeLineResponse, error) {
	if !in.QtyPerUnit.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.itemRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive() {
		return nil, domain.ErrNotFound
	}
	material, err := uc.itemRepo.GetByID(in.MaterialID)
	if err != nil {
		return nil, err
	}
	if material == nil || !material.IsActive() {
		return nil, domain.ErrNotFound
	}
	line := &entity.RecipeLine{
		ID:         uuid.New().String(),
		ProductID:  in.ProductID,
		MaterialID: in.MaterialID,
		QtyPerUnit: in.QtyPerUnit,
		CreatedAt:  time.Now(),
	}
	if err := uc.recipeRepo.Create(line); err != nil {
		return nil, err
	}
	return &dto.RecipeLineResponse{ID: line.ID, ProductID: line.ProductID, MaterialID: line.MaterialID, QtyPerUnit: line.QtyPerUnit}, nil
}

// ListRecipe lista la receta de un producto.
func (uc *UseCase) ListRecipe(productID string) ([]*dto.RecipeLineResponse, error) {
	lines, err := uc.recipeRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RecipeLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, &dto.RecipeLineResponse{ID: l.ID, ProductID: l.ProductID, MaterialID: l.MaterialID, QtyPerUnit: l.QtyPerUnit})
	}
	return out, nil
}

// DeleteRecipeLine elimina una línea de receta.
func (uc *UseCase) DeleteRecipeLine(id string) error {
	return uc.recipeRepo.Delete(id)
}

func (uc *UseCase) load(headerID string) (*entity.FormulaHeader, []*entity.FormulaDetail, error) {
	header, err := uc.formulaRepo.GetHeader(headerID)
	if err != nil {
		return nil, nil, err
	}
	if header == nil {
		return nil, nil, domain.ErrNotFound
	}
	details, err := uc.formulaRepo.ListDetails(headerID)
	if err != nil {
		return nil, nil, err
	}
	return header, details, nil
}

func toHeaderResponse(h *entity.FormulaHeader) *dto.FormulaHeaderResponse {
	return &dto.FormulaHeaderResponse{
		ID:            h.ID,
		ProductID:     h.ProductID,
		Version:       h.Version,
		TotalWeight:   h.TotalWeight,
		EffectiveDate: h.EffectiveDate,
		ExpireDate:    h.ExpireDate,
		Remarks:       h.Remarks,
	}
}

func toDetailResponse(d *entity.FormulaDetail) *dto.FormulaDetailResponse {
	return &dto.FormulaDetailResponse{
		ID:           d.ID,
		ComponentID:  d.ComponentID,
		Quantity:     d.Quantity,
		Unit:         d.Unit,
		ScrapRate:    d.ScrapRate,
		SupplierID:   d.SupplierID,
		PricePerGram: d.PricePerGram,
	}
}
