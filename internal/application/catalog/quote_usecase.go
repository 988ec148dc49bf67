package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
	"github.com/jhoicas/Produccion-api/internal/domain/bom"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// QuoteUseCase casos de uso de cotizaciones proveedor-artículo. Cada vez que
// se registra una cotización con precio se asienta el histórico de precios en
// la misma transacción, como hace la carga de mapeos del módulo de compras.
type QuoteUseCase struct {
	txRunner     TxRunner
	quoteRepo    repository.SupplierQuoteRepository
	supplierRepo repository.SupplierRepository
	itemRepo     repository.ItemRepository
	priceRepo    repository.PriceHistoryRepository
}

// NewQuoteUseCase construye el caso de uso.
func NewQuoteUseCase(
	txRunner TxRunner,
	quoteRepo repository.SupplierQuoteRepository,
	supplierRepo repository.SupplierRepository,
	itemRepo repository.ItemRepository,
	priceRepo repository.PriceHistoryRepository,
) *QuoteUseCase {
	return &QuoteUseCase{
		txRunner:     txRunner,
		quoteRepo:    quoteRepo,
		supplierRepo: supplierRepo,
		itemRepo:     itemRepo,
		priceRepo:    priceRepo,
	}
}

// Create registra una cotización. Proveedor y artículo deben existir; el
// precio, cuando viene, debe ser positivo. Con precio presente, el histórico
// se asienta en la misma transacción. El precio histórico se guarda por gramo
// (la cotización viene por kilogramo).
func (uc *QuoteUseCase) Create(ctx context.Context, in dto.CreateQuoteRequest) (*dto.QuoteResponse, error) {
	if in.PricePerKg != nil && !in.PricePerKg.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.IsActive() {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	quote := &entity.SupplierQuote{
		ID:           uuid.New().String(),
		SupplierID:   in.SupplierID,
		ItemID:       in.ItemID,
		PricePerKg:   in.PricePerKg,
		MOQ:          in.MOQ,
		LeadTimeDays: in.LeadTimeDays,
		SafetyStock:  in.SafetyStock,
		CreatedAt:    now,
	}

	err = uc.txRunner.RunQuote(ctx, func(
		quoteRepo repository.SupplierQuoteRepository,
		priceRepo repository.PriceHistoryRepository,
	) error {
		if err := quoteRepo.Create(quote); err != nil {
			return err
		}
		if in.PricePerKg == nil {
			return nil
		}
		perGram := bom.PricePerGram(*in.PricePerKg)
		return priceRepo.Append(&entity.PriceHistoryEntry{
			ID:            uuid.New().String(),
			ItemID:        in.ItemID,
			Price:         perGram,
			EffectiveDate: now,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}
	return toQuoteResponse(quote), nil
}

// GetLatest devuelve la cotización vigente (la más reciente) para un par
// proveedor-artículo, o ErrNotFound si nunca se cotizó.
func (uc *QuoteUseCase) GetLatest(supplierID, itemID string) (*dto.QuoteResponse, error) {
	quote, err := uc.quoteRepo.GetLatest(supplierID, itemID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, domain.ErrNotFound
	}
	return toQuoteResponse(quote), nil
}

// ListByItem lista el historial de cotizaciones de un artículo.
func (uc *QuoteUseCase) ListByItem(itemID string, limit, offset int) ([]*dto.QuoteResponse, error) {
	quotes, err := uc.quoteRepo.ListByItem(itemID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, toQuoteResponse(q))
	}
	return out, nil
}

// ListPriceHistory lista el histórico de precios adoptados de un artículo.
func (uc *QuoteUseCase) ListPriceHistory(itemID string, limit, offset int) ([]*dto.PriceHistoryResponse, error) {
	entries, err := uc.priceRepo.ListByItem(itemID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PriceHistoryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, &dto.PriceHistoryResponse{
			ID:            e.ID,
			ItemID:        e.ItemID,
			Price:         e.Price,
			EffectiveDate: e.EffectiveDate,
		})
	}
	return out, nil
}

func toQuoteResponse(q *entity.SupplierQuote) *dto.QuoteResponse {
	return &dto.QuoteResponse{
		ID:           q.ID,
		SupplierID:   q.SupplierID,
		ItemID:       q.ItemID,
		PricePerKg:   q.PricePerKg,
		MOQ:          q.MOQ,
		LeadTimeDays: q.LeadTimeDays,
		SafetyStock:  q.SafetyStock,
		CreatedAt:    q.CreatedAt,
	}
}
