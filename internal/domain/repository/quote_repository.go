package repository

import "github.com/jhoicas/Produccion-api/internal/domain/entity"

// SupplierQuoteRepository define el puerto para cotizaciones proveedor-artículo.
// GetLatest devuelve (nil, nil) cuando no hay cotización: precio ausente es un
// valor de retorno válido, no un error.
type SupplierQuoteRepository interface {
	Create(quote *entity.SupplierQuote) error
	GetByID(id string) (*entity.SupplierQuote, error)
	// GetLatest devuelve la cotización más reciente para (proveedor, artículo).
	GetLatest(supplierID, itemID string) (*entity.SupplierQuote, error)
	ListByItem(itemID string, limit, offset int) ([]*entity.SupplierQuote, error)
	Update(quote *entity.SupplierQuote) error
	Delete(id string) error
}

// PriceHistoryRepository define el puerto del histórico de precios (append-only).
type PriceHistoryRepository interface {
	Append(entry *entity.PriceHistoryEntry) error
	ListByItem(itemID string, limit, offset int) ([]*entity.PriceHistoryEntry, error)
}
