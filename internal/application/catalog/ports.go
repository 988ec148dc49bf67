package catalog

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de cotizaciones e histórico de precios atados a esa tx.
// Registrar una cotización con precio y su asiento histórico debe ser atómico.
type TxRunner interface {
	RunQuote(ctx context.Context, fn func(
		quoteRepo repository.SupplierQuoteRepository,
		priceRepo repository.PriceHistoryRepository,
	) error) error
}
