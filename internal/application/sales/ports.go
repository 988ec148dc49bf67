package sales

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de stock, libro y órdenes de venta atados a esa tx.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.StockLedgerRepository,
		salesRepo repository.SalesOrderRepository,
	) error) error
}
