package production

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que descuentos de material,
// incremento de producto, asientos del libro y cambio de estado de la orden
// se apliquen todos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.StockLedgerRepository,
		orderRepo repository.ProductionOrderRepository,
	) error) error
}
