package purchasing

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de stock, libro y órdenes de compra atados a esa tx. La
// recepción de una orden (entradas de stock + asientos + cambio de estado)
// debe aplicarse completa o no aplicarse.
type TxRunner interface {
	RunPurchase(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		ledgerRepo repository.StockLedgerRepository,
		purchaseRepo repository.PurchaseOrderRepository,
	) error) error
}
