package repository

import "github.com/jhoicas/Produccion-api/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar cantidades de stock.
// Un artículo sin fila de stock se trata como cantidad 0, no como error.
type StockRepository interface {
	Get(itemID string, isProduct bool) (*entity.Stock, error)
	Upsert(stock *entity.Stock) error
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE) dentro de una tx.
	GetForUpdate(itemID string, isProduct bool) (*entity.Stock, error)
}

// StockLedgerRepository define el puerto del libro de movimientos (append-only).
// Los asientos nunca se actualizan ni se borran desde el núcleo.
type StockLedgerRepository interface {
	Append(entry *entity.StockLedgerEntry) error
	ListByItem(itemID string, isProduct bool, limit, offset int) ([]*entity.StockLedgerEntry, error)
	ListByTransaction(transactionID string) ([]*entity.StockLedgerEntry, error)
}
