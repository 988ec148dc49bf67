package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Causas de cambio de stock registradas en el libro.
const (
	ChangeTypeManualAdjust = "manual_adjust"
	ChangeTypePurchase     = "purchase"
	ChangeTypeSale         = "sale"
	ChangeTypeProduction   = "production"
)

// StockLedgerEntry asiento del libro de movimientos de stock (append-only).
// Invariante: NewQty = OldQty + ChangeQty siempre, aun cuando NewQty quede
// negativa. TransactionID agrupa los asientos emitidos por una misma operación.
// Ningún componente modifica asientos ajenos; nunca se actualizan ni borran.
type StockLedgerEntry struct {
	ID            string
	TransactionID string
	ItemID        string
	IsProduct     bool
	ChangeQty     decimal.Decimal // con signo
	OldQty        decimal.Decimal
	NewQty        decimal.Decimal
	ChangeType    string
	Reason        string
	CreatedAt     time.Time
}
