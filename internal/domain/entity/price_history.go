package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceHistoryEntry registro histórico de precio de un artículo (append-only).
// Se crea cada vez que se adopta o cambia el precio de una cotización; nunca
// se actualiza ni se borra en operación normal. Price se guarda por gramo.
type PriceHistoryEntry struct {
	ID            string
	ItemID        string
	Price         decimal.Decimal // debe ser > 0
	EffectiveDate time.Time
	CreatedAt     time.Time
}
