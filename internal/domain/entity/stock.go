package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock cantidad actual de un artículo. IsProduct separa el stock de producto
// terminado del de materiales, como en los inventarios físicos separados de
// planta. La cantidad puede quedar negativa: las discrepancias se investigan
// con el libro de movimientos, no se bloquean al escribir.
type Stock struct {
	ItemID    string
	IsProduct bool
	Quantity  decimal.Decimal
	UpdatedAt time.Time
}
