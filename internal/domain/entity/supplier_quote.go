package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplierQuote representa la cotización de un proveedor para un artículo:
// precio por kilogramo, cantidad mínima de pedido, tiempo de entrega y nivel
// de stock de seguridad. Puede haber varias cotizaciones en el tiempo para el
// mismo par (proveedor, artículo); la vigente es la más reciente.
type SupplierQuote struct {
	ID           string
	SupplierID   string
	ItemID       string
	PricePerKg   *decimal.Decimal // nil = sin precio cotizado; cuando existe debe ser > 0
	MOQ          *decimal.Decimal // cantidad mínima de pedido
	LeadTimeDays *int
	SafetyStock  decimal.Decimal
	CreatedAt    time.Time
}
