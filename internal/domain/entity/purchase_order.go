package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra.
const (
	PurchaseStatusOpen      = "Open"
	PurchaseStatusReceived  = "Received"
	PurchaseStatusCancelled = "Cancelled"
)

// PurchaseOrder orden de compra a un proveedor. Al recibirse, cada línea
// incrementa el stock del artículo con asiento de tipo "purchase".
type PurchaseOrder struct {
	ID         string
	SupplierID string
	OrderDate  time.Time
	Status     string
	Remarks    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PurchaseOrderLine línea de una orden de compra.
type PurchaseOrderLine struct {
	ID        string
	OrderID   string
	ItemID    string
	Quantity  decimal.Decimal // > 0
	UnitPrice decimal.Decimal
}
