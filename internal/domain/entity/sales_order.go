package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de venta.
const (
	SalesStatusOpen      = "Open"
	SalesStatusShipped   = "Shipped"
	SalesStatusCancelled = "Cancelled"
)

// SalesOrder orden de venta a un cliente. Al despacharse, cada línea
// descuenta stock de producto terminado con asiento de tipo "sale".
type SalesOrder struct {
	ID         string
	CustomerID string
	OrderDate  time.Time
	Status     string
	Remarks    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SalesOrderLine línea de una orden de venta.
type SalesOrderLine struct {
	ID        string
	OrderID   string
	ItemID    string
	Quantity  decimal.Decimal // > 0
	UnitPrice decimal.Decimal
}
