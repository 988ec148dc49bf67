package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de producción. Completed y Cancelled son terminales;
// Cancelled solo es alcanzable desde Planned.
const (
	OrderStatusPlanned    = "Planned"
	OrderStatusInProgress = "InProgress"
	OrderStatusCompleted  = "Completed"
	OrderStatusCancelled  = "Cancelled"
)

// ProductionOrder orden de producción de un producto terminado. ActualQty
// permanece en 0 hasta el cierre; al completarse se descuentan materiales,
// se incrementa el stock del producto y el estado pasa a Completed una sola vez.
type ProductionOrder struct {
	ID         string
	ProductID  string
	PlannedQty decimal.Decimal
	ActualQty  decimal.Decimal
	Status     string
	StartDate  time.Time
	EndDate    *time.Time
	Remarks    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsOpen indica si la orden todavía admite planificación o cierre.
func (o *ProductionOrder) IsOpen() bool {
	return o.Status == OrderStatusPlanned || o.Status == OrderStatusInProgress
}

// ProductionMaterial línea de material de una orden: uso planificado (fijado al
// aplicar la receta) y uso real (0 hasta el cierre, luego planificado × ratio).
type ProductionMaterial struct {
	ID         string
	OrderID    string
	MaterialID string
	PlannedQty decimal.Decimal
	ActualQty  decimal.Decimal
}
