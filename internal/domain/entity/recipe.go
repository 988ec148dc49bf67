package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeLine línea de la receta de producción (BOM en forma absoluta):
// cantidad de material necesaria por cada unidad de producto terminado.
// Es la representación que consume la planificación de órdenes de producción,
// distinta de la fórmula porcentual usada para costeo.
type RecipeLine struct {
	ID         string
	ProductID  string
	MaterialID string
	QtyPerUnit decimal.Decimal // > 0
	CreatedAt  time.Time
}
