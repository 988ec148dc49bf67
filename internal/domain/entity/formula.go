package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnitPercent indica que la cantidad de un detalle se expresa como porcentaje
// del peso total del producto; cualquier otra unidad se interpreta como
// cantidad absoluta en gramos.
const UnitPercent = "%"

// FormulaHeader encabezado de una fórmula (BOM en forma porcentual): producto,
// versión, peso total del producto en gramos y vigencia.
type FormulaHeader struct {
	ID            string
	ProductID     string
	Version       string
	TotalWeight   decimal.Decimal // gramos; >= 0
	EffectiveDate time.Time
	ExpireDate    *time.Time // si existe, no puede preceder a EffectiveDate
	Remarks       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// FormulaDetail componente de una fórmula. Quantity es porcentaje del peso
// cuando Unit es "%", o gramos absolutos en caso contrario. A lo sumo un
// detalle por (fórmula, componente).
type FormulaDetail struct {
	ID           string
	HeaderID     string
	ComponentID  string
	Quantity     decimal.Decimal // > 0
	Unit         string
	ScrapRate    *decimal.Decimal // opcional, en [0, 1]
	SupplierID   string           // vacío = sin proveedor asignado
	PricePerGram *decimal.Decimal // nil = precio desconocido; la línea cuesta 0
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
