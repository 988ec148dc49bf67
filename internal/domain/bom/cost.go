// Package bom implementa el motor de costeo de fórmulas (servicio de dominio).
// Toda la aritmética de costos está denominada en gramos: los precios de
// proveedor se cotizan por kilogramo y se convierten una sola vez con
// PricePerGram antes de entrar al cálculo.
package bom

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

var (
	gramsPerKg = decimal.NewFromInt(1000)
	hundred    = decimal.NewFromInt(100)
)

// PricePerGram convierte un precio por kilogramo a precio por gramo.
// Es la única regla de conversión de unidades del motor de costos.
func PricePerGram(perKg decimal.Decimal) decimal.Decimal {
	return perKg.Div(gramsPerKg)
}

// CostLine desglose de costo de un componente de la fórmula.
type CostLine struct {
	ComponentID  string
	Quantity     decimal.Decimal // porcentaje o gramos según Unit
	Unit         string
	ActualQty    decimal.Decimal // gramos por unidad de producto
	PricePerGram decimal.Decimal
	Subtotal     decimal.Decimal
	PriceMissing bool // sin precio asignado: la línea costea 0 y se marca para revisión
}

// ComputeFormulaCost calcula la cantidad real y el costo de cada componente y
// el costo total del producto. Determinístico para entradas idénticas.
//
// Para detalles con unidad "%": ActualQty = TotalWeight × (Quantity / 100).
// Para cualquier otra unidad la cantidad guardada se usa directamente.
// Peso total 0 no es error: todas las líneas porcentuales valen 0.
// Un detalle sin precio no falla el cálculo; costea 0 y se marca PriceMissing.
func ComputeFormulaCost(header *entity.FormulaHeader, details []*entity.FormulaDetail) ([]CostLine, decimal.Decimal) {
	lines := make([]CostLine, 0, len(details))
	total := decimal.Zero

	for _, d := range details {
		actualQty := d.Quantity
		if d.Unit == entity.UnitPercent {
			actualQty = header.TotalWeight.Mul(d.Quantity).Div(hundred)
		}

		line := CostLine{
			ComponentID: d.ComponentID,
			Quantity:    d.Quantity,
			Unit:        d.Unit,
			ActualQty:   actualQty,
		}
		if d.PricePerGram == nil {
			line.PriceMissing = true
			line.Subtotal = decimal.Zero
		} else {
			line.PricePerGram = *d.PricePerGram
			line.Subtotal = actualQty.Mul(*d.PricePerGram)
		}
		total = total.Add(line.Subtotal)
		lines = append(lines, line)
	}
	return lines, total
}
