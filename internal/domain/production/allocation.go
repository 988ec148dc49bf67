// Package production implementa el cálculo de consumo por rendimiento
// (servicio de dominio): el uso real de cada material de una orden es su uso
// planificado escalado por el mismo ratio producido/planificado, sin
// sustituciones ni varianzas por material.
package production

import "github.com/shopspring/decimal"

// YieldRatio devuelve actual/planificado. Planificado 0 devuelve ratio 0 sin
// importar la cantidad real: todo el consumo escalado queda en 0 y el producto
// ingresado se registra igual en el libro para su revisión.
func YieldRatio(planned, actual decimal.Decimal) decimal.Decimal {
	if planned.IsZero() {
		return decimal.Zero
	}
	return actual.Div(planned)
}

// RealUsage devuelve el uso real de un material: planificado × ratio.
func RealUsage(plannedUsage, ratio decimal.Decimal) decimal.Decimal {
	return plannedUsage.Mul(ratio)
}
