package bom

import (
	"context"

	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de fórmulas e histórico de precios atados a esa tx. Adoptar
// precios en la fórmula y asentar el histórico debe ser atómico.
type TxRunner interface {
	RunFormula(ctx context.Context, fn func(
		formulaRepo repository.FormulaRepository,
		priceRepo repository.PriceHistoryRepository,
	) error) error
}
