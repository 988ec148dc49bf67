package production_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Produccion-api/internal/domain/production"
)

func TestYieldRatio(t *testing.T) {
	cien := decimal.NewFromInt(100)
	noventa := decimal.NewFromInt(90)

	ratio := production.YieldRatio(cien, noventa)
	assert.True(t, ratio.Equal(decimal.NewFromFloat(0.9)), "ratio = %s", ratio)

	// Planificado 0 => ratio 0 sin importar la cantidad real (sin división por cero).
	assert.True(t, production.YieldRatio(decimal.Zero, noventa).IsZero())
	assert.True(t, production.YieldRatio(decimal.Zero, decimal.Zero).IsZero())
}

func TestRealUsage(t *testing.T) {
	ratio := decimal.NewFromFloat(0.9)

	// Planificado 20 y 5 con ratio 0.9 => 18 y 4.5.
	assert.True(t, production.RealUsage(decimal.NewFromInt(20), ratio).Equal(decimal.NewFromInt(18)))
	assert.True(t, production.RealUsage(decimal.NewFromInt(5), ratio).Equal(decimal.NewFromFloat(4.5)))

	// Ratio 0 anula todo el consumo.
	assert.True(t, production.RealUsage(decimal.NewFromInt(20), decimal.Zero).IsZero())
}
