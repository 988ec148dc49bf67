package bom_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Produccion-api/internal/domain/bom"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestComputeFormulaCost_PorcentualBasico(t *testing.T) {
	// Peso 1000 g, 60% a $0.05/g y 40% a $0.08/g => 600*0.05 + 400*0.08 = 62.00
	header := &entity.FormulaHeader{TotalWeight: dec("1000")}
	details := []*entity.FormulaDetail{
		{ComponentID: "carne", Quantity: dec("60"), Unit: entity.UnitPercent, PricePerGram: decPtr("0.05")},
		{ComponentID: "arroz", Quantity: dec("40"), Unit: entity.UnitPercent, PricePerGram: decPtr("0.08")},
	}

	lines, total := bom.ComputeFormulaCost(header, details)

	require.Len(t, lines, 2)
	assert.True(t, lines[0].ActualQty.Equal(dec("600")), "actual = %s", lines[0].ActualQty)
	assert.True(t, lines[0].Subtotal.Equal(dec("30")))
	assert.True(t, lines[1].ActualQty.Equal(dec("400")))
	assert.True(t, lines[1].Subtotal.Equal(dec("32")))
	assert.True(t, total.Equal(dec("62")), "total = %s", total)
}

func TestComputeFormulaCost_PesoCero(t *testing.T) {
	// Peso 0 no es error: todas las líneas porcentuales valen 0.
	header := &entity.FormulaHeader{TotalWeight: decimal.Zero}
	details := []*entity.FormulaDetail{
		{ComponentID: "a", Quantity: dec("60"), Unit: entity.UnitPercent, PricePerGram: decPtr("0.05")},
		{ComponentID: "b", Quantity: dec("40"), Unit: entity.UnitPercent, PricePerGram: decPtr("0.08")},
	}

	lines, total := bom.ComputeFormulaCost(header, details)

	require.Len(t, lines, 2)
	for _, l := range lines {
		assert.True(t, l.ActualQty.IsZero())
		assert.True(t, l.Subtotal.IsZero())
	}
	assert.True(t, total.IsZero())
}

func TestComputeFormulaCost_UnidadAbsoluta(t *testing.T) {
	// Unidad distinta de "%": la cantidad guardada se usa directamente.
	header := &entity.FormulaHeader{TotalWeight: dec("500")}
	details := []*entity.FormulaDetail{
		{ComponentID: "saborizante", Quantity: dec("12.5"), Unit: "g", PricePerGram: decPtr("0.2")},
	}

	lines, total := bom.ComputeFormulaCost(header, details)

	require.Len(t, lines, 1)
	assert.True(t, lines[0].ActualQty.Equal(dec("12.5")))
	assert.True(t, total.Equal(dec("2.5")))
}

func TestComputeFormulaCost_PrecioAusente(t *testing.T) {
	// Sin precio asignado: la línea costea 0 y se marca, el cálculo no falla.
	header := &entity.FormulaHeader{TotalWeight: dec("1000")}
	details := []*entity.FormulaDetail{
		{ComponentID: "carne", Quantity: dec("60"), Unit: entity.UnitPercent, PricePerGram: decPtr("0.05")},
		{ComponentID: "vitamina", Quantity: dec("40"), Unit: entity.UnitPercent},
	}

	lines, total := bom.ComputeFormulaCost(header, details)

	require.Len(t, lines, 2)
	assert.False(t, lines[0].PriceMissing)
	assert.True(t, lines[1].PriceMissing)
	assert.True(t, lines[1].Subtotal.IsZero())
	assert.True(t, total.Equal(dec("30")))
}

func TestPricePerGram(t *testing.T) {
	// Precio por kg dividido exactamente entre 1000.
	assert.True(t, bom.PricePerGram(dec("50")).Equal(dec("0.05")))
	assert.True(t, bom.PricePerGram(dec("1234")).Equal(dec("1.234")))
	assert.True(t, bom.PricePerGram(decimal.Zero).IsZero())
}
