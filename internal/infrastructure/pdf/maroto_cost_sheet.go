// Package pdf implementa la hoja de costos imprimible de una fórmula.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Producto + Versión  │  Peso total + Vigencia       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Componente | Cant | Unidad | Gramos | $/g | Subtotal │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL: costo por unidad de producto                         │
//	│  NOTA: componentes sin precio cotizado                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appbom "github.com/jhoicas/Produccion-api/internal/application/bom"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 60, Blue: 0}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoCostSheetGenerator implementa bom.CostSheetGenerator usando Maroto v2.
type MarotoCostSheetGenerator struct{}

// NewMarotoCostSheetGenerator construye el generador.
func NewMarotoCostSheetGenerator() *MarotoCostSheetGenerator { return &MarotoCostSheetGenerator{} }

// GenerateCostSheet genera el PDF de la hoja de costos y devuelve sus bytes.
func (g *MarotoCostSheetGenerator) GenerateCostSheet(
	_ context.Context,
	header *entity.FormulaHeader,
	product *entity.Item,
	lines []appbom.CostLineForPDF,
	total string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de Costos de Fórmula", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(header, product))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(lines) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(total))

	if missing := missingNames(lines); len(missing) > 0 {
		for _, r := range missingRows(missing) {
			m.AddRows(r)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: producto + versión (izq) y peso total + vigencia (der).
func headerRow(header *entity.FormulaHeader, product *entity.Item) core.Row {
	vigencia := "Vigente desde: " + header.EffectiveDate.Format("02/01/2006")
	if header.ExpireDate != nil {
		vigencia += " hasta " + header.ExpireDate.Format("02/01/2006")
	}

	return row.New(18).Add(
		col.New(7).Add(
			text.New(product.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Fórmula versión "+header.Version, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("HOJA DE COSTOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Peso total: "+header.TotalWeight.StringFixed(0)+" g", props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New(vigencia, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de componentes.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Componente", 4, align.Left),
		h("Cant.", 1, align.Right),
		h("Unidad", 1, align.Center),
		h("Gramos", 2, align.Right),
		h("$/g", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

// tableDetailRows: una fila por componente. Los componentes sin precio se
// marcan en color de alerta con subtotal "—".
func tableDetailRows(lines []appbom.CostLineForPDF) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		priceText := l.PricePerGram.StringFixed(4)
		subtotalText := l.Subtotal.StringFixed(4)
		rowColor := (*props.Color)(nil)
		if l.PriceMissing {
			priceText = "—"
			subtotalText = "—"
			rowColor = colorAlert
		}
		cell := func(s string, size int, a align.Type) core.Col {
			p := props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}
			if rowColor != nil {
				p.Color = rowColor
			}
			return col.New(size).Add(text.New(s, p))
		}
		result = append(result, row.New(7).Add(
			cell(l.ComponentName, 4, align.Left),
			cell(l.Quantity.String(), 1, align.Right),
			cell(l.Unit, 1, align.Center),
			cell(l.ActualQty.StringFixed(2), 2, align.Right),
			cell(priceText, 2, align.Right),
			cell(subtotalText, 2, align.Right),
		))
	}
	return result
}

// totalRow: costo total por unidad de producto, alineado a la derecha.
func totalRow(total string) core.Row {
	return row.New(10).Add(
		col.New(6),
		col.New(4).Add(text.New("COSTO TOTAL POR UNIDAD:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New(total, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// missingRows: nota con los componentes sin precio cotizado.
func missingRows(names []string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("COMPONENTES SIN PRECIO COTIZADO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorAlert, Top: 2,
			}),
		)),
	}
	for _, name := range names {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New("• "+name+" — costea 0 hasta adoptar una cotización", props.Text{
				Size: 7, Color: colorGray, Top: 0.5, Left: 2,
			}),
		)))
	}
	return rows
}

func missingNames(lines []appbom.CostLineForPDF) []string {
	var names []string
	for _, l := range lines {
		if l.PriceMissing {
			names = append(names, l.ComponentName)
		}
	}
	return names
}
