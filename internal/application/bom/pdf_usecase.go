package bom

import (
	"context"
	"fmt"

	"github.com/jhoicas/Produccion-api/internal/domain"
	domainbom "github.com/jhoicas/Produccion-api/internal/domain/bom"
	"github.com/jhoicas/Produccion-api/internal/domain/entity"
	"github.com/jhoicas/Produccion-api/internal/domain/repository"
)

// CostLineForPDF línea del desglose de costo enriquecida con el nombre del
// componente para la hoja imprimible.
type CostLineForPDF struct {
	domainbom.CostLine
	ComponentName string
}

// CostSheetGenerator genera la hoja de costos imprimible de una fórmula.
type CostSheetGenerator interface {
	GenerateCostSheet(ctx context.Context, header *entity.FormulaHeader, product *entity.Item, lines []CostLineForPDF, total string) ([]byte, error)
}

// PDFUseCase genera la hoja de costos (PDF) de una fórmula.
type PDFUseCase struct {
	formulaRepo repository.FormulaRepository
	itemRepo    repository.ItemRepository
	generator   CostSheetGenerator
}

// NewPDFUseCase construye el caso de uso inyectando sus dependencias.
func NewPDFUseCase(
	formulaRepo repository.FormulaRepository,
	itemRepo repository.ItemRepository,
	generator CostSheetGenerator,
) *PDFUseCase {
	return &PDFUseCase{formulaRepo: formulaRepo, itemRepo: itemRepo, generator: generator}
}

// DownloadCostSheetPDF calcula el costeo de la fórmula, enriquece cada línea
// con el nombre del componente y genera la hoja de costos.
func (uc *PDFUseCase) DownloadCostSheetPDF(ctx context.Context, headerID string) (pdfBytes []byte, filename string, err error) {
	header, err := uc.formulaRepo.GetHeader(headerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener fórmula: %w", err)
	}
	if header == nil {
		return nil, "", domain.ErrNotFound
	}
	details, err := uc.formulaRepo.ListDetails(headerID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener detalles: %w", err)
	}
	product, err := uc.itemRepo.GetByID(header.ProductID)
	if err != nil || product == nil {
		return nil, "", fmt.Errorf("pdf: obtener producto: %w", err)
	}

	costLines, total := domainbom.ComputeFormulaCost(header, details)

	enriched := make([]CostLineForPDF, 0, len(costLines))
	for _, l := range costLines {
		name := "Componente " + l.ComponentID // fallback
		if item, iErr := uc.itemRepo.GetByID(l.ComponentID); iErr == nil && item != nil {
			name = item.Name
		}
		enriched = append(enriched, CostLineForPDF{CostLine: l, ComponentName: name})
	}

	pdfBytes, err = uc.generator.GenerateCostSheet(ctx, header, product, enriched, total.StringFixed(4))
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	filename = fmt.Sprintf("costos_%s_%s.pdf", product.Name, header.Version)
	return pdfBytes, filename, nil
}
