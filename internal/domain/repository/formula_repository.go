package repository

import "github.com/jhoicas/Produccion-api/internal/domain/entity"

// FormulaRepository define el puerto para fórmulas porcentuales (encabezado + detalles).
type FormulaRepository interface {
	CreateHeader(header *entity.FormulaHeader) error
	GetHeader(id string) (*entity.FormulaHeader, error)
	ListHeadersByProduct(productID string) ([]*entity.FormulaHeader, error)
	UpdateHeader(header *entity.FormulaHeader) error
	DeleteHeader(id string) error

	AddDetail(detail *entity.FormulaDetail) error
	GetDetail(id string) (*entity.FormulaDetail, error)
	// GetDetailByComponent devuelve (nil, nil) si el componente no está en la fórmula.
	GetDetailByComponent(headerID, componentID string) (*entity.FormulaDetail, error)
	ListDetails(headerID string) ([]*entity.FormulaDetail, error)
	UpdateDetail(detail *entity.FormulaDetail) error
	DeleteDetail(id string) error
}

// RecipeRepository define el puerto para recetas de producción (BOM absoluto).
type RecipeRepository interface {
	Create(line *entity.RecipeLine) error
	ListByProduct(productID string) ([]*entity.RecipeLine, error)
	Delete(id string) error
}
