package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateFormulaRequest alta de encabezado de fórmula (BOM porcentual).
type CreateFormulaRequest struct {
	ProductID     string          `json:"product_id"`
	Version       string          `json:"version"`
	TotalWeight   decimal.Decimal `json:"total_weight"` // gramos
	EffectiveDate time.Time       `json:"effective_date"`
	ExpireDate    *time.Time      `json:"expire_date"`
	Remarks       string          `json:"remarks"`
}

// AddFormulaDetailRequest alta de componente en una fórmula.
type AddFormulaDetailRequest struct {
	ComponentID string           `json:"component_id"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Unit        string           `json:"unit"` // "%" o unidad absoluta; vacío = "%"
	ScrapRate   *decimal.Decimal `json:"scrap_rate"`
	SupplierID  string           `json:"supplier_id"`
}

// UpdateFormulaDetailRequest actualización parcial de un componente.
type UpdateFormulaDetailRequest struct {
	Quantity   *decimal.Decimal `json:"quantity"`
	Unit       *string          `json:"unit"`
	ScrapRate  *decimal.Decimal `json:"scrap_rate"`
	SupplierID *string          `json:"supplier_id"`
}

// FormulaHeaderResponse encabezado en respuestas.
type FormulaHeaderResponse struct {
	ID            string          `json:"id"`
	ProductID     string          `json:"product_id"`
	Version       string          `json:"version"`
	TotalWeight   decimal.Decimal `json:"total_weight"`
	EffectiveDate time.Time       `json:"effective_date"`
	ExpireDate    *time.Time      `json:"expire_date"`
	Remarks       string          `json:"remarks"`
}

// FormulaDetailResponse componente en respuestas.
type FormulaDetailResponse struct {
	ID           string           `json:"id"`
	ComponentID  string           `json:"component_id"`
	Quantity     decimal.Decimal  `json:"quantity"`
	Unit         string           `json:"unit"`
	ScrapRate    *decimal.Decimal `json:"scrap_rate"`
	SupplierID   string           `json:"supplier_id"`
	PricePerGram *decimal.Decimal `json:"price_per_gram"`
}

// CostLineDTO línea del desglose de costo.
type CostLineDTO struct {
	ComponentID  string          `json:"component_id"`
	ActualQty    decimal.Decimal `json:"actual_qty"` // gramos
	PricePerGram decimal.Decimal `json:"price_per_gram"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	PriceMissing bool            `json:"price_missing"`
}

// FormulaCostResponse desglose de costo de una fórmula.
type FormulaCostResponse struct {
	HeaderID    string          `json:"header_id"`
	ProductID   string          `json:"product_id"`
	TotalWeight decimal.Decimal `json:"total_weight"`
	Lines       []CostLineDTO   `json:"lines"`
	Total       decimal.Decimal `json:"total"`
}

// RefreshPricesResponse resultado de adoptar los últimos precios de proveedor.
type RefreshPricesResponse struct {
	Updated int      `json:"updated"`
	Missing []string `json:"missing"` // componentes sin cotización vigente
}

// CreateRecipeLineRequest alta de línea de receta (BOM absoluto).
type CreateRecipeLineRequest struct {
	ProductID  string          `json:"product_id"`
	MaterialID string          `json:"material_id"`
	QtyPerUnit decimal.Decimal `json:"qty_per_unit"`
}

// RecipeLineResponse línea de receta en respuestas.
type RecipeLineResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	MaterialID string          `json:"material_id"`
	QtyPerUnit decimal.Decimal `json:"qty_per_unit"`
}
