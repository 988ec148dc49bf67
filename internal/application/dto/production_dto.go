package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductionOrderRequest alta de orden de producción.
type CreateProductionOrderRequest struct {
	ProductID  string          `json:"product_id"`
	PlannedQty decimal.Decimal `json:"planned_qty"`
	Remarks    string          `json:"remarks"`
}

// CompleteProductionRequest cierre de una orden con la cantidad realmente producida.
type CompleteProductionRequest struct {
	ActualQty decimal.Decimal `json:"actual_qty"`
}

// AdjustStockRequest ajuste manual de stock (delta con signo, sin tope).
type AdjustStockRequest struct {
	ItemID    string          `json:"item_id"`
	IsProduct bool            `json:"is_product"`
	Delta     decimal.Decimal `json:"delta"`
	Reason    string          `json:"reason"`
}

// ProductionOrderResponse orden en respuestas.
type ProductionOrderResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	PlannedQty decimal.Decimal `json:"planned_qty"`
	ActualQty  decimal.Decimal `json:"actual_qty"`
	Status     string          `json:"status"`
	StartDate  time.Time       `json:"start_date"`
	EndDate    *time.Time      `json:"end_date"`
	Remarks    string          `json:"remarks"`
}

// ProductionMaterialResponse línea de material de una orden.
type ProductionMaterialResponse struct {
	ID         string          `json:"id"`
	MaterialID string          `json:"material_id"`
	PlannedQty decimal.Decimal `json:"planned_qty"`
	ActualQty  decimal.Decimal `json:"actual_qty"`
}

// StockResponse cantidad actual de un artículo.
type StockResponse struct {
	ItemID    string          `json:"item_id"`
	IsProduct bool            `json:"is_product"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// LedgerEntryResponse asiento del libro de movimientos.
type LedgerEntryResponse struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	ItemID        string          `json:"item_id"`
	IsProduct     bool            `json:"is_product"`
	ChangeQty     decimal.Decimal `json:"change_qty"`
	OldQty        decimal.Decimal `json:"old_qty"`
	NewQty        decimal.Decimal `json:"new_qty"`
	ChangeType    string          `json:"change_type"`
	Reason        string          `json:"reason"`
	CreatedAt     time.Time       `json:"created_at"`
}
