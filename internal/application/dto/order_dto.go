package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderLineRequest línea de una orden de compra o venta.
type OrderLineRequest struct {
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreatePurchaseOrderRequest alta de orden de compra con sus líneas.
type CreatePurchaseOrderRequest struct {
	SupplierID string             `json:"supplier_id"`
	OrderDate  time.Time          `json:"order_date"`
	Remarks    string             `json:"remarks"`
	Lines      []OrderLineRequest `json:"lines"`
}

// CreateSalesOrderRequest alta de orden de venta con sus líneas.
type CreateSalesOrderRequest struct {
	CustomerID string             `json:"customer_id"`
	OrderDate  time.Time          `json:"order_date"`
	Remarks    string             `json:"remarks"`
	Lines      []OrderLineRequest `json:"lines"`
}

// OrderLineResponse línea en respuestas.
type OrderLineResponse struct {
	ID        string          `json:"id"`
	ItemID    string          `json:"item_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// PurchaseOrderResponse orden de compra en respuestas.
type PurchaseOrderResponse struct {
	ID         string              `json:"id"`
	SupplierID string              `json:"supplier_id"`
	OrderDate  time.Time           `json:"order_date"`
	Status     string              `json:"status"`
	Remarks    string              `json:"remarks"`
	Lines      []OrderLineResponse `json:"lines,omitempty"`
}

// SalesOrderResponse orden de venta en respuestas.
type SalesOrderResponse struct {
	ID         string              `json:"id"`
	CustomerID string              `json:"customer_id"`
	OrderDate  time.Time           `json:"order_date"`
	Status     string              `json:"status"`
	Remarks    string              `json:"remarks"`
	Lines      []OrderLineResponse `json:"lines,omitempty"`
}
