package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest alta de artículo en el catálogo.
type CreateItemRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Unit     string `json:"unit"`
}

// UpdateItemRequest actualización parcial de artículo: solo los campos
// presentes se aplican, cada uno validado antes de persistir.
type UpdateItemRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Unit     *string `json:"unit"`
}

// ItemResponse artículo en respuestas.
type ItemResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Category  string    `json:"category"`
	Unit      string    `json:"unit"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateSupplierRequest alta de proveedor.
type CreateSupplierRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Website       string `json:"website"`
	TaxID         string `json:"tax_id"`
}

// SupplierResponse proveedor en respuestas.
type SupplierResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	Website       string `json:"website"`
	TaxID         string `json:"tax_id"`
}

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	Address2      string `json:"address2"`
	TaxID         string `json:"tax_id"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	Address2      string `json:"address2"`
	TaxID         string `json:"tax_id"`
	ContactPerson string `json:"contact_person"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
}

// CreateQuoteRequest alta/actualización de cotización proveedor-artículo.
// PricePerKg es opcional; cuando se envía debe ser > 0 y genera un registro
// en el histórico de precios dentro de la misma transacción.
type CreateQuoteRequest struct {
	SupplierID   string           `json:"supplier_id"`
	ItemID       string           `json:"item_id"`
	PricePerKg   *decimal.Decimal `json:"price_per_kg"`
	MOQ          *decimal.Decimal `json:"moq"`
	LeadTimeDays *int             `json:"lead_time_days"`
	SafetyStock  decimal.Decimal  `json:"safety_stock"`
}

// QuoteResponse cotización en respuestas.
type QuoteResponse struct {
	ID           string           `json:"id"`
	SupplierID   string           `json:"supplier_id"`
	ItemID       string           `json:"item_id"`
	PricePerKg   *decimal.Decimal `json:"price_per_kg"`
	MOQ          *decimal.Decimal `json:"moq"`
	LeadTimeDays *int             `json:"lead_time_days"`
	SafetyStock  decimal.Decimal  `json:"safety_stock"`
	CreatedAt    time.Time        `json:"created_at"`
}

// PriceHistoryResponse registro del histórico de precios.
type PriceHistoryResponse struct {
	ID            string          `json:"id"`
	ItemID        string          `json:"item_id"`
	Price         decimal.Decimal `json:"price"`
	EffectiveDate time.Time       `json:"effective_date"`
}
