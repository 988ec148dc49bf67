package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Produccion-api/internal/application/catalog"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
)

// QuoteHandler maneja cotizaciones de proveedor e histórico de precios (protegido).
type QuoteHandler struct {
	uc *catalog.QuoteUseCase
}

// NewQuoteHandler construye el handler.
func NewQuoteHandler(uc *catalog.QuoteUseCase) *QuoteHandler {
	return &QuoteHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar cotización proveedor-artículo
// @Description  Con precio presente asienta el histórico en la misma transacción.
// @Tags         quotes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateQuoteRequest  true  "Datos de la cotización"
// @Success      201   {object}  dto.QuoteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/quotes [post]
func (h *QuoteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateQuoteRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.SupplierID == "" || in.ItemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "supplier_id e item_id son requeridos"})
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "proveedor o artículo no encontrado"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "el precio debe ser mayor que cero"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetLatest godoc
// @Summary      Última cotización de un proveedor para un artículo
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        supplier_id  query  string  true  "ID del proveedor"
// @Param        item_id      query  string  true  "ID del artículo"
// @Success      200  {object}  dto.QuoteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/quotes/latest [get]
func (h *QuoteHandler) GetLatest(c *fiber.Ctx) error {
	supplierID := c.Query("supplier_id")
	itemID := c.Query("item_id")
	if supplierID == "" || itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "supplier_id e item_id son requeridos"})
	}
	out, err := h.uc.GetLatest(supplierID, itemID)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "no hay cotización para ese proveedor y artículo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListByItem godoc
// @Summary      Listar cotizaciones de un artículo
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del artículo"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.QuoteResponse
// @Router       /api/items/{id}/quotes [get]
func (h *QuoteHandler) ListByItem(c *fiber.Ctx) error {
	itemID := c.Params("id")
	if itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListByItem(itemID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListPriceHistory godoc
// @Summary      Histórico de precios por gramo de un artículo
// @Tags         quotes
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del artículo"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.PriceHistoryResponse
// @Router       /api/items/{id}/price-history [get]
func (h *QuoteHandler) ListPriceHistory(c *fiber.Ctx) error {
	itemID := c.Params("id")
	if itemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListPriceHistory(itemID, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
