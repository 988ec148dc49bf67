package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/production"
	"github.com/jhoicas/Produccion-api/internal/domain"
)

// StockHandler maneja consultas de stock, ajustes manuales y el libro de
// movimientos (protegido).
type StockHandler struct {
	uc *production.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *production.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// Get godoc
// @Summary      Consultar stock de un artículo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id          path   string  true   "ID del artículo"
// @Param        is_product  query  bool    false  "true para producto terminado"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/stock/{id} [get]
func (h *StockHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	isProduct := c.QueryBool("is_product", false)
	out, err := h.uc.GetStock(id, isProduct)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Description  Aplica un delta con signo y asienta el movimiento como ajuste
// @Description  manual en el libro, dentro de una transacción.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "Artículo, delta y motivo"
// @Success      200   {object}  dto.StockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.ItemID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "item_id es requerido"})
	}
	if err := h.uc.AdjustStock(c.Context(), in); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "artículo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out, err := h.uc.GetStock(in.ItemID, in.IsProduct)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// Ledger godoc
// @Summary      Libro de movimientos de un artículo
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id          path   string  true   "ID del artículo"
// @Param        is_product  query  bool    false  "true para producto terminado"
// @Param        limit       query  int     false  "Límite"   default(20)
// @Param        offset      query  int     false  "Offset"   default(0)
// @Success      200  {array}  dto.LedgerEntryResponse
// @Router       /api/stock/{id}/ledger [get]
func (h *StockHandler) Ledger(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	isProduct := c.QueryBool("is_product", false)
	limit, offset := pageParams(c)
	out, err := h.uc.ListLedger(id, isProduct, limit, offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
