package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Produccion-api/internal/application/bom"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/domain"
)

// FormulaHandler maneja fórmulas porcentuales, costeo y recetas (protegido).
type FormulaHandler struct {
	uc    *bom.UseCase
	pdfUC *bom.PDFUseCase
}

// NewFormulaHandler construye el handler.
func NewFormulaHandler(uc *bom.UseCase, pdfUC *bom.PDFUseCase) *FormulaHandler {
	return &FormulaHandler{uc: uc, pdfUC: pdfUC}
}

// CreateHeader godoc
// @Summary      Crear encabezado de fórmula
// @Tags         formulas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateFormulaRequest  true  "Datos de la fórmula"
// @Success      201   {object}  dto.FormulaHeaderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/formulas [post]
func (h *FormulaHandler) CreateHeader(c *fiber.Ctx) error {
	var in dto.CreateFormulaRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.CreateHeader(in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de la fórmula inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener fórmula con sus componentes
// @Tags         formulas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del encabezado"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/formulas/{id} [get]
func (h *FormulaHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	header, details, err := h.uc.GetFormula(id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fórmula no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"header": header, "details": details})
}

// ListByProduct godoc
// @Summary      Listar versiones de fórmula de un producto
// @Tags         formulas
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.FormulaHeaderResponse
// @Router       /api/items/{id}/formulas [get]
func (h *FormulaHandler) ListByProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ListHeadersByProduct(productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// AddDetail godoc
// @Summary      Agregar componente a una fórmula
// @Tags         formulas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del encabezado"
// @Param        body  body  dto.AddFormulaDetailRequest  true  "Componente"
// @Success      201   {object}  dto.FormulaDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/formulas/{id}/details [post]
func (h *FormulaHandler) AddDetail(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.AddFormulaDetailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddDetail(id, in)
	if err != nil {
		if err == domain.ErrDuplicateComponent {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_COMPONENT", Message: "el componente ya está en la fórmula"})
		}
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fórmula o componente no encontrado"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos del componente inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateDetail godoc
// @Summary      Actualizar componente de una fórmula
// @Tags         formulas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del detalle"
// @Param        body  body  dto.UpdateFormulaDetailRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.FormulaDetailResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/formulas/details/{id} [put]
func (h *FormulaHandler) UpdateDetail(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateFormulaDetailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.UpdateDetail(id, in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "detalle no encontrado"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "campos inválidos"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DeleteDetail godoc
// @Summary      Eliminar componente de una fórmula
// @Tags         formulas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del detalle"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/formulas/details/{id} [delete]
func (h *FormulaHandler) DeleteDetail(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.DeleteDetail(id); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "detalle no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Cost godoc
// @Summary      Costeo de una fórmula
// @Description  Desglose por componente y total con los precios ya adoptados.
// @Tags         formulas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del encabezado"
// @Success      200  {object}  dto.FormulaCostResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/formulas/{id}/cost [get]
func (h *FormulaHandler) Cost(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.Cost(id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fórmula no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// RefreshPrices godoc
// @Summary      Adoptar los últimos precios cotizados en la fórmula
// @Description  Convierte $/kg a $/g, actualiza cada componente con proveedor y
// @Description  asienta el histórico de precios en la misma transacción.
// @Tags         formulas
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del encabezado"
// @Success      200  {object}  dto.RefreshPricesResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/formulas/{id}/refresh-prices [post]
func (h *FormulaHandler) RefreshPrices(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.RefreshPrices(c.Context(), id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fórmula no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DownloadCostSheetPDF godoc
// @Summary      Descargar la hoja de costos en PDF
// @Tags         formulas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del encabezado"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/formulas/{id}/pdf [get]
func (h *FormulaHandler) DownloadCostSheetPDF(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	pdfBytes, filename, err := h.pdfUC.DownloadCostSheetPDF(c.Context(), id)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "fórmula no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}

// AddRecipeLine godoc
// @Summary      Agregar línea a la receta de producción
// @Tags         recipes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRecipeLineRequest  true  "Línea de receta"
// @Success      201   {object}  dto.RecipeLineResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/recipes [post]
func (h *FormulaHandler) AddRecipeLine(c *fiber.Ctx) error {
	var in dto.CreateRecipeLineRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.AddRecipeLine(in)
	if err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o material no encontrado"})
		}
		if err == domain.ErrInvalidInput {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos de la línea inválidos"})
		}
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "el material ya está en la receta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListRecipe godoc
// @Summary      Listar la receta de un producto
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {array}  dto.RecipeLineResponse
// @Router       /api/items/{id}/recipe [get]
func (h *FormulaHandler) ListRecipe(c *fiber.Ctx) error {
	productID := c.Params("id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.ListRecipe(productID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// DeleteRecipeLine godoc
// @Summary      Eliminar línea de receta
// @Tags         recipes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la línea"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/recipes/{id} [delete]
func (h *FormulaHandler) DeleteRecipeLine(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.DeleteRecipeLine(id); err != nil {
		if err == domain.ErrNotFound {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "línea no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
