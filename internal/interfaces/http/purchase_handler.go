package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmaviva/botica-api/internal/application/dto"
	"github.com/farmaviva/botica-api/internal/application/purchases"
)

// PurchaseHandler maneja las peticiones HTTP de ingresos de mercadería (protegido).
type PurchaseHandler struct {
	create *purchases.CreatePurchaseUseCase
	query  *purchases.QueryUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(create *purchases.CreatePurchaseUseCase, query *purchases.QueryUseCase) *PurchaseHandler {
	return &PurchaseHandler{create: create, query: query}
}

// Create godoc
// @Summary      Registrar un ingreso de mercadería (cada línea crea un lote)
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "supplier_id, items"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	purchase, err := h.create.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(purchase)
}

// Get godoc
// @Summary      Obtener una compra con sus líneas
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id} [get]
func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	purchase, err := h.query.Get(c.Params("id"))
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(purchase)
}

// List godoc
// @Summary      Listar compras por rango de fechas
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "fecha inicial (RFC3339)"
// @Param        to    query  string  false  "fecha final (RFC3339)"
// @Success      200  {object}  dto.PurchaseListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/purchases [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas inválidas (RFC3339)"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.query.List(from, to, page)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(out)
}
