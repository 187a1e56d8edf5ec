package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmaviva/botica-api/internal/application/dto"
	"github.com/farmaviva/botica-api/internal/application/sales"
)

// SaleHandler maneja las peticiones HTTP del punto de venta (protegido).
type SaleHandler struct {
	create  *sales.CreateSaleUseCase
	ret     *sales.ReturnSaleUseCase
	query   *sales.QueryUseCase
	receipt *sales.ReceiptUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(create *sales.CreateSaleUseCase, ret *sales.ReturnSaleUseCase, query *sales.QueryUseCase, receipt *sales.ReceiptUseCase) *SaleHandler {
	return &SaleHandler{create: create, ret: ret, query: query, receipt: receipt}
}

// Create godoc
// @Summary      Registrar una venta (surte cada línea en orden FIFO)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "payment_method, items"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.create.Create(c.Context(), GetUserID(c), in)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(sale)
}

// Get godoc
// @Summary      Obtener una venta con su desglose por lote
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	sale, err := h.query.Get(c.Params("id"))
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(sale)
}

// List godoc
// @Summary      Listar ventas por rango de fechas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "fecha inicial (RFC3339)"
// @Param        to    query  string  false  "fecha final (RFC3339)"
// @Success      200  {object}  dto.SaleListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
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

// Return godoc
// @Summary      Registrar una devolución (repone a los lotes de origen)
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID de la venta"
// @Param        body  body  dto.ReturnSaleRequest  true  "items a devolver"
// @Success      200   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/returns [post]
func (h *SaleHandler) Return(c *fiber.Ctx) error {
	var in dto.ReturnSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	sale, err := h.ret.Return(c.Context(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(sale)
}

// TicketPDF godoc
// @Summary      Descargar el ticket de venta en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la venta"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/ticket.pdf [get]
func (h *SaleHandler) TicketPDF(c *fiber.Ctx) error {
	pdfBytes, err := h.receipt.GeneratePDF(c.Context(), c.Params("id"))
	if err != nil {
		return inventoryError(c, err)
	}
	c.Set("Content-Type", "application/pdf")
	c.Set("Content-Disposition", `inline; filename="ticket.pdf"`)
	return c.Send(pdfBytes)
}

// WhatsAppLink godoc
// @Summary      Enlace wa.me con el resumen del ticket
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID de la venta"
// @Param        phone  query  string  false  "teléfono destino; por defecto el de la venta"
// @Success      200  {object}  dto.WhatsAppLinkResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/whatsapp-link [get]
func (h *SaleHandler) WhatsAppLink(c *fiber.Ctx) error {
	resp, err := h.receipt.WhatsAppLink(c.Params("id"), c.Query("phone"))
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(resp)
}
