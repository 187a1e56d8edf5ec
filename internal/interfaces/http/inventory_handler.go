package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/farmaviva/botica-api/internal/application/dto"
	appinventory "github.com/farmaviva/botica-api/internal/application/inventory"
	"github.com/farmaviva/botica-api/internal/domain"
)

// InventoryHandler maneja las peticiones HTTP del núcleo de inventario por
// lotes (protegido).
type InventoryHandler struct {
	receive   *appinventory.ReceiveLotUseCase
	allocate  *appinventory.AllocateUseCase
	adjust    *appinventory.AdjustLotUseCase
	sweep     *appinventory.SweepExpiredUseCase
	recompute *appinventory.RecomputeUseCase
	ledger    *appinventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	receive *appinventory.ReceiveLotUseCase,
	allocate *appinventory.AllocateUseCase,
	adjust *appinventory.AdjustLotUseCase,
	sweep *appinventory.SweepExpiredUseCase,
	recompute *appinventory.RecomputeUseCase,
	ledger *appinventory.LedgerUseCase,
) *InventoryHandler {
	return &InventoryHandler{
		receive:   receive,
		allocate:  allocate,
		adjust:    adjust,
		sweep:     sweep,
		recompute: recompute,
		ledger:    ledger,
	}
}

// ReceiveLot godoc
// @Summary      Ingresar un lote directo (sin documento de compra)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ReceiveLotRequest  true  "product_id, quantity, unit_cost, unit_price, expires_at"
// @Success      201   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/lots [post]
func (h *InventoryHandler) ReceiveLot(c *fiber.Ctx) error {
	var in dto.ReceiveLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lot, err := h.receive.Receive(c.Context(), GetUserID(c), in)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(appinventory.ToLotResponse(lot))
}

// ListLots godoc
// @Summary      Listar lotes de un producto en orden FIFO-por-vencimiento
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true   "ID del producto"
// @Param        status      query  string  false  "activo | agotado | vencido | anulado"
// @Success      200  {array}   dto.LotResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/lots [get]
func (h *InventoryHandler) ListLots(c *fiber.Ctx) error {
	lots, err := h.ledger.ListLots(c.Query("product_id"), c.Query("status"))
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(lots)
}

// GetLot godoc
// @Summary      Obtener un lote por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/lots/{id} [get]
func (h *InventoryHandler) GetLot(c *fiber.Ctx) error {
	lot, err := h.ledger.GetLot(c.Params("id"))
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(lot)
}

// AdjustLot godoc
// @Summary      Ajustar la cantidad de un lote (conteo físico)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del lote"
// @Param        body  body  dto.AdjustLotRequest  true  "new_quantity, reason"
// @Success      200   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/lots/{id}/adjust [post]
func (h *InventoryHandler) AdjustLot(c *fiber.Ctx) error {
	var in dto.AdjustLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lot, err := h.adjust.Adjust(c.Context(), c.Params("id"), in.NewQuantity, in.Reason, GetUserID(c))
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(appinventory.ToLotResponse(lot))
}

// VoidLot godoc
// @Summary      Anular un lote (retiro sanitario, pérdida)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string              true  "ID del lote"
// @Param        body  body  dto.VoidLotRequest  true  "reason"
// @Success      200   {object}  dto.LotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/lots/{id}/void [post]
func (h *InventoryHandler) VoidLot(c *fiber.Ctx) error {
	var in dto.VoidLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	lot, err := h.adjust.Void(c.Context(), c.Params("id"), in.Reason, GetUserID(c))
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(appinventory.ToLotResponse(lot))
}

// SimulateAllocation godoc
// @Summary      Previsualizar el plan de asignación FIFO sin comprometer stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true  "ID del producto"
// @Param        quantity    query  int     true  "unidades solicitadas"
// @Success      200  {object}  dto.SimulateAllocationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/inventory/allocations/simulate [get]
func (h *InventoryHandler) SimulateAllocation(c *fiber.Ctx) error {
	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity debe ser un entero"})
	}
	resp, err := h.allocate.Simulate(c.Context(), c.Query("product_id"), quantity)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(resp)
}

// ListMovements godoc
// @Summary      Listar movimientos de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true   "ID del producto"
// @Param        from        query  string  false  "fecha inicial (RFC3339)"
// @Param        to          query  string  false  "fecha final (RFC3339)"
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	from, to, err := parseDateRange(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "fechas inválidas (RFC3339)"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	movs, err := h.ledger.ListMovements(c.Query("product_id"), from, to, page.Limit, page.Offset)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(movs)
}

// SweepExpired godoc
// @Summary      Barrido de vencimientos: marca lotes vencidos y registra bajas
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SweepResponse
// @Router       /api/inventory/sweep-expired [post]
func (h *InventoryHandler) SweepExpired(c *fiber.Ctx) error {
	resp, err := h.sweep.Sweep(c.Context(), GetUserID(c))
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(resp)
}

// RecomputeProduct godoc
// @Summary      Recalcular stock y estado denormalizados de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductStateResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/recompute [post]
func (h *InventoryHandler) RecomputeProduct(c *fiber.Ctx) error {
	resp, err := h.recompute.Recompute(c.Context(), c.Params("id"))
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(resp)
}

// parseDateRange lee from/to opcionales en RFC3339.
func parseDateRange(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if s := c.Query("from"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, err
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return nil, nil, err
		}
		to = &t
	}
	return from, to, nil
}

// inventoryError mapea errores de dominio a códigos HTTP.
func inventoryError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrInvalidInput:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case domain.ErrInsufficientStock:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case domain.ErrInvalidLotState:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_LOT_STATE", Message: "el estado del lote no permite la operación"})
	case domain.ErrConcurrencyConflict:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY", Message: "conflicto de concurrencia, reintente"})
	case domain.ErrDuplicate:
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
