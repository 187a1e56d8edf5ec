package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmaviva/botica-api/internal/application/dto"
	"github.com/farmaviva/botica-api/internal/application/usecase"
)

// NotificationHandler maneja los avisos de inventario (protegido).
type NotificationHandler struct {
	uc *usecase.NotificationUseCase
}

// NewNotificationHandler construye el handler.
func NewNotificationHandler(uc *usecase.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

// Generate godoc
// @Summary      Generar avisos a partir del estado de los productos
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.GenerateNotificationsResponse
// @Router       /api/notifications/generate [post]
func (h *NotificationHandler) Generate(c *fiber.Ctx) error {
	resp, err := h.uc.Generate()
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(resp)
}

// List godoc
// @Summary      Listar avisos
// @Tags         notifications
// @Security     Bearer
// @Produce      json
// @Param        unread  query  bool  false  "solo no leídos"
// @Success      200  {array}  dto.NotificationResponse
// @Router       /api/notifications [get]
func (h *NotificationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	notifications, err := h.uc.List(c.QueryBool("unread"), page)
	if err != nil {
		return inventoryError(c, err)
	}
	return c.JSON(notifications)
}

// MarkRead godoc
// @Summary      Marcar aviso como leído
// @Tags         notifications
// @Security     Bearer
// @Param        id  path  string  true  "ID del aviso"
// @Success      204  "sin contenido"
// @Router       /api/notifications/{id}/read [post]
func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	if err := h.uc.MarkRead(c.Params("id")); err != nil {
		return inventoryError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
