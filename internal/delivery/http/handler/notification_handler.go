package handler

import (
	"hireflow/internal/pkg/response"
	"hireflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type NotificationHandler struct {
	uc usecase.NotificationUsecase
}

func NewNotificationHandler(uc usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{uc: uc}
}

func (h *NotificationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Feed)
	r.Post("/:notificationID/seen", h.MarkSeen)
}

func (h *NotificationHandler) Feed(c fiber.Ctx) error {
	feed, err := h.uc.Feed(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, feed)
}

func (h *NotificationHandler) MarkSeen(c fiber.Ctx) error {
	id, err := idParam(c, "notificationID")
	if err != nil {
		return err
	}
	if err := h.uc.MarkSeen(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{"id": id, "seen": true})
}
