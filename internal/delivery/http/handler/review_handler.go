package handler

import (
	"hireflow/internal/pkg/response"
	"hireflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ReviewHandler struct {
	uc usecase.ReviewUsecase
}

func NewReviewHandler(uc usecase.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{uc: uc}
}

func (h *ReviewHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/:candidateID/approve-second-round", h.ApproveSecondRound)
	r.Post("/:candidateID/approve-hr-round", h.ApproveHRRound)
}

func (h *ReviewHandler) ApproveSecondRound(c fiber.Ctx) error {
	id, err := idParam(c, "candidateID")
	if err != nil {
		return err
	}
	if err := h.uc.ApproveSecondRound(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "second round invitation sent", map[string]any{"candidate_id": id})
}

func (h *ReviewHandler) ApproveHRRound(c fiber.Ctx) error {
	id, err := idParam(c, "candidateID")
	if err != nil {
		return err
	}
	if err := h.uc.ApproveHRRound(c.Context(), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "hr round invitation sent", map[string]any{"candidate_id": id})
}
