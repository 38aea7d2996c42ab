package handler

import (
	"hireflow/internal/delivery/http/dto"
	"hireflow/internal/pkg/response"
	"hireflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type CandidateHandler struct {
	uc usecase.CandidateUsecase
}

func NewCandidateHandler(uc usecase.CandidateUsecase) *CandidateHandler {
	return &CandidateHandler{uc: uc}
}

func (h *CandidateHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:candidateID", h.Details)
	r.Get("/:candidateID/resume", h.Resume)
}

func (h *CandidateHandler) Details(c fiber.Ctx) error {
	id, err := idParam(c, "candidateID")
	if err != nil {
		return err
	}

	d, err := h.uc.Details(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewCandidateDetailsResponse(d.Candidate, d.TestResult))
}

func (h *CandidateHandler) Resume(c fiber.Ctx) error {
	id, err := idParam(c, "candidateID")
	if err != nil {
		return err
	}

	doc, err := h.uc.Resume(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Inline(c, doc.Filename, doc.Body)
}
