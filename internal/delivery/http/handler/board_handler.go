package handler

import (
	"hireflow/internal/delivery/http/dto"
	"hireflow/internal/pkg/response"
	"hireflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type BoardHandler struct {
	uc usecase.BoardUsecase
}

func NewBoardHandler(uc usecase.BoardUsecase) *BoardHandler {
	return &BoardHandler{uc: uc}
}

func (h *BoardHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/board", h.Board)
}

func (h *BoardHandler) Board(c fiber.Ctx) error {
	rounds, err := h.uc.Board(c.Context())
	if err != nil {
		return mapUsecaseError(err)
	}

	out := make([]dto.BoardRoundResponse, 0, len(rounds))
	for _, r := range rounds {
		groups := make([]dto.BoardGroupResponse, 0, len(r.Groups))
		for _, g := range r.Groups {
			groups = append(groups, dto.BoardGroupResponse{
				JobDescription: g.JobDescription,
				Candidates:     dto.NewCandidateResponses(g.Candidates),
			})
		}
		out = append(out, dto.BoardRoundResponse{Status: string(r.Status), Label: r.Label, Groups: groups})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
