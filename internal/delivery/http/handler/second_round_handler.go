package handler

import (
	"hireflow/internal/delivery/http/dto"
	"hireflow/internal/domain/assessment"
	"hireflow/internal/pkg/response"
	"hireflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type SecondRoundHandler struct {
	uc usecase.SecondRoundUsecase
}

type secondRoundResponse struct {
	CandidateID   uuid.UUID              `json:"candidate_id"`
	CandidateName string                 `json:"candidate_name"`
	Challenges    dto.ChallengesResponse `json:"challenges"`
	ServerGraded  bool                   `json:"server_graded"`
}

func NewSecondRoundHandler(uc usecase.SecondRoundUsecase) *SecondRoundHandler {
	return &SecondRoundHandler{uc: uc}
}

func (h *SecondRoundHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/:candidateID", h.Start)
	r.Post("/:candidateID/submit", h.Submit)
	r.Get("/:candidateID/result", h.Result)
}

func (h *SecondRoundHandler) Start(c fiber.Ctx) error {
	id, err := idParam(c, "candidateID")
	if err != nil {
		return err
	}

	sess, err := h.uc.Start(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}

	// Without a stored set the client grades choices itself and needs the key.
	return response.Success(c, fiber.StatusOK, response.MessageOK, secondRoundResponse{
		CandidateID:   sess.Candidate.ID,
		CandidateName: sess.Candidate.Name,
		Challenges:    dto.NewChallengesResponse(sess.Challenges, !sess.Stored),
		ServerGraded:  sess.Stored,
	})
}

func (h *SecondRoundHandler) Submit(c fiber.Ctx) error {
	id, err := idParam(c, "candidateID")
	if err != nil {
		return err
	}

	var req assessment.SecondRoundAnswers
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	score, err := h.uc.Submit(c.Context(), id, req)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "second round submitted", score)
}

func (h *SecondRoundHandler) Result(c fiber.Ctx) error {
	id, err := idParam(c, "candidateID")
	if err != nil {
		return err
	}

	score, err := h.uc.Result(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, score)
}
