package handler

import (
	"strings"

	"hireflow/internal/delivery/http/dto"
	"hireflow/internal/pkg/response"
	"hireflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type FirstRoundHandler struct {
	uc usecase.FirstRoundUsecase
}

type questionsRequest struct {
	JobDescription string `json:"job_description"`
}

type submitTestRequest struct {
	CandidateID    string           `json:"candidate_id"`
	CandidateName  string           `json:"candidate_name"`
	JobDescription string           `json:"job_description"`
	Answers        []usecase.Answer `json:"answers"`
}

type testSessionResponse struct {
	CandidateID   uuid.UUID              `json:"candidate_id"`
	CandidateName string                 `json:"candidate_name"`
	Questions     []dto.QuestionResponse `json:"questions"`
	ServerGraded  bool                   `json:"server_graded"`
}

func NewFirstRoundHandler(uc usecase.FirstRoundUsecase) *FirstRoundHandler {
	return &FirstRoundHandler{uc: uc}
}

// RegisterRoutes mounts the candidate-facing test routes.
func (h *FirstRoundHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/start_test/:candidateID", h.Start)
	r.Post("/tests/submit", h.Submit)
}

// RegisterAdminRoutes mounts question generation for HR.
func (h *FirstRoundHandler) RegisterAdminRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/tests/questions", h.Questions)
}

func (h *FirstRoundHandler) Start(c fiber.Ctx) error {
	id, err := idParam(c, "candidateID")
	if err != nil {
		return err
	}

	sess, err := h.uc.Start(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, testSessionResponse{
		CandidateID:   sess.Candidate.ID,
		CandidateName: sess.Candidate.Name,
		Questions:     dto.NewQuestionResponses(sess.Questions, !sess.ServerGraded),
		ServerGraded:  sess.ServerGraded,
	})
}

func (h *FirstRoundHandler) Questions(c fiber.Ctx) error {
	var req questionsRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		return badRequest(nil)
	}

	qs := h.uc.Questions(c.Context(), req.JobDescription)
	return response.Success(c, fiber.StatusOK, response.MessageOK, map[string]any{
		"questions": dto.NewQuestionResponses(qs, true),
	})
}

func (h *FirstRoundHandler) Submit(c fiber.Ctx) error {
	var req submitTestRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	in := usecase.SubmitTestInput{
		CandidateName:  req.CandidateName,
		JobDescription: req.JobDescription,
		Answers:        req.Answers,
	}
	if s := strings.TrimSpace(req.CandidateID); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return badRequest(err)
		}
		in.CandidateID = &id
	}

	res, err := h.uc.Submit(c.Context(), in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "test submitted", res)
}
