package handler

import (
	"hireflow/internal/delivery/http/dto"
	"hireflow/internal/pkg/response"
	"hireflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type InvitationHandler struct {
	uc usecase.InvitationUsecase
}

type inviteRequest struct {
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	ResumeFilename string  `json:"resume_filename"`
	MatchPercent   float64 `json:"match_percentage"`
}

func (r inviteRequest) input() usecase.InviteInput {
	return usecase.InviteInput{
		Name:           r.Name,
		Email:          r.Email,
		ResumeFilename: r.ResumeFilename,
		MatchPercent:   r.MatchPercent,
	}
}

type bulkInviteRequest struct {
	Candidates []inviteRequest `json:"candidates"`
}

func NewInvitationHandler(uc usecase.InvitationUsecase) *InvitationHandler {
	return &InvitationHandler{uc: uc}
}

func (h *InvitationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.InviteOne)
	r.Post("/bulk", h.InviteMany)
}

func (h *InvitationHandler) InviteOne(c fiber.Ctx) error {
	var req inviteRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	cand, err := h.uc.InviteOne(c.Context(), req.input())
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "invitation sent", dto.NewCandidateResponse(cand))
}

func (h *InvitationHandler) InviteMany(c fiber.Ctx) error {
	var req bulkInviteRequest
	if err := c.Bind().Body(&req); err != nil {
		return badRequest(err)
	}

	in := make([]usecase.InviteInput, 0, len(req.Candidates))
	for _, r := range req.Candidates {
		in = append(in, r.input())
	}

	res, err := h.uc.InviteMany(c.Context(), in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
