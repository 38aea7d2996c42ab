package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"hireflow/internal/delivery/http/dto"
	"hireflow/internal/pkg/response"
	"hireflow/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

const (
	formJobDescription = "job_description"
	formResumes        = "resumes"

	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type ScreeningHandler struct {
	uc usecase.ScreeningUsecase
}

func NewScreeningHandler(uc usecase.ScreeningUsecase) *ScreeningHandler {
	return &ScreeningHandler{uc: uc}
}

func (h *ScreeningHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/", h.Screen)
	r.Get("/:batchID", h.Batch)
	r.Get("/:batchID/export", h.Export)
}

// Screen accepts a multipart form with a job_description field and one or
// more resumes files.
func (h *ScreeningHandler) Screen(c fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest(err)
	}

	jd := strings.TrimSpace(firstValue(form.Value[formJobDescription]))
	headers := form.File[formResumes]
	files := make([]usecase.ResumeFile, 0, len(headers))
	for _, fh := range headers {
		data, err := readPart(fh)
		if err != nil {
			return badRequest(err)
		}
		files = append(files, usecase.ResumeFile{Filename: fh.Filename, Data: data})
	}

	res, err := h.uc.Screen(c.Context(), usecase.ScreenInput{JobDescription: jd, Files: files})
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, "screening completed",
		dto.NewScreeningResponse(res.BatchID, res.JobDescription, res.Resumes, res.Skipped))
}

func (h *ScreeningHandler) Batch(c fiber.Ctx) error {
	id, err := idParam(c, "batchID")
	if err != nil {
		return err
	}

	res, err := h.uc.Batch(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK,
		dto.NewScreeningResponse(res.BatchID, res.JobDescription, res.Resumes, res.Skipped))
}

func (h *ScreeningHandler) Export(c fiber.Ctx) error {
	id, err := idParam(c, "batchID")
	if err != nil {
		return err
	}

	data, err := h.uc.Export(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}

	return response.Attachment(c, fmt.Sprintf("screening-%s.xlsx", id), xlsxContentType, data)
}

func firstValue(v []string) string {
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return data, nil
}
