package http

import (
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/DheemanKumar/lead-manager/internal/application/dto"
	"github.com/DheemanKumar/lead-manager/internal/application/leads"
)

// ResumeField nombre del campo multipart que trae el CV.
const ResumeField = "resume"

// LeadHandler alta de leads y dashboard del empleado.
type LeadHandler struct {
	submit         *leads.SubmitLeadUseCase
	dashboard      *leads.DashboardUseCase
	uploadMaxBytes int
}

// NewLeadHandler construye el handler. uploadMaxBytes <= 0 no limita el tamaño del CV.
func NewLeadHandler(submit *leads.SubmitLeadUseCase, dashboard *leads.DashboardUseCase, uploadMaxBytes int) *LeadHandler {
	return &LeadHandler{submit: submit, dashboard: dashboard, uploadMaxBytes: uploadMaxBytes}
}

// Submit godoc
// @Summary      Registrar un lead
// @Description  JSON, o multipart/form-data con el CV en el campo "resume".
// @Tags         leads
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        body    body      dto.SubmitLeadRequest  true   "datos del candidato"
// @Param        resume  formData  file                   false  "CV del candidato"
// @Success      201     {object}  dto.SubmitLeadResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Failure      409     {object}  dto.ErrorResponse
// @Failure      413     {object}  dto.ErrorResponse
// @Router       /api/leads [post]
func (h *LeadHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitLeadRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	resume, err := h.readResume(c)
	if err != nil {
		if errors.Is(err, errResumeTooLarge) {
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{Code: "RESUME_TOO_LARGE", Message: err.Error(), Field: ResumeField})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_RESUME", Message: err.Error(), Field: ResumeField})
	}
	out, err := h.submit.SubmitLead(c.UserContext(), leads.SubmitLeadInput{
		Actor:  GetActor(c),
		Lead:   in,
		Resume: resume,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Dashboard godoc
// @Summary      Leads del usuario y resumen de ganancias
// @Tags         leads
// @Produce      json
// @Security     BearerAuth
// @Param        page       query  int  false  "página (1..)"
// @Param        page_size  query  int  false  "tamaño de página (máx 100)"
// @Success      200  {object}  dto.OwnerDashboardResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/leads/dashboard [get]
func (h *LeadHandler) Dashboard(c *fiber.Ctx) error {
	page, err := pageFromQuery(c)
	if err != nil {
		return badQuery(c)
	}
	out, err := h.dashboard.OwnerDashboard(c.UserContext(), GetActor(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

var errResumeTooLarge = errors.New("el CV supera el tamaño máximo permitido")

// readResume devuelve nil si la solicitud no es multipart o no adjunta CV.
func (h *LeadHandler) readResume(c *fiber.Ctx) (*leads.ResumeUpload, error) {
	if !strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	fh, err := c.FormFile(ResumeField)
	if err != nil {
		// Campo ausente: el CV es opcional.
		return nil, nil
	}
	if h.uploadMaxBytes > 0 && fh.Size > int64(h.uploadMaxBytes) {
		return nil, errResumeTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, errors.New("no se pudo leer el CV")
	}
	defer f.Close()

	r := io.Reader(f)
	if h.uploadMaxBytes > 0 {
		r = io.LimitReader(f, int64(h.uploadMaxBytes)+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.New("no se pudo leer el CV")
	}
	if h.uploadMaxBytes > 0 && len(data) > h.uploadMaxBytes {
		return nil, errResumeTooLarge
	}
	return &leads.ResumeUpload{Filename: fh.Filename, Data: data}, nil
}

func pageFromQuery(c *fiber.Ctx) (dto.PageRequest, error) {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return page, err
	}
	page.Normalize()
	return page, nil
}

func badQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "page y page_size deben ser enteros"})
}
