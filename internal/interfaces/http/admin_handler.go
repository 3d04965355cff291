package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DheemanKumar/lead-manager/internal/application/dto"
	"github.com/DheemanKumar/lead-manager/internal/application/leads"
)

// AdminHandler revisión de leads: listado global, dashboard del admin y transiciones.
type AdminHandler struct {
	dashboard  *leads.DashboardUseCase
	transition *leads.TransitionStatusUseCase
}

// NewAdminHandler construye el handler.
func NewAdminHandler(dashboard *leads.DashboardUseCase, transition *leads.TransitionStatusUseCase) *AdminHandler {
	return &AdminHandler{dashboard: dashboard, transition: transition}
}

// ListLeads godoc
// @Summary      Todos los leads (admin)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        page       query  int  false  "página (1..)"
// @Param        page_size  query  int  false  "tamaño de página (máx 100)"
// @Success      200  {object}  dto.LeadPageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/admin/leads [get]
func (h *AdminHandler) ListLeads(c *fiber.Ctx) error {
	page, err := pageFromQuery(c)
	if err != nil {
		return badQuery(c)
	}
	out, err := h.dashboard.ListAllLeads(c.UserContext(), GetActor(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Dashboard del admin
// @Tags         dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        page       query  int  false  "página (1..)"
// @Param        page_size  query  int  false  "tamaño de página (máx 100)"
// @Success      200  {object}  dto.AdminDashboardResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard/admin [get]
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	page, err := pageFromQuery(c)
	if err != nil {
		return badQuery(c)
	}
	out, err := h.dashboard.AdminDashboard(c.UserContext(), GetActor(c), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TransitionStatus godoc
// @Summary      Cambiar el estado de un lead
// @Description  review | shortlisted | joined | rejected. Recalcula las ganancias del dueño.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                    true  "id del lead"
// @Param        body  body  dto.TransitionRequest  true  "estado destino"
// @Success      200   {object}  dto.TransitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/admin/leads/{id}/status [patch]
func (h *AdminHandler) TransitionStatus(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de lead inválido", Field: "id"})
	}
	var in dto.TransitionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.transition.TransitionStatus(c.UserContext(), GetActor(c), int64(id), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
