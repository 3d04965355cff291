package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DheemanKumar/lead-manager/internal/application/leads"
)

// EarningHandler desglose, reportes y estado de ganancias en PDF.
type EarningHandler struct {
	earnings  *leads.EarningsUseCase
	statement *leads.StatementUseCase
}

// NewEarningHandler construye el handler.
func NewEarningHandler(earnings *leads.EarningsUseCase, statement *leads.StatementUseCase) *EarningHandler {
	return &EarningHandler{earnings: earnings, statement: statement}
}

// Breakdown godoc
// @Summary      Desglose de ganancias del usuario
// @Description  Recalcula desde el ledger completo y corrige el valor persistido.
// @Tags         earnings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.EarningBreakdownResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/earnings/breakdown [get]
func (h *EarningHandler) Breakdown(c *fiber.Ctx) error {
	out, err := h.earnings.Breakdown(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AllEmployees godoc
// @Summary      Ganancias de todos los empleados (admin)
// @Tags         earnings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   dto.EmployeeEarning
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/earnings/admin [get]
func (h *EarningHandler) AllEmployees(c *fiber.Ctx) error {
	out, err := h.earnings.AllEmployeeEarnings(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecomputeAll godoc
// @Summary      Recalcular las ganancias de todos los empleados (admin)
// @Tags         earnings
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.RecomputeResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/earnings/admin/recompute [post]
func (h *EarningHandler) RecomputeAll(c *fiber.Ctx) error {
	out, err := h.earnings.RecomputeAll(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Statement godoc
// @Summary      Estado de ganancias en PDF
// @Tags         earnings
// @Produce      application/pdf
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/earnings/statement [get]
func (h *EarningHandler) Statement(c *fiber.Ctx) error {
	pdf, filename, err := h.statement.Statement(c.UserContext(), GetActor(c))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdf)
}
