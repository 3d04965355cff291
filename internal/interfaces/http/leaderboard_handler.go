package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DheemanKumar/lead-manager/internal/application/leads"
)

// LeaderboardHandler ranking público por cantidad de leads.
type LeaderboardHandler struct {
	uc *leads.LeaderboardUseCase
}

// NewLeaderboardHandler construye el handler.
func NewLeaderboardHandler(uc *leads.LeaderboardUseCase) *LeaderboardHandler {
	return &LeaderboardHandler{uc: uc}
}

// Get godoc
// @Summary      Leaderboard
// @Tags         leaderboard
// @Produce      json
// @Success      200  {array}  dto.LeaderboardEntry
// @Router       /api/leaderboard [get]
func (h *LeaderboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Leaderboard(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
