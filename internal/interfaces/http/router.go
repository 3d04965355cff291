package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DheemanKumar/lead-manager/internal/application/auth"
	"github.com/DheemanKumar/lead-manager/internal/application/leads"
	"github.com/DheemanKumar/lead-manager/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	SubmitLead     *leads.SubmitLeadUseCase
	Transition     *leads.TransitionStatusUseCase
	Dashboard      *leads.DashboardUseCase
	Earnings       *leads.EarningsUseCase
	Statement      *leads.StatementUseCase
	Leaderboard    *leads.LeaderboardUseCase
	JWTSecret      string
	UploadMaxBytes int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)

	// Leaderboard (público)
	api.Get("/leaderboard", NewLeaderboardHandler(deps.Leaderboard).Get)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	leadHandler := NewLeadHandler(deps.SubmitLead, deps.Dashboard, deps.UploadMaxBytes)
	leadsGroup := protected.Group("/leads")
	leadsGroup.Post("/", leadHandler.Submit)
	leadsGroup.Get("/dashboard", leadHandler.Dashboard)

	adminHandler := NewAdminHandler(deps.Dashboard, deps.Transition)
	dashboard := protected.Group("/dashboard")
	dashboard.Get("/", authHandler.Profile)
	dashboard.Get("/admin", adminOnly, adminHandler.Dashboard)

	earningHandler := NewEarningHandler(deps.Earnings, deps.Statement)
	earnings := protected.Group("/earnings")
	earnings.Get("/breakdown", earningHandler.Breakdown)
	earnings.Get("/statement", earningHandler.Statement)
	earnings.Get("/admin", adminOnly, earningHandler.AllEmployees)
	earnings.Post("/admin/recompute", adminOnly, earningHandler.RecomputeAll)

	admin := protected.Group("/admin", adminOnly)
	admin.Get("/leads", adminHandler.ListLeads)
	admin.Patch("/leads/:id/status", adminHandler.TransitionStatus)
}
