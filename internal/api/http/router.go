package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Lookups        *handlers.LookupsHandler
	Tickets        *handlers.TicketsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. Viewing endpoints are open to any
// authenticated role; mutation endpoints are role-gated here with the
// fine-grained checks living in the workflow matrix.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password-reset/request", cfg.Users.RequestPasswordReset)
	authGroup.Post("/password-reset/confirm", cfg.Users.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Get("/me", cfg.Users.Me)
	authProtected.Post("/password/change", cfg.Users.ChangePassword)
	authProtected.Post("/logout", cfg.Users.Logout)

	lookups := app.Group("/lookups", cfg.AuthMiddleware.Handle)
	lookups.Get("/categories", cfg.Lookups.Categories)
	lookups.Get("/departments", cfg.Lookups.Departments)
	lookups.Get("/companies", cfg.Lookups.Companies)
	lookups.Get("/issue-types/:categoryId", cfg.Lookups.IssueTypes)
	lookups.Get("/request-types/:categoryId", cfg.Lookups.RequestTypes)

	app.Get("/user/category/:categoryId/users", cfg.AuthMiddleware.Handle, cfg.Lookups.AssigneesByCategory)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Get("/attachments/:id/download", cfg.Tickets.DownloadAttachment)

	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("/my-tickets", cfg.Tickets.ListMyTickets)
	tickets.Get("",
		auth.RequireRole(domain.RoleITTeam, domain.RoleDepartmentHead, domain.RoleTicketCreator),
		cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)

	tickets.Put("/:id/assign",
		auth.RequireRole(domain.RoleITTeam, domain.RoleDepartmentHead),
		cfg.Tickets.AssignTicket)
	tickets.Put("/:id/status", cfg.Tickets.SetStatus)
	tickets.Put("/:id/processing",
		auth.RequireRole(domain.RoleITTeam),
		cfg.Tickets.ProcessTicket)
	tickets.Put("/:id/submit-approval", cfg.Tickets.SubmitForApproval)
	tickets.Put("/:id/complete", cfg.Tickets.CompleteTicket)
	tickets.Put("/:id/approve",
		auth.RequireRole(domain.RoleDepartmentHead),
		cfg.Tickets.ApproveTicket)
	tickets.Put("/:id/reject",
		auth.RequireRole(domain.RoleDepartmentHead),
		cfg.Tickets.RejectTicket)
	tickets.Put("/:id/close", cfg.Tickets.CloseTicket)

	tickets.Get("/:id/history", cfg.Tickets.ListHistory)
	tickets.Get("/:id/comments", cfg.Tickets.ListComments)
	tickets.Post("/:id/comments", cfg.Tickets.AddComment)
}
