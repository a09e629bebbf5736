package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spec-kit/support-desk/internal/api/http/handlers"
	"github.com/spec-kit/support-desk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Comments       *handlers.CommentsHandler
	AuthMiddleware *auth.Middleware
	Registry       *prometheus.Registry
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(cfg.Registry, promhttp.HandlerOpts{})))
	}

	users := app.Group("/api/users")
	users.Post("/signup", cfg.Users.SignUp)
	users.Post("/signin", cfg.Users.SignIn)
	users.Get("/currentuser", cfg.AuthMiddleware.Handle, cfg.Users.CurrentUser)

	tickets := app.Group("/api/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("/", cfg.Tickets.CreateTicket)
	tickets.Get("/", cfg.Tickets.ListOwnTickets)
	// Static segments register before the :id wildcard.
	tickets.Get("/report", cfg.Tickets.ClosedReport)
	tickets.Delete("/user/:id", cfg.Tickets.DeleteTicket)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id", cfg.Tickets.UpdateStatus)

	comments := app.Group("/api/comments", cfg.AuthMiddleware.Handle)
	comments.Get("/admin/:id", cfg.Comments.GetComment)
	comments.Patch("/admin/:id", cfg.Comments.EditComment)
	comments.Delete("/admin/:id", cfg.Comments.DeleteComment)
	comments.Post("/:ticketId", cfg.Comments.CreateComment)
	comments.Get("/:ticketId", cfg.Comments.ListComments)
}
