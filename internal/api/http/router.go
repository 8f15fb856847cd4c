package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/manyinyire/Outleads-sub001/internal/api/http/handlers"
	"github.com/manyinyire/Outleads-sub001/internal/auth"
	"github.com/manyinyire/Outleads-sub001/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Campaigns    *handlers.CampaignHandler
	Leads        *handlers.LeadHandler
	Pools        *handlers.LeadPoolHandler
	Dispositions *handlers.DispositionHandler
	Users        *handlers.UserHandler
	Permissions  *handlers.PermissionHandler
	Redirect     *handlers.RedirectHandler
	Gate         *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	api := app.Group("/api")

	api.Get("/health", cfg.Health.Live)
	api.Get("/health/ready", cfg.Health.Ready)

	// Public surface: link redirects and lead capture.
	api.Get("/campaign/:link", cfg.Redirect.Track)
	api.Post("/leads", cfg.Leads.Capture)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Post("/onboarding", cfg.Auth.Onboard)
	authGroup.Post("/complete-registration", cfg.Auth.CompleteRegistration)

	admin := api.Group("/admin")

	campaigns := admin.Group("/campaigns", cfg.Gate.Protect(domain.RoleAdmin, domain.RoleSupervisor))
	campaigns.Get("/", cfg.Campaigns.List)
	campaigns.Post("/", cfg.Campaigns.Create)
	campaigns.Get("/:id", cfg.Campaigns.Get)
	campaigns.Put("/:id", cfg.Campaigns.Update)
	campaigns.Delete("/:id", cfg.Campaigns.Delete)
	campaigns.Put("/:id/status", cfg.Campaigns.SetStatus)

	leads := admin.Group("/leads")
	staffGate := cfg.Gate.Protect(domain.RoleAdmin, domain.RoleSupervisor, domain.RoleAgent)
	assignGate := cfg.Gate.Protect(domain.RoleAdmin, domain.RoleSupervisor)
	leads.Get("/", staffGate, cfg.Leads.List)
	leads.Post("/assign", assignGate, cfg.Leads.Assign)
	leads.Get("/:id", staffGate, cfg.Leads.Get)
	leads.Put("/:id", assignGate, cfg.Leads.Update)
	leads.Delete("/:id", assignGate, cfg.Leads.Delete)
	leads.Put("/:id/disposition", staffGate, cfg.Leads.Disposition)
	leads.Get("/:id/disposition/history", staffGate, cfg.Leads.History)

	pools := admin.Group("/lead-pools", cfg.Gate.Protect(domain.RoleAdmin, domain.RoleSupervisor))
	pools.Get("/", cfg.Pools.List)
	pools.Post("/", cfg.Pools.Create)
	pools.Get("/:id", cfg.Pools.Get)
	pools.Put("/:id", cfg.Pools.Update)
	pools.Delete("/:id", cfg.Pools.Delete)
	pools.Get("/:id/leads", cfg.Pools.Leads)

	dispositions := admin.Group("/dispositions", cfg.Gate.Protect(domain.RoleAdmin, domain.RoleSupervisor))
	dispositions.Get("/first-level", cfg.Dispositions.ListFirst)
	dispositions.Get("/second-level", cfg.Dispositions.ListSecond)
	dispositions.Post("/second-level", cfg.Dispositions.CreateSecond)
	dispositions.Get("/second-level/:id", cfg.Dispositions.GetSecond)
	dispositions.Put("/second-level/:id", cfg.Dispositions.UpdateSecond)
	dispositions.Delete("/second-level/:id", cfg.Dispositions.DeleteSecond)
	dispositions.Get("/third-level", cfg.Dispositions.ListThird)
	dispositions.Post("/third-level", cfg.Dispositions.CreateThird)
	dispositions.Get("/third-level/:id", cfg.Dispositions.GetThird)
	dispositions.Put("/third-level/:id", cfg.Dispositions.UpdateThird)
	dispositions.Delete("/third-level/:id", cfg.Dispositions.DeleteThird)

	users := admin.Group("/users", cfg.Gate.Protect(domain.RoleAdmin))
	users.Get("/", cfg.Users.List)
	users.Get("/export", cfg.Users.Export)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)
	users.Delete("/:id", cfg.Users.Delete)
	users.Put("/:id/approve", cfg.Users.Approve)
	users.Put("/:id/reject", cfg.Users.Reject)

	roles := admin.Group("/roles")
	roles.Get("/:role/permissions", cfg.Gate.Protect(domain.RoleAdmin, domain.RoleInfosec), cfg.Permissions.Get)
	roles.Put("/:role/permissions", cfg.Gate.Protect(domain.RoleAdmin), cfg.Permissions.Replace)
}
