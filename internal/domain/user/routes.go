package user

import (
	"github.com/go-chi/chi/v5"

	"github.com/leadly/leadly-api/internal/domain/grant"
	"github.com/leadly/leadly-api/internal/middleware"
	"github.com/leadly/leadly-api/internal/pkg/jwt"
)

// AuthRoutes returns public authentication routes
func (h *Handler) AuthRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.Login)

	return r
}

// AdminRoutes returns the user management routes, including the nested
// permission-editing endpoints. Everything here requires the caller to see
// the "users" route in their own audience.
func (h *Handler) AdminRoutes(jwtSvc *jwt.Service, grants middleware.GrantLoader, grantHandler *grant.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Auth(jwtSvc))
	r.Use(middleware.RequireRoute(grants, "users"))

	r.Post("/", h.Provision)

	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.GetByID)
		r.Delete("/", h.Delete)
		r.Get("/permissions", grantHandler.GetUserPermissions)
		r.Put("/permissions", grantHandler.SaveUserPermissions)
	})

	return r
}
