package grant

import (
	"github.com/go-chi/chi/v5"

	"github.com/leadly/leadly-api/internal/middleware"
	"github.com/leadly/leadly-api/internal/pkg/jwt"
)

// MeRoutes returns the routes every authenticated user may call for their
// own menu and visible set.
func (h *Handler) MeRoutes(jwtSvc *jwt.Service) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Auth(jwtSvc))

	r.Get("/menu", h.MyMenu)
	r.Get("/permissions", h.MyPermissions)

	return r
}

// RegistryRoutes returns the route-catalog routes consumed by menu builders
// and the permission edit screen.
func (h *Handler) RegistryRoutes(jwtSvc *jwt.Service) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Auth(jwtSvc))

	r.Get("/{audience}", h.Registry)

	return r
}
