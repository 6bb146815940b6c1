package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/leadly/leadly-api/internal/pkg/response"
	"github.com/leadly/leadly-api/internal/rbac"
)

// GrantLoader loads the caller's stored permission grant.
type GrantLoader interface {
	Load(ctx context.Context, userID uuid.UUID) (rbac.Grant, error)
}

// RequireRoute returns middleware that gates a subtree behind route
// visibility for the caller, resolved against the caller's own audience
// registry. Load failures deny access: the gate fails closed.
func RequireRoute(grants GrantLoader, routeID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := GetUserID(r.Context())
			role := GetRole(r.Context())
			if userID == uuid.Nil || !role.IsValid() {
				response.Forbidden(w, "Permission denied")
				return
			}

			grant, err := grants.Load(r.Context(), userID)
			if err != nil {
				log.Warn().
					Err(err).
					Str("user_id", userID.String()).
					Str("route", routeID).
					Msg("Grant load failed, denying access")
				response.Forbidden(w, "Permission denied")
				return
			}

			if !rbac.HasRoutePermission(rbac.RegistryForRole(role), grant, routeID) {
				response.Forbidden(w, "Permission denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
