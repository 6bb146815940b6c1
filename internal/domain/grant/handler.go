package grant

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/leadly/leadly-api/internal/middleware"
	"github.com/leadly/leadly-api/internal/pkg/response"
	"github.com/leadly/leadly-api/internal/pkg/validator"
	"github.com/leadly/leadly-api/internal/rbac"
)

// Handler handles permission HTTP requests
type Handler struct {
	svc *Service
}

// NewHandler creates grant handler
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// MyPermissions handles GET /me/permissions
func (h *Handler) MyPermissions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	role := middleware.GetRole(r.Context())

	vs, err := h.svc.VisibleSet(r.Context(), userID, role)
	if err != nil {
		if errors.Is(err, ErrGrantNotFound) {
			response.NotFound(w, "No permissions on record")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, vs)
}

// MyMenu handles GET /me/menu
func (h *Handler) MyMenu(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	role := middleware.GetRole(r.Context())

	menu, err := h.svc.Menu(r.Context(), userID, role)
	if err != nil {
		if errors.Is(err, ErrGrantNotFound) {
			response.NotFound(w, "No permissions on record")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, &MenuResponse{Menu: menu})
}

// GetUserPermissions handles GET /admin/users/{id}/permissions
func (h *Handler) GetUserPermissions(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	record, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrGrantNotFound) {
			response.NotFound(w, "No permissions on record for this user")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, ToResponse(record))
}

// SaveUserPermissions handles PUT /admin/users/{id}/permissions.
// On a store failure the submitted draft is not persisted and the client
// keeps its staged copy, so the save can simply be retried.
func (h *Handler) SaveUserPermissions(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req SavePermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	final, err := h.svc.Save(r.Context(), userID, req.Permissions)
	if err != nil {
		var persistence *PersistenceError
		if errors.As(err, &persistence) {
			response.ServiceUnavailable(w, "Could not save permissions, please retry")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, &PermissionsResponse{UserID: userID, Permissions: final})
}

// Registry handles GET /registry/{audience}
func (h *Handler) Registry(w http.ResponseWriter, r *http.Request) {
	audience := rbac.Audience(chi.URLParam(r, "audience"))
	switch audience {
	case rbac.AudienceOrganization, rbac.AudienceAdmin:
	default:
		response.BadRequest(w, "Invalid audience")
		return
	}

	reg := rbac.RegistryFor(audience)
	response.OK(w, &RegistryResponse{Audience: audience, Routes: reg.Routes()})
}
