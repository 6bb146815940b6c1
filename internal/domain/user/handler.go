package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/leadly/leadly-api/internal/pkg/jwt"
	"github.com/leadly/leadly-api/internal/pkg/response"
	"github.com/leadly/leadly-api/internal/pkg/validator"
	"github.com/leadly/leadly-api/internal/rbac"
)

// Handler handles user HTTP requests
type Handler struct {
	svc    *Service
	jwtSvc *jwt.Service
}

// NewHandler creates user handler
func NewHandler(svc *Service, jwtSvc *jwt.Service) *Handler {
	return &Handler{svc: svc, jwtSvc: jwtSvc}
}

// Login handles POST /auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.svc.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid email or password")
		case errors.Is(err, ErrUserInactive):
			response.Forbidden(w, "Account is inactive")
		default:
			response.InternalError(w)
		}
		return
	}

	token, err := h.jwtSvc.GenerateAccessToken(u.ID, u.Role)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, &LoginResponse{
		Token:     token,
		ExpiresIn: int64(h.jwtSvc.AccessTTL().Seconds()),
		User:      ToResponse(u),
	})
}

// Provision handles POST /admin/users
func (h *Handler) Provision(w http.ResponseWriter, r *http.Request) {
	var req ProvisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := h.svc.Provision(r.Context(), &req)
	if err != nil {
		var unknownRole *rbac.UnknownRoleError
		switch {
		case errors.Is(err, ErrEmailExists):
			response.Conflict(w, "User with this email already exists")
		case errors.As(err, &unknownRole):
			response.BadRequest(w, unknownRole.Error())
		default:
			response.InternalError(w)
		}
		return
	}

	response.Created(w, ToResponse(u))
}

// GetByID handles GET /admin/users/{id}
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	u, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, ToResponse(u))
}

// Delete handles DELETE /admin/users/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, "User not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}
