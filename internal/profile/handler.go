// AngelaMos | 2026
// handler.go

package profile

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/kaziconnect/backend/internal/core"
	"github.com/kaziconnect/backend/internal/middleware"
	"github.com/kaziconnect/backend/internal/user"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/profiles", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/me", h.GetMyProfile)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireJobSeeker)
			r.Put("/job-seeker", h.UpdateSeekerProfile)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireEmployer)
			r.Put("/employer", h.UpdateEmployerProfile)
		})

		r.Get("/job-seekers/{profileID}", h.GetSeekerProfile)
		r.Get("/employers/{profileID}", h.GetEmployerProfile)
	})
}

func (h *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	role := middleware.GetUserRole(r.Context())

	resp, err := h.service.GetMyProfile(r.Context(), userID, role)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) UpdateSeekerProfile(w http.ResponseWriter, r *http.Request) {
	var req UpdateSeekerProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	userID := middleware.GetUserID(r.Context())

	resp, err := h.service.UpdateSeekerProfile(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) UpdateEmployerProfile(
	w http.ResponseWriter,
	r *http.Request,
) {
	var req UpdateEmployerProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	userID := middleware.GetUserID(r.Context())

	resp, err := h.service.UpdateEmployerProfile(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

// GetSeekerProfile is restricted to employers and admins; seekers share
// their profile through applications, not a public directory.
func (h *Handler) GetSeekerProfile(w http.ResponseWriter, r *http.Request) {
	role := middleware.GetUserRole(r.Context())
	if role != user.RoleEmployer && role != user.RoleAdmin {
		core.JSONError(w, core.ForbiddenError("insufficient permissions"))
		return
	}

	profileID := chi.URLParam(r, "profileID")

	resp, err := h.service.GetSeekerProfile(r.Context(), profileID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) GetEmployerProfile(w http.ResponseWriter, r *http.Request) {
	profileID := chi.URLParam(r, "profileID")

	resp, err := h.service.GetEmployerProfile(r.Context(), profileID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}
