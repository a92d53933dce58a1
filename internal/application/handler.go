// AngelaMos | 2026
// handler.go

package application

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/kaziconnect/backend/internal/core"
	"github.com/kaziconnect/backend/internal/middleware"
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
	r.Route("/applications", func(r chi.Router) {
		r.Use(authenticator)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireJobSeeker)
			r.Post("/", h.Apply)
			r.Get("/mine", h.ListMine)
			r.Get("/mine/stats", h.MyStats)
			r.Delete("/{applicationID}", h.Withdraw)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireEmployer)
			r.Get("/jobs/{jobID}", h.ListForJob)
			r.Get("/jobs/{jobID}/stats", h.JobStats)
			r.Put("/{applicationID}/status", h.UpdateStatus)
		})

		r.Get("/{applicationID}", h.Get)
	})
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	userID := middleware.GetUserID(r.Context())

	resp, err := h.service.Apply(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyApplied):
			core.Conflict(w, "you have already applied to this job")
		case errors.Is(err, ErrJobClosed):
			core.BadRequest(w, "job is not accepting applications")
		case errors.Is(err, ErrNoSeekerProfile):
			core.NotFound(w, "job seeker profile")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "job")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	role := middleware.GetUserRole(r.Context())
	applicationID := chi.URLParam(r, "applicationID")

	resp, err := h.service.Get(r.Context(), userID, role, applicationID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	params := listParamsFromQuery(r)

	apps, total, err := h.service.ListMine(r.Context(), userID, params)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "job seeker profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, apps, params.Page, params.PageSize, total)
}

func (h *Handler) MyStats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	stats, err := h.service.MyStats(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "job seeker profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, stats)
}

func (h *Handler) ListForJob(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	jobID := chi.URLParam(r, "jobID")
	params := listParamsFromQuery(r)

	apps, total, err := h.service.ListForJob(r.Context(), userID, jobID, params)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.Paginated(w, apps, params.Page, params.PageSize, total)
}

func (h *Handler) JobStats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	jobID := chi.URLParam(r, "jobID")

	stats, err := h.service.JobStats(r.Context(), userID, jobID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, stats)
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	userID := middleware.GetUserID(r.Context())
	applicationID := chi.URLParam(r, "applicationID")

	resp, err := h.service.UpdateStatus(
		r.Context(),
		userID,
		applicationID,
		req,
	)
	if err != nil {
		h.writeError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	applicationID := chi.URLParam(r, "applicationID")

	if err := h.service.Withdraw(r.Context(), userID, applicationID); err != nil {
		h.writeError(w, err)
		return
	}

	core.Message(w, "application withdrawn")
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "application")
	case errors.Is(err, core.ErrForbidden):
		core.JSONError(w, core.ForbiddenError("insufficient permissions"))
	default:
		core.InternalServerError(w, err)
	}
}

func listParamsFromQuery(r *http.Request) ListParams {
	params := ListParams{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "limit", 20),
	}

	if status := r.URL.Query().Get("status"); ValidStatus(status) {
		params.Status = status
	}

	params.Normalize()

	return params
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}

	return value
}
