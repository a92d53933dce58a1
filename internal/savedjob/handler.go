// AngelaMos | 2026
// handler.go

package savedjob

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kaziconnect/backend/internal/core"
	"github.com/kaziconnect/backend/internal/middleware"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/saved-jobs", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(middleware.RequireJobSeeker)

		r.Get("/", h.ListMine)
		r.Post("/{jobID}", h.Save)
		r.Delete("/{jobID}", h.Unsave)
	})
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	jobID := chi.URLParam(r, "jobID")

	if err := h.service.Save(r.Context(), userID, jobID); err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateKey):
			core.Conflict(w, "job is already saved")
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "job seeker profile")
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Message(w, "job saved")
}

func (h *Handler) Unsave(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	jobID := chi.URLParam(r, "jobID")

	if err := h.service.Unsave(r.Context(), userID, jobID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "saved job")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Message(w, "job removed from saved jobs")
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	saved, total, err := h.service.ListMine(r.Context(), userID, page, limit)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "job seeker profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, saved, page, limit, total)
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
