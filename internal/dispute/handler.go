// AngelaMos | 2026
// handler.go

package dispute

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
	r.Route("/disputes", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.File)
		r.Get("/mine", h.ListMine)
		r.Get("/{disputeID}", h.Get)
	})
}

func (h *Handler) File(w http.ResponseWriter, r *http.Request) {
	var req FileDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	userID := middleware.GetUserID(r.Context())

	resp, err := h.service.File(r.Context(), userID, req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	role := middleware.GetUserRole(r.Context())
	disputeID := chi.URLParam(r, "disputeID")

	resp, err := h.service.Get(r.Context(), userID, role, disputeID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "dispute")
		case errors.Is(err, core.ErrForbidden):
			core.JSONError(w, core.ForbiddenError("insufficient permissions"))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, resp)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	params := listParamsFromQuery(r)

	disputes, total, err := h.service.ListMine(r.Context(), userID, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToDisputeResponseList(disputes),
		params.Page,
		params.PageSize,
		total,
	)
}

func listParamsFromQuery(r *http.Request) ListParams {
	q := r.URL.Query()

	params := ListParams{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "limit", 20),
	}

	if status := q.Get("status"); ValidStatus(status) {
		params.Status = status
	}

	if priority := q.Get("priority"); ValidPriority(priority) {
		params.Priority = priority
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
