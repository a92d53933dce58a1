// AngelaMos | 2026
// handler.go

package job

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
	optionalAuth func(http.Handler) http.Handler,
) {
	r.Route("/jobs", func(r chi.Router) {
		r.With(optionalAuth).Get("/", h.List)

		r.Group(func(r chi.Router) {
			r.Use(authenticator)
			r.Use(middleware.RequireEmployer)

			r.Post("/", h.Create)
			r.Get("/mine", h.ListMine)
			r.Get("/mine/stats", h.MyStats)
			r.Put("/{jobID}", h.Update)
			r.Post("/{jobID}/activate", h.Activate)
			r.Delete("/{jobID}", h.Deactivate)
		})

		r.With(optionalAuth).Get("/{jobID}", h.Get)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if req.SalaryMin != nil && req.SalaryMax != nil &&
		*req.SalaryMin > *req.SalaryMax {
		core.BadRequest(w, "salary_min cannot exceed salary_max")
		return
	}

	userID := middleware.GetUserID(r.Context())

	resp, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, ErrEmployerNotApproved) {
			core.JSONError(
				w,
				core.ForbiddenError("employer account pending approval"),
			)
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "employer profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, resp)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	viewerID := middleware.GetUserID(r.Context())
	viewerRole := middleware.GetUserRole(r.Context())

	resp, err := h.service.Get(r.Context(), jobID, viewerID, viewerRole)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "job")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := listParamsFromQuery(r)

	jobs, total, err := h.service.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToJobResponseList(jobs),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	params := listParamsFromQuery(r)

	jobs, total, err := h.service.ListMine(r.Context(), userID, params)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "employer profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToJobResponseList(jobs),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) MyStats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	stats, err := h.service.MyStats(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "employer profile")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, stats)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	userID := middleware.GetUserID(r.Context())
	jobID := chi.URLParam(r, "jobID")

	resp, err := h.service.Update(r.Context(), userID, jobID, req)
	if err != nil {
		h.writeOwnershipError(w, err)
		return
	}

	core.OK(w, resp)
}

func (h *Handler) Activate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	jobID := chi.URLParam(r, "jobID")

	if err := h.service.SetActive(r.Context(), userID, jobID, true); err != nil {
		h.writeOwnershipError(w, err)
		return
	}

	core.Message(w, "job activated")
}

func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	jobID := chi.URLParam(r, "jobID")

	if err := h.service.SetActive(r.Context(), userID, jobID, false); err != nil {
		h.writeOwnershipError(w, err)
		return
	}

	core.Message(w, "job deactivated")
}

func (h *Handler) writeOwnershipError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "job")
	case errors.Is(err, core.ErrForbidden):
		core.JSONError(w, core.ForbiddenError("job belongs to another employer"))
	default:
		core.InternalServerError(w, err)
	}
}

func listParamsFromQuery(r *http.Request) ListJobsParams {
	q := r.URL.Query()

	params := ListJobsParams{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "limit", 20),
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Location: q.Get("location"),
	}

	if jobType := q.Get("job_type"); ValidJobType(jobType) {
		params.JobType = jobType
	}

	if raw := q.Get("salary_min"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			params.SalaryMin = &v
		}
	}

	if raw := q.Get("salary_max"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil && v >= 0 {
			params.SalaryMax = &v
		}
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
