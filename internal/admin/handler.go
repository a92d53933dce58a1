// AngelaMos | 2026
// handler.go

package admin

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/kaziconnect/backend/internal/activity"
	"github.com/kaziconnect/backend/internal/core"
	"github.com/kaziconnect/backend/internal/dispute"
	"github.com/kaziconnect/backend/internal/job"
	"github.com/kaziconnect/backend/internal/middleware"
	"github.com/kaziconnect/backend/internal/profile"
	"github.com/kaziconnect/backend/internal/user"
)

// HandlerConfig wires the admin surface to the rest of the application.
// Stats funcs are injected so this package never holds pool handles.
type HandlerConfig struct {
	Users      *user.Service
	Profiles   *profile.Service
	Jobs       *job.Service
	Disputes   *dispute.Service
	Activity   *activity.Service
	Stats      StatsRepository
	DBStats    func() sql.DBStats
	RedisStats func() *redis.PoolStats
	DBPing     func(ctx context.Context) error
	RedisPing  func(ctx context.Context) error
}

type Handler struct {
	cfg       HandlerConfig
	validator *validator.Validate
	startTime time.Time
}

func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		cfg:       cfg,
		validator: validator.New(validator.WithRequiredStructEnabled()),
		startTime: time.Now(),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
	adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/stats", h.GetPlatformStats)
		r.Get("/stats/system", h.GetSystemStats)

		r.Get("/users", h.ListUsers)
		r.Get("/users/{userID}", h.GetUser)
		r.Patch("/users/{userID}/active", h.SetUserActive)
		r.Delete("/users/{userID}", h.DeleteUser)

		r.Get("/employers/pending", h.ListPendingEmployers)
		r.Put("/employers/{employerID}/approve", h.ApproveEmployer)
		r.Put("/employers/{employerID}/reject", h.RejectEmployer)

		r.Get("/jobs", h.ListJobs)
		r.Delete("/jobs/{jobID}", h.DeactivateJob)

		r.Get("/disputes", h.ListDisputes)
		r.Put("/disputes/{disputeID}/resolve", h.ResolveDispute)
		r.Patch("/disputes/{disputeID}/status", h.SetDisputeStatus)

		r.Get("/activity", h.ListActivity)
	})
}

func (h *Handler) GetPlatformStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.cfg.Stats.PlatformStats(r.Context())
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, stats)
}

func (h *Handler) GetSystemStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	dbHealthy := h.cfg.DBPing(ctx) == nil
	redisHealthy := h.cfg.RedisPing(ctx) == nil

	dbStats := h.cfg.DBStats()
	redisStats := h.cfg.RedisStats()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	core.OK(w, SystemStatsResponse{
		Status:        overallStatus(dbHealthy, redisHealthy),
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Database: DBPoolStats{
			Healthy:        dbHealthy,
			OpenConns:      dbStats.OpenConnections,
			InUse:          dbStats.InUse,
			Idle:           dbStats.Idle,
			WaitCount:      dbStats.WaitCount,
			WaitDurationMS: dbStats.WaitDuration.Milliseconds(),
		},
		Redis: RedisPoolStats{
			Healthy:    redisHealthy,
			Hits:       redisStats.Hits,
			Misses:     redisStats.Misses,
			TotalConns: redisStats.TotalConns,
			IdleConns:  redisStats.IdleConns,
		},
		Runtime: RuntimeStats{
			GoVersion:    runtime.Version(),
			NumGoroutine: runtime.NumGoroutine(),
			NumCPU:       runtime.NumCPU(),
			AllocBytes:   memStats.Alloc,
			SysBytes:     memStats.Sys,
			NumGC:        memStats.NumGC,
		},
	})
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := user.ListUsersParams{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "limit", 20),
		Search:   q.Get("search"),
		Role:     q.Get("role"),
	}

	if raw := q.Get("is_active"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			params.IsActive = &active
		}
	}

	params.Normalize()

	users, total, err := h.cfg.Users.ListUsers(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		user.ToUserResponseList(users),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	u, err := h.cfg.Users.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "user")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, user.ToUserResponse(u))
}

func (h *Handler) SetUserActive(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req user.SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	u, err := h.cfg.Users.SetUserActive(r.Context(), userID, req.IsActive)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "user")
		case errors.Is(err, core.ErrForbidden):
			core.JSONError(w, core.ForbiddenError("admin accounts cannot be modified"))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.OK(w, user.ToUserResponse(u))
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	if userID == middleware.GetUserID(r.Context()) {
		core.BadRequest(w, "cannot delete your own account")
		return
	}

	err := h.cfg.Users.DeleteUser(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			core.NotFound(w, "user")
		case errors.Is(err, core.ErrForbidden):
			core.JSONError(w, core.ForbiddenError("admin accounts cannot be deleted"))
		default:
			core.InternalServerError(w, err)
		}
		return
	}

	core.Message(w, "user deleted")
}

func (h *Handler) ListPendingEmployers(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 20)

	employers, total, err := h.cfg.Profiles.ListPendingEmployers(
		r.Context(),
		page,
		limit,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		profile.ToEmployerResponseList(employers),
		page,
		limit,
		total,
	)
}

func (h *Handler) ApproveEmployer(w http.ResponseWriter, r *http.Request) {
	employerID := chi.URLParam(r, "employerID")
	adminID := middleware.GetUserID(r.Context())

	resp, err := h.cfg.Profiles.ApproveEmployer(r.Context(), employerID, adminID)
	if err != nil {
		h.writeModerationError(w, err, "employer profile")
		return
	}

	h.cfg.Activity.RecordEntity(
		r.Context(),
		adminID,
		"employer.approve",
		"employer",
		employerID,
		"",
		"",
	)

	core.OK(w, resp)
}

func (h *Handler) RejectEmployer(w http.ResponseWriter, r *http.Request) {
	employerID := chi.URLParam(r, "employerID")

	var req RejectEmployerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.cfg.Profiles.RejectEmployer(r.Context(), employerID, req.Reason)
	if err != nil {
		h.writeModerationError(w, err, "employer profile")
		return
	}

	h.cfg.Activity.RecordEntity(
		r.Context(),
		middleware.GetUserID(r.Context()),
		"employer.reject",
		"employer",
		employerID,
		req.Reason,
		"",
	)

	core.Message(w, "employer rejected")
}

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := job.ListJobsParams{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "limit", 20),
		Search:   q.Get("search"),
		Category: q.Get("category"),
	}

	if jobType := q.Get("job_type"); job.ValidJobType(jobType) {
		params.JobType = jobType
	}

	params.Normalize()

	jobs, total, err := h.cfg.Jobs.AdminList(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		job.ToJobResponseList(jobs),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) DeactivateJob(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")

	var req DeactivateJobRequest
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			core.BadRequest(w, "invalid request body")
			return
		}
	}

	if err := h.cfg.Jobs.AdminDeactivate(r.Context(), jobID, req.Reason); err != nil {
		h.writeModerationError(w, err, "job posting")
		return
	}

	h.cfg.Activity.RecordEntity(
		r.Context(),
		middleware.GetUserID(r.Context()),
		"job.deactivate",
		"job",
		jobID,
		req.Reason,
		"",
	)

	core.Message(w, "job deactivated")
}

func (h *Handler) ListDisputes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := dispute.ListParams{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "limit", 20),
	}

	if status := q.Get("status"); dispute.ValidStatus(status) {
		params.Status = status
	}
	if priority := q.Get("priority"); dispute.ValidPriority(priority) {
		params.Priority = priority
	}

	params.Normalize()

	disputes, total, err := h.cfg.Disputes.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		dispute.ToDisputeResponseList(disputes),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) ResolveDispute(w http.ResponseWriter, r *http.Request) {
	disputeID := chi.URLParam(r, "disputeID")

	var req dispute.ResolveDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	adminID := middleware.GetUserID(r.Context())

	resp, err := h.cfg.Disputes.Resolve(r.Context(), adminID, disputeID, req)
	if err != nil {
		h.writeModerationError(w, err, "dispute")
		return
	}

	h.cfg.Activity.RecordEntity(
		r.Context(),
		adminID,
		"dispute.resolve",
		"dispute",
		disputeID,
		"",
		"",
	)

	core.OK(w, resp)
}

func (h *Handler) SetDisputeStatus(w http.ResponseWriter, r *http.Request) {
	disputeID := chi.URLParam(r, "disputeID")

	var req dispute.SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	resp, err := h.cfg.Disputes.SetStatus(r.Context(), disputeID, req.Status)
	if err != nil {
		h.writeModerationError(w, err, "dispute")
		return
	}

	core.OK(w, resp)
}

func (h *Handler) ListActivity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := activity.ListParams{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "limit", 50),
		UserID:   q.Get("user_id"),
		Action:   q.Get("action"),
	}
	params.Normalize()

	entries, total, err := h.cfg.Activity.List(r.Context(), params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(w, entries, params.Page, params.PageSize, total)
}

func (h *Handler) writeModerationError(
	w http.ResponseWriter,
	err error,
	resource string,
) {
	var appErr *core.AppError
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, resource)
	case errors.As(err, &appErr):
		core.JSONError(w, appErr)
	default:
		core.InternalServerError(w, err)
	}
}

func overallStatus(dbHealthy, redisHealthy bool) string {
	if dbHealthy && redisHealthy {
		return "healthy"
	}
	if dbHealthy {
		return "degraded"
	}
	return "unhealthy"
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

type RejectEmployerRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=2000"`
}

type DeactivateJobRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=2000"`
}

type SystemStatsResponse struct {
	Status        string         `json:"status"`
	UptimeSeconds int64          `json:"uptime_seconds"`
	Database      DBPoolStats    `json:"database"`
	Redis         RedisPoolStats `json:"redis"`
	Runtime       RuntimeStats   `json:"runtime"`
}

type DBPoolStats struct {
	Healthy        bool  `json:"healthy"`
	OpenConns      int   `json:"open_conns"`
	InUse          int   `json:"in_use"`
	Idle           int   `json:"idle"`
	WaitCount      int64 `json:"wait_count"`
	WaitDurationMS int64 `json:"wait_duration_ms"`
}

type RedisPoolStats struct {
	Healthy    bool   `json:"healthy"`
	Hits       uint32 `json:"hits"`
	Misses     uint32 `json:"misses"`
	TotalConns uint32 `json:"total_conns"`
	IdleConns  uint32 `json:"idle_conns"`
}

type RuntimeStats struct {
	GoVersion    string `json:"go_version"`
	NumGoroutine int    `json:"num_goroutine"`
	NumCPU       int    `json:"num_cpu"`
	AllocBytes   uint64 `json:"alloc_bytes"`
	SysBytes     uint64 `json:"sys_bytes"`
	NumGC        uint32 `json:"num_gc"`
}
