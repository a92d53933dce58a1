// AngelaMos | 2026
// handler.go

package notification

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
	r.Route("/notifications", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Get("/unread-count", h.UnreadCount)
		r.Patch("/read-all", h.MarkAllRead)
		r.Patch("/{notificationID}/read", h.MarkRead)
		r.Delete("/{notificationID}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	params := ListParams{
		Page:       queryInt(r, "page", 1),
		PageSize:   queryInt(r, "limit", 20),
		UnreadOnly: r.URL.Query().Get("unread") == "true",
	}
	params.Normalize()

	notifications, total, err := h.service.List(r.Context(), userID, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToNotificationResponseList(notifications),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	count, err := h.service.UnreadCount(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, UnreadCountResponse{Count: count})
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	notificationID := chi.URLParam(r, "notificationID")

	err := h.service.MarkRead(r.Context(), notificationID, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "notification")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Message(w, "notification marked as read")
}

func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	if _, err := h.service.MarkAllRead(r.Context(), userID); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Message(w, "all notifications marked as read")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	notificationID := chi.URLParam(r, "notificationID")

	err := h.service.Delete(r.Context(), notificationID, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "notification")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Message(w, "notification deleted")
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
