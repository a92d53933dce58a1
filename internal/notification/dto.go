// AngelaMos | 2026
// dto.go

package notification

import (
	"time"
)

type NotificationResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Kind      string    `json:"kind"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}

type ListParams struct {
	Page       int
	PageSize   int
	UnreadOnly bool
}

func (p *ListParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToNotificationResponse(n *Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Kind:      n.Kind,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}

func ToNotificationResponseList(
	notifications []Notification,
) []NotificationResponse {
	responses := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, ToNotificationResponse(&notifications[i]))
	}
	return responses
}
