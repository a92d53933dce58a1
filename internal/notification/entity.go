// AngelaMos | 2026
// entity.go

package notification

import (
	"time"
)

type Notification struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	Kind      string    `db:"kind"`
	IsRead    bool      `db:"is_read"`
	CreatedAt time.Time `db:"created_at"`
}

const (
	KindInfo    = "info"
	KindSuccess = "success"
	KindWarning = "warning"
	KindError   = "error"
)

func ValidKind(kind string) bool {
	switch kind {
	case KindInfo, KindSuccess, KindWarning, KindError:
		return true
	}
	return false
}
