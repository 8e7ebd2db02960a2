package notificationapimodels

import (
	"time"

	apimodels "event-tracker-backend/models/api"
	dbmodels "event-tracker-backend/models/db"
)

type NotificationFilter struct {
	apimodels.Pagination
	UnreadOnly bool `json:"unread_only"` // только непрочитанные
}

type NotificationView struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Url       string    `json:"url,omitempty"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

func NotificationConvert(rec dbmodels.Notification) NotificationView {
	return NotificationView{
		ID:        rec.ID,
		Message:   rec.Message,
		Url:       rec.Url,
		IsRead:    rec.IsRead,
		CreatedAt: rec.CreatedAt,
	}
}

type NotificationListView struct {
	Items       []NotificationView `json:"items"`
	UnreadCount int64              `json:"unread_count"`
}
