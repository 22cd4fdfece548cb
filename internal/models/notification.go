package models

import "time"

// NotificationType — закрытый набор типов уведомлений.
type NotificationType string

const (
	NotificationNewChat           NotificationType = "nuevo_chat"
	NotificationNewMessage        NotificationType = "nuevo_mensaje"
	NotificationExchangeCompleted NotificationType = "intercambio_completado"
	NotificationRatingReceived    NotificationType = "calificacion_recibida"
)

// Valid проверяет, что тип входит в известный набор.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationNewChat, NotificationNewMessage, NotificationExchangeCompleted, NotificationRatingReceived:
		return true
	}
	return false
}

// Notification описывает событие, адресованное одному студенту.
type Notification struct {
	ID        int64            `db:"id" json:"id_notificacion"`
	StudentID int64            `db:"student_id" json:"estudiante"`
	Type      NotificationType `db:"type" json:"tipo"`
	Message   string           `db:"message" json:"mensaje"`
	ChatID    *int64           `db:"chat_id" json:"chat"`
	ListingID *int64           `db:"listing_id" json:"publicacion"`
	RatingID  *int64           `db:"rating_id" json:"calificacion"`
	Read      bool             `db:"read" json:"leida"`
	CreatedAt time.Time        `db:"created_at" json:"fecha"`
}
