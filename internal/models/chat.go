package models

import "time"

// Роли участников чата.
const (
	RoleAuthor   = "autor"
	RoleReceiver = "receptor"
)

// Chat описывает переписку по обмену, привязан к публикации.
type Chat struct {
	ID        int64     `db:"id" json:"id_chat"`
	ListingID int64     `db:"listing_id" json:"publicacion"`
	StartedAt time.Time `db:"started_at" json:"fecha_inicio"`
	Completed bool      `db:"completed" json:"estado_intercambio"`
}

// ChatParticipant связывает студента с чатом и его ролью.
type ChatParticipant struct {
	ID        int64  `db:"id" json:"id"`
	ChatID    int64  `db:"chat_id" json:"chat"`
	StudentID int64  `db:"student_id" json:"estudiante"`
	Role      string `db:"role" json:"rol"`
	Rated     bool   `db:"rated" json:"calificado"`
}

// Message описывает сообщение в чате. Read никогда не меняется.
type Message struct {
	ID        int64     `db:"id" json:"id_mensaje"`
	Text      string    `db:"text" json:"texto"`
	SentAt    time.Time `db:"sent_at" json:"fecha"`
	ChatID    int64     `db:"chat_id" json:"chat"`
	StudentID int64     `db:"student_id" json:"estudiante"`
	Read      bool      `db:"read" json:"leido"`
}

// Rating описывает оценку обмена одним из участников.
type Rating struct {
	ID          int64     `db:"id" json:"id_calificacion"`
	ChatID      int64     `db:"chat_id" json:"chat"`
	EvaluatorID int64     `db:"evaluator_id" json:"evaluador"`
	Score       int       `db:"score" json:"puntaje"`
	Comment     *string   `db:"comment" json:"comentario"`
	CreatedAt   time.Time `db:"created_at" json:"fecha"`
}

// Границы оценки.
const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// ChatDetail — полное представление чата с участниками и сообщениями.
type ChatDetail struct {
	Chat
	Participants []ChatParticipant `json:"participantes"`
	Messages     []Message         `json:"mensajes"`
}

// Participant возвращает участника чата по studentID.
func (d *ChatDetail) Participant(studentID int64) (ChatParticipant, bool) {
	for _, p := range d.Participants {
		if p.StudentID == studentID {
			return p, true
		}
	}
	return ChatParticipant{}, false
}
