package models

import "time"

// Listing описывает публикацию с предложением навыка.
type Listing struct {
	ID          int64     `db:"id" json:"id_publicacion"`
	Title       string    `db:"title" json:"titulo"`
	Description string    `db:"description" json:"descripcion"`
	Skill       int       `db:"skill" json:"habilidad"`
	CreatedAt   time.Time `db:"created_at" json:"fecha_creacion"`
	Active      bool      `db:"active" json:"estado"`
	StudentID   int64     `db:"student_id" json:"estudiante"`
}
