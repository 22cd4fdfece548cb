package models

import "time"

// Student описывает студента платформы. APIKey — непрозрачный ключ доступа,
// передаётся в заголовке X-API-Key.
type Student struct {
	ID           int64     `db:"id" json:"id_estudiante"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Verified     bool      `db:"verified" json:"verificado"`
	APIKey       string    `db:"api_key" json:"-"`
	IsAdmin      bool      `db:"is_admin" json:"es_admin"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}

// Administrator описывает модератора. Отдельная сущность со своим
// пространством ключей, не связана со Student.
type Administrator struct {
	ID           int64     `db:"id" json:"id_administrador"`
	Name         string    `db:"name" json:"nombre"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	APIKey       string    `db:"api_key" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"-"`
}

// VerificationToken подтверждает email нового студента.
type VerificationToken struct {
	ID        int64     `db:"id" json:"-"`
	Token     string    `db:"token" json:"token"`
	StudentID int64     `db:"student_id" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"fecha_expiracion"`
}

// Profile описывает публичный профиль студента.
type Profile struct {
	ID            int64   `db:"id" json:"id_perfil"`
	StudentID     int64   `db:"student_id" json:"-"`
	Name          string  `db:"name" json:"nombre"`
	Bio           *string `db:"bio" json:"biografia"`
	PhotoURL      *string `db:"photo_url" json:"foto"`
	SkillsOffered *string `db:"skills_offered" json:"habilidades_ofrecidas"`
	SkillsWanted  *string `db:"skills_wanted" json:"habilidades_buscadas"`
}

// DefaultProfileName используется, если имя в профиле не задано.
const DefaultProfileName = "Sin nombre"
