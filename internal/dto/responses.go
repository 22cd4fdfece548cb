package dto

import "time"

// ErrorResponse единый формат ошибки.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// DetailResponse ответ без данных, только сообщение.
type DetailResponse struct {
	Detail string `json:"detail"`
}

type RegisterResponse struct {
	ID            int64     `json:"id_estudiante"`
	Email         string    `json:"email"`
	Token         string    `json:"token"`
	TokenExpiraEn time.Time `json:"fecha_expiracion"`
}

type LoginResponse struct {
	APIKey string `json:"api_key"`
}

type UnreadCountResponse struct {
	NoLeidas int `json:"no_leidas"`
}

type MarkAllReadResponse struct {
	Detail       string `json:"detail"`
	Actualizadas int64  `json:"actualizadas"`
}
