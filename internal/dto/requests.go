package dto

// RegisterRequest тело POST /register/. Пароль принимается как "password"
// или "contraseña".
type RegisterRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	Contrasena       string `json:"contraseña"`
	AceptarPoliticas bool   `json:"aceptar_politicas"`
}

// PasswordValue возвращает переданный пароль.
func (r RegisterRequest) PasswordValue() string {
	if r.Password != "" {
		return r.Password
	}
	return r.Contrasena
}

type ActivateRequest struct {
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ListingRequest поля публикации; nil означает, что поле не передано.
type ListingRequest struct {
	Titulo      *string `json:"titulo"`
	Descripcion *string `json:"descripcion"`
	Habilidad   *int    `json:"habilidad"`
	Estado      *bool   `json:"estado"`
}

type CreateChatRequest struct {
	Publicacion *int64 `json:"publicacion"`
}

type SendMessageRequest struct {
	Chat  *int64 `json:"chat"`
	Texto string `json:"texto"`
}

type RateChatRequest struct {
	Chat       *int64  `json:"chat"`
	Puntaje    *int    `json:"puntaje"`
	Comentario *string `json:"comentario"`
}

type ProfileRequest struct {
	Nombre               *string `json:"nombre"`
	Biografia            *string `json:"biografia"`
	Foto                 *string `json:"foto"`
	HabilidadesOfrecidas *string `json:"habilidades_ofrecidas"`
	HabilidadesBuscadas  *string `json:"habilidades_buscadas"`
}

type ReportRequest struct {
	Publicacion *int64 `json:"publicacion"`
	Motivo      string `json:"motivo"`
}

type ModerateReportRequest struct {
	Accion string `json:"accion"`
}
