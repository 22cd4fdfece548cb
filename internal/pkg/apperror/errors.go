package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeUnauthenticated   ErrorCode = "UNAUTHENTICATED"
	ErrCodeInvalidCredential ErrorCode = "INVALID_CREDENTIAL"
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeForbidden         ErrorCode = "FORBIDDEN"
	ErrCodeInvalidInput      ErrorCode = "INVALID_INPUT"
	ErrCodeInvalidOperation  ErrorCode = "INVALID_OPERATION"
	ErrCodeAlreadyExists     ErrorCode = "ALREADY_EXISTS"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is сравнивает по коду и сообщению, поэтому копии из WithStatus и Wrap
// совпадают с шаблонными ошибками ниже.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

// WithStatus возвращает копию ошибки с другим HTTP статусом.
func (e *AppError) WithStatus(status int) *AppError {
	cp := *e
	cp.HTTPStatus = status
	return &cp
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthenticated, ErrCodeInvalidCredential:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeInvalidInput, ErrCodeInvalidOperation, ErrCodeAlreadyExists:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CodeOf возвращает код ошибки или ErrCodeInternal для неизвестных ошибок.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrCodeInternal
}

// InternalMessage отдаётся клиенту вместо текста неизвестной ошибки.
const InternalMessage = "Error interno del servidor."

// Response возвращает HTTP статус и сообщение для клиента.
// Ошибки, не являющиеся AppError, маскируются как 500.
func Response(err error) (int, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.HTTPStatus, appErr.Message
	}
	return http.StatusInternalServerError, InternalMessage
}

func IsForbidden(err error) bool {
	return CodeOf(err) == ErrCodeForbidden
}

func IsInvalidInput(err error) bool {
	return CodeOf(err) == ErrCodeInvalidInput
}

var (
	ErrMissingCredential = New(ErrCodeUnauthenticated, "Falta API Key")
	ErrInvalidCredential = New(ErrCodeInvalidCredential, "API Key inválida")
	ErrNotModerator      = New(ErrCodeForbidden, "No tienes permisos de moderador")
	ErrBadCredentials    = New(ErrCodeInvalidCredential, "Credenciales inválidas")
	ErrAccountInactive   = New(ErrCodeInvalidCredential, "Cuenta no activada")

	ErrListingNotFound      = New(ErrCodeNotFound, "Publicación no encontrada.")
	ErrChatNotFound         = New(ErrCodeNotFound, "Chat no encontrado.")
	ErrNotificationNotFound = New(ErrCodeNotFound, "Notificación no encontrada.")
	ErrReportNotFound       = New(ErrCodeNotFound, "Reporte no encontrado.")
	ErrProfileNotFound      = New(ErrCodeNotFound, "Perfil no encontrado. Debe crearlo primero.")

	ErrSelfChat       = New(ErrCodeInvalidOperation, "No puedes iniciar un chat con tu propia publicación.")
	ErrNotParticipant = New(ErrCodeForbidden, "No eres participante de este chat.")
	ErrNotChatAuthor  = New(ErrCodeForbidden, "Solo el autor puede completar el intercambio.")
	ErrNotAuthorized  = New(ErrCodeForbidden, "No autorizado.")
	ErrAlreadyRated   = New(ErrCodeAlreadyExists, "Ya has calificado este chat.")
)
