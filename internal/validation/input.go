package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	InstitutionalDomain  = "@inacap.cl"
	MaxListingTitle      = 200
	MaxProfileNameLength = 100
	MaxReportReason      = 2000
	MaxMessageLength     = 5000
	MaxPhotoURLLength    = 500
)

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s debe tener al menos %d caracteres.", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s no puede superar %d caracteres.", fieldName, max)
	}
	return nil
}

// ValidateInstitutionalEmail допускает только адреса учебного заведения.
func ValidateInstitutionalEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return errors.New("email es requerido.")
	}

	local, found := strings.CutSuffix(strings.ToLower(email), InstitutionalDomain)
	if !found || local == "" || strings.Contains(local, "@") {
		return errors.New("Debe usar un correo institucional válido.")
	}

	return nil
}

// ValidateRequired проверяет, что строка не пустая.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s es requerido.", fieldName)
	}
	return nil
}

// ValidateListingTitle проверяет заголовок публикации.
func ValidateListingTitle(title string) error {
	if err := ValidateRequired("titulo", title); err != nil {
		return err
	}
	return ValidateLength("titulo", title, 0, MaxListingTitle)
}

// ValidateMessageText проверяет текст сообщения.
func ValidateMessageText(text string) error {
	if err := ValidateRequired("texto", text); err != nil {
		return err
	}
	return ValidateLength("texto", text, 0, MaxMessageLength)
}

// ValidateProfileName проверяет имя в профиле.
func ValidateProfileName(name string) error {
	return ValidateLength("nombre", name, 0, MaxProfileNameLength)
}

// ValidatePhotoURL проверяет ссылку на фото профиля.
func ValidatePhotoURL(link *string) error {
	if link == nil || *link == "" {
		return nil
	}

	if err := ValidateLength("foto", *link, 0, MaxPhotoURLLength); err != nil {
		return err
	}

	u, err := url.ParseRequestURI(*link)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("foto debe ser una URL válida.")
	}

	return nil
}

// ValidateReportReason проверяет текст жалобы.
func ValidateReportReason(reason string) error {
	if err := ValidateRequired("motivo", reason); err != nil {
		return err
	}
	return ValidateLength("motivo", reason, 0, MaxReportReason)
}
