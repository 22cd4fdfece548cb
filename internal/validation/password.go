package validation

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// MinPasswordLength минимальная длина пароля.
const MinPasswordLength = 8

// ValidatePassword проверяет пароль студента.
// Требования:
// - Минимум 8 символов
// - Хотя бы одна заглавная буква
// - Хотя бы одна цифра
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return errWeakPassword
	}

	var (
		hasUpper  = false
		hasNumber = false
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsDigit(char):
			hasNumber = true
		}
	}

	if !hasUpper || !hasNumber {
		return errWeakPassword
	}

	return nil
}

var errWeakPassword = fmt.Errorf("La contraseña debe tener al menos %d caracteres, una mayúscula y un número.", MinPasswordLength)
