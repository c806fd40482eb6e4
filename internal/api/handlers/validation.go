package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/juice-reservations/internal/domain"
)

// ValidationError ошибка проверки входных данных, Message показывается клиенту
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// RespondValidation отвечает 400 с сообщением ValidationError (или общим сообщением)
func RespondValidation(w http.ResponseWriter, err error, fallback string) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		RespondBadRequest(w, verr.Message)
		return
	}
	RespondBadRequest(w, fallback)
}

var phonePattern = regexp.MustCompile(`^[\d\s\-\+\(\)]+$`)

// Contact контактные данные бронирования, общие для создания и изменения
type Contact struct {
	FirstName string
	LastName  string
	Phone     string
	Quantity  int
	Comment   *string
}

// Normalize обрезает пробелы, пустой комментарий превращает в nil и проверяет ограничения
func (c *Contact) Normalize() error {
	c.FirstName = strings.TrimSpace(c.FirstName)
	c.LastName = strings.TrimSpace(c.LastName)
	c.Phone = strings.TrimSpace(c.Phone)

	if err := CheckLength("firstName", "le prénom", c.FirstName, 1, domain.MaxNameLength); err != nil {
		return err
	}
	if err := CheckLength("lastName", "le nom", c.LastName, 1, domain.MaxNameLength); err != nil {
		return err
	}

	if n := utf8.RuneCountInString(c.Phone); n < domain.MinPhoneLength || n > domain.MaxPhoneLength || !phonePattern.MatchString(c.Phone) {
		return &ValidationError{Field: "phone", Message: fmt.Sprintf(
			"le numéro de téléphone doit contenir de %d à %d chiffres, espaces ou signes + - ( )",
			domain.MinPhoneLength, domain.MaxPhoneLength)}
	}

	if c.Quantity < domain.MinQuantity || c.Quantity > domain.MaxQuantity {
		return &ValidationError{Field: "quantity", Message: fmt.Sprintf(
			"la quantité doit être comprise entre %d et %d", domain.MinQuantity, domain.MaxQuantity)}
	}

	comment, err := NormalizeComment(c.Comment)
	if err != nil {
		return err
	}
	c.Comment = comment
	return nil
}

// NormalizeComment пустой комментарий = nil
func NormalizeComment(comment *string) (*string, error) {
	if comment == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*comment)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > domain.MaxCommentLength {
		return nil, &ValidationError{Field: "comment", Message: fmt.Sprintf(
			"le commentaire ne peut pas dépasser %d caractères", domain.MaxCommentLength)}
	}
	return &trimmed, nil
}

// NormalizeEmail необязательный адрес для подтверждения: пустой = nil
func NormalizeEmail(email *string) (*string, error) {
	if email == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*email)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > domain.MaxEmailLength {
		return nil, &ValidationError{Field: "email", Message: fmt.Sprintf(
			"l'adresse e-mail ne peut pas dépasser %d caractères", domain.MaxEmailLength)}
	}
	addr, err := mail.ParseAddress(trimmed)
	if err != nil || addr.Address != trimmed {
		return nil, &ValidationError{Field: "email", Message: "adresse e-mail invalide"}
	}
	return &trimmed, nil
}

// ParseDate разбирает дату YYYY-MM-DD в зоне loc
func ParseDate(field, value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateFormat, strings.TrimSpace(value), loc)
	if err != nil {
		return time.Time{}, &ValidationError{Field: field, Message: "date invalide, format attendu AAAA-MM-JJ"}
	}
	return t, nil
}

// ParseOptionalDate пустая строка = фильтр не задан
func ParseOptionalDate(field, value string, loc *time.Location) (*string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if _, err := ParseDate(field, value, loc); err != nil {
		return nil, err
	}
	return &value, nil
}

// CheckLength проверяет длину строки в символах
func CheckLength(field, label, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		return &ValidationError{Field: field, Message: fmt.Sprintf(
			"%s doit contenir de %d à %d caractères", label, min, max)}
	}
	return nil
}
