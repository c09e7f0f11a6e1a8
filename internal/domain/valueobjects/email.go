package valueobjects

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidEmail = errors.New("invalid email format")

	emailPattern = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)
)

const maxEmailLength = 254

// Email é um endereço normalizado em minúsculas
type Email struct {
	value string
}

// NewEmail valida e normaliza um email (" Ann@Example.com" -> "ann@example.com")
func NewEmail(email string) (Email, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if len(email) > maxEmailLength || !emailPattern.MatchString(email) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: email}, nil
}

func (e Email) String() string {
	return e.value
}

// Domain retorna a parte após o @
func (e Email) Domain() string {
	_, domain, _ := strings.Cut(e.value, "@")
	return domain
}

// Masked esconde a parte local para uso em logs ("ann@x.ca" -> "a***@x.ca")
func (e Email) Masked() string {
	local, domain, found := strings.Cut(e.value, "@")
	if !found || local == "" {
		return ""
	}
	return local[:1] + "***@" + domain
}
