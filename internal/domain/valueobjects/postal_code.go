package valueobjects

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidPostalCode = errors.New("invalid postal code format")

	postalCodePattern = regexp.MustCompile(`^[ABCEGHJ-NPRSTVXY][0-9][ABCEGHJ-NPRSTV-Z][0-9][ABCEGHJ-NPRSTV-Z][0-9]$`)
)

// PostalCode é um código postal canadense normalizado (sem espaços, maiúsculo)
type PostalCode struct {
	value string
}

// NewPostalCode valida e normaliza um código postal ("v0r 1x0" -> "V0R1X0")
func NewPostalCode(code string) (PostalCode, error) {
	normalized := normalizePostalCode(code)
	if !postalCodePattern.MatchString(normalized) {
		return PostalCode{}, ErrInvalidPostalCode
	}
	return PostalCode{value: normalized}, nil
}

// String retorna o código no formato de exibição "A1A 1A1"
func (p PostalCode) String() string {
	if p.value == "" {
		return ""
	}
	return p.value[:3] + " " + p.value[3:]
}

// Compact retorna o código sem espaço
func (p PostalCode) Compact() string {
	return p.value
}

// IsZero indica ausência de código postal
func (p PostalCode) IsZero() bool {
	return p.value == ""
}

// MatchesAny verifica se o código começa com algum dos prefixos informados
func (p PostalCode) MatchesAny(prefixes []string) bool {
	if p.value == "" {
		return false
	}
	for _, prefix := range prefixes {
		prefix = normalizePostalCode(prefix)
		if prefix != "" && strings.HasPrefix(p.value, prefix) {
			return true
		}
	}
	return false
}

func normalizePostalCode(code string) string {
	code = strings.ToUpper(code)
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '\t' {
			return -1
		}
		return r
	}, code)
}
