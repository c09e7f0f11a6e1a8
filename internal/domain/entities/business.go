package entities

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	domainerrors "github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/valueobjects"
)

// Business representa um negócio do diretório local
type Business struct {
	ID          string
	Name        string
	Slug        string
	Category    string
	Description string
	Address     string
	Phone       string
	Email       string
	Website     string
	Hours       string
	IsActive    bool
	IsFeatured  bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time // Soft delete
}

// Normalize ajusta espaços e deriva o slug quando ausente
func (b *Business) Normalize() {
	b.Name = strings.TrimSpace(b.Name)
	b.Description = strings.TrimSpace(b.Description)
	if b.Slug == "" {
		b.Slug = valueobjects.Slugify(b.Name)
	}
}

// IsDeleted verifica se o negócio foi removido do diretório
func (b *Business) IsDeleted() bool {
	return b.DeletedAt != nil
}

// Matches verifica se o negócio atende aos filtros de categoria e busca
func (b *Business) Matches(category, search string) bool {
	if category != "" && b.Category != category {
		return false
	}
	search = strings.ToLower(strings.TrimSpace(search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Name), search) ||
		strings.Contains(strings.ToLower(b.Description), search)
}

// SortBusinesses ordena destaques primeiro e depois por nome
func SortBusinesses(list []*Business) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].IsFeatured != list[j].IsFeatured {
			return list[i].IsFeatured
		}
		return strings.ToLower(list[i].Name) < strings.ToLower(list[j].Name)
	})
}

// Validate valida regras de negócio da entidade Business
func (b *Business) Validate() error {
	if b.Name == "" {
		return domainerrors.NewValidationError("name", domainerrors.MsgRequired)
	}
	if utf8.RuneCountInString(b.Name) > 120 {
		return domainerrors.NewValidationError("name", domainerrors.MsgTooLong)
	}
	if b.Slug == "" {
		return domainerrors.NewValidationError("name", domainerrors.MsgInvalid)
	}
	if b.Category == "" {
		return domainerrors.NewValidationError("category", domainerrors.MsgRequired)
	}
	if b.Email != "" {
		if _, err := valueobjects.NewEmail(b.Email); err != nil {
			return domainerrors.NewValidationError("email", domainerrors.MsgInvalid)
		}
	}
	return nil
}
