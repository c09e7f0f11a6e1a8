package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	domainerrors "github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/valueobjects"
)

// CategoryScope indica a qual funcionalidade a categoria pertence
type CategoryScope string

const (
	ScopeEvents    CategoryScope = "events"
	ScopeForum     CategoryScope = "forum"
	ScopeDirectory CategoryScope = "directory"
)

// Valid verifica se o escopo é conhecido
func (s CategoryScope) Valid() bool {
	switch s {
	case ScopeEvents, ScopeForum, ScopeDirectory:
		return true
	}
	return false
}

// ManagePermission retorna a permissão exigida para administrar categorias do escopo
func (s CategoryScope) ManagePermission() Permission {
	switch s {
	case ScopeEvents:
		return PermissionEventsManage
	case ScopeForum:
		return PermissionForumModerate
	case ScopeDirectory:
		return PermissionDirectoryManage
	}
	return PermissionUsersManage
}

// Category agrupa eventos, tópicos do fórum ou negócios
type Category struct {
	ID          string
	Scope       CategoryScope
	Name        string
	Slug        string
	Description string
	SortOrder   int
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Normalize ajusta espaços e deriva o slug do nome quando ausente.
// O slug nunca muda depois de criado: eventos, tópicos e negócios o referenciam.
func (c *Category) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Description = strings.TrimSpace(c.Description)
	if c.Slug == "" {
		c.Slug = valueobjects.Slugify(c.Name)
	}
}

// Validate valida regras de negócio da entidade Category
func (c *Category) Validate() error {
	if !c.Scope.Valid() {
		return domainerrors.NewValidationError("scope", domainerrors.MsgInvalid)
	}
	if c.Name == "" {
		return domainerrors.NewValidationError("name", domainerrors.MsgRequired)
	}
	if utf8.RuneCountInString(c.Name) > 80 {
		return domainerrors.NewValidationError("name", domainerrors.MsgTooLong)
	}
	if c.Slug == "" {
		return domainerrors.NewValidationError("name", domainerrors.MsgInvalid)
	}
	return nil
}
