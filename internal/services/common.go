package services

import (
	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
)

// Page é um resultado paginado
type Page[T any] struct {
	Items    []T
	Total    int64
	Page     int
	PageSize int
}

func newPage[T any](items []T, total int64, p repositories.Pagination) Page[T] {
	n := p.Normalize()
	if items == nil {
		items = []T{}
	}
	return Page[T]{Items: items, Total: total, Page: n.Page, PageSize: n.PageSize}
}

// requireUser exige um usuário autenticado e não banido
func requireUser(actor *entities.User) error {
	if actor == nil {
		return errors.ErrUnauthorized
	}
	if actor.IsBanned {
		return errors.ErrUserBanned
	}
	return nil
}

// requirePermission exige um usuário autenticado com a permissão
func requirePermission(actor *entities.User, p entities.Permission) error {
	if err := requireUser(actor); err != nil {
		return err
	}
	if !actor.HasPermission(p) {
		return errors.ErrForbidden
	}
	return nil
}
