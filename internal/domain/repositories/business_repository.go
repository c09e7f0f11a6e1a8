package repositories

import (
	"context"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
)

// BusinessRepository define a interface para persistência do diretório
type BusinessRepository interface {
	Create(ctx context.Context, business *entities.Business) error
	FindByID(ctx context.Context, id string) (*entities.Business, error)
	FindBySlug(ctx context.Context, slug string, includeDeleted bool) (*entities.Business, error)
	Update(ctx context.Context, business *entities.Business) error
	// Upsert insere ou atualiza pelo slug (usado pelo seed)
	Upsert(ctx context.Context, business *entities.Business) error
	List(ctx context.Context, filters BusinessFilters) ([]*entities.Business, int64, error)
	// CountAll conta todos os registros, inclusive inativos e deletados
	CountAll(ctx context.Context) (int64, error)
}

// BusinessFilters contém filtros para listagem do diretório
type BusinessFilters struct {
	Category        string
	Search          string
	IncludeInactive bool
	Pagination
}
