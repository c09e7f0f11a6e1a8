package repositories

import (
	"context"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
)

// CategoryRepository define a interface para persistência de categorias
type CategoryRepository interface {
	Create(ctx context.Context, category *entities.Category) error
	FindByID(ctx context.Context, id string) (*entities.Category, error)
	FindBySlug(ctx context.Context, scope entities.CategoryScope, slug string) (*entities.Category, error)
	Update(ctx context.Context, category *entities.Category) error
	List(ctx context.Context, scope entities.CategoryScope, includeInactive bool) ([]*entities.Category, error)
}
