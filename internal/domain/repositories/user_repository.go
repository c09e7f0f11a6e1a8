package repositories

import (
	"context"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
)

// UserRepository define a interface para persistência de usuários
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	FindByID(ctx context.Context, id string) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters UserFilters) ([]*entities.User, int64, error)
	Stats(ctx context.Context) (UserStats, error)
}

// UserFilters contém filtros para listagem de usuários
type UserFilters struct {
	Search   string
	Banned   *bool
	Resident *bool
	Pagination
}

// UserStats agrega contagens para o painel administrativo
type UserStats struct {
	Total     int64
	Residents int64
	Banned    int64
}
