package repositories

import (
	"context"
	"time"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
)

// AlertRepository define a interface para persistência de alertas
type AlertRepository interface {
	Create(ctx context.Context, alert *entities.Alert) error
	FindByID(ctx context.Context, id string) (*entities.Alert, error)
	Update(ctx context.Context, alert *entities.Alert) error
	Delete(ctx context.Context, id string) error
	// ListActive retorna alertas não arquivados e não expirados em now
	ListActive(ctx context.Context, now time.Time) ([]*entities.Alert, error)
	ListArchived(ctx context.Context, p Pagination) ([]*entities.Alert, int64, error)
	// ListExpired retorna alertas não arquivados cuja expiração já passou
	ListExpired(ctx context.Context, now time.Time) ([]*entities.Alert, error)
}
