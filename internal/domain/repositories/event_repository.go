package repositories

import (
	"context"
	"time"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
)

// EventRepository define a interface para persistência de eventos
type EventRepository interface {
	Create(ctx context.Context, event *entities.Event) error
	FindByID(ctx context.Context, id string, includeDeleted bool) (*entities.Event, error)
	Update(ctx context.Context, event *entities.Event) error
	List(ctx context.Context, filters EventFilters) ([]*entities.Event, int64, error)
	CountByStatus(ctx context.Context, status entities.EventStatus) (int64, error)
}

// EventFilters contém filtros para listagem de eventos
type EventFilters struct {
	Status    *entities.EventStatus
	Category  string
	CreatedBy string
	// EndsAfter filtra eventos cujo fim (ou início, sem fim) é >= EndsAfter
	EndsAfter *time.Time
	// StartsBefore filtra eventos que começam antes de StartsBefore
	StartsBefore *time.Time
	Pagination
}
