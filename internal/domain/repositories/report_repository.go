package repositories

import (
	"context"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
)

// ReportRepository define a interface para persistência de denúncias
type ReportRepository interface {
	Create(ctx context.Context, report *entities.Report) error
	FindByID(ctx context.Context, id string) (*entities.Report, error)
	Update(ctx context.Context, report *entities.Report) error
	List(ctx context.Context, filters ReportFilters) ([]*entities.Report, int64, error)
	HasPending(ctx context.Context, reporterID string, target entities.ReportTarget, targetID string) (bool, error)
	CountByStatus(ctx context.Context, status entities.ReportStatus) (int64, error)
}

// ReportFilters contém filtros para listagem de denúncias
type ReportFilters struct {
	Status *entities.ReportStatus
	Pagination
}
