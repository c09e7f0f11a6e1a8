package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
)

// AlertRepository implementa repositories.AlertRepository
type AlertRepository struct {
	db *gorm.DB
}

// NewAlertRepository cria um novo AlertRepository
func NewAlertRepository(db *gorm.DB) repositories.AlertRepository {
	return &AlertRepository{db: db}
}

func (r *AlertRepository) Create(ctx context.Context, alert *entities.Alert) error {
	if alert.ID == "" {
		alert.ID = uuid.NewString()
	}
	model := toAlertModel(alert)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	alert.CreatedAt = fromUnix(model.CreatedAt)
	alert.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *AlertRepository) FindByID(ctx context.Context, id string) (*entities.Alert, error) {
	var model AlertModel
	if err := dbFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toAlertEntity(&model), nil
}

func (r *AlertRepository) Update(ctx context.Context, alert *entities.Alert) error {
	model := toAlertModel(alert)
	if err := dbFromContext(ctx, r.db).Save(model).Error; err != nil {
		return err
	}
	alert.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *AlertRepository) Delete(ctx context.Context, id string) error {
	return dbFromContext(ctx, r.db).Where("id = ?", id).Delete(&AlertModel{}).Error
}

func (r *AlertRepository) ListActive(ctx context.Context, now time.Time) ([]*entities.Alert, error) {
	var models []*AlertModel
	err := dbFromContext(ctx, r.db).
		Where("is_archived = ? AND (expires_at IS NULL OR expires_at > ?)", false, now.Unix()).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	alerts := toAlertEntities(models)
	entities.SortAlerts(alerts)
	return alerts, nil
}

func (r *AlertRepository) ListArchived(ctx context.Context, p repositories.Pagination) ([]*entities.Alert, int64, error) {
	var models []*AlertModel

	query := dbFromContext(ctx, r.db).Model(&AlertModel{}).Where("is_archived = ?", true)
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(query, p).Order("archived_at DESC, created_at DESC").Find(&models).Error; err != nil {
		return nil, 0, err
	}
	return toAlertEntities(models), total, nil
}

func (r *AlertRepository) ListExpired(ctx context.Context, now time.Time) ([]*entities.Alert, error) {
	var models []*AlertModel
	err := dbFromContext(ctx, r.db).
		Where("is_archived = ? AND expires_at IS NOT NULL AND expires_at <= ?", false, now.Unix()).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toAlertEntities(models), nil
}

func toAlertModel(a *entities.Alert) *AlertModel {
	return &AlertModel{
		ID:         a.ID,
		Title:      a.Title,
		Message:    a.Message,
		Severity:   string(a.Severity),
		Category:   string(a.Category),
		ExpiresAt:  toUnixPtr(a.ExpiresAt),
		IsArchived: a.IsArchived,
		ArchivedAt: toUnixPtr(a.ArchivedAt),
		CreatedBy:  a.CreatedBy,
		CreatedAt:  toUnix(a.CreatedAt),
		UpdatedAt:  toUnix(a.UpdatedAt),
	}
}

func toAlertEntity(m *AlertModel) *entities.Alert {
	return &entities.Alert{
		ID:         m.ID,
		Title:      m.Title,
		Message:    m.Message,
		Severity:   entities.Severity(m.Severity),
		Category:   entities.AlertCategory(m.Category),
		ExpiresAt:  fromUnixPtr(m.ExpiresAt),
		IsArchived: m.IsArchived,
		ArchivedAt: fromUnixPtr(m.ArchivedAt),
		CreatedBy:  m.CreatedBy,
		CreatedAt:  fromUnix(m.CreatedAt),
		UpdatedAt:  fromUnix(m.UpdatedAt),
	}
}

func toAlertEntities(models []*AlertModel) []*entities.Alert {
	out := make([]*entities.Alert, len(models))
	for i, m := range models {
		out[i] = toAlertEntity(m)
	}
	return out
}
