package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
)

// EventRepository implementa repositories.EventRepository
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository cria um novo EventRepository
func NewEventRepository(db *gorm.DB) repositories.EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, event *entities.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	model := toEventModel(event)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	event.CreatedAt = fromUnix(model.CreatedAt)
	event.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string, includeDeleted bool) (*entities.Event, error) {
	var model EventModel

	query := dbFromContext(ctx, r.db).Where("id = ?", id)
	if !includeDeleted {
		query = query.Where("deleted_at IS NULL")
	}
	if err := query.First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toEventEntity(&model), nil
}

func (r *EventRepository) Update(ctx context.Context, event *entities.Event) error {
	model := toEventModel(event)
	if err := dbFromContext(ctx, r.db).Save(model).Error; err != nil {
		return err
	}
	event.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *EventRepository) List(ctx context.Context, filters repositories.EventFilters) ([]*entities.Event, int64, error) {
	var models []*EventModel

	query := dbFromContext(ctx, r.db).Model(&EventModel{}).Where("deleted_at IS NULL")

	if filters.Status != nil {
		query = query.Where("status = ?", string(*filters.Status))
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.CreatedBy != "" {
		query = query.Where("created_by = ?", filters.CreatedBy)
	}
	if filters.EndsAfter != nil {
		query = query.Where("COALESCE(end_at, start_at) >= ?", filters.EndsAfter.Unix())
	}
	if filters.StartsBefore != nil {
		query = query.Where("start_at < ?", filters.StartsBefore.Unix())
	}

	// Session permite reutilizar a query para count e busca
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(query, filters.Pagination).Order("start_at ASC, id ASC").Find(&models).Error; err != nil {
		return nil, 0, err
	}

	out := make([]*entities.Event, len(models))
	for i, m := range models {
		out[i] = toEventEntity(m)
	}
	return out, total, nil
}

func (r *EventRepository) CountByStatus(ctx context.Context, status entities.EventStatus) (int64, error) {
	var total int64
	err := dbFromContext(ctx, r.db).Model(&EventModel{}).
		Where("deleted_at IS NULL AND status = ?", string(status)).
		Count(&total).Error
	return total, err
}

func toEventModel(e *entities.Event) *EventModel {
	return &EventModel{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Category:        e.Category,
		Venue:           e.Venue,
		StartAt:         toUnix(e.StartAt),
		EndAt:           toUnixPtr(e.EndAt),
		Organizer:       e.Organizer,
		ContactEmail:    e.ContactEmail,
		URL:             e.URL,
		ImageURL:        e.ImageURL,
		Status:          string(e.Status),
		RejectionReason: e.RejectionReason,
		ReviewedBy:      e.ReviewedBy,
		ReviewedAt:      toUnixPtr(e.ReviewedAt),
		CreatedBy:       e.CreatedBy,
		CreatedAt:       toUnix(e.CreatedAt),
		UpdatedAt:       toUnix(e.UpdatedAt),
		DeletedAt:       toUnixPtr(e.DeletedAt),
	}
}

func toEventEntity(m *EventModel) *entities.Event {
	return &entities.Event{
		ID:              m.ID,
		Title:           m.Title,
		Description:     m.Description,
		Category:        m.Category,
		Venue:           m.Venue,
		StartAt:         fromUnix(m.StartAt),
		EndAt:           fromUnixPtr(m.EndAt),
		Organizer:       m.Organizer,
		ContactEmail:    m.ContactEmail,
		URL:             m.URL,
		ImageURL:        m.ImageURL,
		Status:          entities.EventStatus(m.Status),
		RejectionReason: m.RejectionReason,
		ReviewedBy:      m.ReviewedBy,
		ReviewedAt:      fromUnixPtr(m.ReviewedAt),
		CreatedBy:       m.CreatedBy,
		CreatedAt:       fromUnix(m.CreatedAt),
		UpdatedAt:       fromUnix(m.UpdatedAt),
		DeletedAt:       fromUnixPtr(m.DeletedAt),
	}
}
