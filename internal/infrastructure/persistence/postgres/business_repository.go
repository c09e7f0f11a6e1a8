package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	domainerrors "github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
)

// BusinessRepository implementa repositories.BusinessRepository
type BusinessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository cria um novo BusinessRepository
func NewBusinessRepository(db *gorm.DB) repositories.BusinessRepository {
	return &BusinessRepository{db: db}
}

func (r *BusinessRepository) Create(ctx context.Context, business *entities.Business) error {
	if business.ID == "" {
		business.ID = uuid.NewString()
	}
	model := toBusinessModel(business)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return duplicateAs(err, domainerrors.ErrBusinessExists)
	}
	business.CreatedAt = fromUnix(model.CreatedAt)
	business.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *BusinessRepository) FindByID(ctx context.Context, id string) (*entities.Business, error) {
	var model BusinessModel
	if err := dbFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toBusinessEntity(&model), nil
}

func (r *BusinessRepository) FindBySlug(ctx context.Context, slug string, includeDeleted bool) (*entities.Business, error) {
	var model BusinessModel

	query := dbFromContext(ctx, r.db).Where("slug = ?", slug)
	if !includeDeleted {
		query = query.Where("deleted_at IS NULL")
	}
	if err := query.First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toBusinessEntity(&model), nil
}

func (r *BusinessRepository) Update(ctx context.Context, business *entities.Business) error {
	model := toBusinessModel(business)
	if err := dbFromContext(ctx, r.db).Save(model).Error; err != nil {
		return err
	}
	business.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *BusinessRepository) Upsert(ctx context.Context, business *entities.Business) error {
	existing, err := r.FindBySlug(ctx, business.Slug, true)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.Create(ctx, business)
	}
	business.ID = existing.ID
	business.CreatedAt = existing.CreatedAt
	return r.Update(ctx, business)
}

func (r *BusinessRepository) List(ctx context.Context, filters repositories.BusinessFilters) ([]*entities.Business, int64, error) {
	var models []*BusinessModel

	query := dbFromContext(ctx, r.db).Model(&BusinessModel{})
	if !filters.IncludeInactive {
		query = query.Where("deleted_at IS NULL AND is_active = ?", true)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.Search != "" {
		pattern := likePattern(filters.Search)
		query = query.Where("(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')", pattern, pattern)
	}

	// Session permite reutilizar a query para count e busca
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := paginate(query, filters.Pagination).
		Order("is_featured DESC, LOWER(name) ASC").
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]*entities.Business, len(models))
	for i, m := range models {
		out[i] = toBusinessEntity(m)
	}
	return out, total, nil
}

func (r *BusinessRepository) CountAll(ctx context.Context) (int64, error) {
	var total int64
	err := dbFromContext(ctx, r.db).Model(&BusinessModel{}).Count(&total).Error
	return total, err
}

func toBusinessModel(b *entities.Business) *BusinessModel {
	return &BusinessModel{
		ID:          b.ID,
		Name:        b.Name,
		Slug:        b.Slug,
		Category:    b.Category,
		Description: b.Description,
		Address:     b.Address,
		Phone:       b.Phone,
		Email:       b.Email,
		Website:     b.Website,
		Hours:       b.Hours,
		IsActive:    b.IsActive,
		IsFeatured:  b.IsFeatured,
		CreatedAt:   toUnix(b.CreatedAt),
		UpdatedAt:   toUnix(b.UpdatedAt),
		DeletedAt:   toUnixPtr(b.DeletedAt),
	}
}

func toBusinessEntity(m *BusinessModel) *entities.Business {
	return &entities.Business{
		ID:          m.ID,
		Name:        m.Name,
		Slug:        m.Slug,
		Category:    m.Category,
		Description: m.Description,
		Address:     m.Address,
		Phone:       m.Phone,
		Email:       m.Email,
		Website:     m.Website,
		Hours:       m.Hours,
		IsActive:    m.IsActive,
		IsFeatured:  m.IsFeatured,
		CreatedAt:   fromUnix(m.CreatedAt),
		UpdatedAt:   fromUnix(m.UpdatedAt),
		DeletedAt:   fromUnixPtr(m.DeletedAt),
	}
}
