package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	domainerrors "github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
)

// CategoryRepository implementa repositories.CategoryRepository
type CategoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository cria um novo CategoryRepository
func NewCategoryRepository(db *gorm.DB) repositories.CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *entities.Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	model := toCategoryModel(category)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return duplicateAs(err, domainerrors.ErrCategoryExists)
	}
	category.CreatedAt = fromUnix(model.CreatedAt)
	category.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*entities.Category, error) {
	var model CategoryModel
	if err := dbFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toCategoryEntity(&model), nil
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, scope entities.CategoryScope, slug string) (*entities.Category, error) {
	var model CategoryModel
	err := dbFromContext(ctx, r.db).
		Where("scope = ? AND slug = ?", string(scope), slug).
		First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toCategoryEntity(&model), nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *entities.Category) error {
	model := toCategoryModel(category)
	if err := dbFromContext(ctx, r.db).Save(model).Error; err != nil {
		return err
	}
	category.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *CategoryRepository) List(ctx context.Context, scope entities.CategoryScope, includeInactive bool) ([]*entities.Category, error) {
	var models []*CategoryModel

	query := dbFromContext(ctx, r.db).Where("scope = ?", string(scope))
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}
	if err := query.Order("sort_order ASC, name ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	out := make([]*entities.Category, len(models))
	for i, m := range models {
		out[i] = toCategoryEntity(m)
	}
	return out, nil
}

func toCategoryModel(c *entities.Category) *CategoryModel {
	return &CategoryModel{
		ID:          c.ID,
		Scope:       string(c.Scope),
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		SortOrder:   c.SortOrder,
		IsActive:    c.IsActive,
		CreatedAt:   toUnix(c.CreatedAt),
		UpdatedAt:   toUnix(c.UpdatedAt),
	}
}

func toCategoryEntity(m *CategoryModel) *entities.Category {
	return &entities.Category{
		ID:          m.ID,
		Scope:       entities.CategoryScope(m.Scope),
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		SortOrder:   m.SortOrder,
		IsActive:    m.IsActive,
		CreatedAt:   fromUnix(m.CreatedAt),
		UpdatedAt:   fromUnix(m.UpdatedAt),
	}
}
