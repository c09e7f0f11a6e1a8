package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	domainerrors "github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
	"github.com/gabriola-connects/portal-backend/internal/domain/valueobjects"
)

// UserRepository implementa repositories.UserRepository
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository cria um novo UserRepository
func NewUserRepository(db *gorm.DB) repositories.UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	model := r.toModel(user)

	db := r.getDB(ctx)
	if err := db.Create(model).Error; err != nil {
		return duplicateAs(err, domainerrors.ErrEmailAlreadyExists)
	}

	user.CreatedAt = fromUnix(model.CreatedAt)
	user.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*entities.User, error) {
	var model UserModel

	db := r.getDB(ctx)
	// Soft delete: ignorar registros deletados
	if err := db.Where("id = ? AND deleted_at IS NULL", id).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	var model UserModel

	db := r.getDB(ctx)
	// Soft delete: ignorar registros deletados
	if err := db.Where("email = ? AND deleted_at IS NULL", email).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model)
}

func (r *UserRepository) Update(ctx context.Context, user *entities.User) error {
	model := r.toModel(user)

	db := r.getDB(ctx)
	if err := db.Save(model).Error; err != nil {
		return err
	}
	user.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	db := r.getDB(ctx)
	// Soft delete: atualizar deleted_at ao invés de deletar
	now := time.Now().Unix()
	return db.Model(&UserModel{}).Where("id = ? AND deleted_at IS NULL", id).Update("deleted_at", now).Error
}

func (r *UserRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*entities.User, int64, error) {
	var models []*UserModel

	db := r.getDB(ctx)
	query := db.Model(&UserModel{})

	// Soft delete: ignorar registros deletados
	query = query.Where("deleted_at IS NULL")

	// Aplicar filtros
	if filters.Search != "" {
		pattern := likePattern(filters.Search)
		query = query.Where("(LOWER(email) LIKE ? ESCAPE '\\' OR LOWER(display_name) LIKE ? ESCAPE '\\')", pattern, pattern)
	}
	if filters.Banned != nil {
		query = query.Where("is_banned = ?", *filters.Banned)
	}
	if filters.Resident != nil {
		query = query.Where("is_resident = ?", *filters.Resident)
	}

	// Session permite reutilizar a query para count e busca
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := paginate(query, filters.Pagination).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, 0, err
	}

	users, err := r.toEntities(models)
	return users, total, err
}

func (r *UserRepository) Stats(ctx context.Context) (repositories.UserStats, error) {
	var stats repositories.UserStats
	db := r.getDB(ctx)

	base := func() *gorm.DB {
		return db.Model(&UserModel{}).Where("deleted_at IS NULL")
	}
	if err := base().Count(&stats.Total).Error; err != nil {
		return stats, err
	}
	if err := base().Where("is_resident = ?", true).Count(&stats.Residents).Error; err != nil {
		return stats, err
	}
	if err := base().Where("is_banned = ?", true).Count(&stats.Banned).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

// getDB extrai DB do contexto (para suportar transações)
func (r *UserRepository) getDB(ctx context.Context) *gorm.DB {
	return dbFromContext(ctx, r.db)
}

// Conversores
func (r *UserRepository) toModel(user *entities.User) *UserModel {
	return &UserModel{
		ID:                 user.ID,
		Email:              user.Email.String(),
		DisplayName:        user.DisplayName,
		PasswordHash:       user.PasswordHash,
		PostalCode:         user.PostalCode.Compact(),
		IsResident:         user.IsResident,
		ResidentVerifiedAt: toUnixPtr(user.ResidentVerifiedAt),
		IsSuperAdmin:       user.IsSuperAdmin,
		AdminEvents:        user.AdminEvents,
		ForumModerator:     user.ForumModerator,
		AdminAlerts:        user.AdminAlerts,
		AdminDirectory:     user.AdminDirectory,
		IsBanned:           user.IsBanned,
		BannedAt:           toUnixPtr(user.BannedAt),
		BanReason:          user.BanReason,
		AvatarURL:          user.AvatarURL,
		CreatedAt:          toUnix(user.CreatedAt),
		UpdatedAt:          toUnix(user.UpdatedAt),
		DeletedAt:          toUnixPtr(user.DeletedAt),
	}
}

func (r *UserRepository) toEntity(model *UserModel) (*entities.User, error) {
	email, err := valueobjects.NewEmail(model.Email)
	if err != nil {
		return nil, err
	}

	var postalCode valueobjects.PostalCode
	if model.PostalCode != "" {
		if postalCode, err = valueobjects.NewPostalCode(model.PostalCode); err != nil {
			return nil, err
		}
	}

	return &entities.User{
		ID:                 model.ID,
		Email:              email,
		DisplayName:        model.DisplayName,
		PasswordHash:       model.PasswordHash,
		PostalCode:         postalCode,
		IsResident:         model.IsResident,
		ResidentVerifiedAt: fromUnixPtr(model.ResidentVerifiedAt),
		Flags: entities.Flags{
			IsSuperAdmin:   model.IsSuperAdmin,
			AdminEvents:    model.AdminEvents,
			ForumModerator: model.ForumModerator,
			AdminAlerts:    model.AdminAlerts,
			AdminDirectory: model.AdminDirectory,
		},
		IsBanned:  model.IsBanned,
		BannedAt:  fromUnixPtr(model.BannedAt),
		BanReason: model.BanReason,
		AvatarURL: model.AvatarURL,
		CreatedAt: fromUnix(model.CreatedAt),
		UpdatedAt: fromUnix(model.UpdatedAt),
		DeletedAt: fromUnixPtr(model.DeletedAt),
	}, nil
}

func (r *UserRepository) toEntities(models []*UserModel) ([]*entities.User, error) {
	entities := make([]*entities.User, 0, len(models))

	for _, model := range models {
		entity, err := r.toEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}

	return entities, nil
}
