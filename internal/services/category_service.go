package services

import (
	"context"
	"strings"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
)

// CategoryService administra as categorias de eventos, fórum e diretório
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	clock        ports.Clock
	logger       ports.Logger
}

// NewCategoryService cria um novo CategoryService
func NewCategoryService(categoryRepo repositories.CategoryRepository, clock ports.Clock, logger ports.Logger) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo, clock: clock, logger: logger}
}

// CategoryInput contém os dados de criação ou edição
type CategoryInput struct {
	Name        string
	Description string
	SortOrder   int
}

// List retorna as categorias do escopo; inativas só para quem administra o escopo
func (s *CategoryService) List(ctx context.Context, actor *entities.User, scope entities.CategoryScope, includeInactive bool) ([]*entities.Category, error) {
	if !scope.Valid() {
		return nil, errors.NewValidationError("scope", errors.MsgInvalid)
	}
	if includeInactive && !actor.HasPermission(scope.ManagePermission()) {
		includeInactive = false
	}
	return s.categoryRepo.List(ctx, scope, includeInactive)
}

// Create cria uma categoria; o slug deve ser único no escopo
func (s *CategoryService) Create(ctx context.Context, actor *entities.User, scope entities.CategoryScope, input CategoryInput) (*entities.Category, error) {
	if !scope.Valid() {
		return nil, errors.NewValidationError("scope", errors.MsgInvalid)
	}
	if err := requirePermission(actor, scope.ManagePermission()); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	category := &entities.Category{
		Scope:       scope,
		Name:        input.Name,
		Description: input.Description,
		SortOrder:   input.SortOrder,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	category.Normalize()
	if err := category.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.categoryRepo.FindBySlug(ctx, scope, category.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrCategoryExists
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	s.logger.Info("category created", "scope", scope, "slug", category.Slug, "by", actor.ID)
	return category, nil
}

// Update altera nome, descrição, ordem e estado ativo. O slug é mantido.
func (s *CategoryService) Update(ctx context.Context, actor *entities.User, id string, input CategoryInput, active *bool) (*entities.Category, error) {
	category, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requirePermission(actor, category.Scope.ManagePermission()); err != nil {
		return nil, err
	}

	category.Name = input.Name
	category.Description = input.Description
	category.SortOrder = input.SortOrder
	if active != nil {
		category.IsActive = *active
	}
	category.Normalize()
	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Deactivate esconde a categoria do público sem apagar o conteúdo ligado a ela
func (s *CategoryService) Deactivate(ctx context.Context, actor *entities.User, id string) error {
	category, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := requirePermission(actor, category.Scope.ManagePermission()); err != nil {
		return err
	}
	category.IsActive = false
	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return err
	}
	ports.Audit(s.logger).Info("category deactivated", "category_id", id, "by", actor.ID)
	return nil
}

// RequireActive garante que o slug aponta para uma categoria ativa do escopo
func (s *CategoryService) RequireActive(ctx context.Context, scope entities.CategoryScope, slug string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return errors.NewValidationError("category", errors.MsgRequired)
	}
	category, err := s.categoryRepo.FindBySlug(ctx, scope, slug)
	if err != nil {
		return err
	}
	if category == nil || !category.IsActive {
		return errors.NewValidationError("category", errors.MsgInvalid)
	}
	return nil
}

func (s *CategoryService) find(ctx context.Context, id string) (*entities.Category, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, errors.ErrCategoryNotFound
	}
	return category, nil
}
