package services

import (
	"context"
	"strings"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
)

// DirectoryService contém as regras do diretório de negócios locais
type DirectoryService struct {
	businessRepo repositories.BusinessRepository
	categories   *CategoryService
	fallback     []*entities.Business
	clock        ports.Clock
	logger       ports.Logger
}

// NewDirectoryService cria um novo DirectoryService. fallback são as listagens
// estáticas exibidas enquanto o banco não tem nenhum negócio.
func NewDirectoryService(
	businessRepo repositories.BusinessRepository,
	categories *CategoryService,
	fallback []*entities.Business,
	clock ports.Clock,
	logger ports.Logger,
) *DirectoryService {
	return &DirectoryService{
		businessRepo: businessRepo,
		categories:   categories,
		fallback:     fallback,
		clock:        clock,
		logger:       logger,
	}
}

// BusinessInput contém os dados de um negócio
type BusinessInput struct {
	Name        string
	Category    string
	Description string
	Address     string
	Phone       string
	Email       string
	Website     string
	Hours       string
	IsFeatured  bool
}

// DirectoryQuery filtra a listagem do diretório
type DirectoryQuery struct {
	Category string
	Search   string
	repositories.Pagination
}

// List lista negócios ativos: destaques primeiro, depois por nome
func (s *DirectoryService) List(ctx context.Context, query DirectoryQuery) (Page[*entities.Business], error) {
	stored, err := s.businessRepo.CountAll(ctx)
	if err != nil {
		return Page[*entities.Business]{}, err
	}
	category := strings.TrimSpace(query.Category)
	if stored == 0 {
		return s.listFallback(category, query.Search, query.Pagination), nil
	}

	filters := repositories.BusinessFilters{
		Category:   category,
		Search:     query.Search,
		Pagination: query.Pagination,
	}
	list, total, err := s.businessRepo.List(ctx, filters)
	if err != nil {
		return Page[*entities.Business]{}, err
	}
	return newPage(list, total, query.Pagination), nil
}

// listFallback aplica os mesmos filtros em memória sobre as listagens estáticas
func (s *DirectoryService) listFallback(category, search string, p repositories.Pagination) Page[*entities.Business] {
	matched := make([]*entities.Business, 0, len(s.fallback))
	for _, b := range s.fallback {
		if b.IsActive && b.Matches(category, search) {
			matched = append(matched, b)
		}
	}
	entities.SortBusinesses(matched)

	total := int64(len(matched))
	offset := p.Offset()
	if offset > len(matched) {
		offset = len(matched)
	}
	end := offset + p.Normalize().PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return newPage(matched[offset:end], total, p)
}

// GetBySlug retorna um negócio ativo pelo slug
func (s *DirectoryService) GetBySlug(ctx context.Context, actor *entities.User, slug string) (*entities.Business, error) {
	manager := actor.HasPermission(entities.PermissionDirectoryManage)

	business, err := s.businessRepo.FindBySlug(ctx, slug, manager)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return s.fallbackBySlug(ctx, slug)
	}
	if !business.IsActive && !manager {
		return nil, errors.ErrBusinessNotFound
	}
	return business, nil
}

func (s *DirectoryService) fallbackBySlug(ctx context.Context, slug string) (*entities.Business, error) {
	stored, err := s.businessRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	if stored == 0 {
		for _, b := range s.fallback {
			if b.Slug == slug && b.IsActive {
				return b, nil
			}
		}
	}
	return nil, errors.ErrBusinessNotFound
}

// Create cadastra um negócio (directory.manage)
func (s *DirectoryService) Create(ctx context.Context, actor *entities.User, input BusinessInput) (*entities.Business, error) {
	if err := requirePermission(actor, entities.PermissionDirectoryManage); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	business := &entities.Business{IsActive: true, CreatedAt: now, UpdatedAt: now}
	applyBusinessInput(business, input)
	business.Normalize()
	if err := business.Validate(); err != nil {
		return nil, err
	}
	if err := s.categories.RequireActive(ctx, entities.ScopeDirectory, business.Category); err != nil {
		return nil, err
	}

	existing, err := s.businessRepo.FindBySlug(ctx, business.Slug, true)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrBusinessExists
	}

	if err := s.businessRepo.Create(ctx, business); err != nil {
		return nil, err
	}
	s.logger.Info("business created", "slug", business.Slug, "by", actor.ID)
	return business, nil
}

// Update altera os dados de um negócio; o slug não muda
func (s *DirectoryService) Update(ctx context.Context, actor *entities.User, id string, input BusinessInput, active *bool) (*entities.Business, error) {
	business, err := s.managed(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if business.IsDeleted() {
		return nil, errors.ErrBusinessNotFound
	}

	previousCategory := business.Category
	applyBusinessInput(business, input)
	if active != nil {
		business.IsActive = *active
	}
	business.Normalize()
	if err := business.Validate(); err != nil {
		return nil, err
	}
	if business.Category != previousCategory {
		if err := s.categories.RequireActive(ctx, entities.ScopeDirectory, business.Category); err != nil {
			return nil, err
		}
	}

	business.UpdatedAt = s.clock.Now()
	if err := s.businessRepo.Update(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

// Deactivate remove o negócio do diretório (soft delete)
func (s *DirectoryService) Deactivate(ctx context.Context, actor *entities.User, id string) error {
	business, err := s.managed(ctx, actor, id)
	if err != nil {
		return err
	}
	if business.IsDeleted() {
		return errors.ErrBusinessNotFound
	}

	now := s.clock.Now()
	business.DeletedAt = &now
	business.IsActive = false
	business.UpdatedAt = now
	if err := s.businessRepo.Update(ctx, business); err != nil {
		return err
	}
	ports.Audit(s.logger).Info("business deactivated", "slug", business.Slug, "by", actor.ID)
	return nil
}

// Restore devolve ao diretório um negócio removido
func (s *DirectoryService) Restore(ctx context.Context, actor *entities.User, id string) (*entities.Business, error) {
	business, err := s.managed(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !business.IsDeleted() {
		return nil, errors.ErrNotDeleted
	}

	business.DeletedAt = nil
	business.IsActive = true
	business.UpdatedAt = s.clock.Now()
	if err := s.businessRepo.Update(ctx, business); err != nil {
		return nil, err
	}
	ports.Audit(s.logger).Info("business restored", "slug", business.Slug, "by", actor.ID)
	return business, nil
}

func (s *DirectoryService) managed(ctx context.Context, actor *entities.User, id string) (*entities.Business, error) {
	if err := requirePermission(actor, entities.PermissionDirectoryManage); err != nil {
		return nil, err
	}
	business, err := s.businessRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, errors.ErrBusinessNotFound
	}
	return business, nil
}

func applyBusinessInput(b *entities.Business, input BusinessInput) {
	b.Name = input.Name
	b.Category = strings.TrimSpace(input.Category)
	b.Description = input.Description
	b.Address = strings.TrimSpace(input.Address)
	b.Phone = strings.TrimSpace(input.Phone)
	b.Email = strings.TrimSpace(input.Email)
	b.Website = strings.TrimSpace(input.Website)
	b.Hours = strings.TrimSpace(input.Hours)
	b.IsFeatured = input.IsFeatured
}
