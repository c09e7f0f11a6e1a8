package services

import (
	"context"
	"strings"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
)

// UserService contém a lógica de negócio para perfis
type UserService struct {
	userRepo         repositories.UserRepository
	clock            ports.Clock
	residentPrefixes []string
	logger           ports.Logger
}

// NewUserService cria um novo UserService
func NewUserService(
	userRepo repositories.UserRepository,
	clock ports.Clock,
	residentPrefixes []string,
	logger ports.Logger,
) *UserService {
	return &UserService{
		userRepo:         userRepo,
		clock:            clock,
		residentPrefixes: residentPrefixes,
		logger:           logger,
	}
}

// UpdateProfileInput contém os campos editáveis do próprio perfil.
// Campos nil não são alterados; PostalCode vazio remove o código.
type UpdateProfileInput struct {
	DisplayName *string
	PostalCode  *string
	AvatarURL   *string
}

// GetUser busca um usuário por ID
func (s *UserService) GetUser(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile altera o perfil do próprio usuário; a residência é recalculada
func (s *UserService) UpdateProfile(ctx context.Context, actor *entities.User, input UpdateProfileInput) (*entities.User, error) {
	if actor == nil {
		return nil, errors.ErrUnauthorized
	}

	user, err := s.GetUser(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.PostalCode != nil {
		code, err := parsePostalCode(*input.PostalCode)
		if err != nil {
			return nil, err
		}
		user.PostalCode = code
		user.UpdateResidency(s.residentPrefixes, s.clock.Now())
	}
	if input.AvatarURL != nil {
		avatar := strings.TrimSpace(*input.AvatarURL)
		if avatar == "" {
			user.AvatarURL = nil
		} else {
			user.AvatarURL = &avatar
		}
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", user.ID, "resident", user.IsResident)
	return user, nil
}

// ListUsers lista usuários com filtros (somente administradores de usuários)
func (s *UserService) ListUsers(ctx context.Context, actor *entities.User, filters repositories.UserFilters) (Page[*entities.User], error) {
	if err := requirePermission(actor, entities.PermissionUsersManage); err != nil {
		return Page[*entities.User]{}, err
	}

	users, total, err := s.userRepo.List(ctx, filters)
	if err != nil {
		return Page[*entities.User]{}, err
	}
	return newPage(users, total, filters.Pagination), nil
}
