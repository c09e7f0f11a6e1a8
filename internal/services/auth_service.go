package services

import (
	"context"
	"strings"
	"time"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
	"github.com/gabriola-connects/portal-backend/internal/domain/valueobjects"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 72 // limite do bcrypt
)

// AuthService contém o cadastro, login e validação de tokens
type AuthService struct {
	userRepo         repositories.UserRepository
	hasher           ports.PasswordHasher
	tokens           ports.TokenIssuer
	notifier         ports.Notifier
	clock            ports.Clock
	residentPrefixes []string
	logger           ports.Logger
}

// NewAuthService cria um novo AuthService
func NewAuthService(
	userRepo repositories.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	notifier ports.Notifier,
	clock ports.Clock,
	residentPrefixes []string,
	logger ports.Logger,
) *AuthService {
	return &AuthService{
		userRepo:         userRepo,
		hasher:           hasher,
		tokens:           tokens,
		notifier:         notifier,
		clock:            clock,
		residentPrefixes: residentPrefixes,
		logger:           logger,
	}
}

// RegisterInput representa os dados de cadastro
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	PostalCode  string
}

// AuthResult é o usuário autenticado com seu token de acesso
type AuthResult struct {
	User      *entities.User
	Token     string
	ExpiresAt time.Time
}

// UserCreatedEvent é publicado no tópico admin quando alguém se cadastra
type UserCreatedEvent struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	IsResident  bool      `json:"is_resident"`
	CreatedAt   time.Time `json:"created_at"`
}

// Register cria uma conta e já retorna um token de acesso
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, errors.NewValidationError("email", errors.MsgInvalid)
	}
	if err := validatePassword(input.Password); err != nil {
		return nil, err
	}
	postalCode, err := parsePostalCode(input.PostalCode)
	if err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.ErrEmailAlreadyExists
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	user := &entities.User{
		Email:        email,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		PasswordHash: hash,
		PostalCode:   postalCode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	user.UpdateResidency(s.residentPrefixes, now)
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "email", email.Masked(), "resident", user.IsResident)
	s.notifier.Publish(ctx, ports.TopicAdmin, "user.created", UserCreatedEvent{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		IsResident:  user.IsResident,
		CreatedAt:   user.CreatedAt,
	})

	return s.issue(user)
}

// BootstrapSuperAdmin garante que a conta do email exista e seja super admin.
// Usado pela linha de comando para criar o primeiro administrador; created
// indica se a conta foi criada agora.
func (s *AuthService) BootstrapSuperAdmin(ctx context.Context, input RegisterInput) (user *entities.User, created bool, err error) {
	email, err := valueobjects.NewEmail(input.Email)
	if err != nil {
		return nil, false, errors.NewValidationError("email", errors.MsgInvalid)
	}

	user, err = s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		result, err := s.Register(ctx, input)
		if err != nil {
			return nil, false, err
		}
		user, created = result.User, true
	}

	user.IsSuperAdmin = true
	user.UpdatedAt = s.clock.Now()
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, false, err
	}

	ports.Audit(s.logger).Info("super admin bootstrapped", "user_id", user.ID, "email", email.Masked(), "created", created)
	return user, created, nil
}

// Login valida email e senha
func (s *AuthService) Login(ctx context.Context, emailInput, password string) (*AuthResult, error) {
	email, err := valueobjects.NewEmail(emailInput)
	if err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByEmail(ctx, email.String())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, errors.ErrInvalidCredentials
	}
	if user.IsBanned {
		s.logger.Warn("banned user attempted login", "user_id", user.ID, "email", email.Masked())
		return nil, errors.ErrUserBanned
	}

	return s.issue(user)
}

// Authenticate resolve o token e recarrega o perfil, para que banimentos e
// mudanças de permissão valham na próxima requisição
func (s *AuthService) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, errors.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUnauthorized
	}
	return user, nil
}

func (s *AuthService) issue(user *entities.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return errors.NewValidationError("password", errors.MsgInvalid)
	}
	if len(password) > maxPasswordLength {
		return errors.NewValidationError("password", errors.MsgTooLong)
	}
	return nil
}

func parsePostalCode(raw string) (valueobjects.PostalCode, error) {
	if strings.TrimSpace(raw) == "" {
		return valueobjects.PostalCode{}, nil
	}
	code, err := valueobjects.NewPostalCode(raw)
	if err != nil {
		return valueobjects.PostalCode{}, errors.NewValidationError("postal_code", errors.MsgInvalid)
	}
	return code, nil
}
