package dto

import (
	"time"

	"github.com/gabriola-connects/portal-backend/internal/services"
)

// RegisterRequest representa a requisição de cadastro
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email,max=254"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	DisplayName string `json:"display_name" binding:"required,min=2,max=100"`
	PostalCode  string `json:"postal_code" binding:"omitempty,postalcode"`
}

// ToInput converte para o input do service
func (r RegisterRequest) ToInput() services.RegisterInput {
	return services.RegisterInput{
		Email:       r.Email,
		Password:    r.Password,
		DisplayName: r.DisplayName,
		PostalCode:  r.PostalCode,
	}
}

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse contém o token de acesso e o perfil autenticado
type AuthResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresAt   time.Time       `json:"expires_at"`
	User        ProfileResponse `json:"user"`
}

// ToAuthResponse converte o resultado do service
func ToAuthResponse(result *services.AuthResult) AuthResponse {
	return AuthResponse{
		AccessToken: result.Token,
		TokenType:   "Bearer",
		ExpiresAt:   result.ExpiresAt,
		User:        ToProfileResponse(result.User),
	}
}
