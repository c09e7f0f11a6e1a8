package dto

import (
	"time"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

// UpdateProfileRequest representa a requisição para atualizar o próprio perfil.
// postal_code vazio remove o código postal; avatar_url vazio remove o avatar.
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,min=2,max=100"`
	PostalCode  *string `json:"postal_code" binding:"omitempty,max=10"`
	AvatarURL   *string `json:"avatar_url" binding:"omitempty,max=500"`
}

// ToInput converte para o input do service
func (r UpdateProfileRequest) ToInput() services.UpdateProfileInput {
	return services.UpdateProfileInput{
		DisplayName: r.DisplayName,
		PostalCode:  r.PostalCode,
		AvatarURL:   r.AvatarURL,
	}
}

// UserListQuery contém os filtros da listagem administrativa de usuários
type UserListQuery struct {
	Search   string `form:"search" binding:"omitempty,max=100"`
	Banned   *bool  `form:"banned"`
	Resident *bool  `form:"resident"`
	PageQuery
}

// ToFilters converte para os filtros do repositório
func (q UserListQuery) ToFilters() repositories.UserFilters {
	return repositories.UserFilters{
		Search:     q.Search,
		Banned:     q.Banned,
		Resident:   q.Resident,
		Pagination: q.Pagination(),
	}
}

// UserResponse representa o perfil público de um usuário
type UserResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"display_name"`
	IsResident  bool      `json:"is_resident"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// FlagsResponse representa as flags de permissão do perfil
type FlagsResponse struct {
	IsSuperAdmin   bool `json:"is_super_admin"`
	AdminEvents    bool `json:"admin_events"`
	ForumModerator bool `json:"forum_moderator"`
	AdminAlerts    bool `json:"admin_alerts"`
	AdminDirectory bool `json:"admin_directory"`
}

// ProfileResponse representa o perfil completo, visível ao próprio usuário e a administradores
type ProfileResponse struct {
	UserResponse
	Email              string        `json:"email"`
	PostalCode         string        `json:"postal_code,omitempty"`
	ResidentVerifiedAt *time.Time    `json:"resident_verified_at,omitempty"`
	Flags              FlagsResponse `json:"flags"`
	Permissions        []string      `json:"permissions"`
	IsBanned           bool          `json:"is_banned"`
	BannedAt           *time.Time    `json:"banned_at,omitempty"`
	BanReason          string        `json:"ban_reason,omitempty"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// ToUserResponse converte uma entidade User para UserResponse
func ToUserResponse(user *entities.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		IsResident:  user.IsResident,
		AvatarURL:   user.AvatarURL,
		CreatedAt:   user.CreatedAt,
	}
}

// ToProfileResponse converte uma entidade User para ProfileResponse
func ToProfileResponse(user *entities.User) ProfileResponse {
	return ProfileResponse{
		UserResponse:       ToUserResponse(user),
		Email:              user.Email.String(),
		PostalCode:         user.PostalCode.String(),
		ResidentVerifiedAt: user.ResidentVerifiedAt,
		Flags:              toFlagsResponse(user.Flags),
		Permissions:        user.GetPermissions(),
		IsBanned:           user.IsBanned,
		BannedAt:           user.BannedAt,
		BanReason:          user.BanReason,
		UpdatedAt:          user.UpdatedAt,
	}
}

func toFlagsResponse(f entities.Flags) FlagsResponse {
	return FlagsResponse{
		IsSuperAdmin:   f.IsSuperAdmin,
		AdminEvents:    f.AdminEvents,
		ForumModerator: f.ForumModerator,
		AdminAlerts:    f.AdminAlerts,
		AdminDirectory: f.AdminDirectory,
	}
}
