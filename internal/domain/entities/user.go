package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	domainerrors "github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/valueobjects"
)

// User representa o perfil de um usuário do portal
type User struct {
	ID                 string
	Email              valueobjects.Email
	DisplayName        string
	PasswordHash       string
	PostalCode         valueobjects.PostalCode
	IsResident         bool
	ResidentVerifiedAt *time.Time
	Flags
	IsBanned  bool
	BannedAt  *time.Time
	BanReason string
	AvatarURL *string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time // Soft delete
}

// IsAdmin verifica se o usuário tem alguma permissão administrativa
func (u *User) IsAdmin() bool {
	for _, p := range AdminPermissions {
		if u.HasPermission(p) {
			return true
		}
	}
	return false
}

// HasPermission verifica se o usuário tem uma permissão.
// Usuários banidos não têm nenhuma permissão.
func (u *User) HasPermission(permission Permission) bool {
	if u == nil || u.IsBanned || u.IsDeleted() {
		return false
	}
	return u.Flags.Grants(permission)
}

// GetPermissions retorna todas as permissões do usuário
func (u *User) GetPermissions() []string {
	result := make([]string, 0, len(AllPermissions))
	for _, p := range AllPermissions {
		if u.HasPermission(p) {
			result = append(result, string(p))
		}
	}
	return result
}

// UpdateResidency recalcula o status de residente a partir do código postal
func (u *User) UpdateResidency(prefixes []string, now time.Time) {
	resident := u.PostalCode.MatchesAny(prefixes)
	if resident && !u.IsResident {
		u.ResidentVerifiedAt = &now
	}
	if !resident {
		u.ResidentVerifiedAt = nil
	}
	u.IsResident = resident
}

// Ban bane o usuário
func (u *User) Ban(reason string, now time.Time) {
	u.IsBanned = true
	u.BannedAt = &now
	u.BanReason = strings.TrimSpace(reason)
}

// Unban remove o banimento
func (u *User) Unban() {
	u.IsBanned = false
	u.BannedAt = nil
	u.BanReason = ""
}

// IsDeleted verifica se o usuário foi deletado (soft delete)
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// SoftDelete marca o usuário como deletado
func (u *User) SoftDelete() {
	now := time.Now()
	u.DeletedAt = &now
}

// Restore restaura um usuário deletado
func (u *User) Restore() {
	u.DeletedAt = nil
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Email.String() == "" {
		return domainerrors.NewValidationError("email", domainerrors.MsgRequired)
	}

	name := strings.TrimSpace(u.DisplayName)
	if name == "" {
		return domainerrors.NewValidationError("display_name", domainerrors.MsgRequired)
	}

	if len(name) < 2 {
		return domainerrors.NewValidationError("display_name", domainerrors.MsgInvalid)
	}

	if utf8.RuneCountInString(name) > 100 {
		return domainerrors.NewValidationError("display_name", domainerrors.MsgTooLong)
	}

	return nil
}
