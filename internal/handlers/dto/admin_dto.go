package dto

import (
	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

// StatsResponse contém os contadores do painel administrativo
type StatsResponse struct {
	Users            int64 `json:"users"`
	Residents        int64 `json:"residents"`
	BannedUsers      int64 `json:"banned_users"`
	PendingEvents    int64 `json:"pending_events"`
	PendingReports   int64 `json:"pending_reports"`
	ActiveAlerts     int64 `json:"active_alerts"`
	ForumThreads     int64 `json:"forum_threads"`
	ActiveBusinesses int64 `json:"active_businesses"`
}

// ToStatsResponse converte as estatísticas do service
func ToStatsResponse(s *services.Stats) StatsResponse {
	return StatsResponse{
		Users:            s.Users,
		Residents:        s.Residents,
		BannedUsers:      s.BannedUsers,
		PendingEvents:    s.PendingEvents,
		PendingReports:   s.PendingReports,
		ActiveAlerts:     s.ActiveAlerts,
		ForumThreads:     s.ForumThreads,
		ActiveBusinesses: s.ActiveBusinesses,
	}
}

// FlagsRequest substitui as flags de permissão de um usuário
type FlagsRequest struct {
	IsSuperAdmin   bool `json:"is_super_admin"`
	AdminEvents    bool `json:"admin_events"`
	ForumModerator bool `json:"forum_moderator"`
	AdminAlerts    bool `json:"admin_alerts"`
	AdminDirectory bool `json:"admin_directory"`
}

// ToFlags converte para as flags da entidade
func (r FlagsRequest) ToFlags() entities.Flags {
	return entities.Flags{
		IsSuperAdmin:   r.IsSuperAdmin,
		AdminEvents:    r.AdminEvents,
		ForumModerator: r.ForumModerator,
		AdminAlerts:    r.AdminAlerts,
		AdminDirectory: r.AdminDirectory,
	}
}

// BanRequest bane um usuário
type BanRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ResidencyRequest define a residência manualmente; null recalcula pelo código postal
type ResidencyRequest struct {
	IsResident *bool `json:"is_resident"`
}
