package dto

import (
	"time"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

// AlertRequest representa a requisição para criar ou editar um alerta
type AlertRequest struct {
	Title     string     `json:"title" binding:"required,max=200"`
	Message   string     `json:"message" binding:"required,max=5000"`
	Severity  string     `json:"severity" binding:"required,severity"`
	Category  string     `json:"category" binding:"omitempty,oneof=general ferry weather power water road fire"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// ToInput converte para o input do service
func (r AlertRequest) ToInput() services.AlertInput {
	return services.AlertInput{
		Title:     r.Title,
		Message:   r.Message,
		Severity:  entities.Severity(r.Severity),
		Category:  entities.AlertCategory(r.Category),
		ExpiresAt: r.ExpiresAt,
	}
}

// AlertResponse representa um alerta
type AlertResponse struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Severity   string     `json:"severity"`
	Category   string     `json:"category"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	IsArchived bool       `json:"is_archived"`
	ArchivedAt *time.Time `json:"archived_at,omitempty"`
	CreatedBy  string     `json:"created_by"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToAlertResponse converte uma entidade Alert
func ToAlertResponse(a *entities.Alert) AlertResponse {
	return AlertResponse{
		ID:         a.ID,
		Title:      a.Title,
		Message:    a.Message,
		Severity:   string(a.Severity),
		Category:   string(a.Category),
		ExpiresAt:  a.ExpiresAt,
		IsArchived: a.IsArchived,
		ArchivedAt: a.ArchivedAt,
		CreatedBy:  a.CreatedBy,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
