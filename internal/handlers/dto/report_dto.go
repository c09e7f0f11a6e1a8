package dto

import (
	"time"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

// ReportRequest representa uma denúncia
type ReportRequest struct {
	TargetType string `json:"target_type" binding:"required,oneof=post reply event business user"`
	TargetID   string `json:"target_id" binding:"required,uuid"`
	Reason     string `json:"reason" binding:"required,oneof=spam harassment inappropriate misinformation other"`
	Details    string `json:"details" binding:"max=1000"`
}

// ToInput converte para o input do service
func (r ReportRequest) ToInput() services.ReportInput {
	return services.ReportInput{
		TargetType: entities.ReportTarget(r.TargetType),
		TargetID:   r.TargetID,
		Reason:     entities.ReportReason(r.Reason),
		Details:    r.Details,
	}
}

// ResolveReportRequest encerra uma denúncia
type ResolveReportRequest struct {
	Status        string `json:"status" binding:"required,oneof=resolved dismissed"`
	Resolution    string `json:"resolution" binding:"max=1000"`
	RemoveContent bool   `json:"remove_content"`
}

// ToInput converte para o input do service
func (r ResolveReportRequest) ToInput() services.ResolveInput {
	return services.ResolveInput{
		Status:        entities.ReportStatus(r.Status),
		Resolution:    r.Resolution,
		RemoveContent: r.RemoveContent,
	}
}

// ReportListQuery filtra a fila de denúncias
type ReportListQuery struct {
	Status string `form:"status" binding:"omitempty,oneof=pending resolved dismissed"`
	PageQuery
}

// StatusFilter retorna o filtro de status, ou nil para todos
func (q ReportListQuery) StatusFilter() *entities.ReportStatus {
	if q.Status == "" {
		return nil
	}
	s := entities.ReportStatus(q.Status)
	return &s
}

// ReportResponse representa uma denúncia
type ReportResponse struct {
	ID         string     `json:"id"`
	ReporterID string     `json:"reporter_id"`
	TargetType string     `json:"target_type"`
	TargetID   string     `json:"target_id"`
	Reason     string     `json:"reason"`
	Details    string     `json:"details,omitempty"`
	Status     string     `json:"status"`
	Resolution string     `json:"resolution,omitempty"`
	ResolvedBy *string    `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToReportResponse converte uma entidade Report
func ToReportResponse(r *entities.Report) ReportResponse {
	return ReportResponse{
		ID:         r.ID,
		ReporterID: r.ReporterID,
		TargetType: string(r.TargetType),
		TargetID:   r.TargetID,
		Reason:     string(r.Reason),
		Details:    r.Details,
		Status:     string(r.Status),
		Resolution: r.Resolution,
		ResolvedBy: r.ResolvedBy,
		ResolvedAt: r.ResolvedAt,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
