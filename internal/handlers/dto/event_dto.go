package dto

import (
	"time"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

// EventRequest representa a requisição para criar ou editar um evento
type EventRequest struct {
	Title        string     `json:"title" binding:"required,max=200"`
	Description  string     `json:"description" binding:"max=5000"`
	Category     string     `json:"category" binding:"required,max=80"`
	Venue        string     `json:"venue" binding:"max=200"`
	StartAt      time.Time  `json:"start_at" binding:"required"`
	EndAt        *time.Time `json:"end_at"`
	Organizer    string     `json:"organizer" binding:"max=120"`
	ContactEmail *string    `json:"contact_email" binding:"omitempty,email"`
	URL          *string    `json:"url" binding:"omitempty,url"`
	ImageURL     *string    `json:"image_url" binding:"omitempty,url"`
}

// ToInput converte para o input do service
func (r EventRequest) ToInput() services.EventInput {
	return services.EventInput{
		Title:        r.Title,
		Description:  r.Description,
		Category:     r.Category,
		Venue:        r.Venue,
		StartAt:      r.StartAt,
		EndAt:        r.EndAt,
		Organizer:    r.Organizer,
		ContactEmail: r.ContactEmail,
		URL:          r.URL,
		ImageURL:     r.ImageURL,
	}
}

// CalendarQuery filtra o calendário público. from e to aceitam
// RFC 3339 ou uma data (YYYY-MM-DD) no fuso da comunidade.
type CalendarQuery struct {
	From     string `form:"from"`
	To       string `form:"to"`
	Category string `form:"category" binding:"omitempty,max=80"`
	PageQuery
}

// RejectEventRequest representa a rejeição de um evento
type RejectEventRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// EventResponse representa um evento
type EventResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Category        string     `json:"category"`
	Venue           string     `json:"venue,omitempty"`
	StartAt         time.Time  `json:"start_at"`
	EndAt           *time.Time `json:"end_at,omitempty"`
	Organizer       string     `json:"organizer,omitempty"`
	ContactEmail    *string    `json:"contact_email,omitempty"`
	URL             *string    `json:"url,omitempty"`
	ImageURL        *string    `json:"image_url,omitempty"`
	Status          string     `json:"status"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	ReviewedBy      *string    `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	CreatedBy       string     `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty"`
}

// ToEventResponse converte uma entidade Event
func ToEventResponse(e *entities.Event) EventResponse {
	return EventResponse{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Category:        e.Category,
		Venue:           e.Venue,
		StartAt:         e.StartAt,
		EndAt:           e.EndAt,
		Organizer:       e.Organizer,
		ContactEmail:    e.ContactEmail,
		URL:             e.URL,
		ImageURL:        e.ImageURL,
		Status:          string(e.Status),
		RejectionReason: e.RejectionReason,
		ReviewedBy:      e.ReviewedBy,
		ReviewedAt:      e.ReviewedAt,
		CreatedBy:       e.CreatedBy,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
		DeletedAt:       e.DeletedAt,
	}
}
