package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	domainerrors "github.com/gabriola-connects/portal-backend/internal/domain/errors"
)

// EventStatus representa o estado de aprovação de um evento
type EventStatus string

const (
	EventPending  EventStatus = "pending"
	EventApproved EventStatus = "approved"
	EventRejected EventStatus = "rejected"
)

// Event representa um evento do calendário comunitário
type Event struct {
	ID              string
	Title           string
	Description     string
	Category        string
	Venue           string
	StartAt         time.Time
	EndAt           *time.Time
	Organizer       string
	ContactEmail    *string
	URL             *string
	ImageURL        *string
	Status          EventStatus
	RejectionReason string
	ReviewedBy      *string
	ReviewedAt      *time.Time
	CreatedBy       string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeletedAt       *time.Time // Soft delete
}

// EffectiveEnd retorna o fim do evento, ou o início quando não há fim
func (e *Event) EffectiveEnd() time.Time {
	if e.EndAt != nil {
		return *e.EndAt
	}
	return e.StartAt
}

// IsDeleted verifica se o evento foi deletado (soft delete)
func (e *Event) IsDeleted() bool {
	return e.DeletedAt != nil
}

// CanManage indica se o usuário pode editar ou remover o evento.
// O autor só pode editar enquanto o evento estiver pendente.
func (e *Event) CanManage(u *User, editing bool) bool {
	if u == nil {
		return false
	}
	if u.HasPermission(PermissionEventsManage) {
		return true
	}
	if e.CreatedBy != u.ID || !u.HasPermission(PermissionContentCreate) {
		return false
	}
	return !editing || e.Status == EventPending
}

// IsVisibleTo indica se o usuário pode ver o evento
func (e *Event) IsVisibleTo(u *User) bool {
	if u != nil && u.HasPermission(PermissionEventsManage) {
		return true
	}
	if e.IsDeleted() {
		return false
	}
	if e.Status == EventApproved {
		return true
	}
	return u != nil && u.ID == e.CreatedBy
}

// Approve aprova um evento pendente
func (e *Event) Approve(reviewerID string, now time.Time) error {
	if e.Status != EventPending {
		return domainerrors.ErrEventNotPending
	}
	e.Status = EventApproved
	e.RejectionReason = ""
	e.ReviewedBy = &reviewerID
	e.ReviewedAt = &now
	return nil
}

// Reject rejeita um evento pendente com um motivo
func (e *Event) Reject(reviewerID, reason string, now time.Time) error {
	if e.Status != EventPending {
		return domainerrors.ErrEventNotPending
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domainerrors.NewValidationError("reason", domainerrors.MsgRequired)
	}
	e.Status = EventRejected
	e.RejectionReason = reason
	e.ReviewedBy = &reviewerID
	e.ReviewedAt = &now
	return nil
}

// Validate valida regras de negócio da entidade Event
func (e *Event) Validate() error {
	e.Title = strings.TrimSpace(e.Title)
	if e.Title == "" {
		return domainerrors.NewValidationError("title", domainerrors.MsgRequired)
	}
	if utf8.RuneCountInString(e.Title) > 200 {
		return domainerrors.NewValidationError("title", domainerrors.MsgTooLong)
	}
	if e.Category == "" {
		return domainerrors.NewValidationError("category", domainerrors.MsgRequired)
	}
	if e.StartAt.IsZero() {
		return domainerrors.NewValidationError("start_at", domainerrors.MsgRequired)
	}
	if e.EndAt != nil && e.EndAt.Before(e.StartAt) {
		return domainerrors.NewValidationError("end_at", domainerrors.MsgEndBefore)
	}
	if utf8.RuneCountInString(e.Description) > 5000 {
		return domainerrors.NewValidationError("description", domainerrors.MsgTooLong)
	}
	return nil
}
