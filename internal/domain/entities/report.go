package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	domainerrors "github.com/gabriola-connects/portal-backend/internal/domain/errors"
)

// ReportTarget indica o tipo de conteúdo denunciado
type ReportTarget string

const (
	ReportTargetPost     ReportTarget = "post"
	ReportTargetReply    ReportTarget = "reply"
	ReportTargetEvent    ReportTarget = "event"
	ReportTargetBusiness ReportTarget = "business"
	ReportTargetUser     ReportTarget = "user"
)

// ReportReason é o motivo da denúncia
type ReportReason string

const (
	ReasonSpam           ReportReason = "spam"
	ReasonHarassment     ReportReason = "harassment"
	ReasonInappropriate  ReportReason = "inappropriate"
	ReasonMisinformation ReportReason = "misinformation"
	ReasonOther          ReportReason = "other"
)

// ReportStatus é o estado da denúncia
type ReportStatus string

const (
	ReportPending   ReportStatus = "pending"
	ReportResolved  ReportStatus = "resolved"
	ReportDismissed ReportStatus = "dismissed"
)

// Report representa uma denúncia feita por um usuário
type Report struct {
	ID         string
	ReporterID string
	TargetType ReportTarget
	TargetID   string
	Reason     ReportReason
	Details    string
	Status     ReportStatus
	Resolution string
	ResolvedBy *string
	ResolvedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Resolve encerra uma denúncia pendente
func (r *Report) Resolve(status ReportStatus, resolution, by string, now time.Time) error {
	if r.Status != ReportPending {
		return domainerrors.ErrReportNotPending
	}
	if status != ReportResolved && status != ReportDismissed {
		return domainerrors.NewValidationError("status", domainerrors.MsgInvalid)
	}
	r.Status = status
	r.Resolution = strings.TrimSpace(resolution)
	r.ResolvedBy = &by
	r.ResolvedAt = &now
	return nil
}

// Validate valida regras de negócio da entidade Report
func (r *Report) Validate() error {
	switch r.TargetType {
	case ReportTargetPost, ReportTargetReply, ReportTargetEvent, ReportTargetBusiness, ReportTargetUser:
	default:
		return domainerrors.NewValidationError("target_type", domainerrors.MsgInvalid)
	}
	if r.TargetID == "" {
		return domainerrors.NewValidationError("target_id", domainerrors.MsgRequired)
	}
	switch r.Reason {
	case ReasonSpam, ReasonHarassment, ReasonInappropriate, ReasonMisinformation, ReasonOther:
	default:
		return domainerrors.NewValidationError("reason", domainerrors.MsgInvalid)
	}
	r.Details = strings.TrimSpace(r.Details)
	if r.Reason == ReasonOther && r.Details == "" {
		return domainerrors.NewValidationError("details", domainerrors.MsgRequired)
	}
	if utf8.RuneCountInString(r.Details) > 2000 {
		return domainerrors.NewValidationError("details", domainerrors.MsgTooLong)
	}
	return nil
}
