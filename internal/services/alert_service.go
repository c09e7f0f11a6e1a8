package services

import (
	"context"
	"time"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
)

// Tipos de evento publicados no tópico de alertas
const (
	AlertCreated  = "alert.created"
	AlertUpdated  = "alert.updated"
	AlertArchived = "alert.archived"
)

// AlertService contém as regras dos avisos à comunidade
type AlertService struct {
	alertRepo repositories.AlertRepository
	notifier  ports.Notifier
	clock     ports.Clock
	logger    ports.Logger
}

// NewAlertService cria um novo AlertService
func NewAlertService(alertRepo repositories.AlertRepository, notifier ports.Notifier, clock ports.Clock, logger ports.Logger) *AlertService {
	return &AlertService{alertRepo: alertRepo, notifier: notifier, clock: clock, logger: logger}
}

// AlertInput contém os dados de um alerta
type AlertInput struct {
	Title     string
	Message   string
	Severity  entities.Severity
	Category  entities.AlertCategory
	ExpiresAt *time.Time
}

// AlertEvent é o payload publicado no canal realtime
type AlertEvent struct {
	ID        string                 `json:"id"`
	Title     string                 `json:"title"`
	Message   string                 `json:"message"`
	Severity  entities.Severity      `json:"severity"`
	Category  entities.AlertCategory `json:"category"`
	ExpiresAt *time.Time             `json:"expires_at,omitempty"`
}

func newAlertEvent(a *entities.Alert) AlertEvent {
	return AlertEvent{
		ID:        a.ID,
		Title:     a.Title,
		Message:   a.Message,
		Severity:  a.Severity,
		Category:  a.Category,
		ExpiresAt: a.ExpiresAt,
	}
}

// Active lista os alertas vigentes: mais graves primeiro, depois os mais recentes
func (s *AlertService) Active(ctx context.Context) ([]*entities.Alert, error) {
	return s.alertRepo.ListActive(ctx, s.clock.Now())
}

// Archived lista os alertas arquivados (alerts.manage)
func (s *AlertService) Archived(ctx context.Context, actor *entities.User, p repositories.Pagination) (Page[*entities.Alert], error) {
	if err := requirePermission(actor, entities.PermissionAlertsManage); err != nil {
		return Page[*entities.Alert]{}, err
	}
	alerts, total, err := s.alertRepo.ListArchived(ctx, p)
	if err != nil {
		return Page[*entities.Alert]{}, err
	}
	return newPage(alerts, total, p), nil
}

// Create publica um novo alerta
func (s *AlertService) Create(ctx context.Context, actor *entities.User, input AlertInput) (*entities.Alert, error) {
	if err := requirePermission(actor, entities.PermissionAlertsManage); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	alert := &entities.Alert{CreatedBy: actor.ID, CreatedAt: now, UpdatedAt: now}
	applyAlertInput(alert, input)
	if err := alert.Validate(now); err != nil {
		return nil, err
	}

	if err := s.alertRepo.Create(ctx, alert); err != nil {
		return nil, err
	}
	s.logger.Info("alert created", "alert_id", alert.ID, "severity", alert.Severity, "by", actor.ID)
	s.notifier.Publish(ctx, ports.TopicAlerts, AlertCreated, newAlertEvent(alert))
	return alert, nil
}

// Update altera um alerta; só alertas não arquivados são republicados
func (s *AlertService) Update(ctx context.Context, actor *entities.User, id string, input AlertInput) (*entities.Alert, error) {
	alert, err := s.managed(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	applyAlertInput(alert, input)
	if err := alert.Validate(now); err != nil {
		return nil, err
	}
	alert.UpdatedAt = now
	if err := s.alertRepo.Update(ctx, alert); err != nil {
		return nil, err
	}
	if !alert.IsArchived {
		s.notifier.Publish(ctx, ports.TopicAlerts, AlertUpdated, newAlertEvent(alert))
	}
	return alert, nil
}

// Archive retira o alerta da lista pública
func (s *AlertService) Archive(ctx context.Context, actor *entities.User, id string) (*entities.Alert, error) {
	alert, err := s.managed(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if alert.IsArchived {
		return alert, nil
	}

	if err := s.archive(ctx, alert); err != nil {
		return nil, err
	}
	ports.Audit(s.logger).Info("alert archived", "alert_id", id, "by", actor.ID)
	return alert, nil
}

// Unarchive devolve o alerta à lista pública; um alerta expirado precisa de nova expiração
func (s *AlertService) Unarchive(ctx context.Context, actor *entities.User, id string) (*entities.Alert, error) {
	alert, err := s.managed(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !alert.IsArchived {
		return alert, nil
	}

	now := s.clock.Now()
	if alert.IsExpired(now) {
		return nil, errors.NewValidationError("expires_at", errors.MsgMustBeFuture)
	}
	alert.Unarchive()
	alert.UpdatedAt = now
	if err := s.alertRepo.Update(ctx, alert); err != nil {
		return nil, err
	}
	ports.Audit(s.logger).Info("alert unarchived", "alert_id", id, "by", actor.ID)
	s.notifier.Publish(ctx, ports.TopicAlerts, AlertUpdated, newAlertEvent(alert))
	return alert, nil
}

// Delete apaga o alerta definitivamente
func (s *AlertService) Delete(ctx context.Context, actor *entities.User, id string) error {
	alert, err := s.managed(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.alertRepo.Delete(ctx, id); err != nil {
		return err
	}
	ports.Audit(s.logger).Info("alert deleted", "alert_id", id, "by", actor.ID)
	if !alert.IsArchived {
		s.notifier.Publish(ctx, ports.TopicAlerts, AlertArchived, newAlertEvent(alert))
	}
	return nil
}

// SweepExpired arquiva os alertas expirados e retorna quantos foram arquivados
func (s *AlertService) SweepExpired(ctx context.Context) (int, error) {
	expired, err := s.alertRepo.ListExpired(ctx, s.clock.Now())
	if err != nil {
		return 0, err
	}
	archived := 0
	for _, alert := range expired {
		if err := s.archive(ctx, alert); err != nil {
			return archived, err
		}
		archived++
	}
	return archived, nil
}

func (s *AlertService) archive(ctx context.Context, alert *entities.Alert) error {
	now := s.clock.Now()
	alert.Archive(now)
	alert.UpdatedAt = now
	if err := s.alertRepo.Update(ctx, alert); err != nil {
		return err
	}
	s.notifier.Publish(ctx, ports.TopicAlerts, AlertArchived, newAlertEvent(alert))
	return nil
}

func (s *AlertService) managed(ctx context.Context, actor *entities.User, id string) (*entities.Alert, error) {
	if err := requirePermission(actor, entities.PermissionAlertsManage); err != nil {
		return nil, err
	}
	alert, err := s.alertRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if alert == nil {
		return nil, errors.ErrAlertNotFound
	}
	return alert, nil
}

func applyAlertInput(a *entities.Alert, input AlertInput) {
	a.Title = input.Title
	a.Message = input.Message
	a.Severity = input.Severity
	a.Category = input.Category
	a.ExpiresAt = input.ExpiresAt
}
