package services

import (
	"context"
	"strings"
	"time"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
)

// EventService contém as regras do calendário comunitário
type EventService struct {
	eventRepo  repositories.EventRepository
	categories *CategoryService
	clock      ports.Clock
	logger     ports.Logger
}

// NewEventService cria um novo EventService
func NewEventService(
	eventRepo repositories.EventRepository,
	categories *CategoryService,
	clock ports.Clock,
	logger ports.Logger,
) *EventService {
	return &EventService{eventRepo: eventRepo, categories: categories, clock: clock, logger: logger}
}

// EventInput contém os dados enviados ao criar ou editar um evento
type EventInput struct {
	Title        string
	Description  string
	Category     string
	Venue        string
	StartAt      time.Time
	EndAt        *time.Time
	Organizer    string
	ContactEmail *string
	URL          *string
	ImageURL     *string
}

// CalendarQuery filtra o calendário público
type CalendarQuery struct {
	From     *time.Time
	To       *time.Time
	Category string
	repositories.Pagination
}

// Create cadastra um evento; administradores de eventos publicam direto
func (s *EventService) Create(ctx context.Context, actor *entities.User, input EventInput) (*entities.Event, error) {
	if err := requirePermission(actor, entities.PermissionContentCreate); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	event := &entities.Event{
		Status:    entities.EventPending,
		CreatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyEventInput(event, input)
	if err := event.Validate(); err != nil {
		return nil, err
	}
	if err := s.categories.RequireActive(ctx, entities.ScopeEvents, event.Category); err != nil {
		return nil, err
	}

	if actor.HasPermission(entities.PermissionEventsManage) {
		if err := event.Approve(actor.ID, now); err != nil {
			return nil, err
		}
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	s.logger.Info("event created", "event_id", event.ID, "status", event.Status, "by", actor.ID)
	return event, nil
}

// Get retorna o evento se o usuário puder vê-lo
func (s *EventService) Get(ctx context.Context, actor *entities.User, id string) (*entities.Event, error) {
	includeDeleted := actor.HasPermission(entities.PermissionEventsManage)
	event, err := s.eventRepo.FindByID(ctx, id, includeDeleted)
	if err != nil {
		return nil, err
	}
	if event == nil || !event.IsVisibleTo(actor) {
		return nil, errors.ErrEventNotFound
	}
	return event, nil
}

// Calendar lista eventos aprovados que ainda não terminaram
func (s *EventService) Calendar(ctx context.Context, query CalendarQuery) (Page[*entities.Event], error) {
	from := s.clock.Now()
	if query.From != nil {
		from = *query.From
	}
	if query.To != nil && query.To.Before(from) {
		return Page[*entities.Event]{}, errors.NewValidationError("to", errors.MsgEndBefore)
	}

	approved := entities.EventApproved
	filters := repositories.EventFilters{
		Status:       &approved,
		Category:     strings.TrimSpace(query.Category),
		EndsAfter:    &from,
		StartsBefore: query.To,
		Pagination:   query.Pagination,
	}
	events, total, err := s.eventRepo.List(ctx, filters)
	if err != nil {
		return Page[*entities.Event]{}, err
	}
	return newPage(events, total, query.Pagination), nil
}

// Pending lista a fila de aprovação
func (s *EventService) Pending(ctx context.Context, actor *entities.User, p repositories.Pagination) (Page[*entities.Event], error) {
	if err := requirePermission(actor, entities.PermissionEventsManage); err != nil {
		return Page[*entities.Event]{}, err
	}
	pending := entities.EventPending
	events, total, err := s.eventRepo.List(ctx, repositories.EventFilters{Status: &pending, Pagination: p})
	if err != nil {
		return Page[*entities.Event]{}, err
	}
	return newPage(events, total, p), nil
}

// Mine lista os eventos enviados pelo usuário, em qualquer estado
func (s *EventService) Mine(ctx context.Context, actor *entities.User, p repositories.Pagination) (Page[*entities.Event], error) {
	if actor == nil {
		return Page[*entities.Event]{}, errors.ErrUnauthorized
	}
	events, total, err := s.eventRepo.List(ctx, repositories.EventFilters{CreatedBy: actor.ID, Pagination: p})
	if err != nil {
		return Page[*entities.Event]{}, err
	}
	return newPage(events, total, p), nil
}

// Update edita o evento (autor enquanto pendente, ou administrador)
func (s *EventService) Update(ctx context.Context, actor *entities.User, id string, input EventInput) (*entities.Event, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	event, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !event.CanManage(actor, true) {
		return nil, errors.ErrForbidden
	}

	previousCategory := event.Category
	applyEventInput(event, input)
	if err := event.Validate(); err != nil {
		return nil, err
	}
	if event.Category != previousCategory {
		if err := s.categories.RequireActive(ctx, entities.ScopeEvents, event.Category); err != nil {
			return nil, err
		}
	}

	event.UpdatedAt = s.clock.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// Approve publica um evento pendente
func (s *EventService) Approve(ctx context.Context, actor *entities.User, id string) (*entities.Event, error) {
	return s.review(ctx, actor, id, func(e *entities.Event, now time.Time) error {
		return e.Approve(actor.ID, now)
	})
}

// Reject recusa um evento pendente com motivo obrigatório
func (s *EventService) Reject(ctx context.Context, actor *entities.User, id, reason string) (*entities.Event, error) {
	return s.review(ctx, actor, id, func(e *entities.Event, now time.Time) error {
		return e.Reject(actor.ID, reason, now)
	})
}

func (s *EventService) review(ctx context.Context, actor *entities.User, id string, apply func(*entities.Event, time.Time) error) (*entities.Event, error) {
	if err := requirePermission(actor, entities.PermissionEventsManage); err != nil {
		return nil, err
	}
	event, err := s.eventRepo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, errors.ErrEventNotFound
	}

	now := s.clock.Now()
	if err := apply(event, now); err != nil {
		return nil, err
	}
	event.UpdatedAt = now
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}

	ports.Audit(s.logger).Info("event reviewed", "event_id", id, "status", event.Status, "by", actor.ID)
	return event, nil
}

// Delete remove o evento (soft delete)
func (s *EventService) Delete(ctx context.Context, actor *entities.User, id string) error {
	if err := requireUser(actor); err != nil {
		return err
	}
	event, err := s.eventRepo.FindByID(ctx, id, false)
	if err != nil {
		return err
	}
	if event == nil || !event.IsVisibleTo(actor) {
		return errors.ErrEventNotFound
	}
	if !event.CanManage(actor, false) {
		return errors.ErrForbidden
	}

	return s.softDelete(ctx, actor, event)
}

func (s *EventService) softDelete(ctx context.Context, actor *entities.User, event *entities.Event) error {
	now := s.clock.Now()
	event.DeletedAt = &now
	event.UpdatedAt = now
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return err
	}
	ports.Audit(s.logger).Info("event deleted", "event_id", event.ID, "by", actor.ID)
	return nil
}

// Restore desfaz a remoção de um evento
func (s *EventService) Restore(ctx context.Context, actor *entities.User, id string) (*entities.Event, error) {
	if err := requirePermission(actor, entities.PermissionEventsManage); err != nil {
		return nil, err
	}
	event, err := s.eventRepo.FindByID(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, errors.ErrEventNotFound
	}
	if !event.IsDeleted() {
		return nil, errors.ErrNotDeleted
	}

	event.DeletedAt = nil
	event.UpdatedAt = s.clock.Now()
	if err := s.eventRepo.Update(ctx, event); err != nil {
		return nil, err
	}
	ports.Audit(s.logger).Info("event restored", "event_id", id, "by", actor.ID)
	return event, nil
}

func applyEventInput(e *entities.Event, in EventInput) {
	e.Title = in.Title
	e.Description = strings.TrimSpace(in.Description)
	e.Category = strings.TrimSpace(in.Category)
	e.Venue = strings.TrimSpace(in.Venue)
	e.StartAt = in.StartAt
	e.EndAt = in.EndAt
	e.Organizer = strings.TrimSpace(in.Organizer)
	e.ContactEmail = in.ContactEmail
	e.URL = in.URL
	e.ImageURL = in.ImageURL
}
