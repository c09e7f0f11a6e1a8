package services

import (
	"context"
	"time"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
)

// ReportCreated é o tipo de evento publicado no tópico admin
const ReportCreated = "report.created"

// ReportService contém as regras das denúncias de conteúdo
type ReportService struct {
	reportRepo   repositories.ReportRepository
	forumRepo    repositories.ForumRepository
	eventRepo    repositories.EventRepository
	businessRepo repositories.BusinessRepository
	userRepo     repositories.UserRepository
	uow          ports.UnitOfWork
	notifier     ports.Notifier
	clock        ports.Clock
	logger       ports.Logger
}

// ReportRepositories agrupa os repositórios usados para localizar os alvos
type ReportRepositories struct {
	Reports    repositories.ReportRepository
	Forum      repositories.ForumRepository
	Events     repositories.EventRepository
	Businesses repositories.BusinessRepository
	Users      repositories.UserRepository
}

// NewReportService cria um novo ReportService
func NewReportService(repos ReportRepositories, uow ports.UnitOfWork, notifier ports.Notifier, clock ports.Clock, logger ports.Logger) *ReportService {
	return &ReportService{
		reportRepo:   repos.Reports,
		forumRepo:    repos.Forum,
		eventRepo:    repos.Events,
		businessRepo: repos.Businesses,
		userRepo:     repos.Users,
		uow:          uow,
		notifier:     notifier,
		clock:        clock,
		logger:       logger,
	}
}

// ReportInput contém os dados de uma denúncia
type ReportInput struct {
	TargetType entities.ReportTarget
	TargetID   string
	Reason     entities.ReportReason
	Details    string
}

// ResolveInput contém a decisão do moderador
type ResolveInput struct {
	Status        entities.ReportStatus
	Resolution    string
	RemoveContent bool
}

// ReportCreatedEvent é publicado para os administradores conectados
type ReportCreatedEvent struct {
	ID         string                `json:"id"`
	TargetType entities.ReportTarget `json:"target_type"`
	TargetID   string                `json:"target_id"`
	Reason     entities.ReportReason `json:"reason"`
	CreatedAt  time.Time             `json:"created_at"`
}

// Create registra uma denúncia; o mesmo usuário não pode ter duas pendentes no mesmo alvo
func (s *ReportService) Create(ctx context.Context, actor *entities.User, input ReportInput) (*entities.Report, error) {
	if err := requirePermission(actor, entities.PermissionContentCreate); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	report := &entities.Report{
		ReporterID: actor.ID,
		TargetType: input.TargetType,
		TargetID:   input.TargetID,
		Reason:     input.Reason,
		Details:    input.Details,
		Status:     entities.ReportPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := report.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.targetExists(ctx, report.TargetType, report.TargetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.ErrTargetNotFound
	}

	duplicate, err := s.reportRepo.HasPending(ctx, actor.ID, report.TargetType, report.TargetID)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, errors.ErrReportDuplicate
	}

	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	s.logger.Info("report created", "report_id", report.ID, "target_type", report.TargetType, "target_id", report.TargetID)
	s.notifier.Publish(ctx, ports.TopicAdmin, ReportCreated, ReportCreatedEvent{
		ID:         report.ID,
		TargetType: report.TargetType,
		TargetID:   report.TargetID,
		Reason:     report.Reason,
		CreatedAt:  report.CreatedAt,
	})
	return report, nil
}

// List lista as denúncias, mais recentes primeiro (reports.handle)
func (s *ReportService) List(ctx context.Context, actor *entities.User, status *entities.ReportStatus, p repositories.Pagination) (Page[*entities.Report], error) {
	if err := requirePermission(actor, entities.PermissionReportsHandle); err != nil {
		return Page[*entities.Report]{}, err
	}
	reports, total, err := s.reportRepo.List(ctx, repositories.ReportFilters{Status: status, Pagination: p})
	if err != nil {
		return Page[*entities.Report]{}, err
	}
	return newPage(reports, total, p), nil
}

// Resolve encerra uma denúncia pendente. Com RemoveContent, o conteúdo
// denunciado é removido na mesma transação.
func (s *ReportService) Resolve(ctx context.Context, actor *entities.User, id string, input ResolveInput) (*entities.Report, error) {
	if err := requirePermission(actor, entities.PermissionReportsHandle); err != nil {
		return nil, err
	}

	var report *entities.Report
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		report, err = s.reportRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if report == nil {
			return errors.ErrReportNotFound
		}

		now := s.clock.Now()
		if err := report.Resolve(input.Status, input.Resolution, actor.ID, now); err != nil {
			return err
		}
		report.UpdatedAt = now
		if err := s.reportRepo.Update(ctx, report); err != nil {
			return err
		}

		if input.RemoveContent && input.Status == entities.ReportResolved {
			return s.removeContent(ctx, actor, report, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ports.Audit(s.logger).Info("report resolved",
		"report_id", id,
		"status", report.Status,
		"remove_content", input.RemoveContent,
		"by", actor.ID,
	)
	return report, nil
}

// removeContent remove tópicos, respostas e eventos; outros alvos ficam intactos
func (s *ReportService) removeContent(ctx context.Context, actor *entities.User, report *entities.Report, now time.Time) error {
	reason := report.Resolution
	if reason == "" {
		reason = string(report.Reason)
	}

	switch report.TargetType {
	case entities.ReportTargetPost:
		post, err := s.forumRepo.FindPost(ctx, report.TargetID, false)
		if err != nil || post == nil {
			return err
		}
		post.SoftDelete(actor.ID, reason, now)
		post.UpdatedAt = now
		return s.forumRepo.UpdatePost(ctx, post)

	case entities.ReportTargetReply:
		reply, err := s.forumRepo.FindReply(ctx, report.TargetID)
		if err != nil || reply == nil || reply.IsDeleted() {
			return err
		}
		reply.SoftDelete(actor.ID, reason, now)
		reply.UpdatedAt = now
		if err := s.forumRepo.UpdateReply(ctx, reply); err != nil {
			return err
		}
		return s.forumRepo.AdjustPost(ctx, reply.PostID, 0, -1, time.Time{})

	case entities.ReportTargetEvent:
		event, err := s.eventRepo.FindByID(ctx, report.TargetID, false)
		if err != nil || event == nil {
			return err
		}
		event.DeletedAt = &now
		event.UpdatedAt = now
		return s.eventRepo.Update(ctx, event)

	default:
		s.logger.Warn("content removal not supported for target", "target_type", report.TargetType, "report_id", report.ID)
		return nil
	}
}

func (s *ReportService) targetExists(ctx context.Context, target entities.ReportTarget, id string) (bool, error) {
	switch target {
	case entities.ReportTargetPost:
		post, err := s.forumRepo.FindPost(ctx, id, false)
		return post != nil, err
	case entities.ReportTargetReply:
		reply, err := s.forumRepo.FindReply(ctx, id)
		return reply != nil && !reply.IsDeleted(), err
	case entities.ReportTargetEvent:
		event, err := s.eventRepo.FindByID(ctx, id, false)
		return event != nil, err
	case entities.ReportTargetBusiness:
		business, err := s.businessRepo.FindByID(ctx, id)
		return business != nil && !business.IsDeleted(), err
	case entities.ReportTargetUser:
		user, err := s.userRepo.FindByID(ctx, id)
		return user != nil, err
	}
	return false, nil
}
