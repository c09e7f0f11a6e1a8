package services

import (
	"context"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
)

// UserUpdated é publicado no tópico admin quando um moderador altera um usuário
const UserUpdated = "user.updated"

// AdminService reúne o painel administrativo e a gestão de usuários
type AdminService struct {
	userRepo         repositories.UserRepository
	eventRepo        repositories.EventRepository
	reportRepo       repositories.ReportRepository
	alertRepo        repositories.AlertRepository
	forumRepo        repositories.ForumRepository
	businessRepo     repositories.BusinessRepository
	notifier         ports.Notifier
	sessions         ports.SessionRevoker
	clock            ports.Clock
	residentPrefixes []string
	logger           ports.Logger
}

// AdminRepositories agrupa os repositórios consultados pelo painel
type AdminRepositories struct {
	Users      repositories.UserRepository
	Events     repositories.EventRepository
	Reports    repositories.ReportRepository
	Alerts     repositories.AlertRepository
	Forum      repositories.ForumRepository
	Businesses repositories.BusinessRepository
}

// NewAdminService cria um novo AdminService. sessions corta o realtime de
// usuários banidos ou que perderam users.manage.
func NewAdminService(
	repos AdminRepositories,
	notifier ports.Notifier,
	sessions ports.SessionRevoker,
	clock ports.Clock,
	residentPrefixes []string,
	logger ports.Logger,
) *AdminService {
	return &AdminService{
		userRepo:         repos.Users,
		eventRepo:        repos.Events,
		reportRepo:       repos.Reports,
		alertRepo:        repos.Alerts,
		forumRepo:        repos.Forum,
		businessRepo:     repos.Businesses,
		notifier:         notifier,
		sessions:         sessions,
		clock:            clock,
		residentPrefixes: residentPrefixes,
		logger:           logger,
	}
}

// Stats são os números do painel
type Stats struct {
	Users            int64
	Residents        int64
	BannedUsers      int64
	PendingEvents    int64
	PendingReports   int64
	ActiveAlerts     int64
	ForumThreads     int64
	ActiveBusinesses int64
}

// UserChangedEvent é o payload de UserUpdated
type UserChangedEvent struct {
	ID       string `json:"id"`
	Change   string `json:"change"`
	IsBanned bool   `json:"is_banned"`
	By       string `json:"by"`
}

// Stats retorna os contadores do painel (qualquer permissão administrativa)
func (s *AdminService) Stats(ctx context.Context, actor *entities.User) (*Stats, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	if !actor.IsAdmin() {
		return nil, errors.ErrForbidden
	}

	users, err := s.userRepo.Stats(ctx)
	if err != nil {
		return nil, err
	}
	pendingEvents, err := s.eventRepo.CountByStatus(ctx, entities.EventPending)
	if err != nil {
		return nil, err
	}
	pendingReports, err := s.reportRepo.CountByStatus(ctx, entities.ReportPending)
	if err != nil {
		return nil, err
	}
	alerts, err := s.alertRepo.ListActive(ctx, s.clock.Now())
	if err != nil {
		return nil, err
	}
	one := repositories.Pagination{Page: 1, PageSize: 1}
	_, threads, err := s.forumRepo.ListPosts(ctx, repositories.PostFilters{Pagination: one})
	if err != nil {
		return nil, err
	}
	_, businesses, err := s.businessRepo.List(ctx, repositories.BusinessFilters{Pagination: one})
	if err != nil {
		return nil, err
	}

	return &Stats{
		Users:            users.Total,
		Residents:        users.Residents,
		BannedUsers:      users.Banned,
		PendingEvents:    pendingEvents,
		PendingReports:   pendingReports,
		ActiveAlerts:     int64(len(alerts)),
		ForumThreads:     threads,
		ActiveBusinesses: businesses,
	}, nil
}

// SetFlags substitui as flags de permissão do usuário.
// Um super admin não pode remover a própria flag.
func (s *AdminService) SetFlags(ctx context.Context, actor *entities.User, id string, flags entities.Flags) (*entities.User, error) {
	user, err := s.managedUser(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if user.ID == actor.ID && actor.IsSuperAdmin && !flags.IsSuperAdmin {
		return nil, errors.ErrCannotModifySelf
	}

	before := user.Flags
	couldManage := user.HasPermission(entities.PermissionUsersManage)
	user.Flags = flags
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	if couldManage && !user.HasPermission(entities.PermissionUsersManage) {
		s.sessions.Unsubscribe(ctx, user.ID, ports.TopicAdmin)
	}
	ports.Audit(s.logger).Info("permissions changed",
		"user_id", id,
		"before", before,
		"after", flags,
		"by", actor.ID,
	)
	s.publish(ctx, user, "permissions", actor.ID)
	return user, nil
}

// Ban bane o usuário; ninguém pode banir a si mesmo
func (s *AdminService) Ban(ctx context.Context, actor *entities.User, id, reason string) (*entities.User, error) {
	user, err := s.managedUser(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if user.ID == actor.ID {
		return nil, errors.ErrCannotModifySelf
	}

	user.Ban(reason, s.clock.Now())
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	s.sessions.Disconnect(ctx, user.ID)
	ports.Audit(s.logger).Info("user banned", "user_id", id, "reason", user.BanReason, "by", actor.ID)
	s.publish(ctx, user, "ban", actor.ID)
	return user, nil
}

// Unban remove o banimento
func (s *AdminService) Unban(ctx context.Context, actor *entities.User, id string) (*entities.User, error) {
	user, err := s.managedUser(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	user.Unban()
	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	ports.Audit(s.logger).Info("user unbanned", "user_id", id, "by", actor.ID)
	s.publish(ctx, user, "unban", actor.ID)
	return user, nil
}

// SetResidency define a residência manualmente. nil recalcula pelo código postal.
func (s *AdminService) SetResidency(ctx context.Context, actor *entities.User, id string, resident *bool) (*entities.User, error) {
	user, err := s.managedUser(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	switch {
	case resident == nil:
		user.UpdateResidency(s.residentPrefixes, now)
	case *resident:
		if !user.IsResident {
			user.ResidentVerifiedAt = &now
		}
		user.IsResident = true
	default:
		user.IsResident = false
		user.ResidentVerifiedAt = nil
	}

	if err := s.save(ctx, user); err != nil {
		return nil, err
	}
	ports.Audit(s.logger).Info("residency changed", "user_id", id, "resident", user.IsResident, "by", actor.ID)
	s.publish(ctx, user, "residency", actor.ID)
	return user, nil
}

func (s *AdminService) managedUser(ctx context.Context, actor *entities.User, id string) (*entities.User, error) {
	if err := requirePermission(actor, entities.PermissionUsersManage); err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.ErrUserNotFound
	}
	return user, nil
}

func (s *AdminService) save(ctx context.Context, user *entities.User) error {
	user.UpdatedAt = s.clock.Now()
	return s.userRepo.Update(ctx, user)
}

func (s *AdminService) publish(ctx context.Context, user *entities.User, change, by string) {
	s.notifier.Publish(ctx, ports.TopicAdmin, UserUpdated, UserChangedEvent{
		ID:       user.ID,
		Change:   change,
		IsBanned: user.IsBanned,
		By:       by,
	})
}
