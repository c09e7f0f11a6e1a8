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

// ForumService contém as regras do fórum (BBS)
type ForumService struct {
	forumRepo  repositories.ForumRepository
	categories *CategoryService
	uow        ports.UnitOfWork
	clock      ports.Clock
	logger     ports.Logger
}

// NewForumService cria um novo ForumService
func NewForumService(
	forumRepo repositories.ForumRepository,
	categories *CategoryService,
	uow ports.UnitOfWork,
	clock ports.Clock,
	logger ports.Logger,
) *ForumService {
	return &ForumService{
		forumRepo:  forumRepo,
		categories: categories,
		uow:        uow,
		clock:      clock,
		logger:     logger,
	}
}

// ThreadInput contém os dados de um tópico
type ThreadInput struct {
	Category string
	Title    string
	Body     string
}

// ThreadQuery filtra a listagem de tópicos
type ThreadQuery struct {
	Category       string
	Search         string
	IncludeDeleted bool
	repositories.Pagination
}

// Thread é um tópico com suas respostas em ordem cronológica
type Thread struct {
	Post    *entities.Post
	Replies []*entities.Reply
}

// VoteResult é o estado após um voto
type VoteResult struct {
	Score int
	Value int // voto atual do usuário (0 quando removido)
}

// ListThreads lista tópicos: fixados primeiro, depois pela última atividade
func (s *ForumService) ListThreads(ctx context.Context, actor *entities.User, query ThreadQuery) (Page[*entities.Post], error) {
	filters := repositories.PostFilters{
		Category:       strings.TrimSpace(query.Category),
		Search:         query.Search,
		IncludeDeleted: query.IncludeDeleted && actor.HasPermission(entities.PermissionForumModerate),
		Pagination:     query.Pagination,
	}
	posts, total, err := s.forumRepo.ListPosts(ctx, filters)
	if err != nil {
		return Page[*entities.Post]{}, err
	}
	return newPage(posts, total, query.Pagination), nil
}

// GetThread retorna o tópico e as respostas. Para quem não modera, respostas
// removidas aparecem sem corpo.
func (s *ForumService) GetThread(ctx context.Context, actor *entities.User, id string) (*Thread, error) {
	moderator := actor.HasPermission(entities.PermissionForumModerate)

	post, err := s.forumRepo.FindPost(ctx, id, moderator)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.ErrPostNotFound
	}

	replies, err := s.forumRepo.ListReplies(ctx, id)
	if err != nil {
		return nil, err
	}
	if !moderator {
		for _, r := range replies {
			if r.IsDeleted() {
				r.Body = ""
				r.DeletedBy = nil
				r.DeleteReason = ""
			}
		}
	}
	return &Thread{Post: post, Replies: replies}, nil
}

// CreateThread abre um novo tópico
func (s *ForumService) CreateThread(ctx context.Context, actor *entities.User, input ThreadInput) (*entities.Post, error) {
	if err := requirePermission(actor, entities.PermissionContentCreate); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	post := &entities.Post{
		Category:       strings.TrimSpace(input.Category),
		AuthorID:       actor.ID,
		Title:          input.Title,
		Body:           input.Body,
		LastActivityAt: now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := post.Validate(); err != nil {
		return nil, err
	}
	if err := s.categories.RequireActive(ctx, entities.ScopeForum, post.Category); err != nil {
		return nil, err
	}

	if err := s.forumRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	s.logger.Info("thread created", "post_id", post.ID, "by", actor.ID)
	return post, nil
}

// Reply responde um tópico; o contador e a última atividade mudam na mesma transação
func (s *ForumService) Reply(ctx context.Context, actor *entities.User, postID, body string) (*entities.Reply, error) {
	if err := requirePermission(actor, entities.PermissionContentCreate); err != nil {
		return nil, err
	}

	now := s.clock.Now()
	reply := &entities.Reply{
		PostID:    postID,
		AuthorID:  actor.ID,
		Body:      body,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := reply.Validate(); err != nil {
		return nil, err
	}

	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		post, err := s.forumRepo.FindPost(ctx, postID, false)
		if err != nil {
			return err
		}
		if post == nil {
			return errors.ErrPostNotFound
		}
		if post.IsLocked {
			return errors.ErrPostLocked
		}
		if err := s.forumRepo.CreateReply(ctx, reply); err != nil {
			return err
		}
		return s.forumRepo.AdjustPost(ctx, postID, 0, 1, now)
	})
	if err != nil {
		return nil, err
	}
	return reply, nil
}

// EditThread altera título, corpo e categoria (autor ou moderador)
func (s *ForumService) EditThread(ctx context.Context, actor *entities.User, id string, input ThreadInput) (*entities.Post, error) {
	post, err := s.editablePost(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	previousCategory := post.Category
	post.Category = strings.TrimSpace(input.Category)
	post.Title = input.Title
	post.Body = input.Body
	if err := post.Validate(); err != nil {
		return nil, err
	}
	if post.Category != previousCategory {
		if err := s.categories.RequireActive(ctx, entities.ScopeForum, post.Category); err != nil {
			return nil, err
		}
	}

	post.UpdatedAt = s.clock.Now()
	if err := s.forumRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// EditReply altera o corpo de uma resposta (autor ou moderador)
func (s *ForumService) EditReply(ctx context.Context, actor *entities.User, id, body string) (*entities.Reply, error) {
	reply, err := s.editableReply(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	reply.Body = body
	if err := reply.Validate(); err != nil {
		return nil, err
	}
	reply.UpdatedAt = s.clock.Now()
	if err := s.forumRepo.UpdateReply(ctx, reply); err != nil {
		return nil, err
	}
	return reply, nil
}

// DeleteThread remove o tópico (soft delete)
func (s *ForumService) DeleteThread(ctx context.Context, actor *entities.User, id, reason string) error {
	post, err := s.editablePost(ctx, actor, id)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	post.SoftDelete(actor.ID, reason, now)
	post.UpdatedAt = now
	if err := s.forumRepo.UpdatePost(ctx, post); err != nil {
		return err
	}
	ports.Audit(s.logger).Info("thread deleted", "post_id", id, "by", actor.ID, "reason", post.DeleteReason)
	return nil
}

// RestoreThread desfaz a remoção de um tópico (somente moderadores)
func (s *ForumService) RestoreThread(ctx context.Context, actor *entities.User, id string) (*entities.Post, error) {
	if err := requirePermission(actor, entities.PermissionForumModerate); err != nil {
		return nil, err
	}
	post, err := s.forumRepo.FindPost(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.ErrPostNotFound
	}
	if err := post.Restore(); err != nil {
		return nil, err
	}
	post.UpdatedAt = s.clock.Now()
	if err := s.forumRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	ports.Audit(s.logger).Info("thread restored", "post_id", id, "by", actor.ID)
	return post, nil
}

// DeleteReply remove a resposta e decrementa o contador do tópico
func (s *ForumService) DeleteReply(ctx context.Context, actor *entities.User, id, reason string) error {
	return s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		reply, err := s.editableReply(ctx, actor, id)
		if err != nil {
			return err
		}
		now := s.clock.Now()
		reply.SoftDelete(actor.ID, reason, now)
		reply.UpdatedAt = now
		if err := s.forumRepo.UpdateReply(ctx, reply); err != nil {
			return err
		}
		if err := s.forumRepo.AdjustPost(ctx, reply.PostID, 0, -1, time.Time{}); err != nil {
			return err
		}
		ports.Audit(s.logger).Info("reply deleted", "reply_id", id, "by", actor.ID, "reason", reply.DeleteReason)
		return nil
	})
}

// RestoreReply desfaz a remoção de uma resposta (somente moderadores)
func (s *ForumService) RestoreReply(ctx context.Context, actor *entities.User, id string) (*entities.Reply, error) {
	if err := requirePermission(actor, entities.PermissionForumModerate); err != nil {
		return nil, err
	}

	var reply *entities.Reply
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		reply, err = s.forumRepo.FindReply(ctx, id)
		if err != nil {
			return err
		}
		if reply == nil {
			return errors.ErrReplyNotFound
		}
		if err := reply.Restore(); err != nil {
			return err
		}
		reply.UpdatedAt = s.clock.Now()
		if err := s.forumRepo.UpdateReply(ctx, reply); err != nil {
			return err
		}
		return s.forumRepo.AdjustPost(ctx, reply.PostID, 0, 1, time.Time{})
	})
	if err != nil {
		return nil, err
	}
	ports.Audit(s.logger).Info("reply restored", "reply_id", id, "by", actor.ID)
	return reply, nil
}

// Vote registra +1/-1. Repetir o voto o remove; trocar aplica a diferença.
func (s *ForumService) Vote(ctx context.Context, actor *entities.User, target entities.VoteTarget, targetID string, value int) (*VoteResult, error) {
	if err := requirePermission(actor, entities.PermissionContentCreate); err != nil {
		return nil, err
	}
	if value != 1 && value != -1 {
		return nil, errors.NewValidationError("value", errors.MsgInvalid)
	}

	var result VoteResult
	err := s.uow.WithTransaction(ctx, func(ctx context.Context) error {
		// Votos no mesmo alvo são serializados pela trava da linha
		if err := s.forumRepo.LockVoteTarget(ctx, target, targetID); err != nil {
			return err
		}
		authorID, score, err := s.voteTarget(ctx, target, targetID)
		if err != nil {
			return err
		}
		if authorID == actor.ID {
			return errors.ErrCannotVoteOwn
		}

		existing, err := s.forumRepo.FindVote(ctx, actor.ID, target, targetID)
		if err != nil {
			return err
		}
		newValue, delta := entities.ApplyVote(existing, value)

		if newValue == 0 {
			err = s.forumRepo.DeleteVote(ctx, actor.ID, target, targetID)
		} else {
			err = s.forumRepo.SaveVote(ctx, &entities.Vote{
				UserID:     actor.ID,
				TargetType: target,
				TargetID:   targetID,
				Value:      newValue,
				CreatedAt:  s.clock.Now(),
			})
		}
		if err != nil {
			return err
		}

		if target == entities.VoteTargetPost {
			err = s.forumRepo.AdjustPost(ctx, targetID, delta, 0, time.Time{})
		} else {
			err = s.forumRepo.AdjustReplyScore(ctx, targetID, delta)
		}
		if err != nil {
			return err
		}

		result = VoteResult{Score: score + delta, Value: newValue}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *ForumService) voteTarget(ctx context.Context, target entities.VoteTarget, id string) (authorID string, score int, err error) {
	switch target {
	case entities.VoteTargetPost:
		post, err := s.forumRepo.FindPost(ctx, id, false)
		if err != nil {
			return "", 0, err
		}
		if post == nil {
			return "", 0, errors.ErrPostNotFound
		}
		return post.AuthorID, post.Score, nil
	case entities.VoteTargetReply:
		reply, err := s.forumRepo.FindReply(ctx, id)
		if err != nil {
			return "", 0, err
		}
		if reply == nil || reply.IsDeleted() {
			return "", 0, errors.ErrReplyNotFound
		}
		return reply.AuthorID, reply.Score, nil
	default:
		return "", 0, errors.NewValidationError("target_type", errors.MsgInvalid)
	}
}

// SetPinned fixa ou solta um tópico (somente moderadores)
func (s *ForumService) SetPinned(ctx context.Context, actor *entities.User, id string, pinned bool) (*entities.Post, error) {
	return s.moderate(ctx, actor, id, func(p *entities.Post) { p.IsPinned = pinned }, "thread pin changed")
}

// SetLocked tranca ou destranca um tópico (somente moderadores)
func (s *ForumService) SetLocked(ctx context.Context, actor *entities.User, id string, locked bool) (*entities.Post, error) {
	return s.moderate(ctx, actor, id, func(p *entities.Post) { p.IsLocked = locked }, "thread lock changed")
}

func (s *ForumService) moderate(ctx context.Context, actor *entities.User, id string, apply func(*entities.Post), msg string) (*entities.Post, error) {
	if err := requirePermission(actor, entities.PermissionForumModerate); err != nil {
		return nil, err
	}
	post, err := s.forumRepo.FindPost(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.ErrPostNotFound
	}
	apply(post)
	post.UpdatedAt = s.clock.Now()
	if err := s.forumRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	ports.Audit(s.logger).Info(msg, "post_id", id, "pinned", post.IsPinned, "locked", post.IsLocked, "by", actor.ID)
	return post, nil
}

func (s *ForumService) editablePost(ctx context.Context, actor *entities.User, id string) (*entities.Post, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	post, err := s.forumRepo.FindPost(ctx, id, false)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, errors.ErrPostNotFound
	}
	if !entities.CanEditForum(actor, post.AuthorID) {
		return nil, errors.ErrForbidden
	}
	return post, nil
}

func (s *ForumService) editableReply(ctx context.Context, actor *entities.User, id string) (*entities.Reply, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	reply, err := s.forumRepo.FindReply(ctx, id)
	if err != nil {
		return nil, err
	}
	if reply == nil || reply.IsDeleted() {
		return nil, errors.ErrReplyNotFound
	}
	if !entities.CanEditForum(actor, reply.AuthorID) {
		return nil, errors.ErrForbidden
	}
	return reply, nil
}
