package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
)

// ForumRepository implementa repositories.ForumRepository
type ForumRepository struct {
	db *gorm.DB
}

// NewForumRepository cria um novo ForumRepository
func NewForumRepository(db *gorm.DB) repositories.ForumRepository {
	return &ForumRepository{db: db}
}

func (r *ForumRepository) CreatePost(ctx context.Context, post *entities.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	model := toPostModel(post)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	post.CreatedAt = fromUnix(model.CreatedAt)
	post.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *ForumRepository) FindPost(ctx context.Context, id string, includeDeleted bool) (*entities.Post, error) {
	var model PostModel

	query := dbFromContext(ctx, r.db).Where("id = ?", id)
	if !includeDeleted {
		query = query.Where("deleted_at IS NULL")
	}
	if err := query.First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toPostEntity(&model), nil
}

func (r *ForumRepository) UpdatePost(ctx context.Context, post *entities.Post) error {
	model := toPostModel(post)
	// Contadores só mudam via AdjustPost
	if err := dbFromContext(ctx, r.db).Omit("score", "reply_count").Save(model).Error; err != nil {
		return err
	}
	post.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *ForumRepository) ListPosts(ctx context.Context, filters repositories.PostFilters) ([]*entities.Post, int64, error) {
	var models []*PostModel

	query := dbFromContext(ctx, r.db).Model(&PostModel{})
	if !filters.IncludeDeleted {
		query = query.Where("deleted_at IS NULL")
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.AuthorID != "" {
		query = query.Where("author_id = ?", filters.AuthorID)
	}
	if filters.Search != "" {
		query = query.Where("LOWER(title) LIKE ? ESCAPE '\\'", likePattern(filters.Search))
	}

	// Session permite reutilizar a query para count e busca
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := paginate(query, filters.Pagination).
		Order("is_pinned DESC, last_activity_at DESC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	out := make([]*entities.Post, len(models))
	for i, m := range models {
		out[i] = toPostEntity(m)
	}
	return out, total, nil
}

func (r *ForumRepository) AdjustPost(ctx context.Context, id string, scoreDelta, replyDelta int, touchedAt time.Time) error {
	updates := map[string]any{
		"score":       gorm.Expr("score + ?", scoreDelta),
		"reply_count": gorm.Expr("reply_count + ?", replyDelta),
	}
	if !touchedAt.IsZero() {
		updates["last_activity_at"] = touchedAt.Unix()
	}
	return dbFromContext(ctx, r.db).Model(&PostModel{}).Where("id = ?", id).Updates(updates).Error
}

func (r *ForumRepository) CreateReply(ctx context.Context, reply *entities.Reply) error {
	if reply.ID == "" {
		reply.ID = uuid.NewString()
	}
	model := toReplyModel(reply)
	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		return err
	}
	reply.CreatedAt = fromUnix(model.CreatedAt)
	reply.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *ForumRepository) FindReply(ctx context.Context, id string) (*entities.Reply, error) {
	var model ReplyModel
	if err := dbFromContext(ctx, r.db).Where("id = ?", id).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return toReplyEntity(&model), nil
}

func (r *ForumRepository) UpdateReply(ctx context.Context, reply *entities.Reply) error {
	model := toReplyModel(reply)
	if err := dbFromContext(ctx, r.db).Omit("score").Save(model).Error; err != nil {
		return err
	}
	reply.UpdatedAt = fromUnix(model.UpdatedAt)
	return nil
}

func (r *ForumRepository) ListReplies(ctx context.Context, postID string) ([]*entities.Reply, error) {
	var models []*ReplyModel
	err := dbFromContext(ctx, r.db).
		Where("post_id = ?", postID).
		Order("created_at ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	out := make([]*entities.Reply, len(models))
	for i, m := range models {
		out[i] = toReplyEntity(m)
	}
	return out, nil
}

func (r *ForumRepository) AdjustReplyScore(ctx context.Context, id string, delta int) error {
	return dbFromContext(ctx, r.db).Model(&ReplyModel{}).
		Where("id = ?", id).
		Update("score", gorm.Expr("score + ?", delta)).Error
}

func (r *ForumRepository) LockVoteTarget(ctx context.Context, target entities.VoteTarget, targetID string) error {
	var model any
	switch target {
	case entities.VoteTargetPost:
		model = &PostModel{}
	case entities.VoteTargetReply:
		model = &ReplyModel{}
	default:
		return nil
	}

	// SQLite ignora FOR UPDATE; lá a escrita já é serializada pelo banco
	err := dbFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").
		Where("id = ?", targetID).
		Take(model).Error
	if isNotFound(err) {
		return nil
	}
	return err
}

func (r *ForumRepository) FindVote(ctx context.Context, userID string, target entities.VoteTarget, targetID string) (*entities.Vote, error) {
	var model VoteModel
	err := dbFromContext(ctx, r.db).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, string(target), targetID).
		First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return &entities.Vote{
		UserID:     model.UserID,
		TargetType: entities.VoteTarget(model.TargetType),
		TargetID:   model.TargetID,
		Value:      model.Value,
		CreatedAt:  fromUnix(model.CreatedAt),
	}, nil
}

func (r *ForumRepository) SaveVote(ctx context.Context, vote *entities.Vote) error {
	model := &VoteModel{
		UserID:     vote.UserID,
		TargetType: string(vote.TargetType),
		TargetID:   vote.TargetID,
		Value:      vote.Value,
		CreatedAt:  toUnix(vote.CreatedAt),
	}
	return dbFromContext(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "target_type"}, {Name: "target_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(model).Error
}

func (r *ForumRepository) DeleteVote(ctx context.Context, userID string, target entities.VoteTarget, targetID string) error {
	return dbFromContext(ctx, r.db).
		Where("user_id = ? AND target_type = ? AND target_id = ?", userID, string(target), targetID).
		Delete(&VoteModel{}).Error
}

func toPostModel(p *entities.Post) *PostModel {
	return &PostModel{
		ID:             p.ID,
		Category:       p.Category,
		AuthorID:       p.AuthorID,
		Title:          p.Title,
		Body:           p.Body,
		Score:          p.Score,
		ReplyCount:     p.ReplyCount,
		IsPinned:       p.IsPinned,
		IsLocked:       p.IsLocked,
		LastActivityAt: toUnix(p.LastActivityAt),
		DeletedAt:      toUnixPtr(p.DeletedAt),
		DeletedBy:      p.DeletedBy,
		DeleteReason:   p.DeleteReason,
		CreatedAt:      toUnix(p.CreatedAt),
		UpdatedAt:      toUnix(p.UpdatedAt),
	}
}

func toPostEntity(m *PostModel) *entities.Post {
	return &entities.Post{
		ID:             m.ID,
		Category:       m.Category,
		AuthorID:       m.AuthorID,
		Title:          m.Title,
		Body:           m.Body,
		Score:          m.Score,
		ReplyCount:     m.ReplyCount,
		IsPinned:       m.IsPinned,
		IsLocked:       m.IsLocked,
		LastActivityAt: fromUnix(m.LastActivityAt),
		CreatedAt:      fromUnix(m.CreatedAt),
		UpdatedAt:      fromUnix(m.UpdatedAt),
		SoftDeletion: entities.SoftDeletion{
			DeletedAt:    fromUnixPtr(m.DeletedAt),
			DeletedBy:    m.DeletedBy,
			DeleteReason: m.DeleteReason,
		},
	}
}

func toReplyModel(r *entities.Reply) *ReplyModel {
	return &ReplyModel{
		ID:           r.ID,
		PostID:       r.PostID,
		AuthorID:     r.AuthorID,
		Body:         r.Body,
		Score:        r.Score,
		DeletedAt:    toUnixPtr(r.DeletedAt),
		DeletedBy:    r.DeletedBy,
		DeleteReason: r.DeleteReason,
		CreatedAt:    toUnix(r.CreatedAt),
		UpdatedAt:    toUnix(r.UpdatedAt),
	}
}

func toReplyEntity(m *ReplyModel) *entities.Reply {
	return &entities.Reply{
		ID:        m.ID,
		PostID:    m.PostID,
		AuthorID:  m.AuthorID,
		Body:      m.Body,
		Score:     m.Score,
		CreatedAt: fromUnix(m.CreatedAt),
		UpdatedAt: fromUnix(m.UpdatedAt),
		SoftDeletion: entities.SoftDeletion{
			DeletedAt:    fromUnixPtr(m.DeletedAt),
			DeletedBy:    m.DeletedBy,
			DeleteReason: m.DeleteReason,
		},
	}
}
