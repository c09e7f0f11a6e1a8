package repositories

import (
	"context"
	"time"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
)

// ForumRepository define a interface para persistência do fórum
type ForumRepository interface {
	CreatePost(ctx context.Context, post *entities.Post) error
	FindPost(ctx context.Context, id string, includeDeleted bool) (*entities.Post, error)
	UpdatePost(ctx context.Context, post *entities.Post) error
	ListPosts(ctx context.Context, filters PostFilters) ([]*entities.Post, int64, error)
	// AdjustPost soma deltas ao score e ao contador de respostas.
	// touchedAt não zero atualiza last_activity_at.
	AdjustPost(ctx context.Context, id string, scoreDelta, replyDelta int, touchedAt time.Time) error

	CreateReply(ctx context.Context, reply *entities.Reply) error
	FindReply(ctx context.Context, id string) (*entities.Reply, error)
	UpdateReply(ctx context.Context, reply *entities.Reply) error
	ListReplies(ctx context.Context, postID string) ([]*entities.Reply, error)
	AdjustReplyScore(ctx context.Context, id string, delta int) error

	// LockVoteTarget trava o tópico ou resposta até o fim da transação,
	// serializando votos concorrentes no mesmo alvo
	LockVoteTarget(ctx context.Context, target entities.VoteTarget, targetID string) error
	FindVote(ctx context.Context, userID string, target entities.VoteTarget, targetID string) (*entities.Vote, error)
	SaveVote(ctx context.Context, vote *entities.Vote) error
	DeleteVote(ctx context.Context, userID string, target entities.VoteTarget, targetID string) error
}

// PostFilters contém filtros para listagem de tópicos
type PostFilters struct {
	Category       string
	Search         string
	AuthorID       string
	IncludeDeleted bool
	Pagination
}
