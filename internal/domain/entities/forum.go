package entities

import (
	"strings"
	"time"
	"unicode/utf8"

	domainerrors "github.com/gabriola-connects/portal-backend/internal/domain/errors"
)

// Post representa um tópico (thread) do fórum
type Post struct {
	ID             string
	Category       string
	AuthorID       string
	Title          string
	Body           string
	Score          int
	ReplyCount     int
	IsPinned       bool
	IsLocked       bool
	LastActivityAt time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	SoftDeletion
}

// Reply representa uma resposta a um tópico
type Reply struct {
	ID        string
	PostID    string
	AuthorID  string
	Body      string
	Score     int
	CreatedAt time.Time
	UpdatedAt time.Time
	SoftDeletion
}

// SoftDeletion guarda quem removeu o conteúdo e por quê
type SoftDeletion struct {
	DeletedAt    *time.Time
	DeletedBy    *string
	DeleteReason string
}

// IsDeleted verifica se o conteúdo foi deletado (soft delete)
func (s *SoftDeletion) IsDeleted() bool {
	return s.DeletedAt != nil
}

// SoftDelete marca o conteúdo como deletado
func (s *SoftDeletion) SoftDelete(by, reason string, now time.Time) {
	s.DeletedAt = &now
	s.DeletedBy = &by
	s.DeleteReason = strings.TrimSpace(reason)
}

// Restore restaura um conteúdo deletado
func (s *SoftDeletion) Restore() error {
	if s.DeletedAt == nil {
		return domainerrors.ErrNotDeleted
	}
	s.DeletedAt = nil
	s.DeletedBy = nil
	s.DeleteReason = ""
	return nil
}

// CanEditForum indica se o usuário pode editar ou remover conteúdo do autor
func CanEditForum(u *User, authorID string) bool {
	if u == nil {
		return false
	}
	if u.HasPermission(PermissionForumModerate) {
		return true
	}
	return u.ID == authorID && u.HasPermission(PermissionContentCreate)
}

// Validate valida regras de negócio da entidade Post
func (p *Post) Validate() error {
	p.Title = strings.TrimSpace(p.Title)
	p.Body = strings.TrimSpace(p.Body)
	if p.Category == "" {
		return domainerrors.NewValidationError("category", domainerrors.MsgRequired)
	}
	if p.Title == "" {
		return domainerrors.NewValidationError("title", domainerrors.MsgRequired)
	}
	if utf8.RuneCountInString(p.Title) > 200 {
		return domainerrors.NewValidationError("title", domainerrors.MsgTooLong)
	}
	return validateBody(p.Body)
}

// Validate valida regras de negócio da entidade Reply
func (r *Reply) Validate() error {
	r.Body = strings.TrimSpace(r.Body)
	return validateBody(r.Body)
}

func validateBody(body string) error {
	if body == "" {
		return domainerrors.NewValidationError("body", domainerrors.MsgRequired)
	}
	if utf8.RuneCountInString(body) > 20000 {
		return domainerrors.NewValidationError("body", domainerrors.MsgTooLong)
	}
	return nil
}

// VoteTarget indica o tipo de conteúdo votado
type VoteTarget string

const (
	VoteTargetPost  VoteTarget = "post"
	VoteTargetReply VoteTarget = "reply"
)

// Vote representa o voto de um usuário em um tópico ou resposta
type Vote struct {
	UserID     string
	TargetType VoteTarget
	TargetID   string
	Value      int
	CreatedAt  time.Time
}

// ApplyVote calcula o novo valor do voto e a variação do score.
// Repetir o mesmo voto o remove (novo valor 0); trocar aplica a diferença.
func ApplyVote(existing *Vote, value int) (newValue, delta int) {
	if existing == nil || existing.Value == 0 {
		return value, value
	}
	if existing.Value == value {
		return 0, -value
	}
	return value, value - existing.Value
}
