package dto

import (
	"time"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

// ThreadRequest representa a requisição para criar ou editar um tópico
type ThreadRequest struct {
	Category string `json:"category" binding:"required,max=80"`
	Title    string `json:"title" binding:"required,max=200"`
	Body     string `json:"body" binding:"required,max=20000"`
}

// ToInput converte para o input do service
func (r ThreadRequest) ToInput() services.ThreadInput {
	return services.ThreadInput{Category: r.Category, Title: r.Title, Body: r.Body}
}

// ReplyRequest representa a requisição para responder ou editar uma resposta
type ReplyRequest struct {
	Body string `json:"body" binding:"required,max=20000"`
}

// DeleteRequest carrega o motivo opcional de uma remoção
type DeleteRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// VoteRequest representa um voto; repetir o mesmo valor remove o voto
type VoteRequest struct {
	Value int `json:"value" binding:"required,oneof=1 -1"`
}

// PinRequest fixa ou desafixa um tópico
type PinRequest struct {
	Pinned *bool `json:"pinned" binding:"required"`
}

// LockRequest trava ou destrava um tópico
type LockRequest struct {
	Locked *bool `json:"locked" binding:"required"`
}

// ThreadListQuery filtra a listagem de tópicos
type ThreadListQuery struct {
	Category       string `form:"category" binding:"omitempty,max=80"`
	Search         string `form:"search" binding:"omitempty,max=100"`
	IncludeDeleted bool   `form:"include_deleted"`
	PageQuery
}

// ToQuery converte para a consulta do service
func (q ThreadListQuery) ToQuery() services.ThreadQuery {
	return services.ThreadQuery{
		Category:       q.Category,
		Search:         q.Search,
		IncludeDeleted: q.IncludeDeleted,
		Pagination:     q.Pagination(),
	}
}

// DeletionResponse descreve uma remoção lógica
type DeletionResponse struct {
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
	DeletedBy    *string    `json:"deleted_by,omitempty"`
	DeleteReason string     `json:"delete_reason,omitempty"`
}

// PostResponse representa um tópico do fórum
type PostResponse struct {
	ID             string    `json:"id"`
	Category       string    `json:"category"`
	AuthorID       string    `json:"author_id"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	Score          int       `json:"score"`
	ReplyCount     int       `json:"reply_count"`
	IsPinned       bool      `json:"is_pinned"`
	IsLocked       bool      `json:"is_locked"`
	LastActivityAt time.Time `json:"last_activity_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
	DeletionResponse
}

// ReplyResponse representa uma resposta. Respostas removidas chegam
// sem corpo para quem não modera o fórum.
type ReplyResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	Score     int       `json:"score"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	DeletionResponse
}

// ThreadResponse representa um tópico com suas respostas
type ThreadResponse struct {
	PostResponse
	Replies []ReplyResponse `json:"replies"`
}

// VoteResponse contém o novo score e o voto atual do usuário
type VoteResponse struct {
	Score int `json:"score"`
	Value int `json:"value"`
}

func toDeletionResponse(s entities.SoftDeletion) DeletionResponse {
	return DeletionResponse{DeletedAt: s.DeletedAt, DeletedBy: s.DeletedBy, DeleteReason: s.DeleteReason}
}

// ToPostResponse converte uma entidade Post
func ToPostResponse(p *entities.Post) PostResponse {
	return PostResponse{
		ID:               p.ID,
		Category:         p.Category,
		AuthorID:         p.AuthorID,
		Title:            p.Title,
		Body:             p.Body,
		Score:            p.Score,
		ReplyCount:       p.ReplyCount,
		IsPinned:         p.IsPinned,
		IsLocked:         p.IsLocked,
		LastActivityAt:   p.LastActivityAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
		DeletionResponse: toDeletionResponse(p.SoftDeletion),
	}
}

// ToReplyResponse converte uma entidade Reply
func ToReplyResponse(r *entities.Reply) ReplyResponse {
	return ReplyResponse{
		ID:               r.ID,
		PostID:           r.PostID,
		AuthorID:         r.AuthorID,
		Body:             r.Body,
		Score:            r.Score,
		IsDeleted:        r.IsDeleted(),
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
		DeletionResponse: toDeletionResponse(r.SoftDeletion),
	}
}

// ToThreadResponse converte um tópico com respostas
func ToThreadResponse(t *services.Thread) ThreadResponse {
	replies := make([]ReplyResponse, len(t.Replies))
	for i, r := range t.Replies {
		replies[i] = ToReplyResponse(r)
	}
	return ThreadResponse{PostResponse: ToPostResponse(t.Post), Replies: replies}
}
