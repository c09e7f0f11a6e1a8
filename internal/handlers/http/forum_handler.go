package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/handlers/dto"
	"github.com/gabriola-connects/portal-backend/internal/handlers/middleware"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

// ForumHandler lida com tópicos, respostas e votos do fórum
type ForumHandler struct {
	forumService *services.ForumService
}

// NewForumHandler cria um novo ForumHandler
func NewForumHandler(forumService *services.ForumService) *ForumHandler {
	return &ForumHandler{forumService: forumService}
}

// ListThreads lista os tópicos
//
//	@Summary	Lista tópicos
//	@Tags		forum
//	@Produce	json
//	@Param		category		query		string	false	"Slug da categoria"
//	@Param		search			query		string	false	"Busca no título"
//	@Param		include_deleted	query		bool	false	"Inclui removidos (moderadores)"
//	@Param		page			query		int		false	"Página"
//	@Param		page_size		query		int		false	"Itens por página"
//	@Success	200				{object}	dto.PageResponse[dto.PostResponse]
//	@Router		/forum/threads [get]
func (h *ForumHandler) ListThreads(c *gin.Context) {
	var query dto.ThreadListQuery
	if !dto.BindQuery(c, &query) {
		return
	}

	page, err := h.forumService.ListThreads(c.Request.Context(), middleware.CurrentUser(c), query.ToQuery())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(page, dto.ToPostResponse))
}

// GetThread busca um tópico com suas respostas
//
//	@Summary	Detalhe do tópico
//	@Tags		forum
//	@Produce	json
//	@Param		id	path		string	true	"ID do tópico"
//	@Success	200	{object}	dto.ThreadResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/forum/threads/{id} [get]
func (h *ForumHandler) GetThread(c *gin.Context) {
	id, ok := pathID(c, errors.ErrPostNotFound)
	if !ok {
		return
	}

	thread, err := h.forumService.GetThread(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToThreadResponse(thread))
}

// CreateThread cria um tópico
//
//	@Summary	Cria tópico
//	@Tags		forum
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.ThreadRequest	true	"Tópico"
//	@Success	201		{object}	dto.PostResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/forum/threads [post]
func (h *ForumHandler) CreateThread(c *gin.Context) {
	var req dto.ThreadRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	post, err := h.forumService.CreateThread(c.Request.Context(), middleware.CurrentUser(c), req.ToInput())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostResponse(post))
}

// EditThread edita um tópico
//
//	@Summary	Edita tópico
//	@Tags		forum
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"ID do tópico"
//	@Param		request	body		dto.ThreadRequest	true	"Tópico"
//	@Success	200		{object}	dto.PostResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/forum/threads/{id} [put]
func (h *ForumHandler) EditThread(c *gin.Context) {
	id, ok := pathID(c, errors.ErrPostNotFound)
	if !ok {
		return
	}
	var req dto.ThreadRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	post, err := h.forumService.EditThread(c.Request.Context(), middleware.CurrentUser(c), id, req.ToInput())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// DeleteThread remove um tópico (soft delete)
//
//	@Summary	Remove tópico
//	@Tags		forum
//	@Accept		json
//	@Security	BearerAuth
//	@Param		id		path	string				true	"ID do tópico"
//	@Param		request	body	dto.DeleteRequest	false	"Motivo"
//	@Success	204
//	@Failure	403	{object}	dto.ErrorResponse
//	@Router		/forum/threads/{id} [delete]
func (h *ForumHandler) DeleteThread(c *gin.Context) {
	id, ok := pathID(c, errors.ErrPostNotFound)
	if !ok {
		return
	}
	var req dto.DeleteRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	if err := h.forumService.DeleteThread(c.Request.Context(), middleware.CurrentUser(c), id, req.Reason); err != nil {
		dto.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RestoreThread restaura um tópico removido
//
//	@Summary	Restaura tópico
//	@Tags		forum
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do tópico"
//	@Success	200	{object}	dto.PostResponse
//	@Failure	409	{object}	dto.ErrorResponse
//	@Router		/forum/threads/{id}/restore [post]
func (h *ForumHandler) RestoreThread(c *gin.Context) {
	id, ok := pathID(c, errors.ErrPostNotFound)
	if !ok {
		return
	}

	post, err := h.forumService.RestoreThread(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// Reply responde um tópico
//
//	@Summary	Responde tópico
//	@Tags		forum
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"ID do tópico"
//	@Param		request	body		dto.ReplyRequest	true	"Resposta"
//	@Success	201		{object}	dto.ReplyResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/forum/threads/{id}/replies [post]
func (h *ForumHandler) Reply(c *gin.Context) {
	id, ok := pathID(c, errors.ErrPostNotFound)
	if !ok {
		return
	}
	var req dto.ReplyRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	reply, err := h.forumService.Reply(c.Request.Context(), middleware.CurrentUser(c), id, req.Body)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReplyResponse(reply))
}

// SetPinned fixa ou desafixa um tópico
//
//	@Summary	Fixa tópico
//	@Tags		forum
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"ID do tópico"
//	@Param		request	body		dto.PinRequest	true	"Estado"
//	@Success	200		{object}	dto.PostResponse
//	@Router		/forum/threads/{id}/pin [post]
func (h *ForumHandler) SetPinned(c *gin.Context) {
	id, ok := pathID(c, errors.ErrPostNotFound)
	if !ok {
		return
	}
	var req dto.PinRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	post, err := h.forumService.SetPinned(c.Request.Context(), middleware.CurrentUser(c), id, *req.Pinned)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// SetLocked trava ou destrava um tópico
//
//	@Summary	Trava tópico
//	@Tags		forum
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"ID do tópico"
//	@Param		request	body		dto.LockRequest	true	"Estado"
//	@Success	200		{object}	dto.PostResponse
//	@Router		/forum/threads/{id}/lock [post]
func (h *ForumHandler) SetLocked(c *gin.Context) {
	id, ok := pathID(c, errors.ErrPostNotFound)
	if !ok {
		return
	}
	var req dto.LockRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	post, err := h.forumService.SetLocked(c.Request.Context(), middleware.CurrentUser(c), id, *req.Locked)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostResponse(post))
}

// VoteThread vota em um tópico
//
//	@Summary	Vota em tópico
//	@Tags		forum
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"ID do tópico"
//	@Param		request	body		dto.VoteRequest	true	"Voto (1 ou -1)"
//	@Success	200		{object}	dto.VoteResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/forum/threads/{id}/vote [post]
func (h *ForumHandler) VoteThread(c *gin.Context) {
	h.vote(c, entities.VoteTargetPost, errors.ErrPostNotFound)
}

// EditReply edita uma resposta
//
//	@Summary	Edita resposta
//	@Tags		forum
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"ID da resposta"
//	@Param		request	body		dto.ReplyRequest	true	"Resposta"
//	@Success	200		{object}	dto.ReplyResponse
//	@Router		/forum/replies/{id} [put]
func (h *ForumHandler) EditReply(c *gin.Context) {
	id, ok := pathID(c, errors.ErrReplyNotFound)
	if !ok {
		return
	}
	var req dto.ReplyRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	reply, err := h.forumService.EditReply(c.Request.Context(), middleware.CurrentUser(c), id, req.Body)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReplyResponse(reply))
}

// DeleteReply remove uma resposta (soft delete)
//
//	@Summary	Remove resposta
//	@Tags		forum
//	@Accept		json
//	@Security	BearerAuth
//	@Param		id		path	string				true	"ID da resposta"
//	@Param		request	body	dto.DeleteRequest	false	"Motivo"
//	@Success	204
//	@Router		/forum/replies/{id} [delete]
func (h *ForumHandler) DeleteReply(c *gin.Context) {
	id, ok := pathID(c, errors.ErrReplyNotFound)
	if !ok {
		return
	}
	var req dto.DeleteRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	if err := h.forumService.DeleteReply(c.Request.Context(), middleware.CurrentUser(c), id, req.Reason); err != nil {
		dto.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RestoreReply restaura uma resposta removida
//
//	@Summary	Restaura resposta
//	@Tags		forum
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID da resposta"
//	@Success	200	{object}	dto.ReplyResponse
//	@Router		/forum/replies/{id}/restore [post]
func (h *ForumHandler) RestoreReply(c *gin.Context) {
	id, ok := pathID(c, errors.ErrReplyNotFound)
	if !ok {
		return
	}

	reply, err := h.forumService.RestoreReply(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReplyResponse(reply))
}

// VoteReply vota em uma resposta
//
//	@Summary	Vota em resposta
//	@Tags		forum
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"ID da resposta"
//	@Param		request	body		dto.VoteRequest	true	"Voto (1 ou -1)"
//	@Success	200		{object}	dto.VoteResponse
//	@Router		/forum/replies/{id}/vote [post]
func (h *ForumHandler) VoteReply(c *gin.Context) {
	h.vote(c, entities.VoteTargetReply, errors.ErrReplyNotFound)
}

func (h *ForumHandler) vote(c *gin.Context, target entities.VoteTarget, notFound error) {
	id, ok := pathID(c, notFound)
	if !ok {
		return
	}
	var req dto.VoteRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	result, err := h.forumService.Vote(c.Request.Context(), middleware.CurrentUser(c), target, id, req.Value)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.VoteResponse{Score: result.Score, Value: result.Value})
}
