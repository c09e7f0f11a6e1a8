package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/handlers/dto"
	"github.com/gabriola-connects/portal-backend/internal/handlers/middleware"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

// EventHandler lida com o calendário comunitário
type EventHandler struct {
	eventService *services.EventService
	location     *time.Location
}

// NewEventHandler cria um novo EventHandler. location interpreta datas sem fuso.
func NewEventHandler(eventService *services.EventService, location *time.Location) *EventHandler {
	return &EventHandler{eventService: eventService, location: location}
}

// Calendar lista os eventos aprovados
//
//	@Summary	Calendário público
//	@Tags		events
//	@Produce	json
//	@Param		from		query		string	false	"Início (RFC 3339 ou YYYY-MM-DD); padrão agora"
//	@Param		to			query		string	false	"Fim (RFC 3339 ou YYYY-MM-DD)"
//	@Param		category	query		string	false	"Slug da categoria"
//	@Param		page		query		int		false	"Página"
//	@Param		page_size	query		int		false	"Itens por página"
//	@Success	200			{object}	dto.PageResponse[dto.EventResponse]
//	@Failure	400			{object}	dto.ErrorResponse
//	@Router		/events [get]
func (h *EventHandler) Calendar(c *gin.Context) {
	var query dto.CalendarQuery
	if !dto.BindQuery(c, &query) {
		return
	}
	from, err := parseTimeParam("from", query.From, h.location)
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	to, err := parseTimeParam("to", query.To, h.location)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	page, err := h.eventService.Calendar(c.Request.Context(), services.CalendarQuery{
		From:       from,
		To:         to,
		Category:   query.Category,
		Pagination: query.Pagination(),
	})
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(page, dto.ToEventResponse))
}

// Pending lista a fila de aprovação
//
//	@Summary	Eventos pendentes
//	@Tags		events
//	@Produce	json
//	@Security	BearerAuth
//	@Param		page		query		int	false	"Página"
//	@Param		page_size	query		int	false	"Itens por página"
//	@Success	200			{object}	dto.PageResponse[dto.EventResponse]
//	@Failure	403			{object}	dto.ErrorResponse
//	@Router		/events/pending [get]
func (h *EventHandler) Pending(c *gin.Context) {
	var query dto.PageQuery
	if !dto.BindQuery(c, &query) {
		return
	}

	page, err := h.eventService.Pending(c.Request.Context(), middleware.CurrentUser(c), query.Pagination())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(page, dto.ToEventResponse))
}

// Mine lista os eventos enviados pelo usuário
//
//	@Summary	Meus eventos
//	@Tags		events
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.PageResponse[dto.EventResponse]
//	@Router		/events/mine [get]
func (h *EventHandler) Mine(c *gin.Context) {
	var query dto.PageQuery
	if !dto.BindQuery(c, &query) {
		return
	}

	page, err := h.eventService.Mine(c.Request.Context(), middleware.CurrentUser(c), query.Pagination())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(page, dto.ToEventResponse))
}

// Get busca um evento
//
//	@Summary	Detalhe do evento
//	@Tags		events
//	@Produce	json
//	@Param		id	path		string	true	"ID do evento"
//	@Success	200	{object}	dto.EventResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	id, ok := pathID(c, errors.ErrEventNotFound)
	if !ok {
		return
	}

	event, err := h.eventService.Get(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

// Create envia um evento; administradores de eventos publicam direto
//
//	@Summary	Cria evento
//	@Tags		events
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.EventRequest	true	"Evento"
//	@Success	201		{object}	dto.EventResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var req dto.EventRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), middleware.CurrentUser(c), req.ToInput())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

// Update edita um evento
//
//	@Summary	Edita evento
//	@Tags		events
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"ID do evento"
//	@Param		request	body		dto.EventRequest	true	"Evento"
//	@Success	200		{object}	dto.EventResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	id, ok := pathID(c, errors.ErrEventNotFound)
	if !ok {
		return
	}
	var req dto.EventRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), middleware.CurrentUser(c), id, req.ToInput())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

// Approve aprova um evento pendente
//
//	@Summary	Aprova evento
//	@Tags		events
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do evento"
//	@Success	200	{object}	dto.EventResponse
//	@Failure	409	{object}	dto.ErrorResponse
//	@Router		/events/{id}/approve [post]
func (h *EventHandler) Approve(c *gin.Context) {
	id, ok := pathID(c, errors.ErrEventNotFound)
	if !ok {
		return
	}

	event, err := h.eventService.Approve(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

// Reject rejeita um evento pendente
//
//	@Summary	Rejeita evento
//	@Tags		events
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string					true	"ID do evento"
//	@Param		request	body		dto.RejectEventRequest	true	"Motivo"
//	@Success	200		{object}	dto.EventResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/events/{id}/reject [post]
func (h *EventHandler) Reject(c *gin.Context) {
	id, ok := pathID(c, errors.ErrEventNotFound)
	if !ok {
		return
	}
	var req dto.RejectEventRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	event, err := h.eventService.Reject(c.Request.Context(), middleware.CurrentUser(c), id, req.Reason)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

// Delete remove um evento (soft delete)
//
//	@Summary	Remove evento
//	@Tags		events
//	@Security	BearerAuth
//	@Param		id	path	string	true	"ID do evento"
//	@Success	204
//	@Failure	403	{object}	dto.ErrorResponse
//	@Router		/events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, errors.ErrEventNotFound)
	if !ok {
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		dto.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Restore restaura um evento removido
//
//	@Summary	Restaura evento
//	@Tags		events
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do evento"
//	@Success	200	{object}	dto.EventResponse
//	@Failure	409	{object}	dto.ErrorResponse
//	@Router		/events/{id}/restore [post]
func (h *EventHandler) Restore(c *gin.Context) {
	id, ok := pathID(c, errors.ErrEventNotFound)
	if !ok {
		return
	}

	event, err := h.eventService.Restore(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}
