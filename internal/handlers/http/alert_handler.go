package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/handlers/dto"
	"github.com/gabriola-connects/portal-backend/internal/handlers/middleware"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

// AlertHandler lida com os alertas à comunidade
type AlertHandler struct {
	alertService *services.AlertService
}

// NewAlertHandler cria um novo AlertHandler
func NewAlertHandler(alertService *services.AlertService) *AlertHandler {
	return &AlertHandler{alertService: alertService}
}

// Active lista os alertas ativos, dos mais graves aos mais leves
//
//	@Summary	Alertas ativos
//	@Tags		alerts
//	@Produce	json
//	@Success	200	{object}	dto.ListResponse[dto.AlertResponse]
//	@Router		/alerts [get]
func (h *AlertHandler) Active(c *gin.Context) {
	alerts, err := h.alertService.Active(c.Request.Context())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(alerts, dto.ToAlertResponse))
}

// Archived lista os alertas arquivados
//
//	@Summary	Alertas arquivados
//	@Tags		alerts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		page		query		int	false	"Página"
//	@Param		page_size	query		int	false	"Itens por página"
//	@Success	200			{object}	dto.PageResponse[dto.AlertResponse]
//	@Failure	403			{object}	dto.ErrorResponse
//	@Router		/alerts/archived [get]
func (h *AlertHandler) Archived(c *gin.Context) {
	var query dto.PageQuery
	if !dto.BindQuery(c, &query) {
		return
	}

	page, err := h.alertService.Archived(c.Request.Context(), middleware.CurrentUser(c), query.Pagination())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(page, dto.ToAlertResponse))
}

// Create publica um alerta
//
//	@Summary	Cria alerta
//	@Tags		alerts
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.AlertRequest	true	"Alerta"
//	@Success	201		{object}	dto.AlertResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/alerts [post]
func (h *AlertHandler) Create(c *gin.Context) {
	var req dto.AlertRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	alert, err := h.alertService.Create(c.Request.Context(), middleware.CurrentUser(c), req.ToInput())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToAlertResponse(alert))
}

// Update edita um alerta
//
//	@Summary	Edita alerta
//	@Tags		alerts
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"ID do alerta"
//	@Param		request	body		dto.AlertRequest	true	"Alerta"
//	@Success	200		{object}	dto.AlertResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/alerts/{id} [put]
func (h *AlertHandler) Update(c *gin.Context) {
	id, ok := pathID(c, errors.ErrAlertNotFound)
	if !ok {
		return
	}
	var req dto.AlertRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	alert, err := h.alertService.Update(c.Request.Context(), middleware.CurrentUser(c), id, req.ToInput())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAlertResponse(alert))
}

// Archive arquiva um alerta
//
//	@Summary	Arquiva alerta
//	@Tags		alerts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do alerta"
//	@Success	200	{object}	dto.AlertResponse
//	@Router		/alerts/{id}/archive [post]
func (h *AlertHandler) Archive(c *gin.Context) {
	id, ok := pathID(c, errors.ErrAlertNotFound)
	if !ok {
		return
	}

	alert, err := h.alertService.Archive(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAlertResponse(alert))
}

// Unarchive reativa um alerta arquivado que ainda não expirou
//
//	@Summary	Reativa alerta
//	@Tags		alerts
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do alerta"
//	@Success	200	{object}	dto.AlertResponse
//	@Failure	400	{object}	dto.ErrorResponse
//	@Router		/alerts/{id}/unarchive [post]
func (h *AlertHandler) Unarchive(c *gin.Context) {
	id, ok := pathID(c, errors.ErrAlertNotFound)
	if !ok {
		return
	}

	alert, err := h.alertService.Unarchive(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAlertResponse(alert))
}

// Delete apaga um alerta definitivamente
//
//	@Summary	Apaga alerta
//	@Tags		alerts
//	@Security	BearerAuth
//	@Param		id	path	string	true	"ID do alerta"
//	@Success	204
//	@Router		/alerts/{id} [delete]
func (h *AlertHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, errors.ErrAlertNotFound)
	if !ok {
		return
	}

	if err := h.alertService.Delete(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		dto.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
