package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gabriola-connects/portal-backend/internal/handlers/dto"
	"github.com/gabriola-connects/portal-backend/internal/handlers/middleware"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

// DirectoryHandler lida com o diretório de negócios locais
type DirectoryHandler struct {
	directoryService *services.DirectoryService
}

// NewDirectoryHandler cria um novo DirectoryHandler
func NewDirectoryHandler(directoryService *services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

// List lista os negócios ativos
//
//	@Summary	Lista o diretório
//	@Tags		directory
//	@Produce	json
//	@Param		category	query		string	false	"Slug da categoria"
//	@Param		search		query		string	false	"Busca em nome e descrição"
//	@Param		page		query		int		false	"Página"
//	@Param		page_size	query		int		false	"Itens por página"
//	@Success	200			{object}	dto.PageResponse[dto.BusinessResponse]
//	@Router		/directory [get]
func (h *DirectoryHandler) List(c *gin.Context) {
	var query dto.DirectoryListQuery
	if !dto.BindQuery(c, &query) {
		return
	}

	page, err := h.directoryService.List(c.Request.Context(), query.ToQuery())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(page, dto.ToBusinessResponse))
}

// Get busca um negócio pelo slug
//
//	@Summary	Detalhe do negócio
//	@Tags		directory
//	@Produce	json
//	@Param		slug	path		string	true	"Slug do negócio"
//	@Success	200		{object}	dto.BusinessResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/directory/{slug} [get]
func (h *DirectoryHandler) Get(c *gin.Context) {
	business, err := h.directoryService.GetBySlug(c.Request.Context(), middleware.CurrentUser(c), c.Param("slug"))
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

// Create cadastra um negócio
//
//	@Summary	Cadastra negócio
//	@Tags		directory
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.BusinessRequest	true	"Negócio"
//	@Success	201		{object}	dto.BusinessResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/directory [post]
func (h *DirectoryHandler) Create(c *gin.Context) {
	var req dto.BusinessRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	business, err := h.directoryService.Create(c.Request.Context(), middleware.CurrentUser(c), req.ToInput())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToBusinessResponse(business))
}

// Update edita um negócio
//
//	@Summary	Edita negócio
//	@Tags		directory
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		slug	path		string						true	"Slug ou ID do negócio"
//	@Param		request	body		dto.UpdateBusinessRequest	true	"Negócio"
//	@Success	200		{object}	dto.BusinessResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/directory/{slug} [put]
func (h *DirectoryHandler) Update(c *gin.Context) {
	id, ok := h.businessID(c)
	if !ok {
		return
	}
	var req dto.UpdateBusinessRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	business, err := h.directoryService.Update(c.Request.Context(), middleware.CurrentUser(c), id,
		req.BusinessRequest.ToInput(), req.IsActive)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

// Delete remove um negócio do diretório (soft delete)
//
//	@Summary	Remove negócio
//	@Tags		directory
//	@Security	BearerAuth
//	@Param		slug	path	string	true	"Slug ou ID do negócio"
//	@Success	204
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/directory/{slug} [delete]
func (h *DirectoryHandler) Delete(c *gin.Context) {
	id, ok := h.businessID(c)
	if !ok {
		return
	}

	if err := h.directoryService.Deactivate(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		dto.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Restore devolve um negócio removido ao diretório
//
//	@Summary	Restaura negócio
//	@Tags		directory
//	@Produce	json
//	@Security	BearerAuth
//	@Param		slug	path		string	true	"Slug ou ID do negócio"
//	@Success	200		{object}	dto.BusinessResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/directory/{slug}/restore [post]
func (h *DirectoryHandler) Restore(c *gin.Context) {
	id, ok := h.businessID(c)
	if !ok {
		return
	}

	business, err := h.directoryService.Restore(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToBusinessResponse(business))
}

// businessID aceita o ID ou o slug do negócio na rota
func (h *DirectoryHandler) businessID(c *gin.Context) (string, bool) {
	ref := c.Param("slug")
	if _, err := uuid.Parse(ref); err == nil {
		return ref, true
	}

	business, err := h.directoryService.GetBySlug(c.Request.Context(), middleware.CurrentUser(c), ref)
	if err != nil {
		dto.RespondError(c, err)
		return "", false
	}
	return business.ID, true
}
