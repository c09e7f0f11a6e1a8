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

// CategoryHandler lida com as categorias de eventos, fórum e diretório
type CategoryHandler struct {
	categoryService *services.CategoryService
}

// NewCategoryHandler cria um novo CategoryHandler
func NewCategoryHandler(categoryService *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// List lista as categorias de um escopo
//
//	@Summary	Lista categorias
//	@Tags		categories
//	@Produce	json
//	@Param		scope				query		string	true	"events, forum ou directory"
//	@Param		include_inactive	query		bool	false	"Inclui inativas (administradores)"
//	@Success	200					{object}	dto.ListResponse[dto.CategoryResponse]
//	@Router		/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var query dto.CategoryListQuery
	if !dto.BindQuery(c, &query) {
		return
	}

	categories, err := h.categoryService.List(c.Request.Context(), middleware.CurrentUser(c),
		entities.CategoryScope(query.Scope), query.IncludeInactive)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListResponse(categories, dto.ToCategoryResponse))
}

// Create cria uma categoria
//
//	@Summary	Cria categoria
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.CreateCategoryRequest	true	"Categoria"
//	@Success	201		{object}	dto.CategoryResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), middleware.CurrentUser(c),
		entities.CategoryScope(req.Scope), req.ToInput())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCategoryResponse(category))
}

// Update edita uma categoria
//
//	@Summary	Edita categoria
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string						true	"ID da categoria"
//	@Param		request	body		dto.UpdateCategoryRequest	true	"Categoria"
//	@Success	200		{object}	dto.CategoryResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Router		/categories/{id} [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c, errors.ErrCategoryNotFound)
	if !ok {
		return
	}
	var req dto.UpdateCategoryRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	category, err := h.categoryService.Update(c.Request.Context(), middleware.CurrentUser(c), id, req.ToInput(), req.IsActive)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCategoryResponse(category))
}

// Delete desativa uma categoria
//
//	@Summary	Desativa categoria
//	@Tags		categories
//	@Security	BearerAuth
//	@Param		id	path	string	true	"ID da categoria"
//	@Success	204
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, errors.ErrCategoryNotFound)
	if !ok {
		return
	}

	if err := h.categoryService.Deactivate(c.Request.Context(), middleware.CurrentUser(c), id); err != nil {
		dto.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
