package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/handlers/dto"
	"github.com/gabriola-connects/portal-backend/internal/handlers/middleware"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

// UserHandler lida com requisições HTTP relacionadas a usuários
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// GetMe retorna o próprio perfil
//
//	@Summary	Próprio perfil
//	@Tags		users
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.ProfileResponse
//	@Router		/users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(user))
}

// UpdateMe altera o próprio perfil; a residência é recalculada pelo código postal
//
//	@Summary	Atualiza o próprio perfil
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.UpdateProfileRequest	true	"Campos a alterar"
//	@Success	200		{object}	dto.ProfileResponse
//	@Failure	400		{object}	dto.ErrorResponse
//	@Router		/users/me [patch]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), req.ToInput())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(user))
}

// GetUser busca o perfil público de um usuário
//
//	@Summary	Perfil público
//	@Tags		users
//	@Produce	json
//	@Param		id	path		string	true	"ID do usuário"
//	@Success	200	{object}	dto.UserResponse
//	@Failure	404	{object}	dto.ErrorResponse
//	@Router		/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, errors.ErrUserNotFound)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		dto.RespondError(c, err)
		return
	}
	if user.IsDeleted() {
		dto.RespondError(c, errors.ErrUserNotFound)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// ListUsers lista usuários com filtros
//
//	@Summary	Lista usuários
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		search		query		string	false	"Busca por nome ou email"
//	@Param		banned		query		bool	false	"Filtra banidos"
//	@Param		resident	query		bool	false	"Filtra residentes"
//	@Param		page		query		int		false	"Página"
//	@Param		page_size	query		int		false	"Itens por página"
//	@Success	200			{object}	dto.PageResponse[dto.ProfileResponse]
//	@Failure	403			{object}	dto.ErrorResponse
//	@Router		/admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	var query dto.UserListQuery
	if !dto.BindQuery(c, &query) {
		return
	}

	page, err := h.userService.ListUsers(c.Request.Context(), middleware.CurrentUser(c), query.ToFilters())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(page, dto.ToProfileResponse))
}
