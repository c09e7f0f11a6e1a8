package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/handlers/dto"
	"github.com/gabriola-connects/portal-backend/internal/handlers/middleware"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

// AdminHandler lida com o painel administrativo e a gestão de usuários
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler cria um novo AdminHandler
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Stats retorna os contadores do painel
//
//	@Summary	Estatísticas do painel
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Success	200	{object}	dto.StatsResponse
//	@Failure	403	{object}	dto.ErrorResponse
//	@Router		/admin/stats [get]
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context(), middleware.CurrentUser(c))
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToStatsResponse(stats))
}

// SetFlags substitui as flags de permissão de um usuário
//
//	@Summary	Define permissões
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string				true	"ID do usuário"
//	@Param		request	body		dto.FlagsRequest	true	"Flags"
//	@Success	200		{object}	dto.ProfileResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/admin/users/{id}/flags [put]
func (h *AdminHandler) SetFlags(c *gin.Context) {
	id, ok := pathID(c, errors.ErrUserNotFound)
	if !ok {
		return
	}
	var req dto.FlagsRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	user, err := h.adminService.SetFlags(c.Request.Context(), middleware.CurrentUser(c), id, req.ToFlags())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(user))
}

// Ban bane um usuário
//
//	@Summary	Bane usuário
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string			true	"ID do usuário"
//	@Param		request	body		dto.BanRequest	true	"Motivo"
//	@Success	200		{object}	dto.ProfileResponse
//	@Failure	403		{object}	dto.ErrorResponse
//	@Router		/admin/users/{id}/ban [post]
func (h *AdminHandler) Ban(c *gin.Context) {
	id, ok := pathID(c, errors.ErrUserNotFound)
	if !ok {
		return
	}
	var req dto.BanRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	user, err := h.adminService.Ban(c.Request.Context(), middleware.CurrentUser(c), id, req.Reason)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(user))
}

// Unban remove o banimento de um usuário
//
//	@Summary	Remove banimento
//	@Tags		admin
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id	path		string	true	"ID do usuário"
//	@Success	200	{object}	dto.ProfileResponse
//	@Router		/admin/users/{id}/unban [post]
func (h *AdminHandler) Unban(c *gin.Context) {
	id, ok := pathID(c, errors.ErrUserNotFound)
	if !ok {
		return
	}

	user, err := h.adminService.Unban(c.Request.Context(), middleware.CurrentUser(c), id)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(user))
}

// SetResidency define a residência manualmente
//
//	@Summary	Define residência
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string					true	"ID do usuário"
//	@Param		request	body		dto.ResidencyRequest	true	"is_resident; null recalcula pelo código postal"
//	@Success	200		{object}	dto.ProfileResponse
//	@Router		/admin/users/{id}/residency [put]
func (h *AdminHandler) SetResidency(c *gin.Context) {
	id, ok := pathID(c, errors.ErrUserNotFound)
	if !ok {
		return
	}
	var req dto.ResidencyRequest
	if !bindOptionalJSON(c, &req) {
		return
	}

	user, err := h.adminService.SetResidency(c.Request.Context(), middleware.CurrentUser(c), id, req.IsResident)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(user))
}
