package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/handlers/dto"
	"github.com/gabriola-connects/portal-backend/internal/handlers/middleware"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

// ReportHandler lida com denúncias e a fila de moderação
type ReportHandler struct {
	reportService *services.ReportService
}

// NewReportHandler cria um novo ReportHandler
func NewReportHandler(reportService *services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Create denuncia um conteúdo
//
//	@Summary	Denuncia conteúdo
//	@Tags		reports
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		request	body		dto.ReportRequest	true	"Denúncia"
//	@Success	201		{object}	dto.ReportResponse
//	@Failure	404		{object}	dto.ErrorResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/reports [post]
func (h *ReportHandler) Create(c *gin.Context) {
	var req dto.ReportRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	report, err := h.reportService.Create(c.Request.Context(), middleware.CurrentUser(c), req.ToInput())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReportResponse(report))
}

// List lista as denúncias
//
//	@Summary	Fila de denúncias
//	@Tags		reports
//	@Produce	json
//	@Security	BearerAuth
//	@Param		status		query		string	false	"pending, resolved ou dismissed"
//	@Param		page		query		int		false	"Página"
//	@Param		page_size	query		int		false	"Itens por página"
//	@Success	200			{object}	dto.PageResponse[dto.ReportResponse]
//	@Failure	403			{object}	dto.ErrorResponse
//	@Router		/reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	var query dto.ReportListQuery
	if !dto.BindQuery(c, &query) {
		return
	}

	page, err := h.reportService.List(c.Request.Context(), middleware.CurrentUser(c), query.StatusFilter(), query.Pagination())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPageResponse(page, dto.ToReportResponse))
}

// Resolve encerra uma denúncia, removendo o conteúdo quando pedido
//
//	@Summary	Resolve denúncia
//	@Tags		reports
//	@Accept		json
//	@Produce	json
//	@Security	BearerAuth
//	@Param		id		path		string						true	"ID da denúncia"
//	@Param		request	body		dto.ResolveReportRequest	true	"Decisão"
//	@Success	200		{object}	dto.ReportResponse
//	@Failure	409		{object}	dto.ErrorResponse
//	@Router		/reports/{id}/resolve [post]
func (h *ReportHandler) Resolve(c *gin.Context) {
	id, ok := pathID(c, errors.ErrReportNotFound)
	if !ok {
		return
	}
	var req dto.ResolveReportRequest
	if !dto.BindJSON(c, &req) {
		return
	}

	report, err := h.reportService.Resolve(c.Request.Context(), middleware.CurrentUser(c), id, req.ToInput())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReportResponse(report))
}
