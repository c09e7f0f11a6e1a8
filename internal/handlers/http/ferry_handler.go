package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gabriola-connects/portal-backend/internal/handlers/dto"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

// FerryHandler expõe o horário da balsa
type FerryHandler struct {
	ferryService *services.FerryService
}

// NewFerryHandler cria um novo FerryHandler
func NewFerryHandler(ferryService *services.FerryService) *FerryHandler {
	return &FerryHandler{ferryService: ferryService}
}

// Route descreve a rota e os sentidos disponíveis
//
//	@Summary	Rota da balsa
//	@Tags		ferry
//	@Produce	json
//	@Success	200	{object}	dto.RouteResponse
//	@Router		/ferry [get]
func (h *FerryHandler) Route(c *gin.Context) {
	route, terminals := h.ferryService.Route()
	c.JSON(http.StatusOK, dto.NewRouteResponse(route, terminals, h.ferryService.Directions(), h.ferryService.Location()))
}

// DaySchedule lista as partidas de um sentido em uma data
//
//	@Summary	Horário do dia
//	@Tags		ferry
//	@Produce	json
//	@Param		direction	path		string	true	"nanaimo-to-gabriola ou gabriola-to-nanaimo"
//	@Param		date		query		string	false	"Data (YYYY-MM-DD); padrão hoje"
//	@Success	200			{object}	dto.ScheduleResponse
//	@Failure	400			{object}	dto.ErrorResponse
//	@Router		/ferry/{direction}/schedule [get]
func (h *FerryHandler) DaySchedule(c *gin.Context) {
	direction := c.Param("direction")
	date, err := parseTimeParam("date", c.Query("date"), h.ferryService.Location())
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	departures, err := h.ferryService.DaySchedule(direction, date)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	day := ""
	if date != nil {
		day = date.In(h.ferryService.Location()).Format("2006-01-02")
	} else if len(departures) > 0 {
		day = departures[0].DepartsAt.In(h.ferryService.Location()).Format("2006-01-02")
	}
	c.JSON(http.StatusOK, dto.NewScheduleResponse(direction, day, departures, h.ferryService.Location()))
}

// NextSailings lista as próximas partidas de um sentido
//
//	@Summary	Próximas partidas
//	@Tags		ferry
//	@Produce	json
//	@Param		direction	path		string	true	"nanaimo-to-gabriola ou gabriola-to-nanaimo"
//	@Param		count		query		int		false	"Quantidade (1 a 20, padrão 5)"
//	@Success	200			{object}	dto.ScheduleResponse
//	@Failure	400			{object}	dto.ErrorResponse
//	@Router		/ferry/{direction}/next [get]
func (h *FerryHandler) NextSailings(c *gin.Context) {
	var query dto.NextSailingsQuery
	if !dto.BindQuery(c, &query) {
		return
	}

	direction := c.Param("direction")
	departures, err := h.ferryService.NextSailings(direction, query.Count)
	if err != nil {
		dto.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewScheduleResponse(direction, "", departures, h.ferryService.Location()))
}
