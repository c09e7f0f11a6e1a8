package dto

import (
	"time"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
)

// RouteResponse descreve a rota da balsa
type RouteResponse struct {
	Route      string            `json:"route"`
	Terminals  map[string]string `json:"terminals"`
	Directions []string          `json:"directions"`
	Timezone   string            `json:"timezone"`
}

// NewRouteResponse monta a descrição da rota
func NewRouteResponse(route string, terminals map[entities.Direction]string, dirs []entities.Direction, loc *time.Location) RouteResponse {
	resp := RouteResponse{
		Route:      route,
		Terminals:  make(map[string]string, len(terminals)),
		Directions: make([]string, len(dirs)),
		Timezone:   loc.String(),
	}
	for d, name := range terminals {
		resp.Terminals[string(d)] = name
	}
	for i, d := range dirs {
		resp.Directions[i] = string(d)
	}
	return resp
}

// NextSailingsQuery define quantas partidas retornar
type NextSailingsQuery struct {
	Count int `form:"count" binding:"omitempty,min=1,max=20"`
}

// DepartureResponse representa uma partida
type DepartureResponse struct {
	Direction string    `json:"direction"`
	DepartsAt time.Time `json:"departs_at"`
	Local     string    `json:"local_time"`
	Note      string    `json:"note,omitempty"`
}

// ScheduleResponse representa as partidas de um sentido em um dia
type ScheduleResponse struct {
	Direction  string              `json:"direction"`
	Date       string              `json:"date,omitempty"`
	Departures []DepartureResponse `json:"departures"`
}

// NewScheduleResponse converte as partidas para o fuso loc
func NewScheduleResponse(direction, date string, departures []entities.Departure, loc *time.Location) ScheduleResponse {
	out := make([]DepartureResponse, len(departures))
	for i, d := range departures {
		local := d.DepartsAt.In(loc)
		out[i] = DepartureResponse{
			Direction: string(d.Direction),
			DepartsAt: local,
			Local:     local.Format("15:04"),
			Note:      d.Note,
		}
	}
	return ScheduleResponse{Direction: direction, Date: date, Departures: out}
}
