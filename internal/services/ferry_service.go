package services

import (
	"time"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
)

const (
	defaultNextSailings = 5
	maxNextSailings     = 20
)

// FerryService expõe o horário da balsa no fuso da comunidade
type FerryService struct {
	timetable *entities.Timetable
	location  *time.Location
	clock     ports.Clock
}

// NewFerryService cria um novo FerryService
func NewFerryService(timetable *entities.Timetable, location *time.Location, clock ports.Clock) *FerryService {
	if location == nil {
		location = time.UTC
	}
	return &FerryService{timetable: timetable, location: location, clock: clock}
}

// Route retorna o identificador da rota e os terminais de partida
func (s *FerryService) Route() (string, map[entities.Direction]string) {
	return s.timetable.Route, s.timetable.Terminals
}

// Directions retorna os sentidos disponíveis
func (s *FerryService) Directions() []entities.Direction {
	return s.timetable.Directions()
}

// Location retorna o fuso usado nos horários
func (s *FerryService) Location() *time.Location {
	return s.location
}

// DaySchedule retorna as partidas da data. Sem data, usa o dia de hoje.
func (s *FerryService) DaySchedule(direction string, date *time.Time) ([]entities.Departure, error) {
	day := s.clock.Now().In(s.location)
	if date != nil {
		y, m, d := date.Date()
		day = time.Date(y, m, d, 12, 0, 0, 0, s.location)
	}
	return s.timetable.DaySchedule(entities.Direction(direction), day)
}

// NextSailings retorna as próximas n partidas a partir de agora
func (s *FerryService) NextSailings(direction string, n int) ([]entities.Departure, error) {
	if n <= 0 {
		n = defaultNextSailings
	}
	if n > maxNextSailings {
		return nil, errors.NewValidationError("count", errors.MsgInvalid)
	}
	now := s.clock.Now().In(s.location)
	return s.timetable.NextSailings(entities.Direction(direction), now, n)
}
