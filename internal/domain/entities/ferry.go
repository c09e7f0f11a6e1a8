package entities

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	domainerrors "github.com/gabriola-connects/portal-backend/internal/domain/errors"
)

// Direction é o sentido da travessia
type Direction string

const (
	DirectionToGabriola Direction = "nanaimo-to-gabriola"
	DirectionToNanaimo  Direction = "gabriola-to-nanaimo"
)

// DaySet é um conjunto de dias da semana (um bit por time.Weekday)
type DaySet uint8

// EveryDay contém todos os dias da semana
const EveryDay DaySet = 0x7f

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// ParseDaySet interpreta "daily", "mon-fri", "sat,sun" ou combinações
func ParseDaySet(spec string) (DaySet, error) {
	spec = strings.ToLower(strings.TrimSpace(spec))
	if spec == "" || spec == "daily" {
		return EveryDay, nil
	}
	var set DaySet
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		from, to, isRange := strings.Cut(part, "-")
		start, ok := weekdayNames[strings.TrimSpace(from)]
		if !ok {
			return 0, fmt.Errorf("unknown weekday %q", from)
		}
		end := start
		if isRange {
			if end, ok = weekdayNames[strings.TrimSpace(to)]; !ok {
				return 0, fmt.Errorf("unknown weekday %q", to)
			}
		}
		for d := start; ; d = (d + 1) % 7 {
			set |= 1 << d
			if d == end {
				break
			}
		}
	}
	return set, nil
}

// Has verifica se o dia pertence ao conjunto
func (d DaySet) Has(w time.Weekday) bool {
	return d&(1<<w) != 0
}

// ParseClock converte "HH:MM" em minutos desde a meia-noite
func ParseClock(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}

// Sailing é uma partida recorrente do horário
type Sailing struct {
	Minute int
	Days   DaySet
	Note   string
}

// Departure é uma partida concreta em uma data
type Departure struct {
	Direction Direction
	DepartsAt time.Time
	Note      string
}

// Timetable é o horário estático da rota da balsa
type Timetable struct {
	Route     string
	Terminals map[Direction]string
	sailings  map[Direction][]Sailing
}

// NewTimetable cria um horário com as partidas ordenadas por hora
func NewTimetable(route string, terminals map[Direction]string, sailings map[Direction][]Sailing) *Timetable {
	sorted := make(map[Direction][]Sailing, len(sailings))
	for dir, list := range sailings {
		cp := append([]Sailing(nil), list...)
		sort.SliceStable(cp, func(i, j int) bool { return cp[i].Minute < cp[j].Minute })
		sorted[dir] = cp
	}
	return &Timetable{Route: route, Terminals: terminals, sailings: sorted}
}

// Directions retorna os sentidos conhecidos
func (t *Timetable) Directions() []Direction {
	dirs := make([]Direction, 0, len(t.sailings))
	for d := range t.sailings {
		dirs = append(dirs, d)
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i] < dirs[j] })
	return dirs
}

// DaySchedule retorna as partidas do dia da data informada, no fuso de date
func (t *Timetable) DaySchedule(dir Direction, date time.Time) ([]Departure, error) {
	list, ok := t.sailings[dir]
	if !ok {
		return nil, domainerrors.ErrInvalidDirection
	}
	y, m, d := date.Date()
	loc := date.Location()
	out := make([]Departure, 0, len(list))
	for _, s := range list {
		if !s.Days.Has(date.Weekday()) {
			continue
		}
		out = append(out, Departure{
			Direction: dir,
			DepartsAt: time.Date(y, m, d, s.Minute/60, s.Minute%60, 0, 0, loc),
			Note:      s.Note,
		})
	}
	return out, nil
}

// NextSailings retorna as próximas n partidas a partir de now (inclusive),
// avançando para os dias seguintes quando necessário
func (t *Timetable) NextSailings(dir Direction, now time.Time, n int) ([]Departure, error) {
	if _, ok := t.sailings[dir]; !ok {
		return nil, domainerrors.ErrInvalidDirection
	}
	if n <= 0 {
		return []Departure{}, nil
	}
	out := make([]Departure, 0, n)
	y, m, d := now.Date()
	for day := 0; day < 8 && len(out) < n; day++ {
		date := time.Date(y, m, d+day, 12, 0, 0, 0, now.Location())
		deps, err := t.DaySchedule(dir, date)
		if err != nil {
			return nil, err
		}
		for _, dep := range deps {
			if dep.DepartsAt.Before(now) {
				continue
			}
			out = append(out, dep)
			if len(out) == n {
				break
			}
		}
	}
	return out, nil
}
