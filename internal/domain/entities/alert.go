package entities

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	domainerrors "github.com/gabriola-connects/portal-backend/internal/domain/errors"
)

// Severity representa a gravidade de um alerta
type Severity string

const (
	SeverityInfo      Severity = "info"
	SeverityAdvisory  Severity = "advisory"
	SeverityWarning   Severity = "warning"
	SeverityEmergency Severity = "emergency"
)

var severityRank = map[Severity]int{
	SeverityInfo:      1,
	SeverityAdvisory:  2,
	SeverityWarning:   3,
	SeverityEmergency: 4,
}

// Rank retorna a ordem da gravidade (0 para desconhecida)
func (s Severity) Rank() int {
	return severityRank[s]
}

// Valid verifica se a gravidade é conhecida
func (s Severity) Valid() bool {
	return s.Rank() > 0
}

// AlertCategory classifica o alerta
type AlertCategory string

const (
	AlertGeneral AlertCategory = "general"
	AlertFerry   AlertCategory = "ferry"
	AlertWeather AlertCategory = "weather"
	AlertPower   AlertCategory = "power"
	AlertWater   AlertCategory = "water"
	AlertRoad    AlertCategory = "road"
	AlertFire    AlertCategory = "fire"
)

// Valid verifica se a categoria é conhecida
func (c AlertCategory) Valid() bool {
	switch c {
	case AlertGeneral, AlertFerry, AlertWeather, AlertPower, AlertWater, AlertRoad, AlertFire:
		return true
	}
	return false
}

// Alert representa um aviso à comunidade
type Alert struct {
	ID         string
	Title      string
	Message    string
	Severity   Severity
	Category   AlertCategory
	ExpiresAt  *time.Time
	IsArchived bool
	ArchivedAt *time.Time
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsExpired indica se o alerta já expirou
func (a *Alert) IsExpired(now time.Time) bool {
	return a.ExpiresAt != nil && !a.ExpiresAt.After(now)
}

// IsActive indica se o alerta deve ser exibido ao público
func (a *Alert) IsActive(now time.Time) bool {
	return !a.IsArchived && !a.IsExpired(now)
}

// Archive arquiva o alerta
func (a *Alert) Archive(now time.Time) {
	a.IsArchived = true
	a.ArchivedAt = &now
}

// Unarchive reativa o alerta
func (a *Alert) Unarchive() {
	a.IsArchived = false
	a.ArchivedAt = nil
}

// SortAlerts ordena por gravidade decrescente e depois do mais recente ao mais antigo
func SortAlerts(alerts []*Alert) {
	sort.SliceStable(alerts, func(i, j int) bool {
		ri, rj := alerts[i].Severity.Rank(), alerts[j].Severity.Rank()
		if ri != rj {
			return ri > rj
		}
		return alerts[i].CreatedAt.After(alerts[j].CreatedAt)
	})
}

// Validate valida regras de negócio da entidade Alert
func (a *Alert) Validate(now time.Time) error {
	a.Title = strings.TrimSpace(a.Title)
	a.Message = strings.TrimSpace(a.Message)
	if a.Title == "" {
		return domainerrors.NewValidationError("title", domainerrors.MsgRequired)
	}
	if utf8.RuneCountInString(a.Title) > 200 {
		return domainerrors.NewValidationError("title", domainerrors.MsgTooLong)
	}
	if a.Message == "" {
		return domainerrors.NewValidationError("message", domainerrors.MsgRequired)
	}
	if !a.Severity.Valid() {
		return domainerrors.NewValidationError("severity", domainerrors.MsgInvalid)
	}
	if a.Category == "" {
		a.Category = AlertGeneral
	}
	if !a.Category.Valid() {
		return domainerrors.NewValidationError("category", domainerrors.MsgInvalid)
	}
	if a.ExpiresAt != nil {
		// expires_at é gravado em segundos inteiros; compara na mesma precisão
		expires := a.ExpiresAt.Truncate(time.Second)
		if !expires.After(now.Truncate(time.Second)) {
			return domainerrors.NewValidationError("expires_at", domainerrors.MsgMustBeFuture)
		}
		a.ExpiresAt = &expires
	}
	return nil
}
