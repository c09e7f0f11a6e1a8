package services

import (
	"context"
	"time"

	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
)

// ArchiveRecorder recebe a contagem de alertas arquivados pela varredura
type ArchiveRecorder interface {
	AlertsArchived(n int)
}

// AlertSweeper arquiva periodicamente os alertas expirados
type AlertSweeper struct {
	alerts   *AlertService
	interval time.Duration
	recorder ArchiveRecorder
	logger   ports.Logger
}

// NewAlertSweeper cria um AlertSweeper. recorder pode ser nil.
func NewAlertSweeper(alerts *AlertService, interval time.Duration, recorder ArchiveRecorder, logger ports.Logger) *AlertSweeper {
	return &AlertSweeper{alerts: alerts, interval: interval, recorder: recorder, logger: logger}
}

// Run varre uma vez na partida e depois a cada intervalo, até ctx ser cancelado
func (w *AlertSweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			w.logger.Debug("alert sweeper stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *AlertSweeper) sweep(ctx context.Context) {
	n, err := w.alerts.SweepExpired(ctx)
	if n > 0 {
		ports.Audit(w.logger).Info("expired alerts archived", "count", n)
		if w.recorder != nil {
			w.recorder.AlertsArchived(n)
		}
	}
	if err != nil && ctx.Err() == nil {
		w.logger.Error("alert sweep failed", "error", err)
	}
}
