package postgres

import (
	"context"
	"database/sql"
	"time"
)

// HealthChecker verifica a conexão com o banco de dados
type HealthChecker struct {
	db      *sql.DB
	timeout time.Duration
}

// NewHealthChecker cria um HealthChecker sobre o pool do database/sql
func NewHealthChecker(db *sql.DB) *HealthChecker {
	return &HealthChecker{db: db, timeout: 2 * time.Second}
}

// Check faz ping no banco com timeout
func (h *HealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return h.db.PingContext(ctx)
}
