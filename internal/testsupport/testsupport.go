// Package testsupport reúne helpers usados apenas pelos testes: banco SQLite
// migrado, relógio controlável e um notifier que grava as publicações.
package testsupport

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gabriola-connects/portal-backend/internal/infrastructure/persistence/postgres"
)

// NewDB abre um banco SQLite em arquivo temporário com o schema migrado
func NewDB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := OpenDB(tb.TempDir())
	if err != nil {
		tb.Fatalf("failed to open test database: %v", err)
	}
	tb.Cleanup(func() { CloseDB(db) })
	return db
}

// OpenDB abre e migra um banco SQLite dentro de dir. Usado pelas suítes
// Ginkgo, que não têm um testing.TB.
func OpenDB(dir string) (*gorm.DB, error) {
	dsn := filepath.Join(dir, "portal.db") + "?_busy_timeout=5000&_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	if err := postgres.Migrate(db); err != nil {
		CloseDB(db)
		return nil, err
	}
	return db, nil
}

// CloseDB fecha a conexão subjacente
func CloseDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// Clock é um relógio manual para testes
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock cria um relógio parado em now
func NewClock(now time.Time) *Clock {
	return &Clock{now: now.UTC()}
}

func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance avança o relógio
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Published é um evento capturado pelo RecordingNotifier
type Published struct {
	Topic string
	Type  string
	Data  any
}

// Revocation é um corte de sessão capturado pelo RecordingNotifier.
// Topic vazio indica desconexão completa.
type Revocation struct {
	UserID string
	Topic  string
}

// RecordingNotifier implementa ports.Notifier e ports.SessionRevoker
// guardando publicações e cortes de sessão
type RecordingNotifier struct {
	mu          sync.Mutex
	events      []Published
	revocations []Revocation
}

func (n *RecordingNotifier) Disconnect(_ context.Context, userID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.revocations = append(n.revocations, Revocation{UserID: userID})
}

func (n *RecordingNotifier) Unsubscribe(_ context.Context, userID, topic string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.revocations = append(n.revocations, Revocation{UserID: userID, Topic: topic})
}

// Revocations retorna uma cópia dos cortes de sessão
func (n *RecordingNotifier) Revocations() []Revocation {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Revocation(nil), n.revocations...)
}

func (n *RecordingNotifier) Publish(_ context.Context, topic, eventType string, data any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, Published{Topic: topic, Type: eventType, Data: data})
}

// Events retorna uma cópia das publicações
func (n *RecordingNotifier) Events() []Published {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Published(nil), n.events...)
}

// Types retorna apenas os tipos publicados, na ordem
func (n *RecordingNotifier) Types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.events))
	for i, e := range n.events {
		out[i] = e.Type
	}
	return out
}
