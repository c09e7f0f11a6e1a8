package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
)

// dbFromContext extrai DB do contexto (para suportar transações)
func dbFromContext(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// isNotFound indica registro inexistente
func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// duplicateAs troca a violação de unicidade (gorm.ErrDuplicatedKey, com
// TranslateError ligado) pelo erro de domínio informado
func duplicateAs(err, domainErr error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domainErr
	}
	return err
}

// paginate aplica limit/offset normalizados
func paginate(query *gorm.DB, p repositories.Pagination) *gorm.DB {
	n := p.Normalize()
	return query.Limit(n.PageSize).Offset(n.Offset())
}

// likePattern monta um padrão LIKE case-insensitive ("%termo%")
func likePattern(search string) string {
	search = strings.ToLower(strings.TrimSpace(search))
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(search) + "%"
}

// Conversores de tempo: timestamps são armazenados em segundos Unix
func toUnix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func toUnixPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ts := t.Unix()
	return &ts
}

func fromUnix(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

func fromUnixPtr(ts *int64) *time.Time {
	if ts == nil {
		return nil
	}
	t := time.Unix(*ts, 0).UTC()
	return &t
}
