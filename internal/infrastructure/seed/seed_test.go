package seed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/logging"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/persistence/postgres"
	"github.com/gabriola-connects/portal-backend/internal/testsupport"
)

func TestCategories(t *testing.T) {
	categories, err := Categories()
	require.NoError(t, err)

	byScope := map[entities.CategoryScope][]string{}
	for _, c := range categories {
		byScope[c.Scope] = append(byScope[c.Scope], c.Slug)
	}
	assert.Contains(t, byScope[entities.ScopeEvents], "arts-culture")
	assert.Contains(t, byScope[entities.ScopeForum], "buy-sell")
	assert.Contains(t, byScope[entities.ScopeDirectory], "food-drink")
}

func TestBusinesses(t *testing.T) {
	businesses, err := Businesses()
	require.NoError(t, err)
	require.NotEmpty(t, businesses)

	categories, err := Categories()
	require.NoError(t, err)
	directory := map[string]bool{}
	for _, c := range categories {
		if c.Scope == entities.ScopeDirectory {
			directory[c.Slug] = true
		}
	}

	seen := map[string]bool{}
	for _, b := range businesses {
		assert.True(t, b.IsActive)
		assert.True(t, directory[b.Category], "categoria desconhecida %q em %s", b.Category, b.Name)
		assert.False(t, seen[b.Slug], "slug duplicado %s", b.Slug)
		seen[b.Slug] = true
	}
	assert.True(t, seen["gabriola-farmers-market"])
}

func TestTimetable(t *testing.T) {
	tt, err := Timetable()
	require.NoError(t, err)

	assert.Equal(t, "19", tt.Route)
	assert.Equal(t, []entities.Direction{entities.DirectionToNanaimo, entities.DirectionToGabriola}, tt.Directions())
	assert.Equal(t, "Descanso Bay", tt.Terminals[entities.DirectionToNanaimo])

	// Domingo não tem a partida das 05:30
	sunday := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	deps, err := tt.DaySchedule(entities.DirectionToNanaimo, sunday)
	require.NoError(t, err)
	require.NotEmpty(t, deps)
	assert.Equal(t, 6, deps[0].DepartsAt.Hour())
	assert.Equal(t, 20, deps[0].DepartsAt.Minute())

	// Terça tem a saída de carga perigosa às 10:30
	tuesday := time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)
	deps, err = tt.DaySchedule(entities.DirectionToNanaimo, tuesday)
	require.NoError(t, err)
	var notes []string
	for _, d := range deps {
		if d.DepartsAt.Hour() == 10 && d.DepartsAt.Minute() == 30 {
			notes = append(notes, d.Note)
		}
	}
	assert.Equal(t, []string{"dangerous cargo, no passengers"}, notes)
}

func TestSeeder_Run(t *testing.T) {
	db := testsupport.NewDB(t)
	categoryRepo := postgres.NewCategoryRepository(db)
	businessRepo := postgres.NewBusinessRepository(db)
	seeder := NewSeeder(categoryRepo, businessRepo, postgres.NewUnitOfWork(db), logging.NewNopLogger())
	ctx := context.Background()

	first, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.Positive(t, first.CategoriesCreated)
	assert.Positive(t, first.BusinessesUpserted)

	// Rodar de novo não duplica nada
	second, err := seeder.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, second.CategoriesCreated)
	assert.Equal(t, first.BusinessesUpserted, second.BusinessesUpserted)

	total, err := businessRepo.CountAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(first.BusinessesUpserted), total)

	listed, _, err := businessRepo.List(ctx, repositories.BusinessFilters{})
	require.NoError(t, err)
	require.NotEmpty(t, listed)
	assert.True(t, listed[0].IsFeatured)
}
