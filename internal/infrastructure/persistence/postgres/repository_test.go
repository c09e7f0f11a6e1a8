package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	domainerrors "github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
	"github.com/gabriola-connects/portal-backend/internal/domain/valueobjects"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/persistence/postgres"
	"github.com/gabriola-connects/portal-backend/internal/testsupport"
)

var t0 = time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)

func newPost(author, title string, at time.Time) *entities.Post {
	return &entities.Post{
		Category:       "general",
		AuthorID:       author,
		Title:          title,
		Body:           "body",
		LastActivityAt: at,
		CreatedAt:      at,
		UpdatedAt:      at,
	}
}

func TestForumRepository(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewForumRepository(testsupport.NewDB(t))

	older := newPost("u1", "Older thread", t0)
	newer := newPost("u1", "Newer 100% thread", t0.Add(time.Hour))
	pinned := newPost("u2", "Pinned rules", t0.Add(-time.Hour))
	pinned.IsPinned = true
	for _, p := range []*entities.Post{older, newer, pinned} {
		require.NoError(t, repo.CreatePost(ctx, p))
		require.NotEmpty(t, p.ID)
	}

	t.Run("lista fixados primeiro e depois por atividade", func(t *testing.T) {
		posts, total, err := repo.ListPosts(ctx, repositories.PostFilters{})
		require.NoError(t, err)
		assert.EqualValues(t, 3, total)
		require.Len(t, posts, 3)
		assert.Equal(t, []string{pinned.ID, newer.ID, older.ID}, []string{posts[0].ID, posts[1].ID, posts[2].ID})
	})

	t.Run("busca trata curingas literalmente", func(t *testing.T) {
		posts, total, err := repo.ListPosts(ctx, repositories.PostFilters{Search: "100%"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Equal(t, newer.ID, posts[0].ID)
	})

	t.Run("AdjustPost soma deltas e toca a atividade", func(t *testing.T) {
		touched := t0.Add(3 * time.Hour)
		require.NoError(t, repo.AdjustPost(ctx, older.ID, 2, 1, touched))
		require.NoError(t, repo.AdjustPost(ctx, older.ID, -1, 0, time.Time{}))

		got, err := repo.FindPost(ctx, older.ID, false)
		require.NoError(t, err)
		assert.Equal(t, 1, got.Score)
		assert.Equal(t, 1, got.ReplyCount)
		assert.True(t, got.LastActivityAt.Equal(touched))
	})

	t.Run("UpdatePost não sobrescreve contadores", func(t *testing.T) {
		stale, err := repo.FindPost(ctx, newer.ID, false)
		require.NoError(t, err)
		require.NoError(t, repo.AdjustPost(ctx, newer.ID, 5, 0, time.Time{}))

		stale.Title = "Renamed"
		require.NoError(t, repo.UpdatePost(ctx, stale))

		got, err := repo.FindPost(ctx, newer.ID, false)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", got.Title)
		assert.Equal(t, 5, got.Score)
	})

	t.Run("tópicos removidos somem sem includeDeleted", func(t *testing.T) {
		p, err := repo.FindPost(ctx, pinned.ID, false)
		require.NoError(t, err)
		p.SoftDelete("u9", "spam", t0)
		require.NoError(t, repo.UpdatePost(ctx, p))

		got, err := repo.FindPost(ctx, pinned.ID, false)
		require.NoError(t, err)
		assert.Nil(t, got)

		got, err = repo.FindPost(ctx, pinned.ID, true)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "spam", got.DeleteReason)
	})

	t.Run("voto é único por usuário e alvo", func(t *testing.T) {
		vote := &entities.Vote{UserID: "u3", TargetType: entities.VoteTargetPost, TargetID: older.ID, Value: 1, CreatedAt: t0}
		require.NoError(t, repo.SaveVote(ctx, vote))
		vote.Value = -1
		require.NoError(t, repo.SaveVote(ctx, vote))

		got, err := repo.FindVote(ctx, "u3", entities.VoteTargetPost, older.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, -1, got.Value)

		require.NoError(t, repo.DeleteVote(ctx, "u3", entities.VoteTargetPost, older.ID))
		got, err = repo.FindVote(ctx, "u3", entities.VoteTargetPost, older.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("trava do alvo de voto", func(t *testing.T) {
		require.NoError(t, repo.LockVoteTarget(ctx, entities.VoteTargetPost, older.ID))
		require.NoError(t, repo.LockVoteTarget(ctx, entities.VoteTargetReply, "missing"))
	})

	t.Run("respostas em ordem cronológica", func(t *testing.T) {
		first := &entities.Reply{PostID: older.ID, AuthorID: "u2", Body: "first", CreatedAt: t0.Add(time.Minute), UpdatedAt: t0}
		second := &entities.Reply{PostID: older.ID, AuthorID: "u3", Body: "second", CreatedAt: t0.Add(2 * time.Minute), UpdatedAt: t0}
		require.NoError(t, repo.CreateReply(ctx, second))
		require.NoError(t, repo.CreateReply(ctx, first))

		replies, err := repo.ListReplies(ctx, older.ID)
		require.NoError(t, err)
		require.Len(t, replies, 2)
		assert.Equal(t, "first", replies[0].Body)
		assert.Equal(t, "second", replies[1].Body)
	})
}

func TestUnitOfWork(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewDB(t)
	uow := postgres.NewUnitOfWork(db)
	repo := postgres.NewForumRepository(db)

	t.Run("erro desfaz a transação", func(t *testing.T) {
		post := newPost("u1", "Never saved", t0)
		boom := errors.New("boom")

		err := uow.WithTransaction(ctx, func(ctx context.Context) error {
			require.NoError(t, repo.CreatePost(ctx, post))
			return boom
		})
		require.ErrorIs(t, err, boom)

		got, err := repo.FindPost(ctx, post.ID, true)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("transação aninhada participa da externa", func(t *testing.T) {
		post := newPost("u1", "Saved", t0)

		err := uow.WithTransaction(ctx, func(ctx context.Context) error {
			if err := repo.CreatePost(ctx, post); err != nil {
				return err
			}
			return uow.WithTransaction(ctx, func(ctx context.Context) error {
				return repo.AdjustPost(ctx, post.ID, 0, 1, t0)
			})
		})
		require.NoError(t, err)

		got, err := repo.FindPost(ctx, post.ID, false)
		require.NoError(t, err)
		assert.Equal(t, 1, got.ReplyCount)
	})
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewUserRepository(testsupport.NewDB(t))

	create := func(email, name string, resident, banned bool) *entities.User {
		e, err := valueobjects.NewEmail(email)
		require.NoError(t, err)
		u := &entities.User{
			Email:        e,
			DisplayName:  name,
			PasswordHash: "x",
			IsResident:   resident,
			IsBanned:     banned,
			CreatedAt:    t0,
			UpdatedAt:    t0,
		}
		require.NoError(t, repo.Create(ctx, u))
		return u
	}

	create("ann@example.com", "Ann Islander", true, false)
	create("bob@example.com", "Bob Visitor", false, true)
	create("cat@example.com", "Cat Islander", true, false)

	t.Run("email repetido vira erro de domínio", func(t *testing.T) {
		e, err := valueobjects.NewEmail("ann@example.com")
		require.NoError(t, err)
		dup := &entities.User{Email: e, DisplayName: "Ann Again", PasswordHash: "x", CreatedAt: t0, UpdatedAt: t0}
		assert.ErrorIs(t, repo.Create(ctx, dup), domainerrors.ErrEmailAlreadyExists)
	})

	t.Run("email inexistente retorna nil", func(t *testing.T) {
		u, err := repo.FindByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("filtros de busca, residência e banimento", func(t *testing.T) {
		resident, banned := true, true

		_, total, err := repo.List(ctx, repositories.UserFilters{Search: "islander"})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)

		_, total, err = repo.List(ctx, repositories.UserFilters{Resident: &resident})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)

		users, total, err := repo.List(ctx, repositories.UserFilters{Banned: &banned})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Equal(t, "bob@example.com", users[0].Email.String())
	})

	t.Run("estatísticas ignoram removidos", func(t *testing.T) {
		gone := create("dan@example.com", "Dan", true, false)
		require.NoError(t, repo.Delete(ctx, gone.ID))

		stats, err := repo.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, repositories.UserStats{Total: 3, Residents: 2, Banned: 1}, stats)
	})
}

func TestAlertRepository(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewAlertRepository(testsupport.NewDB(t))

	past, future := t0.Add(-time.Hour), t0.Add(time.Hour)
	alerts := map[string]*entities.Alert{
		"info":      {Title: "Info", Message: "m", Severity: entities.SeverityInfo, Category: entities.AlertGeneral, CreatedAt: t0.Add(time.Minute)},
		"emergency": {Title: "Fire", Message: "m", Severity: entities.SeverityEmergency, Category: entities.AlertFire, ExpiresAt: &future, CreatedAt: t0},
		"expired":   {Title: "Old", Message: "m", Severity: entities.SeverityWarning, Category: entities.AlertRoad, ExpiresAt: &past, CreatedAt: t0},
		"archived":  {Title: "Done", Message: "m", Severity: entities.SeverityWarning, Category: entities.AlertWater, IsArchived: true, ArchivedAt: &past, CreatedAt: t0},
	}
	for _, a := range alerts {
		a.CreatedBy = "u1"
		a.UpdatedAt = a.CreatedAt
		require.NoError(t, repo.Create(ctx, a))
	}

	t.Run("ativos por gravidade, sem expirados nem arquivados", func(t *testing.T) {
		active, err := repo.ListActive(ctx, t0)
		require.NoError(t, err)
		require.Len(t, active, 2)
		assert.Equal(t, alerts["emergency"].ID, active[0].ID)
		assert.Equal(t, alerts["info"].ID, active[1].ID)
	})

	t.Run("expirados para a varredura", func(t *testing.T) {
		expired, err := repo.ListExpired(ctx, t0)
		require.NoError(t, err)
		require.Len(t, expired, 1)
		assert.Equal(t, alerts["expired"].ID, expired[0].ID)
	})

	t.Run("arquivados paginados", func(t *testing.T) {
		archived, total, err := repo.ListArchived(ctx, repositories.Pagination{Page: 1, PageSize: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		assert.Equal(t, alerts["archived"].ID, archived[0].ID)
	})
}

func TestBusinessRepository(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewBusinessRepository(testsupport.NewDB(t))

	bakery := &entities.Business{Name: "Village Bakery", Slug: "village-bakery", Category: "food", Description: "Bread", IsActive: true, CreatedAt: t0, UpdatedAt: t0}
	books := &entities.Business{Name: "Artworks Books", Slug: "artworks-books", Category: "shops", IsActive: true, IsFeatured: true, CreatedAt: t0, UpdatedAt: t0}
	closed := &entities.Business{Name: "Closed Café", Slug: "closed-cafe", Category: "food", IsActive: false, CreatedAt: t0, UpdatedAt: t0}
	for _, b := range []*entities.Business{bakery, books, closed} {
		require.NoError(t, repo.Create(ctx, b))
	}

	t.Run("destaques primeiro, só ativos", func(t *testing.T) {
		list, total, err := repo.List(ctx, repositories.BusinessFilters{})
		require.NoError(t, err)
		assert.EqualValues(t, 2, total)
		assert.Equal(t, books.ID, list[0].ID)
		assert.Equal(t, bakery.ID, list[1].ID)
	})

	t.Run("busca na descrição sem diferenciar maiúsculas", func(t *testing.T) {
		list, _, err := repo.List(ctx, repositories.BusinessFilters{Search: "BREAD"})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, bakery.ID, list[0].ID)
	})

	t.Run("slug repetido vira erro de domínio", func(t *testing.T) {
		dup := &entities.Business{Name: "Another Bakery", Slug: "village-bakery", Category: "food", IsActive: true, CreatedAt: t0, UpdatedAt: t0}
		assert.ErrorIs(t, repo.Create(ctx, dup), domainerrors.ErrBusinessExists)
	})

	t.Run("upsert pelo slug preserva o id", func(t *testing.T) {
		updated := &entities.Business{Name: "Village Bakery & Deli", Slug: "village-bakery", Category: "food", IsActive: true, UpdatedAt: t0}
		require.NoError(t, repo.Upsert(ctx, updated))
		assert.Equal(t, bakery.ID, updated.ID)

		got, err := repo.FindBySlug(ctx, "village-bakery", false)
		require.NoError(t, err)
		assert.Equal(t, "Village Bakery & Deli", got.Name)

		count, err := repo.CountAll(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)
	})
}
