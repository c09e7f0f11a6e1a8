package entities

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/valueobjects"
)

func validationField(t *testing.T, err error) string {
	t.Helper()
	var verr *domainerrors.ValidationError
	require.True(t, errors.As(err, &verr), "esperava ValidationError, obteve %v", err)
	return verr.Field
}

func TestCategory_Validate(t *testing.T) {
	t.Run("nome vazio é rejeitado", func(t *testing.T) {
		c := &Category{Scope: ScopeEvents, Name: "   "}
		c.Normalize()
		assert.Equal(t, "name", validationField(t, c.Validate()))
	})

	t.Run("deriva slug do nome", func(t *testing.T) {
		c := &Category{Scope: ScopeForum, Name: " Lost & Found "}
		c.Normalize()
		require.NoError(t, c.Validate())
		assert.Equal(t, "lost-found", c.Slug)
		assert.Equal(t, "Lost & Found", c.Name)
	})

	t.Run("escopo inválido", func(t *testing.T) {
		c := &Category{Scope: "market", Name: "Food"}
		c.Normalize()
		assert.Equal(t, "scope", validationField(t, c.Validate()))
	})
}

func TestUser_UpdateResidency(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	pc, err := valueobjects.NewPostalCode("V0R 1X0")
	require.NoError(t, err)

	u := &User{PostalCode: pc}
	u.UpdateResidency([]string{"V0R1X"}, now)
	assert.True(t, u.IsResident)
	require.NotNil(t, u.ResidentVerifiedAt)

	u.PostalCode, _ = valueobjects.NewPostalCode("V9R 1A1")
	u.UpdateResidency([]string{"V0R1X"}, now)
	assert.False(t, u.IsResident)
	assert.Nil(t, u.ResidentVerifiedAt)
}

func TestEvent_Lifecycle(t *testing.T) {
	now := time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC)

	t.Run("fim antes do início é inválido", func(t *testing.T) {
		end := now.Add(-time.Hour)
		e := &Event{Title: "Market", Category: "market", StartAt: now, EndAt: &end}
		assert.Equal(t, "end_at", validationField(t, e.Validate()))
	})

	t.Run("aprova apenas eventos pendentes", func(t *testing.T) {
		e := &Event{Status: EventPending}
		require.NoError(t, e.Approve("admin", now))
		assert.Equal(t, EventApproved, e.Status)
		assert.ErrorIs(t, e.Approve("admin", now), domainerrors.ErrEventNotPending)
	})

	t.Run("rejeição exige motivo", func(t *testing.T) {
		e := &Event{Status: EventPending}
		assert.Equal(t, "reason", validationField(t, e.Reject("admin", " ", now)))
		require.NoError(t, e.Reject("admin", "duplicate", now))
		assert.Equal(t, EventRejected, e.Status)
		assert.Equal(t, "duplicate", e.RejectionReason)
	})

	t.Run("autor só edita enquanto pendente", func(t *testing.T) {
		author := &User{ID: "u1"}
		e := &Event{CreatedBy: "u1", Status: EventPending}
		assert.True(t, e.CanManage(author, true))

		e.Status = EventApproved
		assert.False(t, e.CanManage(author, true))
		assert.True(t, e.CanManage(author, false))
		assert.True(t, e.CanManage(&User{ID: "adm", Flags: Flags{AdminEvents: true}}, true))
		assert.False(t, e.CanManage(&User{ID: "other"}, false))
	})

	t.Run("visibilidade", func(t *testing.T) {
		e := &Event{CreatedBy: "u1", Status: EventPending}
		assert.False(t, e.IsVisibleTo(nil))
		assert.True(t, e.IsVisibleTo(&User{ID: "u1"}))
		e.Status = EventApproved
		assert.True(t, e.IsVisibleTo(nil))
		e.DeletedAt = &now
		assert.False(t, e.IsVisibleTo(&User{ID: "u1"}))
	})
}

func TestApplyVote(t *testing.T) {
	tests := []struct {
		name      string
		existing  *Vote
		value     int
		wantValue int
		wantDelta int
	}{
		{"primeiro voto positivo", nil, 1, 1, 1},
		{"primeiro voto negativo", nil, -1, -1, -1},
		{"repetir remove o voto", &Vote{Value: 1}, 1, 0, -1},
		{"trocar para negativo", &Vote{Value: 1}, -1, -1, -2},
		{"trocar para positivo", &Vote{Value: -1}, 1, 1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, d := ApplyVote(tt.existing, tt.value)
			assert.Equal(t, tt.wantValue, v)
			assert.Equal(t, tt.wantDelta, d)
		})
	}
}

func TestSoftDeletion(t *testing.T) {
	p := &Post{}
	assert.ErrorIs(t, p.Restore(), domainerrors.ErrNotDeleted)

	p.SoftDelete("mod", " off-topic ", time.Now())
	assert.True(t, p.IsDeleted())
	assert.Equal(t, "off-topic", p.DeleteReason)

	require.NoError(t, p.Restore())
	assert.False(t, p.IsDeleted())
	assert.Nil(t, p.DeletedBy)
}

func TestSortAlerts(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	alerts := []*Alert{
		{ID: "info-new", Severity: SeverityInfo, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "warn-old", Severity: SeverityWarning, CreatedAt: base},
		{ID: "emergency", Severity: SeverityEmergency, CreatedAt: base},
		{ID: "warn-new", Severity: SeverityWarning, CreatedAt: base.Add(time.Hour)},
	}

	SortAlerts(alerts)

	ids := make([]string, len(alerts))
	for i, a := range alerts {
		ids[i] = a.ID
	}
	assert.Equal(t, []string{"emergency", "warn-new", "warn-old", "info-new"}, ids)
}

func TestAlert_Active(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Minute)
	future := now.Add(time.Hour)

	assert.True(t, (&Alert{}).IsActive(now))
	assert.True(t, (&Alert{ExpiresAt: &future}).IsActive(now))
	assert.False(t, (&Alert{ExpiresAt: &past}).IsActive(now))
	assert.False(t, (&Alert{ExpiresAt: &now}).IsActive(now))

	a := &Alert{}
	a.Archive(now)
	assert.False(t, a.IsActive(now))
	a.Unarchive()
	assert.True(t, a.IsActive(now))
}

func TestAlert_Validate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	a := &Alert{Title: "Boil water", Message: "Until further notice", Severity: SeverityWarning}
	require.NoError(t, a.Validate(now))
	assert.Equal(t, AlertGeneral, a.Category)

	a.Severity = "catastrophic"
	assert.Equal(t, "severity", validationField(t, a.Validate(now)))

	a.Severity = SeverityInfo
	a.ExpiresAt = &past
	assert.Equal(t, "expires_at", validationField(t, a.Validate(now)))

	t.Run("expiração compara em segundos inteiros", func(t *testing.T) {
		late := now.Add(700 * time.Millisecond)

		sameSecond := now.Add(900 * time.Millisecond)
		a.ExpiresAt = &sameSecond
		assert.Equal(t, "expires_at", validationField(t, a.Validate(late)))

		nextSecond := now.Add(1200 * time.Millisecond)
		a.ExpiresAt = &nextSecond
		require.NoError(t, a.Validate(late))
		assert.Equal(t, now.Add(time.Second), *a.ExpiresAt)
		assert.True(t, a.IsActive(late))
	})
}

func TestTitleLimitsCountCharacters(t *testing.T) {
	accented := strings.Repeat("é", 150)
	require.Greater(t, len(accented), 200)

	post := &Post{Category: "general", Title: accented, Body: "body"}
	assert.NoError(t, post.Validate())

	event := &Event{Title: accented, Category: "markets", StartAt: time.Now()}
	assert.NoError(t, event.Validate())

	alert := &Alert{Title: accented, Message: "m", Severity: SeverityInfo}
	assert.NoError(t, alert.Validate(time.Now()))

	post.Title = strings.Repeat("é", 201)
	assert.Equal(t, "title", validationField(t, post.Validate()))
}

func TestReport_Resolve(t *testing.T) {
	now := time.Now()
	r := &Report{Status: ReportPending}

	assert.Equal(t, "status", validationField(t, r.Resolve(ReportPending, "", "mod", now)))
	require.NoError(t, r.Resolve(ReportDismissed, " not spam ", "mod", now))
	assert.Equal(t, "not spam", r.Resolution)
	assert.ErrorIs(t, r.Resolve(ReportResolved, "", "mod", now), domainerrors.ErrReportNotPending)
}

func TestReport_Validate(t *testing.T) {
	r := &Report{TargetType: ReportTargetPost, TargetID: "p1", Reason: ReasonOther}
	assert.Equal(t, "details", validationField(t, r.Validate()))

	r.Details = "off-island advertising"
	assert.NoError(t, r.Validate())

	r.TargetType = "comment"
	assert.Equal(t, "target_type", validationField(t, r.Validate()))
}

func TestBusiness_Matches(t *testing.T) {
	b := &Business{Name: "Silva Bay Store", Category: "groceries", Description: "Fresh bread and ice"}

	assert.True(t, b.Matches("", ""))
	assert.True(t, b.Matches("groceries", "BREAD"))
	assert.False(t, b.Matches("restaurants", ""))
	assert.False(t, b.Matches("", "pizza"))

	list := []*Business{{Name: "b"}, {Name: "A"}, {Name: "z", IsFeatured: true}}
	SortBusinesses(list)
	assert.Equal(t, "z", list[0].Name)
	assert.Equal(t, "A", list[1].Name)
}
