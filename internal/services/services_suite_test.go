package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
	"github.com/gabriola-connects/portal-backend/internal/domain/valueobjects"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/logging"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/persistence/postgres"
	"github.com/gabriola-connects/portal-backend/internal/services"
	"github.com/gabriola-connects/portal-backend/internal/testsupport"
)

func TestServices(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Services Suite")
}

var residentPrefixes = []string{"V0R1X"}

// fixture monta os repositórios reais sobre um SQLite temporário
type fixture struct {
	ctx      context.Context
	db       *gorm.DB
	clock    *testsupport.Clock
	notifier *testsupport.RecordingNotifier
	logger   ports.Logger
	uow      ports.UnitOfWork

	users      repositories.UserRepository
	categories repositories.CategoryRepository
	events     repositories.EventRepository
	forum      repositories.ForumRepository
	businesses repositories.BusinessRepository
	alerts     repositories.AlertRepository
	reports    repositories.ReportRepository

	categoryService *services.CategoryService
}

func newFixture() *fixture {
	db, err := testsupport.OpenDB(GinkgoT().TempDir())
	Expect(err).NotTo(HaveOccurred())
	DeferCleanup(func() { testsupport.CloseDB(db) })

	f := &fixture{
		ctx:        context.Background(),
		db:         db,
		clock:      testsupport.NewClock(time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)),
		notifier:   &testsupport.RecordingNotifier{},
		logger:     logging.NewNopLogger(),
		uow:        postgres.NewUnitOfWork(db),
		users:      postgres.NewUserRepository(db),
		categories: postgres.NewCategoryRepository(db),
		events:     postgres.NewEventRepository(db),
		forum:      postgres.NewForumRepository(db),
		businesses: postgres.NewBusinessRepository(db),
		alerts:     postgres.NewAlertRepository(db),
		reports:    postgres.NewReportRepository(db),
	}
	f.categoryService = services.NewCategoryService(f.categories, f.clock, f.logger)
	return f
}

// user cria um perfil direto no repositório
func (f *fixture) user(name string, flags entities.Flags) *entities.User {
	email, err := valueobjects.NewEmail(strings.ToLower(name) + "@example.com")
	Expect(err).NotTo(HaveOccurred())

	now := f.clock.Now()
	u := &entities.User{
		Email:        email,
		DisplayName:  name,
		PasswordHash: "x",
		Flags:        flags,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	Expect(f.users.Create(f.ctx, u)).To(Succeed())
	return u
}

// category cria uma categoria ativa no escopo
func (f *fixture) category(scope entities.CategoryScope, name string) *entities.Category {
	c := &entities.Category{Scope: scope, Name: name, IsActive: true}
	c.Normalize()
	Expect(f.categories.Create(f.ctx, c)).To(Succeed())
	return c
}

func ptr[T any](v T) *T { return &v }
