package services_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

var _ = Describe("CategoryService", func() {
	var (
		f           *fixture
		categories  *services.CategoryService
		eventsAdmin *entities.User
		member      *entities.User
	)

	BeforeEach(func() {
		f = newFixture()
		categories = f.categoryService
		eventsAdmin = f.user("Events", entities.Flags{AdminEvents: true})
		member = f.user("Member", entities.Flags{})
	})

	It("rejects an empty name on the name field", func() {
		_, err := categories.Create(f.ctx, eventsAdmin, entities.ScopeEvents, services.CategoryInput{Name: "   "})
		Expect(err).To(BeAssignableToTypeOf(&errors.ValidationError{}))
		verr := err.(*errors.ValidationError)
		Expect(verr.Field).To(Equal("name"))
		Expect(verr.Message).To(Equal(errors.MsgRequired))
	})

	It("derives the slug and keeps it unique per scope", func() {
		created, err := categories.Create(f.ctx, eventsAdmin, entities.ScopeEvents, services.CategoryInput{Name: "Arts & Culture"})
		Expect(err).NotTo(HaveOccurred())
		Expect(created.Slug).To(Equal("arts-culture"))

		_, err = categories.Create(f.ctx, eventsAdmin, entities.ScopeEvents, services.CategoryInput{Name: "Arts  & culture"})
		Expect(err).To(MatchError(errors.ErrCategoryExists))
	})

	It("keeps the slug on rename so existing content stays filed under it", func() {
		markets, err := categories.Create(f.ctx, eventsAdmin, entities.ScopeEvents, services.CategoryInput{Name: "Markets"})
		Expect(err).NotTo(HaveOccurred())

		events := services.NewEventService(f.events, categories, f.clock, f.logger)
		_, err = events.Create(f.ctx, eventsAdmin, services.EventInput{
			Title:     "Saturday market",
			Category:  markets.Slug,
			Venue:     "Agi Hall",
			StartAt:   f.clock.Now().Add(24 * time.Hour),
			Organizer: "Gabriola Farmers Market",
		})
		Expect(err).NotTo(HaveOccurred())

		renamed, err := categories.Update(f.ctx, eventsAdmin, markets.ID, services.CategoryInput{Name: "Farmers Markets"}, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(renamed.Name).To(Equal("Farmers Markets"))
		Expect(renamed.Slug).To(Equal("markets"))

		page, err := events.Calendar(f.ctx, services.CalendarQuery{Category: renamed.Slug})
		Expect(err).NotTo(HaveOccurred())
		Expect(page.Total).To(BeEquivalentTo(1))
		Expect(categories.RequireActive(f.ctx, entities.ScopeEvents, renamed.Slug)).To(Succeed())
	})

	It("requires the admin of the scope", func() {
		_, err := categories.Create(f.ctx, member, entities.ScopeEvents, services.CategoryInput{Name: "Markets"})
		Expect(err).To(MatchError(errors.ErrForbidden))

		_, err = categories.Create(f.ctx, eventsAdmin, entities.ScopeForum, services.CategoryInput{Name: "General"})
		Expect(err).To(MatchError(errors.ErrForbidden))
	})

	It("hides inactive categories from the public", func() {
		kept, err := categories.Create(f.ctx, eventsAdmin, entities.ScopeEvents, services.CategoryInput{Name: "Markets", SortOrder: 20})
		Expect(err).NotTo(HaveOccurred())
		dropped, err := categories.Create(f.ctx, eventsAdmin, entities.ScopeEvents, services.CategoryInput{Name: "Workshops", SortOrder: 10})
		Expect(err).NotTo(HaveOccurred())
		Expect(categories.Deactivate(f.ctx, eventsAdmin, dropped.ID)).To(Succeed())

		public, err := categories.List(f.ctx, nil, entities.ScopeEvents, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(public).To(HaveLen(1))
		Expect(public[0].ID).To(Equal(kept.ID))

		all, err := categories.List(f.ctx, eventsAdmin, entities.ScopeEvents, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(all).To(HaveLen(2))
		Expect(all[0].ID).To(Equal(dropped.ID))

		err = categories.RequireActive(f.ctx, entities.ScopeEvents, dropped.Slug)
		Expect(err).To(BeAssignableToTypeOf(&errors.ValidationError{}))
	})

	It("rejects an unknown scope", func() {
		_, err := categories.List(f.ctx, nil, entities.CategoryScope("boats"), false)
		Expect(err).To(HaveOccurred())
	})
})
