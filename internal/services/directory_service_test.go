package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

var _ = Describe("DirectoryService", func() {
	var (
		f         *fixture
		directory *services.DirectoryService
		manager   *entities.User
		member    *entities.User
		fallback  []*entities.Business
	)

	BeforeEach(func() {
		f = newFixture()
		fallback = []*entities.Business{
			{Name: "Silva Bay Bakery", Slug: "silva-bay-bakery", Category: "food-drink", Description: "Bread and pastries", IsActive: true},
			{Name: "Artworks", Slug: "artworks", Category: "arts-crafts", Description: "Local art co-op", IsActive: true, IsFeatured: true},
			{Name: "Closed Cafe", Slug: "closed-cafe", Category: "food-drink", IsActive: false},
		}
		directory = services.NewDirectoryService(f.businesses, f.categoryService, fallback, f.clock, f.logger)
		manager = f.user("Manager", entities.Flags{AdminDirectory: true})
		member = f.user("Member", entities.Flags{})
		f.category(entities.ScopeDirectory, "Food & Drink")
	})

	Context("when the database has no listings", func() {
		It("falls back to the static listings with the same ordering and filters", func() {
			page, err := directory.List(f.ctx, services.DirectoryQuery{})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(BeEquivalentTo(2))
			Expect(page.Items[0].Slug).To(Equal("artworks"))

			page, err = directory.List(f.ctx, services.DirectoryQuery{Search: "BREAD"})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(1))
			Expect(page.Items[0].Slug).To(Equal("silva-bay-bakery"))

			page, err = directory.List(f.ctx, services.DirectoryQuery{Pagination: repositories.Pagination{Page: 5, PageSize: 10}})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(BeEmpty())
			Expect(page.Total).To(BeEquivalentTo(2))

			found, err := directory.GetBySlug(f.ctx, nil, "artworks")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Name).To(Equal("Artworks"))
		})
	})

	Context("with stored listings", func() {
		var stored *entities.Business

		BeforeEach(func() {
			var err error
			stored, err = directory.Create(f.ctx, manager, services.BusinessInput{
				Name:        "Island Roasters",
				Category:    "food-drink",
				Description: "Coffee roasted on the island",
				Email:       "hello@roasters.example",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("stops using the fallback", func() {
			page, err := directory.List(f.ctx, services.DirectoryQuery{})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(1))
			Expect(page.Items[0].Slug).To(Equal("island-roasters"))

			_, err = directory.GetBySlug(f.ctx, nil, "artworks")
			Expect(err).To(MatchError(errors.ErrBusinessNotFound))
		})

		It("rejects duplicate slugs", func() {
			_, err := directory.Create(f.ctx, manager, services.BusinessInput{Name: "Island Roasters", Category: "food-drink"})
			Expect(err).To(MatchError(errors.ErrBusinessExists))
		})

		It("requires directory.manage", func() {
			_, err := directory.Create(f.ctx, member, services.BusinessInput{Name: "Mine", Category: "food-drink"})
			Expect(err).To(MatchError(errors.ErrForbidden))
		})

		It("deactivates and restores", func() {
			Expect(directory.Deactivate(f.ctx, manager, stored.ID)).To(Succeed())

			_, err := directory.GetBySlug(f.ctx, nil, stored.Slug)
			Expect(err).To(MatchError(errors.ErrBusinessNotFound))

			page, err := directory.List(f.ctx, services.DirectoryQuery{})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(BeEmpty())

			restored, err := directory.Restore(f.ctx, manager, stored.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored.IsActive).To(BeTrue())

			_, err = directory.Restore(f.ctx, manager, stored.ID)
			Expect(err).To(MatchError(errors.ErrNotDeleted))
		})

		It("updates without changing the slug", func() {
			updated, err := directory.Update(f.ctx, manager, stored.ID, services.BusinessInput{
				Name:       "Island Roasters & Cafe",
				Category:   "food-drink",
				IsFeatured: true,
			}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Slug).To(Equal("island-roasters"))
			Expect(updated.IsFeatured).To(BeTrue())
		})
	})
})
