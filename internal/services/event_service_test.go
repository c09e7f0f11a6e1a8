package services_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

var _ = Describe("EventService", func() {
	var (
		f      *fixture
		events *services.EventService
		admin  *entities.User
		member *entities.User
		other  *entities.User
	)

	BeforeEach(func() {
		f = newFixture()
		events = services.NewEventService(f.events, f.categoryService, f.clock, f.logger)
		admin = f.user("Admin", entities.Flags{AdminEvents: true})
		member = f.user("Member", entities.Flags{})
		other = f.user("Other", entities.Flags{})
		f.category(entities.ScopeEvents, "Markets")
	})

	input := func(title string, start time.Time) services.EventInput {
		return services.EventInput{
			Title:     title,
			Category:  "markets",
			Venue:     "Agi Hall",
			StartAt:   start,
			Organizer: "Gabriola Farmers Market",
		}
	}

	It("auto-approves events created by event admins", func() {
		event, err := events.Create(f.ctx, admin, input("Saturday market", f.clock.Now().Add(24*time.Hour)))
		Expect(err).NotTo(HaveOccurred())
		Expect(event.Status).To(Equal(entities.EventApproved))
		Expect(event.ReviewedBy).To(HaveValue(Equal(admin.ID)))
	})

	It("keeps member submissions pending and private", func() {
		event, err := events.Create(f.ctx, member, input("Craft fair", f.clock.Now().Add(24*time.Hour)))
		Expect(err).NotTo(HaveOccurred())
		Expect(event.Status).To(Equal(entities.EventPending))

		_, err = events.Get(f.ctx, other, event.ID)
		Expect(err).To(MatchError(errors.ErrEventNotFound))
		_, err = events.Get(f.ctx, nil, event.ID)
		Expect(err).To(MatchError(errors.ErrEventNotFound))

		own, err := events.Get(f.ctx, member, event.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(own.ID).To(Equal(event.ID))

		mine, err := events.Mine(f.ctx, member, repositories.Pagination{})
		Expect(err).NotTo(HaveOccurred())
		Expect(mine.Total).To(BeEquivalentTo(1))
	})

	It("rejects an end before the start", func() {
		in := input("Backwards", f.clock.Now().Add(time.Hour))
		in.EndAt = ptr(f.clock.Now())
		_, err := events.Create(f.ctx, member, in)
		Expect(err).To(BeAssignableToTypeOf(&errors.ValidationError{}))
	})

	Describe("review", func() {
		var pending *entities.Event

		BeforeEach(func() {
			var err error
			pending, err = events.Create(f.ctx, member, input("Open studio", f.clock.Now().Add(48*time.Hour)))
			Expect(err).NotTo(HaveOccurred())
		})

		It("lists the queue and approves", func() {
			queue, err := events.Pending(f.ctx, admin, repositories.Pagination{})
			Expect(err).NotTo(HaveOccurred())
			Expect(queue.Items).To(HaveLen(1))

			approved, err := events.Approve(f.ctx, admin, pending.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(approved.Status).To(Equal(entities.EventApproved))

			_, err = events.Approve(f.ctx, admin, pending.ID)
			Expect(err).To(MatchError(errors.ErrEventNotPending))
		})

		It("requires a reason to reject", func() {
			_, err := events.Reject(f.ctx, admin, pending.ID, " ")
			Expect(err).To(BeAssignableToTypeOf(&errors.ValidationError{}))

			rejected, err := events.Reject(f.ctx, admin, pending.ID, "duplicate")
			Expect(err).NotTo(HaveOccurred())
			Expect(rejected.RejectionReason).To(Equal("duplicate"))
		})

		It("is restricted to event admins", func() {
			_, err := events.Pending(f.ctx, member, repositories.Pagination{})
			Expect(err).To(MatchError(errors.ErrForbidden))
			_, err = events.Approve(f.ctx, member, pending.ID)
			Expect(err).To(MatchError(errors.ErrForbidden))
		})

		It("lets the creator edit only while pending", func() {
			in := input("Open studio tour", pending.StartAt)
			edited, err := events.Update(f.ctx, member, pending.ID, in)
			Expect(err).NotTo(HaveOccurred())
			Expect(edited.Title).To(Equal("Open studio tour"))

			_, err = events.Approve(f.ctx, admin, pending.ID)
			Expect(err).NotTo(HaveOccurred())

			_, err = events.Update(f.ctx, member, pending.ID, in)
			Expect(err).To(MatchError(errors.ErrForbidden))
		})
	})

	Describe("Calendar", func() {
		It("lists approved upcoming events by start time", func() {
			now := f.clock.Now()
			later, err := events.Create(f.ctx, admin, input("Later", now.Add(72*time.Hour)))
			Expect(err).NotTo(HaveOccurred())
			sooner, err := events.Create(f.ctx, admin, input("Sooner", now.Add(2*time.Hour)))
			Expect(err).NotTo(HaveOccurred())
			_, err = events.Create(f.ctx, admin, input("Past", now.Add(-48*time.Hour)))
			Expect(err).NotTo(HaveOccurred())
			_, err = events.Create(f.ctx, member, input("Pending", now.Add(3*time.Hour)))
			Expect(err).NotTo(HaveOccurred())

			page, err := events.Calendar(f.ctx, services.CalendarQuery{})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(2))
			Expect(page.Items[0].ID).To(Equal(sooner.ID))
			Expect(page.Items[1].ID).To(Equal(later.ID))

			to := now.Add(24 * time.Hour)
			page, err = events.Calendar(f.ctx, services.CalendarQuery{To: &to})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(1))
		})

		It("keeps an event visible until its end", func() {
			now := f.clock.Now()
			in := input("All day", now.Add(-2*time.Hour))
			in.EndAt = ptr(now.Add(2 * time.Hour))
			_, err := events.Create(f.ctx, admin, in)
			Expect(err).NotTo(HaveOccurred())

			page, err := events.Calendar(f.ctx, services.CalendarQuery{})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(BeEquivalentTo(1))
		})
	})

	It("soft deletes and restores", func() {
		event, err := events.Create(f.ctx, member, input("Mistake", f.clock.Now().Add(time.Hour)))
		Expect(err).NotTo(HaveOccurred())

		Expect(events.Delete(f.ctx, other, event.ID)).To(MatchError(errors.ErrEventNotFound))
		Expect(events.Delete(f.ctx, member, event.ID)).To(Succeed())

		_, err = events.Get(f.ctx, member, event.ID)
		Expect(err).To(MatchError(errors.ErrEventNotFound))

		_, err = events.Restore(f.ctx, member, event.ID)
		Expect(err).To(MatchError(errors.ErrForbidden))

		restored, err := events.Restore(f.ctx, admin, event.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(restored.IsDeleted()).To(BeFalse())
	})
})
