package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

var _ = Describe("ReportService", func() {
	var (
		f         *fixture
		reports   *services.ReportService
		forum     *services.ForumService
		reporter  *entities.User
		author    *entities.User
		moderator *entities.User
		post      *entities.Post
	)

	BeforeEach(func() {
		f = newFixture()
		reports = services.NewReportService(services.ReportRepositories{
			Reports:    f.reports,
			Forum:      f.forum,
			Events:     f.events,
			Businesses: f.businesses,
			Users:      f.users,
		}, f.uow, f.notifier, f.clock, f.logger)
		forum = services.NewForumService(f.forum, f.categoryService, f.uow, f.clock, f.logger)

		reporter = f.user("Reporter", entities.Flags{})
		author = f.user("Author", entities.Flags{})
		moderator = f.user("Moderator", entities.Flags{ForumModerator: true})
		f.category(entities.ScopeForum, "Buy & Sell")

		var err error
		post, err = forum.CreateThread(f.ctx, author, services.ThreadInput{Category: "buy-sell", Title: "Cheap watches", Body: "click here"})
		Expect(err).NotTo(HaveOccurred())
	})

	report := func(target entities.ReportTarget, id string) (*entities.Report, error) {
		return reports.Create(f.ctx, reporter, services.ReportInput{
			TargetType: target,
			TargetID:   id,
			Reason:     entities.ReasonSpam,
		})
	}

	It("creates a pending report and notifies admins", func() {
		r, err := report(entities.ReportTargetPost, post.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(r.Status).To(Equal(entities.ReportPending))
		Expect(f.notifier.Types()).To(ContainElement(services.ReportCreated))
	})

	It("rejects a second pending report on the same target", func() {
		_, err := report(entities.ReportTargetPost, post.ID)
		Expect(err).NotTo(HaveOccurred())
		_, err = report(entities.ReportTargetPost, post.ID)
		Expect(err).To(MatchError(errors.ErrReportDuplicate))
	})

	It("rejects missing targets", func() {
		_, err := report(entities.ReportTargetEvent, "00000000-0000-0000-0000-000000000000")
		Expect(err).To(MatchError(errors.ErrTargetNotFound))
	})

	It("requires details when the reason is other", func() {
		_, err := reports.Create(f.ctx, reporter, services.ReportInput{
			TargetType: entities.ReportTargetUser,
			TargetID:   author.ID,
			Reason:     entities.ReasonOther,
		})
		Expect(err).To(BeAssignableToTypeOf(&errors.ValidationError{}))
	})

	It("restricts the queue to moderators", func() {
		_, err := reports.List(f.ctx, reporter, nil, repositories.Pagination{})
		Expect(err).To(MatchError(errors.ErrForbidden))

		_, err = report(entities.ReportTargetPost, post.ID)
		Expect(err).NotTo(HaveOccurred())
		pending := entities.ReportPending
		page, err := reports.List(f.ctx, moderator, &pending, repositories.Pagination{})
		Expect(err).NotTo(HaveOccurred())
		Expect(page.Total).To(BeEquivalentTo(1))
	})

	It("removes the reported post in the same resolution", func() {
		r, err := report(entities.ReportTargetPost, post.ID)
		Expect(err).NotTo(HaveOccurred())

		resolved, err := reports.Resolve(f.ctx, moderator, r.ID, services.ResolveInput{
			Status:        entities.ReportResolved,
			Resolution:    "spam removed",
			RemoveContent: true,
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(resolved.Status).To(Equal(entities.ReportResolved))
		Expect(resolved.ResolvedBy).To(HaveValue(Equal(moderator.ID)))

		stored, err := f.forum.FindPost(f.ctx, post.ID, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.IsDeleted()).To(BeTrue())
		Expect(stored.DeleteReason).To(Equal("spam removed"))

		_, err = reports.Resolve(f.ctx, moderator, r.ID, services.ResolveInput{Status: entities.ReportDismissed})
		Expect(err).To(MatchError(errors.ErrReportNotPending))
	})

	It("adjusts the reply count when a reported reply is removed", func() {
		reply, err := forum.Reply(f.ctx, author, post.ID, "buy now")
		Expect(err).NotTo(HaveOccurred())
		r, err := report(entities.ReportTargetReply, reply.ID)
		Expect(err).NotTo(HaveOccurred())

		_, err = reports.Resolve(f.ctx, moderator, r.ID, services.ResolveInput{Status: entities.ReportResolved, RemoveContent: true})
		Expect(err).NotTo(HaveOccurred())

		stored, err := f.forum.FindPost(f.ctx, post.ID, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored.ReplyCount).To(BeZero())
	})

	It("leaves content alone when dismissed", func() {
		r, err := report(entities.ReportTargetPost, post.ID)
		Expect(err).NotTo(HaveOccurred())

		_, err = reports.Resolve(f.ctx, moderator, r.ID, services.ResolveInput{Status: entities.ReportDismissed, RemoveContent: true})
		Expect(err).NotTo(HaveOccurred())

		stored, err := f.forum.FindPost(f.ctx, post.ID, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(stored).NotTo(BeNil())
	})
})
