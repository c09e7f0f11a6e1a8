package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
	"github.com/gabriola-connects/portal-backend/internal/services"
	"github.com/gabriola-connects/portal-backend/internal/testsupport"
)

var _ = Describe("AdminService", func() {
	var (
		f         *fixture
		admin     *services.AdminService
		super     *entities.User
		moderator *entities.User
		member    *entities.User
	)

	BeforeEach(func() {
		f = newFixture()
		admin = services.NewAdminService(services.AdminRepositories{
			Users:      f.users,
			Events:     f.events,
			Reports:    f.reports,
			Alerts:     f.alerts,
			Forum:      f.forum,
			Businesses: f.businesses,
		}, f.notifier, f.notifier, f.clock, residentPrefixes, f.logger)

		super = f.user("Super", entities.Flags{IsSuperAdmin: true})
		moderator = f.user("Moderator", entities.Flags{ForumModerator: true})
		member = f.user("Member", entities.Flags{})
	})

	Describe("Stats", func() {
		It("is available to any admin permission", func() {
			stats, err := admin.Stats(f.ctx, moderator)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.Users).To(BeEquivalentTo(3))
			Expect(stats.BannedUsers).To(BeZero())
			Expect(stats.ForumThreads).To(BeZero())
		})

		It("is hidden from members", func() {
			_, err := admin.Stats(f.ctx, member)
			Expect(err).To(MatchError(errors.ErrForbidden))
		})
	})

	Describe("Ban", func() {
		It("bans and unbans with an audit notification", func() {
			banned, err := admin.Ban(f.ctx, super, member.ID, "harassment")
			Expect(err).NotTo(HaveOccurred())
			Expect(banned.IsBanned).To(BeTrue())
			Expect(banned.HasPermission(entities.PermissionContentCreate)).To(BeFalse())

			stats, err := admin.Stats(f.ctx, super)
			Expect(err).NotTo(HaveOccurred())
			Expect(stats.BannedUsers).To(BeEquivalentTo(1))

			unbanned, err := admin.Unban(f.ctx, super, member.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(unbanned.IsBanned).To(BeFalse())

			events := f.notifier.Events()
			Expect(events).To(HaveLen(2))
			Expect(events[0].Topic).To(Equal(ports.TopicAdmin))
			Expect(events[0].Type).To(Equal(services.UserUpdated))
		})

		It("drops the banned user's realtime sessions", func() {
			_, err := admin.Ban(f.ctx, super, moderator.ID, "spam")
			Expect(err).NotTo(HaveOccurred())
			Expect(f.notifier.Revocations()).To(ConsistOf(testsupport.Revocation{UserID: moderator.ID}))
		})

		It("refuses to ban yourself", func() {
			_, err := admin.Ban(f.ctx, super, super.ID, "")
			Expect(err).To(MatchError(errors.ErrCannotModifySelf))
		})

		It("requires users.manage", func() {
			_, err := admin.Ban(f.ctx, moderator, member.ID, "")
			Expect(err).To(MatchError(errors.ErrForbidden))
		})
	})

	Describe("SetFlags", func() {
		It("grants permissions", func() {
			updated, err := admin.SetFlags(f.ctx, super, member.ID, entities.Flags{AdminAlerts: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.HasPermission(entities.PermissionAlertsManage)).To(BeTrue())

			stored, err := f.users.FindByID(f.ctx, member.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.AdminAlerts).To(BeTrue())
		})

		It("revokes the admin topic when users.manage is lost", func() {
			other := f.user("Other", entities.Flags{IsSuperAdmin: true})

			_, err := admin.SetFlags(f.ctx, super, other.ID, entities.Flags{ForumModerator: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(f.notifier.Revocations()).To(ConsistOf(testsupport.Revocation{UserID: other.ID, Topic: ports.TopicAdmin}))

			// Quem nunca teve users.manage não gera corte
			_, err = admin.SetFlags(f.ctx, super, member.ID, entities.Flags{AdminEvents: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(f.notifier.Revocations()).To(HaveLen(1))
		})

		It("does not let a super admin drop their own flag", func() {
			_, err := admin.SetFlags(f.ctx, super, super.ID, entities.Flags{AdminEvents: true})
			Expect(err).To(MatchError(errors.ErrCannotModifySelf))
		})
	})

	Describe("SetResidency", func() {
		It("sets and clears residency manually", func() {
			updated, err := admin.SetResidency(f.ctx, super, member.ID, ptr(true))
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.IsResident).To(BeTrue())
			Expect(updated.ResidentVerifiedAt).NotTo(BeNil())

			updated, err = admin.SetResidency(f.ctx, super, member.ID, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.IsResident).To(BeFalse())
		})
	})
})
