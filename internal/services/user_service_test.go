package services_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

var _ = Describe("UserService", func() {
	var (
		f     *fixture
		users *services.UserService
		super *entities.User
		alice *entities.User
	)

	BeforeEach(func() {
		f = newFixture()
		users = services.NewUserService(f.users, f.clock, residentPrefixes, f.logger)
		super = f.user("Super", entities.Flags{IsSuperAdmin: true})
		alice = f.user("Alice", entities.Flags{})
	})

	Describe("UpdateProfile", func() {
		It("recomputes residency from the postal code", func() {
			updated, err := users.UpdateProfile(f.ctx, alice, services.UpdateProfileInput{PostalCode: ptr("V0R 1X0")})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.IsResident).To(BeTrue())

			updated, err = users.UpdateProfile(f.ctx, alice, services.UpdateProfileInput{PostalCode: ptr("")})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.IsResident).To(BeFalse())
			Expect(updated.PostalCode.IsZero()).To(BeTrue())
		})

		It("rejects a malformed postal code", func() {
			_, err := users.UpdateProfile(f.ctx, alice, services.UpdateProfileInput{PostalCode: ptr("90210")})
			Expect(err).To(BeAssignableToTypeOf(&errors.ValidationError{}))
		})

		It("rejects a one-letter display name", func() {
			_, err := users.UpdateProfile(f.ctx, alice, services.UpdateProfileInput{DisplayName: ptr("A")})
			Expect(err).To(BeAssignableToTypeOf(&errors.ValidationError{}))
		})

		It("clears the avatar with an empty string", func() {
			updated, err := users.UpdateProfile(f.ctx, alice, services.UpdateProfileInput{AvatarURL: ptr("https://img.example/a.png")})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.AvatarURL).To(HaveValue(Equal("https://img.example/a.png")))

			updated, err = users.UpdateProfile(f.ctx, alice, services.UpdateProfileInput{AvatarURL: ptr("")})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.AvatarURL).To(BeNil())
		})
	})

	Describe("ListUsers", func() {
		It("filters by search and requires users.manage", func() {
			_, err := users.ListUsers(f.ctx, alice, repositories.UserFilters{})
			Expect(err).To(MatchError(errors.ErrForbidden))

			page, err := users.ListUsers(f.ctx, super, repositories.UserFilters{Search: "ali"})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(1))
			Expect(page.Items[0].ID).To(Equal(alice.ID))
		})
	})

	It("returns not found for unknown ids", func() {
		_, err := users.GetUser(f.ctx, "missing")
		Expect(err).To(MatchError(errors.ErrUserNotFound))
	})
})
