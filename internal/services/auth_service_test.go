package services_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/security"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

var _ = Describe("AuthService", func() {
	var (
		f    *fixture
		auth *services.AuthService
	)

	BeforeEach(func() {
		f = newFixture()
		tokens, err := security.NewJWTIssuer("test-secret", "gabriola-connects", time.Hour, f.clock)
		Expect(err).NotTo(HaveOccurred())
		auth = services.NewAuthService(
			f.users,
			security.NewBcryptHasher(bcrypt.MinCost),
			tokens,
			f.notifier,
			f.clock,
			residentPrefixes,
			f.logger,
		)
	})

	register := func(email, postal string) (*services.AuthResult, error) {
		return auth.Register(f.ctx, services.RegisterInput{
			Email:       email,
			Password:    "ferry-line-19",
			DisplayName: "Island Neighbour",
			PostalCode:  postal,
		})
	}

	Describe("Register", func() {
		It("marks Gabriola postal codes as residents and notifies admins", func() {
			result, err := register("Neighbour@Example.com", "v0r 1x2")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Token).NotTo(BeEmpty())
			Expect(result.User.IsResident).To(BeTrue())
			Expect(result.User.ResidentVerifiedAt).NotTo(BeNil())
			Expect(result.User.Email.String()).To(Equal("neighbour@example.com"))

			events := f.notifier.Events()
			Expect(events).To(HaveLen(1))
			Expect(events[0].Topic).To(Equal(ports.TopicAdmin))
			Expect(events[0].Type).To(Equal("user.created"))
		})

		It("does not mark other postal codes as residents", func() {
			result, err := register("visitor@example.com", "V9R 5K1")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.User.IsResident).To(BeFalse())
		})

		It("rejects duplicate emails", func() {
			_, err := register("dup@example.com", "")
			Expect(err).NotTo(HaveOccurred())
			_, err = register("DUP@example.com", "")
			Expect(err).To(MatchError(errors.ErrEmailAlreadyExists))
		})

		DescribeTable("rejects invalid input",
			func(input services.RegisterInput, field string) {
				_, err := auth.Register(f.ctx, input)
				Expect(err).To(BeAssignableToTypeOf(&errors.ValidationError{}))
				Expect(err.(*errors.ValidationError).Field).To(Equal(field))
			},
			Entry("email inválido", services.RegisterInput{Email: "nope", Password: "12345678", DisplayName: "Ann"}, "email"),
			Entry("senha curta", services.RegisterInput{Email: "a@b.ca", Password: "short", DisplayName: "Ann"}, "password"),
			Entry("código postal inválido", services.RegisterInput{Email: "a@b.ca", Password: "12345678", DisplayName: "Ann", PostalCode: "12345"}, "postal_code"),
			Entry("nome vazio", services.RegisterInput{Email: "a@b.ca", Password: "12345678"}, "display_name"),
		)
	})

	Describe("Login", func() {
		BeforeEach(func() {
			_, err := register("login@example.com", "")
			Expect(err).NotTo(HaveOccurred())
		})

		It("returns a token that authenticates the user", func() {
			result, err := auth.Login(f.ctx, "login@example.com", "ferry-line-19")
			Expect(err).NotTo(HaveOccurred())

			user, err := auth.Authenticate(f.ctx, result.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(user.ID).To(Equal(result.User.ID))
		})

		It("rejects a wrong password", func() {
			_, err := auth.Login(f.ctx, "login@example.com", "wrong-password")
			Expect(err).To(MatchError(errors.ErrInvalidCredentials))
		})

		It("rejects an unknown email", func() {
			_, err := auth.Login(f.ctx, "ghost@example.com", "ferry-line-19")
			Expect(err).To(MatchError(errors.ErrInvalidCredentials))
		})

		It("rejects banned users", func() {
			user, err := f.users.FindByEmail(f.ctx, "login@example.com")
			Expect(err).NotTo(HaveOccurred())
			user.Ban("spam", f.clock.Now())
			Expect(f.users.Update(f.ctx, user)).To(Succeed())

			_, err = auth.Login(f.ctx, "login@example.com", "ferry-line-19")
			Expect(err).To(MatchError(errors.ErrUserBanned))
		})
	})

	Describe("Authenticate", func() {
		It("rejects garbage and expired tokens", func() {
			_, err := auth.Authenticate(f.ctx, "not-a-token")
			Expect(err).To(MatchError(errors.ErrUnauthorized))

			result, err := register("expiring@example.com", "")
			Expect(err).NotTo(HaveOccurred())
			f.clock.Advance(2 * time.Hour)
			_, err = auth.Authenticate(f.ctx, result.Token)
			Expect(err).To(MatchError(errors.ErrUnauthorized))
		})

		It("reloads the profile so permission changes apply immediately", func() {
			result, err := register("promoted@example.com", "")
			Expect(err).NotTo(HaveOccurred())

			user, err := f.users.FindByID(f.ctx, result.User.ID)
			Expect(err).NotTo(HaveOccurred())
			user.Flags = entities.Flags{AdminEvents: true}
			Expect(f.users.Update(f.ctx, user)).To(Succeed())

			current, err := auth.Authenticate(f.ctx, result.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(current.HasPermission(entities.PermissionEventsManage)).To(BeTrue())
		})
	})

	Describe("BootstrapSuperAdmin", func() {
		It("creates the account with the super admin flag", func() {
			user, created, err := auth.BootstrapSuperAdmin(f.ctx, services.RegisterInput{
				Email:       "root@example.com",
				Password:    "ferry-line-19",
				DisplayName: "Portal Admin",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeTrue())

			stored, err := f.users.FindByID(f.ctx, user.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.IsSuperAdmin).To(BeTrue())
			Expect(stored.HasPermission(entities.PermissionUsersManage)).To(BeTrue())
		})

		It("promotes an existing account without touching its password", func() {
			_, err := register("existing@example.com", "")
			Expect(err).NotTo(HaveOccurred())

			user, created, err := auth.BootstrapSuperAdmin(f.ctx, services.RegisterInput{
				Email:    "Existing@Example.com",
				Password: "another-password",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created).To(BeFalse())
			Expect(user.IsSuperAdmin).To(BeTrue())

			_, err = auth.Login(f.ctx, "existing@example.com", "ferry-line-19")
			Expect(err).NotTo(HaveOccurred())
		})
	})
})
