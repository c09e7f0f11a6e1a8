package services_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

var _ = Describe("AlertService", func() {
	var (
		f      *fixture
		alerts *services.AlertService
		admin  *entities.User
		member *entities.User
	)

	BeforeEach(func() {
		f = newFixture()
		alerts = services.NewAlertService(f.alerts, f.notifier, f.clock, f.logger)
		admin = f.user("Alerts", entities.Flags{AdminAlerts: true})
		member = f.user("Member", entities.Flags{})
	})

	create := func(title string, severity entities.Severity, expiresAt *time.Time) *entities.Alert {
		alert, err := alerts.Create(f.ctx, admin, services.AlertInput{
			Title:     title,
			Message:   title + " details",
			Severity:  severity,
			ExpiresAt: expiresAt,
		})
		Expect(err).NotTo(HaveOccurred())
		return alert
	}

	It("orders active alerts by severity, then newest first", func() {
		info := create("Library hours", entities.SeverityInfo, nil)
		f.clock.Advance(time.Minute)
		olderWarning := create("Wind warning", entities.SeverityWarning, nil)
		f.clock.Advance(time.Minute)
		newerWarning := create("Power outage", entities.SeverityWarning, nil)
		f.clock.Advance(time.Minute)
		emergency := create("Wildfire", entities.SeverityEmergency, nil)

		active, err := alerts.Active(f.ctx)
		Expect(err).NotTo(HaveOccurred())
		ids := make([]string, len(active))
		for i, a := range active {
			ids[i] = a.ID
		}
		Expect(ids).To(Equal([]string{emergency.ID, newerWarning.ID, olderWarning.ID, info.ID}))
	})

	It("publishes create, update and archive on the alerts topic", func() {
		alert := create("Boil water", entities.SeverityAdvisory, nil)

		_, err := alerts.Update(f.ctx, admin, alert.ID, services.AlertInput{
			Title:    "Boil water notice",
			Message:  "Until further notice",
			Severity: entities.SeverityWarning,
			Category: entities.AlertWater,
		})
		Expect(err).NotTo(HaveOccurred())
		_, err = alerts.Archive(f.ctx, admin, alert.ID)
		Expect(err).NotTo(HaveOccurred())

		Expect(f.notifier.Types()).To(Equal([]string{services.AlertCreated, services.AlertUpdated, services.AlertArchived}))
		for _, e := range f.notifier.Events() {
			Expect(e.Topic).To(Equal(ports.TopicAlerts))
		}
	})

	It("rejects an expiry in the past", func() {
		_, err := alerts.Create(f.ctx, admin, services.AlertInput{
			Title:     "Late",
			Message:   "m",
			Severity:  entities.SeverityInfo,
			ExpiresAt: ptr(f.clock.Now().Add(-time.Minute)),
		})
		Expect(err).To(BeAssignableToTypeOf(&errors.ValidationError{}))
	})

	It("hides expired alerts and the sweeper archives them", func() {
		expiring := create("Road closed", entities.SeverityWarning, ptr(f.clock.Now().Add(time.Hour)))
		create("Ongoing", entities.SeverityInfo, nil)

		f.clock.Advance(2 * time.Hour)
		active, err := alerts.Active(f.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(active).To(HaveLen(1))

		n, err := alerts.SweepExpired(f.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(1))

		archived, err := alerts.Archived(f.ctx, admin, repositories.Pagination{})
		Expect(err).NotTo(HaveOccurred())
		Expect(archived.Items).To(HaveLen(1))
		Expect(archived.Items[0].ID).To(Equal(expiring.ID))

		n, err = alerts.SweepExpired(f.ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeZero())

		_, err = alerts.Unarchive(f.ctx, admin, expiring.ID)
		Expect(err).To(BeAssignableToTypeOf(&errors.ValidationError{}))
	})

	It("unarchives and deletes", func() {
		alert := create("Ferry delay", entities.SeverityAdvisory, nil)
		_, err := alerts.Archive(f.ctx, admin, alert.ID)
		Expect(err).NotTo(HaveOccurred())

		restored, err := alerts.Unarchive(f.ctx, admin, alert.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(restored.IsArchived).To(BeFalse())

		Expect(alerts.Delete(f.ctx, admin, alert.ID)).To(Succeed())
		_, err = alerts.Archive(f.ctx, admin, alert.ID)
		Expect(err).To(MatchError(errors.ErrAlertNotFound))
	})

	It("restricts management to alerts.manage", func() {
		_, err := alerts.Create(f.ctx, member, services.AlertInput{Title: "t", Message: "m", Severity: entities.SeverityInfo})
		Expect(err).To(MatchError(errors.ErrForbidden))
		_, err = alerts.Archived(f.ctx, member, repositories.Pagination{})
		Expect(err).To(MatchError(errors.ErrForbidden))
	})
})
