package services_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/services"
	"github.com/gabriola-connects/portal-backend/internal/testsupport"
)

var _ = Describe("FerryService", func() {
	var (
		loc   *time.Location
		clock *testsupport.Clock
		ferry *services.FerryService
	)

	BeforeEach(func() {
		var err error
		loc, err = time.LoadLocation("America/Vancouver")
		Expect(err).NotTo(HaveOccurred())

		weekdays, err := entities.ParseDaySet("mon-fri")
		Expect(err).NotTo(HaveOccurred())
		timetable := entities.NewTimetable("19",
			map[entities.Direction]string{
				entities.DirectionToGabriola: "Nanaimo Harbour",
				entities.DirectionToNanaimo:  "Descanso Bay",
			},
			map[entities.Direction][]entities.Sailing{
				entities.DirectionToNanaimo: {
					{Minute: 22 * 60, Days: entities.EveryDay},
					{Minute: 6*60 + 15, Days: weekdays, Note: "except holidays"},
					{Minute: 9 * 60, Days: entities.EveryDay},
				},
				entities.DirectionToGabriola: {
					{Minute: 7 * 60, Days: entities.EveryDay},
				},
			},
		)

		// Sexta-feira, 21:30 em Vancouver
		clock = testsupport.NewClock(time.Date(2026, 6, 5, 21, 30, 0, 0, loc))
		ferry = services.NewFerryService(timetable, loc, clock)
	})

	It("lists a day's sailings in order", func() {
		deps, err := ferry.DaySchedule(string(entities.DirectionToNanaimo), nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(deps).To(HaveLen(3))
		Expect(deps[0].DepartsAt.Hour()).To(Equal(6))
		Expect(deps[0].Note).To(Equal("except holidays"))
		Expect(deps[2].DepartsAt.Hour()).To(Equal(22))
	})

	It("skips weekday-only sailings on weekends", func() {
		saturday := time.Date(2026, 6, 6, 0, 0, 0, 0, time.UTC)
		deps, err := ferry.DaySchedule(string(entities.DirectionToNanaimo), &saturday)
		Expect(err).NotTo(HaveOccurred())
		Expect(deps).To(HaveLen(2))
	})

	It("rolls the next sailings over to the following days in the local timezone", func() {
		deps, err := ferry.NextSailings(string(entities.DirectionToNanaimo), 3)
		Expect(err).NotTo(HaveOccurred())
		Expect(deps).To(HaveLen(3))

		Expect(deps[0].DepartsAt.Day()).To(Equal(5))
		Expect(deps[0].DepartsAt.Hour()).To(Equal(22))
		// Sábado não tem a partida das 06:15
		Expect(deps[1].DepartsAt.Day()).To(Equal(6))
		Expect(deps[1].DepartsAt.Hour()).To(Equal(9))
		Expect(deps[2].DepartsAt.Day()).To(Equal(6))
		Expect(deps[2].DepartsAt.Hour()).To(Equal(22))
		Expect(deps[0].DepartsAt.Location()).To(Equal(loc))
	})

	It("rejects unknown directions", func() {
		_, err := ferry.NextSailings("to-vancouver", 1)
		Expect(err).To(MatchError(errors.ErrInvalidDirection))
	})

	It("caps the number of sailings", func() {
		_, err := ferry.NextSailings(string(entities.DirectionToGabriola), 100)
		Expect(err).To(HaveOccurred())
	})
})
