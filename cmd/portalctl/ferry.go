package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/ports"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/config"
	"github.com/gabriola-connects/portal-backend/internal/infrastructure/seed"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

var (
	ferryDate  string
	ferryCount int
)

var ferryCmd = &cobra.Command{
	Use:   "ferry <direction>",
	Short: "Print ferry sailings from the embedded timetable",
	Long: `Print ferry sailings from the embedded timetable.

Directions: nanaimo-to-gabriola, gabriola-to-nanaimo.
Without --date the next sailings from now are printed.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		timetable, err := seed.Timetable()
		if err != nil {
			return err
		}
		ferry := services.NewFerryService(timetable, cfg.Community.Timezone, ports.SystemClock{})

		var departures []entities.Departure
		if ferryDate != "" {
			date, err := time.ParseInLocation(time.DateOnly, ferryDate, ferry.Location())
			if err != nil {
				return fmt.Errorf("invalid --date: %w", err)
			}
			departures, err = ferry.DaySchedule(args[0], &date)
			if err != nil {
				return err
			}
		} else {
			departures, err = ferry.NextSailings(args[0], ferryCount)
			if err != nil {
				return err
			}
		}

		printDepartures(cmd.OutOrStdout(), departures, ferry.Location())
		return nil
	},
}

func init() {
	ferryCmd.Flags().StringVar(&ferryDate, "date", "", "Day to print (YYYY-MM-DD)")
	ferryCmd.Flags().IntVarP(&ferryCount, "count", "n", 5, "Number of upcoming sailings")
}

func printDepartures(out io.Writer, departures []entities.Departure, loc *time.Location) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, d := range departures {
		local := d.DepartsAt.In(loc)
		fmt.Fprintf(w, "%s\t%s\t%s\n", local.Format("Mon 2006-01-02"), local.Format("15:04"), d.Note)
	}
	_ = w.Flush()
}
