package main

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
	"github.com/spf13/cobra"

	"github.com/orbops/cmdstate/archive"
	"github.com/orbops/cmdstate/events"
	"github.com/orbops/cmdstate/xtime"
)

var (
	eventsDateNowFlag   string
	eventsDateStartFlag string
	eventsModelsFlag    string
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "manage the derived events database",
}

var eventsUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "idempotently update the events database from the command archive",
	Long: `update re-derives events up to --date-now, resuming from each
model's last processed date unless --date-start forces a replay.

Examples:
  cmdstatectl events update
  cmdstatectl events update --date-start 2020:001:00:00:00.000 --date-now 2020:090:00:00:00.000`,
	RunE: runEventsUpdate,
}

func init() {
	eventsUpdateCmd.Flags().StringVar(&eventsDateNowFlag, "date-now", "", "process events up to this date (default: now)")
	eventsUpdateCmd.Flags().StringVar(&eventsDateStartFlag, "date-start", "", "replay from this date instead of the last processed date")
	eventsUpdateCmd.Flags().StringVar(&eventsModelsFlag, "model", "", "comma-separated model names to update (default: all)")
	eventsCmd.AddCommand(eventsUpdateCmd)
}

func runEventsUpdate(cmd *cobra.Command, args []string) error {
	dateNow, err := xtime.Parse(eventsDateNowFlag)
	if err != nil {
		return err
	}
	dateStart, err := xtime.Parse(eventsDateStartFlag)
	if err != nil {
		return err
	}

	db, err := sql.Open("sqlite", cfg.EventsDSN)
	if err != nil {
		return fmt.Errorf("cmdstatectl: open events db: %w", err)
	}
	defer db.Close()

	store := archive.Open(cfg.ArchiveDSN)
	models := []events.EventModel{
		&events.ObsidChangeModel{Store: store},
	}

	opts := events.Options{DateNow: dateNow, DateStart: dateStart, Models: splitKeys(eventsModelsFlag)}
	return events.Run(context.Background(), db, models, opts)
}
