package commands

import (
	"log/slog"
	"os"

	"topcv-crawler/internal/components/chrono"
	"topcv-crawler/internal/components/telemetry"
	"topcv-crawler/lib/serviceutil"

	"github.com/spf13/cobra"
)

var scheduleCron string

func init() {
	scheduleCmd.Flags().StringVar(&scheduleCron, "cron", "", "Cron spec to crawl on. (default: schedule.cron of the config)")
	rootCmd.AddCommand(scheduleCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule [--cron <spec>]",
	Short: "Keeps running and crawls on a cron schedule.",
	Run: func(cmd *cobra.Command, args []string) {
		config, err := LoadConfig(configPath)
		if err != nil {
			serviceutil.Fatal("failed to load config", err)
		}
		if cmd.Flags().Changed("cron") {
			config.Schedule.Cron = scheduleCron
		}

		clock, err := chrono.NewStandardImpl(chrono.SiteTimezone)
		if err != nil {
			serviceutil.Fatal("failed to load timezone", err)
		}

		ctx := cmd.Context()
		cron := chrono.NewStandardCron(clock, telemetry.SlogAPI{})
		err = cron.Cron(config.Schedule.Cron, func() {
			err := runCrawl(ctx, config, "", os.Stdout)
			if err != nil {
				slog.Error("scheduled crawl failed", "err", err)
			}
		})
		if err != nil {
			serviceutil.Fatal("invalid cron spec", err)
		}
		slog.Info("waiting for schedule", "cron", config.Schedule.Cron, "timezone", chrono.SiteTimezone)

		<-ctx.Done()
		slog.Info("stopping scheduler")
		<-cron.Stop().Done()
	},
}
