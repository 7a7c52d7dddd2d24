package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	libtelemetry "topcv-crawler/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "Path to the configuration file.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output.")
}

var rootCmd = &cobra.Command{
	Use:   "topcv-crawler",
	Short: "topcv-crawler collects job postings from topcv.vn into csv, xlsx and sqlite.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		libtelemetry.InitSlog(verbose)
		err := libtelemetry.SetupFromEnv(cmd.Context(), "topcv-crawler")
		if err != nil {
			slog.Warn("telemetry disabled", "err", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(cmd.Context()), 10*time.Second)
		defer cancel()
		err := libtelemetry.Shutdown(ctx)
		if err != nil {
			slog.Warn("failed to flush telemetry", "err", err)
		}
	},
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
