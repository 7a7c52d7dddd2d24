package commands

import (
	"errors"
	"os"

	"topcv-crawler/internal/store"
	"topcv-crawler/lib/serviceutil"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var runsLimit int

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 10, "Amount of runs to show.")
	rootCmd.AddCommand(runsCmd)
}

var runsCmd = &cobra.Command{
	Use:   "runs [-n <limit>]",
	Short: "Prints the most recent runs kept in the store.",
	Run: func(cmd *cobra.Command, args []string) {
		config, err := LoadConfig(configPath)
		if err != nil {
			serviceutil.Fatal("failed to load config", err)
		}
		if !config.Store.Enabled() {
			serviceutil.Fatal("no store configured", errors.New("set store.file or store.url"))
		}

		database, err := openStore(cmd.Context(), config.Store)
		if err != nil {
			serviceutil.Fatal("failed to open store", err)
		}
		defer database.Close()

		runs, err := store.NewStore(database).ListRuns(cmd.Context(), runsLimit)
		if err != nil {
			serviceutil.Fatal("failed to list runs", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Run", "Crawl date", "Started", "Took", "Records", "Failed keywords"})
		for _, run := range runs {
			failed := 0
			for _, kw := range run.Keywords {
				if kw.Error != "" {
					failed++
				}
			}
			t.AppendRow(table.Row{
				run.Id,
				run.CrawlDate,
				run.StartedAt.Format("2006-01-02 15:04"),
				run.FinishedAt.Sub(run.StartedAt).String(),
				run.RecordCount,
				failed,
			})
		}
		t.SetStyle(table.StyleRounded)
		t.Render()
	},
}
