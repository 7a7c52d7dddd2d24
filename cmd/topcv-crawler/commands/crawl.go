package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"topcv-crawler/internal/components/chrono"
	"topcv-crawler/internal/components/telemetry"
	"topcv-crawler/internal/crawler"
	"topcv-crawler/internal/fetch"
	"topcv-crawler/internal/notify"
	"topcv-crawler/internal/output"
	"topcv-crawler/internal/scrapers/topcv"
	"topcv-crawler/internal/store"
	"topcv-crawler/lib/restyutil"
	"topcv-crawler/lib/serviceutil"
	"topcv-crawler/lib/sqliteutil"
	libtelemetry "topcv-crawler/lib/telemetry"

	"github.com/spf13/cobra"
)

var (
	crawlKeywords  []string
	crawlStartPage int
	crawlEndPage   int
	crawlDate      string
	crawlOutDir    string
	crawlDumpDir   string
)

func init() {
	flags := crawlCmd.Flags()
	flags.StringSliceVarP(&crawlKeywords, "keyword", "k", nil, "Keyword to search for, can be repeated. (default: the configured keywords)")
	flags.IntVar(&crawlStartPage, "start-page", 0, "First search page of every keyword.")
	flags.IntVar(&crawlEndPage, "end-page", 0, "Last search page of every keyword.")
	flags.StringVar(&crawlDate, "date", "", "Crawl date stamped on every record, YYYY-MM-DD. (default: today in Asia/Ho_Chi_Minh)")
	flags.StringVar(&crawlOutDir, "out-dir", "", "Directory the output files are written to.")
	flags.StringVar(&crawlDumpDir, "dump-dir", "", "Dump every http exchange into this directory.")
	rootCmd.AddCommand(crawlCmd)
}

// applyFlags lets explicitly passed flags override the configuration.
func applyFlags(cmd *cobra.Command, config Config) (Config, error) {
	flags := cmd.Flags()
	if flags.Changed("keyword") {
		config.Crawl.Keywords = crawlKeywords
	}
	if flags.Changed("start-page") {
		config.Crawl.StartPage = crawlStartPage
	}
	if flags.Changed("end-page") {
		config.Crawl.EndPage = crawlEndPage
	}
	if flags.Changed("date") {
		_, err := time.Parse(time.DateOnly, crawlDate)
		if err != nil {
			return config, fmt.Errorf("invalid --date: %w", err)
		}
		config.Crawl.CrawlDate = crawlDate
	}
	if flags.Changed("out-dir") {
		config.Output.Dir = crawlOutDir
	}
	if config.Crawl.StartPage < 1 || config.Crawl.EndPage < config.Crawl.StartPage {
		return config, fmt.Errorf("invalid page range %d..%d", config.Crawl.StartPage, config.Crawl.EndPage)
	}
	return config, nil
}

var crawlCmd = &cobra.Command{
	Use:   "crawl [-k <keyword>]... [--start-page N] [--end-page N] [--date YYYY-MM-DD]",
	Short: "Crawls every keyword once and writes the results.",
	Run: func(cmd *cobra.Command, args []string) {
		config, err := LoadConfig(configPath)
		if err != nil {
			serviceutil.Fatal("failed to load config", err)
		}
		config, err = applyFlags(cmd, config)
		if err != nil {
			serviceutil.Fatal("invalid flags", err)
		}

		err = runCrawl(cmd.Context(), config, crawlDumpDir, os.Stdout)
		if err != nil {
			serviceutil.Fatal("crawl did not finish", err)
		}
	},
}

// runCrawl performs one complete run: fetch, write, persist, announce.
// whatever was collected is still written when the run is interrupted.
func runCrawl(ctx context.Context, config Config, dumpDir string, stdout io.Writer) error {
	tel := telemetry.SlogAPI{}
	clock, err := chrono.NewStandardImpl(chrono.SiteTimezone)
	if err != nil {
		return err
	}
	rnd := chrono.NewStandardRandom(time.Now().UnixNano())

	runId, err := store.NewRunId()
	if err != nil {
		return err
	}
	slog.Info("starting crawl", "run", runId, "keywords", len(config.Crawl.Keywords))

	fetchOpts := config.Fetch
	if dumpDir != "" {
		dump, err := restyutil.NewFilesystemOutput(dumpDir, runId)
		if err != nil {
			return err
		}
		fetchOpts.Dump = dump
	}

	perfCtx, stopPerf := context.WithCancel(ctx)
	defer stopPerf()
	libtelemetry.InstrumentPerfStats(perfCtx, 15*time.Second)

	fetcher, err := fetch.Open(ctx, fetchOpts, clock, rnd, tel)
	if err != nil {
		return err
	}
	client := topcv.NewClient(fetcher, fetchOpts.BaseUrl, config.Labels, tel)
	result, runErr := crawler.New(client, clock, rnd, tel, config.Crawl.Options).
		Run(ctx, config.Crawl.Keywords)
	fetcher.Close()

	ctx = context.WithoutCancel(ctx)

	files, err := output.Write(config.Output, result)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	for _, f := range files {
		slog.Info("wrote output", "path", f)
	}

	if config.Store.Enabled() {
		err = saveRun(ctx, config.Store, runId, result)
		if err != nil {
			tel.ReportBroken("crawl.store", runId, err)
		}
	}

	notify.WriteSummary(stdout, result)

	if config.Email.Enabled() {
		mail, err := notify.Report(config.Email, runId, result, files)
		if err == nil {
			err = notify.Send(ctx, config.Email.Smtp, mail)
		}
		if err != nil {
			tel.ReportBroken("crawl.email", runId, err)
		}
	}

	if runErr != nil {
		return runErr
	}
	if err := result.Err(); err != nil {
		slog.Warn("some keywords failed", "err", err)
	}
	return nil
}

func saveRun(ctx context.Context, config sqliteutil.Config, runId string, result crawler.Result) error {
	database, err := openStore(ctx, config)
	if err != nil {
		return err
	}
	defer database.Close()
	return store.NewStore(database).SaveRun(ctx, runId, result)
}
