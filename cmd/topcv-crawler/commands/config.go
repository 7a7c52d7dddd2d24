package commands

import (
	"errors"
	"fmt"
	"os"

	"topcv-crawler/internal/crawler"
	"topcv-crawler/internal/fetch"
	"topcv-crawler/internal/notify"
	"topcv-crawler/internal/output"
	"topcv-crawler/internal/scrapers/topcv"
	"topcv-crawler/lib/configutil"
	"topcv-crawler/lib/sqliteutil"
)

type CrawlConfig struct {
	Keywords []string `json:"keywords"`
	crawler.Options
}

type ScheduleConfig struct {
	// Cron is a standard 5 field cron spec evaluated in the site's
	// timezone.
	Cron string `json:"cron"`
}

type Config struct {
	Fetch    fetch.Options     `json:"fetch"`
	Labels   topcv.Labels      `json:"labels"`
	Crawl    CrawlConfig       `json:"crawl"`
	Output   output.Options    `json:"output"`
	Store    sqliteutil.Config `json:"store"`
	Email    notify.Options    `json:"email"`
	Schedule ScheduleConfig    `json:"schedule"`
}

func DefaultConfig() Config {
	return Config{
		Fetch:  fetch.DefaultOptions(),
		Labels: topcv.DefaultLabels(),
		Crawl: CrawlConfig{
			Keywords: crawler.DefaultKeywords,
			Options:  crawler.DefaultOptions(),
		},
		Output:   output.DefaultOptions(),
		Schedule: ScheduleConfig{Cron: "0 8 * * *"},
	}
}

// LoadConfig reads the configuration at path with defaults filled in, a
// missing file means running on defaults alone.
func LoadConfig(path string) (Config, error) {
	config, err := configutil.ReadConfig[Config](path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	config, err = configutil.WithDefaults(config, DefaultConfig())
	if err != nil {
		return Config{}, err
	}
	if config.Crawl.EndPage < config.Crawl.StartPage {
		return Config{}, fmt.Errorf(
			"end page %d is before start page %d",
			config.Crawl.EndPage, config.Crawl.StartPage,
		)
	}
	return config, nil
}
