package crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"topcv-crawler/internal/components/assert"
	"topcv-crawler/internal/components/chrono"
	"topcv-crawler/internal/components/telemetry"
	"topcv-crawler/internal/fetch"
	"topcv-crawler/internal/scrapers/topcv"
	"topcv-crawler/lib/textutil"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_crawler_keyword = "crawler.keyword"
	report_crawler_page    = "crawler.page"
	report_crawler_job     = "crawler.job"
	report_crawler_stats   = "crawler.stats"
)

var tracer = otel.Tracer("topcv-crawler/crawler")

var (
	// ErrListingBlocked ends a keyword whose search page stayed blocked.
	ErrListingBlocked = errors.New("listing page blocked")
	ErrEmptySlug      = errors.New("keyword has an empty slug")
)

var DefaultKeywords = []string{
	"Data Analyst",
	"Data Engineer",
	"Data Scientist",
	"Backend Developer",
	"Frontend Developer",
	"DevOps Engineer",
	"QA Engineer",
	"Mobile Developer",
	"Software Engineer",
	"Machine Learning",
	"Python Developer",
	"Java Developer",
}

// Options bound one run. delays are in seconds.
type Options struct {
	StartPage int `json:"start_page"`
	EndPage   int `json:"end_page"`
	// CrawlDate overrides the date stamped on every record, YYYY-MM-DD.
	CrawlDate    string       `json:"crawl_date"`
	PageDelay    chrono.Range `json:"page_delay"`
	KeywordDelay chrono.Range `json:"keyword_delay"`
}

func DefaultOptions() Options {
	return Options{
		StartPage:    1,
		EndPage:      3,
		PageDelay:    chrono.Range{Min: 1, Max: 2},
		KeywordDelay: chrono.Range{Min: 2, Max: 3},
	}
}

// Scraper is what the crawler drives, topcv.Client implements it.
type Scraper interface {
	Listing(ctx context.Context, slug string, page int) ([]topcv.JobStub, fetch.Outcome, error)
	Detail(ctx context.Context, jobUrl string) (topcv.JobDetail, fetch.Outcome, error)
	Company(ctx context.Context, companyUrl *string) (topcv.CompanyProfile, fetch.Outcome, error)
}

type KeywordResult struct {
	Keyword string
	Slug    string
	Records []JobRecord
	// Err is set when the keyword ended early, Records still holds what
	// was collected before.
	Err error
}

type Result struct {
	CrawlDate  string
	StartedAt  time.Time
	FinishedAt time.Time
	// Records are unique by job path across all keywords.
	Records  []JobRecord
	Keywords []KeywordResult
	Stats    Stats
}

// Err joins the errors of every failed keyword.
func (r Result) Err() error {
	var errs []error
	for _, kw := range r.Keywords {
		if kw.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", kw.Keyword, kw.Err))
		}
	}
	return errors.Join(errs...)
}

// Crawler walks search pages keyword by keyword, one request at a time.
type Crawler struct {
	scraper Scraper
	clock   chrono.API
	rnd     chrono.RandomAPI
	tel     telemetry.API
	opts    Options
}

func New(scraper Scraper, clock chrono.API, rnd chrono.RandomAPI, tel telemetry.API, opts Options) Crawler {
	assert.NotNil(scraper)
	assert.NotNil(clock)
	assert.NotNil(rnd)
	assert.NotNil(tel)
	assert.Positive("start page", opts.StartPage)

	return Crawler{
		scraper: scraper,
		clock:   clock,
		rnd:     rnd,
		tel:     telemetry.NewScopedAPI("crawler", tel),
		opts:    opts,
	}
}

// Run crawls every keyword in order. a keyword failing does not stop the
// others, its error is kept on its KeywordResult. the returned error is
// only ever a context error, in which case the result holds everything
// collected so far.
func (c Crawler) Run(ctx context.Context, keywords []string) (Result, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	result := Result{
		CrawlDate: c.opts.CrawlDate,
		StartedAt: c.clock.Now(),
	}
	if result.CrawlDate == "" {
		result.CrawlDate = chrono.Date(result.StartedAt)
	}

	finish := func(err error) (Result, error) {
		result.FinishedAt = c.clock.Now()
		result.Stats.Records = int64(len(result.Records))
		result.Stats.report(c.tel)
		if err != nil {
			span.SetStatus(codes.Error, err.Error())
		}
		return result, err
	}

	seen := map[string]struct{}{}
	for i, keyword := range keywords {
		if err := ctx.Err(); err != nil {
			return finish(err)
		}

		kr := c.crawlKeyword(ctx, keyword, result.CrawlDate, &result.Stats)
		result.Keywords = append(result.Keywords, kr)

		for _, record := range kr.Records {
			path := record.JobPath()
			if _, ok := seen[path]; ok {
				inc(ctx, &result.Stats.CrossKeywordDuplicates, stat_cross_keyword_duplicates, 1)
				continue
			}
			seen[path] = struct{}{}
			result.Records = append(result.Records, record)
		}

		if kr.Err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(kr.Err, ctxErr) {
				return finish(ctxErr)
			}
			inc(ctx, &result.Stats.KeywordFailures, stat_keyword_failures, 1)
			c.tel.ReportBroken(report_crawler_keyword, keyword, kr.Err)
		}

		if len(kr.Records) > 0 && i < len(keywords)-1 {
			err := c.clock.Sleep(ctx, c.opts.KeywordDelay.Uniform(c.rnd))
			if err != nil {
				return finish(err)
			}
		}
	}

	return finish(nil)
}

func (c Crawler) crawlKeyword(ctx context.Context, keyword, crawlDate string, stats *Stats) KeywordResult {
	ctx, span := tracer.Start(ctx, "crawlKeyword")
	defer span.End()

	kr := KeywordResult{
		Keyword: keyword,
		Slug:    textutil.Slugify(keyword),
	}
	span.SetAttributes(attribute.String("keyword", keyword), attribute.String("slug", kr.Slug))
	if kr.Slug == "" {
		kr.Err = ErrEmptySlug
		return kr
	}

	seen := map[string]struct{}{}
	for page := c.opts.StartPage; page <= c.opts.EndPage; page++ {
		stubs, outcome, err := c.scraper.Listing(ctx, kr.Slug, page)
		if err != nil {
			kr.Err = err
			return kr
		}
		if outcome == fetch.OutcomeBlocked {
			kr.Err = fmt.Errorf("page %d: %w", page, ErrListingBlocked)
			return kr
		}
		inc(ctx, &stats.Pages, stat_pages, 1)

		if len(stubs) == 0 {
			c.tel.ReportDebug(report_crawler_page, "no results, stopping", kr.Slug, page)
			break
		}
		inc(ctx, &stats.Stubs, stat_stubs, int64(len(stubs)))

		for _, stub := range stubs {
			if err := ctx.Err(); err != nil {
				kr.Err = err
				return kr
			}

			path := topcv.JobPath(stub.JobUrl)
			if _, ok := seen[path]; ok {
				inc(ctx, &stats.DuplicatesSkipped, stat_duplicates_skipped, 1)
				continue
			}
			seen[path] = struct{}{}

			record, err := c.crawlJob(ctx, stub, stats)
			if err != nil {
				kr.Err = err
				return kr
			}
			record.CrawlDate = crawlDate
			record.SearchKeyword = keyword
			record.SearchSlug = kr.Slug
			kr.Records = append(kr.Records, record)
		}

		if page < c.opts.EndPage {
			err := c.clock.Sleep(ctx, c.opts.PageDelay.Uniform(c.rnd))
			if err != nil {
				kr.Err = err
				return kr
			}
		}
	}

	return kr
}

// crawlJob fetches the detail and company pages of one stub. failures of
// either stage only leave their fields absent, the returned error is
// always a context error.
func (c Crawler) crawlJob(ctx context.Context, stub topcv.JobStub, stats *Stats) (JobRecord, error) {
	detail, outcome, err := c.scraper.Detail(ctx, stub.JobUrl)
	detailBlocked := false
	switch {
	case err != nil:
		if ctx.Err() != nil {
			return JobRecord{}, ctx.Err()
		}
		inc(ctx, &stats.DetailFailures, stat_detail_failures, 1)
		c.tel.ReportWarning(report_crawler_job, "detail", stub.JobUrl, err)
		detail = topcv.JobDetail{}
	case outcome == fetch.OutcomeBlocked:
		inc(ctx, &stats.DetailBlocked, stat_detail_blocked, 1)
		detailBlocked = true
	}

	var company topcv.CompanyProfile
	companyUrl := resolveCompanyUrl(stub, detail)
	switch {
	case detailBlocked || companyUrl == nil:
		inc(ctx, &stats.CompanySkipped, stat_company_skipped, 1)
	default:
		company, outcome, err = c.scraper.Company(ctx, companyUrl)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return JobRecord{}, ctx.Err()
			}
			inc(ctx, &stats.CompanyFailures, stat_company_failures, 1)
			c.tel.ReportWarning(report_crawler_job, "company", *companyUrl, err)
			company = topcv.CompanyProfile{}
		case outcome == fetch.OutcomeBlocked:
			inc(ctx, &stats.CompanyBlocked, stat_company_blocked, 1)
		}
	}

	return newRecord(stub, detail, company), nil
}
