package topcv

import (
	"context"
	"fmt"

	"topcv-crawler/internal/components/assert"
	"topcv-crawler/internal/components/telemetry"
	"topcv-crawler/internal/fetch"
	"topcv-crawler/lib/extract"
)

const (
	report_client_listing = "client.listing"
	report_client_detail  = "client.detail"
	report_client_company = "client.company"
)

// Fetcher is the part of a fetch session the client needs.
//
// note: fault injection point
type Fetcher interface {
	Fetch(ctx context.Context, url string) (fetch.Page, error)
	Pause(ctx context.Context) error
}

// Client ties a fetch session to the three page extractors.
type Client struct {
	fetcher Fetcher
	baseUrl string
	labels  Labels
	detail  extract.Schema
	tel     telemetry.API
}

func NewClient(fetcher Fetcher, baseUrl string, labels Labels, tel telemetry.API) Client {
	assert.NotNil(fetcher)
	assert.NotNil(tel)
	assert.NotEmptyStr(baseUrl)

	return Client{
		fetcher: fetcher,
		baseUrl: baseUrl,
		labels:  labels,
		detail:  DetailSchema(labels, baseUrl),
		tel:     telemetry.NewScopedAPI("topcv", tel),
	}
}

func (c Client) BaseUrl() string {
	return c.baseUrl
}

// Listing fetches and parses one search results page.
func (c Client) Listing(ctx context.Context, slug string, page int) ([]JobStub, fetch.Outcome, error) {
	link := SearchUrl(c.baseUrl, slug, page)
	res, err := c.fetcher.Fetch(ctx, link)
	if err != nil {
		return nil, 0, fmt.Errorf("listing %s page %d: %w", slug, page, err)
	}
	if res.Outcome == fetch.OutcomeBlocked {
		c.tel.ReportWarning(report_client_listing, "blocked", link)
		return nil, res.Outcome, nil
	}
	stubs := ParseListing(res.Doc, c.baseUrl)
	c.tel.ReportDebug(report_client_listing, link, len(stubs))
	return stubs, res.Outcome, nil
}

// Detail fetches and parses a job page, a blocked page yields an empty
// detail.
func (c Client) Detail(ctx context.Context, jobUrl string) (JobDetail, fetch.Outcome, error) {
	res, err := c.fetcher.Fetch(ctx, jobUrl)
	if err != nil {
		return JobDetail{}, 0, err
	}
	err = c.fetcher.Pause(ctx)
	if err != nil {
		return JobDetail{}, 0, err
	}
	if res.Outcome == fetch.OutcomeBlocked {
		c.tel.ReportWarning(report_client_detail, "blocked", jobUrl)
		return JobDetail{}, res.Outcome, nil
	}
	return ParseDetail(res.Doc, c.detail), res.Outcome, nil
}

// Company fetches and parses an employer profile. a nil url yields an empty
// profile without any request.
func (c Client) Company(ctx context.Context, companyUrl *string) (CompanyProfile, fetch.Outcome, error) {
	if companyUrl == nil {
		return CompanyProfile{}, fetch.OutcomeOK, nil
	}
	res, err := c.fetcher.Fetch(ctx, *companyUrl)
	if err != nil {
		return CompanyProfile{}, 0, err
	}
	err = c.fetcher.Pause(ctx)
	if err != nil {
		return CompanyProfile{}, 0, err
	}
	if res.Outcome == fetch.OutcomeBlocked {
		c.tel.ReportWarning(report_client_company, "blocked", *companyUrl)
		return CompanyProfile{}, res.Outcome, nil
	}
	profile, unmatched := ParseCompany(res.Doc, c.labels)
	if len(unmatched) > 0 {
		c.tel.ReportDebug(report_client_company, *companyUrl, "unmatched labels", unmatched)
	}
	return profile, res.Outcome, nil
}
