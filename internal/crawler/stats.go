package crawler

import (
	"context"

	"topcv-crawler/internal/components/telemetry"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("topcv-crawler/crawler")
var eventCounter, _ = meter.Int64Counter("crawler.events")

// Stats are the aggregate counts of one run.
type Stats struct {
	Pages                  int64
	Stubs                  int64
	DuplicatesSkipped      int64
	CrossKeywordDuplicates int64
	Records                int64
	DetailFailures         int64
	DetailBlocked          int64
	CompanyFailures        int64
	CompanyBlocked         int64
	CompanySkipped         int64
	KeywordFailures        int64
}

const (
	stat_pages                    = "pages"
	stat_stubs                    = "stubs"
	stat_duplicates_skipped       = "duplicates-skipped"
	stat_cross_keyword_duplicates = "cross-keyword-duplicates"
	stat_records                  = "records"
	stat_detail_failures          = "detail-failures"
	stat_detail_blocked           = "detail-blocked"
	stat_company_failures         = "company-failures"
	stat_company_blocked          = "company-blocked"
	stat_company_skipped          = "company-skipped"
	stat_keyword_failures         = "keyword-failures"
)

// Named returns the stats as ordered name/value pairs.
func (s Stats) Named() [][2]any {
	return [][2]any{
		{stat_pages, s.Pages},
		{stat_stubs, s.Stubs},
		{stat_duplicates_skipped, s.DuplicatesSkipped},
		{stat_cross_keyword_duplicates, s.CrossKeywordDuplicates},
		{stat_records, s.Records},
		{stat_detail_failures, s.DetailFailures},
		{stat_detail_blocked, s.DetailBlocked},
		{stat_company_failures, s.CompanyFailures},
		{stat_company_blocked, s.CompanyBlocked},
		{stat_company_skipped, s.CompanySkipped},
		{stat_keyword_failures, s.KeywordFailures},
	}
}

// inc bumps a counter both locally and on the otel meter.
func inc(ctx context.Context, field *int64, name string, n int64) {
	*field += n
	eventCounter.Add(ctx, n, metric.WithAttributes(attribute.String("event", name)))
}

func (s Stats) report(tel telemetry.API) {
	for _, pair := range s.Named() {
		tel.ReportCount(report_crawler_stats+"-"+pair[0].(string), pair[1].(int64))
	}
}
