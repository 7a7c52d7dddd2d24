package notify

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"topcv-crawler/internal/crawler"

	"github.com/stretchr/testify/require"
)

func testResult() crawler.Result {
	started := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	records := []crawler.JobRecord{
		{Title: "Go Developer", SearchSlug: "go"},
	}
	return crawler.Result{
		CrawlDate:  "2024-05-01",
		StartedAt:  started,
		FinishedAt: started.Add(90 * time.Second),
		Records:    records,
		Keywords: []crawler.KeywordResult{
			{Keyword: "Go", Slug: "go", Records: records},
			{Keyword: "Rust", Slug: "rust", Err: crawler.ErrListingBlocked},
		},
		Stats: crawler.Stats{Pages: 1, Records: 1, KeywordFailures: 1},
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteSummary(&buf, testResult())

	out := buf.String()
	require.Contains(t, out, "Go")
	require.Contains(t, out, "rust")
	require.Contains(t, out, crawler.ErrListingBlocked.Error())
	require.Contains(t, out, "keyword-failures")
	require.Contains(t, out, "crawl date 2024-05-01, took 1m30s")
}

func TestReport(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "topcv_2024-05-01_combined.csv")
	require.NoError(t, os.WriteFile(file, []byte("crawl_date\n"), 0644))

	opts := Options{
		Smtp:   SmtpConfig{Server: "smtp.example.com", Port: 587, EmailAddress: "crawler@example.com"},
		To:     []string{"team@example.com"},
		Attach: true,
	}
	require.True(t, opts.Enabled())

	mail, err := Report(opts, "run-1", testResult(), []string{file})
	require.NoError(t, err)
	require.Equal(t, "[topcv-crawler] 2024-05-01: 1 jobs (partial)", mail.Subject)
	require.Equal(t, []string{"team@example.com"}, mail.To)
	require.Contains(t, string(mail.Text), "Run run-1 finished.")
	require.Contains(t, string(mail.Text), "topcv_2024-05-01_combined.csv")
	require.Len(t, mail.Attachments, 1)
	require.Equal(t, "topcv_2024-05-01_combined.csv", mail.Attachments[0].Filename)

	_, err = Report(opts, "run-1", testResult(), []string{filepath.Join(dir, "missing.csv")})
	require.Error(t, err)
}

func TestReportOk(t *testing.T) {
	result := testResult()
	result.Keywords = result.Keywords[:1]
	mail, err := Report(Options{}, "run-2", result, nil)
	require.NoError(t, err)
	require.Equal(t, "[topcv-crawler] 2024-05-01: 1 jobs (ok)", mail.Subject)
	require.Empty(t, mail.Attachments)
	require.False(t, Options{}.Enabled())
	require.False(t, errors.Is(result.Err(), crawler.ErrListingBlocked))
}
