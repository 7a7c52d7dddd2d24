package output

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"topcv-crawler/internal/crawler"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func ptr(s string) *string {
	return &s
}

func testResult() crawler.Result {
	return crawler.Result{
		CrawlDate: "2024-05-01",
		Records: []crawler.JobRecord{
			{
				CrawlDate:     "2024-05-01",
				SearchKeyword: "Data Analyst",
				SearchSlug:    "data-analyst",
				Title:         "Phân tích dữ liệu",
				JobUrl:        "https://www.topcv.vn/viec-lam/a/1.html",
				SalaryList:    ptr("10 - 15 triệu"),
			},
			{
				CrawlDate:     "2024-05-01",
				SearchKeyword: "Go",
				SearchSlug:    "go",
				Title:         "Go, Backend",
				JobUrl:        "https://www.topcv.vn/viec-lam/b/2.html",
			},
		},
		Keywords: []crawler.KeywordResult{
			{Keyword: "Data Analyst", Slug: "data-analyst"},
			{Keyword: "Go", Slug: "go"},
			{Keyword: "Rust", Slug: "rust"},
		},
	}
}

func readCSV(t *testing.T, data []byte) [][]string {
	require.True(t, bytes.HasPrefix(data, utf8BOM))
	rows, err := csv.NewReader(bytes.NewReader(data[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, testResult().Records)
	require.NoError(t, err)

	rows := readCSV(t, buf.Bytes())
	require.Len(t, rows, 3)
	if diff := cmp.Diff(crawler.Columns, rows[0]); diff != "" {
		t.Fatal(diff)
	}
	require.Equal(t, "Phân tích dữ liệu", rows[1][3])
	require.Equal(t, "10 - 15 triệu", rows[1][10])
	require.Equal(t, "", rows[1][4])
	require.Equal(t, "Go, Backend", rows[2][3])
}

func TestWrite(t *testing.T) {
	opts := DefaultOptions()
	opts.Dir = filepath.Join(t.TempDir(), "out")

	written, err := Write(opts, testResult())
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(opts.Dir, "topcv_2024-05-01_combined.csv"),
		filepath.Join(opts.Dir, "topcv_2024-05-01_combined.xlsx"),
		filepath.Join(opts.Dir, "topcv_data-analyst_2024-05-01.csv"),
		filepath.Join(opts.Dir, "topcv_go_2024-05-01.csv"),
	}, written)

	data, err := os.ReadFile(written[2])
	require.NoError(t, err)
	rows := readCSV(t, data)
	require.Len(t, rows, 2)
	require.Equal(t, "data-analyst", rows[1][2])

	f, err := excelize.OpenFile(written[1])
	require.NoError(t, err)
	defer f.Close()
	sheetRows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, sheetRows, 3)
	require.Equal(t, "crawl_date", sheetRows[0][0])
	require.Equal(t, "Go, Backend", sheetRows[2][3])
}

func TestWriteSharedSlugOnce(t *testing.T) {
	result := testResult()
	result.Keywords = append(result.Keywords, crawler.KeywordResult{Keyword: "data analyst", Slug: "data-analyst"})
	opts := Options{Dir: t.TempDir(), Prefix: "topcv", SkipXlsx: true}

	written, err := Write(opts, result)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(opts.Dir, "topcv_2024-05-01_combined.csv"),
		filepath.Join(opts.Dir, "topcv_data-analyst_2024-05-01.csv"),
		filepath.Join(opts.Dir, "topcv_go_2024-05-01.csv"),
	}, written)
}

func TestWriteCombinedOnly(t *testing.T) {
	opts := Options{Dir: t.TempDir(), Prefix: "jobs", SkipKeywordFiles: true, SkipXlsx: true}
	written, err := Write(opts, testResult())
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(opts.Dir, "jobs_2024-05-01_combined.csv")}, written)
}
