package output

import (
	"fmt"
	"os"
	"path/filepath"

	"topcv-crawler/internal/crawler"
)

type Options struct {
	Dir    string `json:"dir"`
	Prefix string `json:"prefix"`
	// by default one csv per keyword slug and an xlsx copy of the
	// combined file are written too.
	SkipKeywordFiles bool `json:"skip_keyword_files"`
	SkipXlsx         bool `json:"skip_xlsx"`
}

func DefaultOptions() Options {
	return Options{
		Dir:    "output",
		Prefix: "topcv",
	}
}

func (o Options) CombinedName(date, ext string) string {
	return fmt.Sprintf("%s_%s_combined.%s", o.Prefix, date, ext)
}

func (o Options) KeywordName(slug, date string) string {
	return fmt.Sprintf("%s_%s_%s.csv", o.Prefix, slug, date)
}

// Write saves the records of a run and returns the paths it wrote, the
// combined files first.
func Write(opts Options, result crawler.Result) ([]string, error) {
	err := os.MkdirAll(opts.Dir, 0755)
	if err != nil {
		return nil, err
	}

	var written []string
	combined := filepath.Join(opts.Dir, opts.CombinedName(result.CrawlDate, "csv"))
	err = writeCSVFile(combined, result.Records)
	if err != nil {
		return written, err
	}
	written = append(written, combined)

	if !opts.SkipXlsx {
		path := filepath.Join(opts.Dir, opts.CombinedName(result.CrawlDate, "xlsx"))
		err = writeXlsxFile(path, result.Records)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if opts.SkipKeywordFiles {
		return written, nil
	}
	// keywords differing only in case or spacing share a slug and a file
	seen := make(map[string]bool, len(result.Keywords))
	for _, kw := range result.Keywords {
		if seen[kw.Slug] {
			continue
		}
		seen[kw.Slug] = true
		records := bySlug(result.Records, kw.Slug)
		if len(records) == 0 {
			continue
		}
		path := filepath.Join(opts.Dir, opts.KeywordName(kw.Slug, result.CrawlDate))
		err = writeCSVFile(path, records)
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func bySlug(records []crawler.JobRecord, slug string) []crawler.JobRecord {
	var out []crawler.JobRecord
	for _, r := range records {
		if r.SearchSlug == slug {
			out = append(out, r)
		}
	}
	return out
}

func cells(record crawler.JobRecord) []string {
	row := record.Row()
	out := make([]string, len(row))
	for i, v := range row {
		if v != nil {
			out[i] = *v
		}
	}
	return out
}
