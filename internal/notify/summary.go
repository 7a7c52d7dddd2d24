package notify

import (
	"fmt"
	"io"
	"time"

	"topcv-crawler/internal/crawler"

	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteSummary renders the per keyword outcome and the run stats as two
// tables.
func WriteSummary(w io.Writer, result crawler.Result) {
	keywords := table.NewWriter()
	keywords.SetOutputMirror(w)
	keywords.AppendHeader(table.Row{"Keyword", "Slug", "Records", "Error"})
	for _, kw := range result.Keywords {
		errText := ""
		if kw.Err != nil {
			errText = kw.Err.Error()
		}
		keywords.AppendRow(table.Row{kw.Keyword, kw.Slug, len(kw.Records), errText})
	}
	keywords.AppendFooter(table.Row{"", "unique", len(result.Records), ""})
	keywords.SetStyle(table.StyleRounded)
	keywords.Render()

	stats := table.NewWriter()
	stats.SetOutputMirror(w)
	stats.AppendHeader(table.Row{"Stat", "Count"})
	for _, pair := range result.Stats.Named() {
		stats.AppendRow(table.Row{pair[0], pair[1]})
	}
	stats.SetStyle(table.StyleRounded)
	stats.Render()

	fmt.Fprintf(
		w, "crawl date %s, took %s\n",
		result.CrawlDate,
		result.FinishedAt.Sub(result.StartedAt).Round(time.Second),
	)
}
