package commands

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"topcv-crawler/internal/components/chrono"
	"topcv-crawler/internal/components/telemetry"
	"topcv-crawler/internal/fetch"
	"topcv-crawler/internal/scrapers/topcv"
	"topcv-crawler/lib/serviceutil"
	"topcv-crawler/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/antzucaro/matchr"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

const (
	kind_listing = "listing"
	kind_detail  = "detail"
	kind_company = "company"
)

var inspectKind string

func init() {
	inspectCmd.Flags().StringVar(&inspectKind, "kind", "", "Page kind: listing, detail or company. (default: guessed from the url)")
	rootCmd.AddCommand(inspectCmd)
}

// guessKind tells the page kind apart by the url path.
func guessKind(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return kind_detail
	}
	switch {
	case strings.HasPrefix(parsed.Path, "/tim-viec-lam-"):
		return kind_listing
	case strings.Contains(parsed.Path, "/cong-ty/"), strings.Contains(parsed.Path, "/company/"):
		return kind_company
	default:
		return kind_detail
	}
}

type suggestion struct {
	field string
	score float64
}

const suggestionThreshold = 0.8

// suggestField finds the overview field whose keywords are closest to a
// label no keyword matched.
func suggestField(label string, labels topcv.Labels) (suggestion, bool) {
	fields := []struct {
		name     string
		keywords []string
	}{
		{"website", labels.CompanyWebsite},
		{"size", labels.CompanySize},
		{"industry", labels.CompanyIndustry},
		{"address", labels.CompanyAddress},
	}

	normalized := textutil.NormalizeName(label)
	best := suggestion{}
	for _, f := range fields {
		for _, keyword := range f.keywords {
			score := matchr.JaroWinkler(normalized, textutil.NormalizeName(keyword), true)
			if score > best.score {
				best = suggestion{field: f.name, score: score}
			}
		}
	}
	return best, best.score >= suggestionThreshold
}

func value(v *string) string {
	if v == nil {
		return "-"
	}
	return *v
}

func inspectRows(kind string, doc *goquery.Document, config Config) ([]table.Row, []string) {
	switch kind {
	case kind_listing:
		var rows []table.Row
		for i, stub := range topcv.ParseListing(doc, config.Fetch.BaseUrl) {
			rows = append(rows,
				table.Row{fmt.Sprintf("%d.title", i), stub.Title},
				table.Row{fmt.Sprintf("%d.job_url", i), stub.JobUrl},
				table.Row{fmt.Sprintf("%d.company", i), value(stub.Company)},
				table.Row{fmt.Sprintf("%d.company_url", i), value(stub.CompanyUrl)},
				table.Row{fmt.Sprintf("%d.salary", i), value(stub.Salary)},
				table.Row{fmt.Sprintf("%d.location", i), value(stub.Location)},
				table.Row{fmt.Sprintf("%d.experience", i), value(stub.Experience)},
			)
		}
		return rows, nil
	case kind_company:
		profile, unmatched := topcv.ParseCompany(doc, config.Labels)
		return []table.Row{
			{"name", value(profile.Name)},
			{"website", value(profile.Website)},
			{"size", value(profile.Size)},
			{"industry", value(profile.Industry)},
			{"address", value(profile.Address)},
			{"description", value(profile.Description)},
		}, unmatched
	default:
		detail := topcv.ParseDetail(doc, topcv.DetailSchema(config.Labels, config.Fetch.BaseUrl))
		return []table.Row{
			{"title", value(detail.Title)},
			{"salary", value(detail.Salary)},
			{"location", value(detail.Location)},
			{"experience", value(detail.Experience)},
			{"deadline", value(detail.Deadline)},
			{"tags", value(detail.Tags)},
			{"description", value(detail.Description)},
			{"requirements", value(detail.Requirements)},
			{"benefits", value(detail.Benefits)},
			{"working_addresses", value(detail.WorkingAddresses)},
			{"working_times", value(detail.WorkingTimes)},
			{"company_url", value(detail.CompanyUrl)},
		}, nil
	}
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <url> [--kind listing|detail|company]",
	Short: "Fetches a single page and prints what the extractors find on it.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		config, err := LoadConfig(configPath)
		if err != nil {
			serviceutil.Fatal("failed to load config", err)
		}
		link := args[0]
		kind := inspectKind
		if kind == "" {
			kind = guessKind(link)
		}

		clock, err := chrono.NewStandardImpl(chrono.SiteTimezone)
		if err != nil {
			serviceutil.Fatal("failed to load timezone", err)
		}
		rnd := chrono.NewStandardRandom(time.Now().UnixNano())

		fetcher, err := fetch.Open(cmd.Context(), config.Fetch, clock, rnd, telemetry.SlogAPI{})
		if err != nil {
			serviceutil.Fatal("failed to open fetch session", err)
		}
		defer fetcher.Close()

		page, err := fetcher.Fetch(cmd.Context(), link)
		if err != nil {
			serviceutil.Fatal("failed to fetch page", err)
		}
		fmt.Printf("%s (%s): status %d, %s\n", link, kind, page.Status, page.Outcome)

		rows, unmatched := inspectRows(kind, page.Doc, config)
		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Field", "Value"})
		t.AppendRows(rows)
		t.SetColumnConfigs([]table.ColumnConfig{{Number: 2, WidthMax: 100}})
		t.SetStyle(table.StyleRounded)
		t.Render()

		for _, label := range unmatched {
			s, ok := suggestField(label, config.Labels)
			if ok {
				fmt.Printf("unmatched label %q, closest field %s (%.2f)\n", label, s.field, s.score)
				continue
			}
			fmt.Printf("unmatched label %q\n", label)
		}
	},
}
