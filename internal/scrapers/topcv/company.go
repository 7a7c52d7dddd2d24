package topcv

import (
	"regexp"
	"slices"
	"strings"

	"topcv-crawler/lib/extract"
	"topcv-crawler/lib/htmlutil"
	"topcv-crawler/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

var brandingSuffixRegex = regexp.MustCompile(`(?i)\s*\|\s*TopCV.*$`)

func stripBranding(name string) string {
	return brandingSuffixRegex.ReplaceAllString(name, "")
}

var companyNameStrategies = []extract.Strategy{
	extract.Transform(extract.Selector("h1.company-name"), stripBranding),
	extract.Transform(extract.Selector("h1.title"), stripBranding),
	extract.Transform(extract.Selector("div.company-header h1"), stripBranding),
	extract.Transform(extract.Selector("div.company-info h1"), stripBranding),
	extract.Transform(extract.Attribute("meta[property='og:title']", "content"), stripBranding),
	extract.Transform(extract.Attribute("meta[property='og:site_name']", "content"), stripBranding),
	extract.Transform(extract.Selector("title"), stripBranding),
}

var overviewContainers = []string{
	"div.company-overview",
	"div.company-detail",
	"div.company-profile",
	"section#company",
	"section.company-info",
	"div.box-intro-company",
	"div.company-info-container",
}

const overviewRows = "li, .row, .item, .info-item, .company-info-item, .dl, .d-flex"

var companyDescriptionStrategies = []extract.Strategy{
	extract.Selector("div.company-description"),
	extract.Selector("div#company-description"),
	extract.Selector("div.box-intro-company"),
	extract.Selector("div.company-introduction"),
	extract.Selector("div.description"),
	extract.Selector("section.company-description"),
	extract.Selector("div#readmore-company"),
	extract.Selector("div#readmore-content"),
}

var colonRowRegex = regexp.MustCompile(`^([^:：]+)[:：]\s*(.+)$`)

const valueTrimChars = " :-–—"

// splitRow separates an overview row into its label and value, the label
// is either an emphasized child or the text before the first colon.
func splitRow(row *goquery.Selection) (string, string) {
	rowText := htmlutil.Text(row)
	if rowText == nil {
		return "", ""
	}

	emphasis := row.Find("strong, b").First()
	if emphasis.Length() > 0 {
		label := htmlutil.Text(emphasis)
		if label == nil {
			return "", ""
		}
		labelRegex := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(*label))
		value := labelRegex.ReplaceAllString(*rowText, "")
		return *label, strings.Trim(value, valueTrimChars)
	}

	groups := colonRowRegex.FindStringSubmatch(*rowText)
	if groups == nil {
		return "", ""
	}
	return strings.TrimSpace(groups[1]), strings.TrimSpace(groups[2])
}

func overviewContainer(doc *goquery.Document) *goquery.Selection {
	for _, css := range overviewContainers {
		container := doc.Find(css).First()
		if container.Length() > 0 {
			return container
		}
	}
	return doc.Selection
}

// ParseCompany extracts an employer profile page. the second return value
// holds the labels of overview rows that matched no field, in page order.
func ParseCompany(doc *goquery.Document, labels Labels) (CompanyProfile, []string) {
	profile := CompanyProfile{
		Name:        extract.First(doc.Selection, companyNameStrategies...),
		Description: extract.First(doc.Selection, companyDescriptionStrategies...),
	}
	targets := map[string]**string{
		"website":  &profile.Website,
		"size":     &profile.Size,
		"industry": &profile.Industry,
		"address":  &profile.Address,
	}
	fields := labels.companyFields()

	var unmatched []string
	overviewContainer(doc).Find(overviewRows).Each(func(_ int, row *goquery.Selection) {
		label, value := splitRow(row)
		if label == "" || value == "" {
			return
		}

		for _, field := range fields {
			if !textutil.MatchName(label, field.keywords) {
				continue
			}
			target := targets[field.name]
			if *target == nil {
				*target = &value
			}
			return
		}
		if !slices.Contains(unmatched, label) {
			unmatched = append(unmatched, label)
		}
	})

	return profile, unmatched
}
