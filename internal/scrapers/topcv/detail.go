package topcv

import (
	"regexp"

	"topcv-crawler/lib/extract"
	"topcv-crawler/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

const (
	field_title             = "title"
	field_salary            = "salary"
	field_location          = "location"
	field_experience        = "experience"
	field_deadline          = "deadline"
	field_tags              = "tags"
	field_description       = "description"
	field_requirements      = "requirements"
	field_benefits          = "benefits"
	field_working_addresses = "working_addresses"
	field_working_times     = "working_times"
	field_company_url       = "company_url"
)

const listSeparator = "; "

var deadlineDateRegex = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)

var infoSection = extract.Section{
	Items:        ".job-detail__info--section",
	Heading:      ".job-detail__info--section-content-title",
	Content:      ".job-detail__info--section-content-value",
	ItemFallback: true,
}

var descriptionSection = extract.Section{
	Items:   ".job-description .job-description__item",
	Heading: "h3",
	Content: ".job-description__item--content",
}

var workingSection = extract.Section{
	Items:   ".job-description__item",
	Heading: "h3",
	Content: ".job-description__item--content",
}

// DetailSchema declares how a job page maps to a JobDetail.
func DetailSchema(labels Labels, baseUrl string) extract.Schema {
	resolve := func(href string) string {
		return htmlutil.ResolveURL(baseUrl, href)
	}
	return extract.Schema{
		{Name: field_title, Strategies: []extract.Strategy{
			extract.Selector(".job-detail__info--title"),
			extract.Selector("h1"),
		}},
		{Name: field_salary, Strategies: []extract.Strategy{
			infoSection.Value(extract.Equals(labels.Salary)),
		}},
		{Name: field_location, Strategies: []extract.Strategy{
			infoSection.Value(extract.Equals(labels.Location)),
		}},
		{Name: field_experience, Strategies: []extract.Strategy{
			infoSection.Value(extract.Equals(labels.Experience)),
		}},
		{Name: field_deadline, Strategies: []extract.Strategy{
			extract.Pattern(
				extract.Containing(
					".job-detail__info--deadline, .job-detail__information-detail--actions-label",
					labels.Deadline,
				),
				deadlineDateRegex,
			),
		}},
		{Name: field_tags, Strategies: []extract.Strategy{
			extract.Joined(".job-tags a.item", listSeparator),
		}},
		{Name: field_description, Strategies: []extract.Strategy{
			descriptionSection.Value(extract.Equals(labels.Description)),
		}},
		{Name: field_requirements, Strategies: []extract.Strategy{
			descriptionSection.Value(extract.Equals(labels.Requirements)),
		}},
		{Name: field_benefits, Strategies: []extract.Strategy{
			descriptionSection.Value(extract.Equals(labels.Benefits)),
		}},
		{Name: field_working_addresses, Strategies: []extract.Strategy{
			workingSection.List(extract.Contains(labels.WorkingAddresses), "div, li", listSeparator),
		}},
		{Name: field_working_times, Strategies: []extract.Strategy{
			workingSection.List(extract.Contains(labels.WorkingTimes), "div, li", listSeparator),
		}},
		{Name: field_company_url, Strategies: []extract.Strategy{
			extract.Transform(extract.Attribute("a.company[href]", "href"), resolve),
			extract.Transform(extract.Attribute("a[href*='/cong-ty/']", "href"), resolve),
		}},
	}
}

// ParseDetail extracts a job page. missing fields are nil, never an error.
func ParseDetail(doc *goquery.Document, schema extract.Schema) JobDetail {
	fields := schema.Extract(doc.Selection)
	return JobDetail{
		Title:            fields[field_title],
		Salary:           fields[field_salary],
		Location:         fields[field_location],
		Experience:       fields[field_experience],
		Deadline:         fields[field_deadline],
		Tags:             fields[field_tags],
		Description:      fields[field_description],
		Requirements:     fields[field_requirements],
		Benefits:         fields[field_benefits],
		WorkingAddresses: fields[field_working_addresses],
		WorkingTimes:     fields[field_working_times],
		CompanyUrl:       fields[field_company_url],
	}
}
