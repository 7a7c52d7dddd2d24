package topcv

import (
	"topcv-crawler/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
)

// ParseListing reads the job stubs of a search results page in document
// order. items without a title or link are skipped.
func ParseListing(doc *goquery.Document, baseUrl string) []JobStub {
	var stubs []JobStub
	doc.Find("div.job-item-search-result").Each(func(_ int, item *goquery.Selection) {
		anchor := item.Find("h3.title a[href]").First()
		title := htmlutil.Text(anchor)
		href := htmlutil.Attr(anchor, "href")
		if title == nil || href == nil {
			return
		}

		stub := JobStub{
			Title:      *title,
			JobUrl:     htmlutil.ResolveURL(baseUrl, *href),
			Company:    htmlutil.Text(item.Find("a.company .company-name").First()),
			Salary:     htmlutil.Text(item.Find("label.title-salary").First()),
			Location:   htmlutil.Text(item.Find("label.address .city-text").First()),
			Experience: htmlutil.Text(item.Find("label.exp span").First()),
		}
		if companyHref := htmlutil.Attr(item.Find("a.company[href]"), "href"); companyHref != nil {
			resolved := htmlutil.ResolveURL(baseUrl, *companyHref)
			stub.CompanyUrl = &resolved
		}
		stubs = append(stubs, stub)
	})
	return stubs
}
