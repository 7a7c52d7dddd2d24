package topcv

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SearchUrl builds the url of one search results page.
func SearchUrl(baseUrl, slug string, page int) string {
	query := url.Values{}
	query.Set("type_keyword", "1")
	query.Set("page", strconv.Itoa(page))
	query.Set("sba", "1")
	return fmt.Sprintf(
		"%s/tim-viec-lam-%s?%s",
		strings.TrimSuffix(baseUrl, "/"),
		slug,
		query.Encode(),
	)
}

// JobPath is the identity of a job posting, the path of its url. the raw
// url is used when it cannot be parsed.
func JobPath(jobUrl string) string {
	parsed, err := url.Parse(jobUrl)
	if err != nil || parsed.Path == "" {
		return jobUrl
	}
	return parsed.Path
}
