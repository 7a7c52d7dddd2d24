package extract

import (
	"regexp"
	"strings"
	"testing"

	"topcv-crawler/lib/htmlutil"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const fixture = `
<html><head>
	<title>Acme | TopCV</title>
	<meta property="og:title" content="Acme Corp">
</head><body>
	<h1>Fallback Title</h1>
	<div class="info">
		<div class="section"><div class="label">Mức lương</div><div class="value">10 - 20 triệu</div></div>
		<div class="section"><div class="label">Kinh nghiệm</div>2 năm</div>
	</div>
	<div class="deadline">Ngày đăng: 01/01/2024</div>
	<div class="deadline">Hạn nộp hồ sơ: 31/12/2024</div>
	<div class="tags"><a class="item">Go</a><a class="item"> </a><a class="item">SQL</a></div>
	<div class="desc">
		<div class="d-item"><h3>Mô tả công việc</h3><div class="content">Build <b>things</b></div></div>
		<div class="d-item"><h3>Địa điểm làm việc</h3><div class="content"><div>- Hà Nội</div><div>- Đà Nẵng</div></div></div>
		<div class="d-item"><h3>Địa điểm làm việc khác</h3><div class="content"><li>HCM</li></div></div>
		<div class="d-item"><h3>Thời gian làm việc</h3><div class="content"></div></div>
	</div>
</body></html>`

func load(t *testing.T) *goquery.Selection {
	doc, err := htmlutil.Parse([]byte(fixture))
	require.NoError(t, err)
	return doc.Selection
}

func TestFirst(t *testing.T) {
	scope := load(t)
	require.Equal(t, "Fallback Title", *First(scope, Selector(".missing"), Selector("h1")))
	require.Nil(t, First(scope, Selector(".missing"), Selector(".also-missing")))
	require.Nil(t, First(scope))
}

func TestAttributeAndTransform(t *testing.T) {
	scope := load(t)
	require.Equal(t, "Acme Corp", *Attribute(`meta[property="og:title"]`, "content")(scope))

	strip := regexp.MustCompile(`(?i)\s*\|\s*TopCV.*$`)
	title := Transform(Selector("title"), func(s string) string {
		return strip.ReplaceAllString(s, "")
	})
	require.Equal(t, "Acme", *title(scope))

	empty := Transform(Selector("title"), func(string) string { return "  " })
	require.Nil(t, empty(scope))
}

func TestContainingAndPattern(t *testing.T) {
	scope := load(t)
	deadline := Containing(".deadline", "Hạn nộp")
	require.Equal(t, "Hạn nộp hồ sơ: 31/12/2024", *deadline(scope))

	date := regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`)
	require.Equal(t, "31/12/2024", *Pattern(deadline, date)(scope))
	require.Equal(t, "Fallback Title", *Pattern(Selector("h1"), date)(scope))
	require.Nil(t, Pattern(Containing(".deadline", "missing"), date)(scope))
}

func TestJoined(t *testing.T) {
	scope := load(t)
	require.Equal(t, "Go; SQL", *Joined(".tags a.item", "; ")(scope))
	require.Nil(t, Joined(".missing a", "; ")(scope))
}

func TestSection(t *testing.T) {
	scope := load(t)
	info := Section{Items: ".section", Heading: ".label", Content: ".value", ItemFallback: true}
	require.Equal(t, "10 - 20 triệu", *info.Value(Equals("mức lương"))(scope))
	require.Equal(t, "Kinh nghiệm 2 năm", *info.Value(Equals("Kinh nghiệm"))(scope))
	require.Nil(t, info.Value(Equals("Địa điểm"))(scope))

	desc := Section{Items: ".desc .d-item", Heading: "h3", Content: ".content"}
	require.Equal(t, "Build things", *desc.Value(Equals("Mô tả công việc"))(scope))
	require.Nil(t, desc.Value(Equals("Quyền lợi"))(scope))

	addresses := desc.List(Contains("Địa điểm làm việc"), "div, li", "; ")
	require.Equal(t, "- Hà Nội; - Đà Nẵng; HCM", *addresses(scope))
	require.Nil(t, desc.List(Contains("Thời gian làm việc"), "div, li", "; ")(scope))
}

func TestSchema(t *testing.T) {
	scope := load(t)
	schema := Schema{
		{Name: "title", Strategies: []Strategy{Selector(".missing"), Selector("h1")}},
		{Name: "nothing", Strategies: []Strategy{Selector(".missing")}},
	}
	out := schema.Extract(scope)
	require.Len(t, out, 2)
	require.Equal(t, "Fallback Title", *out["title"])
	value, ok := out["nothing"]
	require.True(t, ok)
	require.Nil(t, value)
}

func TestMatchers(t *testing.T) {
	require.True(t, Equals("Mức lương")(" MỨC   LƯƠNG "))
	require.False(t, Equals("Mức lương")("Mức lương tối thiểu"))
	require.True(t, Contains("Địa điểm làm việc")("Địa điểm làm việc (2)"))
	require.False(t, Contains("x")(strings.Repeat("y", 3)))
}
