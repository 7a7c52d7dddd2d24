package htmlutil

import (
	"bytes"
	"net/url"
	"strings"

	"topcv-crawler/lib/textutil"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	getTextRecursive(node, &buffer)
	return buffer.String()
}

func getTextRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	switch node.Type {
	case html.TextNode:
		buffer.WriteString(node.Data)
		return
	case html.ElementNode:
		switch node.Data {
		case "script", "style", "noscript":
			return
		case "br", "p", "div", "li", "tr", "td", "h1", "h2", "h3", "h4":
			// block boundaries separate words
			buffer.WriteByte(' ')
			defer buffer.WriteByte(' ')
		}
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		getTextRecursive(child, buffer)
	}
}

// Text returns the whitespace normalized text of the first node in the
// selection, or nil when the selection is empty or only holds whitespace.
func Text(sel *goquery.Selection) *string {
	if sel == nil || sel.Length() == 0 {
		return nil
	}
	return textutil.Optional(textutil.NormalizeSpace(GetText(sel.Nodes[0])))
}

// Attr returns a trimmed attribute of the first node in the selection, or nil.
func Attr(sel *goquery.Selection, name string) *string {
	if sel == nil || sel.Length() == 0 {
		return nil
	}
	value, ok := sel.First().Attr(name)
	if !ok {
		return nil
	}
	return textutil.Optional(strings.TrimSpace(value))
}

// ResolveURL resolves href against base, relative hrefs like
// "/viec-lam/abc" become absolute. href is returned as is when either
// side fails to parse.
func ResolveURL(base, href string) string {
	href = strings.TrimSpace(href)
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	baseUrl, err := url.Parse(base)
	if err != nil {
		return href
	}
	return baseUrl.ResolveReference(ref).String()
}

// Parse parses an html document, it never returns nil on success.
func Parse(body []byte) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(bytes.NewReader(body))
}

// Empty returns an empty document, used for pages that could not be fetched.
func Empty() *goquery.Document {
	doc, _ := Parse(nil)
	return doc
}
