// Package extract declares how a response document turns into fields.
//
// each field is an ordered list of strategies, the first strategy that
// produces a value wins. a strategy that finds nothing returns nil, parse
// misses are never errors.
package extract

import (
	"regexp"
	"strings"

	"topcv-crawler/lib/htmlutil"
	"topcv-crawler/lib/textutil"

	"github.com/PuerkitoBio/goquery"
)

type Strategy func(scope *goquery.Selection) *string

// First runs the strategies in order against scope and returns the first
// non-nil result.
func First(scope *goquery.Selection, strategies ...Strategy) *string {
	for _, strategy := range strategies {
		if value := strategy(scope); value != nil {
			return value
		}
	}
	return nil
}

// Selector takes the normalized text of the first element matching css.
func Selector(css string) Strategy {
	return func(scope *goquery.Selection) *string {
		return htmlutil.Text(scope.Find(css).First())
	}
}

// Attribute takes an attribute of the first element matching css.
func Attribute(css, attr string) Strategy {
	return func(scope *goquery.Selection) *string {
		return htmlutil.Attr(scope.Find(css).First(), attr)
	}
}

// Containing takes the text of the first element matching css whose text
// contains substr.
func Containing(css, substr string) Strategy {
	return func(scope *goquery.Selection) *string {
		var out *string
		scope.Find(css).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := htmlutil.Text(s)
			if text != nil && strings.Contains(*text, substr) {
				out = text
				return false
			}
			return true
		})
		return out
	}
}

// Joined takes the text of every element matching css, skipping empty ones,
// joined by sep.
func Joined(css, sep string) Strategy {
	return func(scope *goquery.Selection) *string {
		return join(scope.Find(css), sep)
	}
}

func join(sel *goquery.Selection, sep string) *string {
	var parts []string
	sel.Each(func(_ int, s *goquery.Selection) {
		if text := htmlutil.Text(s); text != nil {
			parts = append(parts, *text)
		}
	})
	return textutil.Optional(strings.Join(parts, sep))
}

// Transform post-processes the result of a strategy, a transform that
// returns "" turns the result into a miss.
func Transform(strategy Strategy, fn func(string) string) Strategy {
	return func(scope *goquery.Selection) *string {
		value := strategy(scope)
		if value == nil {
			return nil
		}
		return textutil.Optional(strings.TrimSpace(fn(*value)))
	}
}

// Pattern narrows the result of a strategy to the first match of re, the
// raw result is kept when nothing matches.
func Pattern(strategy Strategy, re *regexp.Regexp) Strategy {
	return Transform(strategy, func(value string) string {
		if match := re.FindString(value); match != "" {
			return match
		}
		return value
	})
}

// Matcher decides whether a section heading is the one being looked for.
type Matcher func(heading string) bool

// Equals matches a heading equal to label, ignoring case.
func Equals(label string) Matcher {
	label = textutil.NormalizeName(label)
	return func(heading string) bool {
		return textutil.NormalizeName(heading) == label
	}
}

// Contains matches a heading containing label, ignoring case.
func Contains(label string) Matcher {
	label = textutil.NormalizeName(label)
	return func(heading string) bool {
		return strings.Contains(textutil.NormalizeName(heading), label)
	}
}

// Section describes repeated blocks that pair a heading with content, like
// "<div class=item><h3>Heading</h3><div class=content>...</div></div>".
type Section struct {
	Items   string
	Heading string
	Content string
	// when set and Content is missing from a matching item, the text of
	// the whole item is used.
	ItemFallback bool
}

func (s Section) matching(scope *goquery.Selection, match Matcher) *goquery.Selection {
	return scope.Find(s.Items).FilterFunction(func(_ int, item *goquery.Selection) bool {
		heading := htmlutil.Text(item.Find(s.Heading).First())
		return heading != nil && match(*heading)
	})
}

// Value takes the content of the first item whose heading matches.
func (s Section) Value(match Matcher) Strategy {
	return func(scope *goquery.Selection) *string {
		var out *string
		s.matching(scope, match).EachWithBreak(func(_ int, item *goquery.Selection) bool {
			content := item.Find(s.Content).First()
			if content.Length() > 0 {
				out = htmlutil.Text(content)
				return false
			}
			if s.ItemFallback {
				out = htmlutil.Text(item)
				return false
			}
			return true
		})
		return out
	}
}

// List takes the text of every entry (entries is relative to Content)
// across all items whose heading matches, joined by sep.
func (s Section) List(match Matcher, entries string, sep string) Strategy {
	return func(scope *goquery.Selection) *string {
		return join(s.matching(scope, match).Find(s.Content).Find(entries), sep)
	}
}

type Field struct {
	Name       string
	Strategies []Strategy
}

// Schema is an ordered list of fields.
type Schema []Field

// Extract runs every field of the schema, the result has an entry for every
// field name, nil when absent.
func (s Schema) Extract(scope *goquery.Selection) map[string]*string {
	out := make(map[string]*string, len(s))
	for _, field := range s {
		out[field.Name] = First(scope, field.Strategies...)
	}
	return out
}
