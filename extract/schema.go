// Package extract turns rendered HTML into records through declarative
// field schemas, so that changing a selector never means changing code.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Field maps one CSS selector onto one field of T.
type Field[T any] struct {
	Name     string
	Selector string
	// Attr reads an attribute instead of the text content when set.
	Attr    string
	Default string
	// Post runs on the trimmed value before the default check.
	Post func(string) string
	Set  func(*T, string)
}

// Value reads the field from sel. The first match wins; a missing match or an
// empty value yields Default.
func (f Field[T]) Value(sel *goquery.Selection) string {
	match := sel.Find(f.Selector).First()
	if match.Length() == 0 {
		return f.Default
	}

	var v string
	if f.Attr != "" {
		v, _ = match.Attr(f.Attr)
	} else {
		v = match.Text()
	}
	v = strings.TrimSpace(v)
	if f.Post != nil {
		v = f.Post(v)
	}
	if v == "" {
		return f.Default
	}
	return v
}

// Schema is an ordered set of fields evaluated uniformly against a selection.
type Schema[T any] []Field[T]

// Apply builds one T from sel.
func (s Schema[T]) Apply(sel *goquery.Selection) T {
	var out T
	for _, f := range s {
		f.Set(&out, f.Value(sel))
	}
	return out
}

// ApplyAll builds one T per element matched by itemSelector, in document
// order, stopping after limit items. A limit of zero or less means no cap.
func (s Schema[T]) ApplyAll(doc *goquery.Document, itemSelector string, limit int) []T {
	out := []T{}
	doc.Find(itemSelector).EachWithBreak(func(_ int, item *goquery.Selection) bool {
		if limit > 0 && len(out) >= limit {
			return false
		}
		out = append(out, s.Apply(item))
		return true
	})
	return out
}

// Parse reads html into a document whose base URL is pageURL, so relative
// links can be resolved with AbsoluteURL.
func Parse(html, pageURL string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	if pageURL != "" {
		if u, err := url.Parse(pageURL); err == nil {
			doc.Url = u
		}
	}
	return doc, nil
}

// AbsoluteURL returns a Post func resolving an href against base. Values that
// cannot be parsed are returned unchanged.
func AbsoluteURL(base *url.URL) func(string) string {
	return func(href string) string {
		if href == "" || base == nil {
			return href
		}
		ref, err := url.Parse(href)
		if err != nil {
			return href
		}
		return base.ResolveReference(ref).String()
	}
}
