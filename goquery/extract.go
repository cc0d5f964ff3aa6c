// Package goquery extracts repack records from the catalog site's HTML.
// The site is a WordPress blog with a small fixed set of layout variants:
// each entry is an <article> with an entry-title heading, an entry-date
// timestamp, and an entry-content block holding the info section, magnet
// links, and description paragraphs.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/repackdb/repackdb"
)

// maxDescriptionBlocks bounds the description to the first few paragraphs.
const maxDescriptionBlocks = 3

// downloadMirrorsMarker starts the block that separates the description
// from the mirror lists.
const downloadMirrorsMarker = "Download Mirrors"

// Compile-time interface verification.
var _ repackdb.Extractor = (*Extractor)(nil)

// Extractor implements repackdb.Extractor for the catalog site's markup.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractList extracts every repack entry from a listing page.
func (e *Extractor) ExtractList(html string) ([]*repackdb.Repack, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, repackdb.Errorf(repackdb.EINVALID, "failed to parse HTML: %v", err)
	}

	var repacks []*repackdb.Repack
	doc.Find("article").Each(func(_ int, article *goquery.Selection) {
		if r := extractArticle(article); r != nil {
			repacks = append(repacks, r)
		}
	})

	return repacks, nil
}

// extractArticle builds a repack record from one article element.
// Returns nil when the article has no entry title at all; every other
// missing section is a normal partial result.
func extractArticle(article *goquery.Selection) *repackdb.Repack {
	title := article.Find("h1.entry-title").First()
	if title.Length() == 0 {
		title = article.Find("h2.entry-title").First()
	}
	if title.Length() == 0 {
		return nil
	}

	r := &repackdb.Repack{}

	if anchor := title.Find("a").First(); anchor.Length() > 0 {
		r.Title = strings.TrimSpace(anchor.Text())
		r.URL, _ = anchor.Attr("href")
	} else {
		// Placeholder entries ("Upcoming Repacks") have no link; the
		// record stays URL-less and is skipped at the store boundary.
		r.Title = strings.TrimSpace(title.Text())
	}

	if date := article.Find("time.entry-date").First(); date.Length() > 0 {
		if dt, ok := date.Attr("datetime"); ok && dt != "" {
			r.Date = &dt
		} else {
			r.Date = repackdb.String(date.Text())
		}
	}

	content := article.Find("div.entry-content").First()
	if content.Length() == 0 {
		return r
	}

	parseInfoBlock(content, r)
	r.Magnets = collectMagnets(content)
	r.Description = extractDescription(content)

	return r
}

// parseInfoBlock locates the info block (the first h3 and its following
// siblings up to the next h3), flattens it into one working string, and
// runs the labeled-field extractions against it. An absent info block
// leaves every field nil.
func parseInfoBlock(content *goquery.Selection, r *repackdb.Repack) {
	heading := content.Find("h3").First()
	if heading.Length() == 0 {
		return
	}

	var parts []string
	heading.NextUntil("h3").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	text := strings.Join(parts, " ")

	r.GenresTags = repackdb.String(captureInfoField(text, "genresTags"))
	r.Company = repackdb.String(captureInfoField(text, "company"))
	r.Languages = repackdb.String(captureInfoField(text, "languages"))
	r.OriginalSize = repackdb.String(captureInfoField(text, "originalSize"))
	r.RepackSize = repackdb.String(captureInfoField(text, "repackSize"))
}

// collectMagnets scans the content for magnet anchors in document order.
// The source label comes from the enclosing list item's text, cut before
// the first '|' or '[' separator; anchors outside a list item get an empty
// label. Dedup by (item, source) is the store's responsibility.
func collectMagnets(content *goquery.Selection) []repackdb.Magnet {
	var magnets []repackdb.Magnet
	content.Find(`a[href^="magnet:"]`).Each(func(_ int, anchor *goquery.Selection) {
		href, ok := anchor.Attr("href")
		if !ok || !strings.HasPrefix(href, repackdb.MagnetScheme) {
			return
		}

		var label string
		if li := anchor.Closest("li"); li.Length() > 0 {
			label = sourceLabel(li.Text())
		}

		magnets = append(magnets, repackdb.Magnet{Source: label, URI: href})
	})
	return magnets
}

// sourceLabel derives a magnet source name from list-item text.
func sourceLabel(text string) string {
	if i := strings.IndexAny(text, "|["); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

// extractDescription takes the first few top-level paragraph blocks of the
// content, skipping the download mirrors section, joined by blank lines.
func extractDescription(content *goquery.Selection) *string {
	var parts []string
	content.ChildrenFiltered("p, div").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if text == "" || strings.HasPrefix(text, downloadMirrorsMarker) {
			return true
		}
		parts = append(parts, text)
		return len(parts) < maxDescriptionBlocks
	})

	if len(parts) == 0 {
		return nil
	}
	return repackdb.String(strings.Join(parts, "\n\n"))
}
