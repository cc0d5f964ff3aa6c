package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/repackdb/repackdb"
)

// repackFeaturesMarker starts the feature list section on detail pages.
const repackFeaturesMarker = "Repack Features"

// torrentMarker distinguishes magnet-bearing mirror headings from plain
// file-host mirror headings.
const torrentMarker = "Torrent"

// ExtractDetail extracts a single repack from a detail page.
func (e *Extractor) ExtractDetail(html string, pageURL string) (*repackdb.Repack, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, repackdb.Errorf(repackdb.EINVALID, "failed to parse HTML: %v", err)
	}

	article := doc.Find("article").First()
	if article.Length() == 0 {
		return nil, repackdb.Errorf(repackdb.ENOTFOUND, "no entry found at %s", pageURL)
	}

	r := extractArticle(article)
	if r == nil {
		return nil, repackdb.Errorf(repackdb.ENOTFOUND, "no entry found at %s", pageURL)
	}

	// The page being crawled is the canonical location.
	r.URL = pageURL

	content := article.Find("div.entry-content").First()
	if content.Length() == 0 {
		return r, nil
	}

	r.Features = extractFeatures(content)

	magnets, mirrors := extractMirrorSections(content)
	if len(magnets) > 0 {
		r.Magnets = magnets
	}
	if len(mirrors) > 0 {
		r.Mirrors = mirrors
	}

	return r, nil
}

// extractFeatures collects the ordered feature list following the
// "Repack Features" marker. The marker sits either in a heading or in a
// bolded run inside a paragraph, so the following list is looked up from
// the marker element and, failing that, from its parent.
func extractFeatures(content *goquery.Selection) []string {
	var features []string
	content.Find("h1, h2, h3, h4, strong").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !strings.Contains(sel.Text(), repackFeaturesMarker) {
			return true
		}

		list := sel.NextAllFiltered("ul").First()
		if list.Length() == 0 {
			list = sel.Parent().NextAllFiltered("ul").First()
		}
		list.Find("li").Each(func(_ int, li *goquery.Selection) {
			if text := strings.TrimSpace(li.Text()); text != "" {
				features = append(features, text)
			}
		})
		return false
	})
	return features
}

// extractMirrorSections walks the "Download Mirrors" headings. A heading
// that names Torrent yields magnet locators from the immediately following
// list; other mirror headings are harvested as plain text without locator
// parsing. Locator collection is conditional on heading semantics, not just
// on the link scheme.
func extractMirrorSections(content *goquery.Selection) ([]repackdb.Magnet, []string) {
	var magnets []repackdb.Magnet
	var mirrors []string

	content.Find("h2, h3").Each(func(_ int, heading *goquery.Selection) {
		text := heading.Text()
		if !strings.Contains(text, downloadMirrorsMarker) {
			return
		}

		list := heading.NextAllFiltered("ul").First()
		if list.Length() == 0 {
			return
		}

		if strings.Contains(text, torrentMarker) {
			list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
				anchor := li.Find(`a[href^="magnet:"]`).First()
				if anchor.Length() == 0 {
					return
				}
				href, ok := anchor.Attr("href")
				if !ok || !strings.HasPrefix(href, repackdb.MagnetScheme) {
					return
				}
				magnets = append(magnets, repackdb.Magnet{
					Source: sourceLabel(li.Text()),
					URI:    href,
				})
			})
			return
		}

		list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
			if text := strings.TrimSpace(li.Text()); text != "" {
				mirrors = append(mirrors, text)
			}
		})
	})

	return magnets, mirrors
}
