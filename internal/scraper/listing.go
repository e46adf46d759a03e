package scraper

import (
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"arkdle/operatorworker/helpers"
	"arkdle/operatorworker/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

const (
	// namespaceSeparator marks wiki namespace links (File:, Category:, Help:)
	namespaceSeparator = ":"
	// pluralListingPath is the roster overview page, excluded from discovery
	pluralListingPath = "/wiki/Operators"
	// maxLinkTextLen filters navigation chrome with long visible text
	maxLinkTextLen = 40
)

// latinLetterRe requires at least one Latin or Latin-extended letter in the
// visible link text, filtering icons and bare numeric markers
var latinLetterRe = regexp.MustCompile(`[A-Za-zÀ-ÖØ-öø-ÿ]`)

// DiscoverLinks fetches a rarity-tier listing page and returns the set of
// absolute candidate operator-page URLs found on it.
func (s *Scraper) DiscoverLinks(listingURL string) (map[string]struct{}, error) {
	body, err := s.Fetch(listingURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, errors.NewParsing(listingURL, "failed to parse HTML", err)
	}

	content := doc.Find("#mw-content-text")
	if content.Length() == 0 {
		content = doc.Find("body")
	}

	links := make(map[string]struct{})

	// Primary heuristic: operator-path links with no namespace segment
	content.Find(`a[href]`).Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		path := hrefPath(href)
		if path == "" || !strings.HasPrefix(path, s.OperatorPathPrefix) {
			return
		}
		if strings.Contains(path, namespaceSeparator) {
			return
		}
		links[s.absolute(href)] = struct{}{}
	})

	// Broader fallback: any in-content wiki link whose visible text looks
	// like an entity name
	content.Find(`a[href]`).Each(func(_ int, a *goquery.Selection) {
		href := a.AttrOr("href", "")
		path := hrefPath(href)
		if path == "" || !strings.Contains(path, "/wiki/") {
			return
		}
		if strings.Contains(path, namespaceSeparator) || path == pluralListingPath {
			return
		}
		text := helpers.Tidy(a.Text())
		if text == "" || utf8.RuneCountInString(text) >= maxLinkTextLen || !latinLetterRe.MatchString(text) {
			return
		}
		links[s.absolute(href)] = struct{}{}
	})

	return links, nil
}

// hrefPath extracts the path component of a scraped href, "" when unusable
func hrefPath(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	// Keep the original percent-encoding so resolved URLs round-trip
	return u.EscapedPath()
}
