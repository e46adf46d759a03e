package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"arkdle/operatorworker/helpers"
	"arkdle/operatorworker/pkg/errors"

	"github.com/PuerkitoBio/goquery"
)

// Scraper extracts operator records and page links from one wiki
type Scraper struct {
	BaseURL            string
	OperatorPathPrefix string
	Fetch              FetchFunc
}

// NewScraper creates a scraper for the given wiki base URL
func NewScraper(baseURL, operatorPathPrefix string, fetch FetchFunc) *Scraper {
	return &Scraper{
		BaseURL:            baseURL,
		OperatorPathPrefix: operatorPathPrefix,
		Fetch:              fetch,
	}
}

// Label synonym lists, tried in priority order; the first non-empty
// extraction wins.
var (
	rarityLabels    = []string{"Rarity", "Rarity/Stars", "Star"}
	genderLabels    = []string{"Gender"}
	classLabels     = []string{"Class", "Role"}
	archetypeLabels = []string{"Archetype", "Branch"}
	factionLabels   = []string{"Faction", "Affiliation"}
	raceLabels      = []string{"Race", "Species"}
	regionLabels    = []string{"Region", "Place of Birth"}
	releaseLabels   = []string{"Released", "Release", "Release Date", "Recruitment"}
)

var (
	isoDateRe  = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	bareYearRe = regexp.MustCompile(`\b\d{4}\b`)
	integerRe  = regexp.MustCompile(`\d+`)
)

// ParsePage fetches one operator page and extracts a normalized record.
// Fetch and parse failures are returned as errors for the caller to log and
// skip; a single bad page must never abort the batch, so even a panic inside
// extraction is recovered and surfaced as an error.
func (s *Scraper) ParsePage(pageURL string) (record *OperatorRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			record = nil
			err = errors.NewParsing(pageURL, fmt.Sprintf("panic while parsing: %v", r), nil)
		}
	}()

	body, err := s.Fetch(pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, errors.NewParsing(pageURL, "failed to parse HTML", err)
	}

	return s.parseDocument(doc, pageURL), nil
}

// parseDocument builds the record from an already-parsed page
func (s *Scraper) parseDocument(doc *goquery.Document, pageURL string) *OperatorRecord {
	record := &OperatorRecord{Source: pageURL}

	// Primary heading, falling back to the infobox title
	record.Name = helpers.Tidy(doc.Find("h1#firstHeading").First().Text())
	if record.Name == "" {
		record.Name = helpers.Tidy(doc.Find(".pi-title, .infobox-title").First().Text())
	}

	record.Image.Portrait = s.absolute(doc.Find(".portable-infobox img, .infobox img").First().AttrOr("src", ""))
	record.Image.Full = s.absolute(doc.Find(`meta[property="og:image"]`).First().AttrOr("content", ""))

	record.Rarity = parseRarity(s.extractFirst(doc, rarityLabels))
	record.Gender = s.extractFirst(doc, genderLabels)
	record.Class = s.extractFirst(doc, classLabels)
	record.Archetype = s.extractFirst(doc, archetypeLabels)
	record.Faction = s.extractFirst(doc, factionLabels)
	record.Race = s.extractFirst(doc, raceLabels)
	record.Region = s.extractFirst(doc, regionLabels)
	record.Release = parseRelease(s.extractFirst(doc, releaseLabels))

	return record
}

// extractFirst runs the extraction cascade for each label synonym in order
func (s *Scraper) extractFirst(doc *goquery.Document, labels []string) string {
	for _, label := range labels {
		if value := ExtractField(doc, label); value != "" {
			return value
		}
	}
	return ""
}

// absolute rewrites a scraped URL to an absolute https URL; an empty input
// stays empty
func (s *Scraper) absolute(raw string) string {
	return helpers.AbsoluteURL(raw, s.BaseURL)
}

// parseRarity turns a rarity cell's text into a star count: glyph count when
// star glyphs are present, else the first embedded integer, else unknown
func parseRarity(raw string) Rarity {
	stars := strings.Count(raw, "★") + strings.Count(raw, "⭐")
	if stars > 0 {
		return KnownRarity(stars)
	}
	if digits := integerRe.FindString(raw); digits != "" {
		if n, err := strconv.Atoi(digits); err == nil {
			return KnownRarity(n)
		}
	}
	return Rarity{}
}

// parseRelease extracts the release date from the raw release text. An ISO
// yyyy-mm-dd substring is preferred and stripped from the event name; a bare
// 4-digit year is kept as the date without stripping, since removing a year
// from the middle of a sentence rarely isolates a clean event name. When
// stripping empties the event name, the full raw text is restored.
func parseRelease(raw string) ReleaseInfo {
	release := ReleaseInfo{EventName: raw}
	if raw == "" {
		return release
	}

	if iso := isoDateRe.FindString(raw); iso != "" {
		release.DateGlobal = iso
		release.EventName = helpers.Tidy(strings.Replace(raw, iso, "", 1))
		if release.EventName == "" {
			release.EventName = raw
		}
		return release
	}

	if year := bareYearRe.FindString(raw); year != "" {
		release.DateGlobal = year
	}
	return release
}
