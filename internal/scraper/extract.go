package scraper

import (
	"strings"

	"arkdle/operatorworker/helpers"

	"github.com/PuerkitoBio/goquery"
)

// labelStrategy tries to locate the value paired with a field label in one
// particular markup convention. It returns "" when the convention does not
// match; that is not an error.
type labelStrategy func(doc *goquery.Document, label string) string

// labelStrategies is the extraction cascade, most structured convention
// first. Strategies run in order and the first non-empty result wins; later
// strategies are not consulted.
var labelStrategies = []labelStrategy{
	extractInfoboxPair,
	extractSiblingPair,
	extractTableRow,
	extractAdjacentText,
}

// ExtractField returns the best available text value for a field label,
// or "" when no strategy matches.
func ExtractField(doc *goquery.Document, label string) string {
	for _, strategy := range labelStrategies {
		if value := strategy(doc, label); value != "" {
			return value
		}
	}
	return ""
}

// labelEquals compares a scraped label container's text against the wanted
// label, tolerant of case and surrounding whitespace
func labelEquals(text, label string) bool {
	return strings.EqualFold(helpers.Tidy(text), label)
}

// labelContains is the looser match used for table header cells
func labelContains(text, label string) bool {
	return strings.Contains(strings.ToLower(helpers.Tidy(text)), strings.ToLower(label))
}

// extractInfoboxPair reads portable-infobox style key/value pairs where the
// value container is nested next to the label container
func extractInfoboxPair(doc *goquery.Document, label string) string {
	var value string
	doc.Find(".pi-data-label").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !labelEquals(s.Text(), label) {
			return true
		}
		value = helpers.Tidy(s.Siblings().Filter(".pi-data-value").First().Text())
		return false
	})
	return value
}

// extractSiblingPair covers variant markup where label and value are plain
// siblings (dt/dd lists and infobox-label/infobox-data rows)
func extractSiblingPair(doc *goquery.Document, label string) string {
	var value string
	doc.Find("dt, .infobox-label").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !labelEquals(s.Text(), label) {
			return true
		}
		value = helpers.Tidy(s.Next().Text())
		return false
	})
	return value
}

// extractTableRow reads a classic two-column table: a header cell containing
// the label, the adjacent data cell in the same row carrying the value
func extractTableRow(doc *goquery.Document, label string) string {
	var value string
	doc.Find("table tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		header := row.Find("th").First()
		if header.Length() == 0 || !labelContains(header.Text(), label) {
			return true
		}
		value = helpers.Tidy(row.Find("td").First().Text())
		return value == ""
	})
	return value
}

// extractAdjacentText is the last resort: any childless element whose text
// equals the label exactly, value read from the next sibling
func extractAdjacentText(doc *goquery.Document, label string) string {
	var value string
	doc.Find("*").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Children().Length() > 0 || !labelEquals(s.Text(), label) {
			return true
		}
		value = helpers.Tidy(s.Next().Text())
		return value == ""
	})
	return value
}
