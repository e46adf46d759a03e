package helpers

import (
	"net/url"
	"strings"
)

// Tidy collapses internal whitespace runs (including newlines) to single
// spaces and trims both ends.
func Tidy(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// AbsoluteURL rewrites a scraped href or image source to an absolute https
// URL against the given base. Protocol-relative sources ("//host/...") gain
// an https scheme, root-relative sources ("/path") gain the base's scheme
// and host. Already-absolute URLs and unparseable input pass through.
func AbsoluteURL(raw, base string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}
	b, err := url.Parse(base)
	if err != nil {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return b.ResolveReference(ref).String()
}
