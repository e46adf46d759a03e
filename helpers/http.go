package helpers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"arkdle/operatorworker/pkg/errors"

	"golang.org/x/net/html/charset"
)

var (
	// HTTP client with timeout
	client = &http.Client{
		Timeout: 15 * time.Second,
	}
)

// FetchPage sends an HTTP GET request carrying the identifying User-Agent,
// converts the response body to UTF-8 (if needed), and returns it as an
// io.Reader.
func FetchPage(url, userAgent string) (io.Reader, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, errors.NewNetwork(url, "failed to create request", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.NewNetwork(url, "failed to fetch URL", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.NewNetwork(url, fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewNetwork(url, "failed to read response body", err)
	}

	// Determine the encoding from Content-Type header and body content
	encoding, name, _ := charset.DetermineEncoding(bodyBytes, resp.Header.Get("Content-Type"))

	// If already UTF-8, return as is
	if name == "utf-8" || name == "UTF-8" {
		return bytes.NewReader(bodyBytes), nil
	}

	// Convert to UTF-8 if necessary
	utf8Reader := encoding.NewDecoder().Reader(bytes.NewReader(bodyBytes))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, utf8Reader); err != nil {
		return nil, errors.NewNetwork(url, "failed to read converted UTF-8 body", err)
	}

	return &buf, nil
}
