package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents network-related errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeSink represents dataset persistence errors
	ErrorTypeSink ErrorType = "sink"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError represents a pipeline-specific error carrying the page or
// listing URL it originated from
type ScrapeError struct {
	Type    ErrorType
	URL     string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.URL, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.URL, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// New creates a new ScrapeError
func New(errType ErrorType, url, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		URL:     url,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(url, message string, err error) *ScrapeError {
	return New(ErrorTypeNetwork, url, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(url, message string, err error) *ScrapeError {
	return New(ErrorTypeParsing, url, message, err)
}

// NewSink creates a new sink error
func NewSink(path, message string, err error) *ScrapeError {
	return New(ErrorTypeSink, path, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(message string, err error) *ScrapeError {
	return New(ErrorTypePublisher, "", message, err)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}
