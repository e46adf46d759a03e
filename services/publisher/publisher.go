package publisher

// Publisher represents a side channel for announcing extracted records to
// downstream consumers. The persisted dataset file is the primary output;
// publishing is optional and best effort.
type Publisher interface {
	// Publish publishes one record, keyed by operator name
	Publish(name string, record []byte) error

	// Close closes the publisher connection
	Close() error
}
