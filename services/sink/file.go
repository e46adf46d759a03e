package sink

import (
	"encoding/json"
	"os"
	"path/filepath"

	"arkdle/operatorworker/internal/scraper"
	"arkdle/operatorworker/logger"
	"arkdle/operatorworker/pkg/errors"
)

// JSONFileSink writes the dataset as a pretty-printed UTF-8 JSON array,
// overwriting any prior content. The game UI imports the file as a static
// read-only dataset.
type JSONFileSink struct {
	Path string
}

// NewJSONFileSink creates a sink writing to the given path
func NewJSONFileSink(path string) *JSONFileSink {
	return &JSONFileSink{Path: path}
}

// Write persists the records. The file is written to a temp name first and
// renamed into place so a crash mid-write never leaves a truncated dataset.
func (s *JSONFileSink) Write(records []scraper.OperatorRecord) error {
	log := logger.ForSink()

	// An empty run still produces a valid empty array, not "null"
	if records == nil {
		records = []scraper.OperatorRecord{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return errors.NewSink(s.Path, "failed to marshal dataset", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewSink(s.Path, "failed to create output directory", err)
	}

	tmp, err := os.CreateTemp(dir, "operators-*.json")
	if err != nil {
		return errors.NewSink(s.Path, "failed to create temp file", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.NewSink(s.Path, "failed to write dataset", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.NewSink(s.Path, "failed to close temp file", err)
	}

	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		os.Remove(tmp.Name())
		return errors.NewSink(s.Path, "failed to replace dataset", err)
	}

	log.Info().
		Str("path", s.Path).
		Int("records", len(records)).
		Msg("Dataset written")

	return nil
}
