package sink

import (
	"arkdle/operatorworker/internal/scraper"
)

// Sink persists the final ordered record collection. It is written exactly
// once per run, after dedup and sort; records are never mutated afterwards.
type Sink interface {
	Write(records []scraper.OperatorRecord) error
}
