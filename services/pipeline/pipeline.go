package pipeline

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"arkdle/operatorworker/internal/scraper"
	"arkdle/operatorworker/logger"
	"arkdle/operatorworker/services/publisher"
	"arkdle/operatorworker/services/sink"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// PageScraper is the part of the scraper the pipeline drives
type PageScraper interface {
	DiscoverLinks(listingURL string) (map[string]struct{}, error)
	ParsePage(pageURL string) (*scraper.OperatorRecord, error)
}

// DelayFunc suspends the pipeline between sequential fetches. Tests inject
// a zero-delay implementation to keep runs wall-clock free.
type DelayFunc func(ctx context.Context, d time.Duration)

// SleepDelay is the production delay: a context-aware sleep
func SleepDelay(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Pipeline sequences the whole extraction run: listing discovery, per-page
// parsing with politeness delays, dedup, sort, persistence.
type Pipeline struct {
	scraper      PageScraper
	sink         sink.Sink
	publisher    publisher.Publisher // nil when publishing is disabled
	listingURLs  []string
	listingDelay time.Duration
	pageDelay    time.Duration
	delay        DelayFunc
	log          *logger.Logger
}

// New creates a pipeline. publisher may be nil.
func New(
	s PageScraper,
	snk sink.Sink,
	pub publisher.Publisher,
	listingURLs []string,
	listingDelay time.Duration,
	pageDelay time.Duration,
	delay DelayFunc,
) *Pipeline {
	if delay == nil {
		delay = SleepDelay
	}
	return &Pipeline{
		scraper:      s,
		sink:         snk,
		publisher:    pub,
		listingURLs:  listingURLs,
		listingDelay: listingDelay,
		pageDelay:    pageDelay,
		delay:        delay,
		log:          logger.ForPipeline(),
	}
}

// Run executes one full extraction batch. Per-listing and per-page failures
// are logged and skipped; only unexpected failures (persistence, cancelled
// context) are returned.
func (p *Pipeline) Run(ctx context.Context) error {
	urls, err := p.discover(ctx)
	if err != nil {
		return err
	}

	records, err := p.parse(ctx, urls)
	if err != nil {
		return err
	}

	final := p.reduce(records)

	if err := p.sink.Write(final); err != nil {
		return err
	}

	p.publish(final)

	p.log.Info().
		Int("pages", len(urls)).
		Int("records", len(final)).
		Msg("Pipeline run complete")

	return nil
}

// discover crawls every rarity-tier listing and unions the found page URLs
// into one sorted slice for deterministic iteration
func (p *Pipeline) discover(ctx context.Context) ([]string, error) {
	urlSet := make(map[string]struct{})

	for i, listing := range p.listingURLs {
		if i > 0 {
			p.delay(ctx, p.listingDelay)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		links, err := p.scraper.DiscoverLinks(listing)
		if err != nil {
			p.log.Error().Err(err).Str("listing", listing).Msg("Listing discovery failed, skipping")
			continue
		}

		for link := range links {
			urlSet[link] = struct{}{}
		}

		p.log.Info().
			Str("listing", listing).
			Int("links", len(links)).
			Int("total", len(urlSet)).
			Msg("Listing crawled")
	}

	urls := make([]string, 0, len(urlSet))
	for u := range urlSet {
		urls = append(urls, u)
	}
	sort.Strings(urls)

	return urls, nil
}

// parse visits every discovered URL in sorted order; a failed page is
// omitted from the result, not retried
func (p *Pipeline) parse(ctx context.Context, urls []string) ([]*scraper.OperatorRecord, error) {
	var records []*scraper.OperatorRecord

	for i, pageURL := range urls {
		if i > 0 {
			p.delay(ctx, p.pageDelay)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := p.scraper.ParsePage(pageURL)
		if err != nil {
			p.log.Error().Err(err).Str("url", pageURL).Msg("Page parse failed, skipping")
			continue
		}
		if record == nil {
			continue
		}

		records = append(records, record)
	}

	return records, nil
}

// reduce folds records into a name-keyed map, first occurrence wins, and
// materializes the final collection sorted by name under a locale-aware
// comparison
func (p *Pipeline) reduce(records []*scraper.OperatorRecord) []scraper.OperatorRecord {
	byName := make(map[string]*scraper.OperatorRecord)

	for _, record := range records {
		if record.Name == "" {
			p.log.Debug().Str("url", record.Source).Msg("Dropping record with empty name")
			continue
		}
		if _, seen := byName[record.Name]; seen {
			continue
		}
		byName[record.Name] = record
	}

	final := make([]scraper.OperatorRecord, 0, len(byName))
	for _, record := range byName {
		final = append(final, *record)
	}

	collator := collate.New(language.English)
	sort.SliceStable(final, func(i, j int) bool {
		return collator.CompareString(final[i].Name, final[j].Name) < 0
	})

	return final
}

// publish announces the final records on the side channel when configured;
// publish failures never fail the run
func (p *Pipeline) publish(records []scraper.OperatorRecord) {
	if p.publisher == nil {
		return
	}

	for _, record := range records {
		data, err := json.Marshal(record)
		if err != nil {
			p.log.Error().Err(err).Str("name", record.Name).Msg("Failed to marshal record for publishing")
			continue
		}
		if err := p.publisher.Publish(record.Name, data); err != nil {
			p.log.Error().Err(err).Str("name", record.Name).Msg("Failed to publish record")
		}
	}
}
