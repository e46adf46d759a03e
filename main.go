package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"arkdle/operatorworker/config"
	"arkdle/operatorworker/helpers"
	"arkdle/operatorworker/internal/scraper"
	"arkdle/operatorworker/logger"
	"arkdle/operatorworker/services/cache"
	"arkdle/operatorworker/services/pipeline"
	"arkdle/operatorworker/services/publisher"
	"arkdle/operatorworker/services/sink"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("base_url", cfg.BaseURL).
		Int("listings", len(cfg.ListingPaths)).
		Str("output", cfg.OutputPath).
		Msg("Starting operator extraction")

	// Set up context cancelled on shutdown signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetch := buildFetch(cfg)

	s := scraper.NewScraper(cfg.BaseURL, cfg.OperatorPathPrefix, fetch)
	fileSink := sink.NewJSONFileSink(cfg.OutputPath)

	var pub publisher.Publisher
	if cfg.RedisAddr != "" {
		redisPub := publisher.NewRedisPublisher(ctx, cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
		defer redisPub.Close()
		pub = redisPub
		logger.ForPublisher().Info().
			Str("addr", cfg.RedisAddr).
			Str("stream", cfg.RedisStream).
			Msg("Record publishing enabled")
	}

	p := pipeline.New(
		s,
		fileSink,
		pub,
		listingURLs(cfg),
		cfg.ListingDelay,
		cfg.PageDelay,
		pipeline.SleepDelay,
	)

	// A single run; partial record loss is fine, only an unhandled error
	// exits non-zero
	if err := p.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("Pipeline run failed")
	}
}

// buildFetch assembles the fetch function: identifying header, optional
// page cache
func buildFetch(cfg *config.Config) scraper.FetchFunc {
	fetch := func(url string) (io.Reader, error) {
		return helpers.FetchPage(url, cfg.UserAgent)
	}

	if cfg.MemcacheAddr != "" {
		logger.Info("Page cache enabled via memcache at %s", cfg.MemcacheAddr)
		svc := cache.NewMemcacheService(cfg.MemcacheAddr)
		return scraper.CachedFetch(fetch, svc, cfg.PageCacheTTL)
	}

	return fetch
}

// listingURLs joins the configured listing paths onto the base URL
func listingURLs(cfg *config.Config) []string {
	urls := make([]string, 0, len(cfg.ListingPaths))
	for _, p := range cfg.ListingPaths {
		urls = append(urls, helpers.AbsoluteURL(p, cfg.BaseURL))
	}
	return urls
}
