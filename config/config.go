package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents the application configuration
type Config struct {
	// Wiki source configuration
	BaseURL            string
	ListingPaths       []string
	OperatorPathPrefix string
	UserAgent          string

	// Politeness delays between sequential fetches
	ListingDelay time.Duration
	PageDelay    time.Duration

	// Output configuration
	OutputPath string

	// Optional page cache (memcache)
	MemcacheAddr string
	PageCacheTTL time.Duration

	// Optional record publishing (Redis stream)
	RedisAddr   string
	RedisDB     int
	RedisStream string

	// Environment
	Environment string
}

// defaultListingPaths enumerates one listing page per rarity tier, crawled in
// this fixed order.
var defaultListingPaths = []string{
	"/wiki/1-star_Operators",
	"/wiki/2-star_Operators",
	"/wiki/3-star_Operators",
	"/wiki/4-star_Operators",
	"/wiki/5-star_Operators",
	"/wiki/6-star_Operators",
}

// LoadConfig loads the configuration from environment variables with defaults
func LoadConfig() *Config {
	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	listingDelay, _ := strconv.Atoi(getEnv("LISTING_DELAY_MS", "600"))
	pageDelay, _ := strconv.Atoi(getEnv("PAGE_DELAY_MS", "500"))
	cacheTTL, _ := strconv.Atoi(getEnv("PAGE_CACHE_TTL_SECONDS", "3600"))

	return &Config{
		BaseURL:            getEnv("WIKI_BASE_URL", "https://arknights.wiki.gg"),
		ListingPaths:       splitPaths(getEnv("LISTING_PATHS", strings.Join(defaultListingPaths, ","))),
		OperatorPathPrefix: getEnv("OPERATOR_PATH_PREFIX", "/wiki/"),
		UserAgent:          getEnv("USER_AGENT", "OperatorWorker/1.0 (+https://github.com/arkdle/operatorworker)"),
		ListingDelay:       time.Duration(listingDelay) * time.Millisecond,
		PageDelay:          time.Duration(pageDelay) * time.Millisecond,
		OutputPath:         getEnv("OUTPUT_PATH", "data/operators.json"),
		MemcacheAddr:       getEnv("MEMCACHE_ADDR", ""),
		PageCacheTTL:       time.Duration(cacheTTL) * time.Second,
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		RedisDB:            redisDB,
		RedisStream:        getEnv("REDIS_STREAM", "operators"),
		Environment:        getEnv("SCRAPER_ENVIRONMENT", "development"),
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base URL %q", c.BaseURL)
	}
	if len(c.ListingPaths) == 0 {
		return fmt.Errorf("no listing paths configured")
	}
	for _, p := range c.ListingPaths {
		if !strings.HasPrefix(p, "/") {
			return fmt.Errorf("listing path %q is not root-relative", p)
		}
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path must not be empty")
	}
	return nil
}

// splitPaths splits a comma-separated path list, dropping empty entries
func splitPaths(raw string) []string {
	var paths []string
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
