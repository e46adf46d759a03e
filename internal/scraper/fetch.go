package scraper

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"time"

	"arkdle/operatorworker/logger"
	"arkdle/operatorworker/services/cache"
)

// CachedFetch wraps a fetch function with a page cache so repeated runs skip
// refetching unchanged pages. Cache failures fall through to the network;
// the cache is an optimization, never a requirement.
func CachedFetch(fetch FetchFunc, svc cache.CacheService, ttl time.Duration) FetchFunc {
	if svc == nil {
		return fetch
	}

	log := logger.ForScraper("fetch")

	return func(url string) (io.Reader, error) {
		key := cacheKey(url)

		if body, err := svc.Get(key); err == nil {
			log.Debug().Str("url", url).Msg("page cache hit")
			return bytes.NewReader(body), nil
		}

		body, err := fetch(url)
		if err != nil {
			return nil, err
		}

		data, err := io.ReadAll(body)
		if err != nil {
			return nil, err
		}

		if err := svc.Set(key, data, ttl); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("failed to cache page")
		}

		return bytes.NewReader(data), nil
	}
}

// cacheKey hashes the URL; memcache keys must be short and space-free
func cacheKey(url string) string {
	sum := sha1.Sum([]byte(url))
	return "page:" + hex.EncodeToString(sum[:])
}
