package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	// Test with default values
	config := LoadConfig()
	assert.Equal(t, "https://arknights.wiki.gg", config.BaseURL)
	assert.Equal(t, "/wiki/", config.OperatorPathPrefix)
	assert.Equal(t, 6, len(config.ListingPaths))
	assert.Equal(t, "/wiki/1-star_Operators", config.ListingPaths[0])
	assert.Equal(t, "/wiki/6-star_Operators", config.ListingPaths[5])
	assert.Equal(t, 600*time.Millisecond, config.ListingDelay)
	assert.Equal(t, 500*time.Millisecond, config.PageDelay)
	assert.Equal(t, "data/operators.json", config.OutputPath)
	assert.Equal(t, "", config.MemcacheAddr)
	assert.Equal(t, "", config.RedisAddr)
	assert.Equal(t, "operators", config.RedisStream)

	// Test with environment variables
	os.Setenv("WIKI_BASE_URL", "https://example.wiki.gg")
	os.Setenv("LISTING_PATHS", "/wiki/A, /wiki/B")
	os.Setenv("LISTING_DELAY_MS", "10")
	os.Setenv("PAGE_DELAY_MS", "20")
	os.Setenv("OUTPUT_PATH", "out/ops.json")
	os.Setenv("REDIS_ADDR", "redis.example.com:6379")
	os.Setenv("REDIS_DB", "1")

	config = LoadConfig()
	assert.Equal(t, "https://example.wiki.gg", config.BaseURL)
	assert.Equal(t, []string{"/wiki/A", "/wiki/B"}, config.ListingPaths)
	assert.Equal(t, 10*time.Millisecond, config.ListingDelay)
	assert.Equal(t, 20*time.Millisecond, config.PageDelay)
	assert.Equal(t, "out/ops.json", config.OutputPath)
	assert.Equal(t, "redis.example.com:6379", config.RedisAddr)
	assert.Equal(t, 1, config.RedisDB)

	// Clean up
	os.Unsetenv("WIKI_BASE_URL")
	os.Unsetenv("LISTING_PATHS")
	os.Unsetenv("LISTING_DELAY_MS")
	os.Unsetenv("PAGE_DELAY_MS")
	os.Unsetenv("OUTPUT_PATH")
	os.Unsetenv("REDIS_ADDR")
	os.Unsetenv("REDIS_DB")
}

func TestValidate(t *testing.T) {
	config := LoadConfig()
	assert.NoError(t, config.Validate())

	config.BaseURL = "not a url"
	assert.Error(t, config.Validate())

	config = LoadConfig()
	config.ListingPaths = nil
	assert.Error(t, config.Validate())

	config = LoadConfig()
	config.ListingPaths = []string{"wiki/no-slash"}
	assert.Error(t, config.Validate())

	config = LoadConfig()
	config.OutputPath = ""
	assert.Error(t, config.Validate())
}
