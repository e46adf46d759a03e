package sink

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"arkdle/operatorworker/internal/scraper"

	"github.com/stretchr/testify/assert"
)

func TestJSONFileSinkWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "operators.json")
	s := NewJSONFileSink(path)

	records := []scraper.OperatorRecord{
		{
			Name:   "Amiya",
			Class:  "Caster",
			Rarity: scraper.KnownRarity(5),
			Source: "https://arknights.wiki.gg/wiki/Amiya",
		},
		{
			Name:   "Texas",
			Source: "https://arknights.wiki.gg/wiki/Texas",
		},
	}

	assert.NoError(t, s.Write(records))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	// Pretty-printed output
	assert.Contains(t, string(data), "\n  {")

	var decoded []map[string]interface{}
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 2)
	assert.Equal(t, "Amiya", decoded[0]["name"])

	// Every declared field is present even when empty; rarity uses the
	// empty-string sentinel when unknown
	for _, key := range []string{"name", "gender", "class", "archetype", "faction", "race", "region", "rarity", "release", "image", "source"} {
		_, ok := decoded[0][key]
		assert.True(t, ok, "missing field %q", key)
		_, ok = decoded[1][key]
		assert.True(t, ok, "missing field %q", key)
	}
	assert.Equal(t, float64(5), decoded[0]["rarity"])
	assert.Equal(t, "", decoded[1]["rarity"])
}

func TestJSONFileSinkOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operators.json")
	s := NewJSONFileSink(path)

	assert.NoError(t, s.Write([]scraper.OperatorRecord{{Name: "Amiya"}}))
	assert.NoError(t, s.Write([]scraper.OperatorRecord{{Name: "Texas"}}))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)

	var decoded []scraper.OperatorRecord
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 1)
	assert.Equal(t, "Texas", decoded[0].Name)
}

func TestJSONFileSinkEmptyRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operators.json")
	s := NewJSONFileSink(path)

	assert.NoError(t, s.Write(nil))

	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}
