package scraper

import (
	"encoding/json"
	"io"
)

// OperatorRecord represents one normalized operator extracted from a wiki
// page. Every field is always present in the marshaled form; unrecoverable
// values degrade to empty strings (or the empty rarity sentinel), never to
// null.
type OperatorRecord struct {
	Name      string      `json:"name"`
	Gender    string      `json:"gender"`
	Class     string      `json:"class"`
	Archetype string      `json:"archetype"`
	Faction   string      `json:"faction"`
	Race      string      `json:"race"`
	Region    string      `json:"region"`
	Rarity    Rarity      `json:"rarity"`
	Release   ReleaseInfo `json:"release"`
	Image     ImageSet    `json:"image"`
	Source    string      `json:"source"`
}

// ReleaseInfo holds the release date and the surrounding release text
type ReleaseInfo struct {
	DateGlobal string `json:"date_global"`
	EventName  string `json:"event_name"`
}

// ImageSet holds the absolute portrait and full-art URLs
type ImageSet struct {
	Portrait string `json:"portrait"`
	Full     string `json:"full"`
}

// Rarity is an integer star count. It marshals as a bare number when known
// and as "" when the count could not be recovered, so consumers always see
// the field.
type Rarity struct {
	Stars int
	Known bool
}

// KnownRarity returns a Rarity carrying the given star count
func KnownRarity(stars int) Rarity {
	return Rarity{Stars: stars, Known: true}
}

// MarshalJSON implements json.Marshaler
func (r Rarity) MarshalJSON() ([]byte, error) {
	if !r.Known {
		return []byte(`""`), nil
	}
	return json.Marshal(r.Stars)
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Rarity) UnmarshalJSON(data []byte) error {
	if string(data) == `""` {
		*r = Rarity{}
		return nil
	}
	var stars int
	if err := json.Unmarshal(data, &stars); err != nil {
		return err
	}
	*r = KnownRarity(stars)
	return nil
}

// FetchFunc retrieves a page body as UTF-8 HTML
type FetchFunc func(url string) (io.Reader, error)
