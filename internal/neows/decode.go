package neows

import (
	"encoding/json"
	"fmt"
	"io"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type feedEnvelope struct {
	ElementCount     int             `json:"element_count"`
	NearEarthObjects json.RawMessage `json:"near_earth_objects"`
}

// Decode reads a feed response. Day keys keep their document order.
func Decode(r io.Reader) (*Feed, error) {
	var env feedEnvelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decoding feed: %w", err)
	}

	if len(env.NearEarthObjects) == 0 || string(env.NearEarthObjects) == "null" {
		return nil, fmt.Errorf("decoding feed: missing near_earth_objects")
	}

	days := orderedmap.New[string, []NearEarthObject]()
	if err := json.Unmarshal(env.NearEarthObjects, days); err != nil {
		return nil, fmt.Errorf("decoding near_earth_objects: %w", err)
	}

	return &Feed{
		ElementCount:     env.ElementCount,
		NearEarthObjects: days,
	}, nil
}
