package neows

import (
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// DateRange is the inclusive window requested from the feed.
// Both ends are calendar dates formatted as YYYY-MM-DD.
type DateRange struct {
	From string
	To   string
}

// Days maps each feed date to the objects reported on it, in the order
// the upstream document lists them.
type Days = orderedmap.OrderedMap[string, []NearEarthObject]

// Feed is the subset of the NeoWs feed response that is consumed.
type Feed struct {
	ElementCount     int
	NearEarthObjects *Days
}

// Pointer fields distinguish an absent (or null) value from a zero value.
// absolute_magnitude_h is kept as the raw token so it is passed through
// unchanged.

type NearEarthObject struct {
	Name                           *string            `json:"name"`
	NasaJplURL                     *string            `json:"nasa_jpl_url"`
	AbsoluteMagnitudeH             *json.RawMessage   `json:"absolute_magnitude_h"`
	EstimatedDiameter              *EstimatedDiameter `json:"estimated_diameter"`
	IsPotentiallyHazardousAsteroid *bool              `json:"is_potentially_hazardous_asteroid"`
	CloseApproachData              []CloseApproach    `json:"close_approach_data"`
}

type EstimatedDiameter struct {
	Meters *DiameterRange `json:"meters"`
}

type DiameterRange struct {
	Min *Number `json:"estimated_diameter_min"`
	Max *Number `json:"estimated_diameter_max"`
}

type CloseApproach struct {
	CloseApproachDateFull *string           `json:"close_approach_date_full"`
	RelativeVelocity      *RelativeVelocity `json:"relative_velocity"`
	MissDistance          *MissDistance     `json:"miss_distance"`
}

type RelativeVelocity struct {
	KilometersPerSecond *Number `json:"kilometers_per_second"`
}

type MissDistance struct {
	Lunar *Number `json:"lunar"`
}
