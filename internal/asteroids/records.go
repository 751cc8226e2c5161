package asteroids

import (
	"encoding/json"
	"fmt"

	"github.com/turbolytics/neoarchive/internal"
	"github.com/turbolytics/neoarchive/internal/neows"
)

// RecordFields is the column order of flattened asteroid rows.
var RecordFields = []string{
	"date",
	"name",
	"nasa_jpl_url",
	"absolute_magnitude_h",
	"estimated_diameter_min_meters",
	"estimated_diameter_max_meters",
	"is_potentially_hazardous_asteroid",
	"close_approach_date",
	"relative_velocity_km_s",
	"miss_distance_lunar",
}

// Records flattens the document into one row per asteroid, prefixed with
// the day it was reported on.
func (d *Document) Records() ([]*internal.Record, error) {
	records := make([]*internal.Record, 0, d.NumAsteroids())
	for _, day := range d.AsteroidsByDay {
		for i, a := range day.Asteroids {
			h, err := magnitude(a.AbsoluteMagnitudeH)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: absolute_magnitude_h: %w", day.Date, i, err)
			}
			records = append(records, internal.NewRecord(RecordFields, []any{
				day.Date,
				a.Name,
				a.NasaJplURL,
				h,
				a.EstimatedDiameterMinMeters,
				a.EstimatedDiameterMaxMeters,
				a.IsPotentiallyHazardousAsteroid,
				a.CloseApproachDate,
				a.RelativeVelocityKmS,
				a.MissDistanceLunar,
			}))
		}
	}
	return records, nil
}

// magnitude reads the raw magnitude token, which may be a JSON number or
// a numeric string.
func magnitude(raw json.RawMessage) (float64, error) {
	var n neows.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, fmt.Errorf("%w %q", ErrMalformedNumber, string(raw))
	}
	return ParseNumber(n.String())
}
