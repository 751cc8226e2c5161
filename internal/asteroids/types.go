package asteroids

import (
	"encoding/json"

	"github.com/samber/lo"
)

// Asteroid is the reduced record written for each near-Earth object.
// Field order is the output order. absolute_magnitude_h is the upstream
// token as received.
type Asteroid struct {
	Name                           string          `json:"name"`
	NasaJplURL                     string          `json:"nasa_jpl_url"`
	AbsoluteMagnitudeH             json.RawMessage `json:"absolute_magnitude_h"`
	EstimatedDiameterMinMeters     string          `json:"estimated_diameter_min_meters"`
	EstimatedDiameterMaxMeters     string          `json:"estimated_diameter_max_meters"`
	IsPotentiallyHazardousAsteroid bool            `json:"is_potentially_hazardous_asteroid"`
	CloseApproachDate              string          `json:"close_approach_date"`
	RelativeVelocityKmS            string          `json:"relative_velocity_km_s"`
	MissDistanceLunar              string          `json:"miss_distance_lunar"`
}

type DayGroup struct {
	Date      string     `json:"date"`
	Asteroids []Asteroid `json:"asteroids"`
}

type Document struct {
	DateRangeFrom  string     `json:"date_range_from"`
	DateRangeTo    string     `json:"date_range_to"`
	AsteroidsByDay []DayGroup `json:"asteroids_by_day"`
}

// NumAsteroids counts records across all days.
func (d *Document) NumAsteroids() int {
	return lo.SumBy(d.AsteroidsByDay, func(day DayGroup) int {
		return len(day.Asteroids)
	})
}
