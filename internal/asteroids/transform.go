package asteroids

import (
	"errors"
	"fmt"

	"github.com/turbolytics/neoarchive/internal/neows"
)

var ErrMissingField = errors.New("missing field")

// Transform reshapes a feed into a Document. Days keep the feed's key
// order and objects keep their list order. Approach fields come from the
// first close approach only. Any absent field fails the whole transform.
func Transform(feed *neows.Feed, r neows.DateRange) (*Document, error) {
	if feed == nil || feed.NearEarthObjects == nil {
		return nil, fmt.Errorf("%w %q", ErrMissingField, "near_earth_objects")
	}

	doc := &Document{
		DateRangeFrom:  r.From,
		DateRangeTo:    r.To,
		AsteroidsByDay: make([]DayGroup, 0, feed.NearEarthObjects.Len()),
	}

	for pair := feed.NearEarthObjects.Oldest(); pair != nil; pair = pair.Next() {
		group := DayGroup{
			Date:      pair.Key,
			Asteroids: make([]Asteroid, 0, len(pair.Value)),
		}

		for i, neo := range pair.Value {
			a, err := reduce(neo)
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", pair.Key, i, err)
			}
			group.Asteroids = append(group.Asteroids, a)
		}

		doc.AsteroidsByDay = append(doc.AsteroidsByDay, group)
	}

	return doc, nil
}

func missing(field string) error {
	return fmt.Errorf("%w %q", ErrMissingField, field)
}

func fixed3(field string, n *neows.Number) (string, error) {
	if n == nil {
		return "", missing(field)
	}
	s, err := FormatFixed3(n.String())
	if err != nil {
		return "", fmt.Errorf("%s: %w", field, err)
	}
	return s, nil
}

func reduce(neo neows.NearEarthObject) (Asteroid, error) {
	var a Asteroid
	var err error

	if neo.Name == nil {
		return a, missing("name")
	}
	a.Name = *neo.Name

	if neo.NasaJplURL == nil {
		return a, missing("nasa_jpl_url")
	}
	a.NasaJplURL = *neo.NasaJplURL

	if neo.AbsoluteMagnitudeH == nil {
		return a, missing("absolute_magnitude_h")
	}
	a.AbsoluteMagnitudeH = *neo.AbsoluteMagnitudeH

	if neo.EstimatedDiameter == nil {
		return a, missing("estimated_diameter")
	}
	meters := neo.EstimatedDiameter.Meters
	if meters == nil {
		return a, missing("estimated_diameter.meters")
	}
	if a.EstimatedDiameterMinMeters, err = fixed3("estimated_diameter.meters.estimated_diameter_min", meters.Min); err != nil {
		return a, err
	}
	if a.EstimatedDiameterMaxMeters, err = fixed3("estimated_diameter.meters.estimated_diameter_max", meters.Max); err != nil {
		return a, err
	}

	if neo.IsPotentiallyHazardousAsteroid == nil {
		return a, missing("is_potentially_hazardous_asteroid")
	}
	a.IsPotentiallyHazardousAsteroid = *neo.IsPotentiallyHazardousAsteroid

	if len(neo.CloseApproachData) == 0 {
		return a, missing("close_approach_data[0]")
	}
	first := neo.CloseApproachData[0]

	if first.CloseApproachDateFull == nil {
		return a, missing("close_approach_data[0].close_approach_date_full")
	}
	a.CloseApproachDate = *first.CloseApproachDateFull

	if first.RelativeVelocity == nil {
		return a, missing("close_approach_data[0].relative_velocity")
	}
	if a.RelativeVelocityKmS, err = fixed3("close_approach_data[0].relative_velocity.kilometers_per_second", first.RelativeVelocity.KilometersPerSecond); err != nil {
		return a, err
	}

	if first.MissDistance == nil {
		return a, missing("close_approach_data[0].miss_distance")
	}
	if a.MissDistanceLunar, err = fixed3("close_approach_data[0].miss_distance.lunar", first.MissDistance.Lunar); err != nil {
		return a, err
	}

	return a, nil
}
